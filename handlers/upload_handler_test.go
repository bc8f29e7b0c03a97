package handlers

import "testing"

func TestUploadFolder(t *testing.T) {
	tests := []struct {
		kind   string
		folder string
		ok     bool
	}{
		{"", "swim_school_swimmers", true},
		{"swimmer", "swim_school_swimmers", true},
		{"instructor", "swim_school_instructors", true},
		{"lesson", "", false},
		{"../etc", "", false},
	}

	for _, tc := range tests {
		folder, ok := uploadFolder(tc.kind)
		if folder != tc.folder || ok != tc.ok {
			t.Errorf("uploadFolder(%q) = (%q, %v), want (%q, %v)", tc.kind, folder, ok, tc.folder, tc.ok)
		}
	}
}
