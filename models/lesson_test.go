package models

import "testing"

func TestLessonListHelpers(t *testing.T) {
	lesson := Lesson{
		MeetingDays:    "Monday, Wednesday ,,Friday",
		ExceptionDates: "",
	}

	days := lesson.MeetingDayList()
	if len(days) != 3 || days[0] != "Monday" || days[1] != "Wednesday" || days[2] != "Friday" {
		t.Errorf("MeetingDayList = %v", days)
	}

	if got := lesson.ExceptionDateList(); len(got) != 0 {
		t.Errorf("empty exception list should yield no entries, got %v", got)
	}
}

func TestAppendMissingDate(t *testing.T) {
	var reg SwimmerLessonRegistration

	if !reg.AppendMissingDate("2024-02-05") {
		t.Fatal("first append should succeed")
	}
	if !reg.AppendMissingDate("2024-02-12") {
		t.Fatal("second append should succeed")
	}
	if reg.AppendMissingDate("2024-02-05") {
		t.Error("duplicate append should be a no-op")
	}

	got := reg.MissingDateList()
	if len(got) != 2 || got[0] != "2024-02-05" || got[1] != "2024-02-12" {
		t.Errorf("MissingDateList = %v", got)
	}
}
