package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FullName string    `gorm:"size:255;not null" json:"full_name"`
	Email    string    `gorm:"size:255;not null;unique" json:"email"`
	Password string    `gorm:"not null" json:"-"`
	Role     string    `gorm:"size:20;not null;default:'customer'" json:"role"`
	Phone    *string   `gorm:"size:30" json:"phone"`

	MustChangePassword bool `gorm:"default:false" json:"must_change_password"`
	IsActive           bool `gorm:"default:true" json:"is_active"`

	OneTimeToken          *string    `gorm:"size:255;unique" json:"-"`
	OneTimeTokenExpiresAt *time.Time `json:"-"`

	ResetPasswordToken          *string    `gorm:"size:255;unique" json:"-"`
	ResetPasswordTokenExpiresAt *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ResetTokenValidAt reports whether the password-reset token is present and
// not yet expired. A token with no expiry on record counts as expired.
func (u *User) ResetTokenValidAt(now time.Time) bool {
	return u.ResetPasswordToken != nil &&
		u.ResetPasswordTokenExpiresAt != nil &&
		u.ResetPasswordTokenExpiresAt.After(now)
}
