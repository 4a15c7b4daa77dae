// Package model contain gorm model for recording data to database
package model

import (
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// RoleStudent marks a user that applies to jobs through a student profile
	RoleStudent = "student"
	// RoleEmployer marks a user that posts jobs through an employer profile
	RoleEmployer = "employer"
)

// EditableUserInfo is the part of a user record that the owner may change
type EditableUserInfo struct {
	Email     string `gorm:"uniqueIndex;not null" json:"email"`
	FirstName string `gorm:"type:text" json:"first_name"`
	LastName  string `gorm:"type:text" json:"last_name"`
}

// User is the base identity record. Exactly one Student or Employer
// profile hangs off it, matching Role.
type User struct {
	ID       uint   `gorm:"primaryKey;autoIncrement;->" json:"id"`
	Username string `gorm:"uniqueIndex;not null" json:"username"`
	Password string `gorm:"type:text" json:"-"`
	Role     string `gorm:"type:text;not null" json:"role"`
	EditableUserInfo
	CreatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"created_at"`
}

// IsStudent reports whether the user holds the student role
func (u *User) IsStudent() bool {
	return u.Role == RoleStudent
}

// IsEmployer reports whether the user holds the employer role
func (u *User) IsEmployer() bool {
	return u.Role == RoleEmployer
}

// AfterCreate provisions the role-matching profile record with its
// generated code. Every code path that creates a user goes through
// here, and the ON CONFLICT DO NOTHING upsert keyed on user_id makes
// repeated provisioning a no-op.
func (u *User) AfterCreate(tx *gorm.DB) error {
	upsert := clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}

	switch u.Role {
	case RoleStudent:
		student := Student{
			UserID:      u.ID,
			StudentCode: fmt.Sprintf("STU%04d", u.ID),
		}
		return tx.Clauses(upsert).Omit(clause.Associations).Create(&student).Error
	case RoleEmployer:
		employer := Employer{
			UserID:       u.ID,
			EmployerCode: fmt.Sprintf("EMP%04d", u.ID),
		}
		return tx.Clauses(upsert).Omit(clause.Associations).Create(&employer).Error
	}
	return nil
}
