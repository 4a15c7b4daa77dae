// Package access centralizes the per-request capability checks that
// gate mutating and narrowly-scoped read operations. Controllers call
// Check before acting, so a denial can never leave partial writes.
package access

import (
	"errors"

	"gorm.io/gorm"

	"UniHire-backend/internal/database"
	"UniHire-backend/internal/model"
)

// Action names an operation a caller wants to perform on a resource.
type Action string

const (
	// ActionEditJob covers PATCH on a job posting
	ActionEditJob Action = "job:edit"
	// ActionDeleteJob covers hard removal of a job posting
	ActionDeleteJob Action = "job:delete"
	// ActionListApplications covers listing the applications of a job
	ActionListApplications Action = "job:list-applications"
	// ActionUpdateApplication covers status/notes updates on an application
	ActionUpdateApplication Action = "application:update"
	// ActionViewApplication covers retrieving a single application
	ActionViewApplication Action = "application:view"
)

// ErrDenied is returned for every capability the caller does not hold.
var ErrDenied = errors.New("permission denied")

// Caller bundles the authenticated user with whichever role profile it
// owns. At most one of Student and Employer is non-nil.
type Caller struct {
	User     model.User
	Student  *model.Student
	Employer *model.Employer
}

// StudentID returns the caller's student profile ID, or zero.
func (c Caller) StudentID() uint {
	if c.Student == nil {
		return 0
	}
	return c.Student.ID
}

// Resolve loads the role profile matching the user and returns the
// assembled caller. A user without the matching profile record resolves
// to a caller with no profile (partial provisioning failure), which
// every capability check denies.
func Resolve(db *database.DBinstanceStruct, user model.User) (Caller, error) {
	caller := Caller{User: user}

	switch user.Role {
	case model.RoleStudent:
		var student model.Student
		err := db.Where("user_id = ?", user.ID).First(&student).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return caller, err
		}
		if err == nil {
			caller.Student = &student
		}
	case model.RoleEmployer:
		var employer model.Employer
		err := db.Where("user_id = ?", user.ID).First(&employer).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return caller, err
		}
		if err == nil {
			caller.Employer = &employer
		}
	}

	return caller, nil
}

// Check returns nil when the caller may perform action on resource and
// ErrDenied otherwise. Job actions take *model.Job; application actions
// take *model.Application with its Job preloaded.
func Check(caller Caller, action Action, resource interface{}) error {
	switch action {
	case ActionEditJob, ActionDeleteJob, ActionListApplications:
		job, ok := resource.(*model.Job)
		if !ok || caller.Employer == nil || job.EmployerID != caller.Employer.ID {
			return ErrDenied
		}
		return nil

	case ActionUpdateApplication:
		application, ok := resource.(*model.Application)
		if !ok || caller.Employer == nil || application.Job.EmployerID != caller.Employer.ID {
			return ErrDenied
		}
		return nil

	case ActionViewApplication:
		application, ok := resource.(*model.Application)
		if !ok {
			return ErrDenied
		}
		if caller.Student != nil && application.ApplicantID == caller.Student.ID {
			return nil
		}
		if caller.Employer != nil && application.Job.EmployerID == caller.Employer.ID {
			return nil
		}
		return ErrDenied
	}

	return ErrDenied
}
