package access

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"UniHire-backend/internal/model"
)

func TestCheck_JobOwnership(t *testing.T) {
	owner := Caller{Employer: &model.Employer{ID: 1}}
	other := Caller{Employer: &model.Employer{ID: 2}}
	student := Caller{Student: &model.Student{ID: 3}}

	job := &model.Job{ID: 10, EmployerID: 1}

	assert.NoError(t, Check(owner, ActionEditJob, job))
	assert.NoError(t, Check(owner, ActionDeleteJob, job))
	assert.NoError(t, Check(owner, ActionListApplications, job))

	assert.ErrorIs(t, Check(other, ActionEditJob, job), ErrDenied)
	assert.ErrorIs(t, Check(other, ActionDeleteJob, job), ErrDenied)
	assert.ErrorIs(t, Check(student, ActionEditJob, job), ErrDenied)
}

func TestCheck_ApplicationVisibility(t *testing.T) {
	application := &model.Application{
		ID:          20,
		ApplicantID: 3,
		Job:         model.Job{ID: 10, EmployerID: 1},
	}

	applicant := Caller{Student: &model.Student{ID: 3}}
	otherStudent := Caller{Student: &model.Student{ID: 4}}
	jobOwner := Caller{Employer: &model.Employer{ID: 1}}
	otherEmployer := Caller{Employer: &model.Employer{ID: 2}}

	assert.NoError(t, Check(applicant, ActionViewApplication, application))
	assert.NoError(t, Check(jobOwner, ActionViewApplication, application))
	assert.ErrorIs(t, Check(otherStudent, ActionViewApplication, application), ErrDenied)
	assert.ErrorIs(t, Check(otherEmployer, ActionViewApplication, application), ErrDenied)

	assert.NoError(t, Check(jobOwner, ActionUpdateApplication, application))
	assert.ErrorIs(t, Check(otherEmployer, ActionUpdateApplication, application), ErrDenied)
	assert.ErrorIs(t, Check(applicant, ActionUpdateApplication, application), ErrDenied)
}

func TestCheck_NoProfile(t *testing.T) {
	nobody := Caller{User: model.User{ID: 99, Role: model.RoleEmployer}}
	job := &model.Job{ID: 10, EmployerID: 1}

	assert.ErrorIs(t, Check(nobody, ActionEditJob, job), ErrDenied)
	assert.ErrorIs(t, Check(nobody, ActionViewApplication, &model.Application{}), ErrDenied)
}

func TestCheck_UnknownAction(t *testing.T) {
	owner := Caller{Employer: &model.Employer{ID: 1}}
	assert.ErrorIs(t, Check(owner, Action("job:unknown"), &model.Job{EmployerID: 1}), ErrDenied)
}
