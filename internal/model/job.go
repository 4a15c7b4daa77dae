package model

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	// MinJobTitleLength is the shortest accepted job title
	MinJobTitleLength = 5
	// MinJobDescriptionLength is the shortest accepted job description
	MinJobDescriptionLength = 20
)

// EditableJobInfo is the part of a job posting that its owner can set
// at creation and overwrite afterwards.
type EditableJobInfo struct {
	Title              string `gorm:"type:text" json:"title"`
	Description        string `gorm:"type:text" json:"description"`
	Type               string `gorm:"type:text" json:"type"`
	Experience         string `gorm:"type:text" json:"experience"`
	DetailedExperience string `gorm:"type:text" json:"detailed_experience"`
	Education          string `gorm:"type:text" json:"education"`
	Location           string `gorm:"type:text" json:"location"`
	SalaryRange        string `gorm:"type:text" json:"salary_range"`

	// IsActive is a pointer so a PATCH can flip it to false without the
	// zero value being dropped by the partial update.
	IsActive *bool `gorm:"not null;default:true" json:"is_active"`
}

// Validate checks the creation constraints on a job posting.
func (e *EditableJobInfo) Validate() error {
	if len(e.Title) < MinJobTitleLength {
		return fmt.Errorf("job title must be at least %d characters long", MinJobTitleLength)
	}
	if len(e.Description) < MinJobDescriptionLength {
		return fmt.Errorf("job description must be at least %d characters long", MinJobDescriptionLength)
	}
	return nil
}

// Job is gorm model for a job posting owned by an employer profile
type Job struct {
	ID         uint     `gorm:"primaryKey;autoIncrement;->" json:"id"`
	EmployerID uint     `gorm:"not null;index;<-:create" json:"-"`
	Employer   Employer `gorm:"foreignKey:EmployerID;references:ID" json:"employer"`

	EditableJobInfo

	PostedOn     time.Time     `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"posted_on"`
	Applications []Application `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"-"`
}

// Active reports the activity flag with the default applied.
func (j *Job) Active() bool {
	return j.IsActive == nil || *j.IsActive
}

// JobResponse is the API shape of a job posting, enriched with the
// application count and whether the calling student already applied.
type JobResponse struct {
	ID       uint     `json:"id"`
	Employer Employer `json:"employer"`
	EditableJobInfo
	PostedOn          time.Time `json:"posted_on"`
	ApplicationsCount int       `json:"applications_count"`
	UserHasApplied    bool      `json:"user_has_applied"`
}

// ToJobResponse converts a Job (with Applications preloaded) to its API
// shape. applicantID is the caller's student profile ID, or zero when
// the caller has none.
func (j *Job) ToJobResponse(applicantID uint) (JobResponse, error) {
	var resp JobResponse

	b, err := json.Marshal(j)
	if err != nil {
		return resp, err
	}
	if err := json.Unmarshal(b, &resp); err != nil {
		return resp, err
	}

	resp.ApplicationsCount = len(j.Applications)
	if applicantID != 0 {
		for _, application := range j.Applications {
			if application.ApplicantID == applicantID {
				resp.UserHasApplied = true
				break
			}
		}
	}

	return resp, nil
}
