package model

import (
	"time"
)

var (
	// ApplicationStatusPending indicates that the application has not been reviewed yet
	ApplicationStatusPending = "pending"
	// ApplicationStatusReviewed indicates that the application is under review
	ApplicationStatusReviewed = "reviewed"
	// ApplicationStatusShortlisted indicates that the applicant has been shortlisted
	ApplicationStatusShortlisted = "shortlisted"
	// ApplicationStatusRejected indicates that the application has been rejected
	ApplicationStatusRejected = "rejected"
	// ApplicationStatusAccepted indicates that the applicant has been accepted
	ApplicationStatusAccepted = "accepted"
)

// ApplicationStatuses lists every status an application can carry
var ApplicationStatuses = []string{
	ApplicationStatusPending,
	ApplicationStatusReviewed,
	ApplicationStatusShortlisted,
	ApplicationStatusRejected,
	ApplicationStatusAccepted,
}

// ValidApplicationStatus reports whether s is one of the five allowed statuses
func ValidApplicationStatus(s string) bool {
	for _, v := range ApplicationStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Application represents a job application record. The composite unique
// index on (job_id, applicant_id) is what rejects duplicate
// applications, including concurrent ones.
type Application struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	JobID uint `gorm:"not null;index;uniqueIndex:idx_app_job_applicant" json:"job_id"`
	Job   Job  `gorm:"foreignKey:JobID;references:ID" json:"-"`

	ApplicantID uint    `gorm:"not null;index;uniqueIndex:idx_app_job_applicant" json:"applicant_id"`
	Applicant   Student `gorm:"foreignKey:ApplicantID;references:ID" json:"applicant"`

	CoverLetter string `gorm:"type:text" json:"cover_letter"`

	// Resume is copied from the applicant's stored CV at creation time,
	// never supplied independently.
	ResumeID *int `json:"resume_id"`
	Resume   File `gorm:"foreignKey:ResumeID;references:ID" json:"-"`

	AdditionalDocumentsID *int `json:"additional_documents_id"`
	AdditionalDocuments   File `gorm:"foreignKey:AdditionalDocumentsID;references:ID" json:"-"`

	AppliedDate time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"applied_date"`
	Status      string    `gorm:"type:text;default:pending" json:"status"`
	Notes       string    `gorm:"type:text" json:"notes"`
}
