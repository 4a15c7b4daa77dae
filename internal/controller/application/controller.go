// Package application provides HTTP handlers for the application ledger.
package application

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"UniHire-backend/internal/access"
	"UniHire-backend/internal/controller/file"
	"UniHire-backend/internal/database"
	"UniHire-backend/internal/model"
	"UniHire-backend/internal/utilities"
)

// ApplicationController handles job application related endpoints
type ApplicationController struct {
	DB      *database.DBinstanceStruct
	Storage file.StorageClient
}

// NewApplicationController creates a new instance of ApplicationController with
// the provided database connection and storage client. Storage may be nil.
func NewApplicationController(db *database.DBinstanceStruct, storage file.StorageClient) *ApplicationController {
	return &ApplicationController{
		DB:      db,
		Storage: storage,
	}
}

type createApplicationInfo struct {
	JobID                 uint   `json:"job_id" binding:"required"`
	CoverLetter           string `json:"cover_letter"`
	AdditionalDocumentsID *int   `json:"additional_documents_id"`
}

type statusUpdateInfo struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

// CreateApplication handles the creation of a new job application by a student.
// The resume is always the applicant's stored CV at submission time; the
// request cannot supply one. Duplicate (job, applicant) pairs are
// rejected by the storage layer's unique constraint.
// @Summary Create job application
// @Description Only students can access this endpoint; the target job must be active
// @Tags Application
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param application body createApplicationInfo true "Application information"
// @Success 201 {object} model.Application "Successfully applied to job"
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body, inactive job, missing CV, or duplicate application"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as student"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /applications/create [post]
func (ac *ApplicationController) CreateApplication(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	caller, err := access.Resolve(ac.DB, user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve profile information: %s", err.Error()),
		})
		return
	}
	if caller.Student == nil {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{Error: "Only students can apply for jobs"})
		return
	}

	var info createApplicationInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	var job model.Job
	if err := ac.DB.Where("id = ?", info.JobID).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Job not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve job: %s", err.Error()),
		})
		return
	}

	if !job.Active() {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "This job posting is no longer active",
		})
		return
	}

	if caller.Student.CVID == nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Upload a CV to your profile before applying",
		})
		return
	}

	// Snapshot the CV so a later replacement does not rewrite history
	resume, err := file.CopyFile(c.Request.Context(), ac.DB, ac.Storage,
		*caller.Student.CVID, file.PrefixResume)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to copy CV into application: %s", err.Error()),
		})
		return
	}

	application := model.Application{
		JobID:                 job.ID,
		ApplicantID:           caller.Student.ID,
		CoverLetter:           info.CoverLetter,
		ResumeID:              &resume.ID,
		AdditionalDocumentsID: info.AdditionalDocumentsID,
		Status:                model.ApplicationStatusPending,
	}

	if err := ac.DB.Omit("Job", "Applicant", "Resume", "AdditionalDocuments").
		Create(&application).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
					Error: "You have already applied to this job",
				})
				return
			case "23503":
				c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
					Error: fmt.Sprintf("Invalid document reference: %s", err.Error()),
				})
				return
			}
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to create application: %s", err.Error()),
		})
		return
	}

	// Reload to pick up database-side defaults (applied_date)
	if err := ac.DB.Preload("Applicant").Preload("Applicant.User").
		First(&application, application.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve created application: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusCreated, application)
}

// GetMyApplications lists the calling student's applications, newest first.
// @Summary List the calling student's applications
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {array} model.Application "Return the student's applications"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as student"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /applications/my [get]
func (ac *ApplicationController) GetMyApplications(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	caller, err := access.Resolve(ac.DB, user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve profile information: %s", err.Error()),
		})
		return
	}
	if caller.Student == nil {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{Error: "Only students can view their applications"})
		return
	}

	applications := []model.Application{}
	if err := ac.DB.Preload("Applicant").
		Preload("Applicant.User").
		Where("applicant_id = ?", caller.Student.ID).
		Order("applied_date DESC").
		Find(&applications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to fetch applications: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, applications)
}

// GetJobApplications lists every application for a job the calling
// employer owns, newest first. The lookup is scoped to the employer's
// own jobs, so a foreign job ID reads as not found.
// @Summary List applications for one of the calling employer's jobs
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param job_id path integer true "ID of the job"
// @Success 200 {array} model.Application "Return the job's applications"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as employer"
// @Failure 404 {object} utilities.ErrorResponse "Job not found among the employer's postings"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /applications/job/{job_id} [get]
func (ac *ApplicationController) GetJobApplications(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	caller, err := access.Resolve(ac.DB, user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve profile information: %s", err.Error()),
		})
		return
	}
	if caller.Employer == nil {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{Error: "Only employers can view job applications"})
		return
	}

	jobID := c.Param("job_id")

	var job model.Job
	if err := ac.DB.Where("id = ? AND employer_id = ?", jobID, caller.Employer.ID).
		First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Job not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve job: %s", err.Error()),
		})
		return
	}

	applications := []model.Application{}
	if err := ac.DB.Preload("Applicant").
		Preload("Applicant.User").
		Where("job_id = ?", job.ID).
		Order("applied_date DESC").
		Find(&applications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to fetch applications: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, applications)
}

// UpdateApplicationStatus lets the owning employer update the status
// and reviewer notes of an application for one of their jobs.
// @Summary Update application status or notes
// @Description Only the employer that owns the job has access to this endpoint
// @Tags Application
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "ID of the application"
// @Param update body statusUpdateInfo true "New status and/or notes"
// @Success 200 {object} model.Application "Successfully updated application"
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body or status value"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Do not have permission to update"
// @Failure 404 {object} utilities.ErrorResponse "Application not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /applications/{id}/update-status [patch]
func (ac *ApplicationController) UpdateApplicationStatus(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	id := c.Param("id")

	var application model.Application
	if err := ac.DB.Preload("Job").Where("id = ?", id).First(&application).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Application not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve application: %s", err.Error()),
		})
		return
	}

	caller, err := access.Resolve(ac.DB, user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve profile information: %s", err.Error()),
		})
		return
	}

	if err := access.Check(caller, access.ActionUpdateApplication, &application); err != nil {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{
			Error: "You can only update applications for your own job postings",
		})
		return
	}

	var info statusUpdateInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	updates := map[string]interface{}{}
	if info.Status != "" {
		if !model.ValidApplicationStatus(info.Status) {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
				Error: fmt.Sprintf("Status must be one of: %v", model.ApplicationStatuses),
			})
			return
		}
		updates["status"] = info.Status
	}
	if info.Notes != "" {
		updates["notes"] = info.Notes
	}

	if len(updates) > 0 {
		if err := ac.DB.Model(&application).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprintf("Failed to update application: %s", err.Error()),
			})
			return
		}
	}

	c.JSON(http.StatusOK, application)
}

// GetApplicationByID retrieves one application. Only the applicant and
// the employer that owns the job may see it.
// @Summary Retrieve one application
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "ID of the application"
// @Success 200 {object} model.Application "Return the application"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Do not have permission to view this application"
// @Failure 404 {object} utilities.ErrorResponse "Application not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /applications/{id} [get]
func (ac *ApplicationController) GetApplicationByID(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	id := c.Param("id")

	var application model.Application
	if err := ac.DB.Preload("Job").
		Preload("Job.Employer").
		Preload("Applicant").
		Preload("Applicant.User").
		Where("id = ?", id).First(&application).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Application not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve application: %s", err.Error()),
		})
		return
	}

	caller, err := access.Resolve(ac.DB, user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve profile information: %s", err.Error()),
		})
		return
	}

	if err := access.Check(caller, access.ActionViewApplication, &application); err != nil {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{
			Error: "You do not have permission to view this application",
		})
		return
	}

	c.JSON(http.StatusOK, application)
}
