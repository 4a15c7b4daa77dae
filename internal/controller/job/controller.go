// Package job provides HTTP handlers for job catalog operations.
package job

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"UniHire-backend/internal/access"
	"UniHire-backend/internal/database"
	"UniHire-backend/internal/model"
	"UniHire-backend/internal/utilities"
)

// JobController handles job catalog related endpoints
type JobController struct {
	DB *database.DBinstanceStruct
}

// NewJobController creates a new instance of JobController
func NewJobController(db *database.DBinstanceStruct) *JobController {
	return &JobController{
		DB: db,
	}
}

// CreateJobHandler handles the creation of a new job posting by an employer.
// @Summary Create job posting based on given json structure
// @Description Only employers have access to this endpoint. Title must be at least 5 characters, description at least 20.
// @Tags Job
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param Job body model.EditableJobInfo true "Input job information"
// @Success 201 {object} model.Job "Successfully create job posting"
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body or constraint violation"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as employer"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs/create [post]
func (jc *JobController) CreateJobHandler(c *gin.Context) {

	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	caller, err := access.Resolve(jc.DB, user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve employer information: %s", err.Error()),
		})
		return
	}
	if caller.Employer == nil {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{Error: "Only employers can create jobs"})
		return
	}

	// construct job posting from request
	job := model.Job{}
	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&job.EditableJobInfo); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	if err := job.EditableJobInfo.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	job.EmployerID = caller.Employer.ID
	if err := jc.DB.Omit("Employer").Create(&job).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to create job: ", err),
		})
		return
	}

	// Reload to pick up database-side defaults (posted_on, is_active)
	if err := jc.DB.Preload("Employer").Preload("Employer.User").First(&job, job.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve created job: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusCreated, job)
}

// GetJobs fetches all active job postings that match query from the database
// and returns them as a JSON response, newest first.
// @Summary Get active job postings based on query
// @Description Every query param is optional; matching is substring and case insensitive
// @Tags Job
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param search query string false "Match against title, description, and detailed experience"
// @Param location query string false "Match against location"
// @Param type query string false "Match against job type"
// @Param experience query string false "Match against experience level"
// @Success 200 {array} model.JobResponse "Return active job posting(s)"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs [get]
func (jc *JobController) GetJobs(c *gin.Context) {

	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	caller, err := access.Resolve(jc.DB, user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve profile information: %s", err.Error()),
		})
		return
	}

	rawSearch := c.Query("search")
	rawLocation := c.Query("location")
	rawJobType := c.Query("type")
	rawExperience := c.Query("experience")

	var rawJobs []model.Job

	result := jc.DB.Preload("Employer").
		Preload("Employer.User").
		Preload("Applications").
		Where("is_active = ?", true)

	if rawSearch != "" {
		pattern := "%" + rawSearch + "%"
		result = result.Where(
			"title ILIKE ? OR description ILIKE ? OR detailed_experience ILIKE ?",
			pattern, pattern, pattern,
		)
	}

	if rawLocation != "" {
		result = result.Where("location ILIKE ?", "%"+rawLocation+"%")
	}

	if rawJobType != "" {
		result = result.Where("type ILIKE ?", "%"+rawJobType+"%")
	}

	if rawExperience != "" {
		result = result.Where("experience ILIKE ?", "%"+rawExperience+"%")
	}

	if err := result.Order("posted_on DESC").Find(&rawJobs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to fetch jobs: ", err.Error()),
		})
		return
	}

	jobs := []model.JobResponse{}
	for _, rawJob := range rawJobs {
		resp, err := rawJob.ToJobResponse(caller.StudentID())
		if err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprint("Failed to process job: ", err.Error()),
			})
			return
		}
		jobs = append(jobs, resp)
	}

	c.JSON(http.StatusOK, jobs)
}

// GetJobByID fetches a job posting by its ID from the database
// and returns it as a JSON response.
// @Summary Get job posting by ID
// @Description Retrieve a specific job posting using its unique ID
// @Tags Job
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "ID of desired job"
// @Success 200 {object} model.JobResponse "Return the job with the specified ID"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs/{id} [get]
func (jc *JobController) GetJobByID(c *gin.Context) {
	id := c.Param("id")

	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	caller, err := access.Resolve(jc.DB, user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve profile information: %s", err.Error()),
		})
		return
	}

	job := model.Job{}
	if err := jc.DB.
		Preload("Employer").
		Preload("Employer.User").
		Preload("Applications").
		Where("id = ?", id).
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

	resp, err := job.ToJobResponse(caller.StudentID())
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to process job: ", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// EditJob allows an employer to update a job posting they own.
// @Summary Edit job posting based on given json structure
// @Description Only the employer that owns the posting has access to this endpoint
// @Tags Job
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "ID of desired job"
// @Param Job body model.EditableJobInfo true "Input job information"
// @Success 200 {object} model.Job "Successfully update job posting"
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Do not have permission to edit"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs/{id} [patch]
func (jc *JobController) EditJob(c *gin.Context) {

	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	id := c.Param("id")

	job := model.Job{}

	// Find existing job posting
	if err := jc.DB.Where("id = ?", id).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Job not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve job: %s", err.Error()),
		})
		return
	}

	caller, err := access.Resolve(jc.DB, user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve profile information: %s", err.Error()),
		})
		return
	}

	if err := access.Check(caller, access.ActionEditJob, &job); err != nil {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{
			Error: "You can only edit your own job postings",
		})
		return
	}

	// Bind incoming JSON to a temporary struct to avoid overwriting ownership fields
	updated := model.Job{}
	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&updated.EditableJobInfo); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to parse request body: %s", err.Error()),
		})
		return
	}

	// Update fields on the existing job record without saving associations
	if err := jc.DB.Model(&job).Updates(updated).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update job: %s", err.Error()),
		})
		return
	}

	// Reload the job to return the latest data
	if err := jc.DB.Preload("Employer").Where("id = ?", job.ID).First(&job).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve updated job: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, job)
}

// DeleteJob allows an employer to delete a job posting they own.
// The removal is hard and cascades to the job's applications.
// @Summary Delete given job posting ID
// @Description Only the employer that owns the posting has access to this endpoint
// @Tags Job
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "ID of desired job"
// @Success 200 {object} utilities.MessageResponse "Successfully delete job posting"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Do not have permission to delete this posting"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs/{id} [delete]
func (jc *JobController) DeleteJob(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	id := c.Param("id")

	job := model.Job{}
	if err := jc.DB.Where("id = ?", id).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Job not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve job: %s", err.Error()),
		})
		return
	}

	caller, err := access.Resolve(jc.DB, user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve profile information: %s", err.Error()),
		})
		return
	}

	if err := access.Check(caller, access.ActionDeleteJob, &job); err != nil {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{
			Error: "You can only delete your own job postings",
		})
		return
	}

	if err := jc.DB.Select("Applications").Delete(&job).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to delete job: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Job deleted"})
}

// GetMyJobs lists every job posting owned by the calling employer,
// newest first, including inactive ones.
// @Summary List the calling employer's job postings
// @Tags Job
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {array} model.JobResponse "Return the employer's job postings"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as employer"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs/my [get]
func (jc *JobController) GetMyJobs(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	caller, err := access.Resolve(jc.DB, user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve profile information: %s", err.Error()),
		})
		return
	}
	if caller.Employer == nil {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{Error: "Only employers can view their job postings"})
		return
	}

	var rawJobs []model.Job
	if err := jc.DB.Preload("Employer").
		Preload("Employer.User").
		Preload("Applications").
		Where("employer_id = ?", caller.Employer.ID).
		Order("posted_on DESC").
		Find(&rawJobs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to fetch jobs: ", err.Error()),
		})
		return
	}

	jobs := []model.JobResponse{}
	for _, rawJob := range rawJobs {
		resp, err := rawJob.ToJobResponse(0)
		if err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprint("Failed to process job: ", err.Error()),
			})
			return
		}
		jobs = append(jobs, resp)
	}

	c.JSON(http.StatusOK, jobs)
}

// GetJobStats returns aggregate counters for the calling employer:
// total jobs, active jobs, and applications across all of their jobs.
// Computed on demand, not cached.
// @Summary Get job statistics for the calling employer
// @Tags Job
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} model.StatsResponse "Aggregate counters"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as employer"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs/stats [get]
func (jc *JobController) GetJobStats(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	caller, err := access.Resolve(jc.DB, user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve profile information: %s", err.Error()),
		})
		return
	}
	if caller.Employer == nil {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{Error: "Only employers can view job stats"})
		return
	}

	stats, err := ComputeStats(jc.DB, caller.Employer.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to compute stats: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// ComputeStats counts the employer's jobs, active jobs, and the
// applications across all of them.
func ComputeStats(db *database.DBinstanceStruct, employerID uint) (model.StatsResponse, error) {
	var stats model.StatsResponse

	if err := db.Model(&model.Job{}).
		Where("employer_id = ?", employerID).
		Count(&stats.TotalJobs).Error; err != nil {
		return stats, err
	}

	if err := db.Model(&model.Job{}).
		Where("employer_id = ? AND is_active = ?", employerID, true).
		Count(&stats.ActiveJobs).Error; err != nil {
		return stats, err
	}

	if err := db.Model(&model.Application{}).
		Joins("JOIN jobs ON jobs.id = applications.job_id").
		Where("jobs.employer_id = ?", employerID).
		Count(&stats.TotalApplications).Error; err != nil {
		return stats, err
	}

	return stats, nil
}
