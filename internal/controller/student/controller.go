// Package student provides HTTP handlers for student profile management.
package student

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"UniHire-backend/internal/controller/file"
	"UniHire-backend/internal/database"
	"UniHire-backend/internal/model"
	"UniHire-backend/internal/utilities"
)

// StudentController handles student profile related endpoints
type StudentController struct {
	DB      *database.DBinstanceStruct
	Storage file.StorageClient
}

// NewStudentController creates a new instance of StudentController with the
// provided database connection and storage client.
func NewStudentController(db *database.DBinstanceStruct, storage file.StorageClient) *StudentController {
	return &StudentController{
		DB:      db,
		Storage: storage,
	}
}

type editStudentInfo struct {
	model.EditableUserInfo
	model.EditableStudentInfo
}

// loadProfile fetches the caller's student profile with its user record.
func (sc *StudentController) loadProfile(user model.User) (model.Student, error) {
	var student model.Student
	err := sc.DB.Preload("User").Where("user_id = ?", user.ID).First(&student).Error
	return student, err
}

// GetMyProfile returns the calling student's profile.
// @Summary Retrieve the calling student's profile
// @Tags Student
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} model.Student "Return the student profile"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Student profile not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /students/my [get]
func (sc *StudentController) GetMyProfile(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	student, err := sc.loadProfile(user)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Student profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve profile: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, student)
}

// EditProfile updates the calling student's profile. Only fields present
// in the request change; the generated student code never does.
// @Summary Edit the calling student's profile
// @Tags Student
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param profile body editStudentInfo true "Fields to update"
// @Success 200 {object} model.Student "Successfully updated profile"
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Student profile not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /students/my [patch]
func (sc *StudentController) EditProfile(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	student, err := sc.loadProfile(user)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Student profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve profile: %s", err.Error()),
		})
		return
	}

	var info editStudentInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	utilities.MergeNonEmpty(&student.User.EditableUserInfo, &info.EditableUserInfo)
	utilities.MergeNonEmpty(&student.EditableStudentInfo, &info.EditableStudentInfo)

	if err := sc.DB.Model(&student.User).Updates(student.User.EditableUserInfo).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update account: %s", err.Error()),
		})
		return
	}
	if err := sc.DB.Model(&student).Updates(student.EditableStudentInfo).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update profile: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, student)
}

// UploadCV replaces the calling student's stored CV. Applications already
// submitted keep the resume they were submitted with.
// @Summary Upload or replace the calling student's CV
// @Tags Student
// @Accept mpfd
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param file formData file true "CV to upload (pdf only)"
// @Success 200 {object} model.Student "Successfully uploaded CV"
// @Failure 400 {object} utilities.ErrorResponse "Missing file"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Student profile not found"
// @Failure 413 {object} utilities.ErrorResponse "File too large"
// @Failure 415 {object} utilities.ErrorResponse "Unsupported file extension"
// @Failure 500 {object} utilities.ErrorResponse "Storage error"
// @Router /students/my/cv [post]
func (sc *StudentController) UploadCV(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	student, err := sc.loadProfile(user)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Student profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve profile: %s", err.Error()),
		})
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "No file provided"})
		return
	}

	record, err := file.PersistFileData(c.Request.Context(), sc.DB, sc.Storage, header,
		file.PrefixCV, []string{".pdf"})
	if err != nil {
		c.JSON(file.UploadErrorStatus(err), utilities.ErrorResponse{Error: err.Error()})
		return
	}

	if err := sc.DB.Model(&student).Update("cv_id", record.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to attach CV: %s", err.Error()),
		})
		return
	}
	student.CVID = &record.ID

	c.JSON(http.StatusOK, student)
}
