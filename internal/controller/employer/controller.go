// Package employer provides HTTP handlers for employer profile management.
package employer

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"UniHire-backend/internal/database"
	"UniHire-backend/internal/model"
	"UniHire-backend/internal/utilities"
)

// EmployerController handles employer profile related endpoints
type EmployerController struct {
	DB *database.DBinstanceStruct
}

// NewEmployerController creates a new instance of EmployerController with the
// provided database connection.
func NewEmployerController(db *database.DBinstanceStruct) *EmployerController {
	return &EmployerController{
		DB: db,
	}
}

type editEmployerInfo struct {
	model.EditableUserInfo
	model.EditableEmployerInfo
}

func (ec *EmployerController) loadProfile(user model.User) (model.Employer, error) {
	var employer model.Employer
	err := ec.DB.Preload("User").Where("user_id = ?", user.ID).First(&employer).Error
	return employer, err
}

// GetMyProfile returns the calling employer's profile.
// @Summary Retrieve the calling employer's profile
// @Tags Employer
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} model.Employer "Return the employer profile"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Employer profile not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /employers/my [get]
func (ec *EmployerController) GetMyProfile(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	employer, err := ec.loadProfile(user)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Employer profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve profile: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, employer)
}

// EditProfile updates the calling employer's profile. Only fields present
// in the request change; the generated employer code never does.
// @Summary Edit the calling employer's profile
// @Tags Employer
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param profile body editEmployerInfo true "Fields to update"
// @Success 200 {object} model.Employer "Successfully updated profile"
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Employer profile not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /employers/my [patch]
func (ec *EmployerController) EditProfile(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	employer, err := ec.loadProfile(user)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Employer profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve profile: %s", err.Error()),
		})
		return
	}

	var info editEmployerInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	utilities.MergeNonEmpty(&employer.User.EditableUserInfo, &info.EditableUserInfo)
	utilities.MergeNonEmpty(&employer.EditableEmployerInfo, &info.EditableEmployerInfo)

	if err := ec.DB.Model(&employer.User).Updates(employer.User.EditableUserInfo).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update account: %s", err.Error()),
		})
		return
	}
	if err := ec.DB.Model(&employer).Updates(employer.EditableEmployerInfo).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update profile: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, employer)
}
