package auth

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

// LocalAuthHandler holds DB reference for handler methods.
type LocalAuthHandler struct {
	DB *database.DBinstanceStruct
}

// NewLocalAuthHandler creates a new instance of LocalAuthHandler with the provided database connection.
func NewLocalAuthHandler(db *database.DBinstanceStruct) *LocalAuthHandler {
	return &LocalAuthHandler{
		DB: db,
	}
}

type registerInfo struct {
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
	Role      string `json:"role" binding:"required,oneof=student employer"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`

	// Student fields
	Degree      string `json:"degree"`
	YearOfStudy string `json:"year_of_study"`

	// Employer fields
	CompanyName string `json:"company_name"`
	Industry    string `json:"industry"`
}

type loginInfo struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Authenticate verifies a username/password pair against the stored
// bcrypt hash and returns the matching user.
func Authenticate(db *database.DBinstanceStruct, username, password string) (model.User, error) {
	var user model.User
	if err := db.Where("username = ?", username).First(&user).Error; err != nil {
		return model.User{}, err
	}
	if user.Password == "" || !utilities.VerifyPassword(password, user.Password) {
		return model.User{}, gorm.ErrRecordNotFound
	}
	return user, nil
}

// LocalRegisterHandler function handles local registration by receiving account and profile info.
// The role-matching profile is provisioned by the user create hook; the
// extra profile fields from the form are merged in afterwards.
// @Summary Handles local registration
// @Description Username must not already exist and password must be at least 8 characters long
// @Tags Auth
// @Accept json
// @Produce json
// @Param Info body registerInfo true "role can be only 'student' or 'employer'"
// @Success 201 {object} model.StudentResponse "If role is student"
// @Success 201 {object} model.EmployerResponse "If role is employer"
// @Failure 400 {object} utilities.ErrorResponse "Info provided not met the condition"
// @Failure 500 {object} utilities.ErrorResponse "Database or password hashing error"
// @Router /auth/register [post]
func (lh *LocalAuthHandler) LocalRegisterHandler(c *gin.Context) {
	var info registerInfo

	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Username, email, password, and Role (Only 'student' or 'employer') must be provided",
		})
		return
	}

	var user model.User
	err := lh.DB.Where("username = ?", info.Username).First(&user).Error

	switch {
	case err == nil:
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Username already exist",
		})
		return

	case errors.Is(err, gorm.ErrRecordNotFound):
		// Do nothing

	default:
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Database error: %s", err.Error()),
		})
		return
	}

	if len(info.Password) < 8 {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Password should longer or equal to 8 characters",
		})
		return
	}

	hashedPassword, err := utilities.HashPassword(info.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed hash password: %s", err.Error()),
		})
		return
	}

	newUser := model.User{
		Username: info.Username,
		Password: hashedPassword,
		Role:     info.Role,
		EditableUserInfo: model.EditableUserInfo{
			Email:     info.Email,
			FirstName: info.FirstName,
			LastName:  info.LastName,
		},
	}
	if err := lh.DB.Create(&newUser).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to create user: %s", err.Error()),
		})
		return
	}

	accessToken, _, err := GenerateStandardToken(newUser.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to generate access token: %s", err.Error()),
		})
		return
	}

	switch info.Role {
	case model.RoleStudent:
		edited := model.EditableStudentInfo{
			Degree:      info.Degree,
			YearOfStudy: info.YearOfStudy,
		}
		if err := lh.DB.Model(&model.Student{}).
			Where("user_id = ?", newUser.ID).
			Updates(edited).Error; err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprintf("Failed to update student profile: %s", err.Error()),
			})
			return
		}

		var student model.Student
		if err := lh.DB.Preload("User").Where("user_id = ?", newUser.ID).First(&student).Error; err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprintf("Failed to retrieve student profile: %s", err.Error()),
			})
			return
		}

		c.JSON(http.StatusCreated, model.StudentResponse{
			User:        student,
			AccessToken: accessToken,
		})
	case model.RoleEmployer:
		edited := model.EditableEmployerInfo{
			CompanyName: info.CompanyName,
			Industry:    info.Industry,
		}
		if err := lh.DB.Model(&model.Employer{}).
			Where("user_id = ?", newUser.ID).
			Updates(edited).Error; err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprintf("Failed to update employer profile: %s", err.Error()),
			})
			return
		}

		var employer model.Employer
		if err := lh.DB.Preload("User").Where("user_id = ?", newUser.ID).First(&employer).Error; err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprintf("Failed to retrieve employer profile: %s", err.Error()),
			})
			return
		}

		c.JSON(http.StatusCreated, model.EmployerResponse{
			User:        employer,
			AccessToken: accessToken,
		})
	}
}

// LocalLoginHandler function handles local login by receiving username and password
// @Summary Handles local login by receiving username and password
// @Description Username must exist and password match
// @Tags Auth
// @Accept json
// @Produce json
// @Param Info body loginInfo true "Credentials for login"
// @Success 200 {object} model.StudentResponse "If role is student"
// @Success 200 {object} model.EmployerResponse "If role is employer"
// @Failure 400 {object} utilities.ErrorResponse "Info provided not met the condition"
// @Failure 401 {object} utilities.ErrorResponse "Username not exist or password incorrect"
// @Failure 500 {object} utilities.ErrorResponse "Database or password hashing error"
// @Router /auth/login [post]
func (lh *LocalAuthHandler) LocalLoginHandler(c *gin.Context) {
	var info loginInfo

	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Username or password is not provided",
		})
		return
	}

	user, err := Authenticate(lh.DB, info.Username, info.Password)

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{
			Error: "Username or password is incorrect",
		})
		return

	case err == nil:
		// Do nothing

	default:
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Database error: %s", err.Error()),
		})
		return
	}

	accessToken, _, err := GenerateStandardToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to generate access token: %s", err.Error()),
		})
		return
	}

	switch user.Role {
	case model.RoleStudent:
		var student model.Student
		if err := lh.DB.Preload("User").Where("user_id = ?", user.ID).First(&student).Error; err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprintf("Failed to retrieve user data: %s", err.Error()),
			})
			return
		}

		c.JSON(http.StatusOK, model.StudentResponse{
			User:        student,
			AccessToken: accessToken,
		})
	case model.RoleEmployer:
		var employer model.Employer
		if err := lh.DB.Preload("User").Where("user_id = ?", user.ID).First(&employer).Error; err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprintf("Failed to retrieve user data: %s", err.Error()),
			})
			return
		}

		c.JSON(http.StatusOK, model.EmployerResponse{
			User:        employer,
			AccessToken: accessToken,
		})
	default:
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("User role %q has no profile kind", user.Role),
		})
	}
}
