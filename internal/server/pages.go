package server

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"

	"UniHire-backend/internal/auth"
	"UniHire-backend/internal/controller/job"
	"UniHire-backend/internal/model"
	"UniHire-backend/internal/utilities"
)

// featuredJobCount is how many newest active jobs the home page shows.
const featuredJobCount = 6

// registerPages mounts the server-rendered page routes. Pages
// authenticate through the token cookie; gated pages redirect
// anonymous visitors to the login form.
func (s *MyServer) registerPages(r *gin.Engine) {
	glob := os.Getenv("TEMPLATES_GLOB")
	if glob == "" {
		glob = "templates/*.html"
	}
	r.LoadHTMLGlob(glob)

	r.GET("/", s.homePage)
	r.GET("/listing/", s.listingPage)
	r.GET("/job_detail/:id/", s.jobDetailPage)
	r.GET("/apply/:job_id/", s.applyPage)

	users := r.Group("/users")
	{
		users.GET("/register/", s.registerForm)
		users.POST("/register/", s.registerSubmit)
		users.GET("/login/", s.loginForm)
		users.POST("/login/", s.loginSubmit)
		users.GET("/logout/", s.logoutPage)
		users.GET("/student/profile/", s.studentProfilePage)
		users.GET("/student/upload-cv/", s.uploadCVPage)
		users.GET("/employer/dashboard/", s.employerDashboardPage)
	}
}

// currentUser resolves the visitor from the token cookie.
func (s *MyServer) currentUser(c *gin.Context) (model.User, bool) {
	cookie, err := c.Cookie(auth.AuthCookieName)
	if err != nil || cookie == "" {
		return model.User{}, false
	}

	token, err := auth.ValidatedToken(cookie)
	if err != nil || !token.Valid {
		return model.User{}, false
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Issuer != auth.JwtIssuer {
		return model.User{}, false
	}

	var user model.User
	if err := s.DB.Where("id = ?", claims.Subject).First(&user).Error; err != nil {
		return model.User{}, false
	}
	return user, true
}

func (s *MyServer) homePage(c *gin.Context) {
	user, _ := s.currentUser(c)

	var jobs []model.Job
	if err := s.DB.Preload("Employer").
		Where("is_active = ?", true).
		Order("posted_on DESC").
		Limit(featuredJobCount).
		Find(&jobs).Error; err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"error": err.Error()})
		return
	}

	c.HTML(http.StatusOK, "home.html", gin.H{"user": user, "jobs": jobs})
}

func (s *MyServer) listingPage(c *gin.Context) {
	user, _ := s.currentUser(c)

	var jobs []model.Job
	query := s.DB.Preload("Employer").Where("is_active = ?", true)
	if search := c.Query("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Where(
			"title ILIKE ? OR description ILIKE ? OR detailed_experience ILIKE ?",
			pattern, pattern, pattern,
		)
	}
	if err := query.Order("posted_on DESC").Find(&jobs).Error; err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"error": err.Error()})
		return
	}

	c.HTML(http.StatusOK, "listing.html", gin.H{
		"user":   user,
		"jobs":   jobs,
		"search": c.Query("search"),
	})
}

func (s *MyServer) jobDetailPage(c *gin.Context) {
	user, _ := s.currentUser(c)

	var jobRecord model.Job
	if err := s.DB.Preload("Employer").Preload("Employer.User").
		Where("id = ?", c.Param("id")).First(&jobRecord).Error; err != nil {
		c.HTML(http.StatusNotFound, "error.html", gin.H{"error": "Job not found"})
		return
	}

	c.HTML(http.StatusOK, "job_detail.html", gin.H{"user": user, "job": jobRecord})
}

func (s *MyServer) applyPage(c *gin.Context) {
	user, ok := s.currentUser(c)
	if !ok {
		c.Redirect(http.StatusFound, "/users/login/")
		return
	}
	if !user.IsStudent() {
		c.HTML(http.StatusForbidden, "error.html", gin.H{"error": "Only students can apply for jobs"})
		return
	}

	var jobRecord model.Job
	if err := s.DB.Preload("Employer").
		Where("id = ?", c.Param("job_id")).First(&jobRecord).Error; err != nil {
		c.HTML(http.StatusNotFound, "error.html", gin.H{"error": "Job not found"})
		return
	}
	if !jobRecord.Active() {
		c.HTML(http.StatusBadRequest, "error.html", gin.H{"error": "This job posting is no longer active"})
		return
	}

	c.HTML(http.StatusOK, "apply.html", gin.H{"user": user, "job": jobRecord})
}

func (s *MyServer) registerForm(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", gin.H{})
}

func (s *MyServer) registerSubmit(c *gin.Context) {
	username := c.PostForm("username")
	email := c.PostForm("email")
	password := c.PostForm("password")
	role := c.PostForm("role")

	if username == "" || email == "" || len(password) < 8 {
		c.HTML(http.StatusBadRequest, "register.html", gin.H{
			"error": "Username, email, and a password of at least 8 characters are required",
		})
		return
	}
	if role != model.RoleStudent && role != model.RoleEmployer {
		c.HTML(http.StatusBadRequest, "register.html", gin.H{"error": "Role must be student or employer"})
		return
	}

	hashed, err := utilities.HashPassword(password)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"error": err.Error()})
		return
	}

	user := model.User{
		Username: username,
		Password: hashed,
		Role:     role,
		EditableUserInfo: model.EditableUserInfo{
			Email:     email,
			FirstName: c.PostForm("first_name"),
			LastName:  c.PostForm("last_name"),
		},
	}
	if err := s.DB.Create(&user).Error; err != nil {
		c.HTML(http.StatusBadRequest, "register.html", gin.H{
			"error": "Username or email already taken",
		})
		return
	}

	s.issueCookie(c, user)
	c.Redirect(http.StatusFound, "/")
}

func (s *MyServer) loginForm(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{})
}

func (s *MyServer) loginSubmit(c *gin.Context) {
	user, err := auth.Authenticate(s.DB, c.PostForm("username"), c.PostForm("password"))
	if err != nil {
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{
			"error": "Incorrect username or password",
		})
		return
	}

	s.issueCookie(c, user)
	c.Redirect(http.StatusFound, "/")
}

func (s *MyServer) logoutPage(c *gin.Context) {
	c.SetCookie(auth.AuthCookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}

func (s *MyServer) issueCookie(c *gin.Context, user model.User) {
	token, _, err := auth.GenerateStandardToken(user.ID)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"error": err.Error()})
		return
	}
	c.SetCookie(auth.AuthCookieName, token, 24*60*60, "/", "", false, true)
}

func (s *MyServer) studentProfilePage(c *gin.Context) {
	user, ok := s.currentUser(c)
	if !ok {
		c.Redirect(http.StatusFound, "/users/login/")
		return
	}
	if !user.IsStudent() {
		c.HTML(http.StatusForbidden, "error.html", gin.H{"error": "Student account required"})
		return
	}

	var student model.Student
	if err := s.DB.Preload("User").Where("user_id = ?", user.ID).First(&student).Error; err != nil {
		c.HTML(http.StatusNotFound, "error.html", gin.H{"error": "Student profile not found"})
		return
	}

	var applications []model.Application
	if err := s.DB.Preload("Job").
		Where("applicant_id = ?", student.ID).
		Order("applied_date DESC").
		Find(&applications).Error; err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"error": err.Error()})
		return
	}

	c.HTML(http.StatusOK, "student_profile.html", gin.H{
		"user":         user,
		"student":      student,
		"applications": applications,
	})
}

func (s *MyServer) uploadCVPage(c *gin.Context) {
	user, ok := s.currentUser(c)
	if !ok {
		c.Redirect(http.StatusFound, "/users/login/")
		return
	}
	if !user.IsStudent() {
		c.HTML(http.StatusForbidden, "error.html", gin.H{"error": "Student account required"})
		return
	}

	c.HTML(http.StatusOK, "upload_cv.html", gin.H{"user": user})
}

func (s *MyServer) employerDashboardPage(c *gin.Context) {
	user, ok := s.currentUser(c)
	if !ok {
		c.Redirect(http.StatusFound, "/users/login/")
		return
	}
	if !user.IsEmployer() {
		c.HTML(http.StatusForbidden, "error.html", gin.H{"error": "Employer account required"})
		return
	}

	var employer model.Employer
	if err := s.DB.Preload("User").Where("user_id = ?", user.ID).First(&employer).Error; err != nil {
		c.HTML(http.StatusNotFound, "error.html", gin.H{"error": "Employer profile not found"})
		return
	}

	stats, err := job.ComputeStats(s.DB, employer.ID)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"error": err.Error()})
		return
	}

	var jobs []model.Job
	if err := s.DB.Preload("Applications").
		Where("employer_id = ?", employer.ID).
		Order("posted_on DESC").
		Find(&jobs).Error; err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"error": err.Error()})
		return
	}

	c.HTML(http.StatusOK, "employer_dashboard.html", gin.H{
		"user":     user,
		"employer": employer,
		"stats":    stats,
		"jobs":     jobs,
	})
}
