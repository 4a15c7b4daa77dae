package job

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go"

	"UniHire-backend/internal/auth"
	"UniHire-backend/internal/database"
	"UniHire-backend/internal/middleware"
	"UniHire-backend/internal/model"
	"UniHire-backend/internal/testutil"
)

var testDB *database.DBinstanceStruct

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	var err error
	var midTeardown func(context.Context, ...testcontainers.TerminateOption) error
	midTeardown, testDB, err = database.GetTestDB()
	if err != nil {
		os.Exit(1)
	}
	m.Run()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if midTeardown != nil {
		_ = midTeardown(ctx)
	}
}

func newTestRouter() *gin.Engine {
	r := gin.Default()
	jc := NewJobController(testDB)
	r.GET("/jobs", middleware.RequireAuth(testDB), jc.GetJobs)
	r.GET("/jobs/my", middleware.RequireAuth(testDB), middleware.CheckRole(model.RoleEmployer), jc.GetMyJobs)
	r.GET("/jobs/stats", middleware.RequireAuth(testDB), middleware.CheckRole(model.RoleEmployer), jc.GetJobStats)
	r.GET("/jobs/:id", middleware.RequireAuth(testDB), jc.GetJobByID)
	r.POST("/jobs/create", middleware.RequireAuth(testDB), middleware.CheckRole(model.RoleEmployer), jc.CreateJobHandler)
	r.PATCH("/jobs/:id", middleware.RequireAuth(testDB), middleware.CheckRole(model.RoleEmployer), jc.EditJob)
	r.DELETE("/jobs/:id", middleware.RequireAuth(testDB), middleware.CheckRole(model.RoleEmployer), jc.DeleteJob)
	return r
}

func validJobBody() gin.H {
	return gin.H{
		"title":       "Platform Engineer",
		"description": "Design and operate the deployment pipeline for our services.",
		"type":        "Full-time",
		"experience":  "Mid Level",
		"location":    "Bangkok",
	}
}

func TestCreateJob_Success(t *testing.T) {
	employerToken, err := auth.GetAccessToken(t, testDB, database.TestUserEmployer1.Username, database.TestSeedPassword)
	assert.NoError(t, err)

	r := newTestRouter()
	rec, resp := testutil.MakeJSONRequest(validJobBody(), employerToken, r, "/jobs/create", http.MethodPost)

	assert.Equal(t, http.StatusCreated, rec.Code, "unexpected status, body: %s", rec.Body.String())
	assert.Equal(t, "Platform Engineer", resp["title"])
	assert.Equal(t, true, resp["is_active"], "new jobs default to active")
}

func TestCreateJob_TitleTooShort(t *testing.T) {
	employerToken, err := auth.GetAccessToken(t, testDB, database.TestUserEmployer1.Username, database.TestSeedPassword)
	assert.NoError(t, err)

	body := validJobBody()
	body["title"] = "Dev"

	r := newTestRouter()
	rec, resp := testutil.MakeJSONRequest(body, employerToken, r, "/jobs/create", http.MethodPost)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, resp["error"], "title")
}

func TestCreateJob_DescriptionTooShort(t *testing.T) {
	employerToken, err := auth.GetAccessToken(t, testDB, database.TestUserEmployer1.Username, database.TestSeedPassword)
	assert.NoError(t, err)

	body := validJobBody()
	body["description"] = "Too short"

	r := newTestRouter()
	rec, resp := testutil.MakeJSONRequest(body, employerToken, r, "/jobs/create", http.MethodPost)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, resp["error"], "description")
}

func TestCreateJob_StudentForbidden(t *testing.T) {
	studentToken, err := auth.GetAccessToken(t, testDB, database.TestUserStudent1.Username, database.TestSeedPassword)
	assert.NoError(t, err)

	r := newTestRouter()
	rec, _ := testutil.MakeJSONRequest(validJobBody(), studentToken, r, "/jobs/create", http.MethodPost)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGetJobs_ActiveOnly(t *testing.T) {
	studentToken, err := auth.GetAccessToken(t, testDB, database.TestUserStudent1.Username, database.TestSeedPassword)
	assert.NoError(t, err)

	r := newTestRouter()
	rec, resp := testutil.MakeJSONListRequest(nil, studentToken, r, "/jobs", http.MethodGet)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, resp)
	for _, jobObj := range resp {
		assert.Equal(t, true, jobObj["is_active"], "inactive jobs must not be listed")
		assert.NotEqual(t, float64(database.TestJob3.ID), jobObj["id"], "seeded inactive job leaked into listing")
	}
}

func TestGetJobs_SearchFilter(t *testing.T) {
	studentToken, err := auth.GetAccessToken(t, testDB, database.TestUserStudent1.Username, database.TestSeedPassword)
	assert.NoError(t, err)

	r := newTestRouter()
	rec, resp := testutil.MakeJSONListRequest(nil, studentToken, r, "/jobs?search=microservices", http.MethodGet)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, resp, "seeded backend job mentions microservices")
	for _, jobObj := range resp {
		assert.Equal(t, float64(database.TestJob1.ID), jobObj["id"])
	}

	rec2, resp2 := testutil.MakeJSONListRequest(nil, studentToken, r, "/jobs?search=zeppelin", http.MethodGet)
	assert.Equal(t, http.StatusOK, rec2.Code)
	assert.Empty(t, resp2)
}

func TestGetJobByID_NotFound(t *testing.T) {
	studentToken, err := auth.GetAccessToken(t, testDB, database.TestUserStudent1.Username, database.TestSeedPassword)
	assert.NoError(t, err)

	r := newTestRouter()
	rec, resp := testutil.MakeJSONRequest(nil, studentToken, r, "/jobs/999999", http.MethodGet)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, resp["error"], "Job not found")
}

func TestEditJob_Owner(t *testing.T) {
	ownerToken, err := auth.GetAccessToken(t, testDB, database.TestUserEmployer1.Username, database.TestSeedPassword)
	assert.NoError(t, err)

	r := newTestRouter()
	endpoint := fmt.Sprintf("/jobs/%d", database.TestJob1.ID)

	rec, resp := testutil.MakeJSONRequest(gin.H{"location": "Remote"}, ownerToken, r, endpoint, http.MethodPatch)

	assert.Equal(t, http.StatusOK, rec.Code, "unexpected status, body: %s", rec.Body.String())
	assert.Equal(t, "Remote", resp["location"])
}

func TestEditJob_NonOwner(t *testing.T) {
	otherToken, err := auth.GetAccessToken(t, testDB, database.TestUserEmployer2.Username, database.TestSeedPassword)
	assert.NoError(t, err)

	r := newTestRouter()
	endpoint := fmt.Sprintf("/jobs/%d", database.TestJob1.ID)

	rec, resp := testutil.MakeJSONRequest(gin.H{"location": "Mars"}, otherToken, r, endpoint, http.MethodPatch)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, resp["error"], "your own job postings")
}

func TestEditJob_Deactivate(t *testing.T) {
	ownerToken, err := auth.GetAccessToken(t, testDB, database.TestUserEmployer1.Username, database.TestSeedPassword)
	assert.NoError(t, err)

	// fresh job so other tests keep their seeded data
	r := newTestRouter()
	rec, resp := testutil.MakeJSONRequest(validJobBody(), ownerToken, r, "/jobs/create", http.MethodPost)
	assert.Equal(t, http.StatusCreated, rec.Code)
	jobID := resp["id"].(float64)

	endpoint := fmt.Sprintf("/jobs/%.0f", jobID)
	rec2, resp2 := testutil.MakeJSONRequest(gin.H{"is_active": false}, ownerToken, r, endpoint, http.MethodPatch)

	assert.Equal(t, http.StatusOK, rec2.Code, "unexpected status, body: %s", rec2.Body.String())
	assert.Equal(t, false, resp2["is_active"])
}

func TestDeleteJob(t *testing.T) {
	ownerToken, err := auth.GetAccessToken(t, testDB, database.TestUserEmployer1.Username, database.TestSeedPassword)
	assert.NoError(t, err)

	r := newTestRouter()
	rec, resp := testutil.MakeJSONRequest(validJobBody(), ownerToken, r, "/jobs/create", http.MethodPost)
	assert.Equal(t, http.StatusCreated, rec.Code)
	jobID := resp["id"].(float64)

	endpoint := fmt.Sprintf("/jobs/%.0f", jobID)
	rec2, _ := testutil.MakeJSONRequest(nil, ownerToken, r, endpoint, http.MethodDelete)
	assert.Equal(t, http.StatusOK, rec2.Code)

	var count int64
	assert.NoError(t, testDB.Model(&model.Job{}).Where("id = ?", jobID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestDeleteJob_NonOwner(t *testing.T) {
	otherToken, err := auth.GetAccessToken(t, testDB, database.TestUserEmployer2.Username, database.TestSeedPassword)
	assert.NoError(t, err)

	r := newTestRouter()
	endpoint := fmt.Sprintf("/jobs/%d", database.TestJob1.ID)

	rec, _ := testutil.MakeJSONRequest(nil, otherToken, r, endpoint, http.MethodDelete)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGetMyJobs_IncludesInactive(t *testing.T) {
	ownerToken, err := auth.GetAccessToken(t, testDB, database.TestUserEmployer2.Username, database.TestSeedPassword)
	assert.NoError(t, err)

	r := newTestRouter()
	rec, resp := testutil.MakeJSONListRequest(nil, ownerToken, r, "/jobs/my", http.MethodGet)

	assert.Equal(t, http.StatusOK, rec.Code)

	found := false
	for _, jobObj := range resp {
		if jobObj["id"] == float64(database.TestJob3.ID) {
			found = true
			assert.Equal(t, false, jobObj["is_active"])
		}
	}
	assert.True(t, found, "the employer's own inactive job must appear")
}

func TestGetJobStats(t *testing.T) {
	ownerToken, err := auth.GetAccessToken(t, testDB, database.TestUserEmployer2.Username, database.TestSeedPassword)
	assert.NoError(t, err)

	r := newTestRouter()
	rec, resp := testutil.MakeJSONRequest(nil, ownerToken, r, "/jobs/stats", http.MethodGet)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, resp, "total_jobs")
	assert.Contains(t, resp, "active_jobs")
	assert.Contains(t, resp, "total_applications")

	total := resp["total_jobs"].(float64)
	active := resp["active_jobs"].(float64)
	assert.GreaterOrEqual(t, total, active)
}
