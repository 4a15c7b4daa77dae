package employer

import (
	"context"
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
	ec := NewEmployerController(testDB)
	r.GET("/employers/my", middleware.RequireAuth(testDB), middleware.CheckRole(model.RoleEmployer), ec.GetMyProfile)
	r.PATCH("/employers/my", middleware.RequireAuth(testDB), middleware.CheckRole(model.RoleEmployer), ec.EditProfile)
	return r
}

func TestGetMyProfile(t *testing.T) {
	token, err := auth.GetAccessToken(t, testDB, database.TestUserEmployer1.Username, database.TestSeedPassword)
	assert.NoError(t, err)

	r := newTestRouter()
	rec, resp := testutil.MakeJSONRequest(nil, token, r, "/employers/my", http.MethodGet)

	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, database.TestEmployer1.EmployerCode, resp["employer_id"])
	assert.Equal(t, "TechNova", resp["company_name"])
}

func TestGetMyProfile_StudentForbidden(t *testing.T) {
	token, err := auth.GetAccessToken(t, testDB, database.TestUserStudent1.Username, database.TestSeedPassword)
	assert.NoError(t, err)

	r := newTestRouter()
	rec, _ := testutil.MakeJSONRequest(nil, token, r, "/employers/my", http.MethodGet)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestEditProfile(t *testing.T) {
	token, err := auth.GetAccessToken(t, testDB, database.TestUserEmployer2.Username, database.TestSeedPassword)
	assert.NoError(t, err)

	r := newTestRouter()
	body := gin.H{"industry": "Data Analytics"}
	rec, resp := testutil.MakeJSONRequest(body, token, r, "/employers/my", http.MethodPatch)

	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Data Analytics", resp["industry"])
	// untouched fields keep their seeded values
	assert.Equal(t, "DataForge", resp["company_name"])
	assert.Equal(t, database.TestEmployer2.EmployerCode, resp["employer_id"], "generated code never changes")
}
