package file

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"

	"UniHire-backend/internal/auth"
	"UniHire-backend/internal/database"
	"UniHire-backend/internal/middleware"
	"UniHire-backend/internal/model"
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

type mockStorageClient struct {
	uploaded  map[string][]byte
	uploadErr error
}

func newMockStorageClient() *mockStorageClient {
	return &mockStorageClient{uploaded: make(map[string][]byte)}
}

func (m *mockStorageClient) Upload(_ context.Context, objectName string, content []byte) error {
	if m.uploadErr != nil {
		return m.uploadErr
	}
	m.uploaded[objectName] = content
	return nil
}

func (m *mockStorageClient) Download(_ context.Context, objectName string) ([]byte, error) {
	data, ok := m.uploaded[objectName]
	if !ok {
		return nil, fmt.Errorf("object %s not found", objectName)
	}
	return data, nil
}

func (m *mockStorageClient) Delete(_ context.Context, objectName string) error {
	delete(m.uploaded, objectName)
	return nil
}

func (m *mockStorageClient) ListObjects(_ context.Context, prefix string) ([]string, error) {
	var names []string
	for name := range m.uploaded {
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	return names, nil
}

// multipartRequest builds a one-file multipart request body.
func multipartRequest(t *testing.T, endpoint, filename string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req, err := http.NewRequest(http.MethodPost, endpoint, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestUploadDocument_CloudStorage(t *testing.T) {
	mockStorage := newMockStorageClient()
	fc := NewFileController(testDB, mockStorage)

	r := gin.New()
	r.POST("/files/documents", middleware.RequireAuth(testDB), fc.UploadDocument)

	token, err := auth.GetAccessToken(t, testDB, database.TestUserStudent1.Username, database.TestSeedPassword)
	require.NoError(t, err)

	req := multipartRequest(t, "/files/documents", "portfolio.pdf", []byte("%PDF-1.4 portfolio"))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Len(t, mockStorage.uploaded, 1)
	for name := range mockStorage.uploaded {
		assert.True(t, strings.HasPrefix(name, PrefixDocument+"/"))
	}
}

func TestUploadDocument_DatabaseFallback(t *testing.T) {
	fc := NewFileController(testDB, nil)

	r := gin.New()
	r.POST("/files/documents", middleware.RequireAuth(testDB), fc.UploadDocument)

	token, err := auth.GetAccessToken(t, testDB, database.TestUserStudent1.Username, database.TestSeedPassword)
	require.NoError(t, err)

	req := multipartRequest(t, "/files/documents", "notes.docx", []byte("notes"))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestUploadDocument_BadExtension(t *testing.T) {
	fc := NewFileController(testDB, nil)

	r := gin.New()
	r.POST("/files/documents", middleware.RequireAuth(testDB), fc.UploadDocument)

	token, err := auth.GetAccessToken(t, testDB, database.TestUserStudent1.Username, database.TestSeedPassword)
	require.NoError(t, err)

	req := multipartRequest(t, "/files/documents", "malware.exe", []byte("nope"))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	assert.Contains(t, rec.Body.String(), "unsupported file extension")
}

func TestCopyFile_SnapshotsContent(t *testing.T) {
	mockStorage := newMockStorageClient()
	mockStorage.uploaded["cvs/original.pdf"] = []byte("cv content")

	source := model.File{Extension: ".pdf"}
	objectName := "cvs/original.pdf"
	source.StorageObjectName = &objectName
	require.NoError(t, testDB.Create(&source).Error)

	copied, err := CopyFile(context.Background(), testDB, mockStorage, source.ID, PrefixResume)
	require.NoError(t, err)

	require.NotNil(t, copied.StorageObjectName)
	assert.True(t, strings.HasPrefix(*copied.StorageObjectName, PrefixResume+"/"))
	assert.Equal(t, []byte("cv content"), mockStorage.uploaded[*copied.StorageObjectName])
	assert.NotEqual(t, source.ID, copied.ID)
}

func TestGetFile_AccessControl(t *testing.T) {
	fc := NewFileController(testDB, nil)

	r := gin.New()
	r.GET("/files/:id", middleware.RequireAuth(testDB), fc.GetFile)

	// a resume attached to an application on employer1's job
	resume := model.File{Content: []byte("resume bytes"), Extension: ".pdf"}
	require.NoError(t, testDB.Create(&resume).Error)

	require.NoError(t, testDB.Where(
		"job_id = ? AND applicant_id = ?", database.TestJob1.ID, database.TestStudent1.ID,
	).Delete(&model.Application{}).Error)
	app := model.Application{
		JobID:       database.TestJob1.ID,
		ApplicantID: database.TestStudent1.ID,
		ResumeID:    &resume.ID,
		Status:      model.ApplicationStatusPending,
	}
	require.NoError(t, testDB.Omit("Job", "Applicant", "Resume", "AdditionalDocuments").Create(&app).Error)

	applicantToken, err := auth.GetAccessToken(t, testDB, database.TestUserStudent1.Username, database.TestSeedPassword)
	require.NoError(t, err)
	ownerToken, err := auth.GetAccessToken(t, testDB, database.TestUserEmployer1.Username, database.TestSeedPassword)
	require.NoError(t, err)
	strangerToken, err := auth.GetAccessToken(t, testDB, database.TestUserStudent2.Username, database.TestSeedPassword)
	require.NoError(t, err)

	endpoint := fmt.Sprintf("/files/%d", resume.ID)

	fetch := func(token string) *httptest.ResponseRecorder {
		req, _ := http.NewRequest(http.MethodGet, endpoint, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec
	}

	rec := fetch(applicantToken)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []byte("resume bytes"), rec.Body.Bytes())

	assert.Equal(t, http.StatusOK, fetch(ownerToken).Code)
	assert.Equal(t, http.StatusForbidden, fetch(strangerToken).Code)
}

func TestGetFile_NotFound(t *testing.T) {
	fc := NewFileController(testDB, nil)

	r := gin.New()
	r.GET("/files/:id", middleware.RequireAuth(testDB), fc.GetFile)

	token, err := auth.GetAccessToken(t, testDB, database.TestUserStudent1.Username, database.TestSeedPassword)
	require.NoError(t, err)

	req, _ := http.NewRequest(http.MethodGet, "/files/999999", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
