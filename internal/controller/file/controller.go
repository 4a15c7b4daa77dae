// Package file stores and serves uploaded documents. Content is written
// to cloud storage when a bucket is configured and kept in the database
// otherwise, so the API behaves the same in both setups.
package file

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"UniHire-backend/internal/access"
	"UniHire-backend/internal/database"
	"UniHire-backend/internal/model"
	"UniHire-backend/internal/utilities"
)

const (
	// MaxUploadSize caps a single uploaded document.
	MaxUploadSize = 10 << 20

	PrefixCV       = "cvs"
	PrefixResume   = "resumes"
	PrefixDocument = "documents"
)

// FileController handles stored file endpoints
type FileController struct {
	DB      *database.DBinstanceStruct
	Storage StorageClient
}

// NewFileController creates a new instance of FileController with the provided
// database connection and storage client. Storage may be nil.
func NewFileController(db *database.DBinstanceStruct, storage StorageClient) *FileController {
	return &FileController{
		DB:      db,
		Storage: storage,
	}
}

type uploadResponse struct {
	FileID    int    `json:"file_id"`
	Extension string `json:"extension"`
}

var (
	// ErrFileTooLarge is returned when an upload exceeds MaxUploadSize.
	ErrFileTooLarge = errors.New("file exceeds the upload size limit")
	// ErrBadExtension is returned when an upload has a disallowed extension.
	ErrBadExtension = errors.New("unsupported file extension")
)

// PersistFileData validates an uploaded file and stores it, returning the
// created record. allowedExts holds lowercase extensions with the dot,
// e.g. ".pdf". When storage is nil the content stays in the database row.
func PersistFileData(ctx context.Context, db *database.DBinstanceStruct, storage StorageClient,
	header *multipart.FileHeader, prefix string, allowedExts []string) (*model.File, error) {

	if header.Size > MaxUploadSize {
		return nil, fmt.Errorf("%w: %d MB maximum", ErrFileTooLarge, MaxUploadSize>>20)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !utilities.Contains(allowedExts, ext) {
		return nil, fmt.Errorf("%w: %s", ErrBadExtension, ext)
	}

	opened, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer opened.Close()

	content, err := io.ReadAll(opened)
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}

	record := model.File{Extension: ext}

	if storage != nil {
		objectName := fmt.Sprintf("%s/%s%s", prefix, uuid.NewString(), ext)
		if err := storage.Upload(ctx, objectName, content); err != nil {
			return nil, err
		}
		record.StorageObjectName = &objectName
	} else {
		record.Content = content
	}

	if err := db.Create(&record).Error; err != nil {
		return nil, fmt.Errorf("failed to save file record: %w", err)
	}
	return &record, nil
}

// CopyFile duplicates a stored file under a new prefix and returns the
// copy. Used to snapshot a CV into an application's resume so later CV
// replacements leave submitted applications untouched.
func CopyFile(ctx context.Context, db *database.DBinstanceStruct, storage StorageClient,
	sourceID int, prefix string) (*model.File, error) {

	var source model.File
	if err := db.First(&source, sourceID).Error; err != nil {
		return nil, fmt.Errorf("failed to load source file: %w", err)
	}

	content := source.Content
	if source.StorageObjectName != nil && storage != nil {
		var err error
		content, err = storage.Download(ctx, *source.StorageObjectName)
		if err != nil {
			return nil, err
		}
	}

	record := model.File{Extension: source.Extension}

	if storage != nil {
		objectName := fmt.Sprintf("%s/%s%s", prefix, uuid.NewString(), source.Extension)
		if err := storage.Upload(ctx, objectName, content); err != nil {
			return nil, err
		}
		record.StorageObjectName = &objectName
	} else {
		record.Content = content
	}

	if err := db.Create(&record).Error; err != nil {
		return nil, fmt.Errorf("failed to save file record: %w", err)
	}
	return &record, nil
}

// UploadDocument stores a supporting document for the calling student.
// The returned file ID can be attached to an application.
// @Summary Upload a supporting document
// @Tags File
// @Accept mpfd
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param file formData file true "Document to upload (pdf, doc, docx)"
// @Success 201 {object} uploadResponse "Successfully uploaded document"
// @Failure 400 {object} utilities.ErrorResponse "Missing file"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as student"
// @Failure 413 {object} utilities.ErrorResponse "File too large"
// @Failure 415 {object} utilities.ErrorResponse "Unsupported file extension"
// @Failure 500 {object} utilities.ErrorResponse "Storage error"
// @Router /files/documents [post]
func (fc *FileController) UploadDocument(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	caller, err := access.Resolve(fc.DB, user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve profile information: %s", err.Error()),
		})
		return
	}
	if caller.Student == nil {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{Error: "Only students can upload documents"})
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "No file provided"})
		return
	}

	record, err := PersistFileData(c.Request.Context(), fc.DB, fc.Storage, header,
		PrefixDocument, []string{".pdf", ".doc", ".docx"})
	if err != nil {
		c.JSON(UploadErrorStatus(err), utilities.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, uploadResponse{FileID: record.ID, Extension: record.Extension})
}

// UploadErrorStatus maps a PersistFileData error to its HTTP status.
func UploadErrorStatus(err error) int {
	switch {
	case errors.Is(err, ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrBadExtension):
		return http.StatusUnsupportedMediaType
	default:
		return http.StatusBadRequest
	}
}

// GetFile serves a stored file to callers allowed to see it: the student
// whose CV it is, the applicant that attached it, or the employer whose
// job the attaching application targets.
// @Summary Download a stored file
// @Tags File
// @Produce octet-stream
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "ID of the file"
// @Success 200 {file} binary "File content"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Do not have permission to view this file"
// @Failure 404 {object} utilities.ErrorResponse "File not found"
// @Failure 500 {object} utilities.ErrorResponse "Storage error"
// @Router /files/{id} [get]
func (fc *FileController) GetFile(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	id := c.Param("id")

	var record model.File
	if err := fc.DB.Where("id = ?", id).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "File not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve file: %s", err.Error()),
		})
		return
	}

	allowed, err := fc.callerMayRead(user, record.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to check file access: %s", err.Error()),
		})
		return
	}
	if !allowed {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{
			Error: "You do not have permission to view this file",
		})
		return
	}

	content := record.Content
	if record.StorageObjectName != nil && fc.Storage != nil {
		content, err = fc.Storage.Download(c.Request.Context(), *record.StorageObjectName)
		if err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprintf("Failed to download file: %s", err.Error()),
			})
			return
		}
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=file-%d%s", record.ID, record.Extension))
	c.Data(http.StatusOK, "application/octet-stream", content)
}

// callerMayRead reports whether the user owns the file as a CV or is a
// party to an application that references it.
func (fc *FileController) callerMayRead(user model.User, fileID int) (bool, error) {
	caller, err := access.Resolve(fc.DB, user)
	if err != nil {
		return false, err
	}

	if caller.Student != nil {
		if caller.Student.CVID != nil && *caller.Student.CVID == fileID {
			return true, nil
		}
		var count int64
		if err := fc.DB.Model(&model.Application{}).
			Where("applicant_id = ? AND (resume_id = ? OR additional_documents_id = ?)",
				caller.Student.ID, fileID, fileID).
			Count(&count).Error; err != nil {
			return false, err
		}
		return count > 0, nil
	}

	if caller.Employer != nil {
		var count int64
		if err := fc.DB.Model(&model.Application{}).
			Joins("JOIN jobs ON jobs.id = applications.job_id").
			Where("jobs.employer_id = ? AND (applications.resume_id = ? OR applications.additional_documents_id = ?)",
				caller.Employer.ID, fileID, fileID).
			Count(&count).Error; err != nil {
			return false, err
		}
		return count > 0, nil
	}

	return false, nil
}
