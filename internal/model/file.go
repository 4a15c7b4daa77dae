package model

// File is a stored document (CV, resume copy, or supporting document).
// Content holds the bytes when no bucket is configured; otherwise
// StorageObjectName points at the object in cloud storage and Content
// stays empty.
type File struct {
	ID                int `gorm:"primaryKey"`
	Content           []byte
	Extension         string
	StorageObjectName *string
}
