package model

// EditableStudentInfo is the part of a student profile that the owner may change
type EditableStudentInfo struct {
	Degree      string `gorm:"type:text" json:"degree"`
	YearOfStudy string `gorm:"type:text" json:"year_of_study"`
}

// Student is the role profile for users with RoleStudent. One per user,
// created by the provisioning hook on user creation.
type Student struct {
	ID     uint `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`
	User   User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user"`

	// StudentCode is the generated STU#### identifier
	StudentCode string `gorm:"uniqueIndex;not null" json:"student_id"`
	EditableStudentInfo

	// CV is the stored document copied into every application's resume field
	CVID *int `json:"cv_id"`
	CV   File `gorm:"foreignKey:CVID;references:ID" json:"-"`

	Applications []Application `gorm:"foreignKey:ApplicantID;constraint:OnDelete:CASCADE" json:"-"`
}
