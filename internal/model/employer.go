package model

// EditableEmployerInfo is the part of an employer profile that the owner may change
type EditableEmployerInfo struct {
	CompanyName string `gorm:"type:text" json:"company_name"`
	Industry    string `gorm:"type:text" json:"industry"`
}

// Employer is the role profile for users with RoleEmployer. One per
// user, created by the provisioning hook on user creation.
type Employer struct {
	ID     uint `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`
	User   User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user"`

	// EmployerCode is the generated EMP#### identifier
	EmployerCode string `gorm:"uniqueIndex;not null" json:"employer_id"`
	EditableEmployerInfo

	Jobs []Job `gorm:"foreignKey:EmployerID;constraint:OnDelete:CASCADE" json:"-"`
}
