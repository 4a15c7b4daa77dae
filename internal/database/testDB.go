package database

import (
	"context"
	"fmt"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	// Load env
	_ "github.com/joho/godotenv/autoload"

	m "UniHire-backend/internal/model"
	"UniHire-backend/internal/utilities"
)

var testDBInstance *DBinstanceStruct
var teardown func(context.Context, ...testcontainers.TerminateOption) error

// Exported test users & profiles
var (
	TestUserStudent1  m.User
	TestUserStudent2  m.User
	TestUserEmployer1 m.User
	TestUserEmployer2 m.User
	TestStudent1      m.Student
	TestStudent2      m.Student
	TestEmployer1     m.Employer
	TestEmployer2     m.Employer

	// Add exported plain password
	TestSeedPassword = "SeedPass123!"

	// Exported seeded jobs; TestJob3 is inactive
	TestJob1 m.Job
	TestJob2 m.Job
	TestJob3 m.Job
)

// GetTestDB starts a PostgreSQL test container and returns a teardown function,
// the DB instance, and any error encountered during setup.
func GetTestDB() (func(context.Context, ...testcontainers.TerminateOption) error, *DBinstanceStruct, error) {

	if testDBInstance != nil && teardown != nil {
		return teardown, testDBInstance, nil
	}

	// Database configuration
	var (
		dbName = "database"
		dbPwd  = "password"
		dbUser = "user"
	)

	dbContainer, err := postgres.Run(
		context.Background(),
		"postgres:latest",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPwd),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
	)
	if err != nil {
		return nil, nil, err
	}

	dbHost, err := dbContainer.Host(context.Background())
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	dbPort, err := dbContainer.MappedPort(context.Background(), nat.Port("5432/tcp"))
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	config := &DBConfig{
		useConstr: true,
		Constr:    fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", dbHost, dbPort.Port(), dbUser, dbPwd, dbName),
	}

	db, err := NewDBInstance(config)
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	// Seed sample students, employers and jobs
	if err := seedTestData(db); err != nil {
		_ = dbContainer.Terminate(context.Background())
		return nil, nil, err
	}

	testDBInstance = db
	teardown = dbContainer.Terminate

	return dbContainer.Terminate, db, nil
}

// seedTestData inserts sample users (2 students, 2 employers) and jobs if empty.
// Role profiles come from the provisioning hook; seeding only fills in
// their editable fields afterwards.
func seedTestData(db *DBinstanceStruct) error {
	var userCount int64
	if err := db.Model(&m.User{}).Count(&userCount).Error; err != nil {
		return err
	}

	if userCount > 0 {
		return loadTestData(db)
	}

	userSpecs := []struct {
		username  string
		email     string
		firstName string
		lastName  string
		role      string
	}{
		{"student_user_1", "student1@example.com", "Alice", "Nguyen", m.RoleStudent},
		{"student_user_2", "student2@example.com", "Bob", "Somsak", m.RoleStudent},
		{"employer_user_1", "employer1@example.com", "Carol", "Tan", m.RoleEmployer},
		{"employer_user_2", "employer2@example.com", "Dan", "Ignacio", m.RoleEmployer},
	}

	// Pre-hash shared password for all seeded users
	hashedPwd, errHash := utilities.HashPassword(TestSeedPassword)
	if errHash != nil {
		return errHash
	}

	users := make([]m.User, 0, len(userSpecs))
	for _, s := range userSpecs {
		users = append(users, m.User{
			Username: s.username,
			Password: hashedPwd,
			Role:     s.role,
			EditableUserInfo: m.EditableUserInfo{
				Email:     s.email,
				FirstName: s.firstName,
				LastName:  s.lastName,
			},
		})
	}

	if err := db.Create(&users).Error; err != nil {
		return err
	}

	for _, u := range users {
		switch u.Username {
		case "student_user_1":
			TestUserStudent1 = u
		case "student_user_2":
			TestUserStudent2 = u
		case "employer_user_1":
			TestUserEmployer1 = u
		case "employer_user_2":
			TestUserEmployer2 = u
		}
	}

	// Fill in the hook-provisioned profiles
	if err := db.First(&TestStudent1, "user_id = ?", TestUserStudent1.ID).Error; err != nil {
		return err
	}
	if err := db.First(&TestStudent2, "user_id = ?", TestUserStudent2.ID).Error; err != nil {
		return err
	}
	if err := db.First(&TestEmployer1, "user_id = ?", TestUserEmployer1.ID).Error; err != nil {
		return err
	}
	if err := db.First(&TestEmployer2, "user_id = ?", TestUserEmployer2.ID).Error; err != nil {
		return err
	}

	studentUpdates := []struct {
		target *m.Student
		info   m.EditableStudentInfo
	}{
		{&TestStudent1, m.EditableStudentInfo{Degree: "BSc Computer Engineering", YearOfStudy: "3"}},
		{&TestStudent2, m.EditableStudentInfo{Degree: "BSc Software Engineering", YearOfStudy: "2"}},
	}
	for _, s := range studentUpdates {
		if err := db.Model(s.target).Updates(s.info).Error; err != nil {
			return err
		}
		s.target.EditableStudentInfo = s.info
	}

	employerUpdates := []struct {
		target *m.Employer
		info   m.EditableEmployerInfo
	}{
		{&TestEmployer1, m.EditableEmployerInfo{CompanyName: "TechNova", Industry: "Software"}},
		{&TestEmployer2, m.EditableEmployerInfo{CompanyName: "DataForge", Industry: "Consulting"}},
	}
	for _, e := range employerUpdates {
		if err := db.Model(e.target).Updates(e.info).Error; err != nil {
			return err
		}
		e.target.EditableEmployerInfo = e.info
	}

	// Give the first student a stored CV so application creation works
	cv := m.File{Content: []byte("%PDF-1.4 seeded cv"), Extension: ".pdf"}
	if err := db.Create(&cv).Error; err != nil {
		return err
	}
	if err := db.Model(&TestStudent1).Update("cv_id", cv.ID).Error; err != nil {
		return err
	}
	TestStudent1.CVID = &cv.ID

	// Seed jobs (only if none exist yet)
	var jobCount int64
	if err := db.Model(&m.Job{}).Count(&jobCount).Error; err != nil {
		return err
	}
	if jobCount == 0 {
		jobs := []m.Job{
			{
				EmployerID: TestEmployer1.ID,
				EditableJobInfo: m.EditableJobInfo{
					Title:              "Backend Engineer Intern",
					Description:        "Work on Go microservices and database layers.",
					Type:               "Internship",
					Experience:         "Entry Level",
					DetailedExperience: "Go basics; SQL familiarity",
					Education:          "Undergraduate",
					Location:           "Bangkok (Hybrid)",
					SalaryRange:        "15000 THB",
					IsActive:           ptr(true),
				},
			},
			{
				EmployerID: TestEmployer1.ID,
				EditableJobInfo: m.EditableJobInfo{
					Title:              "Frontend Developer Intern",
					Description:        "Assist building a component library in React.",
					Type:               "Internship",
					Experience:         "Entry Level",
					DetailedExperience: "JS/TS fundamentals",
					Education:          "Undergraduate",
					Location:           "Remote",
					SalaryRange:        "12000 THB",
					IsActive:           ptr(true),
				},
			},
			{
				EmployerID: TestEmployer2.ID,
				EditableJobInfo: m.EditableJobInfo{
					Title:              "Data Analyst Intern",
					Description:        "Support data cleansing and dashboard creation.",
					Type:               "Internship",
					Experience:         "Entry Level",
					DetailedExperience: "SQL; basic statistics",
					Education:          "Undergraduate",
					Location:           "Chiang Mai (On-site)",
					SalaryRange:        "13000 THB",
					IsActive:           ptr(false),
				},
			},
		}

		if err := db.Create(&jobs).Error; err != nil {
			return err
		}
		if len(jobs) > 0 {
			TestJob1 = jobs[0]
		}
		if len(jobs) > 1 {
			TestJob2 = jobs[1]
		}
		if len(jobs) > 2 {
			TestJob3 = jobs[2]
		}
	}

	return nil
}

// loadTestData populates exported variables when records already exist.
func loadTestData(db *DBinstanceStruct) error {
	var users []m.User
	if err := db.Where("username IN ?", []string{
		"student_user_1", "student_user_2", "employer_user_1", "employer_user_2",
	}).Find(&users).Error; err != nil {
		return err
	}
	for _, u := range users {
		switch u.Username {
		case "student_user_1":
			TestUserStudent1 = u
		case "student_user_2":
			TestUserStudent2 = u
		case "employer_user_1":
			TestUserEmployer1 = u
		case "employer_user_2":
			TestUserEmployer2 = u
		}
	}

	_ = db.First(&TestStudent1, "user_id = ?", TestUserStudent1.ID).Error
	_ = db.First(&TestStudent2, "user_id = ?", TestUserStudent2.ID).Error
	_ = db.First(&TestEmployer1, "user_id = ?", TestUserEmployer1.ID).Error
	_ = db.First(&TestEmployer2, "user_id = ?", TestUserEmployer2.ID).Error

	// Load first three jobs deterministically
	var jobs []m.Job
	if err := db.Order("id ASC").Limit(3).Find(&jobs).Error; err == nil {
		if len(jobs) > 0 {
			TestJob1 = jobs[0]
		}
		if len(jobs) > 1 {
			TestJob2 = jobs[1]
		}
		if len(jobs) > 2 {
			TestJob3 = jobs[2]
		}
	}

	return nil
}

// ptr helper
func ptr[T any](v T) *T { return &v }
