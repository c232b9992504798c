package database

import (
	"context"
	"fmt"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/datatypes"

	// Load env
	_ "github.com/joho/godotenv/autoload"

	"RecruitPilot-backend/internal/access"
	"RecruitPilot-backend/internal/dynschema"
	m "RecruitPilot-backend/internal/model"
	"RecruitPilot-backend/internal/utilities"
)

var testDBInstance *DBinstanceStruct
var teardown func(context.Context, ...testcontainers.TerminateOption) error

// Exported test fixtures
var (
	TestRoleAdmin    m.Role
	TestRoleEmployee m.Role
	TestRoleAgency   m.Role

	TestAdminUser m.User
	TestEmployee1 m.User
	TestEmployee2 m.User
	TestAgency1   m.User
	TestAgency2   m.User

	TestClient1    m.Client
	TestTemplate1  m.JobTemplate
	TestVacancy1   m.JobVacancy
	TestCandidate1 m.Candidate

	// Shared plain password of every seeded user
	TestSeedPassword = "SeedPass123!"
)

// TestTemplateFields is the field schema of TestTemplate1 and, by snapshot,
// of TestVacancy1.
var TestTemplateFields = []dynschema.FieldDefinition{
	{Key: "full_name", Type: dynschema.TypeText, Required: true},
	{Key: "email", Type: dynschema.TypeEmail, Required: true},
	{Key: "years_experience", Type: dynschema.TypeNumber},
	{Key: "cover_letter", Type: dynschema.TypeTextarea},
	{Key: "source", Type: dynschema.TypeSelect, Options: []string{"referral", "linkedin", "other"}},
}

// GetTestDB starts a PostgreSQL test container and returns a teardown
// function, the DB instance, and any error encountered during setup.
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

	if err := seedTestData(db); err != nil {
		_ = dbContainer.Terminate(context.Background())
		return nil, nil, err
	}

	testDBInstance = db
	teardown = dbContainer.Terminate

	return dbContainer.Terminate, db, nil
}

func permsByKey(db *DBinstanceStruct, keys ...string) ([]m.Permission, error) {
	var perms []m.Permission
	if err := db.Where("key IN ?", keys).Find(&perms).Error; err != nil {
		return nil, err
	}
	return perms, nil
}

// seedTestData inserts the roles, users, client, template, vacancy and
// candidate every controller test builds on. Idempotent per container.
func seedTestData(db *DBinstanceStruct) error {
	var userCount int64
	if err := db.Model(&m.User{}).Count(&userCount).Error; err != nil {
		return err
	}
	// NewDBInstance seeds no users in tests (ADMIN_EMAIL unset), so any
	// users mean the fixtures exist already.
	if userCount > 0 {
		return loadTestData(db)
	}

	if err := db.Where("name = ?", access.RoleAdmin).First(&TestRoleAdmin).Error; err != nil {
		return err
	}

	employeePerms, err := permsByKey(db,
		access.PermReadClient,
		access.PermCreateJobTemplate, access.PermReadJobTemplate, access.PermUpdateJobTemplate,
		access.PermCreateJobVacancy, access.PermReadJobVacancy, access.PermUpdateJobVacancy, access.PermDeleteJobVacancy,
		access.PermReadCandidate,
	)
	if err != nil {
		return err
	}
	agencyPerms, err := permsByKey(db,
		access.PermCreateCandidate, access.PermReadCandidate, access.PermUpdateCandidate, access.PermDeleteCandidate,
		access.PermReadJobVacancy,
	)
	if err != nil {
		return err
	}

	TestRoleEmployee = m.Role{Name: access.RoleEmployee, Permissions: employeePerms}
	TestRoleAgency = m.Role{Name: access.RoleAgency, Permissions: agencyPerms}
	if err := db.Create(&TestRoleEmployee).Error; err != nil {
		return err
	}
	if err := db.Create(&TestRoleAgency).Error; err != nil {
		return err
	}

	hashedPwd, errHash := utilities.HashPassword(TestSeedPassword)
	if errHash != nil {
		return errHash
	}

	userSpecs := []struct {
		target   *m.User
		fullName string
		email    string
		roleID   *m.Role
	}{
		{&TestAdminUser, "Seed Admin", "admin@example.com", &TestRoleAdmin},
		{&TestEmployee1, "Erin Employee", "employee1@example.com", &TestRoleEmployee},
		{&TestEmployee2, "Evan Employee", "employee2@example.com", &TestRoleEmployee},
		{&TestAgency1, "Alex Agency", "agency1@example.com", &TestRoleAgency},
		{&TestAgency2, "Avery Agency", "agency2@example.com", &TestRoleAgency},
	}
	for _, s := range userSpecs {
		*s.target = m.User{
			FullName: s.fullName,
			Email:    s.email,
			Password: hashedPwd,
			RoleID:   s.roleID.ID,
		}
		if err := db.Create(s.target).Error; err != nil {
			return err
		}
	}

	TestClient1 = m.Client{
		Name:               "TechNova",
		Email:              "contact@technova.example.com",
		Phone:              "0100000001",
		Industry:           "Software",
		Tags:               []string{"saas", "priority"},
		AssignedEmployeeID: TestEmployee1.ID,
	}
	if err := db.Create(&TestClient1).Error; err != nil {
		return err
	}

	TestTemplate1 = m.JobTemplate{
		Name:        "Backend Engineer Intake",
		Description: "Standard intake form for backend roles",
		Fields:      datatypes.NewJSONSlice(TestTemplateFields),
	}
	if err := db.Create(&TestTemplate1).Error; err != nil {
		return err
	}

	TestVacancy1 = m.JobVacancy{
		Title:            "Backend Engineer",
		Description:      "Go services for TechNova",
		ClientID:         TestClient1.ID,
		JobTemplateID:    TestTemplate1.ID,
		Fields:           datatypes.NewJSONSlice(dynschema.Snapshot(TestTemplateFields)),
		AssignedAgencies: []m.User{TestAgency1},
		CreatedByID:      TestEmployee1.ID,
	}
	if err := db.Create(&TestVacancy1).Error; err != nil {
		return err
	}

	TestCandidate1 = m.Candidate{
		JobVacancyID: TestVacancy1.ID,
		Data: datatypes.JSONMap{
			"full_name": "Casey Candidate",
			"email":     "casey@example.com",
		},
		Status:      m.CandidateStatusPending,
		CreatedByID: TestAgency1.ID,
	}
	return db.Create(&TestCandidate1).Error
}

// loadTestData populates exported variables when records already exist.
func loadTestData(db *DBinstanceStruct) error {
	if err := db.Preload("Permissions").Where("name = ?", access.RoleAdmin).First(&TestRoleAdmin).Error; err != nil {
		return err
	}
	if err := db.Preload("Permissions").Where("name = ?", access.RoleEmployee).First(&TestRoleEmployee).Error; err != nil {
		return err
	}
	if err := db.Preload("Permissions").Where("name = ?", access.RoleAgency).First(&TestRoleAgency).Error; err != nil {
		return err
	}

	userTargets := map[string]*m.User{
		"admin@example.com":     &TestAdminUser,
		"employee1@example.com": &TestEmployee1,
		"employee2@example.com": &TestEmployee2,
		"agency1@example.com":   &TestAgency1,
		"agency2@example.com":   &TestAgency2,
	}
	for email, target := range userTargets {
		if err := db.Where("email = ?", email).First(target).Error; err != nil {
			return err
		}
	}

	if err := db.First(&TestClient1, "email = ?", "contact@technova.example.com").Error; err != nil {
		return err
	}
	if err := db.First(&TestTemplate1, "name = ?", "Backend Engineer Intake").Error; err != nil {
		return err
	}
	if err := db.Preload("AssignedAgencies").First(&TestVacancy1, "title = ?", "Backend Engineer").Error; err != nil {
		return err
	}
	return db.First(&TestCandidate1, "created_by_id = ?", TestAgency1.ID).Error
}
