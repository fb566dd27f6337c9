package database

import (
	"context"
	"fmt"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	m "github.com/rar34/explore-job-server/internal/model"
)

var testDBInstance *DBinstanceStruct
var teardown func(context.Context, ...testcontainers.TerminateOption) error

// Exported seeded records
var (
	TestOwnerEmail     = "owner1@example.com"
	TestOtherEmail     = "owner2@example.com"
	TestApplicantEmail = "applicant1@example.com"

	TestJob1  m.Job
	TestJob2  m.Job
	TestJob3  m.Job
	TestBlog1 m.Blog
)

// GetTestDB starts a PostgreSQL test container and returns a teardown function,
// the DB instance, and any error encountered during setup.
func GetTestDB() (func(context.Context, ...testcontainers.TerminateOption) error, *DBinstanceStruct, error) {

	if testDBInstance != nil && teardown != nil {
		return teardown, testDBInstance, nil
	}

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
				WithStartupTimeout(30*time.Second)),
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
		UseConstr: true,
		DBName:    dbName,
		Constr:    fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", dbHost, dbPort.Port(), dbUser, dbPwd, dbName),
	}

	db, err := NewDBInstance(config)
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	if err := seedOrRelease(db, seedTestData, dbContainer.Terminate); err != nil {
		return nil, nil, err
	}

	testDBInstance = db
	teardown = dbContainer.Terminate

	return dbContainer.Terminate, db, nil
}

// seedOrRelease runs seed on db. On failure it closes db and terminates the container.
func seedOrRelease(db *DBinstanceStruct, seed func(*DBinstanceStruct) error, terminate func(context.Context, ...testcontainers.TerminateOption) error) error {
	if err := seed(db); err != nil {
		_ = db.Close()
		if terminate != nil {
			_ = terminate(context.Background())
		}
		return err
	}
	return nil
}

// seedTestData inserts sample jobs and a blog post.
func seedTestData(db *DBinstanceStruct) error {
	deadline1 := time.Now().AddDate(0, 1, 0)
	deadline2 := time.Now().AddDate(0, 2, 0)
	posted := time.Now()

	jobs := []m.Job{
		{
			EditableJobInfo: m.EditableJobInfo{
				Email:       TestOwnerEmail,
				Name:        "Owner One",
				Title:       "Backend Engineer",
				Category:    m.CategoryRemote,
				Description: "Build Go services backed by Postgres.",
				SalaryRange: "$3000 - $4000",
				Tags:        pq.StringArray{"go", "backend"},
				PostingDate: &posted,
				Deadline:    &deadline1,
			},
		},
		{
			EditableJobInfo: m.EditableJobInfo{
				Email:       TestOwnerEmail,
				Name:        "Owner One",
				Title:       "Frontend Developer",
				Category:    m.CategoryHybrid,
				Description: "Own the React client.",
				SalaryRange: "$2500 - $3500",
				Tags:        pq.StringArray{"react", "frontend"},
				PostingDate: &posted,
				Deadline:    &deadline2,
			},
		},
		{
			EditableJobInfo: m.EditableJobInfo{
				Email:       TestOtherEmail,
				Name:        "Owner Two",
				Title:       "Data Analyst",
				Category:    m.CategoryOnSite,
				Description: "Dashboards and SQL.",
				SalaryRange: "$2000 - $2800",
				Tags:        pq.StringArray{"sql", "data"},
				PostingDate: &posted,
				Deadline:    &deadline2,
			},
		},
	}
	if err := db.Create(&jobs).Error; err != nil {
		return err
	}
	TestJob1 = jobs[0]
	TestJob2 = jobs[1]
	TestJob3 = jobs[2]

	blog := m.Blog{
		Title:       "What is an access token",
		Content:     "Access tokens carry the identity of the caller.",
		AuthorName:  "Owner One",
		AuthorEmail: TestOwnerEmail,
	}
	if err := db.Create(&blog).Error; err != nil {
		return err
	}
	TestBlog1 = blog

	return nil
}
