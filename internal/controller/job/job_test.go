package job

import (
	"context"
	"net/http"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"

	"github.com/rar34/explore-job-server/internal/auth"
	"github.com/rar34/explore-job-server/internal/database"
	"github.com/rar34/explore-job-server/internal/middleware"
	"github.com/rar34/explore-job-server/internal/model"
	"github.com/rar34/explore-job-server/internal/testutil"
)

var testDB *database.DBinstanceStruct

var testTokens = auth.NewTokenManager("job-secret", time.Hour)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	var err error
	var midTeardown func(context.Context, ...testcontainers.TerminateOption) error
	midTeardown, testDB, err = database.GetTestDB()
	if err != nil {
		os.Exit(1)
	}
	code := m.Run()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if midTeardown != nil {
		_ = midTeardown(ctx)
	}
	os.Exit(code)
}

func jobEngine() *gin.Engine {
	r := gin.New()
	jc := NewJobController(testDB)
	r.GET("/jobs", jc.GetJobs)
	r.POST("/jobs", jc.CreateJob)
	r.PUT("/jobs/:id", jc.UpsertJob)
	r.GET("/job/:id", jc.GetJobByID)
	r.DELETE("/job/:id", jc.DeleteJob)
	r.GET("/owner/:email", middleware.RequireAuth(testTokens), middleware.RequireOwner("email"), jc.GetJobsByOwner)
	return r
}

func TestGetJobs_All(t *testing.T) {
	rec, jobs := testutil.MakeJSONListRequest("", jobEngine(), "/jobs")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.GreaterOrEqual(t, len(jobs), 3)
}

func TestGetJobs_Filters(t *testing.T) {
	r := jobEngine()

	rec, jobs := testutil.MakeJSONListRequest("", r, "/jobs?search=backend")
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, jobs)
	for _, j := range jobs {
		assert.Contains(t, j["job_title"], "Backend")
	}

	_, jobs = testutil.MakeJSONListRequest("", r, "/jobs?category=Hybrid")
	require.NotEmpty(t, jobs)
	for _, j := range jobs {
		assert.Equal(t, model.CategoryHybrid, j["category"])
	}

	_, jobs = testutil.MakeJSONListRequest("", r, "/jobs?tag=SQL")
	require.NotEmpty(t, jobs)
	found := false
	for _, j := range jobs {
		if j["_id"] == database.TestJob3.ID {
			found = true
		}
	}
	assert.True(t, found)

	_, jobs = testutil.MakeJSONListRequest("", r, "/jobs?search=no-such-title-anywhere")
	assert.Empty(t, jobs)
}

func TestGetJobByID(t *testing.T) {
	rec, resp := testutil.MakeJSONRequest(nil, "", jobEngine(), "/job/"+database.TestJob1.ID, http.MethodGet)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, database.TestJob1.ID, resp["_id"])
	assert.Equal(t, database.TestJob1.Title, resp["job_title"])
}

func TestGetJobByID_NotFound(t *testing.T) {
	rec, resp := testutil.MakeJSONRequest(nil, "", jobEngine(), "/job/missing-id", http.MethodGet)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Job not found", resp["error"])
}

func TestCreateJob(t *testing.T) {
	body := gin.H{
		"email":        "poster@example.com",
		"name":         "Poster",
		"job_title":    "Site Reliability Engineer",
		"category":     model.CategoryRemote,
		"salary_range": "$4000 - $5000",
		"tags":         []string{"sre", "k8s"},
		"applicants":   42,
	}

	rec, resp := testutil.MakeJSONRequest(body, "", jobEngine(), "/jobs", http.MethodPost)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, resp["acknowledged"])
	id, _ := resp["insertedId"].(string)
	require.NotEmpty(t, id)

	job := model.Job{}
	require.NoError(t, testDB.Where("id = ?", id).First(&job).Error)
	assert.Equal(t, "Site Reliability Engineer", job.Title)
	assert.Equal(t, []string{"sre", "k8s"}, []string(job.Tags))
	assert.Equal(t, 0, job.Applicants)
}

func TestCreateJob_InvalidBody(t *testing.T) {
	rec, resp := testutil.MakeJSONRequest(gin.H{"email": "not-an-email"}, "", jobEngine(), "/jobs", http.MethodPost)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, resp["error"], "Invalid request body")
}

func TestGetJobsByOwner(t *testing.T) {
	token, err := testTokens.Issue(auth.Identity{Email: database.TestOwnerEmail})
	require.NoError(t, err)

	rec, jobs := testutil.MakeJSONListRequest(token, jobEngine(), "/owner/"+database.TestOwnerEmail)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.GreaterOrEqual(t, len(jobs), 2)
	for _, j := range jobs {
		assert.Equal(t, database.TestOwnerEmail, j["email"])
	}
}

func TestGetJobsByOwner_OtherOwner(t *testing.T) {
	token, err := testTokens.Issue(auth.Identity{Email: database.TestOtherEmail})
	require.NoError(t, err)

	rec, resp := testutil.MakeJSONRequest(nil, token, jobEngine(), "/owner/"+database.TestOwnerEmail, http.MethodGet)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "forbidden access", resp["error"])
}

func TestUpsertJob_Existing(t *testing.T) {
	job := model.Job{
		EditableJobInfo: model.EditableJobInfo{Email: database.TestOwnerEmail, Title: "Before"},
		Applicants:      0,
	}
	require.NoError(t, testDB.Create(&job).Error)
	require.NoError(t, testDB.Model(&model.Job{}).Where("id = ?", job.ID).Update("applicants", 4).Error)

	body := gin.H{"email": database.TestOwnerEmail, "job_title": "After", "description": "updated"}
	rec, resp := testutil.MakeJSONRequest(body, "", jobEngine(), "/jobs/"+job.ID, http.MethodPut)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, resp["matchedCount"])
	assert.EqualValues(t, 1, resp["modifiedCount"])
	assert.EqualValues(t, 0, resp["upsertedCount"])
	assert.Nil(t, resp["upsertedId"])

	updated := model.Job{}
	require.NoError(t, testDB.Where("id = ?", job.ID).First(&updated).Error)
	assert.Equal(t, "After", updated.Title)
	assert.Equal(t, "updated", updated.Description)
	assert.Equal(t, 4, updated.Applicants)
}

func TestUpsertJob_UnknownIDCreates(t *testing.T) {
	id := "upsert-created-id"
	body := gin.H{"email": database.TestOwnerEmail, "job_title": "Created by PUT"}

	rec, resp := testutil.MakeJSONRequest(body, "", jobEngine(), "/jobs/"+id, http.MethodPut)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 0, resp["matchedCount"])
	assert.EqualValues(t, 1, resp["upsertedCount"])
	assert.Equal(t, id, resp["upsertedId"])

	created := model.Job{}
	require.NoError(t, testDB.Where("id = ?", id).First(&created).Error)
	assert.Equal(t, "Created by PUT", created.Title)
	assert.Equal(t, 0, created.Applicants)
}

func TestDeleteJob(t *testing.T) {
	job := model.Job{EditableJobInfo: model.EditableJobInfo{Email: database.TestOwnerEmail, Title: "Short lived"}}
	require.NoError(t, testDB.Create(&job).Error)
	r := jobEngine()

	rec, resp := testutil.MakeJSONRequest(nil, "", r, "/job/"+job.ID, http.MethodDelete)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, resp["deletedCount"])

	rec, resp = testutil.MakeJSONRequest(nil, "", r, "/job/"+job.ID, http.MethodDelete)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 0, resp["deletedCount"])
}

func TestUpsert_ConcurrentSameUnknownID(t *testing.T) {
	jc := NewJobController(testDB)
	id := "upsert-race-id"

	const n = 8
	var wg sync.WaitGroup
	results := make([]model.UpdateResult, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = jc.upsert(context.Background(), model.Job{
				ID:              id,
				EditableJobInfo: model.EditableJobInfo{Email: database.TestOwnerEmail, Title: "Race"},
			})
		}(i)
	}
	wg.Wait()

	upserted, matched := 0, 0
	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		upserted += int(results[i].UpsertedCount)
		matched += int(results[i].MatchedCount)
	}
	assert.Equal(t, 1, upserted)
	assert.Equal(t, n-1, matched)

	var count int64
	require.NoError(t, testDB.Model(&model.Job{}).Where("id = ?", id).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
