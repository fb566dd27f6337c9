// Package job provides HTTP handlers for job posting operations.
package job

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rar34/explore-job-server/internal/database"
	"github.com/rar34/explore-job-server/internal/model"
	"github.com/rar34/explore-job-server/internal/utilities"
)

// JobController handles job posting related endpoints
type JobController struct {
	DB *database.DBinstanceStruct
}

// NewJobController creates a new instance of JobController
func NewJobController(db *database.DBinstanceStruct) *JobController {
	return &JobController{
		DB: db,
	}
}

// GetJobs returns every job. Query parameters narrow the result but none are required.
// @Summary List jobs
// @Tags Job
// @Produce json
// @Param search query string false "Substring of job title, case insensitive"
// @Param category query string false "Exact category"
// @Param tag query string false "Tag the job must carry, case insensitive"
// @Param desc query boolean false "Sort by posting date descending if true"
// @Success 200 {array} model.Job
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs [get]
func (jc *JobController) GetJobs(c *gin.Context) {
	rawSearch := c.Query("search")
	rawCategory := c.Query("category")
	rawTag := c.Query("tag")
	rawDesc := c.Query("desc")

	result := jc.DB.WithContext(c.Request.Context())

	if rawSearch != "" {
		result = result.Where("title ILIKE ?", "%"+rawSearch+"%")
	}

	if rawCategory != "" {
		result = result.Where("category = ?", rawCategory)
	}

	if rawTag != "" {
		result = result.Where("? ILIKE ANY(tags)", rawTag)
	}

	if rawDesc != "" {
		result = result.Order(clause.OrderByColumn{
			Column: clause.Column{Name: "posting_date"},
			Desc:   strings.ToLower(rawDesc) == "true",
		})
	}

	jobs := []model.Job{}
	if err := result.Find(&jobs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to fetch jobs: ", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, jobs)
}

// GetJobByID returns a single job
// @Summary Get job by ID
// @Tags Job
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} model.Job
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /job/{id} [get]
func (jc *JobController) GetJobByID(c *gin.Context) {
	id := c.Param("id")

	job := model.Job{}
	if err := jc.DB.WithContext(c.Request.Context()).Where("id = ?", id).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Job not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve job: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, job)
}

// CreateJob stores a new job. The applicant counter always starts at zero.
// @Summary Create job
// @Tags Job
// @Accept json
// @Produce json
// @Param job body model.EditableJobInfo true "Job information"
// @Success 200 {object} model.InsertResult
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body"
// @Failure 413 {object} utilities.ErrorResponse "Request body too large"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs [post]
func (jc *JobController) CreateJob(c *gin.Context) {
	info := model.EditableJobInfo{}
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(utilities.BindErrorStatus(err), utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	job := model.Job{EditableJobInfo: info}
	if err := jc.DB.WithContext(c.Request.Context()).Create(&job).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to create job: ", err),
		})
		return
	}

	c.JSON(http.StatusOK, model.InsertResult{Acknowledged: true, InsertedID: job.ID})
}

// GetJobsByOwner returns the jobs posted by the email in the path
// @Summary List my jobs
// @Description Caller's token email must equal the path email
// @Tags Job
// @Produce json
// @Param email path string true "Owner email"
// @Success 200 {array} model.Job
// @Failure 401 {object} utilities.ErrorResponse "Missing or invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Email mismatch"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs/{email} [get]
func (jc *JobController) GetJobsByOwner(c *gin.Context) {
	email := c.Param("email")

	jobs := []model.Job{}
	if err := jc.DB.WithContext(c.Request.Context()).Where("email = ?", email).Find(&jobs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to fetch jobs: ", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, jobs)
}

// UpsertJob replaces the editable fields of a job, creating it under the given
// ID when it doesn't exist. The applicant counter is never overwritten.
// @Summary Update or insert job
// @Tags Job
// @Accept json
// @Produce json
// @Param id path string true "Job ID"
// @Param job body model.EditableJobInfo true "Job information"
// @Success 200 {object} model.UpdateResult
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body"
// @Failure 413 {object} utilities.ErrorResponse "Request body too large"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs/{id} [put]
func (jc *JobController) UpsertJob(c *gin.Context) {
	id := c.Param("id")

	info := model.EditableJobInfo{}
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(utilities.BindErrorStatus(err), utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to parse request body: %s", err.Error()),
		})
		return
	}

	result, err := jc.upsert(c.Request.Context(), model.Job{ID: id, EditableJobInfo: info})
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update job: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

// upsertJobSQL inserts a job or overwrites its editable columns, binding
// arguments in EditableJobColumns order. inserted is true when the row was new
// (xmax = 0 only for a freshly inserted tuple).
var upsertJobSQL = func() string {
	sets := make([]string, 0, len(model.EditableJobColumns))
	for _, col := range model.EditableJobColumns {
		sets = append(sets, fmt.Sprintf("%s = EXCLUDED.%s", col, col))
	}
	return fmt.Sprintf(
		"INSERT INTO jobs (id, %s) VALUES (?, %s) ON CONFLICT (id) DO UPDATE SET %s RETURNING (xmax = 0) AS inserted",
		strings.Join(model.EditableJobColumns, ", "),
		strings.TrimSuffix(strings.Repeat("?, ", len(model.EditableJobColumns)), ", "),
		strings.Join(sets, ", "),
	)
}()

func (jc *JobController) upsert(ctx context.Context, job model.Job) (model.UpdateResult, error) {
	result := model.UpdateResult{Acknowledged: true}

	info := job.EditableJobInfo
	var row struct {
		Inserted bool
	}
	err := jc.DB.WithContext(ctx).Raw(upsertJobSQL,
		job.ID,
		info.Email,
		info.Name,
		info.Title,
		info.Category,
		info.Banner,
		info.Description,
		info.SalaryRange,
		info.Tags,
		info.PostingDate,
		info.Deadline,
	).Scan(&row).Error
	if err != nil {
		return result, err
	}

	if row.Inserted {
		result.UpsertedCount = 1
		result.UpsertedID = &job.ID
	} else {
		result.MatchedCount = 1
		result.ModifiedCount = 1
	}
	return result, nil
}

// DeleteJob removes a job. Deleting an unknown ID is not an error.
// @Summary Delete job
// @Tags Job
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} model.DeleteResult
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /job/{id} [delete]
func (jc *JobController) DeleteJob(c *gin.Context) {
	id := c.Param("id")

	res := jc.DB.WithContext(c.Request.Context()).Where("id = ?", id).Delete(&model.Job{})
	if err := res.Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to delete job: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, model.DeleteResult{Acknowledged: true, DeletedCount: res.RowsAffected})
}
