package blog

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"

	"github.com/rar34/explore-job-server/internal/database"
	"github.com/rar34/explore-job-server/internal/model"
	"github.com/rar34/explore-job-server/internal/testutil"
	"github.com/rar34/explore-job-server/internal/utilities"
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
	code := m.Run()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if midTeardown != nil {
		_ = midTeardown(ctx)
	}
	os.Exit(code)
}

func TestCreateBlog(t *testing.T) {
	bc := NewBlogController(testDB)
	body := gin.H{
		"title":        "Access tokens vs refresh tokens",
		"content":      "Short lived and long lived.",
		"author_name":  "Writer",
		"author_email": "writer@example.com",
	}

	rec, resp, err := utilities.SimulateAPICall(bc.CreateBlog, "/blogs", http.MethodPost, body)
	require.NoError(t, err)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, resp["acknowledged"])
	id, _ := resp["insertedId"].(string)
	require.NotEmpty(t, id)

	blog := model.Blog{}
	require.NoError(t, testDB.Where("id = ?", id).First(&blog).Error)
	assert.Equal(t, "Access tokens vs refresh tokens", blog.Title)
	assert.False(t, blog.PostedAt.IsZero())
}

func TestCreateBlog_MissingTitle(t *testing.T) {
	bc := NewBlogController(testDB)

	rec, resp, err := utilities.SimulateAPICall(bc.CreateBlog, "/blogs", http.MethodPost, gin.H{"content": "no title"})
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, resp["error"], "Invalid request body")
}

func TestGetBlogs(t *testing.T) {
	r := gin.New()
	r.GET("/blogs", NewBlogController(testDB).GetBlogs)

	rec, blogs := testutil.MakeJSONListRequest("", r, "/blogs")

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, blogs)
	found := false
	for _, b := range blogs {
		if b["_id"] == database.TestBlog1.ID {
			found = true
		}
	}
	assert.True(t, found)
}
