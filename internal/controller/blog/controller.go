// Package blog provides HTTP handlers for blog posts.
package blog

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rar34/explore-job-server/internal/database"
	"github.com/rar34/explore-job-server/internal/model"
	"github.com/rar34/explore-job-server/internal/utilities"
)

// BlogController handles blog endpoints
type BlogController struct {
	DB *database.DBinstanceStruct
}

// NewBlogController creates a new instance of BlogController
func NewBlogController(db *database.DBinstanceStruct) *BlogController {
	return &BlogController{
		DB: db,
	}
}

// GetBlogs returns every blog post, newest first
// @Summary List blog posts
// @Tags Blog
// @Produce json
// @Success 200 {array} model.Blog
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /blogs [get]
func (bc *BlogController) GetBlogs(c *gin.Context) {
	blogs := []model.Blog{}
	if err := bc.DB.WithContext(c.Request.Context()).Order("posted_at DESC").Find(&blogs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to fetch blogs: ", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, blogs)
}

// CreateBlog stores a new blog post
// @Summary Create blog post
// @Tags Blog
// @Accept json
// @Produce json
// @Param blog body model.Blog true "Blog post"
// @Success 200 {object} model.InsertResult
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body"
// @Failure 413 {object} utilities.ErrorResponse "Request body too large"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /blogs [post]
func (bc *BlogController) CreateBlog(c *gin.Context) {
	blog := model.Blog{}
	if err := c.ShouldBindJSON(&blog); err != nil {
		c.JSON(utilities.BindErrorStatus(err), utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}
	blog.ID = ""

	if err := bc.DB.WithContext(c.Request.Context()).Create(&blog).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to create blog: ", err),
		})
		return
	}

	c.JSON(http.StatusOK, model.InsertResult{Acknowledged: true, InsertedID: blog.ID})
}
