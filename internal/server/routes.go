// Package server contain implementation of go-gin-server and each route handlers
package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/rar34/explore-job-server/internal/auth"
	"github.com/rar34/explore-job-server/internal/controller/bid"
	"github.com/rar34/explore-job-server/internal/controller/blog"
	"github.com/rar34/explore-job-server/internal/controller/job"
	"github.com/rar34/explore-job-server/internal/middleware"
)

// maxBodyBytes bounds JSON request bodies
const maxBodyBytes = 1 << 20

// RegisterRoutes will register each http endpoint routes to bound Server instance
func (s *MyServer) RegisterRoutes() http.Handler {
	r := gin.Default()

	tokenController := auth.NewTokenController(s.Tokens)
	jobController := job.NewJobController(s.DB)
	bidController := bid.NewBidController(s.DB)
	blogController := blog.NewBlogController(s.DB)

	r.Use(cors.New(cors.Config{
		AllowOrigins:     s.Config.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Content-Type"},
		AllowCredentials: true, // Enable cookies
	}))
	r.Use(middleware.SafeHeader(s.Config.GinMode == gin.ReleaseMode), middleware.SizeLimit(maxBodyBytes))

	limiter := middleware.RateLimiterMiddleware(s.Config.RateLimitPerSecond, s.Redis)

	r.GET("/", s.HelloWorldHandler)
	r.GET("/health", s.healthHandler)

	r.POST("/jwt", limiter, tokenController.IssueHandler)
	r.POST("/logout", tokenController.LogoutHandler)

	r.GET("/jobs", jobController.GetJobs)
	r.POST("/jobs", jobController.CreateJob)
	r.PUT("/jobs/:id", jobController.UpsertJob)
	r.GET("/job/:id", jobController.GetJobByID)
	r.DELETE("/job/:id", jobController.DeleteJob)

	r.POST("/bid", limiter, bidController.BidHandler)

	r.GET("/blogs", blogController.GetBlogs)
	r.POST("/blogs", blogController.CreateBlog)

	needOwner := r.Group("")
	{
		needOwner.Use(middleware.RequireAuth(s.Tokens), middleware.RequireOwner("email"))
		needOwner.GET("/jobs/:email", jobController.GetJobsByOwner)
		needOwner.GET("/appliedJobs/:email", bidController.GetAppliedJobs)
	}

	return r
}

// HelloWorldHandler answers liveness probes with plain text
func (s *MyServer) HelloWorldHandler(c *gin.Context) {
	c.String(http.StatusOK, "App is running")
}

func (s *MyServer) healthHandler(c *gin.Context) {
	stats := s.DB.Health()
	if stats["status"] != "up" {
		c.JSON(http.StatusServiceUnavailable, stats)
		return
	}
	c.JSON(http.StatusOK, stats)
}
