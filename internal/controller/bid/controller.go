// Package bid provides HTTP handlers for submitting and listing bids.
package bid

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/rar34/explore-job-server/internal/database"
	"github.com/rar34/explore-job-server/internal/model"
	"github.com/rar34/explore-job-server/internal/utilities"
)

// BidController handles bid related endpoints
type BidController struct {
	DB *database.DBinstanceStruct
}

// NewBidController creates a new instance of BidController with the provided database connection.
func NewBidController(db *database.DBinstanceStruct) *BidController {
	return &BidController{
		DB: db,
	}
}

// SubmitBid records bid and increments the applicant counter of its job in one
// transaction. The unique index on (user_email, job_id) decides duplicates; the
// lookup before insert only answers the common case early.
func (bc *BidController) SubmitBid(ctx context.Context, bid *model.Bid) error {
	return bc.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&model.Bid{}).
			Where("user_email = ? AND job_id = ?", bid.UserEmail, bid.JobID).
			Count(&existing).Error; err != nil {
			return fmt.Errorf("check existing bid: %w", err)
		}
		if existing > 0 {
			return ErrDuplicateApplication
		}

		if err := tx.Create(bid).Error; err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
				return ErrDuplicateApplication
			}
			return fmt.Errorf("insert bid: %w", err)
		}

		res := tx.Model(&model.Job{}).
			Where("id = ?", bid.JobID).
			UpdateColumn("applicants", gorm.Expr("applicants + ?", 1))
		if res.Error != nil {
			return fmt.Errorf("increment applicants: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrJobNotFound
		}
		return nil
	})
}

// BidHandler submits a bid on a job.
// @Summary Apply to a job
// @Description A user may bid on a job only once
// @Tags Bid
// @Accept json
// @Produce json
// @Param bid body model.Bid true "Bid information"
// @Success 200 {object} model.InsertResult "Bid recorded"
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body, already applied"
// @Failure 413 {object} utilities.ErrorResponse "Request body too large"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /bid [post]
func (bc *BidController) BidHandler(c *gin.Context) {
	bid := model.Bid{}
	if err := c.ShouldBindJSON(&bid); err != nil {
		c.JSON(utilities.BindErrorStatus(err), utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}
	// Identifiers and timestamps are assigned by the server
	bid.ID = ""
	bid.AppliedAt = time.Now()

	err := bc.SubmitBid(c.Request.Context(), &bid)
	switch {
	case err == nil:
		log.Printf("bid %s recorded: user=%s job=%s", bid.ID, bid.UserEmail, bid.JobID)
		c.JSON(http.StatusOK, model.InsertResult{Acknowledged: true, InsertedID: bid.ID})
	case errors.Is(err, ErrDuplicateApplication):
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: err.Error()})
	case errors.Is(err, ErrJobNotFound):
		c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Job not found"})
	default:
		log.Printf("bid failed: user=%s job=%s: %v", bid.UserEmail, bid.JobID, err)
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to create bid: %s", err.Error()),
		})
	}
}

// GetAppliedJobs lists the bids placed by the email in the path
// @Summary List my bids
// @Description Caller's token email must equal the path email
// @Tags Bid
// @Produce json
// @Param email path string true "Applicant email"
// @Success 200 {array} model.Bid
// @Failure 401 {object} utilities.ErrorResponse "Missing or invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Email mismatch"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /appliedJobs/{email} [get]
func (bc *BidController) GetAppliedJobs(c *gin.Context) {
	email := c.Param("email")

	bids := []model.Bid{}
	if err := bc.DB.WithContext(c.Request.Context()).
		Where("user_email = ?", email).
		Order("applied_at DESC").
		Find(&bids).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to fetch bids: ", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, bids)
}
