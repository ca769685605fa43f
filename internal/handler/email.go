package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/yourusername/outreach-api/internal/apperr"
	"github.com/yourusername/outreach-api/internal/jobdata"
	"github.com/yourusername/outreach-api/internal/middleware"
	"github.com/yourusername/outreach-api/internal/model"
)

// Outreach is the pipeline behind the email endpoints
type Outreach interface {
	GenerateFromURL(ctx context.Context, jobURL, requesterEmail string) (*model.OutreachResult, error)
	GenerateFromData(ctx context.Context, raw *jobdata.RawJobData, requesterEmail string) (*model.OutreachResult, error)
}

type EmailHandler struct {
	outreach Outreach
}

func NewEmailHandler(outreach Outreach) *EmailHandler {
	return &EmailHandler{outreach: outreach}
}

// Generate handles POST /api/email/generate
// Loads the posting at jobUrl, extracts it and drafts an email
func (h *EmailHandler) Generate(c *gin.Context) {
	var req struct {
		JobURL    string `json:"jobUrl"`
		LegacyURL string `json:"joburl"` // older clients
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, apperr.BadRequest("Invalid request body", err.Error()))
		return
	}

	jobURL := strings.TrimSpace(req.JobURL)
	if jobURL == "" {
		jobURL = strings.TrimSpace(req.LegacyURL)
	}
	if jobURL == "" {
		respond(c, apperr.BadRequest("Job URL is required", ""))
		return
	}

	result, err := h.outreach.GenerateFromURL(c.Request.Context(), jobURL, middleware.GetEmail(c))
	if err != nil {
		writeError(c, err)
		return
	}

	log.Info().Str("email", middleware.GetEmail(c)).Str("role", result.JobRecord.Role).Msg("Email generated from URL")
	respondResult(c, result)
}

// GenerateFromData handles POST /api/email/generate-from-data
// Drafts an email from job data the client already extracted
func (h *EmailHandler) GenerateFromData(c *gin.Context) {
	var req struct {
		JobData json.RawMessage `json:"jobData"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, apperr.BadRequest("Invalid request body", err.Error()))
		return
	}

	raw, err := jobdata.Parse(req.JobData)
	if err != nil {
		respond(c, apperr.BadRequest("Invalid job data", err.Error()))
		return
	}

	result, err := h.outreach.GenerateFromData(c.Request.Context(), raw, middleware.GetEmail(c))
	if err != nil {
		writeError(c, err)
		return
	}

	log.Info().Str("email", middleware.GetEmail(c)).Str("role", result.JobRecord.Role).Msg("Email generated from job data")
	respondResult(c, result)
}

// Test handles GET /api/email/test
func (h *EmailHandler) Test(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Email API is working",
		"user":    middleware.GetEmail(c),
		"endpoints": gin.H{
			"generate":         "POST /api/email/generate",
			"generateFromData": "POST /api/email/generate-from-data",
			"test":             "GET /api/email/test",
		},
		"sampleRequests": gin.H{
			"generate": gin.H{"jobUrl": "https://example.com/careers/backend-engineer"},
			"generateFromData": gin.H{
				"jobData": gin.H{
					"role":        "Backend Engineer",
					"experience":  "3+ years",
					"skills":      []string{"Node.js", "PostgreSQL"},
					"description": "Build and run our API platform.",
				},
			},
		},
	})
}

func respondResult(c *gin.Context, result *model.OutreachResult) {
	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"email":          result.EmailDraft,
		"jobData":        result.JobRecord,
		"portfolioLinks": result.PortfolioLinks,
	})
}
