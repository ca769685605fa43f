package model

import (
	"time"

	"github.com/google/uuid"
)

// ── Accounts ───────────────────────────────────────────

// User represents a registered account
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// PublicUser is the subset of User returned by the auth endpoints
type PublicUser struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}

func (u *User) Public() PublicUser {
	return PublicUser{Email: u.Email, Username: u.Username}
}

// ── Job data ───────────────────────────────────────────

// JobRecord is the canonical, validated representation of a job posting.
// Skills is never nil once produced by normalization.
type JobRecord struct {
	Role        string   `json:"role"`
	Experience  string   `json:"experience"`
	Skills      []string `json:"skills"`
	Description string   `json:"description"`
}

// ── Portfolio ──────────────────────────────────────────

// PortfolioEntry pairs a lowercase skill tag with a portfolio link
type PortfolioEntry struct {
	SkillTag string `json:"skillTag"`
	Link     string `json:"link"`
}

// LinkSelection is the bounded, deduplicated list of links chosen for a job
type LinkSelection []string

// ── Outreach ───────────────────────────────────────────

// OutreachResult is what the email endpoints return on success
type OutreachResult struct {
	EmailDraft     string        `json:"email"`
	JobRecord      JobRecord     `json:"jobData"`
	PortfolioLinks LinkSelection `json:"portfolioLinks"`
}
