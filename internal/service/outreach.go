package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/yourusername/outreach-api/internal/jobdata"
	"github.com/yourusername/outreach-api/internal/model"
	"github.com/yourusername/outreach-api/internal/portfolio"
)

// ContentFetcher loads the readable text of a job posting URL
type ContentFetcher interface {
	Load(ctx context.Context, url string) (string, error)
}

// JobExtractor turns page text into untrusted job data
type JobExtractor interface {
	Extract(ctx context.Context, text string) (*jobdata.RawJobData, error)
}

// EmailDrafter writes the outreach email
type EmailDrafter interface {
	Draft(ctx context.Context, job model.JobRecord, links, requesterEmail string) (string, error)
}

// OutreachService sequences fetch → extract → normalize → match → draft.
// It holds no per-request state and is safe for concurrent use.
type OutreachService struct {
	fetcher   ContentFetcher
	extractor JobExtractor
	drafter   EmailDrafter
	matcher   *portfolio.Matcher
}

func NewOutreachService(fetcher ContentFetcher, extractor JobExtractor, drafter EmailDrafter, matcher *portfolio.Matcher) *OutreachService {
	return &OutreachService{
		fetcher:   fetcher,
		extractor: extractor,
		drafter:   drafter,
		matcher:   matcher,
	}
}

// GenerateFromURL drafts an email for the posting at jobURL
func (s *OutreachService) GenerateFromURL(ctx context.Context, jobURL, requesterEmail string) (*model.OutreachResult, error) {
	log.Info().Str("url", jobURL).Msg("Loading job posting")

	text, err := s.fetcher.Load(ctx, jobURL)
	if err != nil {
		return nil, stageErr(StageFetch, err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyContent
	}

	raw, err := s.extractor.Extract(ctx, text)
	if err != nil {
		return nil, stageErr(StageExtract, err)
	}

	return s.GenerateFromData(ctx, raw, requesterEmail)
}

// GenerateFromData drafts an email from job data the caller already has.
// Normalization failures are returned unwrapped so callers can classify them.
func (s *OutreachService) GenerateFromData(ctx context.Context, raw *jobdata.RawJobData, requesterEmail string) (*model.OutreachResult, error) {
	job, err := jobdata.Normalize(raw)
	if err != nil {
		return nil, err
	}

	links := s.matcher.Match(job.Skills)
	log.Info().Str("role", job.Role).Strs("links", links).Msg("Portfolio links matched")

	if strings.TrimSpace(requesterEmail) == "" {
		return nil, ErrUnauthenticated
	}

	email, err := s.drafter.Draft(ctx, job, strings.Join(links, ", "), requesterEmail)
	if err != nil {
		return nil, stageErr(StageDraft, err)
	}

	return &model.OutreachResult{
		EmailDraft:     email,
		JobRecord:      job,
		PortfolioLinks: links,
	}, nil
}
