package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/outreach-api/internal/jobdata"
	"github.com/yourusername/outreach-api/internal/model"
	"github.com/yourusername/outreach-api/internal/portfolio"
)

type fakeFetcher struct {
	text string
	err  error
	urls []string
}

func (f *fakeFetcher) Load(_ context.Context, url string) (string, error) {
	f.urls = append(f.urls, url)
	return f.text, f.err
}

type fakeExtractor struct {
	raw   *jobdata.RawJobData
	err   error
	texts []string
}

func (f *fakeExtractor) Extract(_ context.Context, text string) (*jobdata.RawJobData, error) {
	f.texts = append(f.texts, text)
	return f.raw, f.err
}

type draftCall struct {
	job       model.JobRecord
	links     string
	requester string
}

type fakeDrafter struct {
	email string
	err   error
	calls []draftCall
}

func (f *fakeDrafter) Draft(_ context.Context, job model.JobRecord, links, requester string) (string, error) {
	f.calls = append(f.calls, draftCall{job: job, links: links, requester: requester})
	return f.email, f.err
}

func newTestOutreach(f *fakeFetcher, e *fakeExtractor, d *fakeDrafter) *OutreachService {
	idx := portfolio.NewIndex([]model.PortfolioEntry{
		{SkillTag: "node.js, express", Link: "https://example.com/node"},
		{SkillTag: "postgresql", Link: "https://example.com/pg"},
		{SkillTag: "react", Link: "https://example.com/react"},
	})
	return NewOutreachService(f, e, d, portfolio.NewMatcher(idx, nil))
}

func TestGenerateFromData(t *testing.T) {
	drafter := &fakeDrafter{email: "Hello hiring manager"}
	svc := newTestOutreach(&fakeFetcher{}, &fakeExtractor{}, drafter)

	raw := &jobdata.RawJobData{Role: "Backend Engineer", Skills: jobdata.SkillsList("Node.js", "PostgreSQL")}
	res, err := svc.GenerateFromData(context.Background(), raw, "a@b.com")
	require.NoError(t, err)

	assert.Equal(t, "Hello hiring manager", res.EmailDraft)
	assert.Equal(t, []string{"Node.js", "PostgreSQL"}, res.JobRecord.Skills)
	assert.Equal(t, model.LinkSelection{"https://example.com/node", "https://example.com/pg"}, res.PortfolioLinks)

	require.Len(t, drafter.calls, 1)
	assert.Equal(t, "https://example.com/node, https://example.com/pg", drafter.calls[0].links)
	assert.Equal(t, "a@b.com", drafter.calls[0].requester)
	assert.Equal(t, "Backend Engineer", drafter.calls[0].job.Role)
}

func TestGenerateFromDataNormalizationFailures(t *testing.T) {
	tests := []struct {
		name  string
		raw   *jobdata.RawJobData
		check func(t *testing.T, err error)
	}{
		{"nil data", nil, func(t *testing.T, err error) { assert.ErrorIs(t, err, jobdata.ErrInvalidJobData) }},
		{"empty data", &jobdata.RawJobData{}, func(t *testing.T, err error) { assert.ErrorIs(t, err, jobdata.ErrInsufficientJobData) }},
		{"error page", &jobdata.RawJobData{Role: "x", Description: "503 error"}, func(t *testing.T, err error) {
			var upstream *jobdata.UpstreamContentError
			assert.True(t, errors.As(err, &upstream))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			drafter := &fakeDrafter{email: "unused"}
			svc := newTestOutreach(&fakeFetcher{}, &fakeExtractor{}, drafter)

			_, err := svc.GenerateFromData(context.Background(), tt.raw, "a@b.com")
			tt.check(t, err)
			assert.Empty(t, drafter.calls)
		})
	}
}

func TestGenerateFromDataRequiresRequester(t *testing.T) {
	drafter := &fakeDrafter{email: "unused"}
	svc := newTestOutreach(&fakeFetcher{}, &fakeExtractor{}, drafter)

	_, err := svc.GenerateFromData(context.Background(), &jobdata.RawJobData{Role: "Dev"}, "  ")
	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.Empty(t, drafter.calls)
}

func TestGenerateFromDataDraftFailure(t *testing.T) {
	svc := newTestOutreach(&fakeFetcher{}, &fakeExtractor{}, &fakeDrafter{err: errors.New("model down")})

	_, err := svc.GenerateFromData(context.Background(), &jobdata.RawJobData{Role: "Dev"}, "a@b.com")
	var stage *StageError
	require.True(t, errors.As(err, &stage))
	assert.Equal(t, StageDraft, stage.Stage)
	assert.Contains(t, err.Error(), "model down")
}

func TestGenerateFromDataNonTechnicalPassesEmptyLinks(t *testing.T) {
	drafter := &fakeDrafter{email: "Dear HR"}
	svc := newTestOutreach(&fakeFetcher{}, &fakeExtractor{}, drafter)

	raw := &jobdata.RawJobData{Role: "HR Generalist", Skills: jobdata.SkillsList("Recruiting", "Payroll")}
	res, err := svc.GenerateFromData(context.Background(), raw, "a@b.com")
	require.NoError(t, err)

	assert.NotNil(t, res.PortfolioLinks)
	assert.Empty(t, res.PortfolioLinks)
	assert.Equal(t, "", drafter.calls[0].links)
}

func TestGenerateFromURL(t *testing.T) {
	fetcher := &fakeFetcher{text: "Senior React Developer wanted"}
	extractor := &fakeExtractor{raw: &jobdata.RawJobData{Role: "React Developer", Skills: jobdata.SkillsText("React, CSS")}}
	drafter := &fakeDrafter{email: "Hi"}
	svc := newTestOutreach(fetcher, extractor, drafter)

	res, err := svc.GenerateFromURL(context.Background(), "https://jobs.example.com/1", "a@b.com")
	require.NoError(t, err)

	assert.Equal(t, []string{"https://jobs.example.com/1"}, fetcher.urls)
	assert.Equal(t, []string{"Senior React Developer wanted"}, extractor.texts)
	assert.Equal(t, []string{"React", "CSS"}, res.JobRecord.Skills)
	assert.Equal(t, model.LinkSelection{"https://example.com/react"}, res.PortfolioLinks)
}

func TestGenerateFromURLStageFailures(t *testing.T) {
	t.Run("fetch", func(t *testing.T) {
		extractor := &fakeExtractor{}
		svc := newTestOutreach(&fakeFetcher{err: errors.New("timeout")}, extractor, &fakeDrafter{})

		_, err := svc.GenerateFromURL(context.Background(), "https://x", "a@b.com")
		var stage *StageError
		require.True(t, errors.As(err, &stage))
		assert.Equal(t, StageFetch, stage.Stage)
		assert.Empty(t, extractor.texts)
	})

	t.Run("empty content", func(t *testing.T) {
		svc := newTestOutreach(&fakeFetcher{text: " \n "}, &fakeExtractor{}, &fakeDrafter{})

		_, err := svc.GenerateFromURL(context.Background(), "https://x", "a@b.com")
		assert.ErrorIs(t, err, ErrEmptyContent)
	})

	t.Run("extract", func(t *testing.T) {
		svc := newTestOutreach(&fakeFetcher{text: "page"}, &fakeExtractor{err: errors.New("not json")}, &fakeDrafter{})

		_, err := svc.GenerateFromURL(context.Background(), "https://x", "a@b.com")
		var stage *StageError
		require.True(t, errors.As(err, &stage))
		assert.Equal(t, StageExtract, stage.Stage)
	})

	t.Run("error page extracted", func(t *testing.T) {
		extractor := &fakeExtractor{raw: &jobdata.RawJobData{Description: "No job posting available"}}
		drafter := &fakeDrafter{}
		svc := newTestOutreach(&fakeFetcher{text: "page"}, extractor, drafter)

		_, err := svc.GenerateFromURL(context.Background(), "https://x", "a@b.com")
		var upstream *jobdata.UpstreamContentError
		require.True(t, errors.As(err, &upstream))
		assert.Equal(t, "No job posting available", upstream.Description)
		assert.Empty(t, drafter.calls)
	})
}
