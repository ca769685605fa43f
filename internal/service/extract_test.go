package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/outreach-api/internal/jobdata"
	"github.com/yourusername/outreach-api/internal/model"
)

func TestExtract(t *testing.T) {
	gen := &fakeGenerator{reply: "```json\n{\"role\":\"Backend Engineer\",\"experience\":\"3 years\",\"skills\":\"Go, SQL\",\"description\":\"Build APIs\"}\n```"}

	raw, err := NewLLMJobExtractor(gen).Extract(context.Background(), "career page text")
	require.NoError(t, err)

	assert.Equal(t, "Backend Engineer", raw.Role)
	assert.Equal(t, "3 years", raw.Experience)
	assert.Equal(t, jobdata.SkillsString, raw.Skills.Kind)
	assert.Equal(t, "Go, SQL", raw.Skills.Text)
	assert.Contains(t, gen.prompts[0], "career page text")
}

func TestExtractTakesFirstOfArray(t *testing.T) {
	gen := &fakeGenerator{reply: `[{"role":"First"},{"role":"Second"}]`}

	raw, err := NewLLMJobExtractor(gen).Extract(context.Background(), "text")
	require.NoError(t, err)
	assert.Equal(t, "First", raw.Role)
}

func TestExtractTruncatesInput(t *testing.T) {
	gen := &fakeGenerator{reply: `{"role":"x"}`}

	_, err := NewLLMJobExtractor(gen).Extract(context.Background(), strings.Repeat("a", maxExtractChars+500))
	require.NoError(t, err)
	assert.Less(t, len(gen.prompts[0]), maxExtractChars+200)
}

func TestExtractFailures(t *testing.T) {
	tests := []struct {
		name string
		gen  *fakeGenerator
	}{
		{"model error", &fakeGenerator{err: errors.New("rate limited")}},
		{"not json", &fakeGenerator{reply: "I could not find a job posting."}},
		{"broken json", &fakeGenerator{reply: `{"role": "x", "skills": [`}},
		{"json but not an object", &fakeGenerator{reply: `[]`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := NewLLMJobExtractor(tt.gen).Extract(context.Background(), "text")
			assert.Error(t, err)
			assert.Nil(t, raw)
		})
	}
}

func TestDraft(t *testing.T) {
	gen := &fakeGenerator{reply: "  Dear hiring manager,\n...\n"}
	d := NewLLMEmailDrafter(gen, Persona{Name: "Sam Lee", Profile: "Full-stack developer"})

	job := model.JobRecord{Role: "Frontend Engineer", Skills: []string{"React", "CSS"}}
	out, err := d.Draft(context.Background(), job, "https://a, https://b", "sam@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Dear hiring manager,\n...", out)

	assert.Contains(t, gen.systems[0], "Sam Lee")
	assert.Contains(t, gen.systems[0], "Full-stack developer")

	prompt := gen.prompts[0]
	assert.Contains(t, prompt, "Role: Frontend Engineer")
	assert.Contains(t, prompt, "Experience Required: Not specified")
	assert.Contains(t, prompt, "Skills Required: React, CSS")
	assert.Contains(t, prompt, "Description: Not specified")
	assert.Contains(t, prompt, "https://a, https://b")
	assert.Contains(t, prompt, "sam@example.com")
}

func TestDraftWithoutLinks(t *testing.T) {
	gen := &fakeGenerator{reply: "email"}
	_, err := NewLLMEmailDrafter(gen, Persona{}).Draft(context.Background(), model.JobRecord{Role: "HR"}, "", "x@y.z")
	require.NoError(t, err)
	assert.Contains(t, gen.prompts[0], "none available")
	assert.Contains(t, gen.systems[0], "the applicant")
}

func TestDraftFailures(t *testing.T) {
	_, err := NewLLMEmailDrafter(&fakeGenerator{err: errors.New("boom")}, Persona{}).
		Draft(context.Background(), model.JobRecord{}, "", "x@y.z")
	assert.ErrorContains(t, err, "boom")

	_, err = NewLLMEmailDrafter(&fakeGenerator{reply: "   "}, Persona{}).
		Draft(context.Background(), model.JobRecord{}, "", "x@y.z")
	assert.ErrorContains(t, err, "empty email draft")
}
