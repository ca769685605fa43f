package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/yourusername/outreach-api/internal/jobdata"
)

// maxExtractChars keeps the prompt within the model's context and keeps costs down
const maxExtractChars = 50000

const extractSystemPrompt = `You extract job postings from scraped career-page text.

Respond with ONLY a JSON object (no markdown, no backticks, no preamble) with these keys:
{
  "role": "Job title",
  "experience": "Experience required, e.g. 2-4 years",
  "skills": ["skill1", "skill2"],
  "description": "A short summary of the role"
}

Rules:
- "skills" must be an array of strings.
- Extract only what is stated. Use an empty string or empty array when a field is missing.
- If the text is an error page or contains no job posting, say so in "description" and leave the other fields empty.`

// LLMJobExtractor turns page text into RawJobData with a language model
type LLMJobExtractor struct {
	llm Generator
}

func NewLLMJobExtractor(llm Generator) *LLMJobExtractor {
	return &LLMJobExtractor{llm: llm}
}

// Extract asks the model for the job posting in text. The result is untrusted;
// only a reply that is not a JSON object at all is an error here.
func (e *LLMJobExtractor) Extract(ctx context.Context, text string) (*jobdata.RawJobData, error) {
	if len(text) > maxExtractChars {
		text = text[:maxExtractChars]
	}

	log.Info().Int("contentLength", len(text)).Msg("Extracting job posting")

	reply, err := e.llm.Generate(ctx, extractSystemPrompt, "### SCRAPED TEXT FROM WEBSITE:\n"+text+"\n\n### VALID JSON (NO PREAMBLE):")
	if err != nil {
		return nil, fmt.Errorf("generating extraction: %w", err)
	}

	payload := jsonPayload(reply)
	raw, err := jobdata.Parse([]byte(payload))
	if err != nil {
		return nil, fmt.Errorf("parsing extracted job data: %w (raw: %.200s)", err, payload)
	}
	if raw == nil {
		return nil, fmt.Errorf("model returned no job object (raw: %.200s)", payload)
	}
	return raw, nil
}
