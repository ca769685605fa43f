package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/yourusername/outreach-api/internal/model"
)

const notSpecified = "Not specified"

// Persona describes the person the cold email is written as
type Persona struct {
	Name    string
	Profile string
}

// LLMEmailDrafter writes cold outreach emails with a language model
type LLMEmailDrafter struct {
	llm     Generator
	persona Persona
}

func NewLLMEmailDrafter(llm Generator, persona Persona) *LLMEmailDrafter {
	return &LLMEmailDrafter{llm: llm, persona: persona}
}

// Draft returns a plain-text email. links is a comma-joined list and may be
// empty; requesterEmail is given to the model as the reply-to contact.
func (d *LLMEmailDrafter) Draft(ctx context.Context, job model.JobRecord, links, requesterEmail string) (string, error) {
	email, err := d.llm.Generate(ctx, d.systemPrompt(), buildDraftPrompt(job, links, requesterEmail))
	if err != nil {
		return "", fmt.Errorf("generating email: %w", err)
	}

	email = strings.TrimSpace(email)
	if email == "" {
		return "", fmt.Errorf("empty email draft")
	}
	return email, nil
}

func (d *LLMEmailDrafter) systemPrompt() string {
	name := orDefault(d.persona.Name, "the applicant")

	var b strings.Builder
	fmt.Fprintf(&b, "You are %s, writing a cold email to a hiring manager.\n", name)
	if d.persona.Profile != "" {
		fmt.Fprintf(&b, "Background: %s\n", d.persona.Profile)
	}
	b.WriteString(`
Write a professional cold email for the job described by the user.
- If it is a technical or development role, emphasize technical skills.
- If it is a non-technical role (HR, admin, operations), focus on analytical skills, problem solving, communication and adaptability.
- Be honest about the background and highlight transferable skills.
- Include the portfolio links only if they fit the job requirements.
- Do not write a preamble. Output only the email.`)
	return b.String()
}

func buildDraftPrompt(job model.JobRecord, links, requesterEmail string) string {
	skills := notSpecified
	if len(job.Skills) > 0 {
		skills = strings.Join(job.Skills, ", ")
	}

	var b strings.Builder
	b.WriteString("### JOB DESCRIPTION:\n")
	fmt.Fprintf(&b, "Role: %s\n", orDefault(job.Role, notSpecified))
	fmt.Fprintf(&b, "Experience Required: %s\n", orDefault(job.Experience, notSpecified))
	fmt.Fprintf(&b, "Skills Required: %s\n", skills)
	fmt.Fprintf(&b, "Description: %s\n\n", orDefault(job.Description, notSpecified))
	fmt.Fprintf(&b, "### PORTFOLIO LINKS:\n%s\n\n", orDefault(links, "none available"))
	fmt.Fprintf(&b, "### REPLY-TO EMAIL:\n%s\n\n", requesterEmail)
	b.WriteString("### EMAIL (NO PREAMBLE):")
	return b.String()
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
