package portfolio

import (
	"slices"
	"strings"

	"github.com/yourusername/outreach-api/internal/model"
)

// MaxLinks bounds every LinkSelection
const MaxLinks = 2

// TechnicalKeywords mark a skill as technical. A skill qualifies when it
// contains a keyword or a keyword contains it.
var TechnicalKeywords = []string{
	"javascript", "typescript", "react", "node", "mongodb", "postgresql",
	"web", "development", "programming", "software", "full-stack", "frontend", "backend",
	"database", "api", "microservices", "html", "css", "express", "next.js", "vue",
}

// DefaultLinks are offered for technical postings when the index has nothing
var DefaultLinks = []string{
	"https://github.com/yourusername/react-portfolio",
	"https://github.com/yourusername/nodejs-project",
}

// Matcher selects portfolio links for a job's skills
type Matcher struct {
	index    *Index
	defaults []string
}

// NewMatcher creates a matcher over index. A nil or empty defaults falls back
// to DefaultLinks.
func NewMatcher(index *Index, defaults []string) *Matcher {
	if index == nil {
		index = NewIndex(nil)
	}
	if len(defaults) == 0 {
		defaults = DefaultLinks
	}
	return &Matcher{index: index, defaults: append([]string(nil), defaults...)}
}

// Match walks skills in order, collecting index links (first seen wins) and
// returns at most MaxLinks of them.
//
// The default-link fallback is evaluated inside the loop: a technical skill
// adds the defaults whenever nothing has been collected so far. A later skill
// with a real index match is then appended after the defaults and usually
// truncated away. This ordering is relied on by clients, keep it.
func (m *Matcher) Match(skills []string) model.LinkSelection {
	result := make(model.LinkSelection, 0, MaxLinks)
	add := func(link string) {
		if !slices.Contains(result, link) {
			result = append(result, link)
		}
	}

	for _, skill := range skills {
		skillLower := strings.ToLower(strings.TrimSpace(skill))
		if skillLower == "" {
			continue
		}

		for _, link := range m.index.Lookup(skillLower) {
			add(link)
		}

		if isTechnical(skillLower) && len(result) == 0 {
			for _, link := range m.defaults {
				add(link)
			}
		}
	}

	if len(result) > MaxLinks {
		result = result[:MaxLinks]
	}
	return result
}

func isTechnical(skillLower string) bool {
	for _, kw := range TechnicalKeywords {
		if strings.Contains(skillLower, kw) || strings.Contains(kw, skillLower) {
			return true
		}
	}
	return false
}
