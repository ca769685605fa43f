// Package jobdata turns untrusted, model-extracted job data into a JobRecord
// the rest of the service can rely on without further shape checks.
package jobdata

import (
	"strings"

	"github.com/yourusername/outreach-api/internal/model"
)

// ErrorPageMarkers are matched case-sensitively against the description.
var ErrorPageMarkers = []string{
	"503 error",
	"Server Error",
	"No job posting available",
}

// FallbackSkills stand in when a posting has a role or experience but no skills
var FallbackSkills = []string{"JavaScript", "TypeScript", "React", "Node.js"}

// Normalize validates raw job data and produces a JobRecord.
//
// Failures: ErrInvalidJobData when raw is nil, *UpstreamContentError when the
// description is an error page, ErrInsufficientJobData when nothing
// identifying a job posting was extracted.
func Normalize(raw *RawJobData) (model.JobRecord, error) {
	if raw == nil {
		return model.JobRecord{}, ErrInvalidJobData
	}

	skills := coerceSkills(raw.Skills)

	for _, marker := range ErrorPageMarkers {
		if strings.Contains(raw.Description, marker) {
			return model.JobRecord{}, &UpstreamContentError{
				Marker:      marker,
				Description: raw.Description,
			}
		}
	}

	if raw.Role == "" && raw.Experience == "" && len(skills) == 0 {
		return model.JobRecord{}, ErrInsufficientJobData
	}

	if len(skills) == 0 {
		skills = append([]string(nil), FallbackSkills...)
	}

	return model.JobRecord{
		Role:        raw.Role,
		Experience:  raw.Experience,
		Skills:      skills,
		Description: raw.Description,
	}, nil
}

func coerceSkills(s RawSkills) []string {
	switch s.Kind {
	case SkillsString:
		return splitSkills(s.Text)
	case SkillsArray:
		return append([]string(nil), s.List...)
	default:
		return nil
	}
}
