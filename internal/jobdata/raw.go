package jobdata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// SkillsKind records which shape the "skills" field arrived in
type SkillsKind int

const (
	SkillsAbsent SkillsKind = iota
	SkillsString
	SkillsArray
	SkillsOther
)

// RawSkills holds the untrusted "skills" value: a comma-joined string, a list,
// or something else entirely.
type RawSkills struct {
	Kind SkillsKind
	Text string
	List []string
}

// SkillsText builds a RawSkills from a comma-joined string
func SkillsText(s string) RawSkills {
	return RawSkills{Kind: SkillsString, Text: s}
}

// SkillsList builds a RawSkills from an already split list
func SkillsList(list ...string) RawSkills {
	return RawSkills{Kind: SkillsArray, List: list}
}

// RawJobData is job data as produced by the extractor or posted by a client.
// Nothing about it is trusted; an empty string means the field was absent or
// not a usable scalar.
type RawJobData struct {
	Role        string
	Experience  string
	Description string
	Skills      RawSkills
}

// UnmarshalJSON decodes a JSON object field by field so that a wrong-typed
// value degrades to "absent" instead of failing the whole document.
func (r *RawJobData) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("decoding job data object: %w", err)
	}

	*r = RawJobData{
		Role:        scalarString(fields["role"]),
		Experience:  scalarString(fields["experience"]),
		Description: scalarString(fields["description"]),
		Skills:      decodeSkills(fields["skills"]),
	}
	return nil
}

// Parse decodes untrusted JSON into RawJobData. It returns (nil, nil) when the
// document is valid JSON but not object-like (null, a string, an empty array).
// A top-level array is reduced to its first element.
func Parse(data []byte) (*RawJobData, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	switch data[0] {
	case '{':
		var raw RawJobData
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		return &raw, nil
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("decoding job data array: %w", err)
		}
		if len(items) == 0 {
			return nil, nil
		}
		return Parse(items[0])
	default:
		if !json.Valid(data) {
			return nil, fmt.Errorf("job data is not valid JSON")
		}
		return nil, nil
	}
}

func scalarString(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

func decodeSkills(raw json.RawMessage) RawSkills {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return RawSkills{Kind: SkillsAbsent}
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return SkillsText(s)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err == nil {
		list := make([]string, 0, len(items))
		for _, item := range items {
			if v := scalarString(item); v != "" {
				list = append(list, v)
			}
		}
		return RawSkills{Kind: SkillsArray, List: list}
	}

	return RawSkills{Kind: SkillsOther}
}

// splitSkills splits a comma-joined skills string, trimming and dropping
// empty pieces.
func splitSkills(s string) []string {
	parts := strings.Split(s, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			skills = append(skills, p)
		}
	}
	return skills
}
