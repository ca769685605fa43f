// Package portfolio holds the read-only skill → link index and the matcher
// that picks portfolio evidence for a job's skill list.
package portfolio

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/yourusername/outreach-api/internal/model"
)

//go:embed data/portfolio.json
var embeddedDataset []byte

// datasetRecord is one row of the portfolio file. A row's Techstack is a
// single tag, usually several technologies joined by commas.
type datasetRecord struct {
	Techstack string `json:"Techstack" yaml:"techstack"`
	Links     string `json:"Links" yaml:"links"`
}

// Index is an ordered, immutable set of portfolio entries. It is built once at
// startup and safe for concurrent reads.
type Index struct {
	entries []model.PortfolioEntry
}

// NewIndex copies entries and lowercases their tags. Entries without a tag or
// link are skipped.
func NewIndex(entries []model.PortfolioEntry) *Index {
	idx := &Index{entries: make([]model.PortfolioEntry, 0, len(entries))}
	for _, e := range entries {
		tag := strings.ToLower(strings.TrimSpace(e.SkillTag))
		link := strings.TrimSpace(e.Link)
		if tag == "" || link == "" {
			continue
		}
		idx.entries = append(idx.entries, model.PortfolioEntry{SkillTag: tag, Link: link})
	}
	return idx
}

// Load builds the index from path, or from the embedded dataset when path is
// empty. A read or parse failure is logged and yields an empty index; links
// are an enrichment, not a reason to refuse to start.
func Load(path string) *Index {
	entries, err := LoadEntries(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("Failed to load portfolio dataset, continuing with no portfolio links")
		return NewIndex(nil)
	}

	idx := NewIndex(entries)
	log.Info().Int("entries", idx.Len()).Str("path", path).Msg("Portfolio index loaded")
	return idx
}

// LoadEntries reads a JSON or YAML dataset. An empty path reads the
// embedded dataset.
func LoadEntries(path string) ([]model.PortfolioEntry, error) {
	data := embeddedDataset
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading portfolio file: %w", err)
		}
		data = b
	}

	var records []datasetRecord
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("parsing portfolio yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("parsing portfolio json: %w", err)
		}
	}

	entries := make([]model.PortfolioEntry, 0, len(records))
	for _, r := range records {
		entries = append(entries, model.PortfolioEntry{SkillTag: r.Techstack, Link: r.Links})
	}
	return entries, nil
}

// Lookup returns, in dataset order, the link of every entry whose tag contains
// skillTagLower or is contained in it. Matching is case-insensitive. A blank
// skill matches nothing.
func (idx *Index) Lookup(skillTagLower string) []string {
	skill := strings.ToLower(strings.TrimSpace(skillTagLower))
	if skill == "" {
		return nil
	}

	var links []string
	for _, e := range idx.entries {
		if strings.Contains(e.SkillTag, skill) || strings.Contains(skill, e.SkillTag) {
			links = append(links, e.Link)
		}
	}
	return links
}

// Len reports the number of entries
func (idx *Index) Len() int {
	return len(idx.entries)
}

// Entries returns a copy of the entries in dataset order
func (idx *Index) Entries() []model.PortfolioEntry {
	return append([]model.PortfolioEntry(nil), idx.entries...)
}
