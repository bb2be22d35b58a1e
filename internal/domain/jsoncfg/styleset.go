// Package jsoncfg parses JSON configuration documents that operators supply
// at deploy time.
package jsoncfg

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// StyleDef is one custom style a deployment adds on top of the built-in set.
type StyleDef struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Prompt string `json:"prompt"`
}

// StyleSet is the schema of a custom styles file.
type StyleSet struct {
	Version string     `json:"version"`
	Styles  []StyleDef `json:"styles"`
}

const (
	// DefaultStyleSetVersion represents the schema version assumed when the
	// file omits one.
	DefaultStyleSetVersion = "2026-01"
	// MinPromptLength rejects prompts too short to steer the model.
	MinPromptLength = 20
)

var styleIDPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// ParseStyleSet decodes and validates a custom styles document.
func ParseStyleSet(raw []byte) (*StyleSet, error) {
	var set StyleSet
	dec := json.NewDecoder(strings.NewReader(string(raw)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&set); err != nil {
		return nil, fmt.Errorf("parse style set: %w", err)
	}
	set.Normalize()
	if err := set.Validate(); err != nil {
		return nil, err
	}
	return &set, nil
}

// Normalize trims fields and fills schema defaults.
func (s *StyleSet) Normalize() {
	if s == nil {
		return
	}
	if s.Version == "" {
		s.Version = DefaultStyleSetVersion
	}
	for i := range s.Styles {
		s.Styles[i].ID = strings.TrimSpace(strings.ToLower(s.Styles[i].ID))
		s.Styles[i].Name = strings.TrimSpace(s.Styles[i].Name)
		s.Styles[i].Prompt = strings.TrimSpace(s.Styles[i].Prompt)
	}
}

// Validate ensures every style definition is usable before registration.
func (s StyleSet) Validate() error {
	if len(s.Styles) == 0 {
		return fmt.Errorf("styles must not be empty")
	}
	seen := make(map[string]struct{}, len(s.Styles))
	for _, def := range s.Styles {
		if def.ID == "" {
			return fmt.Errorf("style id is required")
		}
		if !styleIDPattern.MatchString(def.ID) {
			return fmt.Errorf("style id %q must be lowercase words separated by hyphens", def.ID)
		}
		if _, dup := seen[def.ID]; dup {
			return fmt.Errorf("style id %q is defined twice", def.ID)
		}
		seen[def.ID] = struct{}{}
		if len(def.Prompt) < MinPromptLength {
			return fmt.Errorf("style %q: prompt must be at least %d characters", def.ID, MinPromptLength)
		}
	}
	return nil
}
