/*
Package factory provides JSON to Go policy conversion.

PURPOSE:
  Converts JSON policy documents into policy.BreakPolicy values. This
  enables threshold changes without code changes - HR can adjust break
  rules in a JSON file, and the factory creates the proper Go struct.

WHY JSON?
  - Non-developers can adjust thresholds
  - Version control for policy documents
  - The same document drives the CLI and the server

JSON SCHEMA (all durations in minutes):
  {
    "name": "california-single-break",
    "required_shift_minutes": 300,
    "waiver_max_shift_minutes": 360,
    "latest_start_minutes": 299,
    "latest_start_with_waiver_minutes": 359,
    "break_minutes": 30
  }

DEFAULTS:
  Omitted fields fall back to the built-in California policy, so a
  document can override a single threshold without restating the rest.

USAGE:
  factory := NewPolicyFactory()
  p, err := factory.ParsePolicy(jsonString)
  // or from disk:
  p, err := factory.LoadPolicy("/etc/breakcheck/policy.json")

SEE ALSO:
  - policy/policy.go: BreakPolicy and Classify
*/
package factory

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/goldenvalley/breakcheck/policy"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// PolicyJSON is the JSON representation of a break policy. Pointer
// fields distinguish "omitted" from an explicit zero.
type PolicyJSON struct {
	Name                         string `json:"name"`
	RequiredShiftMinutes         *int   `json:"required_shift_minutes,omitempty"`
	WaiverMaxShiftMinutes        *int   `json:"waiver_max_shift_minutes,omitempty"`
	LatestStartMinutes           *int   `json:"latest_start_minutes,omitempty"`
	LatestStartWithWaiverMinutes *int   `json:"latest_start_with_waiver_minutes,omitempty"`
	BreakMinutes                 *int   `json:"break_minutes,omitempty"`
}

// PolicyFactory creates BreakPolicy values from JSON documents.
type PolicyFactory struct{}

// NewPolicyFactory creates a new policy factory.
func NewPolicyFactory() *PolicyFactory {
	return &PolicyFactory{}
}

// =============================================================================
// PARSING
// =============================================================================

// ParsePolicy converts a JSON document into a validated BreakPolicy.
// Omitted fields keep the built-in California defaults.
func (f *PolicyFactory) ParsePolicy(jsonStr string) (policy.BreakPolicy, error) {
	var doc PolicyJSON
	if err := json.Unmarshal([]byte(jsonStr), &doc); err != nil {
		return policy.BreakPolicy{}, fmt.Errorf("invalid policy JSON: %w", err)
	}

	p := policy.California()
	applyMinutes(&p.RequiredDuration, doc.RequiredShiftMinutes)
	applyMinutes(&p.WaiverMaxShift, doc.WaiverMaxShiftMinutes)
	applyMinutes(&p.NoWaiverLatestStartOffset, doc.LatestStartMinutes)
	applyMinutes(&p.WaiverLatestStartOffset, doc.LatestStartWithWaiverMinutes)
	applyMinutes(&p.BreakDuration, doc.BreakMinutes)

	if err := p.Validate(); err != nil {
		return policy.BreakPolicy{}, err
	}
	return p, nil
}

// LoadPolicy reads and parses a policy document from disk.
func (f *PolicyFactory) LoadPolicy(path string) (policy.BreakPolicy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return policy.BreakPolicy{}, fmt.Errorf("read policy file: %w", err)
	}
	return f.ParsePolicy(string(data))
}

func applyMinutes(dst *time.Duration, minutes *int) {
	if minutes != nil {
		*dst = time.Duration(*minutes) * time.Minute
	}
}
