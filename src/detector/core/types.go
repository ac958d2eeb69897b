package core

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/veritylab/dfscan/src/mediakind"
)

// Status is a verdict label from the detection service, normalized to lower
// case. Unknown labels pass through unchanged so a new vendor state never
// breaks a scan.
type Status string

const (
	StatusAuthentic        Status = "authentic"
	StatusFake             Status = "fake"
	StatusSuspicious       Status = "suspicious"
	StatusNotApplicable    Status = "not_applicable"
	StatusUnableToEvaluate Status = "unable_to_evaluate"
)

// ParseStatus normalizes a raw vendor label.
func ParseStatus(raw string) Status {
	return Status(strings.ToLower(strings.TrimSpace(raw)))
}

// Terminal reports whether the label ends an analysis. The service keeps
// answering queued/processing style labels until one of these shows up.
func (s Status) Terminal() bool {
	switch s {
	case StatusAuthentic, StatusFake, StatusSuspicious, StatusNotApplicable, StatusUnableToEvaluate:
		return true
	}
	return false
}

// Result is one classification verdict for one submission. Confidence is only
// meaningful when Status is set. Analysis is whatever detail object the vendor
// supplied, kept verbatim; optional fields stay nil when the response omits
// them rather than being filled with defaults.
type Result struct {
	Status     Status          `json:"status,omitempty"`
	Confidence *float64        `json:"confidence,omitempty"`
	MediaType  mediakind.Kind  `json:"media_type,omitempty"`
	Analysis   json.RawMessage `json:"analysis,omitempty"`
	RequestID  string          `json:"request_id,omitempty"`

	// Raw is the vendor's final response body, untouched. Used for report
	// export and debugging, never for rendering decisions.
	Raw json.RawMessage `json:"-"`
}

// Client is the capability a detection provider exposes: one submission in,
// one verdict or error out. Implementations block until the service answers
// or ctx expires; they never retry a completed submission.
type Client interface {
	Analyze(ctx context.Context, path string, kind mediakind.Kind) (*Result, error)
}
