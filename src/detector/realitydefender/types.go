package realitydefender

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/veritylab/dfscan/src/detector/core"
	"github.com/veritylab/dfscan/src/mediakind"
)

type presignRequest struct {
	FileName string `json:"fileName"`
}

// presignResponse is the answer to the upload-slot request. Deployments have
// shipped both camelCase and snake_case ids, and the signed URL either nested
// under response or at the top level, so all shapes are accepted.
type presignResponse struct {
	RequestID    string `json:"requestId"`
	AltRequestID string `json:"request_id"`
	MediaID      string `json:"mediaId"`
	SignedURL    string `json:"signedUrl"`
	Response     struct {
		SignedURL string `json:"signedUrl"`
	} `json:"response"`
}

func (p *presignResponse) requestID() string {
	if p.RequestID != "" {
		return p.RequestID
	}
	return p.AltRequestID
}

func (p *presignResponse) signedURL() string {
	if p.Response.SignedURL != "" {
		return p.Response.SignedURL
	}
	return p.SignedURL
}

// mediaDetail is one poll response. The service answers either the full media
// record (resultsSummary plus per-model entries) or an already flattened
// verdict; flattened fields win when both are present.
type mediaDetail struct {
	Status     string          `json:"status"`
	Confidence *float64        `json:"confidence"`
	MediaType  string          `json:"media_type"`
	Analysis   json.RawMessage `json:"analysis"`
	RequestID  string          `json:"request_id"`
	Error      json.RawMessage `json:"error"`

	ResultsSummary *resultsSummary `json:"resultsSummary"`
	Models         json.RawMessage `json:"models"`

	raw []byte
}

type resultsSummary struct {
	Status   string `json:"status"`
	Metadata struct {
		FinalScore *float64 `json:"finalScore"`
	} `json:"metadata"`
}

func (d *mediaDetail) status() core.Status {
	if d.Status != "" {
		return core.ParseStatus(d.Status)
	}
	if d.ResultsSummary != nil {
		return core.ParseStatus(d.ResultsSummary.Status)
	}
	return ""
}

// confidence maps the summary's 0-100 finalScore onto 0-1. A flattened
// confidence field is already on that scale and passes through. Nil means the
// service did not score this submission.
func (d *mediaDetail) confidence() *float64 {
	if d.Confidence != nil {
		return d.Confidence
	}
	if d.ResultsSummary != nil && d.ResultsSummary.Metadata.FinalScore != nil {
		v := *d.ResultsSummary.Metadata.FinalScore / 100
		return &v
	}
	return nil
}

func (d *mediaDetail) failed() bool {
	return jsonPresent(d.Error)
}

// toResult builds the provider-agnostic verdict. kind and requestID are the
// locally known values; the service's own fields override them when present.
func (d *mediaDetail) toResult(kind mediakind.Kind, requestID string) *core.Result {
	res := &core.Result{
		Status:     d.status(),
		Confidence: d.confidence(),
		MediaType:  kind,
		RequestID:  requestID,
		Raw:        d.raw,
	}
	if d.MediaType != "" {
		res.MediaType = mediakind.Kind(strings.ToLower(d.MediaType))
	}
	if d.RequestID != "" {
		res.RequestID = d.RequestID
	}
	if jsonPresent(d.Analysis) {
		res.Analysis = d.Analysis
	} else if jsonPresent(d.Models) {
		res.Analysis = d.Models
	}
	return res
}

func jsonPresent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}
