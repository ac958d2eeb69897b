package scan

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/veritylab/dfscan/src/detector/core"
)

const rule = "============================================================"

// Verdict maps a result onto its one-line human reading. When the service
// sent no status at all, the confidence score decides, and failing that the
// outcome is reported as unclear rather than guessed.
func Verdict(res *core.Result) string {
	switch res.Status {
	case core.StatusAuthentic:
		return "✓ NOT AI GENERATED"
	case core.StatusFake:
		return "✗ AI GENERATED"
	case core.StatusSuspicious:
		return "⚠ AI GENERATED (Suspicious)"
	case core.StatusNotApplicable:
		return "○ NOT APPLICABLE (No evaluation criteria met)"
	case core.StatusUnableToEvaluate:
		return "? UNABLE TO EVALUATE (error during analysis)"
	}
	if res.Confidence != nil {
		if *res.Confidence >= 0.5 {
			return "✗ AI GENERATED"
		}
		return "✓ NOT AI GENERATED"
	}
	return "Analysis completed but unclear result."
}

// Render formats an outcome for terminal display. Fields the service omitted
// are left out instead of being filled with defaults.
func Render(o *Outcome) string {
	var b strings.Builder
	b.WriteString(rule + "\n")
	b.WriteString("Verdict: " + Verdict(o.Result) + "\n")
	b.WriteString(rule + "\n")
	writeField(&b, "File", filepath.Base(o.Submission.Path))
	if o.Result.MediaType != "" {
		writeField(&b, "Media type", string(o.Result.MediaType))
	}
	if o.Result.Status != "" {
		writeField(&b, "Status", string(o.Result.Status))
	}
	if o.Result.Confidence != nil {
		writeField(&b, "Confidence", fmt.Sprintf("%.2f", *o.Result.Confidence))
	}
	if o.Result.RequestID != "" {
		writeField(&b, "Request ID", o.Result.RequestID)
	}
	writeField(&b, "Elapsed", o.Elapsed.Round(100*time.Millisecond).String())
	b.WriteString(rule + "\n")
	return b.String()
}

func writeField(b *strings.Builder, name, value string) {
	fmt.Fprintf(b, "%-12s %s\n", name+":", value)
}

// RenderJSON emits the result as indented JSON, nothing else. Meant for
// piping into other tooling.
func RenderJSON(o *Outcome) (string, error) {
	out, err := json.MarshalIndent(o.Result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}
