package reports

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/veritylab/dfscan/src/detector/core"
	"github.com/veritylab/dfscan/src/mediakind"
	"github.com/veritylab/dfscan/src/scan"
)

func TestWritePDF(t *testing.T) {
	conf := 0.94
	out := &scan.Outcome{
		Submission: scan.Submission{Path: "/tmp/face.jpg", Kind: mediakind.Image, Size: 2048},
		Result: &core.Result{
			Status:     core.StatusFake,
			Confidence: &conf,
			MediaType:  mediakind.Image,
			RequestID:  "req-123",
			Raw:        json.RawMessage(`{"resultsSummary":{"status":"FAKE","metadata":{"finalScore":94}}}`),
		},
		Elapsed: 4 * time.Second,
	}

	path := filepath.Join(t.TempDir(), "report.pdf")
	if err := WritePDF(path, out); err != nil {
		t.Fatalf("WritePDF: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) < 500 {
		t.Errorf("PDF suspiciously small: %d bytes", len(data))
	}
	if !strings.HasPrefix(string(data), "%PDF") {
		t.Error("output is not a PDF")
	}
}

func TestSanitizeText(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"✓ NOT AI GENERATED", "+ NOT AI GENERATED"},
		{"✗ AI GENERATED", "x AI GENERATED"},
		{"⚠ AI GENERATED (Suspicious)", "! AI GENERATED (Suspicious)"},
		{"○ NOT APPLICABLE", "o NOT APPLICABLE"},
		{"plain ascii stays", "plain ascii stays"},
		{"smart “quotes”", `smart "quotes"`},
		{"漢字", "??"},
	}
	for _, tc := range cases {
		if got := sanitizeText(tc.in); got != tc.want {
			t.Errorf("sanitizeText(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
