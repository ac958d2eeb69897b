package main

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/veritylab/dfscan/src/detector/core"
	"github.com/veritylab/dfscan/src/mediakind"
	"github.com/veritylab/dfscan/src/scan"
)

func sampleOutcome() *scan.Outcome {
	conf := 0.94
	return &scan.Outcome{
		Submission: scan.Submission{
			ID:   uuid.New(),
			Path: "face.jpg",
			Kind: mediakind.Image,
			Size: 5,
		},
		Result: &core.Result{
			Status:     core.StatusFake,
			Confidence: &conf,
			MediaType:  mediakind.Image,
			RequestID:  "req-123",
			Raw:        json.RawMessage(`{"resultsSummary":{"status":"FAKE"}}`),
		},
		Elapsed: 4100 * time.Millisecond,
	}
}

func pipeStdin(t *testing.T, input string) {
	t.Helper()
	old := stdin
	stdin = bufio.NewReader(strings.NewReader(input))
	t.Cleanup(func() { stdin = old })
}

func TestConfirmSharesInteractiveReader(t *testing.T) {
	pipeStdin(t, "big.wav\ny\nquit\n")

	line, ok := readLine()
	if !ok || line != "big.wav" {
		t.Fatalf("first prompt line = %q, %v", line, ok)
	}
	if !confirmLargeUpload(scan.Submission{Path: "big.wav", Size: 251 << 20}) {
		t.Fatal("a piped y must reach the confirmation prompt")
	}
	line, ok = readLine()
	if !ok || line != "quit" {
		t.Fatalf("line after confirmation = %q, want quit still in the pipe", line)
	}
}

func TestReadLineEOF(t *testing.T) {
	pipeStdin(t, "last-line-no-newline")

	line, ok := readLine()
	if !ok || line != "last-line-no-newline" {
		t.Fatalf("unterminated final line = %q, %v", line, ok)
	}
	if line, ok = readLine(); ok {
		t.Fatalf("read past EOF returned %q", line)
	}
}

func TestConfirmDefaultsToNo(t *testing.T) {
	for _, input := range []string{"n\n", "\n", "nope\n", ""} {
		pipeStdin(t, input)
		if confirmLargeUpload(scan.Submission{Path: "big.wav", Size: 251 << 20}) {
			t.Errorf("input %q should decline the upload", input)
		}
	}
}

func TestExportReportDirectoryUsesSubmissionID(t *testing.T) {
	out := sampleOutcome()
	dir := t.TempDir()

	written, err := exportReport(dir, out)
	if err != nil {
		t.Fatalf("exportReport: %v", err)
	}
	want := filepath.Join(dir, "dfscan_"+out.Submission.ID.String()+".pdf")
	if written != want {
		t.Fatalf("written to %q, want %q", written, want)
	}
	data, err := os.ReadFile(written)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "%PDF") {
		t.Error("a directory target should produce a PDF report")
	}
}

func TestExportReportExplicitPathKept(t *testing.T) {
	out := sampleOutcome()
	path := filepath.Join(t.TempDir(), "verdict.txt")

	written, err := exportReport(path, out)
	if err != nil {
		t.Fatalf("exportReport: %v", err)
	}
	if written != path {
		t.Fatalf("written to %q, want the path given", written)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "Deepfake Detection Report") {
		t.Error("non-pdf extension should produce the plain-text report")
	}
}

func TestReportSuccessExportFailureExitsUsage(t *testing.T) {
	old := *exportFlag
	*exportFlag = filepath.Join(t.TempDir(), "no-such-dir", "report.txt")
	defer func() { *exportFlag = old }()

	if got := reportSuccess(sampleOutcome()); got != exitUsage {
		t.Errorf("exit = %d, want %d: a failed local write is not a scan failure", got, exitUsage)
	}
}
