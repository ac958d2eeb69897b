package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/veritylab/dfscan/src/config"
	"github.com/veritylab/dfscan/src/detector/core"
	_ "github.com/veritylab/dfscan/src/detector/providers"
	"github.com/veritylab/dfscan/src/logging"
	"github.com/veritylab/dfscan/src/reports"
	"github.com/veritylab/dfscan/src/scan"
)

var (
	fileFlag        = flag.String("file", "", "Image or audio file to scan (omit for interactive mode)")
	jsonFlag        = flag.Bool("json", false, "Print the result as JSON instead of the text block")
	exportFlag      = flag.String("export", "", "Write a report to this path (.pdf for PDF, else plain text; a directory gets dfscan_<id>.pdf)")
	providerFlag    = flag.String("provider", "", "Detection provider (default realitydefender)")
	baseURLFlag     = flag.String("base-url", "", "Override the provider API base URL")
	timeoutFlag     = flag.Duration("timeout", 0, "Per-request HTTP timeout (default 15s)")
	pollFlag        = flag.Duration("poll-interval", 0, "Delay between result polls (default 3s)")
	pollTimeoutFlag = flag.Duration("poll-timeout", 0, "How long to wait for a verdict (default 5m)")
	logLevelFlag    = flag.String("log-level", "", "Log level: debug, info, warn, error")
	logFileFlag     = flag.String("log-file", "", "Log file path, or 'auto' for a timestamped one")
	yesFlag         = flag.Bool("yes", false, "Skip the large-file confirmation prompt")
)

const (
	exitOK         = 0
	exitScanFailed = 1
	exitUsage      = 2
)

// stdin is shared by the prompt loop and the large-upload confirmation. Two
// buffered readers on one pipe would each read ahead and steal the other's
// lines.
var stdin = bufio.NewReader(os.Stdin)

// readLine returns the next line without its terminator. ok is false once
// nothing more can be read.
func readLine() (string, bool) {
	line, err := stdin.ReadString('\n')
	line = strings.TrimRight(line, "\r\n")
	if err != nil && line == "" {
		return "", false
	}
	return line, true
}

func main() {
	flag.Parse()
	os.Exit(run())
}

func run() int {
	cfg := config.Load()

	cleanup, err := logging.Setup(pickFirst(*logLevelFlag, cfg.LogLevel), pickFirst(*logFileFlag, cfg.LogFile))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitUsage
	}
	defer cleanup()

	client, err := core.NewClient(core.FactoryConfig{
		Provider:       pickFirst(*providerFlag, cfg.Provider),
		APIKey:         cfg.APIKey,
		BaseURL:        pickFirst(*baseURLFlag, cfg.BaseURL),
		RequestTimeout: pickDuration(*timeoutFlag, cfg.RequestTimeout),
		UploadAttempts: cfg.UploadAttempts,
		PollInterval:   pickDuration(*pollFlag, cfg.PollInterval),
		PollTimeout:    pickDuration(*pollTimeoutFlag, cfg.PollTimeout),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Scan failed ✗ %s\n", describe(err))
		if core.IsAuth(err) {
			return exitScanFailed
		}
		return exitUsage
	}

	var opts []scan.Option
	if !*yesFlag {
		opts = append(opts, scan.WithLargeFileConfirm(confirmLargeUpload))
	}
	orch := scan.New(client, opts...)

	path := pickFirst(*fileFlag, flag.Arg(0))
	if path == "" {
		return runInteractive(orch)
	}
	return runOnce(orch, path)
}

// runOnce scans one file and reports. The poll deadline inside the client
// bounds the wait, so no extra context timeout is layered on top.
func runOnce(orch *scan.Orchestrator, path string) int {
	out, err := orch.Scan(context.Background(), path)
	if err != nil {
		return reportFailure(err)
	}
	return reportSuccess(out)
}

func runInteractive(orch *scan.Orchestrator) int {
	fmt.Println("Deepfake scanner - interactive mode")
	fmt.Println("Enter a file path to scan, or 'quit' to exit.")
	for {
		fmt.Print("> ")
		line, ok := readLine()
		if !ok {
			fmt.Println()
			return exitOK
		}
		line = strings.TrimSpace(line)
		switch strings.ToLower(line) {
		case "":
			continue
		case "quit", "exit", "q":
			return exitOK
		}
		runOnce(orch, line)
	}
}

func reportSuccess(out *scan.Outcome) int {
	if *jsonFlag {
		text, err := scan.RenderJSON(out)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Scan failed ✗ %v\n", err)
			return exitScanFailed
		}
		fmt.Println(text)
	} else {
		fmt.Printf("Analysis complete ✓ (%.1fs)\n", out.Elapsed.Seconds())
		fmt.Print(scan.Render(out))
	}

	if *exportFlag != "" {
		written, err := exportReport(*exportFlag, out)
		if err != nil {
			// The verdict already landed; a failed local write is a
			// usage problem, not a scan failure.
			fmt.Fprintf(os.Stderr, "report export failed: %v\n", err)
			return exitUsage
		}
		fmt.Printf("Report written to %s\n", written)
	}
	return exitOK
}

// exportReport picks the format from the extension: .pdf gets the rendered
// PDF, everything else the plain-text report. A directory target gets a PDF
// named after the submission id. Returns the path actually written.
func exportReport(path string, out *scan.Outcome) (string, error) {
	if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		path = filepath.Join(path, fmt.Sprintf("dfscan_%s.pdf", out.Submission.ID))
	}
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return path, reports.WritePDF(path, out)
	}
	return path, scan.WriteReport(path, out)
}

func reportFailure(err error) int {
	switch {
	case errors.Is(err, scan.ErrAborted):
		fmt.Println("Scan cancelled.")
		return exitOK
	case core.IsAuth(err), core.IsTransport(err), core.IsService(err):
		fmt.Fprintf(os.Stderr, "Scan failed ✗ %s\n", describe(err))
		return exitScanFailed
	}

	// Everything else is local: unsupported type, missing file, directory.
	fmt.Fprintf(os.Stderr, "Scan failed ✗ %v\n", err)
	return exitUsage
}

// describe adds a hint for the error classes a user can act on.
func describe(err error) string {
	switch {
	case logging.IsRateLimit(err):
		return fmt.Sprintf("%v (the service is throttling; try again shortly)", err)
	case core.IsAuth(err):
		return fmt.Sprintf("%v (set RD_API_KEY to a valid key)", err)
	case core.IsTransport(err):
		return fmt.Sprintf("%v (network problem or the service did not answer in time)", err)
	}
	return err.Error()
}

func confirmLargeUpload(sub scan.Submission) bool {
	fmt.Printf("%s is %s. Upload anyway? [y/N]: ", filepath.Base(sub.Path), sub.HumanSize())
	line, ok := readLine()
	if !ok {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func pickFirst(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func pickDuration(values ...time.Duration) time.Duration {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}
