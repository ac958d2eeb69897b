package scan

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/veritylab/dfscan/src/detector/core"
	"github.com/veritylab/dfscan/src/mediakind"
)

// LargeFileBytes is the size above which the orchestrator asks for
// confirmation before uploading.
const LargeFileBytes int64 = 250 << 20

// ErrAborted means the user declined a large upload. Not a failure.
var ErrAborted = errors.New("scan aborted by user")

// Submission is one validated media file ready to go to the service.
type Submission struct {
	ID   uuid.UUID
	Path string
	Kind mediakind.Kind
	Size int64
}

// HumanSize renders the file size for prompts and logs.
func (s Submission) HumanSize() string {
	return formatBytes(s.Size)
}

// Outcome pairs a submission with its verdict.
type Outcome struct {
	Submission Submission
	Result     *core.Result
	Elapsed    time.Duration
}

// Orchestrator validates files and drives one submission at a time through a
// detection client. It holds no state between scans and never re-submits.
type Orchestrator struct {
	client    core.Client
	confirm   func(Submission) bool
	sizeLimit int64
}

type Option func(*Orchestrator)

// WithLargeFileConfirm installs the callback consulted before uploading a
// file over the size limit. Without one, large files proceed silently.
func WithLargeFileConfirm(f func(Submission) bool) Option {
	return func(o *Orchestrator) { o.confirm = f }
}

// WithLargeFileLimit overrides the confirmation threshold.
func WithLargeFileLimit(n int64) Option {
	return func(o *Orchestrator) { o.sizeLimit = n }
}

func New(client core.Client, opts ...Option) *Orchestrator {
	o := &Orchestrator{client: client, sizeLimit: LargeFileBytes}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Prepare validates a path into a Submission. The extension decides
// everything: an unsupported one fails before the filesystem is touched, and
// file contents are never inspected.
func (o *Orchestrator) Prepare(path string) (Submission, error) {
	kind, err := mediakind.FromPath(path)
	if err != nil {
		return Submission{}, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return Submission{}, fmt.Errorf("scan: %w", err)
	}
	if info.IsDir() {
		return Submission{}, fmt.Errorf("scan: %s is a directory", path)
	}

	return Submission{
		ID:   uuid.New(),
		Path: path,
		Kind: kind,
		Size: info.Size(),
	}, nil
}

// Scan runs one file through validation, upload and analysis. The submission
// goes to the service exactly once; transient transport retries live below
// the client, never here.
func (o *Orchestrator) Scan(ctx context.Context, path string) (*Outcome, error) {
	sub, err := o.Prepare(path)
	if err != nil {
		return nil, err
	}

	if sub.Size > o.sizeLimit && o.confirm != nil {
		if !o.confirm(sub) {
			log.Warnf("[Scan] %s: upload of %s declined (%s)", sub.ID, filepath.Base(sub.Path), formatBytes(sub.Size))
			return nil, ErrAborted
		}
	}

	log.Infof("[Scan] %s: analyzing %s (%s, %s)", sub.ID, filepath.Base(sub.Path), sub.Kind, formatBytes(sub.Size))
	start := time.Now()
	res, err := o.client.Analyze(ctx, sub.Path, sub.Kind)
	if err != nil {
		return nil, err
	}
	elapsed := time.Since(start)
	log.Infof("[Scan] %s: verdict %s in %s", sub.ID, res.Status, elapsed.Round(time.Millisecond))

	return &Outcome{Submission: sub, Result: res, Elapsed: elapsed}, nil
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}
