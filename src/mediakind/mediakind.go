package mediakind

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// Kind classifies a submission by media family. The detection service runs
// different model ensembles per family, so the kind is decided locally before
// anything is uploaded.
type Kind string

const (
	Image Kind = "image"
	Audio Kind = "audio"
)

// Extension allow-list for the service tier in use. Video formats are not
// accepted on this tier.
var kindByExt = map[string]Kind{
	".jpg":  Image,
	".jpeg": Image,
	".png":  Image,
	".wav":  Audio,
	".mp3":  Audio,
}

// UnsupportedError reports a path whose extension maps to no supported media
// kind.
type UnsupportedError struct {
	Path string
	Ext  string
}

func (e *UnsupportedError) Error() string {
	if e.Ext == "" {
		return fmt.Sprintf("unsupported media kind: %q has no file extension (supported: %s)", e.Path, supportedList())
	}
	return fmt.Sprintf("unsupported media kind %q (supported: %s)", e.Ext, supportedList())
}

// FromPath infers the media kind from the file extension alone; file contents
// are never inspected. The match is case-insensitive.
func FromPath(path string) (Kind, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if kind, ok := kindByExt[ext]; ok {
		return kind, nil
	}
	return "", &UnsupportedError{Path: path, Ext: ext}
}

// IsUnsupported reports whether err is an UnsupportedError.
func IsUnsupported(err error) bool {
	var ue *UnsupportedError
	return errors.As(err, &ue)
}

func supportedList() string {
	exts := make([]string, 0, len(kindByExt))
	for ext := range kindByExt {
		exts = append(exts, strings.TrimPrefix(ext, "."))
	}
	sort.Strings(exts)
	return strings.Join(exts, ", ")
}
