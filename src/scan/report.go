package scan

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"time"
)

// WriteReport saves a plain-text report: the rendered verdict followed by the
// service's raw final response, pretty-printed when it is valid JSON.
func WriteReport(path string, o *Outcome) error {
	var b strings.Builder
	b.WriteString(rule + "\n")
	b.WriteString("Deepfake Detection Report\n")
	b.WriteString(rule + "\n")
	b.WriteString("Generated: " + time.Now().Format("2006-01-02 15:04:05") + "\n\n")
	b.WriteString(Render(o))

	if len(o.Result.Raw) > 0 {
		b.WriteString("\nRaw response:\n")
		var pretty bytes.Buffer
		if err := json.Indent(&pretty, o.Result.Raw, "", "  "); err == nil {
			b.Write(pretty.Bytes())
		} else {
			b.Write(o.Result.Raw)
		}
		b.WriteString("\n")
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}
