package reports

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/jung-kurt/gofpdf/v2"

	"github.com/veritylab/dfscan/src/detector/core"
	"github.com/veritylab/dfscan/src/scan"
)

// WritePDF renders a scan outcome as a PDF report: verdict banner, detail
// table and the service's raw response.
func WritePDF(path string, o *scan.Outcome) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 20, 15)
	pdf.SetAutoPageBreak(true, 20)
	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Arial", "B", 16)
		pdf.SetTextColor(59, 130, 246)
		pdf.CellFormat(0, 10, "Deepfake Detection Report", "", 0, "C", false, 0, "")
		pdf.Ln(12)
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 10, fmt.Sprintf("Generated %s - Page %d", time.Now().Format("2006-01-02 15:04"), pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	addVerdictBox(pdf, o.Result)
	addDetailTable(pdf, o)
	addRawSection(pdf, o.Result)

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("save PDF: %w", err)
	}
	return nil
}

// verdictColors picks the banner palette for a status.
func verdictColors(s core.Status) (fill, accent [3]int) {
	switch s {
	case core.StatusAuthentic:
		return [3]int{220, 255, 220}, [3]int{0, 150, 0}
	case core.StatusFake:
		return [3]int{255, 220, 220}, [3]int{200, 0, 0}
	case core.StatusSuspicious:
		return [3]int{255, 255, 220}, [3]int{200, 150, 0}
	}
	return [3]int{240, 240, 240}, [3]int{128, 128, 128}
}

func addVerdictBox(pdf *gofpdf.Fpdf, res *core.Result) {
	fill, accent := verdictColors(res.Status)
	x, y, w, h := 15.0, pdf.GetY(), 180.0, 16.0

	pdf.SetFillColor(fill[0], fill[1], fill[2])
	pdf.Rect(x, y, w, h, "F")
	pdf.SetDrawColor(accent[0], accent[1], accent[2])
	pdf.SetLineWidth(0.5)
	pdf.Rect(x, y, w, h, "D")

	pdf.SetTextColor(accent[0], accent[1], accent[2])
	pdf.SetFont("Arial", "B", 12)
	pdf.SetXY(x+4, y+4)
	pdf.CellFormat(w-8, 8, sanitizeText(scan.Verdict(res)), "", 0, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(x, y+h+6)
}

func addDetailTable(pdf *gofpdf.Fpdf, o *scan.Outcome) {
	rows := [][2]string{
		{"File", filepath.Base(o.Submission.Path)},
		{"Size", o.Submission.HumanSize()},
	}
	if o.Result.MediaType != "" {
		rows = append(rows, [2]string{"Media type", string(o.Result.MediaType)})
	}
	if o.Result.Status != "" {
		rows = append(rows, [2]string{"Status", string(o.Result.Status)})
	}
	if o.Result.Confidence != nil {
		rows = append(rows, [2]string{"Confidence", fmt.Sprintf("%.2f", *o.Result.Confidence)})
	}
	if o.Result.RequestID != "" {
		rows = append(rows, [2]string{"Request ID", o.Result.RequestID})
	}
	rows = append(rows, [2]string{"Elapsed", o.Elapsed.Round(100 * time.Millisecond).String()})

	for _, row := range rows {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(40, 7, row[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, 7, sanitizeText(row[1]), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
}

func addRawSection(pdf *gofpdf.Fpdf, res *core.Result) {
	if len(res.Raw) == 0 {
		return
	}
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(0, 8, "Raw response", "", 1, "L", false, 0, "")

	body := res.Raw
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, res.Raw, "", "  "); err == nil {
		body = pretty.Bytes()
	}
	pdf.SetFont("Courier", "", 8)
	pdf.MultiCell(0, 4, sanitizeText(string(body)), "", "L", false)
}

// sanitizeText maps text onto what the core PDF fonts can encode. Verdict
// glyphs get ASCII stand-ins; other non-Latin characters degrade to "?".
func sanitizeText(text string) string {
	if text == "" {
		return text
	}

	var result strings.Builder
	result.Grow(len(text))
	for _, r := range text {
		switch r {
		case '✓': // check mark
			result.WriteString("+")
		case '✗': // ballot x
			result.WriteString("x")
		case '⚠': // warning sign
			result.WriteString("!")
		case '○': // circle
			result.WriteString("o")
		case '–': // en dash
			result.WriteString("-")
		case '—': // em dash
			result.WriteString("--")
		case '‘', '’': // single quotation marks
			result.WriteString("'")
		case '“', '”': // double quotation marks
			result.WriteString("\"")
		case '…': // horizontal ellipsis
			result.WriteString("...")
		case ' ': // non-breaking space
			result.WriteString(" ")
		default:
			if r < 128 {
				result.WriteRune(r)
			} else if unicode.IsSpace(r) {
				result.WriteString(" ")
			} else {
				result.WriteString("?")
			}
		}
	}
	return result.String()
}
