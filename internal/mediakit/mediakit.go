// Package mediakit renders the media-kit PDF attached to lead notification
// emails. The document is generated on demand and never persisted.
package mediakit

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
)

// Rate is one ad format offered at the station.
type Rate struct {
	Product      string
	Format       string
	RateCents    int64
	Unit         string
	DurationDays int64
}

// Document holds everything the PDF shows.
type Document struct {
	BrandName     string
	StationName   string
	Address       string
	City          string
	Description   string
	DailyFootfall int64
	Lines         []string
	Audiences     []string
	Rates         []Rate
}

// Render produces the PDF as bytes.
func Render(doc *Document) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(doc.StationName+" Media Kit", false)
	pdf.AddPage()

	brand := doc.BrandName
	if brand == "" {
		brand = "BrandMetro"
	}
	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, brand, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 7, "Metro Station Advertising Media Kit", "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 15)
	pdf.CellFormat(0, 9, doc.StationName, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	if loc := location(doc); loc != "" {
		pdf.CellFormat(0, 6, loc, "", 1, "L", false, 0, "")
	}
	if len(doc.Lines) > 0 {
		pdf.CellFormat(0, 6, "Lines: "+strings.Join(doc.Lines, ", "), "", 1, "L", false, 0, "")
	}
	if doc.DailyFootfall > 0 {
		pdf.CellFormat(0, 6, fmt.Sprintf("Daily footfall: %d", doc.DailyFootfall), "", 1, "L", false, 0, "")
	}
	if len(doc.Audiences) > 0 {
		pdf.CellFormat(0, 6, "Audience: "+strings.Join(doc.Audiences, ", "), "", 1, "L", false, 0, "")
	}
	if doc.Description != "" {
		pdf.Ln(2)
		pdf.MultiCell(0, 5, doc.Description, "", "L", false)
	}
	pdf.Ln(4)

	if len(doc.Rates) > 0 {
		writeRateTable(pdf, doc.Rates)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("mediakit: render: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRateTable(pdf *fpdf.Fpdf, rates []Rate) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Rate Card", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(60, 7, "Format", "1", 0, "L", true, 0, "")
	pdf.CellFormat(40, 7, "Unit", "1", 0, "L", true, 0, "")
	pdf.CellFormat(30, 7, "Duration", "1", 0, "L", true, 0, "")
	pdf.CellFormat(40, 7, "Rate (INR)", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, r := range rates {
		name := r.Product
		if r.Format != "" && r.Format != r.Product {
			name = r.Product + " (" + r.Format + ")"
		}
		pdf.CellFormat(60, 7, name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, r.Unit, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, fmt.Sprintf("%d days", r.DurationDays), "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, formatINR(r.RateCents), "1", 1, "R", false, 0, "")
	}
}

func location(doc *Document) string {
	parts := []string{}
	if doc.Address != "" {
		parts = append(parts, doc.Address)
	}
	if doc.City != "" {
		parts = append(parts, doc.City)
	}
	return strings.Join(parts, ", ")
}

// formatINR renders paise as a rupee amount, e.g. 1250000 -> "12,500.00".
func formatINR(cents int64) string {
	whole := cents / 100
	frac := cents % 100
	if frac < 0 {
		frac = -frac
	}
	return fmt.Sprintf("%s.%02d", group(whole), frac)
}

func group(n int64) string {
	s := fmt.Sprintf("%d", n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	if neg {
		s = "-" + s
	}
	return s
}
