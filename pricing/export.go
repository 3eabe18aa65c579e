package pricing

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/tealeg/xlsx"

	"github.com/Govind-619/PriceSphere/models"
)

// ExportFormat selects the encoder used for a pricing sheet download
type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatXLSX ExportFormat = "xlsx"
	FormatPDF  ExportFormat = "pdf"
)

// ParseExportFormat accepts a case-insensitive format name
func ParseExportFormat(s string) (ExportFormat, error) {
	f := ExportFormat(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := encoders[f]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
	return f, nil
}

// ExportedFile is an encoded pricing sheet ready to be downloaded or mailed
type ExportedFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

type sheetEncoder struct {
	contentType string
	encode      func(*models.PricingSheet) ([]byte, error)
}

var encoders = map[ExportFormat]sheetEncoder{
	FormatCSV:  {contentType: "text/csv", encode: encodeCSV},
	FormatXLSX: {contentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", encode: encodeXLSX},
	FormatPDF:  {contentType: "application/pdf", encode: encodePDF},
}

// ExportPricingSheet encodes a stored sheet. The filename is the sheet name
// with the format as extension.
func (e *Engine) ExportPricingSheet(id string, format ExportFormat) (ExportedFile, error) {
	sheet, err := e.GetPricingSheet(id)
	if err != nil {
		return ExportedFile{}, err
	}
	return EncodePricingSheet(&sheet, format)
}

// EncodePricingSheet renders sheet with the encoder registered for format
func EncodePricingSheet(sheet *models.PricingSheet, format ExportFormat) (ExportedFile, error) {
	enc, ok := encoders[format]
	if !ok {
		return ExportedFile{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	data, err := enc.encode(sheet)
	if err != nil {
		return ExportedFile{}, fmt.Errorf("failed to encode pricing sheet as %s: %w", format, err)
	}
	return ExportedFile{
		Filename:    fmt.Sprintf("%s.%s", sheet.Name, format),
		ContentType: enc.contentType,
		Data:        data,
	}, nil
}

// sheetTable flattens a sheet into a header and rows padded to the widest
// product. Every encoder renders this same table.
func sheetTable(sheet *models.PricingSheet) ([]string, [][]string) {
	maxTiers := sheet.MaxTiers()
	header := []string{"Product Name", "SKU", "Base Price"}
	for n := 1; n <= maxTiers; n++ {
		header = append(header,
			fmt.Sprintf("Tier %d Qty", n),
			fmt.Sprintf("Tier %d Price", n),
			fmt.Sprintf("Tier %d Discount", n))
	}

	rows := make([][]string, 0, len(sheet.Products))
	for _, p := range sheet.Products {
		row := make([]string, len(header))
		row[0] = p.ProductName
		row[1] = p.SKU
		row[2] = p.BasePrice.StringFixed(2)
		for i, tier := range p.Tiers {
			col := 3 + i*3
			row[col] = tierQuantity(tier)
			row[col+1] = tier.Price.StringFixed(2)
			row[col+2] = tier.Discount.StringFixed(2)
		}
		rows = append(rows, row)
	}
	return header, rows
}

func tierQuantity(tier models.PricingSheetTier) string {
	if tier.MaxQuantity == nil {
		return strconv.Itoa(tier.MinQuantity) + "+"
	}
	return fmt.Sprintf("%d-%d", tier.MinQuantity, *tier.MaxQuantity)
}

func encodeCSV(sheet *models.PricingSheet) ([]byte, error) {
	header, rows := sheetTable(sheet)
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, err
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeXLSX(sheet *models.PricingSheet) ([]byte, error) {
	header, rows := sheetTable(sheet)

	file := xlsx.NewFile()
	ws, err := file.AddSheet("Pricing Sheet")
	if err != nil {
		return nil, err
	}

	headerRow := ws.AddRow()
	for _, h := range header {
		cell := headerRow.AddCell()
		cell.SetString(h)
		style := xlsx.NewStyle()
		font := xlsx.DefaultFont()
		font.Bold = true
		style.Font = *font
		cell.SetStyle(style)
	}
	for _, r := range rows {
		row := ws.AddRow()
		for _, v := range r {
			row.AddCell().SetString(v)
		}
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodePDF(sheet *models.PricingSheet) ([]byte, error) {
	header, rows := sheetTable(sheet)

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 12, sheet.Name)
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 11)
	if sheet.Description != "" {
		pdf.Cell(0, 8, sheet.Description)
		pdf.Ln(6)
	}
	validity := "Valid from " + sheet.ValidFrom.Format("2006-01-02")
	if sheet.ValidUntil != nil {
		validity += " to " + sheet.ValidUntil.Format("2006-01-02")
	}
	if sheet.CustomerGroup != nil {
		validity += " | Customer group: " + sheet.CustomerGroup.Label()
	}
	pdf.Cell(0, 8, validity)
	pdf.Ln(12)

	// 277mm usable width on landscape A4, name column gets a double share
	width := 277.0 / float64(len(header)+1)
	colWidth := func(i int) float64 {
		if i == 0 {
			return width * 2
		}
		return width
	}

	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(200, 200, 200)
	for i, h := range header {
		pdf.CellFormat(colWidth(i), 9, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for n, r := range rows {
		fill := n%2 == 1
		pdf.SetFillColor(245, 245, 245)
		for i, v := range r {
			align := "R"
			if i < 2 {
				align = "L"
			}
			pdf.CellFormat(colWidth(i), 8, v, "1", 0, align, fill, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
