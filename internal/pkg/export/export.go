// Package export renders portal data as XLSX workbooks
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/familyhub/portal/internal/app/models"
)

// ContentType is the MIME type of the produced workbooks
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// SummaryRow is one labelled figure of a summary sheet
type SummaryRow struct {
	Label string
	Value interface{}
}

// WriteContributions writes one row per contribution, dates shown in loc
func WriteContributions(w io.Writer, contributions []*models.Contribution, loc *time.Location) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Contributions"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("error naming sheet: %w", err)
	}

	header := []interface{}{"Date", "Type", "Payment method", "Amount (KES)", "Status", "Notes"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("error writing header: %w", err)
	}

	for i, c := range contributions {
		notes := ""
		if c.Notes != nil {
			notes = *c.Notes
		}
		row := []interface{}{
			c.CreatedAt.In(loc).Format("2006-01-02 15:04"),
			string(c.ContributionType),
			string(c.PaymentMethod),
			c.Amount,
			string(c.Status),
			notes,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("error writing row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(sheet, "A", "F", 18); err != nil {
		return err
	}
	return write(f, w)
}

// WriteSummary writes a two-column label/value sheet under a title row
func WriteSummary(w io.Writer, title string, rows []SummaryRow) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Summary"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("error naming sheet: %w", err)
	}
	if err := f.SetCellValue(sheet, "A1", title); err != nil {
		return err
	}

	for i, r := range rows {
		row := []interface{}{r.Label, r.Value}
		cell, err := excelize.CoordinatesToCellName(1, i+3)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("error writing row %q: %w", r.Label, err)
		}
	}

	if err := f.SetColWidth(sheet, "A", "A", 28); err != nil {
		return err
	}
	return write(f, w)
}

func write(f *excelize.File, w io.Writer) error {
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("error writing workbook: %w", err)
	}
	return nil
}
