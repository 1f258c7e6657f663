package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"
	"github.com/safooraa838/FitSync/internal/config"
)

// WritePDF renders wk as a one-page A4 document.
func WritePDF(w io.Writer, wk Weekly) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("FitSync weekly report", false)
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, fmt.Sprintf("Weekly Report: %s - %s", wk.Start.Format("Jan 2"), wk.End.Format("Jan 2, 2006")))
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 8, fmt.Sprintf("%s <%s>", wk.User.Name, wk.User.Email))
	pdf.Ln(12)

	// Summary
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 10, "Summary")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Workouts: %d   Minutes: %d   Calories burned: %d", wk.Workouts, wk.Minutes, wk.CaloriesBurned))
	pdf.Ln(6)
	pdf.Cell(0, 8, fmt.Sprintf("Average intake over %d logged days: %.0f kcal, %.0fg protein, %.0fg carbs, %.0fg fat",
		wk.LoggedDays, wk.AverageIntake.Calories, wk.AverageIntake.Protein, wk.AverageIntake.Carbs, wk.AverageIntake.Fat))
	pdf.Ln(12)

	// Per-day table
	pdf.SetFont("Arial", "B", 11)
	headers := []string{"Day", "Meals", "kcal in", "Protein", "Carbs", "Fat", "Workouts", "kcal out"}
	widths := []float64{30, 18, 24, 22, 22, 18, 24, 24}
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 11)
	for _, d := range wk.Days {
		cells := []string{
			d.Date.Format("Mon Jan 2"),
			fmt.Sprintf("%d", d.Meals),
			fmt.Sprintf("%.0f", d.Intake.Calories),
			fmt.Sprintf("%.0f", d.Intake.Protein),
			fmt.Sprintf("%.0f", d.Intake.Carbs),
			fmt.Sprintf("%.0f", d.Intake.Fat),
			fmt.Sprintf("%d", d.Workouts),
			fmt.Sprintf("%d", d.CaloriesBurned),
		}
		for i, c := range cells {
			pdf.CellFormat(widths[i], 7, c, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(8)

	// Goals
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 10, "Goals")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 12)
	if len(wk.Active)+len(wk.Completed) == 0 {
		pdf.Cell(0, 8, "  - No goals set.")
		pdf.Ln(8)
	}
	for _, g := range wk.Active {
		pdf.Cell(0, 8, fmt.Sprintf("  [ ] %s  %3d%%  (%g / %g %s)", g.Title, g.Progress, g.CurrentValue, g.Target, g.Unit))
		pdf.Ln(6)
	}
	for _, g := range wk.Completed {
		pdf.Cell(0, 8, fmt.Sprintf("  [x] %s", g.Title))
		pdf.Ln(6)
	}

	if len(wk.Recent) > 0 {
		pdf.Ln(6)
		pdf.SetFont("Arial", "B", 14)
		pdf.Cell(0, 10, "Recent Workouts")
		pdf.Ln(8)
		pdf.SetFont("Arial", "", 12)
		for _, wo := range wk.Recent {
			line := fmt.Sprintf("[%s] %s (%s, %d min)", wo.Date.Format("Jan 2"), wo.Name, wo.Type, wo.Duration)
			if wo.Notes != nil && *wo.Notes != "" {
				line += " - " + *wo.Notes
			}
			pdf.MultiCell(0, 8, line, "", "", false)
		}
	}

	return pdf.Output(w)
}

// SavePDF writes wk into dir and returns the file path.
func SavePDF(dir string, wk Weekly) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}
	name := config.ReportPrefix + wk.End.Format("2006-01-02") + ".pdf"
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create report: %w", err)
	}
	if err := WritePDF(f, wk); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("render report: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close report: %w", err)
	}
	return path, nil
}
