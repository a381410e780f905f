package export

import (
	"fmt"
	"io"

	"gamblelab/domain/core"
	"gamblelab/domain/experiment"

	"github.com/xuri/excelize/v2"
)

const sheetName = "trials"

// ExcelExporter writes the trial log as a single-sheet .xlsx workbook,
// same column set as the CSV exporter.
type ExcelExporter struct{}

// NewExcel creates an Excel exporter.
func NewExcel() *ExcelExporter {
	return &ExcelExporter{}
}

// Export writes the workbook with one header row plus one row per trial.
func (e *ExcelExporter) Export(w io.Writer, rows []experiment.TrialLog) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to drop default sheet: %w", err)
	}

	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to compute cell for row %d: %w", i, err)
		}
		values := []interface{}{
			row.ParticipantID.String(),
			row.Timestamp.String(),
			row.Phase.String(),
			row.TrialInPhase,
			row.Gamble.ID.String(),
			row.Gamble.PWin,
			row.Gamble.Win,
			row.Gamble.PLose,
			row.Gamble.Lose,
			row.EV,
			string(row.Decision),
			row.Flag.String(),
			row.Feedback,
			row.Reflection,
			row.RTSeconds,
			row.Difficulty,
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// ContentType returns the xlsx MIME type.
func (e *ExcelExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Filename suggests a download name for a participant's log.
func (e *ExcelExporter) Filename(participant core.ParticipantID) string {
	return fmt.Sprintf("loss_aversion_experiment_%s.xlsx", participant)
}
