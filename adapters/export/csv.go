package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"gamblelab/domain/core"
	"gamblelab/domain/experiment"
)

// columns is the exported header row, one column per TrialLog field.
// Downstream analysis scripts depend on this order; do not reorder.
var columns = []string{
	"participant_id",
	"timestamp",
	"phase",
	"trial_in_phase",
	"gamble_id",
	"p_win",
	"win",
	"p_lose",
	"lose",
	"ev",
	"decision",
	"flag",
	"feedback",
	"reflection",
	"rt_seconds",
	"difficulty",
}

// CSVExporter writes the trial log as row-per-trial CSV.
type CSVExporter struct{}

// NewCSV creates a CSV exporter.
func NewCSV() *CSVExporter {
	return &CSVExporter{}
}

// Export writes all rows in insertion order, header first.
func (e *CSVExporter) Export(w io.Writer, rows []experiment.TrialLog) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, row := range rows {
		if err := cw.Write(recordFor(row)); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ContentType returns the CSV MIME type.
func (e *CSVExporter) ContentType() string { return "text/csv" }

// Filename suggests the participant-labeled download name.
func (e *CSVExporter) Filename(participant core.ParticipantID) string {
	return fmt.Sprintf("loss_aversion_experiment_%s.csv", participant)
}

func recordFor(row experiment.TrialLog) []string {
	return []string{
		row.ParticipantID.String(),
		row.Timestamp.String(),
		row.Phase.String(),
		strconv.Itoa(row.TrialInPhase),
		row.Gamble.ID.String(),
		formatFloat(row.Gamble.PWin),
		formatFloat(row.Gamble.Win),
		formatFloat(row.Gamble.PLose),
		formatFloat(row.Gamble.Lose),
		formatFloat(row.EV),
		string(row.Decision),
		row.Flag.String(),
		row.Feedback,
		row.Reflection,
		strconv.FormatFloat(row.RTSeconds, 'f', 3, 64),
		strconv.Itoa(row.Difficulty),
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
