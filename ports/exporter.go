package ports

import (
	"io"

	"gamblelab/domain/core"
	"gamblelab/domain/experiment"
)

// TrialExporter serializes the ordered trial log into a row-per-trial
// tabular format for download. The core's only responsibility toward the
// export layer is producing ordered rows; formats live in adapters.
type TrialExporter interface {
	// Export writes all rows in insertion order
	Export(w io.Writer, rows []experiment.TrialLog) error

	// ContentType returns the MIME type of the produced document
	ContentType() string

	// Filename suggests a download filename for a participant's log
	Filename(participant core.ParticipantID) string
}
