package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"gamblelab/domain/behavior"
	"gamblelab/domain/core"
	"gamblelab/domain/experiment"
	"gamblelab/domain/gamble"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleRows() []experiment.TrialLog {
	ts := core.NewTimestamp(time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC))
	g1 := gamble.MixedGamble{ID: "aaaa1111", PWin: 0.5, Win: 20, PLose: 0.5, Lose: 10}
	g2 := gamble.MixedGamble{ID: "bbbb2222", PWin: 0.5, Win: 10, PLose: 0.5, Lose: 12}

	return []experiment.TrialLog{
		{
			ParticipantID: "p1234567",
			Timestamp:     ts,
			Phase:         experiment.PhasePreTest,
			TrialInPhase:  0,
			Gamble:        g1,
			EV:            g1.EV(),
			Decision:      behavior.DecisionReject,
			Flag:          behavior.FlagLossAversion,
			RTSeconds:     1.234,
			Difficulty:    0,
		},
		{
			ParticipantID: "p1234567",
			Timestamp:     ts,
			Phase:         experiment.PhaseTraining,
			TrialInPhase:  3,
			Gamble:        g2,
			EV:            g2.EV(),
			Decision:      behavior.DecisionAccept,
			Flag:          behavior.FlagNone,
			Feedback:      "This is a 50/50 gamble: win 10 or lose 12.",
			Reflection:    "the loss felt small",
			RTSeconds:     2.5,
			Difficulty:    1,
		},
	}
}

func TestCSVExport(t *testing.T) {
	var buf bytes.Buffer
	e := NewCSV()
	require.NoError(t, e.Export(&buf, sampleRows()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, columns, records[0])

	first := records[1]
	assert.Equal(t, "p1234567", first[0])
	assert.Equal(t, "pre_test", first[2])
	assert.Equal(t, "0", first[3])
	assert.Equal(t, "aaaa1111", first[4])
	assert.Equal(t, "0.5", first[5])
	assert.Equal(t, "20", first[6])
	assert.Equal(t, "5", first[9])
	assert.Equal(t, "reject", first[10])
	assert.Equal(t, "loss_aversion_possible", first[11])
	assert.Equal(t, "1.234", first[14])

	second := records[2]
	assert.Equal(t, "training", second[2])
	assert.Equal(t, "the loss felt small", second[13])
	assert.Equal(t, "1", second[15])
}

func TestCSVExportEmptyLogStillWritesHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewCSV().Export(&buf, nil))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, columns, records[0])
}

func TestCSVFilename(t *testing.T) {
	assert.Equal(t, "loss_aversion_experiment_p1234567.csv", NewCSV().Filename("p1234567"))
	assert.Equal(t, "text/csv", NewCSV().ContentType())
}

func TestExcelExport(t *testing.T) {
	var buf bytes.Buffer
	e := NewExcel()
	require.NoError(t, e.Export(&buf, sampleRows()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, columns, rows[0])
	assert.Equal(t, "p1234567", rows[1][0])
	assert.Equal(t, "reject", rows[1][10])
	assert.Equal(t, "the loss felt small", rows[2][13])
}

func TestExcelFilename(t *testing.T) {
	assert.Equal(t, "loss_aversion_experiment_p1234567.xlsx", NewExcel().Filename("p1234567"))
}
