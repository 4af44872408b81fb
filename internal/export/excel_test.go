package export

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/bstlaurentnz/energy-provider-comparison/internal/compare"
	"github.com/bstlaurentnz/energy-provider-comparison/internal/data"
	"github.com/bstlaurentnz/energy-provider-comparison/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteWorkbook(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var series model.Series
	for h := 0; h < 24; h++ {
		r := model.Reading{Timestamp: start.Add(time.Duration(h) * time.Hour)}
		if h >= 9 && h < 16 {
			r.PVPowerKW = 2
		}
		if h >= 6 && h < 23 {
			r.ConsumptionPowerKW = 1
		}
		series = append(series, r)
	}

	outcome, err := compare.Run(series, data.SampleProviders(), compare.Options{})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "comparison.xlsx")
	require.NoError(t, WriteWorkbook(path, outcome))

	wb, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer wb.Close()

	sheets := wb.GetSheetList()
	require.Len(t, sheets, 4, "summary plus one ledger sheet per provider")
	assert.Equal(t, "Summary", sheets[0])

	rows, err := wb.GetRows("Summary")
	require.NoError(t, err)
	require.Len(t, rows, 4, "header plus one row per provider")
	assert.Equal(t, "rank", rows[0][0])
	assert.Equal(t, "provider", rows[0][1])
	assert.Contains(t, rows[0], "peak_purchases_kwh")
	assert.Equal(t, "1", rows[1][0])

	// Ledger sheets are named after the providers, in rank order.
	ledgerRows, err := wb.GetRows(outcome.Ranked[0].Provider)
	require.NoError(t, err)
	assert.Len(t, ledgerRows, 25)
	assert.Equal(t, "timestamp", ledgerRows[0][0])
}

func TestSheetNameTruncation(t *testing.T) {
	used := map[string]bool{}

	long := "An Extremely Verbose Provider Brand Name Ltd"
	first := sheetName(long, used)
	assert.Equal(t, 31, utf8.RuneCountInString(first))

	// A second provider sharing the 31-char prefix gets its own sheet.
	second := sheetName(long+" (NZ)", used)
	assert.NotEqual(t, first, second)
	assert.LessOrEqual(t, utf8.RuneCountInString(second), 31)
	third := sheetName(long+" (AU)", used)
	assert.NotEqual(t, second, third)

	// Multi-byte names truncate on a rune boundary, never mid-rune.
	accented := strings.Repeat("é", 40)
	name := sheetName(accented, used)
	assert.True(t, utf8.ValidString(name))
	assert.Equal(t, 31, utf8.RuneCountInString(name))

	assert.Equal(t, "short", sheetName("short", used))
}
