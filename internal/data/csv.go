package data

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/bstlaurentnz/energy-provider-comparison/internal/model"
)

// Frame is a loaded time-series table: one timestamp per row plus named
// float columns. Rows are sorted by timestamp; unparseable or missing
// values are cleaned to zero, matching the upstream sensor exports which
// are full of blanks and "unknown" states.
type Frame struct {
	Timestamps []time.Time
	Columns    []string
	values     map[string][]float64
}

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// LoadCSV reads either a pivoted export (timestamp,<sensor columns...>) or a
// long-format one (entity_id,state,last_changed). Long format is pivoted to
// one column per entity, averaging duplicate readings per timestamp.
func LoadCSV(path string) (*Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("%s: empty file", path)
	}

	header := records[0]
	rows := records[1:]

	if col := indexOf(header, "timestamp"); col >= 0 {
		return loadPivoted(header, rows, col)
	}
	return loadLong(header, rows)
}

func indexOf(header []string, name string) int {
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i
		}
	}
	return -1
}

func loadPivoted(header []string, rows [][]string, tsCol int) (*Frame, error) {
	frame := &Frame{values: map[string][]float64{}}
	for i, h := range header {
		if i == tsCol {
			continue
		}
		name := strings.TrimSpace(h)
		frame.Columns = append(frame.Columns, name)
		frame.values[name] = nil
	}

	for _, row := range rows {
		if tsCol >= len(row) {
			continue
		}
		ts, err := parseTimestamp(row[tsCol])
		if err != nil {
			continue
		}
		frame.Timestamps = append(frame.Timestamps, ts)
		for i, h := range header {
			if i == tsCol {
				continue
			}
			name := strings.TrimSpace(h)
			v := 0.0
			if i < len(row) {
				v = parseValue(row[i])
			}
			frame.values[name] = append(frame.values[name], v)
		}
	}

	frame.sortByTimestamp()
	return frame, nil
}

// loadLong pivots entity_id/state/last_changed exports: one column per
// entity, duplicate (timestamp, entity) readings averaged.
func loadLong(header []string, rows [][]string) (*Frame, error) {
	entityCol := indexOf(header, "entity_id")
	stateCol := indexOf(header, "state")
	tsCol := indexOf(header, "last_changed")
	if tsCol < 0 {
		tsCol = indexOf(header, "timestamp")
	}
	if entityCol < 0 || stateCol < 0 || tsCol < 0 {
		return nil, fmt.Errorf("unrecognized CSV shape: want timestamp column or entity_id/state/last_changed")
	}

	type cell struct {
		sum   float64
		count int
	}
	cells := map[time.Time]map[string]*cell{}
	entities := map[string]bool{}

	for _, row := range rows {
		if entityCol >= len(row) || stateCol >= len(row) || tsCol >= len(row) {
			continue
		}
		ts, err := parseTimestamp(row[tsCol])
		if err != nil {
			continue
		}
		entity := strings.TrimSpace(row[entityCol])
		if entity == "" {
			continue
		}
		entities[entity] = true
		if cells[ts] == nil {
			cells[ts] = map[string]*cell{}
		}
		c := cells[ts][entity]
		if c == nil {
			c = &cell{}
			cells[ts][entity] = c
		}
		c.sum += parseValue(row[stateCol])
		c.count++
	}

	frame := &Frame{values: map[string][]float64{}}
	for entity := range entities {
		frame.Columns = append(frame.Columns, entity)
	}
	sort.Strings(frame.Columns)

	for ts := range cells {
		frame.Timestamps = append(frame.Timestamps, ts)
	}
	sort.Slice(frame.Timestamps, func(i, j int) bool {
		return frame.Timestamps[i].Before(frame.Timestamps[j])
	})

	for _, ts := range frame.Timestamps {
		for _, entity := range frame.Columns {
			v := 0.0
			if c, ok := cells[ts][entity]; ok && c.count > 0 {
				v = c.sum / float64(c.count)
			}
			frame.values[entity] = append(frame.values[entity], v)
		}
	}
	return frame, nil
}

func (f *Frame) sortByTimestamp() {
	idx := make([]int, len(f.Timestamps))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return f.Timestamps[idx[a]].Before(f.Timestamps[idx[b]])
	})

	ts := make([]time.Time, len(idx))
	for i, j := range idx {
		ts[i] = f.Timestamps[j]
	}
	f.Timestamps = ts
	for name, vals := range f.values {
		sorted := make([]float64, len(idx))
		for i, j := range idx {
			sorted[i] = vals[j]
		}
		f.values[name] = sorted
	}
}

// Column returns the values of a named column.
func (f *Frame) Column(name string) ([]float64, bool) {
	v, ok := f.values[name]
	return v, ok
}

// Series builds the simulation input from the named pv and consumption
// columns.
func (f *Frame) Series(pvColumn, consumptionColumn string) (model.Series, error) {
	pv, ok := f.Column(pvColumn)
	if !ok {
		return nil, fmt.Errorf("pv column %q not found", pvColumn)
	}
	cons, ok := f.Column(consumptionColumn)
	if !ok {
		return nil, fmt.Errorf("consumption column %q not found", consumptionColumn)
	}

	series := make(model.Series, len(f.Timestamps))
	for i, ts := range f.Timestamps {
		series[i] = model.Reading{
			Timestamp:          ts,
			PVPowerKW:          pv[i],
			ConsumptionPowerKW: cons[i],
		}
	}
	return series, nil
}

func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", s)
}

// parseValue cleans a raw cell to a float: blanks, NaN and non-numeric
// states all become 0.
func parseValue(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
