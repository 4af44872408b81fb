package data

import (
	"errors"
	"fmt"
	"strings"
)

// ErrColumnsNotIdentified is the precondition failure surfaced when the pv
// or consumption series cannot be located in the input.
var ErrColumnsNotIdentified = errors.New("pv/consumption columns not identified")

var pvKeywords = []string{"pv", "solar", "generation", "gen"}
var consumptionKeywords = []string{"consum", "load", "demand", "use"}

// DetectColumns resolves the pv and consumption column names. Explicit
// overrides win (and are verified to exist); otherwise the first column
// whose lowercased name contains a known keyword is picked, in column
// order.
func DetectColumns(f *Frame, pvOverride, consumptionOverride string) (pvColumn, consumptionColumn string, err error) {
	pvColumn = pvOverride
	if pvColumn == "" {
		pvColumn = firstMatch(f.Columns, pvKeywords)
		if pvColumn == "" {
			return "", "", fmt.Errorf("%w: no pv column among %v", ErrColumnsNotIdentified, f.Columns)
		}
	} else if _, ok := f.Column(pvColumn); !ok {
		return "", "", fmt.Errorf("%w: pv column %q not in data", ErrColumnsNotIdentified, pvColumn)
	}

	consumptionColumn = consumptionOverride
	if consumptionColumn == "" {
		consumptionColumn = firstMatch(f.Columns, consumptionKeywords)
		if consumptionColumn == "" {
			return "", "", fmt.Errorf("%w: no consumption column among %v", ErrColumnsNotIdentified, f.Columns)
		}
	} else if _, ok := f.Column(consumptionColumn); !ok {
		return "", "", fmt.Errorf("%w: consumption column %q not in data", ErrColumnsNotIdentified, consumptionColumn)
	}

	return pvColumn, consumptionColumn, nil
}

func firstMatch(columns, keywords []string) string {
	for _, col := range columns {
		lower := strings.ToLower(col)
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				return col
			}
		}
	}
	return ""
}
