package google

import (
	"errors"
	"fmt"

	"finsight/internal/core"
	"finsight/internal/ledger"
)

// parseValues converts a values matrix (as returned by the Sheets API) into a
// ledger. The first row must be a header; rows that fail parsing are dropped
// and counted.
func parseValues(values [][]interface{}) (core.Ledger, int, error) {
	if len(values) == 0 {
		return nil, 0, errors.New("empty values range")
	}
	cols, err := ledger.MapColumns(toStrings(values[0]))
	if err != nil {
		return nil, 0, err
	}

	var out core.Ledger
	dropped := 0
	for i := 1; i < len(values); i++ {
		tx, ok := ledger.ParseRow(toStrings(values[i]), cols)
		if !ok {
			dropped++
			continue
		}
		out = append(out, tx)
	}
	return out, dropped, nil
}

func toStrings(row []interface{}) []string {
	out := make([]string, len(row))
	for i, v := range row {
		out[i] = fmt.Sprintf("%v", v)
	}
	return out
}
