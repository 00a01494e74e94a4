// Package csvfile loads a transaction ledger from a CSV export.
//
// Spreadsheet exports are messy: headers may be localized, amounts may carry
// currency symbols or comma decimals, and files saved on Windows are often
// latin-1 rather than UTF-8. The loader repairs what it can and drops rows it
// cannot, so the rest of the system only ever sees a clean ledger.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"finsight/internal/core"
	"finsight/internal/ledger"
)

type Loader struct {
	path string
}

func New(path string) *Loader {
	return &Loader{path: path}
}

var _ ledger.Loader = (*Loader)(nil)

// Load reads and cleans the ledger. Rows that fail date, amount or kind
// parsing are dropped and counted, never fatal; a missing or unreadable file
// is an error the caller surfaces as "data not loaded".
func (l *Loader) Load(ctx context.Context) (core.Ledger, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("read ledger file %s: %w", l.path, err)
	}
	text := repairEncoding(data)

	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header from %s: %w", l.path, err)
	}
	cols, err := ledger.MapColumns(header)
	if err != nil {
		return nil, fmt.Errorf("ledger file %s: %w", l.path, err)
	}

	var out core.Ledger
	dropped := 0
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record from %s: %w", l.path, err)
		}
		tx, ok := ledger.ParseRow(record, cols)
		if !ok {
			dropped++
			continue
		}
		out = append(out, tx)
	}

	slog.InfoContext(ctx, "Ledger loaded",
		"path", l.path,
		"transactions", len(out),
		"dropped_rows", dropped)
	return out, nil
}

// repairEncoding reinterprets the file as latin-1 when it is not valid UTF-8.
// Latin-1 maps bytes to code points one to one, so the conversion never fails.
func repairEncoding(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	runes := make([]rune, len(data))
	for i, b := range data {
		runes[i] = rune(b)
	}
	return string(runes)
}
