package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

const generatedFormat = "20060102150405"

// table is a dataset flattened for encoding: rows for the positional
// encodings, records for JSON.
type table struct {
	dataset Dataset
	schema  []Column
	rows    [][]string
	records any
}

type encoder func(w io.Writer, tbl table, generated time.Time) error

// encoders binds each format to its encoding. Adding a format means adding
// a row here, not another switch somewhere.
var encoders = map[Format]encoder{
	FormatFixed: encodeFixed,
	FormatCSV:   encodeCSV,
	FormatJSON:  encodeJSON,
}

func encodeFixed(w io.Writer, tbl table, generated time.Time) error {
	count := strconv.Itoa(len(tbl.rows))

	header, err := fixedLine(headerSchema, []string{"H", string(tbl.dataset), generated.Format(generatedFormat), count})
	if err != nil {
		return fmt.Errorf("encoding header: %w", err)
	}
	if _, err := fmt.Fprintln(w, header); err != nil {
		return err
	}

	for i, row := range tbl.rows {
		line, err := fixedLine(tbl.schema, row)
		if err != nil {
			return fmt.Errorf("encoding record %d: %w", i+1, err)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	trailer, err := fixedLine(trailerSchema, []string{"T", count})
	if err != nil {
		return fmt.Errorf("encoding trailer: %w", err)
	}
	_, err = fmt.Fprintln(w, trailer)
	return err
}

// encodeCSV writes a header row of field names and one row per entity.
// Text fields are always quoted, numeric fields never, per the legacy
// snapshot contract -- stricter than encoding/csv's quote-as-needed.
func encodeCSV(w io.Writer, tbl table, _ time.Time) error {
	names := make([]string, len(tbl.schema))
	for i, col := range tbl.schema {
		names[i] = col.Name
	}
	if _, err := fmt.Fprintln(w, strings.Join(names, ",")); err != nil {
		return err
	}

	for _, row := range tbl.rows {
		fields := make([]string, len(row))
		for i, v := range row {
			if tbl.schema[i].Numeric {
				fields[i] = v
			} else {
				fields[i] = `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
			}
		}
		if _, err := fmt.Fprintln(w, strings.Join(fields, ",")); err != nil {
			return err
		}
	}
	return nil
}

func encodeJSON(w io.Writer, tbl table, _ time.Time) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(tbl.records)
}
