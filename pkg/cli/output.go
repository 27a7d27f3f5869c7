package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"notesponge-hq/mdsync/pkg/notes/export"
	"notesponge-hq/mdsync/pkg/notes/storage"
	"notesponge-hq/mdsync/pkg/notes/value"
)

// OutputFormat represents the output format for command results.
type OutputFormat string

const (
	// FormatText is an aligned table (default).
	FormatText OutputFormat = "text"
	// FormatJSON is indented JSON.
	FormatJSON OutputFormat = "json"
	// FormatCSV is CSV with a header row.
	FormatCSV OutputFormat = "csv"
)

// ParseOutputFormat validates a --output flag value.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch OutputFormat(strings.ToLower(s)) {
	case FormatText, "":
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatCSV:
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, json, or csv)", s)
	}
}

// WriteRecords writes query results. Columns come from the first record;
// later records missing a column print it as NULL.
func WriteRecords(w io.Writer, format OutputFormat, records []storage.Record) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, records)
	case FormatCSV:
		return writeRecordsCSV(w, records)
	default:
		return writeRecordsText(w, records)
	}
}

// WriteRowsAffected writes the outcome of a mutating statement.
func WriteRowsAffected(w io.Writer, format OutputFormat, n int64) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, map[string]int64{"rows_affected": n})
	case FormatCSV:
		return writeCSV(w, [][]string{{"rows_affected"}, {strconv.FormatInt(n, 10)}})
	default:
		_, err := fmt.Fprintf(w, "%d row(s) affected\n", n)
		return err
	}
}

// WriteResult writes the summary of an export run.
func WriteResult(w io.Writer, format OutputFormat, result *export.Result) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatCSV:
		rows := [][]string{{"file"}}
		for _, f := range result.Files {
			rows = append(rows, []string{f})
		}
		return writeCSV(w, rows)
	default:
		_, err := fmt.Fprintf(w, "Exported %d page(s) and %d image(s) to %s in %s\n",
			result.Pages, result.Images, result.Dir, result.Duration.Round(time.Millisecond))
		return err
	}
}

func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func writeCSV(w io.Writer, rows [][]string) error {
	csvWriter := csv.NewWriter(w)
	if err := csvWriter.WriteAll(rows); err != nil {
		return err
	}
	return csvWriter.Error()
}

func writeRecordsCSV(w io.Writer, records []storage.Record) error {
	if len(records) == 0 {
		return nil
	}

	columns := records[0].Columns()
	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, columns)
	for _, rec := range records {
		rows = append(rows, recordCells(rec, columns, ""))
	}
	return writeCSV(w, rows)
}

func writeRecordsText(w io.Writer, records []storage.Record) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "(0 rows)")
		return err
	}

	columns := records[0].Columns()
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(columns, "\t"))
	for _, rec := range records {
		fmt.Fprintln(tw, strings.Join(recordCells(rec, columns, "NULL"), "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "(%d rows)\n", len(records))
	return err
}

func recordCells(rec storage.Record, columns []string, null string) []string {
	cells := make([]string, len(columns))
	for i, col := range columns {
		v, ok := rec.Get(col)
		if !ok {
			cells[i] = null
			continue
		}
		cells[i] = cellText(v, null)
	}
	return cells
}

// cellText renders a value for tabular output. Blobs use base64, the same
// text form as the JSON encoding.
func cellText(v value.Value, null string) string {
	switch v.Kind() {
	case value.KindText:
		s, _ := v.AsString()
		return s
	case value.KindBlob:
		b, _ := v.AsBytes()
		return value.EncodeBase64(b)
	case value.KindNull:
		return null
	default:
		return v.String()
	}
}
