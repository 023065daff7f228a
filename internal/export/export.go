// Package export renders fetched entities into flat CSV text, pretty JSON,
// and the visibility report document. Every function is a deterministic
// projection of its input: same rows in, byte-identical output out.
package export

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/aeolytics/aeo-backend/internal/domain"
)

// Table is an ordered, homogeneous set of rows ready for CSV rendering.
// Header order is fixed by the builder, never derived from map iteration.
type Table struct {
	Headers []string
	Rows    [][]string
}

// CSV renders the table as UTF-8 CSV text. A field containing a comma,
// double quote, or newline is wrapped in double quotes with inner quotes
// doubled. Missing values are empty strings, never a "null" literal.
func CSV(t Table) string {
	var b strings.Builder
	writeRecord(&b, t.Headers)
	for _, row := range t.Rows {
		writeRecord(&b, row)
	}
	return b.String()
}

func writeRecord(b *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(escapeCSV(f))
	}
	b.WriteByte('\n')
}

func escapeCSV(f string) string {
	if !strings.ContainsAny(f, ",\"\n\r") {
		return f
	}
	return `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
}

// JSON renders rows as pretty-printed JSON with keys in each struct's
// declared field order.
func JSON(v any) (string, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// DomainsTable projects domains into CSV rows.
func DomainsTable(domains []domain.Domain) Table {
	t := Table{Headers: []string{"hostname", "status", "queries", "citations", "last_check", "created_at"}}
	for _, d := range domains {
		t.Rows = append(t.Rows, []string{
			d.Hostname,
			d.Status,
			strconv.Itoa(d.QueriesCount),
			strconv.Itoa(d.CitationsCount),
			formatTimePtr(d.LastCheck),
			d.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return t
}

// QueriesTable projects queries into CSV rows.
func QueriesTable(queries []domain.Query) Table {
	t := Table{Headers: []string{"text", "status", "engines", "intent_tags", "last_run", "created_at"}}
	for _, q := range queries {
		t.Rows = append(t.Rows, []string{
			q.Text,
			q.Status,
			strings.Join(q.Engines, "; "),
			strings.Join(q.IntentTags, "; "),
			formatTimePtr(q.LastRun),
			q.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return t
}

// CitationsTable projects citations into CSV rows. Confidence is rendered
// the way users see it, as a whole percentage.
func CitationsTable(citations []domain.Citation) Table {
	t := Table{Headers: []string{"query_id", "engine", "cited", "position", "confidence_pct", "run_date"}}
	for _, c := range citations {
		pos := ""
		if c.Position != nil {
			pos = *c.Position
		}
		t.Rows = append(t.Rows, []string{
			c.QueryID,
			c.Engine,
			strconv.FormatBool(c.Cited),
			pos,
			strconv.Itoa(c.ConfidencePct()),
			c.RunDate.UTC().Format(time.RFC3339),
		})
	}
	return t
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
