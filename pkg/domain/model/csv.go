package model

import (
	"fmt"
	"strings"
	"time"
)

// csvColumns is the fixed export column order
var csvColumns = []string{
	"Date/Time",
	"Location",
	"Hazard Type",
	"Department",
	"Severity",
	"Description",
	"Immediate Action",
	"Category",
	"Reported By",
}

// CSVFilename builds the export filename for the given day, e.g.
// "safevoice-incidents-2025-08-31.csv"
func CSVFilename(now time.Time) string {
	return fmt.Sprintf("safevoice-incidents-%s.csv", now.Format("2006-01-02"))
}

// RenderCSV renders the incident list as CSV: an unquoted header line plus
// one line per record, columns in fixed order. Every data field is
// double-quoted with embedded quotes doubled (RFC 4180 style), matching the
// export contract exactly rather than quoting only when needed.
func RenderCSV(incidents []*Incident) string {
	var b strings.Builder

	b.WriteString(strings.Join(csvColumns, ","))
	for _, x := range incidents {
		b.WriteByte('\n')
		writeCSVRow(&b, []string{
			x.DateTime,
			x.Location,
			x.HazardType,
			x.Department,
			x.Severity,
			x.Description,
			x.ImmediateAction,
			x.Category,
			x.ReportedBy,
		})
	}

	return b.String()
}

func writeCSVRow(b *strings.Builder, fields []string) {
	for i, field := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(field, `"`, `""`))
		b.WriteByte('"')
	}
}
