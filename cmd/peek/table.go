package main

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"peek-go/internal/peek"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := range r {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

// renderSummary renders one line per scanned core. A core whose file loop
// stopped early names the file it stopped at.
func renderSummary(results []*peek.CoreResult) string {
	if len(results) == 0 {
		return "No cores found."
	}

	headers := []string{"Core", "Files", "Rows", "Unmatched", "No release", "Stopped at", "Report"}
	aligns := []columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight, alignLeft, alignLeft}

	rows := make([][]string, 0, len(results))
	for _, r := range results {
		stopped := ""
		if r.Truncated {
			stopped = r.StoppedAt
		}
		rows = append(rows, []string{
			r.Core,
			strconv.Itoa(r.Files),
			strconv.Itoa(r.Rows),
			strconv.Itoa(r.Unmatched),
			strconv.Itoa(r.Unreleased),
			stopped,
			r.ReportPath,
		})
	}
	return renderTable(headers, rows, aligns)
}
