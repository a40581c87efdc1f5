package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"adminsuite/internal/app"
	"adminsuite/internal/domain/reports"
	"adminsuite/internal/domain/table"
)

var exportOpts struct {
	out       string
	format    string
	fields    []string
	noHeaders bool
	filename  string
	search    string
	match     []string
	expr      string
	sortBy    string
	desc      bool
	from      string
	to        string
	preview   bool
}

var exportCmd = &cobra.Command{
	Use:   "export <users|sales|customers|inventory>",
	Short: "Render a CSV or JSON export",
	Long: `Render an export the same way GET /api/v1/reports/export does.

The file lands in --out (a directory or a file path); "-" writes to stdout.
With --preview only the record count and size estimate are printed.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	f := exportCmd.Flags()
	f.StringVarP(&exportOpts.out, "out", "o", ".", "Output directory, file, or - for stdout")
	f.StringVar(&exportOpts.format, "format", "csv", "csv or json")
	f.StringSliceVar(&exportOpts.fields, "fields", nil, "Fields to include, in order")
	f.BoolVar(&exportOpts.noHeaders, "no-headers", false, "Omit the header row")
	f.StringVar(&exportOpts.filename, "filename", "", "File name (default <type>-export-<date>.<ext>)")
	f.StringVar(&exportOpts.search, "search", "", "Case-insensitive search over searchable fields")
	f.StringArrayVar(&exportOpts.match, "match", nil, "Exact field:value match, repeatable")
	f.StringVar(&exportOpts.expr, "expr", "", "Filter expression, e.g. 'available > 0'")
	f.StringVar(&exportOpts.sortBy, "sort", "", "Sort field")
	f.BoolVar(&exportOpts.desc, "desc", false, "Sort descending")
	f.StringVar(&exportOpts.from, "from", "", "Start date (YYYY-MM-DD or RFC3339)")
	f.StringVar(&exportOpts.to, "to", "", "End date, inclusive (YYYY-MM-DD or RFC3339)")
	f.BoolVar(&exportOpts.preview, "preview", false, "Print the export estimate instead of writing it")
}

func runExport(cmd *cobra.Command, args []string) error {
	req, err := buildExportRequest(args[0])
	if err != nil {
		return err
	}

	return withApp(cmd, nil, func(ctx context.Context, a *app.App) error {
		if exportOpts.preview {
			p, err := a.Reports.Preview(ctx, req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), p)
		}

		res, err := a.Reports.Export(ctx, req)
		if err != nil {
			return err
		}
		if exportOpts.out == "-" {
			_, err := cmd.OutOrStdout().Write(res.Body)
			return err
		}

		path := outputPath(exportOpts.out, res.Filename)
		if err := os.WriteFile(path, res.Body, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d records to %s\n", res.Count, path)
		return nil
	})
}

func buildExportRequest(kind string) (reports.ExportRequest, error) {
	typ, ok := reports.ParseType(kind)
	if !ok {
		return reports.ExportRequest{}, fmt.Errorf("unknown export type %q", kind)
	}
	format, ok := reports.ParseFormat(exportOpts.format)
	if !ok {
		return reports.ExportRequest{}, fmt.Errorf("unknown format %q", exportOpts.format)
	}

	req := reports.ExportRequest{
		Type:           typ,
		Format:         format,
		Fields:         exportOpts.fields,
		IncludeHeaders: !exportOpts.noHeaders,
		Filename:       exportOpts.filename,
		Filter:         table.FilterSpec{Search: exportOpts.search, Expr: exportOpts.expr},
		Sort:           table.SortSpec{Field: exportOpts.sortBy, Desc: exportOpts.desc},
	}
	for _, m := range exportOpts.match {
		field, value, ok := strings.Cut(m, ":")
		if !ok || field == "" {
			return reports.ExportRequest{}, fmt.Errorf("--match %q: want field:value", m)
		}
		req.Filter.Match = append(req.Filter.Match, table.Predicate{Field: field, Value: value})
	}

	var err error
	if req.StartDate, err = parseDate(exportOpts.from, false); err != nil {
		return reports.ExportRequest{}, fmt.Errorf("--from: %w", err)
	}
	if req.EndDate, err = parseDate(exportOpts.to, true); err != nil {
		return reports.ExportRequest{}, fmt.Errorf("--to: %w", err)
	}
	if req.StartDate != nil && req.EndDate != nil && req.StartDate.After(*req.EndDate) {
		return reports.ExportRequest{}, fmt.Errorf("--from is after --to")
	}
	return req, nil
}

// parseDate accepts RFC3339 or a bare date. A bare end date covers the whole day.
func parseDate(s string, endOfDay bool) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

func outputPath(out, filename string) string {
	if info, err := os.Stat(out); err == nil && info.IsDir() {
		return filepath.Join(out, filename)
	}
	return out
}
