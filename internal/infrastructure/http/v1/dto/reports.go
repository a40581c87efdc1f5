package dto

import (
	"adminsuite/internal/core/apperror"
	"adminsuite/internal/domain/reports"
	"adminsuite/internal/domain/table"
)

// ExportRequest is the query string of GET /reports/export.
type ExportRequest struct {
	Type           string   `form:"type" binding:"required"`
	Format         string   `form:"format"`
	Fields         string   `form:"fields"`
	IncludeHeaders *bool    `form:"includeHeaders"`
	Filename       string   `form:"filename"`
	StartDate      string   `form:"startDate"`
	EndDate        string   `form:"endDate"`
	Search         string   `form:"search"`
	Match          []string `form:"match"`
	Expr           string   `form:"expr"`
	SortBy         string   `form:"sortBy"`
	SortOrder      string   `form:"sortOrder" binding:"omitempty,oneof=asc desc"`
}

// ToDomain validates the parameters and builds the reports request.
// Headers are included unless includeHeaders=false.
func (r *ExportRequest) ToDomain() (reports.ExportRequest, error) {
	typ, ok := reports.ParseType(r.Type)
	if !ok {
		return reports.ExportRequest{}, apperror.NewInvalidInput("type", r.Type)
	}
	format, ok := reports.ParseFormat(r.Format)
	if !ok {
		return reports.ExportRequest{}, apperror.NewInvalidInput("format", r.Format)
	}

	start, err := ParseDate("startDate", r.StartDate, false)
	if err != nil {
		return reports.ExportRequest{}, err
	}
	end, err := ParseDate("endDate", r.EndDate, true)
	if err != nil {
		return reports.ExportRequest{}, err
	}
	if start != nil && end != nil && start.After(*end) {
		return reports.ExportRequest{}, apperror.NewValidation("startDate is after endDate")
	}

	match, err := ParseMatch(r.Match)
	if err != nil {
		return reports.ExportRequest{}, err
	}

	return reports.ExportRequest{
		Type:           typ,
		Format:         format,
		Fields:         SplitList(r.Fields),
		IncludeHeaders: r.IncludeHeaders == nil || *r.IncludeHeaders,
		Filename:       r.Filename,
		StartDate:      start,
		EndDate:        end,
		Filter:         table.FilterSpec{Search: r.Search, Match: match, Expr: r.Expr},
		Sort:           table.SortSpec{Field: r.SortBy, Desc: r.SortOrder == "desc"},
	}, nil
}

// SalesAnalyticsRequest is the query string of GET /analytics/sales.
type SalesAnalyticsRequest struct {
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
	Channel   string `form:"channel"`
}

// UserAnalyticsRequest is the query string of GET /analytics/users.
type UserAnalyticsRequest struct {
	Period  string `form:"period"`
	GroupBy string `form:"groupBy"`
}
