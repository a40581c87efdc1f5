package reports

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"
	"time"

	"adminsuite/internal/core/apperror"
	"adminsuite/internal/core/tx"
	"adminsuite/internal/core/types"
	"adminsuite/internal/domain/export"
	"adminsuite/internal/domain/inventory"
	"adminsuite/internal/domain/sales"
	"adminsuite/internal/domain/table"
	"adminsuite/internal/domain/users"
	"adminsuite/pkg/logger"
)

// Config controls date rendering in CSV exports.
type Config struct {
	TimeLayout string
	Location   *time.Location
}

// Service provides report exports.
type Service struct {
	users     users.Repository
	sales     sales.Repository
	inventory inventory.Repository
	txManager tx.ReadOnlyManager
	config    Config
	now       func() time.Time

	userTable      *table.Table[users.User]
	salesTable     *table.Table[sales.Metric]
	customerTable  *table.Table[sales.CustomerMetric]
	inventoryTable *table.Table[inventory.Item]
}

// NewService creates a new reports service.
func NewService(
	usersRepo users.Repository,
	salesRepo sales.Repository,
	inventoryRepo inventory.Repository,
	txManager tx.ReadOnlyManager,
	config Config,
) *Service {
	return &Service{
		users:          usersRepo,
		sales:          salesRepo,
		inventory:      inventoryRepo,
		txManager:      txManager,
		config:         config,
		now:            time.Now,
		userTable:      table.New(users.Schema),
		salesTable:     table.New(sales.Schema),
		customerTable:  table.New(sales.CustomerSchema),
		inventoryTable: table.New(inventory.Schema),
	}
}

// WithClock replaces the time source.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Export renders the records req selects. The CSV body carries a UTF-8 BOM.
// An empty selection is not an error: CSV yields the header row (or nothing)
// and JSON an empty data array.
func (s *Service) Export(ctx context.Context, req ExportRequest) (*ExportResult, error) {
	format, ok := ParseFormat(string(req.Format))
	if !ok {
		return nil, apperror.NewInvalidInput("format", req.Format)
	}
	req.Format = format

	var (
		res *ExportResult
		err error
	)
	r := req.dateRange()
	switch req.Type {
	case TypeUsers:
		res, err = run(ctx, s, req, s.userTable, func(ctx context.Context) ([]users.User, error) {
			return s.users.List(ctx, r)
		}, renderExport[users.User])
	case TypeSales:
		res, err = run(ctx, s, req, s.salesTable, func(ctx context.Context) ([]sales.Metric, error) {
			return s.sales.ListSales(ctx, r, "")
		}, renderExport[sales.Metric])
	case TypeCustomers:
		res, err = run(ctx, s, req, s.customerTable, func(ctx context.Context) ([]sales.CustomerMetric, error) {
			return s.sales.ListCustomers(ctx, r)
		}, renderExport[sales.CustomerMetric])
	case TypeInventory:
		res, err = run(ctx, s, req, s.inventoryTable, func(ctx context.Context) ([]inventory.Item, error) {
			return s.inventory.List(ctx, "")
		}, renderExport[inventory.Item])
	default:
		return nil, apperror.NewInvalidInput("type", req.Type)
	}
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "export rendered",
		"type", req.Type,
		"format", req.Format,
		"count", res.Count,
		"bytes", len(res.Body))

	return res, nil
}

// Preview estimates a CSV export without rendering every row.
func (s *Service) Preview(ctx context.Context, req ExportRequest) (*Preview, error) {
	r := req.dateRange()
	switch req.Type {
	case TypeUsers:
		return run(ctx, s, req, s.userTable, func(ctx context.Context) ([]users.User, error) {
			return s.users.List(ctx, r)
		}, previewExport[users.User])
	case TypeSales:
		return run(ctx, s, req, s.salesTable, func(ctx context.Context) ([]sales.Metric, error) {
			return s.sales.ListSales(ctx, r, "")
		}, previewExport[sales.Metric])
	case TypeCustomers:
		return run(ctx, s, req, s.customerTable, func(ctx context.Context) ([]sales.CustomerMetric, error) {
			return s.sales.ListCustomers(ctx, r)
		}, previewExport[sales.CustomerMetric])
	case TypeInventory:
		return run(ctx, s, req, s.inventoryTable, func(ctx context.Context) ([]inventory.Item, error) {
			return s.inventory.List(ctx, "")
		}, previewExport[inventory.Item])
	default:
		return nil, apperror.NewInvalidInput("type", req.Type)
	}
}

// Summary counts the stored records behind the reports page.
func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	var (
		all   []users.User
		items []inventory.Item
		rows  []sales.Metric
	)
	err := s.txManager.ReadOnly(ctx, func(ctx context.Context) error {
		var err error
		if all, err = s.users.List(ctx, types.DateRange{}); err != nil {
			return err
		}
		if items, err = s.inventory.List(ctx, ""); err != nil {
			return err
		}
		rows, err = s.sales.ListSales(ctx, types.DateRange{}, "")
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("reports summary: %w", err)
	}

	sum := &Summary{
		TotalUsers:     len(all),
		InventoryItems: len(items),
		SalesRecords:   len(rows),
		GeneratedAt:    s.now().UTC(),
	}
	for _, u := range all {
		if u.IsActive {
			sum.ActiveUsers++
		}
	}
	sum.InactiveUsers = sum.TotalUsers - sum.ActiveUsers
	for _, it := range items {
		if it.Status() != inventory.StatusInStock {
			sum.LowStockItems++
		}
	}
	return sum, nil
}

// run validates req against tbl, loads the records in a read-only
// transaction, filters and sorts them and hands them to finish.
func run[T, R any](
	ctx context.Context,
	s *Service,
	req ExportRequest,
	tbl *table.Table[T],
	load func(ctx context.Context) ([]T, error),
	finish func(s *Service, req ExportRequest, tbl *table.Table[T], rows []T) (R, error),
) (R, error) {
	var zero R
	if unknown := tbl.Schema().Unknown(req.Fields); len(unknown) > 0 {
		return zero, apperror.NewValidation("unknown export fields").WithDetail("fields", unknown)
	}
	if err := tbl.Validate(req.Filter, req.Sort); err != nil {
		return zero, err
	}

	var rows []T
	err := s.txManager.ReadOnly(ctx, func(ctx context.Context) error {
		var err error
		rows, err = load(ctx)
		return err
	})
	if err != nil {
		return zero, fmt.Errorf("load %s: %w", req.Type, err)
	}

	return finish(s, req, tbl, tbl.Sort(tbl.Filter(rows, req.Filter), req.Sort))
}

func (s *Service) options(req ExportRequest) export.Options {
	return export.Options{
		Fields:         req.Fields,
		IncludeHeaders: req.IncludeHeaders,
		Filename:       req.Filename,
		TimeLayout:     s.config.TimeLayout,
		Location:       s.config.Location,
	}
}

func (s *Service) filename(req ExportRequest, ext string) string {
	if req.Filename == "" {
		return export.DefaultFilenameExt(string(req.Type), ext, s.now())
	}
	name := strings.ReplaceAll(path.Base(req.Filename), `"`, "")
	if path.Ext(name) == "" {
		return name + "." + ext
	}
	return name
}

// renderExport encodes the selected rows in the requested format.
func renderExport[T any](s *Service, req ExportRequest, tbl *table.Table[T], rows []T) (*ExportResult, error) {
	now := s.now()
	if req.Format == FormatJSON {
		body, err := encodeJSON(req, rows, now)
		if err != nil {
			return nil, err
		}
		return &ExportResult{
			Filename:    s.filename(req, "json"),
			ContentType: "application/json; charset=utf-8",
			Body:        body,
			Count:       len(rows),
		}, nil
	}

	return &ExportResult{
		Filename:    s.filename(req, "csv"),
		ContentType: export.CSVContentType,
		Body:        export.WithBOM(export.ToCSV(rows, tbl.Schema(), s.options(req))),
		Count:       len(rows),
	}, nil
}

func previewExport[T any](s *Service, req ExportRequest, tbl *table.Table[T], rows []T) (*Preview, error) {
	p := export.Summarize(rows, tbl.Schema(), s.options(req))
	return &p, nil
}

func (req ExportRequest) dateRange() types.DateRange {
	var r types.DateRange
	if req.StartDate != nil {
		r.From = *req.StartDate
	}
	if req.EndDate != nil {
		r.To = *req.EndDate
	}
	return r
}

// encodeJSON renders the JSON export envelope.
func encodeJSON[T any](req ExportRequest, rows []T, now time.Time) ([]byte, error) {
	body, err := json.Marshal(export.NewEnvelope(string(req.Type), rows, now, req.StartDate, req.EndDate))
	if err != nil {
		return nil, fmt.Errorf("encode %s export: %w", req.Type, err)
	}
	return body, nil
}
