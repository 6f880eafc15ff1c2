package trades

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/tradedesk/tradedesk-backend/internal/domain"
)

// ExportFormat represents the export file format
type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatJSON ExportFormat = "json"
)

var exportHeader = []string{"date", "type", "ticker", "shares", "price", "fees", "notional", "notes"}

// exportRow is the JSON export shape. Money columns are rendered
// through decimal so 90*145.50 exports as "13095.00", not a float
// artifact.
type exportRow struct {
	Date     string  `json:"date"`
	Type     string  `json:"type"`
	Ticker   string  `json:"ticker"`
	Shares   float64 `json:"shares"`
	Price    string  `json:"price"`
	Fees     string  `json:"fees"`
	Notional string  `json:"notional"`
	Notes    string  `json:"notes,omitempty"`
}

// Export writes the full journal to w in the requested format.
func (s *TradeService) Export(ctx context.Context, w io.Writer, format ExportFormat) error {
	trades, err := s.TradeRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("list trades: %w", err)
	}

	rows := make([]exportRow, 0, len(trades))
	for _, t := range trades {
		rows = append(rows, toExportRow(t))
	}

	switch format {
	case FormatCSV:
		return writeCSV(w, rows)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	default:
		return fmt.Errorf("unsupported export format: %s", format)
	}
}

func toExportRow(t *domain.TradeRecord) exportRow {
	price := decimal.NewFromFloat(t.Price)
	shares := decimal.NewFromFloat(t.Shares)
	return exportRow{
		Date:     t.Date,
		Type:     string(t.Type),
		Ticker:   t.Ticker,
		Shares:   t.Shares,
		Price:    money(price),
		Fees:     money(decimal.NewFromFloat(t.Fees)),
		Notional: money(shares.Mul(price)),
		Notes:    t.Notes,
	}
}

// money renders a decimal with two fractional digits.
func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func writeCSV(w io.Writer, rows []exportRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range rows {
		record := []string{
			r.Date,
			r.Type,
			r.Ticker,
			fmt.Sprintf("%g", r.Shares),
			r.Price,
			r.Fees,
			r.Notional,
			r.Notes,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
