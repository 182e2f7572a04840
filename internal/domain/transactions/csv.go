package transactions

import (
	"context"
	"encoding/csv"
	"io"
	"strings"

	"ledgerpro/internal/core/apperror"
	"ledgerpro/internal/core/id"
	"ledgerpro/internal/core/types"
	"ledgerpro/pkg/logger"
)

// ImportResult reports the outcome of a CSV import batch.
type ImportResult struct {
	ImportedCount int           `json:"importedCount"`
	ErrorCount    int           `json:"errorCount"`
	Errors        []ImportError `json:"errors"`
}

// ImportError is one failed row. Row numbers are 1-based and count the
// header line, so they match what the user sees in a spreadsheet.
type ImportError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

// headerAliases maps the canonical field name to the header spellings
// accepted on import. Matching is exact per alias, mirroring the loose
// contract of the export tools this feeds from.
var headerAliases = map[string][]string{
	"date":            {"date", "tx_date", "Date"},
	"entityId":        {"entityId", "entity_id", "EntityId"},
	"productId":       {"productId", "product_id"},
	"type":            {"type", "Type"},
	"item":            {"item", "Item"},
	"qty":             {"qty", "quantity", "Qty"},
	"unitAmount":      {"unitAmount", "amount", "unit_amount", "UnitAmount"},
	"gstRate":         {"gstRate", "gst", "gst_rate", "GstRate"},
	"dueDate":         {"dueDate", "due_date"},
	"paidAmount":      {"paidAmount", "paid_amount"},
	"reminderEnabled": {"reminderEnabled", "reminder_enabled"},
	"note":            {"note", "Note"},
	"batchingEnabled": {"batchingEnabled", "batching_enabled"},
	"batchNo":         {"batchNo", "batch_no"},
	"mfgDate":         {"mfgDate", "mfg_date"},
	"expDate":         {"expDate", "exp_date"},
}

type csvRow map[string]string

// pick returns the first non-empty value among the aliases of field.
func (r csvRow) pick(field string) string {
	for _, alias := range headerAliases[field] {
		if v, ok := r[alias]; ok && v != "" {
			return v
		}
	}
	return ""
}

// ImportSalesCSV imports sale transactions from CSV. Every row is coerced
// to type "sale" regardless of what the row declares. Rows fail
// individually without aborting the batch; failures are reported with
// their spreadsheet row number.
func (s *Service) ImportSalesCSV(ctx context.Context, userID id.ID, r io.Reader) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, apperror.NewInvalidInput("Malformed CSV.").WithCause(err)
	}
	if len(records) < 2 {
		return nil, apperror.NewInvalidInput("CSV has no rows.")
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.TrimSpace(h)
	}

	result := &ImportResult{Errors: []ImportError{}}
	for i, record := range records[1:] {
		row := make(csvRow, len(headers))
		for col, header := range headers {
			if col < len(record) {
				row[header] = strings.TrimSpace(record[col])
			}
		}

		in := rowToInput(row)
		// Imports are sales only; declared types are ignored on purpose.
		in.Type = string(TypeSale)

		if _, err := s.Create(ctx, userID, in); err != nil {
			result.ErrorCount++
			result.Errors = append(result.Errors, ImportError{Row: i + 2, Error: err.Error()})
			continue
		}
		result.ImportedCount++
	}

	logger.Info(ctx, "csv import finished",
		"imported", result.ImportedCount,
		"failed", result.ErrorCount,
	)
	return result, nil
}

func rowToInput(row csvRow) Input {
	one := types.NewMoney(1)
	paid := types.ToNumber(row.pick("paidAmount"), types.Zero())
	reminder := row.pick("reminderEnabled") != "0"
	return Input{
		Date:            row.pick("date"),
		EntityID:        row.pick("entityId"),
		ProductID:       row.pick("productId"),
		Type:            strings.ToLower(row.pick("type")),
		Item:            row.pick("item"),
		Qty:             types.ToNumber(row.pick("qty"), one),
		UnitAmount:      types.ToNumber(row.pick("unitAmount"), types.Zero()),
		GSTRate:         types.ToNumber(row.pick("gstRate"), types.Zero()),
		DueDate:         row.pick("dueDate"),
		PaidAmount:      &paid,
		ReminderEnabled: &reminder,
		Note:            row.pick("note"),
		BatchingEnabled: row.pick("batchingEnabled") == "1",
		BatchNo:         row.pick("batchNo"),
		MfgDate:         row.pick("mfgDate"),
		ExpDate:         row.pick("expDate"),
	}
}
