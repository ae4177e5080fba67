package ingest

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"collections-risk-backend/internal/models"
)

// Semantic customer fields a header can map onto.
const (
	FieldName              = "name"
	FieldEmail             = "email"
	FieldPhone             = "phone"
	FieldOutstandingAmount = "outstanding_amount"
	FieldDaysOverdue       = "days_overdue"
)

var fieldOrder = []string{FieldName, FieldEmail, FieldPhone, FieldOutstandingAmount, FieldDaysOverdue}

// Limits of the stored columns: amounts are numeric(14,2), days an int32.
const (
	amountPlaces   = 2
	maxDaysOverdue = math.MaxInt32
)

var (
	amountLimit = decimal.New(1, 12)
	daysLimit   = decimal.NewFromInt(maxDaysOverdue)
)

// MappedRow is a customer candidate built from one data row. Defaulted
// lists the numeric fields whose cell could not be parsed and were zeroed.
type MappedRow struct {
	Index     int
	Customer  models.Customer
	Defaulted []string
}

// FieldsFor returns every semantic field a header maps to. A header may map
// to several fields; "days_overdue" matches both "days" and "overdue" but
// only one field.
func FieldsFor(header string) []string {
	h := strings.ToLower(strings.TrimSpace(header))
	var fields []string
	if strings.Contains(h, "name") {
		fields = append(fields, FieldName)
	}
	if strings.Contains(h, "email") {
		fields = append(fields, FieldEmail)
	}
	if strings.Contains(h, "phone") {
		fields = append(fields, FieldPhone)
	}
	if strings.Contains(h, "amount") || strings.Contains(h, "outstanding") {
		fields = append(fields, FieldOutstandingAmount)
	}
	if strings.Contains(h, "overdue") || strings.Contains(h, "days") {
		fields = append(fields, FieldDaysOverdue)
	}
	return fields
}

// MapRow assigns row cells to customer fields by header substring. Columns
// are visited in header order and a later match overwrites an earlier one.
func MapRow(headers []string, row Row, ownerID uuid.UUID) MappedRow {
	m := MappedRow{
		Index: row.Index,
		Customer: models.Customer{
			OwnerID:           ownerID,
			OutstandingAmount: decimal.Zero,
		},
	}
	defaulted := map[string]bool{}

	for i, header := range headers {
		if i >= len(row.Cells) {
			break
		}
		value := strings.TrimSpace(row.Cells[i])
		for _, field := range FieldsFor(header) {
			switch field {
			case FieldName:
				m.Customer.Name = value
			case FieldEmail:
				m.Customer.Email = optional(value)
			case FieldPhone:
				m.Customer.Phone = optional(value)
			case FieldOutstandingAmount:
				amount, ok := parseAmount(value)
				m.Customer.OutstandingAmount = amount
				defaulted[field] = !ok
			case FieldDaysOverdue:
				days, ok := parseDays(value)
				m.Customer.DaysOverdue = days
				defaulted[field] = !ok
			}
		}
	}

	if m.Customer.Name == "" {
		m.Customer.Name = fmt.Sprintf("Customer %d", row.Index)
	}
	for _, field := range fieldOrder {
		if defaulted[field] {
			m.Defaulted = append(m.Defaulted, field)
		}
	}
	return m
}

// HeaderWarnings reports ambiguous or missing column mappings. It never
// changes how rows are mapped.
func HeaderWarnings(headers []string) []string {
	columns := map[string][]string{}
	for _, h := range headers {
		for _, field := range FieldsFor(h) {
			columns[field] = append(columns[field], h)
		}
	}

	var warnings []string
	for _, field := range fieldOrder {
		cols := columns[field]
		switch {
		case len(cols) == 0:
			warnings = append(warnings, fmt.Sprintf("no column maps to %s", field))
		case len(cols) > 1:
			warnings = append(warnings, fmt.Sprintf("columns %s all map to %s; last column wins",
				strings.Join(cols, ", "), field))
		}
	}
	return warnings
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

// parseAmount rounds to cents before anything is scored, so the score and
// the stored value agree. Values the column cannot hold are unparsable.
func parseAmount(v string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(v)
	if err != nil || d.IsNegative() {
		return decimal.Zero, false
	}
	d = d.Round(amountPlaces)
	if d.GreaterThanOrEqual(amountLimit) {
		return decimal.Zero, false
	}
	return d, true
}

func parseDays(v string) (int, bool) {
	if n, err := strconv.Atoi(v); err == nil {
		if n < 0 || n > maxDaysOverdue {
			return 0, false
		}
		return n, true
	}
	d, err := decimal.NewFromString(v)
	if err != nil || d.IsNegative() || d.Truncate(0).GreaterThan(daysLimit) {
		return 0, false
	}
	return int(d.IntPart()), true
}
