package parser

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Ed1123/bank-statements/pkg/models"
)

// amountPlaceholder marks an empty currency column.
const amountPlaceholder = "---"

// parseAmount returns nil for the placeholder, the parsed value
// otherwise. Thousands separators are stripped before parsing.
func parseAmount(s string) (*decimal.Decimal, error) {
	if s == amountPlaceholder {
		return nil, nil
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// decodeRow builds an Operation from a classified transaction row.
// Rows carry six columns when the operation has a country and five when
// it does not; exactly one of the two trailing amount columns must be
// populated, and which one it is fixes the currency.
func decodeRow(fields []string, createdAt time.Time) (models.Operation, error) {
	var op models.Operation

	var dateTok, desc, country, localStr, foreignStr string
	switch len(fields) {
	case 6:
		dateTok, desc, country = fields[1], fields[2], fields[3]
		localStr, foreignStr = fields[4], fields[5]
	case 5:
		dateTok, desc = fields[1], fields[2]
		localStr, foreignStr = fields[3], fields[4]
	default:
		return op, fmt.Errorf("%w: %d fields in %q", ErrRowShape, len(fields), strings.Join(fields, " | "))
	}

	local, err := parseAmount(localStr)
	if err != nil {
		return op, fmt.Errorf("%w: local column %q", ErrAmountColumns, localStr)
	}
	foreign, err := parseAmount(foreignStr)
	if err != nil {
		return op, fmt.Errorf("%w: foreign column %q", ErrAmountColumns, foreignStr)
	}

	switch {
	case local != nil && foreign == nil:
		op.Amount, op.Currency = *local, models.PEN
	case local == nil && foreign != nil:
		op.Amount, op.Currency = *foreign, models.USD
	default:
		return op, fmt.Errorf("%w: columns %q / %q", ErrAmountColumns, localStr, foreignStr)
	}

	date, err := resolveDate(dateTok, createdAt)
	if err != nil {
		return op, err
	}

	op.Date = date
	op.Description = desc
	op.Country = country
	return op, nil
}
