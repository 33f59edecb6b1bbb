package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Currency identifies which amount column of the statement a value was
// drawn from.
type Currency string

const (
	PEN Currency = "PEN" // local column, soles
	USD Currency = "USD" // foreign column, dollars
)

// Operation is a single transaction row within a cardholder section.
type Operation struct {
	Date        time.Time
	Description string
	Country     string // empty when the row carried no country column
	Amount      decimal.Decimal
	Currency    Currency
}

// Holder groups the operations of one cardholder section, in document
// order.
type Holder struct {
	Name       string
	CardLast4  string
	Operations []Operation
}

// Statement is a fully parsed document: cardholder sections in document
// order plus the creation timestamp taken from the PDF metadata.
type Statement struct {
	Holders   []*Holder
	CreatedAt time.Time
}

// Operations returns the total operation count across all holders.
func (s *Statement) Operations() int {
	var n int
	for _, h := range s.Holders {
		n += len(h.Operations)
	}
	return n
}
