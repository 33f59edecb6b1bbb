package export

import (
	"io"

	"github.com/gocarina/gocsv"

	"github.com/Ed1123/bank-statements/pkg/models"
)

// Row is one exported transaction, one line of the output CSV. Field
// order here is the output column order.
type Row struct {
	Holder      string `csv:"holder"`
	CardLast4   string `csv:"card_last4"`
	Date        string `csv:"date"`
	Description string `csv:"description"`
	Country     string `csv:"country"`
	Amount      string `csv:"amount"`
	Currency    string `csv:"currency"`
}

// FilterFunc selects which operations make it into the export.
type FilterFunc func(h *models.Holder, op models.Operation) bool

// Rows flattens a statement into export rows, preserving document
// order.
func Rows(st *models.Statement, filter FilterFunc) []*Row {
	rows := []*Row{}
	for _, h := range st.Holders {
		for _, op := range h.Operations {
			if filter != nil && !filter(h, op) {
				continue
			}
			rows = append(rows, &Row{
				Holder:      h.Name,
				CardLast4:   h.CardLast4,
				Date:        op.Date.Format("2006-01-02"),
				Description: op.Description,
				Country:     op.Country,
				Amount:      op.Amount.String(),
				Currency:    string(op.Currency),
			})
		}
	}
	return rows
}

// Write renders rows as CSV, header included.
func Write(w io.Writer, rows []*Row) error {
	return gocsv.Marshal(&rows, w)
}
