package main

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Ed1123/bank-statements/pkg/export"
	"github.com/Ed1123/bank-statements/pkg/models"
)

type filters struct {
	startDate string
	endDate   string
	minAmount float64
	maxAmount float64
	currency  string
	holder    string
}

func (f *filters) toFilterFunc() export.FilterFunc {
	return func(h *models.Holder, op models.Operation) bool {
		if f.startDate != "" {
			start, err := time.Parse("2006-01-02", f.startDate)
			if err == nil && op.Date.Before(start) {
				return false
			}
		}
		if f.endDate != "" {
			end, err := time.Parse("2006-01-02", f.endDate)
			if err == nil && op.Date.After(end) {
				return false
			}
		}
		if f.minAmount != 0 && op.Amount.LessThan(decimal.NewFromFloat(f.minAmount)) {
			return false
		}
		if f.maxAmount != 0 && op.Amount.GreaterThan(decimal.NewFromFloat(f.maxAmount)) {
			return false
		}
		if f.currency != "" && !strings.EqualFold(string(op.Currency), f.currency) {
			return false
		}
		if f.holder != "" && !strings.Contains(strings.ToLower(h.Name), strings.ToLower(f.holder)) {
			return false
		}
		return true
	}
}
