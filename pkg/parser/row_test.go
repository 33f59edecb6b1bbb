package parser

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ed1123/bank-statements/pkg/models"
)

func januaryStatement() time.Time {
	return time.Date(2024, 1, 20, 9, 30, 0, 0, time.UTC)
}

func TestDecodeRowWithCountry(t *testing.T) {
	op, err := decodeRow([]string{"", "15-12", "SUPERMARKET ABC", "LIMA", "---", "42.50"}, januaryStatement())
	require.NoError(t, err)

	assert.Equal(t, time.Date(2023, 12, 15, 0, 0, 0, 0, time.UTC), op.Date)
	assert.Equal(t, "SUPERMARKET ABC", op.Description)
	assert.Equal(t, "LIMA", op.Country)
	assert.True(t, op.Amount.Equal(decimal.RequireFromString("42.50")), "amount = %s", op.Amount)
	assert.Equal(t, models.USD, op.Currency)
}

func TestDecodeRowWithoutCountry(t *testing.T) {
	op, err := decodeRow([]string{"", "03-02", "PHARMACY XYZ", "150.00", "---"}, januaryStatement())
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC), op.Date)
	assert.Equal(t, "PHARMACY XYZ", op.Description)
	assert.Empty(t, op.Country)
	assert.True(t, op.Amount.Equal(decimal.RequireFromString("150.00")), "amount = %s", op.Amount)
	assert.Equal(t, models.PEN, op.Currency)
}

func TestDecodeRowThousandsSeparator(t *testing.T) {
	op, err := decodeRow([]string{"", "05-03", "TRAVEL AGENCY", "1,250.75", "---"}, januaryStatement())
	require.NoError(t, err)
	assert.True(t, op.Amount.Equal(decimal.RequireFromString("1250.75")), "amount = %s", op.Amount)
	assert.Equal(t, models.PEN, op.Currency)
}

func TestDecodeRowAmountColumnErrors(t *testing.T) {
	tests := []struct {
		name   string
		fields []string
	}{
		{
			name:   "both columns populated",
			fields: []string{"", "15-12", "SHOP", "10.00", "42.50"},
		},
		{
			name:   "both columns empty",
			fields: []string{"", "15-12", "SHOP", "---", "---"},
		},
		{
			name:   "non numeric local column",
			fields: []string{"", "15-12", "SHOP", "n/a", "---"},
		},
		{
			name:   "non numeric foreign column",
			fields: []string{"", "15-12", "SHOP", "LIMA", "---", "42,5x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeRow(tt.fields, januaryStatement())
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrAmountColumns)
		})
	}
}

func TestDecodeRowShapeErrors(t *testing.T) {
	for _, fields := range [][]string{
		{"", "15-12", "SHOP", "42.50"},
		{"", "15-12", "SHOP", "LIMA", "EXTRA", "---", "42.50"},
		{},
	} {
		_, err := decodeRow(fields, januaryStatement())
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrRowShape)
	}
}

func TestDecodeRowBadDate(t *testing.T) {
	_, err := decodeRow([]string{"", "31-04", "SHOP", "42.50", "---"}, januaryStatement())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidDate)
}
