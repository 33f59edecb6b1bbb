package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func created(year, month int) time.Time {
	return time.Date(year, time.Month(month), 20, 10, 0, 0, 0, time.UTC)
}

func TestResolveDate(t *testing.T) {
	tests := []struct {
		name      string
		token     string
		createdAt time.Time
		want      time.Time
	}{
		{
			name:      "january statement pulls december back a year",
			token:     "15-12",
			createdAt: created(2024, 1),
			want:      time.Date(2023, 12, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "january statement pulls november back a year",
			token:     "30-11",
			createdAt: created(2024, 1),
			want:      time.Date(2023, 11, 30, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "january statement keeps june in the creation year",
			token:     "10-06",
			createdAt: created(2024, 1),
			want:      time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "march statement keeps december in the creation year",
			token:     "15-12",
			createdAt: created(2024, 3),
			want:      time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "plain case",
			token:     "03-02",
			createdAt: created(2024, 1),
			want:      time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveDate(tt.token, tt.createdAt)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			// Same inputs, same answer.
			again, err := resolveDate(tt.token, tt.createdAt)
			require.NoError(t, err)
			assert.Equal(t, got, again)
		})
	}
}

func TestResolveDateInvalid(t *testing.T) {
	tokens := []string{
		"31-04", // April has 30 days
		"30-02",
		"29-02", // 2023 is not a leap year
		"00-05",
		"15-13",
		"15-00",
		"1512",
		"ab-cd",
		"15-",
	}

	for _, token := range tokens {
		t.Run(token, func(t *testing.T) {
			_, err := resolveDate(token, created(2023, 6))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidDate)
		})
	}
}

func TestResolveDateLeapDay(t *testing.T) {
	got, err := resolveDate("29-02", created(2024, 3))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), got)
}
