package parser

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// resolveDate turns a dd-mm token into an absolute date, taking the
// year from the statement creation timestamp. A statement generated in
// January can still list November and December rows from the previous
// billing cycle; those get the prior year. No other combination is
// adjusted.
func resolveDate(token string, createdAt time.Time) (time.Time, error) {
	dayStr, monthStr, ok := strings.Cut(token, "-")
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, token)
	}
	day, err := strconv.Atoi(dayStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, token)
	}
	month, err := strconv.Atoi(monthStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, token)
	}
	if month < 1 || month > 12 || day < 1 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, token)
	}

	year := createdAt.Year()
	if createdAt.Month() == time.January && (month == 11 || month == 12) {
		year--
	}

	// time.Date normalizes overflow (Feb 30 becomes Mar 2), so a
	// round-trip check catches impossible day/month combinations.
	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if date.Day() != day || date.Month() != time.Month(month) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, token)
	}
	return date, nil
}
