package parser

import "strings"

// lineKind tags a tokenized line with its structural role.
type lineKind int

const (
	lineIgnored lineKind = iota
	lineHolderHeader
	lineSectionEnd
	lineTransactionRow
)

// classify inspects a tokenized line in priority order: section markers
// first, then the date-shaped second column. Everything else is page
// furniture.
func (p *Parser) classify(fields []string) lineKind {
	if len(fields) == 0 {
		return lineIgnored
	}
	first := strings.TrimLeft(fields[0], " ")
	switch {
	case strings.HasPrefix(first, p.holderMarker):
		return lineHolderHeader
	case strings.HasPrefix(first, p.endMarker):
		return lineSectionEnd
	case isTransactionRow(fields):
		return lineTransactionRow
	}
	return lineIgnored
}

// isTransactionRow matches the dd-mm signature in the second column.
// The fixed offset assumes the day always renders as two digits, which
// holds for every statement seen so far.
func isTransactionRow(fields []string) bool {
	return len(fields) > 4 && len(fields[1]) > 2 && fields[1][2] == '-'
}
