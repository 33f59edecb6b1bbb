package parser

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Ed1123/bank-statements/pkg/models"
)

// Grammar literals for the BBVA credit card statement layout.
const (
	DefaultHolderMarker = "DETALLE DE OPERACIONES"
	DefaultEndMarker    = "LIMITE MENSUAL"

	// Holder name (two or more words), a dash, the card's last four
	// digits. The two capture groups are name and digits.
	DefaultHolderPattern = `^(\S+(?: \S+)+) - (\d{4})$`
)

// Parser turns the layout-preserved page text of one statement into a
// Statement. It holds no per-document state; a single Parser can be
// shared across goroutines.
type Parser struct {
	logger       *log.Logger
	holderMarker string
	endMarker    string
	holderRe     *regexp.Regexp
}

// Option adjusts the statement grammar, for layout variants.
type Option func(*Parser)

// WithMarkers overrides the section marker literals.
func WithMarkers(holder, end string) Option {
	return func(p *Parser) {
		p.holderMarker = holder
		p.endMarker = end
	}
}

// WithHolderPattern overrides the holder header pattern. The pattern
// must keep two capture groups: the holder name, then the card digits.
func WithHolderPattern(re *regexp.Regexp) Option {
	return func(p *Parser) {
		p.holderRe = re
	}
}

func New(logger *log.Logger, opts ...Option) *Parser {
	p := &Parser{
		logger:       logger,
		holderMarker: DefaultHolderMarker,
		endMarker:    DefaultEndMarker,
		holderRe:     regexp.MustCompile(DefaultHolderPattern),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// sectionState tracks where the assembler is relative to the cardholder
// sections of the document.
type sectionState int

const (
	seeking   sectionState = iota // before the first holder header
	inSection                     // a holder is open and accepting rows
	closed                        // the end marker was reached
)

// Parse walks every line of every page once and assembles the
// statement. Pages must be in document order with column gaps preserved
// as multi-space runs. Any decode failure aborts the whole document;
// there is no partial result.
func (p *Parser) Parse(pages []string, createdAt time.Time) (*models.Statement, error) {
	if createdAt.IsZero() {
		return nil, ErrMissingCreationDate
	}

	st := &models.Statement{CreatedAt: createdAt}
	state := seeking
	var current *models.Holder

scan:
	for _, page := range pages {
		for _, line := range strings.Split(page, "\n") {
			fields := splitFields(line)
			switch p.classify(fields) {
			case lineHolderHeader:
				holder, err := p.decodeHolderHeader(fields)
				if err != nil {
					return nil, err
				}
				st.Holders = append(st.Holders, holder)
				current = holder
				state = inSection
				p.logger.Debug("opened holder section", "name", holder.Name, "card", holder.CardLast4)

			case lineTransactionRow:
				if state != inSection {
					return nil, fmt.Errorf("%w: %q", ErrRowBeforeHolder, line)
				}
				op, err := decodeRow(fields, createdAt)
				if err != nil {
					return nil, err
				}
				current.Operations = append(current.Operations, op)

			case lineSectionEnd:
				state = closed
			}

			if state == closed {
				break scan
			}
		}
	}

	// Reaching end of input without the end marker is fine; some
	// document variants simply omit it.
	p.logger.Debug("parsed statement", "holders", len(st.Holders), "operations", st.Operations())
	return st, nil
}

// decodeHolderHeader recovers the holder name and card digits from the
// second column of a header line.
func (p *Parser) decodeHolderHeader(fields []string) (*models.Holder, error) {
	if len(fields) < 2 {
		return nil, fmt.Errorf("%w: %q", ErrMalformedHolderHeader, strings.Join(fields, " | "))
	}
	m := p.holderRe.FindStringSubmatch(fields[1])
	if m == nil {
		return nil, fmt.Errorf("%w: %q", ErrMalformedHolderHeader, fields[1])
	}
	return &models.Holder{Name: m[1], CardLast4: m[2]}, nil
}
