package parser

import "errors"

// Any of these aborts the whole document parse. Callers test the class
// with errors.Is; the wrapped message carries the offending line or
// token.
var (
	ErrMissingCreationDate   = errors.New("statement has no creation date")
	ErrMalformedHolderHeader = errors.New("malformed holder header")
	ErrRowBeforeHolder       = errors.New("transaction row before any holder section")
	ErrRowShape              = errors.New("invalid row shape")
	ErrAmountColumns         = errors.New("ambiguous or missing amount")
	ErrInvalidDate           = errors.New("invalid operation date")
)
