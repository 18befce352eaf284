package server

import (
	"errors"
	"net/http"

	"github.com/lox/holdem-equity/internal/deck"
	"github.com/lox/holdem-equity/internal/equity"
	"github.com/lox/holdem-equity/internal/evaluator"
	"github.com/lox/holdem-equity/internal/ranges"
)

// Error codes sent to clients
const (
	CodeParseError     = "parse_error"
	CodeDuplicateCard  = "duplicate_card"
	CodeUnknownRange   = "unknown_range"
	CodeInvalidRequest = "invalid_request"
	CodeUnknownType    = "unknown_message_type"
	CodeInternal       = "internal_error"
)

// classify maps an error to a client error code and HTTP status
func classify(err error) (string, int) {
	var (
		parseErr     *deck.ParseError
		duplicateErr *deck.DuplicateCardError
		unknownErr   *ranges.UnknownRangeError
		shortErr     *deck.InsufficientCardsError
	)

	switch {
	case errors.As(err, &parseErr):
		return CodeParseError, http.StatusBadRequest
	case errors.As(err, &duplicateErr):
		return CodeDuplicateCard, http.StatusBadRequest
	case errors.As(err, &unknownErr):
		return CodeUnknownRange, http.StatusBadRequest
	case errors.As(err, &shortErr),
		errors.Is(err, evaluator.ErrTooManyCards),
		errors.Is(err, equity.ErrInvalidRequest):
		return CodeInvalidRequest, http.StatusBadRequest
	default:
		return CodeInternal, http.StatusInternalServerError
	}
}
