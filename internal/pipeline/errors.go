package pipeline

import (
	"errors"
	"fmt"

	"github.com/arcanaland/manaforge/internal/card"
	"github.com/arcanaland/manaforge/internal/keyword"
	"github.com/arcanaland/manaforge/internal/mana"
	"github.com/arcanaland/manaforge/internal/markup"
)

// ErrorCode is a stable identifier for a card failure
type ErrorCode string

const (
	ErrMalformedCost    ErrorCode = "MALFORMED_COST"
	ErrUnmatchedBracket ErrorCode = "UNMATCHED_BRACKET"
	ErrArgumentCount    ErrorCode = "ARGUMENT_COUNT"
	ErrUnresolvedField  ErrorCode = "UNRESOLVED_FIELD"
	ErrInternal         ErrorCode = "INTERNAL"
)

// CardError reports a failure of one stage on one card
type CardError struct {
	Card  string
	Stage string
	Code  ErrorCode
	Err   error
}

func (e *CardError) Error() string {
	name := e.Card
	if name == "" {
		name = "<unnamed>"
	}
	return fmt.Sprintf("[%s] %s: %s stage: %v", e.Code, name, e.Stage, e.Err)
}

func (e *CardError) Unwrap() error {
	return e.Err
}

// CodeOf classifies an error from any stage
func CodeOf(err error) ErrorCode {
	var cardErr *CardError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &cardErr):
		return cardErr.Code
	case errors.Is(err, mana.ErrMalformedCost):
		return ErrMalformedCost
	case errors.Is(err, markup.ErrUnmatchedBracket):
		return ErrUnmatchedBracket
	case errors.Is(err, keyword.ErrArgumentCount):
		return ErrArgumentCount
	case errors.Is(err, card.ErrUnresolvedField):
		return ErrUnresolvedField
	}
	return ErrInternal
}
