package validator

import (
	"fmt"
	"strings"

	"github.com/aymerick/douceur/parser"

	"github.com/arcanaland/manaforge/internal/card"
	"github.com/arcanaland/manaforge/internal/deck"
	"github.com/arcanaland/manaforge/internal/pipeline"
)

type ValidationResults struct {
	Errors   []string
	Warnings []string
}

// Valid reports whether no errors were found
func (r ValidationResults) Valid() bool {
	return len(r.Errors) == 0
}

type Validator struct {
	Deck     *deck.Deck
	Pipeline *pipeline.Pipeline
	Results  ValidationResults
}

// NewValidator creates a validator. A nil pipeline uses the default one.
func NewValidator(d *deck.Deck, p *pipeline.Pipeline) *Validator {
	if p == nil {
		p = pipeline.Default()
	}
	return &Validator{
		Deck:     d,
		Pipeline: p,
		Results:  ValidationResults{},
	}
}

func (v *Validator) Validate() (ValidationResults, error) {
	if v.Deck == nil {
		return v.Results, fmt.Errorf("no deck to validate")
	}

	v.validateDeck()
	v.validateFields()
	v.validateDuplicates()
	v.validateRender()

	return v.Results, nil
}

func (v *Validator) errorf(format string, args ...any) {
	v.Results.Errors = append(v.Results.Errors, fmt.Sprintf(format, args...))
}

func (v *Validator) warnf(format string, args ...any) {
	v.Results.Warnings = append(v.Results.Warnings, fmt.Sprintf(format, args...))
}

// label names a card in messages by index and, when present, name
func label(i int, c card.Record) string {
	if name := c.String(card.RawName); name != "" {
		return fmt.Sprintf("card %d (%s)", i+1, name)
	}
	return fmt.Sprintf("card %d", i+1)
}

func (v *Validator) validateDeck() {
	if cfg := v.Deck.Config(); cfg == nil || cfg.Deck.Name == "" {
		v.warnf("deck.name is not set, using %q", v.Deck.Name)
	}
	if len(v.Deck.Cards) == 0 {
		v.errorf("deck has no cards")
	}
}

// validateFields checks the input contract of each raw card
func (v *Validator) validateFields() {
	for i, c := range v.Deck.Cards {
		for _, field := range []string{card.RawName, card.RawText, card.RawCost} {
			if !c.Has(field) {
				v.errorf("%s: %s is required", label(i, c), field)
			}
		}
		if c.String(card.RawType) == "" {
			v.warnf("%s: type is not set, typeline will only show flags", label(i, c))
		}
	}
}

// validateDuplicates checks that card names are unique, ignoring case
func (v *Validator) validateDuplicates() {
	seen := make(map[string]int)
	for i, c := range v.Deck.Cards {
		name := strings.ToLower(strings.TrimSpace(c.String(card.RawName)))
		if name == "" {
			continue
		}
		if first, ok := seen[name]; ok {
			v.warnf("%s: duplicate name, first used by card %d", label(i, c), first+1)
			continue
		}
		seen[name] = i
	}
}

// validateRender runs every card through the pipeline
func (v *Validator) validateRender() {
	for i, c := range v.Deck.Cards {
		r, err := v.Pipeline.Run(c)
		if err != nil {
			v.errorf("%s: %s", label(i, c), describe(err))
			continue
		}

		for _, name := range r.Strings(card.MarkupUnknown) {
			v.warnf("%s: unknown keyword %q", label(i, c), name)
		}

		decl := "background: " + r.String(card.CostGradient) + ";"
		if _, err := parser.ParseDeclarations(decl); err != nil {
			v.warnf("%s: gradient is not valid CSS: %v", label(i, c), err)
		}
	}
}

// describe drops the card name already given by label
func describe(err error) string {
	if cardErr, ok := err.(*pipeline.CardError); ok {
		return fmt.Sprintf("[%s] %s stage: %v", cardErr.Code, cardErr.Stage, cardErr.Err)
	}
	return err.Error()
}
