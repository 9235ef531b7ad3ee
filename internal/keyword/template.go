package keyword

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// ErrArgumentCount is returned when a template references more positional
// arguments than the call supplied
var ErrArgumentCount = errors.New("argument count mismatch")

// Fields resolves named template references against a card record
type Fields interface {
	Lookup(name string) (string, bool)
}

// ArgumentCountError reports a positional slot with no argument behind it
type ArgumentCountError struct {
	Keyword string
	Slot    int
	Have    int
}

func (e *ArgumentCountError) Error() string {
	return fmt.Sprintf("keyword %q references {arg%d} but was called with %d argument(s)", e.Keyword, e.Slot, e.Have)
}

func (e *ArgumentCountError) Unwrap() error {
	return ErrArgumentCount
}

var placeholderPattern = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)\}`)
var argPattern = regexp.MustCompile(`^arg([0-9]+)$`)

// Substitute fills {argN} slots from args and {field} slots from fields.
// Fields that cannot be resolved are left untouched so a later pass can fill
// them in; missing positional arguments are an error.
func Substitute(keyword, template string, args []string, fields Fields) (string, error) {
	var err error
	out := placeholderPattern.ReplaceAllStringFunc(template, func(ref string) string {
		if err != nil {
			return ref
		}
		name := ref[1 : len(ref)-1]

		if m := argPattern.FindStringSubmatch(name); m != nil {
			slot, _ := strconv.Atoi(m[1])
			if slot >= len(args) {
				err = &ArgumentCountError{Keyword: keyword, Slot: slot, Have: len(args)}
				return ref
			}
			return args[slot]
		}

		if fields != nil {
			if v, ok := fields.Lookup(name); ok {
				return v
			}
		}
		return ref
	})
	if err != nil {
		return "", err
	}
	return out, nil
}

// Expand substitutes the display template and, when reminder is set, the
// reminder template
func (d Definition) Expand(args []string, fields Fields, reminder bool) (display, reminderText string, err error) {
	display, err = Substitute(d.Name, d.Display, args, fields)
	if err != nil {
		return "", "", err
	}
	if !reminder {
		return display, "", nil
	}
	reminderText, err = Substitute(d.Name, d.Reminder, args, fields)
	if err != nil {
		return "", "", err
	}
	return display, reminderText, nil
}
