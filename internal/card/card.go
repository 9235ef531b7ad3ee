package card

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// ErrUnresolvedField is returned by Format for a {field} reference that the
// record cannot satisfy
var ErrUnresolvedField = errors.New("unresolved field")

// Record is a card as a field mapping, built up stage by stage. Values are
// string, bool, []string or HTML; stages may also keep typed values (such as
// a parsed cost) for later stages to read.
type Record map[string]any

// HTML is a string that is already safe to insert into a page
type HTML string

var fieldPattern = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// FromMap normalizes decoded input into a record: numbers become strings,
// lists become []string and nil values are dropped
func FromMap(m map[string]any) Record {
	r := make(Record, len(m))
	for k, v := range m {
		if v == nil {
			continue
		}
		r[k] = normalize(v)
	}
	return r
}

func normalize(v any) any {
	switch v := v.(type) {
	case string, bool, HTML:
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []string:
		return append([]string(nil), v...)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if item == nil {
				continue
			}
			out = append(out, fmt.Sprint(normalize(item)))
		}
		return out
	}
	return fmt.Sprint(v)
}

// Prefixed returns a copy with every key namespaced by prefix
func (r Record) Prefixed(prefix string) Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[prefix+k] = v
	}
	return out
}

// Clone returns a copy that shares no lists with r
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		if list, ok := v.([]string); ok {
			v = append([]string(nil), list...)
		}
		out[k] = v
	}
	return out
}

// Keys returns the field names in sorted order
func (r Record) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// String returns a text or HTML field, or "" when absent
func (r Record) String(key string) string {
	switch v := r[key].(type) {
	case string:
		return v
	case HTML:
		return string(v)
	}
	return ""
}

// Bool returns a flag. Strings such as "TRUE" or "1" count as set.
func (r Record) Bool(key string) bool {
	switch v := r[key].(type) {
	case bool:
		return v
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		return err == nil && b
	}
	return false
}

// Strings returns a list field; a plain string is a one-element list
func (r Record) Strings(key string) []string {
	switch v := r[key].(type) {
	case []string:
		return v
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	}
	return nil
}

// Has reports whether key is set
func (r Record) Has(key string) bool {
	_, ok := r[key]
	return ok
}

// Lookup returns the plain-text form of a field for template substitution.
// HTML fields are not reported; they are inserted by Format once markup
// has been rendered.
func (r Record) Lookup(name string) (string, bool) {
	switch v := r[name].(type) {
	case string:
		return v, true
	case []string:
		return strings.Join(v, " "), true
	case bool:
		return strconv.FormatBool(v), true
	}
	return "", false
}

// Format replaces {field} references in an HTML string. HTML values are
// inserted as-is, everything else is escaped.
func (r Record) Format(s string) (string, error) {
	var err error
	out := fieldPattern.ReplaceAllStringFunc(s, func(ref string) string {
		if err != nil {
			return ref
		}
		name := ref[1 : len(ref)-1]
		v, ok := r[name]
		if !ok {
			err = fmt.Errorf("%w: %s", ErrUnresolvedField, ref)
			return ref
		}
		switch v := v.(type) {
		case HTML:
			return string(v)
		case string:
			return html.EscapeString(v)
		case []string:
			return html.EscapeString(strings.Join(v, " "))
		case bool:
			return strconv.FormatBool(v)
		}
		return html.EscapeString(fmt.Sprint(v))
	})
	if err != nil {
		return "", err
	}
	return out, nil
}

// Export returns the fields a page layer can consume (text, flags, lists and
// HTML as plain strings), leaving out stage-internal values
func (r Record) Export() map[string]any {
	out := make(map[string]any, len(r))
	for k, v := range r {
		switch v := v.(type) {
		case string, bool:
			out[k] = v
		case HTML:
			out[k] = string(v)
		case []string:
			out[k] = append([]string{}, v...)
		}
	}
	return out
}
