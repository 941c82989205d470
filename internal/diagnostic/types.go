package diagnostic

import (
	"errors"
	"fmt"
	"iter"
	"strconv"
	"strings"
)

// Code identifies the kind of problem.
type Code string

const (
	CodeUnknownKey      Code = "unknown_key"
	CodeDuplicateKey    Code = "duplicate_key"
	CodeMissingRequired Code = "missing_required"
	CodeDefaultApplied  Code = "default_applied"
)

// Severity orders diagnostics from informational to fatal.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Diagnostic is one finding tied to a key and, when known, a source position.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Key      string
	Line     int // zero when unknown
	Column   int
}

// String formats the diagnostic as `position "key": [code] message`.
func (d Diagnostic) String() string {
	var b strings.Builder

	if d.Line > 0 {
		fmt.Fprintf(&b, "line %d, column %d", d.Line, d.Column)
	}

	if d.Key != "" {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}

		b.WriteString(strconv.Quote(d.Key))
	}

	if b.Len() > 0 {
		b.WriteString(": ")
	}

	if d.Code != "" {
		fmt.Fprintf(&b, "[%s] ", d.Code)
	}

	b.WriteString(d.Message)

	return b.String()
}

// Diagnostics accumulates findings for one mapping. The zero value is ready to use.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code Code, message, key string, line, column int) {
	d.Errors = append(d.Errors, Diagnostic{SeverityError, code, message, key, line, column})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code Code, message, key string, line, column int) {
	d.Warnings = append(d.Warnings, Diagnostic{SeverityWarning, code, message, key, line, column})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code Code, message, key string, line, column int) {
	d.Infos = append(d.Infos, Diagnostic{SeverityInfo, code, message, key, line, column})
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Notes yields warnings then infos.
func (d *Diagnostics) Notes() iter.Seq[Diagnostic] {
	return func(yield func(Diagnostic) bool) {
		for _, group := range [][]Diagnostic{d.Warnings, d.Infos} {
			for _, n := range group {
				if !yield(n) {
					return
				}
			}
		}
	}
}

// Error joins all error diagnostics into one error, or returns nil when there are none.
func (d *Diagnostics) Error() error {
	if !d.HasErrors() {
		return nil
	}

	parts := make([]string, 0, len(d.Errors))
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}
