package dom

import (
	"errors"
	"fmt"
	"strings"

	"xamlport/internal/common"
)

// Severity represents the severity level of a diagnostic.
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
		return common.UnknownStr
	}
}

// Diagnostic represents a single finding reported during a conversion.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity Severity
	// Code is a stable identifier for this type of finding, for example
	// "unsupported-condition".
	Code string
	// Message is the human-readable description.
	Message string
	// File names the source document, empty for document-independent
	// findings.
	File string
	// Line and Column locate the finding in the source, 0 when the node
	// was synthesized and carries no anchor.
	Line   int
	Column int
}

// String returns the finding in compiler style:
// file:line:col: severity: [code] message.
func (d Diagnostic) String() string {
	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	loc := d.File
	if d.Line > 0 {
		loc = fmt.Sprintf("%s:%d:%d", d.File, d.Line, d.Column)
	}

	if loc != "" {
		return fmt.Sprintf("%s: %s: %s", loc, d.Severity, msg)
	}

	return fmt.Sprintf("%s: %s", d.Severity, msg)
}

// Sink receives diagnostics as stages produce them. *Diagnostics is the
// canonical implementation.
type Sink interface {
	Report(Diagnostic)
}

// Diagnostics collects every finding of a run, bucketed by severity.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Report files the diagnostic under its severity bucket.
func (d *Diagnostics) Report(diag Diagnostic) {
	switch diag.Severity {
	case SeverityError:
		d.Errors = append(d.Errors, diag)
	case SeverityWarning:
		d.Warnings = append(d.Warnings, diag)
	default:
		d.Infos = append(d.Infos, diag)
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message string) {
	d.Report(Diagnostic{Severity: SeverityError, Code: code, Message: message})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message string) {
	d.Report(Diagnostic{Severity: SeverityWarning, Code: code, Message: message})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message string) {
	d.Report(Diagnostic{Severity: SeverityInfo, Code: code, Message: message})
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// HasWarnings returns true if there are any warning diagnostics.
func (d *Diagnostics) HasWarnings() bool {
	return len(d.Warnings) > 0
}

// Len returns the total number of collected diagnostics.
func (d *Diagnostics) Len() int {
	return len(d.Errors) + len(d.Warnings) + len(d.Infos)
}

// All returns every diagnostic, errors first, then warnings, then
// infos.
func (d *Diagnostics) All() []Diagnostic {
	out := make([]Diagnostic, 0, d.Len())
	out = append(out, d.Errors...)
	out = append(out, d.Warnings...)
	out = append(out, d.Infos...)

	return out
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// Error returns a combined error from all error diagnostics, or nil if
// there are none.
func (d *Diagnostics) Error() error {
	if !d.HasErrors() {
		return nil
	}

	var parts []string
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}
