package dnstree

import "fmt"

// InvalidDomainError reports a malformed label at domain construction.
type InvalidDomainError struct {
	Label  string
	Reason string
}

func (e *InvalidDomainError) Error() string {
	return fmt.Sprintf("invalid domain label %q: %s", e.Label, e.Reason)
}

// MergeConflictError reports two sources disagreeing on the value of a
// single-valued record type at the same name.
type MergeConflictError struct {
	Domain string
	Type   string
	A, B   Record
}

func (e *MergeConflictError) Error() string {
	return fmt.Sprintf("conflicting %s records at %s: %q vs %q", e.Type, e.Domain, e.A, e.B)
}

// NoEnclosingZoneError reports a record or include declared where no zone
// exists to own it.
type NoEnclosingZoneError struct {
	Domain string
	Type   string
	File   string
}

func (e *NoEnclosingZoneError) Error() string {
	what := e.Type + " record"
	if e.File != "" {
		what = fmt.Sprintf("$INCLUDE %q", e.File)
	}
	return fmt.Sprintf("%s at %s has no enclosing zone", what, e.Domain)
}
