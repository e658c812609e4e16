package domain

import "strings"

// NotePatch is the guarded form of a submitted nota_operador value.
type NotePatch struct {
	Set   bool
	Clear bool
	Value string
}

// GuardNote normalizes an operator note patch. A nil input leaves the
// column untouched, a blank or whitespace-only note clears it, anything
// else is stored trimmed.
func GuardNote(raw *string) NotePatch {
	if raw == nil {
		return NotePatch{}
	}
	trimmed := strings.TrimSpace(*raw)
	if trimmed == "" {
		return NotePatch{Clear: true}
	}
	return NotePatch{Set: true, Value: trimmed}
}
