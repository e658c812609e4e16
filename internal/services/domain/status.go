// Package domain holds the pure rules of the service engine: status
// kinds, the transition table, date side effects, visibility scoping and
// the mutation guard. Nothing here touches the database or HTTP.
package domain

import "strings"

// StatusKind is the behavioral category of an estado de servicio. The
// catalog may hold several display rows per kind; the engine only reasons
// about the kind.
type StatusKind string

const (
	// KindProgramado is a scheduled service not yet dispatched to a route.
	KindProgramado StatusKind = "Programado"
	// KindAsignado is a service dispatched to a route.
	KindAsignado StatusKind = "Asignado"
	// KindSurtido is a delivered service.
	KindSurtido StatusKind = "Surtido"
	// KindCancelado is a cancelled service. Not terminal: back office may
	// move a service out of it again.
	KindCancelado StatusKind = "Cancelado"
)

// ParseKind normalizes a raw kind name. Matching is case-insensitive
// after trimming; an unmatched name yields ok=false.
func ParseKind(raw string) (StatusKind, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "programado":
		return KindProgramado, true
	case "asignado":
		return KindAsignado, true
	case "surtido":
		return KindSurtido, true
	case "cancelado":
		return KindCancelado, true
	default:
		return "", false
	}
}

// String returns the canonical kind name.
func (k StatusKind) String() string { return string(k) }
