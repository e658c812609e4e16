package domain

import (
	"time"

	"github.com/Pepee912/GasLPNew/internal/rbac"
)

// CanTransition reports whether the role may move a service into the
// target kind. There is no terminal state: back office may leave any
// kind, including Cancelado. Field operators may only mark delivery.
func CanTransition(role rbac.Role, target StatusKind) bool {
	switch role {
	case rbac.RoleAdministrador, rbac.RoleCallCenter:
		return true
	case rbac.RoleOperador:
		return target == KindSurtido
	default:
		return false
	}
}

// DateEffects are the timestamp side effects of landing on a status kind.
// A nil pointer with its Clear flag set means the column is NULLed; a nil
// pointer without the flag leaves the column untouched.
type DateEffects struct {
	FechaSurtido   *time.Time
	ClearSurtido   bool
	FechaCancelado *time.Time
	ClearCancelado bool
}

// Effects computes the date side effects of a transition into target.
// The supplied pointers, when non-nil, override the stamped time for
// their kind: the operator app sends the on-site delivery time, back
// office may backdate a cancellation. The result only depends on the
// target kind, so re-applying the same transition is idempotent up to
// the stamped clock reading.
func Effects(target StatusKind, suppliedSurtido, suppliedCancelado *time.Time, now time.Time) DateEffects {
	switch target {
	case KindSurtido:
		at := now
		if suppliedSurtido != nil {
			at = *suppliedSurtido
		}
		return DateEffects{FechaSurtido: &at, ClearCancelado: true}
	case KindCancelado:
		at := now
		if suppliedCancelado != nil {
			at = *suppliedCancelado
		}
		return DateEffects{FechaCancelado: &at, ClearSurtido: true}
	default:
		return DateEffects{ClearSurtido: true, ClearCancelado: true}
	}
}

// InitialKind is the status kind a freshly created service lands on:
// Asignado when it is already dispatched to a route, Programado otherwise.
func InitialKind(hasRoute bool) StatusKind {
	if hasRoute {
		return KindAsignado
	}
	return KindProgramado
}
