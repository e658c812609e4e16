package domain

import (
	"testing"
	"time"

	"github.com/Pepee912/GasLPNew/internal/rbac"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		raw    string
		want   StatusKind
		wantOK bool
	}{
		{"Programado", KindProgramado, true},
		{"  surtido  ", KindSurtido, true},
		{"ASIGNADO", KindAsignado, true},
		{"cancelado", KindCancelado, true},
		{"entregado", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseKind(tt.raw)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseKind(%q) = %q, %v; want %q, %v", tt.raw, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestCanTransition(t *testing.T) {
	kinds := []StatusKind{KindProgramado, KindAsignado, KindSurtido, KindCancelado}

	for _, k := range kinds {
		if !CanTransition(rbac.RoleAdministrador, k) {
			t.Errorf("administrador must reach %s", k)
		}
		if !CanTransition(rbac.RoleCallCenter, k) {
			t.Errorf("callcenter must reach %s", k)
		}
	}

	for _, k := range kinds {
		want := k == KindSurtido
		if got := CanTransition(rbac.RoleOperador, k); got != want {
			t.Errorf("operador to %s = %v, want %v", k, got, want)
		}
	}

	for _, role := range []rbac.Role{rbac.RoleUnauthenticated, rbac.RoleUnknown} {
		for _, k := range kinds {
			if CanTransition(role, k) {
				t.Errorf("role %s must not reach %s", role, k)
			}
		}
	}
}

func TestCanLeaveCancelado(t *testing.T) {
	// No terminal state: back office can pull a service out of Cancelado.
	if !CanTransition(rbac.RoleCallCenter, KindAsignado) {
		t.Fatal("callcenter must be able to reassign a cancelled service")
	}
}

func TestEffectsSurtido(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)

	e := Effects(KindSurtido, nil, nil, now)
	if e.FechaSurtido == nil || !e.FechaSurtido.Equal(now) {
		t.Fatalf("fecha_surtido = %v, want %v", e.FechaSurtido, now)
	}
	if !e.ClearCancelado || e.FechaCancelado != nil {
		t.Fatal("surtido must clear fecha_cancelado")
	}

	supplied := now.Add(-2 * time.Hour)
	e = Effects(KindSurtido, &supplied, nil, now)
	if e.FechaSurtido == nil || !e.FechaSurtido.Equal(supplied) {
		t.Fatalf("supplied delivery time ignored: %v", e.FechaSurtido)
	}
}

func TestEffectsCancelado(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)

	e := Effects(KindCancelado, nil, nil, now)
	if e.FechaCancelado == nil || !e.FechaCancelado.Equal(now) {
		t.Fatalf("fecha_cancelado = %v, want %v", e.FechaCancelado, now)
	}
	if !e.ClearSurtido || e.FechaSurtido != nil {
		t.Fatal("cancelado must clear fecha_surtido")
	}

	supplied := now.Add(-48 * time.Hour)
	e = Effects(KindCancelado, nil, &supplied, now)
	if e.FechaCancelado == nil || !e.FechaCancelado.Equal(supplied) {
		t.Fatalf("supplied cancellation time ignored: %v", e.FechaCancelado)
	}
	if !e.ClearSurtido {
		t.Fatal("backdated cancellation must still clear fecha_surtido")
	}
}

func TestEffectsNonEventKindsClearBoth(t *testing.T) {
	now := time.Now()
	for _, k := range []StatusKind{KindProgramado, KindAsignado} {
		e := Effects(k, nil, nil, now)
		if e.FechaSurtido != nil || e.FechaCancelado != nil {
			t.Errorf("%s must not stamp dates", k)
		}
		if !e.ClearSurtido || !e.ClearCancelado {
			t.Errorf("%s must clear both dates", k)
		}
	}
}

func TestEffectsIdempotent(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)
	supplied := now.Add(-time.Hour)

	first := Effects(KindSurtido, &supplied, nil, now)
	second := Effects(KindSurtido, &supplied, nil, now)
	if !first.FechaSurtido.Equal(*second.FechaSurtido) ||
		first.ClearCancelado != second.ClearCancelado {
		t.Fatal("re-applying the same transition must yield the same effects")
	}
}

func TestInitialKind(t *testing.T) {
	if InitialKind(true) != KindAsignado {
		t.Error("service with ruta must start Asignado")
	}
	if InitialKind(false) != KindProgramado {
		t.Error("service without ruta must start Programado")
	}
}

func TestOperadorMaySee(t *testing.T) {
	if OperadorMaySee(KindProgramado) {
		t.Error("Programado must be invisible to operators")
	}
	for _, k := range []StatusKind{KindAsignado, KindSurtido, KindCancelado} {
		if !OperadorMaySee(k) {
			t.Errorf("%s must be visible to operators", k)
		}
	}
}

func TestDayWindows(t *testing.T) {
	loc, err := time.LoadLocation("America/Mexico_City")
	if err != nil {
		t.Skip("tzdata unavailable")
	}
	now := time.Date(2026, 3, 10, 23, 45, 0, 0, loc)

	today := Today(now)
	if !today.From.Equal(time.Date(2026, 3, 10, 0, 0, 0, 0, loc)) {
		t.Fatalf("today from = %v", today.From)
	}
	if !today.Contains(now) {
		t.Fatal("today window must contain now")
	}
	if today.Contains(today.To) {
		t.Fatal("window upper bound is exclusive")
	}

	yesterday := Yesterday(now)
	if !yesterday.To.Equal(today.From) {
		t.Fatal("yesterday must end where today starts")
	}
	if yesterday.Contains(now) {
		t.Fatal("yesterday must not contain now")
	}
}

func TestOnDate(t *testing.T) {
	w, err := OnDate("2026-03-10", time.UTC)
	if err != nil {
		t.Fatalf("OnDate: %v", err)
	}
	if !w.Contains(time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)) {
		t.Fatal("date window must contain its noon")
	}
	if w.Contains(time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)) {
		t.Fatal("date window must exclude next midnight")
	}

	if _, err := OnDate("10/03/2026", time.UTC); err == nil {
		t.Fatal("malformed date must error")
	}
}

func TestGuardNote(t *testing.T) {
	if p := GuardNote(nil); p.Set || p.Clear {
		t.Error("nil note must leave the column untouched")
	}

	blank := "   "
	if p := GuardNote(&blank); !p.Clear || p.Set {
		t.Error("blank note must clear the column")
	}

	padded := "  tanque dañado  "
	p := GuardNote(&padded)
	if !p.Set || p.Value != "tanque dañado" {
		t.Errorf("note not trimmed: %+v", p)
	}
}
