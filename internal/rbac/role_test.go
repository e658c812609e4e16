package rbac

import (
	"testing"

	"github.com/google/uuid"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		raw           string
		authenticated bool
		want          Role
	}{
		{"administrador", true, RoleAdministrador},
		{"Administrador", true, RoleAdministrador},
		{"ADMINISTRADOR", true, RoleAdministrador},
		{"callcenter", true, RoleCallCenter},
		{"CallCenter", true, RoleCallCenter},
		{"operador", true, RoleOperador},
		{"  operador  ", true, RoleOperador},
		{"supervisor", true, RoleUnknown},
		{"admin", true, RoleUnknown},
		{"", true, RoleUnauthenticated},
		{"administrador", false, RoleUnauthenticated},
		{"", false, RoleUnauthenticated},
	}

	for _, tc := range cases {
		if got := Classify(tc.raw, tc.authenticated); got != tc.want {
			t.Errorf("Classify(%q, %v) = %v, want %v", tc.raw, tc.authenticated, got, tc.want)
		}
	}
}

func TestUnknownRoleGetsLeastPrivilege(t *testing.T) {
	caller := NewCaller(uuid.New(), "supervisor", true)

	if caller.Role != RoleUnknown {
		t.Fatalf("expected RoleUnknown, got %v", caller.Role)
	}
	if caller.IsPrivileged() {
		t.Error("unknown role must not be privileged")
	}
	if caller.IsBackOffice() || caller.IsOperador() {
		t.Error("unknown role must not match any privileged role")
	}
	if caller.RawRole != "supervisor" {
		t.Errorf("raw role must be preserved for auditing, got %q", caller.RawRole)
	}
}

func TestBackOfficePredicates(t *testing.T) {
	admin := NewCaller(uuid.New(), "administrador", true)
	cc := NewCaller(uuid.New(), "callcenter", true)
	op := NewCaller(uuid.New(), "operador", true)

	if !admin.IsBackOffice() || !cc.IsBackOffice() {
		t.Error("administrador and callcenter are back office roles")
	}
	if op.IsBackOffice() {
		t.Error("operador is not a back office role")
	}
	if !op.IsOperador() || !op.IsPrivileged() {
		t.Error("operador is privileged field personnel")
	}
}
