package transport

import (
	"encoding/json"
	"testing"
)

func TestRefValueShapes(t *testing.T) {
	tests := []struct {
		name      string
		payload   string
		requested bool
		wantID    int64
		wantKey   string
	}{
		{"number", `5`, true, 5, ""},
		{"numeric string", `"5"`, true, 5, ""},
		{"documentId string", `"abc123xyz"`, true, 0, "abc123xyz"},
		{"object id", `{"id": 7}`, true, 7, ""},
		{"object documentId", `{"documentId": "abc123xyz"}`, true, 0, "abc123xyz"},
		{"array of number", `[5]`, true, 5, ""},
		{"array of object", `[{"documentId": "abc123xyz"}]`, true, 0, "abc123xyz"},
		{"empty array", `[]`, false, 0, ""},
		{"null", `null`, false, 0, ""},
		{"empty string", `""`, false, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r RefValue
			if err := json.Unmarshal([]byte(tt.payload), &r); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if r.Requested() != tt.requested {
				t.Fatalf("Requested() = %v, want %v", r.Requested(), tt.requested)
			}
			if id, ok := r.ID(); ok && id != tt.wantID {
				t.Errorf("ID() = %d, want %d", id, tt.wantID)
			}
			if key, ok := r.Key(); ok && key != tt.wantKey {
				t.Errorf("Key() = %q, want %q", key, tt.wantKey)
			}
			if tt.wantKey != "" {
				if _, ok := r.Key(); !ok {
					t.Error("want key reference")
				}
			}
			if tt.requested && tt.wantKey == "" {
				if _, ok := r.ID(); !ok {
					t.Error("want id reference")
				}
			}
		})
	}
}

func TestRefValueAbsentField(t *testing.T) {
	var body struct {
		Estado RefValue `json:"estado_servicio"`
	}
	if err := json.Unmarshal([]byte(`{}`), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.Estado.Requested() {
		t.Fatal("absent field must not be a requested reference")
	}
}

func TestRefValueNullIsDistinctFromAbsent(t *testing.T) {
	var r RefValue
	if err := json.Unmarshal([]byte(`null`), &r); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if r.Requested() {
		t.Fatal("null must not be a requested reference")
	}
	if !r.IsNull() {
		t.Fatal("literal null must be remembered as a disconnect")
	}

	for _, payload := range []string{`[]`, `""`} {
		var empty RefValue
		if err := json.Unmarshal([]byte(payload), &empty); err != nil {
			t.Fatalf("unmarshal %s: %v", payload, err)
		}
		if empty.IsNull() {
			t.Errorf("payload %s must read as not requested, not as null", payload)
		}
	}
}

func TestRefValueGarbage(t *testing.T) {
	for _, payload := range []string{`true`, `{"nombre": "x"}`, `[true]`, `1.5`} {
		var r RefValue
		if err := json.Unmarshal([]byte(payload), &r); err == nil {
			t.Errorf("payload %s must not decode", payload)
		}
	}
}
