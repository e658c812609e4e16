// Package transport defines the services module's wire types. The
// reference shapes here absorb every format the mobile clients send so
// the rest of the engine only ever sees a normalized reference.
package transport

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/Pepee912/GasLPNew/platform/apperr"
)

// RefValue is a relation reference as supplied on the wire: a number, a
// numeric string, an opaque documentId string, an object carrying id or
// documentId, or a one-element array of any of those. An absent field
// or an empty array means the reference was not requested. An explicit
// null is also not a request but is remembered separately: for nullable
// relations it means disconnect.
//
// A raw string that fully parses as an integer is treated as a numeric
// id, never as a documentId.
type RefValue struct {
	requested bool
	null      bool
	byKey     bool
	id        int64
	key       string
}

// RefByID builds a numeric reference. Used by tests and the quick
// intake flow.
func RefByID(id int64) RefValue {
	return RefValue{requested: true, id: id}
}

// RefByKey builds a documentId reference.
func RefByKey(key string) RefValue {
	return RefValue{requested: true, byKey: true, key: key}
}

// RefNull builds an explicit-null reference, as `"ruta": null` decodes.
func RefNull() RefValue {
	return RefValue{null: true}
}

// Requested reports whether the caller supplied a usable reference.
func (r RefValue) Requested() bool { return r.requested }

// IsNull reports whether the caller sent a literal null. Only nullable
// relations act on it; everywhere else it reads as not requested.
func (r RefValue) IsNull() bool { return r.null }

// ID returns the numeric id and whether the reference is numeric.
func (r RefValue) ID() (int64, bool) {
	return r.id, r.requested && !r.byKey
}

// Key returns the documentId and whether the reference is by key.
func (r RefValue) Key() (string, bool) {
	return r.key, r.requested && r.byKey
}

// UnmarshalJSON implements the tagged-union decoding described above.
func (r *RefValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		*r = RefValue{}
		return nil
	}
	if bytes.Equal(data, []byte("null")) {
		*r = RefNull()
		return nil
	}

	switch data[0] {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return apperr.BadRequest("malformed reference array")
		}
		if len(items) == 0 {
			*r = RefValue{}
			return nil
		}
		// Connect semantics: only the first element matters.
		return r.UnmarshalJSON(items[0])

	case '{':
		var obj struct {
			ID         *json.Number `json:"id"`
			DocumentID *string      `json:"documentId"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return apperr.BadRequest("malformed reference object")
		}
		if obj.ID != nil {
			id, err := strconv.ParseInt(obj.ID.String(), 10, 64)
			if err != nil {
				return apperr.BadRequest("reference id is not an integer")
			}
			*r = RefByID(id)
			return nil
		}
		if obj.DocumentID != nil && *obj.DocumentID != "" {
			*r = RefByKey(*obj.DocumentID)
			return nil
		}
		return apperr.BadRequest("reference object needs id or documentId")

	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return apperr.BadRequest("malformed reference string")
		}
		if s == "" {
			*r = RefValue{}
			return nil
		}
		if id, err := strconv.ParseInt(s, 10, 64); err == nil {
			*r = RefByID(id)
			return nil
		}
		*r = RefByKey(s)
		return nil

	default:
		id, err := strconv.ParseInt(string(data), 10, 64)
		if err != nil {
			return apperr.BadRequest("malformed reference")
		}
		*r = RefByID(id)
		return nil
	}
}

// MarshalJSON renders the normalized reference for debugging payloads.
func (r RefValue) MarshalJSON() ([]byte, error) {
	if !r.requested {
		return []byte("null"), nil
	}
	if r.byKey {
		return json.Marshal(r.key)
	}
	return json.Marshal(r.id)
}
