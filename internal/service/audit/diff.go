package audit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
)

// Snapshot converts an entity into its JSON object form. Structs are encoded
// through their json tags, so the snapshot matches what the entity looks like
// on the wire. A nil value yields a nil snapshot.
func Snapshot(v any) (map[string]any, error) {
	if v == nil {
		return nil, nil
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil, nil
	}

	var raw []byte
	switch t := v.(type) {
	case json.RawMessage:
		raw = t
	case []byte:
		raw = t
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode snapshot: %w", err)
		}
		raw = b
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var out map[string]any
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if out == nil {
		return nil, nil
	}
	return out, nil
}

// ChangedFields returns, in sorted order, every key whose value differs
// between old and new. A key present on one side only counts as changed.
func ChangedFields(oldValues, newValues map[string]any) []string {
	changed := make([]string, 0)
	for k, ov := range oldValues {
		nv, ok := newValues[k]
		if !ok || !reflect.DeepEqual(ov, nv) {
			changed = append(changed, k)
		}
	}
	for k := range newValues {
		if _, ok := oldValues[k]; !ok {
			changed = append(changed, k)
		}
	}
	sort.Strings(changed)
	return changed
}
