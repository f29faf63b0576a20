package mood

import (
	"encoding/json"
	"maps"
)

// TimestampField is the only caller field the gateway reads, as a sort key.
const TimestampField = "timestamp"

// Entry is a stored mood document: the caller's fields plus the id the store assigned.
type Entry struct {
	ID     string
	Fields map[string]any
}

// MarshalJSON flattens the fields and sets "id" to the store-assigned id,
// overriding any caller-supplied "id" field.
func (e Entry) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(e.Fields)+1)
	maps.Copy(out, e.Fields)
	out["id"] = e.ID
	return json.Marshal(out)
}
