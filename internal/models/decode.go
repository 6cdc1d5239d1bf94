package models

import (
	"encoding/json"
	"log/slog"
	"strings"
)

// FlexString decodes a JSON string or a bare number, such as a stat cell that
// upstream sometimes sends as 18 instead of "18". Objects and arrays decode
// to the empty string.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	switch {
	case s == "" || s == "null":
		*f = ""
	case strings.HasPrefix(s, `"`):
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*f = FlexString(v)
	case strings.HasPrefix(s, "{") || strings.HasPrefix(s, "["):
		*f = ""
	default:
		*f = FlexString(s)
	}
	return nil
}

func (f FlexString) String() string { return string(f) }

// decodeEach decodes every element on its own. Elements that fail to decode
// are logged and dropped so one bad record never loses its siblings.
func decodeEach[T any](raw []json.RawMessage, kind string) []T {
	if raw == nil {
		return nil
	}
	out := make([]T, 0, len(raw))
	for i, msg := range raw {
		var v T
		if err := json.Unmarshal(msg, &v); err != nil {
			slog.Warn("Skipping undecodable record", "kind", kind, "index", i, "error", err)
			continue
		}
		out = append(out, v)
	}
	return out
}
