// Darkwatch - Maritime Dark Vessel Detection and Evidence Sealing
// Copyright 2026 Seafence Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/seafence/darkwatch

package forensics

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/goccy/go-json"
)

// CanonicalEncode serializes v into canonical JSON bytes: object keys
// sorted ascending, no incidental whitespace, UTF-8 output, numeric
// literals emitted exactly as produced by the initial marshal. The
// result is a stable function of v's logical content, independent of
// struct field declaration order.
//
// This is the byte form fed to the evidence data hash; any change
// here invalidates previously sealed bundles.
func CanonicalEncode(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("canonical encode: marshal: %w", err)
	}

	// Re-decode into generic form with numbers kept as literals, then
	// re-emit with a fixed key order.
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var decoded any
	if err := dec.Decode(&decoded); err != nil {
		return nil, fmt.Errorf("canonical encode: decode: %w", err)
	}

	var buf bytes.Buffer
	if err := writeCanonical(&buf, decoded); err != nil {
		return nil, fmt.Errorf("canonical encode: %w", err)
	}
	return buf.Bytes(), nil
}

func writeCanonical(buf *bytes.Buffer, v any) error {
	switch val := v.(type) {
	case nil:
		buf.WriteString("null")
	case bool:
		if val {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case json.Number:
		buf.WriteString(val.String())
	case string:
		escaped, err := json.Marshal(val)
		if err != nil {
			return fmt.Errorf("escape string: %w", err)
		}
		buf.Write(escaped)
	case []any:
		buf.WriteByte('[')
		for i, item := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeCanonical(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			escaped, err := json.Marshal(k)
			if err != nil {
				return fmt.Errorf("escape key %q: %w", k, err)
			}
			buf.Write(escaped)
			buf.WriteByte(':')
			if err := writeCanonical(buf, val[k]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("unsupported value type %T", v)
	}
	return nil
}
