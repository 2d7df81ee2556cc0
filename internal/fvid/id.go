// Package fvid provides the shared Filevine identifier type. The API wraps
// identifiers as {"native": 123, "partner": "..."} objects, occasionally as
// bare numbers or numeric strings; this package owns decoding those shapes so
// config, client, and mirror code share a single representation.
//
// This is a leaf package with zero external dependencies beyond stdlib.
package fvid

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// ID is a native Filevine identifier (project, org, user, folder, or
// document). Native ids are positive; the zero value represents an absent
// identifier, such as the parent of a root folder.
type ID int64

// Parse converts CLI or environment input into an ID. Only positive
// integers are accepted.
func Parse(s string) (ID, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("fvid: invalid id %q: %w", s, err)
	}

	if n <= 0 {
		return 0, fmt.Errorf("fvid: id must be positive, got %d", n)
	}

	return ID(n), nil
}

// IsZero reports whether the ID is absent.
func (id ID) IsZero() bool {
	return id == 0
}

// Int64 returns the native value.
func (id ID) Int64() int64 {
	return int64(id)
}

// String returns the decimal form used in URLs and request headers.
func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// idEnvelope mirrors the API's identifier wrapper object. Either field may
// be absent; native is preferred when both are present.
type idEnvelope struct {
	Native  json.RawMessage `json:"native"`
	Partner json.RawMessage `json:"partner"`
}

// UnmarshalJSON accepts the wrapper object form ({"native": 123}), a bare
// number, or a numeric string. JSON null and empty wrappers decode to the
// zero ID. A wrapper with no native id falls back to the partner id when it
// is numeric.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = 0
		return nil
	}

	if data[0] == '{' {
		var env idEnvelope
		if err := json.Unmarshal(data, &env); err != nil {
			return fmt.Errorf("fvid: decoding id wrapper: %w", err)
		}

		if scalar := pickScalar(env); scalar != nil {
			return id.UnmarshalJSON(scalar)
		}

		*id = 0

		return nil
	}

	n, err := decodeScalar(data)
	if err != nil {
		return err
	}

	*id = ID(n)

	return nil
}

// MarshalJSON emits the bare native number, not the wrapper object.
func (id ID) MarshalJSON() ([]byte, error) {
	return strconv.AppendInt(nil, int64(id), 10), nil
}

// pickScalar chooses the native value when present and non-null, otherwise
// the partner value. Returns nil when the wrapper carries neither.
func pickScalar(env idEnvelope) json.RawMessage {
	if len(env.Native) > 0 && !bytes.Equal(env.Native, []byte("null")) {
		return env.Native
	}

	if len(env.Partner) > 0 && !bytes.Equal(env.Partner, []byte("null")) {
		return env.Partner
	}

	return nil
}

// decodeScalar parses a JSON number or numeric string into int64. Sloppy
// encoders sometimes emit integral floats (123.0); those are accepted, but
// fractional values and non-numeric strings are errors.
func decodeScalar(data []byte) (int64, error) {
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return 0, fmt.Errorf("fvid: decoding id string: %w", err)
		}

		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("fvid: non-numeric id %q", s)
		}

		return n, nil
	}

	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return 0, fmt.Errorf("fvid: decoding id: %w", err)
	}

	if n, err := num.Int64(); err == nil {
		return n, nil
	}

	f, err := num.Float64()
	if err != nil {
		return 0, fmt.Errorf("fvid: decoding id %q: %w", num.String(), err)
	}

	if f != math.Trunc(f) {
		return 0, fmt.Errorf("fvid: fractional id %q", num.String())
	}

	// float64 cannot represent MaxInt64 exactly; the constant rounds up to
	// 2^63, so >= also rejects that edge. MinInt64 is exact.
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, fmt.Errorf("fvid: id %q out of range", num.String())
	}

	return int64(f), nil
}

// Compile-time interface assertions.
var (
	_ json.Marshaler   = ID(0)
	_ json.Unmarshaler = (*ID)(nil)
	_ fmt.Stringer     = ID(0)
)
