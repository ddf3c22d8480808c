// Package flexnum holds numeric types that accept either JSON numbers or numeric strings.
// The editor client historically posts geometry read from input elements as strings.
package flexnum

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

type Float float64

var (
	_ json.Unmarshaler = (*Float)(nil)
	_ json.Marshaler   = Float(0)
)

func (f *Float) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*f = 0
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return errors.Errorf("flexnum: %q is not a number", s)
		}
		*f = Float(v)
		return nil
	}

	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return errors.Errorf("flexnum: %s is not a number", data)
	}
	*f = Float(v)
	return nil
}

func (f Float) MarshalJSON() ([]byte, error) {
	return strconv.AppendFloat(nil, float64(f), 'f', -1, 64), nil
}

func (f Float) Float64() float64 {
	return float64(f)
}

// Ptr converts an optional Float into an optional float64.
func Ptr(f *Float) *float64 {
	if f == nil {
		return nil
	}
	v := float64(*f)
	return &v
}

// Bool accepts true/false as well as "true"/"false"/"1"/"0" and numbers.
type Bool bool

var _ json.Unmarshaler = (*Bool)(nil)

func (b *Bool) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	s := strings.Trim(string(data), `"`)
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "null", "false", "0":
		*b = false
	case "true", "1":
		*b = true
	default:
		return errors.Errorf("flexnum: %s is not a boolean", data)
	}
	return nil
}
