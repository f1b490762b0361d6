package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Year is an optional calendar year. Clients send it as a number, a numeric
// string, null or "" (the last two mean unset).
type Year struct {
	Value *int
}

func YearOf(v *int) Year {
	return Year{Value: v}
}

func (y *Year) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		y.Value = nil
		return nil
	}

	raw := string(b)
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
		if raw == "" {
			y.Value = nil
			return nil
		}
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("invalid year %q", raw)
	}
	n := int(f)
	if float64(n) != f {
		return fmt.Errorf("invalid year %q", raw)
	}
	y.Value = &n
	return nil
}

func (y Year) MarshalJSON() ([]byte, error) {
	if y.Value == nil {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(*y.Value)), nil
}
