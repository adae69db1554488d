package players

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Stat is a numeric field that may be absent in the source data.
// A missing stat is distinct from zero and encodes as JSON null.
type Stat struct {
	Value float64
	Valid bool
}

// Known wraps a present value.
func Known(v float64) Stat {
	return Stat{Value: v, Valid: true}
}

// Missing returns the absent marker.
func Missing() Stat {
	return Stat{}
}

// Float64 returns the value and whether it is present.
func (s Stat) Float64() (float64, bool) {
	return s.Value, s.Valid
}

// String renders the value with one decimal, or "-" when missing.
func (s Stat) String() string {
	if !s.Valid {
		return "-"
	}
	return strconv.FormatFloat(s.Value, 'f', 1, 64)
}

func (s Stat) MarshalJSON() ([]byte, error) {
	if !s.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(s.Value)
}

func (s *Stat) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*s = Missing()
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*s = Known(v)
	return nil
}
