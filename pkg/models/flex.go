package models

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Flex holds a loosely typed JSON scalar. Some backend views return enum
// columns as numbers, others as their names, others as null.
type Flex struct {
	Num *float64
	Str *string
}

// FlexNum wraps a number.
func FlexNum(n float64) Flex { return Flex{Num: &n} }

// FlexStr wraps a string.
func FlexStr(s string) Flex { return Flex{Str: &s} }

// IsNull reports whether the value was absent or null.
func (f Flex) IsNull() bool { return f.Num == nil && f.Str == nil }

func (f *Flex) UnmarshalJSON(b []byte) error {
	*f = Flex{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		f.Str = &s
		return nil
	}
	if bytes.Equal(b, []byte("true")) || bytes.Equal(b, []byte("false")) {
		s := string(b)
		f.Str = &s
		return nil
	}
	n, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return err
	}
	f.Num = &n
	return nil
}

func (f Flex) MarshalJSON() ([]byte, error) {
	switch {
	case f.Num != nil:
		return json.Marshal(*f.Num)
	case f.Str != nil:
		return json.Marshal(*f.Str)
	}
	return []byte("null"), nil
}
