package cfg

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"
)

// Cell placeholders and boolean labels shown in grids.
const (
	EmptyCell = "-"
	Yes       = "Sim"
	No        = "Não"
)

// FormatCell renders a grid cell: null and empty strings become "-",
// booleans become Sim/Não, anything else its string form.
func FormatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return EmptyCell
	case string:
		if x == "" {
			return EmptyCell
		}
		return x
	case bool:
		if x {
			return Yes
		}
		return No
	}
	return Stringify(v)
}

// Stringify converts a decoded JSON value to text the same way the
// backend's web client does, so ids and cells match across clients.
func Stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return FormatNumber(x)
	case float32:
		return FormatNumber(float64(x))
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case json.Number:
		if f, err := x.Float64(); err == nil {
			return FormatNumber(f)
		}
		return x.String()
	case []any:
		parts := make([]string, len(x))
		for i, e := range x {
			if e != nil {
				parts[i] = Stringify(e)
			}
		}
		return strings.Join(parts, ",")
	case map[string]any:
		return "[object Object]"
	}
	return fmt.Sprint(v)
}

// FormatNumber prints f like a JavaScript number: integral values without
// a fraction, exponent notation only below 1e-6 or from 1e21 up.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		mant, exp, _ := strings.Cut(s, "e")
		sign := exp[:1]
		digits := strings.TrimLeft(exp[1:], "0")
		if digits == "" {
			digits = "0"
		}
		return mant + "e" + sign + digits
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

var decimalLiteral = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// ParseNumber reads s with JavaScript Number() rules: surrounding
// whitespace is ignored, an empty string is 0, 0x/0o/0b prefixes are
// accepted and anything else unparsable is NaN.
func ParseNumber(s string) float64 {
	t := strings.TrimSpace(s)
	switch t {
	case "":
		return 0
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}
	if len(t) > 2 && t[0] == '0' {
		base := 0
		switch t[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			return parseRadix(t[2:], base)
		}
	}
	if !decimalLiteral.MatchString(t) {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(t, 64)
	if err != nil {
		// out of range: f already holds ±Inf or 0
		if errors.Is(err, strconv.ErrRange) {
			return f
		}
		return math.NaN()
	}
	return f
}

func parseRadix(digits string, base int) float64 {
	if digits == "" || strings.ContainsAny(digits, "_+-") {
		return math.NaN()
	}
	if n, err := strconv.ParseUint(digits, base, 64); err == nil {
		return float64(n)
	}
	b, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return math.NaN()
	}
	f, _ := new(big.Float).SetInt(b).Float64()
	return f
}

// ToNumber parses operator input that may use a comma as decimal
// separator. Non-finite results yield fallback.
func ToNumber(s string, fallback float64) float64 {
	f := ParseNumber(strings.Replace(s, ",", ".", 1))
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fallback
	}
	return f
}

// ToNullableNumber is ToNumber for optional fields: an empty or
// unparsable value is nil.
func ToNullableNumber(s string) *float64 {
	if s == "" {
		return nil
	}
	f := ToNumber(s, math.NaN())
	if math.IsNaN(f) {
		return nil
	}
	return &f
}

// DisplayNumber renders an optional number for a form field.
func DisplayNumber(f *float64) string {
	if f == nil {
		return ""
	}
	return FormatNumber(*f)
}
