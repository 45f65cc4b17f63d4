package form

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/iancoleman/strcase"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return strcase.ToLowerCamel(fld.Name)
		}
		return name
	})
	if err := v.RegisterValidation("minnum", minNumber); err != nil {
		panic(err)
	}
	return v
}

// Validate checks v against its `validate` tags and returns a message per
// failing field, keyed by its dotted form path (e.g. "address.street").
func Validate(v any) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"": err.Error()}
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		key := fe.Namespace()
		if _, rest, ok := strings.Cut(key, "."); ok {
			key = rest
		}
		if _, dup := out[key]; !dup {
			out[key] = message(fe)
		}
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "campo obrigatório"
	case "min":
		return fmt.Sprintf("mínimo de %s caracteres", fe.Param())
	case "email":
		return "e-mail inválido"
	case "oneof":
		return "opção inválida"
	case "minnum":
		return fmt.Sprintf("valor mínimo %s", fe.Param())
	}
	return "valor inválido"
}

var leadingFloat = regexp.MustCompile(`^[+-]?(Infinity|(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?)`)

// parseLeadingFloat reads the numeric prefix of s; ok is false when s has
// none.
func parseLeadingFloat(s string) (float64, bool) {
	m := leadingFloat.FindString(strings.TrimLeft(s, " \t\n\r\f\v"))
	if m == "" {
		return 0, false
	}
	switch strings.TrimLeft(m, "+") {
	case "Infinity":
		return posInf, true
	case "-Infinity":
		return -posInf, true
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return f, true
}

var posInf = math.Inf(1)

// minNumber implements `minnum=N` for text inputs holding numbers. Empty
// or non-numeric text passes; `required` covers presence.
func minNumber(fl validator.FieldLevel) bool {
	min, err := strconv.ParseFloat(fl.Param(), 64)
	if err != nil {
		return false
	}
	field := fl.Field()
	switch field.Kind() {
	case reflect.String:
		s := field.String()
		if s == "" {
			return true
		}
		f, ok := parseLeadingFloat(s)
		if !ok {
			return true
		}
		return f >= min
	case reflect.Float32, reflect.Float64:
		return field.Float() >= min
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(field.Int()) >= min
	}
	return false
}

func joinFields(m map[string]string) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + " " + m[k]
	}
	return strings.Join(parts, "; ")
}
