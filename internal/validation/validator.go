// Package validation checks flat form input against rule tags such as
// "required", "numeric" or "min:5". It knows nothing about finance; the
// same rules serve income, expense and category forms.
package validation

import (
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Supported rule tags
const (
	Required = "required"
	Numeric  = "numeric"
	Date     = "date"
	Email    = "email"
	Phone    = "phone"
	UUID     = "uuid"
	Min      = "min"
	Max      = "max"
	In       = "in"
)

// DateLayout is the only accepted date format
const DateLayout = "2006-01-02"

var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9\s\-().]{5,19}$`)

var validate = newEngine()

func newEngine() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if !phonePattern.MatchString(s) {
			return false
		}
		digits := 0
		for _, r := range s {
			if r >= '0' && r <= '9' {
				digits++
			}
		}
		return digits >= 7 && digits <= 15
	})
	return v
}

// Result is the outcome of Validate. Data holds the trimmed input so a
// rejected form can be re-rendered with what the user typed.
type Result struct {
	Valid  bool              `json:"valid"`
	Data   map[string]string `json:"data"`
	Errors map[string]string `json:"errors"`
}

// Validate applies rules to input. Each field gets at most one error: the
// first rule that fails. Optional fields (no "required") that are empty
// skip their remaining rules.
func Validate(input map[string]string, rules map[string][]string) Result {
	res := Result{
		Data:   make(map[string]string, len(input)),
		Errors: map[string]string{},
	}
	for k, v := range input {
		res.Data[k] = strings.TrimSpace(v)
	}

	for field, fieldRules := range rules {
		value := res.Data[field]
		if msg := checkField(field, value, fieldRules); msg != "" {
			res.Errors[field] = msg
		}
	}

	res.Valid = len(res.Errors) == 0
	return res
}

// ParseRules splits a pipe separated rule string: "required|min:5"
func ParseRules(s string) []string {
	var out []string
	for _, part := range strings.Split(s, "|") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func checkField(field, value string, rules []string) string {
	label := Label(field)

	if value == "" {
		for _, r := range rules {
			if r == Required {
				return label + " is required"
			}
		}
		return ""
	}

	for _, rule := range rules {
		name, arg, _ := strings.Cut(rule, ":")
		switch name {
		case Required:
			// value is non-empty here
		case Numeric:
			if validate.Var(value, "numeric") != nil {
				return label + " must be a number"
			}
		case Date:
			if validate.Var(value, "datetime="+DateLayout) != nil {
				return label + " must be a valid date (YYYY-MM-DD)"
			}
		case Email:
			if validate.Var(value, "email") != nil {
				return label + " must be a valid email address"
			}
		case Phone:
			if validate.Var(value, "phone") != nil {
				return label + " must be a valid phone number"
			}
		case UUID:
			if validate.Var(value, "uuid") != nil {
				return label + " is invalid"
			}
		case Min:
			n, err := strconv.Atoi(arg)
			if err != nil {
				log.Printf("validation: bad min rule %q on %s", rule, field)
				continue
			}
			if validate.Var(value, fmt.Sprintf("min=%d", n)) != nil {
				return fmt.Sprintf("%s must be at least %d characters", label, n)
			}
		case Max:
			n, err := strconv.Atoi(arg)
			if err != nil {
				log.Printf("validation: bad max rule %q on %s", rule, field)
				continue
			}
			if validate.Var(value, fmt.Sprintf("max=%d", n)) != nil {
				return fmt.Sprintf("%s must not exceed %d characters", label, n)
			}
		case In:
			options := strings.ReplaceAll(arg, ",", " ")
			if validate.Var(value, "oneof="+options) != nil {
				return label + " has an invalid value"
			}
		default:
			log.Printf("validation: unknown rule %q on %s", rule, field)
		}
	}
	return ""
}

// Label turns a field key into the name used in messages: "donor_email" -> "Donor email"
func Label(field string) string {
	s := strings.ReplaceAll(strings.TrimSuffix(field, "_id"), "_", " ")
	if s == "" {
		return field
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// OneOf renders an "in:" rule from a list of allowed values
func OneOf(values []string) string {
	return In + ":" + strings.Join(values, ",")
}
