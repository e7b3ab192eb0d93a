package validator

import (
	"regexp"
	"slices"
	"time"
)

var (
	// PhoneRX matches Indian mobile numbers with an optional +91 prefix.
	PhoneRX = regexp.MustCompile(`^(\+91[\-\s]?)?[6-9]\d{9}$`)
	// ClockRX matches 24h HH:MM.
	ClockRX = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
)

const DateLayout = "2006-01-02"

// Validator collects field errors. A field keeps only its first error.
type Validator struct {
	Errors map[string]string
}

func New() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

// Valid returns true if the errors map doesn't contain any entries.
func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError adds an error message to the map (so long as no entry already exists for the given key).
func (v *Validator) AddError(key, message string) {
	if _, exists := v.Errors[key]; !exists {
		v.Errors[key] = message
	}
}

// Check adds an error message to the map only if a validation check is not 'ok'.
func (v *Validator) Check(ok bool, key, message string) {
	if !ok {
		v.AddError(key, message)
	}
}

// PermittedValue returns true if a specific value is in a list of permitted values.
func PermittedValue[T comparable](value T, permittedValues ...T) bool {
	return slices.Contains(permittedValues, value)
}

// Matches returns true if a string value matches a specific regexp pattern.
func Matches(value string, rx *regexp.Regexp) bool {
	return rx.MatchString(value)
}

// IsDate reports whether value is a calendar date in YYYY-MM-DD form.
func IsDate(value string) bool {
	_, err := time.Parse(DateLayout, value)
	return err == nil
}
