package validation

import (
	"errors"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/hbjsyndicate/syndicate-api/internal/models"

	"github.com/go-playground/validator/v10"
)

// Messages returned to the form, one per violated rule.
const (
	MsgFirstName = "First name must be at least 2 characters long"
	MsgLastName  = "Last name must be at least 2 characters long"
	MsgEmail     = "Please provide a valid email address"
	MsgMessage   = "Message must be at least 10 characters long"
	MsgService   = "Please select a service"
)

// ruleOrder fixes the order in which violations are reported.
var ruleOrder = []struct {
	field   string
	message string
}{
	{"FirstName", MsgFirstName},
	{"LastName", MsgLastName},
	{"Email", MsgEmail},
	{"Message", MsgMessage},
	{"Service", MsgService},
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// New returns a validator with the contact form rules registered.
func New() *validator.Validate {
	v := validator.New()
	RegisterValidators(v)
	return v
}

// RegisterValidators registers custom validators
func RegisterValidators(v *validator.Validate) {
	v.RegisterValidation("trimmed_min", validateTrimmedMin)
	v.RegisterValidation("tld", validateTLD)
}

func defaultValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = New()
	})
	return validate
}

// validateTrimmedMin checks the rune count of the trimmed field against the tag param
func validateTrimmedMin(fl validator.FieldLevel) bool {
	min, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return utf8.RuneCountInString(strings.TrimSpace(fl.Field().String())) >= min
}

// validateTLD requires a dotted domain with a top level label of at least two characters
func validateTLD(fl validator.FieldLevel) bool {
	addr := fl.Field().String()
	at := strings.LastIndex(addr, "@")
	if at < 0 {
		return false
	}
	domain := addr[at+1:]
	dot := strings.LastIndex(domain, ".")
	if dot <= 0 {
		return false
	}
	return len(domain)-dot-1 >= 2
}

// ValidateSubmission evaluates every rule and returns the violated rule
// messages. An empty, non-nil slice means the submission is valid.
func ValidateSubmission(s models.Submission) []string {
	return ValidateWith(defaultValidator(), s)
}

// ValidateWith is ValidateSubmission with an explicit validator instance.
func ValidateWith(v *validator.Validate, s models.Submission) []string {
	errs := make([]string, 0)

	err := v.Struct(s)
	if err == nil {
		return errs
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// Not a field failure (e.g. InvalidValidationError); nothing can pass.
		for _, r := range ruleOrder {
			errs = append(errs, r.message)
		}
		return errs
	}

	failed := make(map[string]bool, len(verrs))
	for _, fe := range verrs {
		failed[fe.StructField()] = true
	}
	for _, r := range ruleOrder {
		if failed[r.field] {
			errs = append(errs, r.message)
		}
	}
	return errs
}

// HasRequiredFields is the lightweight guard the form runs before attempting
// a submission: every required field must be non-empty.
func HasRequiredFields(s models.Submission) bool {
	return s.FirstName != "" &&
		s.LastName != "" &&
		s.Email != "" &&
		s.Message != "" &&
		s.Service != ""
}
