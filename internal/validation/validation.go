package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("not_blank", NotBlank)
	_ = v.RegisterValidation("age", ValidAge)
	return v
}

// Credentials is what the login form submits.
type Credentials struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

// Signup is what the signup form submits.
type Signup struct {
	Name            string `validate:"required,not_blank,min=2"`
	Email           string `validate:"required,email"`
	Password        string `validate:"required,min=6"`
	ConfirmPassword string `validate:"required,eqfield=Password"`
}

// ProfileFields is what the profile form submits.
type ProfileFields struct {
	FirstName string `validate:"required,not_blank,max=50"`
	LastName  string `validate:"max=50"`
	Email     string `validate:"required,email"`
	Age       string `validate:"age"`
}

// TaskTitle is what the add-task form submits.
type TaskTitle struct {
	Title string `validate:"required,not_blank,max=200"`
}

// NotBlank rejects strings made only of whitespace.
func NotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// ValidAge accepts an empty string or a whole number from 1 to 150.
func ValidAge(fl validator.FieldLevel) bool {
	val := strings.TrimSpace(fl.Field().String())
	if val == "" {
		return true
	}
	n := 0
	for _, r := range val {
		if !unicode.IsDigit(r) {
			return false
		}
		n = n*10 + int(r-'0')
		if n > 150 {
			return false
		}
	}
	return n >= 1
}

// Struct validates s and returns the first failure as a user-facing error.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	return fieldError(verrs[0])
}

// Field validates a single form value against tag, naming it field in
// the returned error. It plugs into huh input validators.
func Field(field, value, tag string) error {
	err := validate.Var(value, tag)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	return messageFor(field, verrs[0])
}

func fieldError(fe validator.FieldError) error {
	return messageFor(humanize(fe.Field()), fe)
}

func messageFor(field string, fe validator.FieldError) error {
	switch fe.Tag() {
	case "required", "not_blank":
		return fmt.Errorf("%s is required", field)
	case "email":
		return fmt.Errorf("%s must be a valid email address", field)
	case "min":
		return fmt.Errorf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Errorf("%s must be at most %s characters", field, fe.Param())
	case "eqfield":
		return errors.New("passwords do not match")
	case "age":
		return fmt.Errorf("%s must be a number between 1 and 150", field)
	default:
		return fmt.Errorf("%s is invalid", field)
	}
}

// humanize turns a Go field name like "FirstName" into "First name".
func humanize(name string) string {
	var b strings.Builder
	for i, r := range name {
		if i > 0 && unicode.IsUpper(r) {
			b.WriteRune(' ')
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
