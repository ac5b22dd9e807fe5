package validators

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	nonstandard "github.com/go-playground/validator/v10/non-standard/validators"
)

// Messages shown to API clients.
const (
	MsgRequired        = "This field is required."
	MsgBlank           = "This field may not be blank."
	MsgInvalidEmail    = "Enter a valid email address."
	MsgInvalidUsername = "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters."
	MsgPasswordShort   = "This password is too short. It must contain at least %s characters."
	MsgPasswordNumeric = "This password is entirely numeric."
	MsgPasswordSimilar = "The password is too similar to the username."
	MsgPasswordMatch   = "The two password fields didn't match."
	MsgUsernameTaken   = "A user with that username already exists."
	MsgMaxLength       = "Ensure this field has no more than %s characters."
	MsgInvalidValue    = "Invalid value."
)

var usernameRe = regexp.MustCompile(`^[\p{L}\p{N}_.@+-]+$`)

// newEngine returns a validator that reports JSON field names and knows the
// custom "username" and "notblank" tags.
func newEngine() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return strings.ToLower(f.Name)
		}
		return name
	})

	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernameRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("notblank", nonstandard.NotBlank)

	return v
}

// collect converts validator errors into a *ValidationError. Errors that are
// not field errors are returned unchanged.
func collect(err error, into *ValidationError) error {
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %w", ErrUnsupportedType, err)
	}

	for _, fe := range fieldErrs {
		into.Add(fe.Field(), message(fe))
	}
	return nil
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return MsgRequired
	case "notblank":
		return MsgBlank
	case "email":
		return MsgInvalidEmail
	case "username":
		return MsgInvalidUsername
	case "max":
		return fmt.Sprintf(MsgMaxLength, fe.Param())
	case "min":
		return fmt.Sprintf(MsgPasswordShort, fe.Param())
	default:
		return MsgInvalidValue
	}
}
