package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// UserError carries text that is shown to the user as is.
type UserError struct {
	Message string
}

func (e *UserError) Error() string { return e.Message }

func userError(msg string) error { return &UserError{Message: msg} }

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if label := f.Tag.Get("label"); label != "" {
			return label
		}
		return f.Name
	})
	return v
}

// validationError turns the first failed rule into a UserError.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return userError(fmt.Sprintf("%s is required", fe.Field()))
	case "email":
		return userError("Invalid email address")
	case "min":
		return userError(fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param()))
	case "datetime":
		return userError(fmt.Sprintf("%s must be a date (YYYY-MM-DD)", fe.Field()))
	default:
		return userError(fmt.Sprintf("%s is invalid", fe.Field()))
	}
}

var specialChars = `!@#$%^&*(),.?":{}|<>`

var strengthLabels = []string{"Very Weak", "Weak", "Average", "Strong", "Very Strong"}

// PasswordStrength scores password from 0 to 5, one point each for length
// of at least 8, a digit, an upper-case letter, a lower-case letter and a
// special character. The label is "Too Weak" for a score of 0.
func PasswordStrength(password string) (int, string) {
	score := 0
	if len(password) >= 8 {
		score++
	}
	if strings.ContainsAny(password, "0123456789") {
		score++
	}
	if strings.ContainsAny(password, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		score++
	}
	if strings.ContainsAny(password, "abcdefghijklmnopqrstuvwxyz") {
		score++
	}
	if strings.ContainsAny(password, specialChars) {
		score++
	}
	if score == 0 {
		return 0, "Too Weak"
	}
	return score, strengthLabels[score-1]
}
