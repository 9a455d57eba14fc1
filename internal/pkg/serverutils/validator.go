package serverutils

import (
	"errors"
	"fmt"
	"strings"

	"notes-web/internal/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest checks the struct tags of req and turns failures into
// an apperror validation error naming the offending fields.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err
	}

	messages := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		messages = append(messages, fmt.Sprintf("%s is %s", fe.Field(), describeTag(fe)))
	}
	return apperror.Validation(strings.Join(messages, "; "))
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "uuid":
		return "not a valid id"
	case "email":
		return "not a valid email"
	default:
		return "invalid"
	}
}
