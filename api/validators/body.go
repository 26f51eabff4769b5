package validators

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	pkgerrors "github.com/pawar-yoga/studio-backend/pkg/errors"
)

// maxJSONBody caps the public JSON endpoints.
const maxJSONBody = 64 << 10

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, key := range []string{"json", "form"} {
			if tag := strings.SplitN(f.Tag.Get(key), ",", 2)[0]; tag != "" && tag != "-" {
				return tag
			}
		}
		return f.Name
	})
	return v
}

// DecodeJSONBody decodes a single JSON object into dest and runs its
// validate tags. Unknown fields are ignored so the public forms may post
// extra inputs.
func DecodeJSONBody(r *http.Request, dest any) error {
	body := io.LimitReader(r.Body, maxJSONBody)
	defer func() {
		_, _ = io.Copy(io.Discard, body)
	}()
	if err := json.NewDecoder(body).Decode(dest); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid request body").WithDetails(map[string]any{"error": err.Error()})
	}
	return ValidateStruct(dest)
}

// ValidateStruct runs the validate tags of v.
func ValidateStruct(v any) error {
	if err := validate.Struct(v); err != nil {
		return formatValidationErrors(err)
	}
	return nil
}

func formatValidationErrors(err error) *pkgerrors.Error {
	if errs, ok := err.(validator.ValidationErrors); ok {
		details := map[string]string{}
		first := ""
		for _, fieldErr := range errs {
			msg := validationMessage(fieldErr)
			details[fieldErr.Field()] = msg
			if first == "" {
				first = fieldErr.Field() + " " + msg
			}
		}
		return pkgerrors.New(pkgerrors.CodeValidation, capitalize(first)).WithDetails(details)
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "validation failed")
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of %s", fe.Param())
	}
	return "is invalid"
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
