package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/navelogic/rpgbot/internal/dice"
	"github.com/navelogic/rpgbot/internal/domain"
)

// Validator checks request bodies against their `validate` tags
type Validator struct {
	validate *validator.Validate
}

var (
	validatorOnce sync.Once
	shared        *Validator
)

// InitValidator builds the shared validator with the roll specific rules.
// Repeated calls are no-ops.
func InitValidator() {
	validatorOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		// Report fields by their JSON names
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("platform", validatePlatform)
		_ = v.RegisterValidation("rollcommand", validateRollCommand)
		shared = &Validator{validate: v}
	})
}

// GetValidator returns the shared validator
func GetValidator() *Validator {
	InitValidator()
	return shared
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

var fieldMessages = map[string]func(param string) string{
	"required":         func(string) string { return "This field is required" },
	"required_without": func(string) string { return "This field is required" },
	"platform":         func(string) string { return "Invalid platform" },
	"rollcommand":      func(string) string { return "Must start with /r or /rolar" },
	"excludesall":      func(string) string { return "Contains invalid characters" },
	"max":              func(p string) string { return fmt.Sprintf("Must be at most %s characters", p) },
	"min":              func(p string) string { return fmt.Sprintf("Must be at least %s characters", p) },
	"oneof":            func(p string) string { return "Must be one of: " + p },
}

// FormatValidationError turns validator output into field -> message pairs
// without exposing Go type names
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return map[string]string{"error": "Invalid request format"}
	}

	out := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		msg := "Invalid value"
		if format, ok := fieldMessages[fe.Tag()]; ok {
			msg = format(fe.Param())
		}
		out[strings.ToLower(fe.Field())] = msg
	}
	return out
}

// ValidPlatforms lists the chat platforms a roll may come from
var ValidPlatforms = map[string]bool{
	domain.PlatformTelegram: true,
	domain.PlatformDiscord:  true,
	domain.PlatformHTTP:     true,
}

// validatePlatform accepts any known platform in any case. Blank passes so
// that `required` decides.
func validatePlatform(fl validator.FieldLevel) bool {
	p := fl.Field().String()
	return p == "" || ValidPlatforms[strings.ToLower(p)]
}

// validateRollCommand only checks the keyword. The expression itself is the
// evaluator's business so its error text reaches the user.
func validateRollCommand(fl validator.FieldLevel) bool {
	words := strings.Fields(fl.Field().String())
	return len(words) > 0 && dice.IsRollKeyword(words[0])
}
