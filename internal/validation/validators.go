package validation

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/praxable/praxable-cli/internal/constants"
	apperrors "github.com/praxable/praxable-cli/internal/errors"
	"github.com/praxable/praxable-cli/internal/models"
	"github.com/praxable/praxable-cli/internal/utils"
)

var (
	// Validate is a shared validator instance
	Validate *validator.Validate
)

func init() {
	Validate = validator.New(validator.WithRequiredStructEnabled())

	// Report wire names rather than Go field names
	Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := Validate.RegisterValidation("datefmt", validateDate); err != nil {
		panic(fmt.Sprintf("failed to register datefmt validator: %v", err))
	}
	if err := Validate.RegisterValidation("clock", validateClock); err != nil {
		panic(fmt.Sprintf("failed to register clock validator: %v", err))
	}
	if err := Validate.RegisterValidation("slottime", validateSlotTime); err != nil {
		panic(fmt.Sprintf("failed to register slottime validator: %v", err))
	}
}

// validateDate validates a YYYY-MM-DD date
func validateDate(fl validator.FieldLevel) bool {
	return utils.ValidateDateFormat(fl.Field().String())
}

// validateClock validates an HH:MM time of day
func validateClock(fl validator.FieldLevel) bool {
	return utils.ValidateTimeFormat(fl.Field().String())
}

// validateSlotTime accepts either a bare HH:MM or an ISO datetime
func validateSlotTime(fl validator.FieldLevel) bool {
	v := fl.Field().String()
	if utils.IsBareTime(v) {
		return utils.ValidateTimeFormat(v)
	}
	_, err := utils.ParseISO(v, nil)
	return err == nil
}

// Struct validates v against its struct tags and converts the first failure
// into a ValidationError.
func Struct(v interface{}) error {
	err := Validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if stderrors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return apperrors.FieldValidation(fieldPath(fe), describe(fe))
	}
	return apperrors.Validation(err.Error())
}

// fieldPath strips the root struct name from the namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at least %s item(s)", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "datefmt":
		return fmt.Sprintf("invalid date %q (want YYYY-MM-DD)", fe.Value())
	case "clock":
		return fmt.Sprintf("invalid time %q (want HH:MM)", fe.Value())
	case "slottime":
		return fmt.Sprintf("invalid slot time %q", fe.Value())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

// TaskData validates a task payload including its completion invariant:
// a done task carries both feedback fields, a pending task carries neither.
func TaskData(t models.TaskData) error {
	if err := Struct(t); err != nil {
		return err
	}
	hasFeedback := t.MoodAfter != nil || t.FulfillmentScore != nil
	switch {
	case t.Done() && (t.MoodAfter == nil || t.FulfillmentScore == nil):
		return apperrors.FieldValidation("did_it", fmt.Sprintf("task %q is done but lacks mood_after or fulfillment_score", t.Task))
	case !t.Done() && hasFeedback:
		return apperrors.FieldValidation("did_it", fmt.Sprintf("task %q is pending but carries feedback", t.Task))
	}
	return nil
}

// TaskIdentity checks only what is needed to show a task at all: a name and,
// when present, a YYYY-MM-DD date.
func TaskIdentity(t models.TaskData) error {
	if strings.TrimSpace(t.Task) == "" {
		return apperrors.FieldValidation("task", "must not be empty")
	}
	if t.Date != "" && !utils.ValidateDateFormat(t.Date) {
		return apperrors.FieldValidation("date", fmt.Sprintf("invalid date %q (want YYYY-MM-DD)", t.Date))
	}
	return nil
}

// Rating checks a 1..10 rating.
func Rating(field string, v int) error {
	if v < constants.MinRating || v > constants.MaxRating {
		return apperrors.FieldValidation(field, fmt.Sprintf("must be between %d and %d, got %d", constants.MinRating, constants.MaxRating, v))
	}
	return nil
}

// APIKey checks the shape of an LLM provider key.
func APIKey(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return apperrors.FieldValidation("api_key", "must not be empty")
	}
	if !strings.HasPrefix(key, constants.APIKeyPrefix) {
		return apperrors.FieldValidation("api_key", fmt.Sprintf("must start with %q", constants.APIKeyPrefix))
	}
	return nil
}

// ValueName checks a core value name before it is sent to the backend.
func ValueName(name string) error {
	if strings.TrimSpace(name) == "" {
		return apperrors.FieldValidation("value_name", "must not be empty")
	}
	return nil
}

// SanitizeText sanitizes text input by trimming whitespace and removing control characters
func SanitizeText(text string) string {
	text = strings.TrimSpace(text)

	// Remove control characters except newline and tab
	var sanitized strings.Builder
	for _, r := range text {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			continue
		}
		sanitized.WriteRune(r)
	}

	return sanitized.String()
}
