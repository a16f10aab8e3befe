package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/jubilut/academia/internal/pkg/apperrors"
)

// Validator validates request DTOs and renders failures as per-field messages
type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

// messages override the stock english texts; {0} is the field, {1} the param
var messages = map[string]string{
	"required":      "The {0} field is required.",
	"email":         "The {0} must be a valid email address.",
	"max":           "The {0} may not be greater than {1} characters.",
	"min":           "The {0} must be at least {1} characters.",
	dateTag:         "The {0} is not a valid date.",
	afterOrEqualTag: "The {0} must be a date after or equal to {1}.",
	UniqueTag:       "The {0} has already been taken.",
	ExistsTag:       "The selected {0} is invalid.",
}

// New builds a Validator with json field names, english messages and the custom date rules
func New() *Validator {
	validate := validator.New(validator.WithRequiredStructEnabled())

	english := en.New()
	uni := ut.New(english, english)
	translator, _ := uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation(dateTag, dateValidation)
	_ = validate.RegisterValidation(afterOrEqualTag, afterOrEqualValidation)

	for tag, text := range messages {
		registerTranslation(validate, translator, tag, text)
	}

	return &Validator{validate: validate, translator: translator}
}

func registerTranslation(validate *validator.Validate, translator ut.Translator, tag, text string) {
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, humanize(fe.Field()), humanize(fe.Param()))
			return s
		},
	)
}

// Struct validates s. It returns nil or a *apperrors.ValidationError.
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	return v.Translate(err)
}

// Translate converts validator errors into field messages keyed by json name.
// Errors that are not validation failures are returned unchanged.
func (v *Validator) Translate(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	verr := &apperrors.ValidationError{}
	for _, fe := range fieldErrs {
		verr.Add(fe.Field(), fe.Translate(v.translator))
	}
	return verr
}

// dateValidation accepts YYYY-MM-DD strings
func dateValidation(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return false
	}
	return IsDate(field.String())
}

// afterOrEqualValidation compares two YYYY-MM-DD fields, the other named by the param.
// A missing or malformed peer is left to that field's own rules.
func afterOrEqualValidation(fl validator.FieldLevel) bool {
	current, err := ParseDate(fl.Field().String())
	if err != nil {
		return true
	}

	peer, kind, _, found := fl.GetStructFieldOK2()
	if !found || kind != reflect.String {
		return true
	}
	other, err := ParseDate(peer.String())
	if err != nil {
		return true
	}

	return !current.Before(other)
}

// Message renders a rule message for field outside of struct validation
func Message(tag, field string, param ...interface{}) string {
	text, ok := messages[tag]
	if !ok {
		return fmt.Sprintf("The %s is invalid.", humanize(field))
	}
	text = strings.ReplaceAll(text, "{0}", humanize(field))
	if len(param) > 0 {
		text = strings.ReplaceAll(text, "{1}", humanize(fmt.Sprint(param[0])))
	}
	return text
}
