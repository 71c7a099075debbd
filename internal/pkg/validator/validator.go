// Package validator provides validation of structs and values, based on the go-playground/validator library.
package validator

import (
	"context"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslation "github.com/go-playground/validator/v10/translations/en"

	"github.com/enersys/pypsa2gems/internal/pkg/utils/errors"
)

// anonymousField name marks anonymous fields, so they can be removed from the error namespace.
const anonymousField = "__nested__"

type Validator interface {
	Validate(ctx context.Context, value any) error
	ValidateValue(value any, tag string) error
	ValidateCtx(ctx context.Context, value any, tag string, namespace string) error
}

// Rule is a custom validation rule.
// The error message is defined by ErrorMsg, or dynamically by ErrorMsgFunc,
// otherwise the default translation is used.
type Rule struct {
	Tag          string
	Func         validator.Func
	ErrorMsg     string
	ErrorMsgFunc ErrorMsgFunc
}

type ErrorMsgFunc func(fe validator.FieldError) string

type wrapper struct {
	validator     *validator.Validate
	translator    ut.Translator
	errorMsgFuncs map[string]ErrorMsgFunc
}

func New(rules ...Rule) Validator {
	v := &wrapper{validator: validator.New(), errorMsgFuncs: make(map[string]ErrorMsgFunc)}

	// Register default EN translator
	enLocale := en.New()
	translator, found := ut.New(enLocale, enLocale).GetTranslator("en")
	if !found {
		panic(errors.New("en translator was not found"))
	}
	v.translator = translator
	if err := enTranslation.RegisterDefaultTranslations(v.validator, v.translator); err != nil {
		panic(errors.Errorf("translator was not registered: %w", err))
	}

	// Use the JSON or YAML field name in error messages
	v.validator.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if fld.Anonymous {
			return anonymousField
		}

		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		}
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	v.registerDefaultRules()
	v.registerRules(rules...)
	return v
}

// Validate the value, rules are defined by the "validate" tag.
func (v *wrapper) Validate(ctx context.Context, value any) error {
	return v.ValidateCtx(ctx, value, "dive", "")
}

// ValidateValue validates the value by the tag, eg. "required".
func (v *wrapper) ValidateValue(value any, tag string) error {
	return v.ValidateCtx(context.Background(), value, tag, "")
}

// ValidateCtx validates the value, each error is prefixed with the namespace.
func (v *wrapper) ValidateCtx(ctx context.Context, value any, tag string, namespace string) error {
	if err := v.validator.VarCtx(ctx, value, tag); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.processError(validationErrs, namespace)
		}
		panic(err)
	}
	return nil
}

func (v *wrapper) registerDefaultRules() {
	alphaNumDash := regexp.MustCompile(`^[a-zA-Z0-9\-]*$`)
	v.registerRules(
		Rule{
			Tag: "required_not_empty",
			Func: func(fl validator.FieldLevel) bool {
				field := fl.Field()
				switch field.Kind() {
				case reflect.Slice, reflect.Map, reflect.Array:
					return field.Len() > 0
				default:
					return field.IsValid() && !field.IsZero()
				}
			},
			ErrorMsg: "is a required field",
		},
		Rule{
			Tag: "alphanumdash",
			Func: func(fl validator.FieldLevel) bool {
				return alphaNumDash.MatchString(fl.Field().String())
			},
			ErrorMsg: "can only contain alphanumeric characters and dash",
		},
	)
}

func (v *wrapper) registerRules(rules ...Rule) {
	for _, rule := range rules {
		if err := v.validator.RegisterValidation(rule.Tag, rule.Func); err != nil {
			panic(err)
		}
		switch {
		case rule.ErrorMsgFunc != nil:
			v.errorMsgFuncs[rule.Tag] = rule.ErrorMsgFunc
		case rule.ErrorMsg != "":
			msg := rule.ErrorMsg
			v.errorMsgFuncs[rule.Tag] = func(validator.FieldError) string {
				return msg
			}
		}
	}
}

func (v *wrapper) processError(err validator.ValidationErrors, namespace string) error {
	result := errors.NewMultiError()
	for _, e := range err {
		// Error message
		var msg string
		if fn, found := v.errorMsgFuncs[e.Tag()]; found {
			msg = fn(e)
		} else {
			// Default translation starts with the field name, strip it
			msg = strings.TrimSpace(strings.TrimPrefix(e.Translate(v.translator), e.Field()))
		}

		// Prefix message with the field namespace
		if errNamespace := joinNamespace(namespace, processNamespace(e.Namespace())); errNamespace != "" {
			result.Append(errors.Errorf(`"%s" %s`, errNamespace, msg))
		} else {
			result.Append(errors.New(msg))
		}
	}

	return result.ErrorOrNil()
}

// processNamespace removes the struct name (the first part) and the anonymous fields from the error namespace.
func processNamespace(namespace string) string {
	namespace = strings.ReplaceAll(namespace, anonymousField+".", "")
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 && !strings.HasPrefix(parts[0], "[") {
		parts = parts[1:]
	}
	return strings.Join(parts, ".")
}

func joinNamespace(parts ...string) string {
	var nonEmpty []string
	for _, part := range parts {
		if part != "" {
			nonEmpty = append(nonEmpty, part)
		}
	}
	return strings.Join(nonEmpty, ".")
}
