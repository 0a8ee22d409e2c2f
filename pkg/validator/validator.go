package validator

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shenikar/pilgrim_path/pkg/e"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 \-]{6,18}[0-9]$`)

// New возвращает валидатор с кастомными правилами и именами полей из json-тегов
func New() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	RegisterCustomValidations(v)
	return v
}

func RegisterCustomValidations(v *validator.Validate) {
	_ = v.RegisterValidation("lng", validateLng)
	_ = v.RegisterValidation("lat", validateLat)
	_ = v.RegisterValidation("lnglat", validateLngLat)
	_ = v.RegisterValidation("phone", validatePhone)
}

func validateLat(fl validator.FieldLevel) bool {
	lat := fl.Field().Float()
	return lat >= -90 && lat <= 90
}

func validateLng(fl validator.FieldLevel) bool {
	lng := fl.Field().Float()
	return lng >= -180 && lng <= 180
}

// validateLngLat проверяет пару [долгота, широта]
func validateLngLat(fl validator.FieldLevel) bool {
	f := fl.Field()
	if f.Kind() != reflect.Slice && f.Kind() != reflect.Array {
		return false
	}
	if f.Len() != 2 {
		return false
	}
	lng, lat := f.Index(0).Float(), f.Index(1).Float()
	return lng >= -180 && lng <= 180 && lat >= -90 && lat <= 90
}

func validatePhone(fl validator.FieldLevel) bool {
	return phonePattern.MatchString(fl.Field().String())
}

// ToFieldErrors превращает ошибки validator в список {field, message}.
// Любая другая ошибка возвращается как ошибка поля "body".
func ToFieldErrors(err error) *e.ValidationError {
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return e.NewValidationError("body", err.Error())
	}

	out := &e.ValidationError{Fields: make([]e.FieldError, 0, len(vErrs))}
	for _, fe := range vErrs {
		out.Fields = append(out.Fields, e.FieldError{
			Field:   fieldPath(fe.Namespace()),
			Message: message(fe),
		})
	}
	return out
}

// fieldPath отрезает имя корневой структуры: "CreateIncidentRequest.location.coordinates" -> "location.coordinates"
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return "is required"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "len":
		return fmt.Sprintf("must have exactly %s elements", fe.Param())
	case "lnglat":
		return "coordinates must be [longitude, latitude]"
	case "lng":
		return "must be a valid longitude"
	case "lat":
		return "must be a valid latitude"
	case "phone":
		return "must be a valid phone number"
	case "email":
		return "must be a valid email"
	case "uuid", "uuid4":
		return "must be a valid id"
	case "url":
		return "must be a valid url"
	default:
		return fmt.Sprintf("failed on the '%s' rule", fe.Tag())
	}
}
