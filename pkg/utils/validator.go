package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ValidationError describes one failed struct-tag check. Field is the json
// name of the field.
type ValidationError struct {
	Field   string
	Tag     string
	Param   string
	Message string
}

// CustomValidator wraps go-playground/validator with json field names and
// French messages.
type CustomValidator struct {
	validator *validator.Validate
	lock      sync.RWMutex
	messages  map[string]map[string]string // field -> tag -> message
}

var (
	validatorInstance *CustomValidator
	validatorOnce     sync.Once
)

// GetValidator returns the shared validator.
func GetValidator() *CustomValidator {
	validatorOnce.Do(func() {
		v := validator.New()

		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})

		validatorInstance = &CustomValidator{
			validator: v,
			messages:  make(map[string]map[string]string),
		}
	})
	return validatorInstance
}

// Validate checks obj and returns the failures in field order.
func (v *CustomValidator) Validate(obj interface{}) []ValidationError {
	if err := v.validator.Struct(obj); err != nil {
		return v.translateErrors(err)
	}
	return nil
}

// ValidateField checks a single value against tag. name is used in the
// message.
func (v *CustomValidator) ValidateField(name string, val interface{}, tag string) []ValidationError {
	if err := v.validator.Var(val, tag); err != nil {
		errs := v.translateErrors(err)
		for i := range errs {
			errs[i].Field = name
			errs[i].Message = v.message(name, errs[i].Tag, errs[i].Param)
		}
		return errs
	}
	return nil
}

// SetMessage overrides the message of tag on field.
func (v *CustomValidator) SetMessage(field, tag, message string) {
	v.lock.Lock()
	defer v.lock.Unlock()

	if _, ok := v.messages[field]; !ok {
		v.messages[field] = make(map[string]string)
	}
	v.messages[field][tag] = message
}

func (v *CustomValidator) translateErrors(err error) []ValidationError {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []ValidationError{{Message: err.Error()}}
	}

	result := make([]ValidationError, 0, len(validationErrors))
	for _, e := range validationErrors {
		result = append(result, ValidationError{
			Field:   e.Field(),
			Tag:     e.Tag(),
			Param:   e.Param(),
			Message: v.message(e.Field(), e.Tag(), e.Param()),
		})
	}
	return result
}

func (v *CustomValidator) message(field, tag, param string) string {
	v.lock.RLock()
	msg, ok := v.messages[field][tag]
	v.lock.RUnlock()
	if ok {
		return msg
	}
	return defaultMessage(field, tag, param)
}

func defaultMessage(field, tag, param string) string {
	switch tag {
	case "required":
		return fmt.Sprintf("Le champ obligatoire \"%s\" est manquant.", field)
	case "email":
		return fmt.Sprintf("Le champ \"%s\" doit être une adresse email valide.", field)
	case "numeric", "number":
		return fmt.Sprintf("Le champ \"%s\" doit être numérique.", field)
	case "max":
		return fmt.Sprintf("Le champ \"%s\" ne doit pas dépasser %s caractères.", field, param)
	case "min":
		return fmt.Sprintf("Le champ \"%s\" doit contenir au moins %s caractères.", field, param)
	case "oneof":
		return fmt.Sprintf("Le champ \"%s\" doit valoir l'une des valeurs : %s.", field, param)
	default:
		return fmt.Sprintf("Le champ \"%s\" est invalide.", field)
	}
}
