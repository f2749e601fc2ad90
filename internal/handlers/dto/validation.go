package dto

import (
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	domainerrors "github.com/rafabene/avantpro-admin/internal/domain/errors"
	"github.com/rafabene/avantpro-admin/internal/domain/valueobjects"
)

// RegisterValidators registra no validator do gin a tag "ability" e o uso
// do nome json dos campos nas mensagens
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin validator engine is not go-playground/validator")
	}

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return v.RegisterValidation("ability", func(fl validator.FieldLevel) bool {
		return valueobjects.IsValidAbility(fl.Field().String())
	})
}

// ValidationErrors traduz o erro do binding em erros por campo
func ValidationErrors(c *gin.Context, err error) []ValidationError {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return []ValidationError{{
			Field:   "body",
			Message: T(c, "validation.invalid", map[string]interface{}{"Field": "body"}),
			Tag:     "invalid",
		}}
	}

	out := make([]ValidationError, 0, len(validationErrs))
	for _, fe := range validationErrs {
		field := fieldName(fe)
		out = append(out, ValidationError{
			Field:   field,
			Message: validationMessage(c, fe, field),
			Tag:     fe.Tag(),
		})
	}
	return out
}

// ErrorBag converte os erros para o formato campo → mensagem do frontend
func ErrorBag(errs []ValidationError) map[string]string {
	bag := make(map[string]string, len(errs))
	for _, e := range errs {
		if _, exists := bag[e.Field]; !exists {
			bag[e.Field] = e.Message
		}
	}
	return bag
}

// FieldOfError associa erros de negócio ao campo do formulário
func FieldOfError(err error) (string, bool) {
	switch {
	case errors.Is(err, domainerrors.ErrEmailAlreadyExists), errors.Is(err, domainerrors.ErrInvalidEmail):
		return "email", true
	case errors.Is(err, domainerrors.ErrRoleNameTaken), errors.Is(err, domainerrors.ErrInvalidRoleName):
		return "name", true
	case errors.Is(err, domainerrors.ErrUnknownPermission), errors.Is(err, domainerrors.ErrInvalidAbility):
		return "selectedPermissions", true
	case errors.Is(err, domainerrors.ErrUnknownRole):
		return "user_role", true
	}
	return "", false
}

// fieldName remove o nome da struct e troca índices por ponto:
// "RoleRequest.selectedPermissions[0]" vira "selectedPermissions.0"
func fieldName(fe validator.FieldError) string {
	name := fe.Namespace()
	if idx := strings.Index(name, "."); idx != -1 {
		name = name[idx+1:]
	}
	name = strings.ReplaceAll(name, "[", ".")
	return strings.ReplaceAll(name, "]", "")
}

func validationMessage(c *gin.Context, fe validator.FieldError, field string) string {
	params := map[string]interface{}{
		"Field": strings.ReplaceAll(field, "_", " "),
		"Param": fe.Param(),
	}

	switch fe.Tag() {
	case "required", "email", "min", "max", "ability":
		return T(c, "validation."+fe.Tag(), params)
	}
	return T(c, "validation.invalid", params)
}
