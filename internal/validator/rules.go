package validator

import (
	"log"
	"regexp"

	"fitcoach_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// Optional international format: optional "+", first digit 1-9, up to 16
// digits total.
var phoneRegexp = regexp.MustCompile(`^\+?[1-9][0-9]{0,15}$`)

// registerCustomRules installs the domain-specific validation tags.
// A registration failure is a startup bug, so it is fatal.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-user-role", validateUserRole)
	mustRegister("phone", validatePhone)
}

func validateUserRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // optional; defaulting happens in the service
	}
	return models.ValidRole(models.UserRole(value))
}

func validatePhone(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // phone is optional everywhere
	}
	return phoneRegexp.MatchString(value)
}
