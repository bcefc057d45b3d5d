package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/SEACET-CSE/edugroup-service/internal/models"
)

// ValidationError is a single field-level validation failure.
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
	Rule    string      `json:"rule"`
}

// ValidationErrors aggregates failures so callers can return them all at once.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}

	messages := make([]string, len(ve))
	for i, err := range ve {
		messages[i] = fmt.Sprintf("%s: %s", err.Field, err.Message)
	}
	return strings.Join(messages, "; ")
}

// ToValidationErrors converts go-playground validator errors.
func ToValidationErrors(err error) ValidationErrors {
	if err == nil {
		return nil
	}

	fieldErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return ValidationErrors{{Field: "request", Message: err.Error(), Rule: "struct"}}
	}

	errors := make(ValidationErrors, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		errors = append(errors, ValidationError{
			Field:   strings.ToLower(fe.Field()),
			Message: messageForTag(fe),
			Value:   fe.Value(),
			Rule:    fe.Tag(),
		})
	}
	return errors
}

func messageForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "option_id":
		return fmt.Sprintf("must be a topic id between 1 and %d", models.OptionCount)
	case "section_id":
		return fmt.Sprintf("must be a section id between 1 and %d", len(models.ProjectSections))
	case "user_role":
		return "must be STUDENT or ADMIN"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

// Validator wraps go-playground/validator with the domain rules.
type Validator struct {
	validate *validator.Validate
	business *BusinessValidator
}

func New() *Validator {
	validate := validator.New()
	registerDomainRules(validate)

	return &Validator{
		validate: validate,
		business: NewBusinessValidator(validate),
	}
}

// Validate validates struct tags and returns nil or ValidationErrors.
func (v *Validator) Validate(s interface{}) error {
	if err := v.validate.Struct(s); err != nil {
		return ToValidationErrors(err)
	}
	return nil
}

func (v *Validator) GetBusinessValidator() *BusinessValidator {
	return v.business
}

func registerDomainRules(validate *validator.Validate) {
	// option_id: topic ids are fixed 1..12
	_ = validate.RegisterValidation("option_id", func(fl validator.FieldLevel) bool {
		id := fl.Field().Int()
		return id >= 1 && id <= int64(models.OptionCount)
	})

	// section_id: milestone ids are fixed 1..6
	_ = validate.RegisterValidation("section_id", func(fl validator.FieldLevel) bool {
		id := fl.Field().Int()
		return id >= 1 && id <= int64(len(models.ProjectSections))
	})

	// user_role: only the two roles exist
	_ = validate.RegisterValidation("user_role", func(fl validator.FieldLevel) bool {
		role := models.UserRole(fl.Field().String())
		return role == models.RoleStudent || role == models.RoleAdmin
	})
}
