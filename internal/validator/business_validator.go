package validator

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/SEACET-CSE/edugroup-service/internal/models"
)

// AdminEmailMarker must appear in an admin's email address. Institutional
// rule carried over from the reference deployment.
const AdminEmailMarker = "seacet"

// BusinessValidator handles business rule validation beyond struct tags.
type BusinessValidator struct {
	validate *validator.Validate
}

func NewBusinessValidator(validate *validator.Validate) *BusinessValidator {
	return &BusinessValidator{validate: validate}
}

// Validate validates struct tags for any request type.
func (bv *BusinessValidator) Validate(s interface{}) ValidationErrors {
	if err := bv.validate.Struct(s); err != nil {
		return ToValidationErrors(err)
	}
	return nil
}

// ValidateRegister validates registration business rules.
func (bv *BusinessValidator) ValidateRegister(req *RegisterRequest) ValidationErrors {
	errors := bv.Validate(req)

	if req.Role == models.RoleAdmin && !IsAdminEmail(req.Email) {
		errors = append(errors, ValidationError{
			Field:   "email",
			Message: "admin email must contain \"" + AdminEmailMarker + "\"",
			Value:   req.Email,
			Rule:    "business_logic",
		})
	}

	return errors
}

// ValidateMessage checks that a chat message is non-blank after trimming.
// Whitespace-only sends are rejected here, not by the chat log itself.
func (bv *BusinessValidator) ValidateMessage(message string) ValidationErrors {
	if strings.TrimSpace(message) == "" {
		return ValidationErrors{{
			Field:   "message",
			Message: "message must not be empty",
			Rule:    "business_logic",
		}}
	}
	return nil
}

// IsAdminEmail reports whether the email carries the institutional admin
// marker.
func IsAdminEmail(email string) bool {
	return strings.Contains(strings.ToLower(email), AdminEmailMarker)
}
