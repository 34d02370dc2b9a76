package usecase

import (
	"fmt"
	"regexp"
	"strings"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Telefone no formato do WhatsApp: só dígitos, com DDI (ex: 5511999999999)
var phoneRegex = regexp.MustCompile(`^\d{10,15}$`)

func ValidateCreateLeadInput(input CreateLeadInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.Name) == "" {
		errors = append(errors, ValidationError{"name", "is required"})
	} else if len(input.Name) > 200 {
		errors = append(errors, ValidationError{"name", "must not exceed 200 characters"})
	}

	if strings.TrimSpace(input.Phone) == "" {
		errors = append(errors, ValidationError{"phone", "is required"})
	} else if !phoneRegex.MatchString(input.Phone) {
		errors = append(errors, ValidationError{"phone", "must be digits only with country code"})
	}

	return errors
}

func ValidateOrganizationInputFields(input ValidateOrganizationInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.ID) == "" {
		errors = append(errors, ValidationError{"id", "is required"})
	}
	if strings.TrimSpace(input.Name) == "" {
		errors = append(errors, ValidationError{"name", "is required"})
	}
	if strings.TrimSpace(input.WhatsApp) == "" {
		errors = append(errors, ValidationError{"whatsapp", "is required"})
	}

	return errors
}
