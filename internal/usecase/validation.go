package usecase

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func ValidateImportCallsInput(input ImportCallsInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.Name) == "" {
		errors = append(errors, ValidationError{"name", "is required"})
	}

	listType := entity.LeadListType(input.Type)
	if listType != entity.LeadListCorporate && listType != entity.LeadListInstitution {
		errors = append(errors, ValidationError{"type", "must be corporate or institution"})
		return errors
	}

	if len(input.Rows) == 0 {
		errors = append(errors, ValidationError{"rows", "at least one row is required"})
	}

	for idx, row := range input.Rows {
		field := fmt.Sprintf("rows[%d]", idx)
		if !isValidPhoneNumber(row.PhoneNumber) {
			errors = append(errors, ValidationError{field + ".phone_number", "must be a valid phone number"})
		}
		if row.Email != "" {
			if _, err := mail.ParseAddress(row.Email); err != nil {
				errors = append(errors, ValidationError{field + ".email", "is invalid"})
			}
		}
		if listType == entity.LeadListCorporate {
			if strings.TrimSpace(row.CompanyName) == "" {
				errors = append(errors, ValidationError{field + ".company_name", "is required for corporate lists"})
			}
			if strings.TrimSpace(row.ContactPerson) == "" {
				errors = append(errors, ValidationError{field + ".contact_person", "is required for corporate lists"})
			}
		} else {
			if strings.TrimSpace(row.ClientName) == "" {
				errors = append(errors, ValidationError{field + ".client_name", "is required for institution lists"})
			}
		}
	}

	return errors
}

func ValidateEmployeeInput(e *entity.Employee, password string, requirePassword bool) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(e.EmpID) == "" {
		errors = append(errors, ValidationError{"empid", "is required"})
	}
	if strings.TrimSpace(e.FullName) == "" {
		errors = append(errors, ValidationError{"full_name", "is required"})
	} else if len(e.FullName) > 200 {
		errors = append(errors, ValidationError{"full_name", "must not exceed 200 characters"})
	}
	if strings.TrimSpace(e.Email) == "" {
		errors = append(errors, ValidationError{"email", "is required"})
	} else if _, err := mail.ParseAddress(e.Email); err != nil {
		errors = append(errors, ValidationError{"email", "is invalid"})
	}
	if e.UserRole != entity.RoleSalesManager && e.UserRole != entity.RoleSalesExecutive {
		errors = append(errors, ValidationError{"user_role", "must be sales_manager or sales_executive"})
	}
	if requirePassword && password == "" {
		errors = append(errors, ValidationError{"password", "is required"})
	}
	if e.PhoneNumber != "" && !isValidPhoneNumber(e.PhoneNumber) {
		errors = append(errors, ValidationError{"phone_number", "must be a valid phone number"})
	}

	return errors
}

func isValidPhoneNumber(phone string) bool {
	cleaned := regexp.MustCompile(`\D`).ReplaceAllString(phone, "")
	return len(cleaned) >= 10 && len(cleaned) <= 13
}
