package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

// CallRow é uma linha já estruturada da planilha (o parse do arquivo fica
// no front/ferramenta de upload, fora daqui).
type CallRow struct {
	// corporate (B2B)
	CompanyName   string `json:"company_name,omitempty"`
	ContactPerson string `json:"contact_person,omitempty"`
	Designation   string `json:"designation,omitempty"`

	// institution (B2C)
	ClientName string `json:"client_name,omitempty"`
	Department string `json:"department,omitempty"`
	City       string `json:"city,omitempty"`

	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email,omitempty"`
}

type ImportCallsInput struct {
	Name        string    `json:"name"`
	Type        string    `json:"type"` // corporate | institution
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
	Rows        []CallRow `json:"rows"`

	UploadedBy int64 `json:"-"`
}

type ImportCallsOutput struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	DatabaseID int64  `json:"database_id"`
	Imported   int    `json:"imported"`
}

// ImportCallsUseCase cria uma lead list e materializa cada linha como um
// call fresh, com os campos de contato conforme o tipo da lista.
type ImportCallsUseCase struct {
	Lists LeadListRepositoryInterface
	Calls CallRepositoryInterface
}

func NewImportCallsUseCase(lists LeadListRepositoryInterface, calls CallRepositoryInterface) *ImportCallsUseCase {
	return &ImportCallsUseCase{Lists: lists, Calls: calls}
}

func (uc *ImportCallsUseCase) Execute(ctx context.Context, input ImportCallsInput) (*ImportCallsOutput, error) {
	if errs := ValidateImportCallsInput(input); len(errs) > 0 {
		msg := "validation failed: "
		for _, e := range errs {
			msg += e.Field + " (" + e.Message + "), "
		}
		return nil, &DomainError{Code: CodeValidation, Message: msg}
	}

	list := &entity.LeadList{
		Name:        input.Name,
		Type:        entity.LeadListType(input.Type),
		Description: input.Description,
		Category:    input.Category,
		UploadedBy:  input.UploadedBy,
		CreatedDate: time.Now(),
	}

	txn := NewTransaction()
	txn.AddOperation("create_lead_list", func(ctx context.Context) error {
		return uc.Lists.Create(ctx, list)
	})
	txn.AddCompensation("delete_lead_list", func(ctx context.Context) error {
		return uc.Lists.Delete(ctx, list.ID)
	})

	stamp := time.Now().Format("20060102150405")
	imported := 0
	txn.AddOperation("create_calls", func(ctx context.Context) error {
		for idx, row := range input.Rows {
			call := &entity.Call{
				CallID:        fmt.Sprintf("CALL_%s_%d_%d", stamp, list.ID, idx),
				Type:          list.CallType(),
				CompanyName:   row.CompanyName,
				ContactPerson: row.ContactPerson,
				Designation:   row.Designation,
				ClientName:    row.ClientName,
				Department:    row.Department,
				City:          row.City,
				PhoneNumber:   row.PhoneNumber,
				Email:         row.Email,
				DatabaseID:    list.ID,
				Status:        entity.StageFresh,
				CreatedDate:   time.Now(),
			}
			if err := call.Validate(); err != nil {
				return fmt.Errorf("row %d: %w", idx, err)
			}
			if err := uc.Calls.Create(ctx, call); err != nil {
				return fmt.Errorf("row %d: %w", idx, err)
			}
			imported++
		}
		return nil
	})

	if err := txn.Execute(ctx); err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to import lead list: " + err.Error()}
	}

	return &ImportCallsOutput{
		Success:    true,
		Message:    "Database uploaded successfully",
		DatabaseID: list.ID,
		Imported:   imported,
	}, nil
}
