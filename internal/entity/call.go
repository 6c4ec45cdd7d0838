package entity

import (
	"errors"
	"time"
	// IMPORTANTE: NÃO adicione imports de usecase ou infra aqui!
)

type CallType string

const (
	CallTypeB2B CallType = "B2B"
	CallTypeB2C CallType = "B2C"
)

// Stage é a posição do lead no funil de vendas.
type Stage string

const (
	StageFresh       Stage = "fresh"
	StageFollowUp    Stage = "follow_up"
	StageDemo        Stage = "demo"
	StageProposal    Stage = "proposal"
	StageNegotiation Stage = "negotiation"
	StageClosure     Stage = "closure"
	StageConverted   Stage = "converted"
)

func (s Stage) Valid() bool {
	switch s {
	case StageFresh, StageFollowUp, StageDemo, StageProposal, StageNegotiation, StageClosure, StageConverted:
		return true
	}
	return false
}

// Terminal: closure e converted não aceitam mais disposições.
func (s Stage) Terminal() bool {
	return s == StageClosure || s == StageConverted
}

var (
	ErrCallNotFound     = errors.New("call not found")
	ErrAlreadyAssigned  = errors.New("call already assigned")
	ErrLeadListNotFound = errors.New("lead list not found")
	ErrEmployeeNotFound = errors.New("employee not found")
)

// Entidade: Call (um lead sendo trabalhado no funil)
type Call struct {
	ID     int64    `json:"id"`
	CallID string   `json:"call_id"`
	Type   CallType `json:"type"`

	// B2C (institution)
	ClientName string `json:"client_name,omitempty"`
	Department string `json:"department,omitempty"`
	City       string `json:"city,omitempty"`

	// B2B (corporate)
	CompanyName   string `json:"company_name,omitempty"`
	ContactPerson string `json:"contact_person,omitempty"`
	Designation   string `json:"designation,omitempty"`

	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email,omitempty"`

	DatabaseID int64  `json:"database_id"`
	AssignedTo *int64 `json:"assigned_to,omitempty"`

	Status      Stage  `json:"status"`
	Disposition string `json:"disposition,omitempty"`
	Notes       string `json:"notes,omitempty"`

	CalledDate      *time.Time `json:"called_date,omitempty"`
	FollowUpDate    *time.Time `json:"follow_up_date,omitempty"`
	DemoDate        *time.Time `json:"demo_date,omitempty"`
	ProposalDate    *time.Time `json:"proposal_date,omitempty"`
	NegotiationDate *time.Time `json:"negotiation_date,omitempty"`
	ReminderSent    bool       `json:"-"`

	CreatedDate time.Time `json:"created_date"`
}

// DisplayName escolhe o campo de contato conforme o tipo (B2B usa a pessoa
// de contato, B2C o nome do cliente).
func (c *Call) DisplayName() string {
	if c.Type == CallTypeB2B {
		return c.ContactPerson
	}
	return c.ClientName
}

func (c *Call) Validate() error {
	if c.Type != CallTypeB2B && c.Type != CallTypeB2C {
		return errors.New("type must be B2B or B2C")
	}
	if c.PhoneNumber == "" {
		return errors.New("phone_number is required")
	}
	if c.Type == CallTypeB2B && c.CompanyName == "" {
		return errors.New("company_name is required for B2B calls")
	}
	if c.Type == CallTypeB2C && c.ClientName == "" {
		return errors.New("client_name is required for B2C calls")
	}
	return nil
}

// ScheduleFor aponta o campo de data que corresponde ao estágio alvo de um
// avanço. Retorna nil se o estágio não carrega agendamento.
func (c *Call) ScheduleFor(stage Stage) **time.Time {
	switch stage {
	case StageFollowUp:
		return &c.FollowUpDate
	case StageDemo:
		return &c.DemoDate
	case StageProposal:
		return &c.ProposalDate
	case StageNegotiation:
		return &c.NegotiationDate
	}
	return nil
}

// CallHistory registra cada disposição aplicada a um call.
type CallHistory struct {
	ID          int64     `json:"id"`
	CallID      int64     `json:"call_id"`
	UserID      int64     `json:"user_id"`
	Disposition string    `json:"disposition"`
	Notes       string    `json:"notes,omitempty"`
	CreatedDate time.Time `json:"created_date"`
}
