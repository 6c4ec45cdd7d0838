package entity

import (
	"errors"
	"time"
)

type LeadListType string

const (
	LeadListCorporate   LeadListType = "corporate"   // gera calls B2B
	LeadListInstitution LeadListType = "institution" // gera calls B2C
)

// Entidade: LeadList (a "database" carregada pelo time de vendas; cada
// linha vira um call fresh).
type LeadList struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Type        LeadListType `json:"type"`
	Description string       `json:"description,omitempty"`
	Category    string       `json:"category,omitempty"`
	UploadedBy  int64        `json:"uploaded_by"`
	CreatedDate time.Time    `json:"created_date"`
}

func (l *LeadList) Validate() error {
	if l.Name == "" {
		return errors.New("name is required")
	}
	if l.Type != LeadListCorporate && l.Type != LeadListInstitution {
		return errors.New("type must be corporate or institution")
	}
	return nil
}

// CallType mapeia o tipo da lista para o tipo dos calls gerados.
func (l *LeadList) CallType() CallType {
	if l.Type == LeadListCorporate {
		return CallTypeB2B
	}
	return CallTypeB2C
}
