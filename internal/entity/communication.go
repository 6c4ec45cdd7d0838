package entity

import "time"

type CommunicationType string

const (
	CommunicationWhatsApp CommunicationType = "whatsapp"
	CommunicationEmail    CommunicationType = "email"
)

// Communication é o registro de um contato enviado a partir de um call.
type Communication struct {
	ID          int64             `json:"id"`
	CallID      int64             `json:"call_id"`
	UserID      int64             `json:"user_id"`
	Type        CommunicationType `json:"type"`
	Subject     string            `json:"subject,omitempty"`
	Message     string            `json:"message"`
	Status      string            `json:"status"` // sent, delivered, failed
	CreatedDate time.Time         `json:"created_date"`
}
