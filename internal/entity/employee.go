package entity

import (
	"errors"
	"time"
)

const (
	RoleSalesManager   = "sales_manager"
	RoleSalesExecutive = "sales_executive"
)

// Entidade: Employee (gestor ou executivo de vendas)
type Employee struct {
	ID           int64  `json:"id"`
	EmpID        string `json:"empid"`
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // MD5 hex, legado do sistema original
	UserType     string `json:"user_type"`
	UserRole     string `json:"user_role"`
	Department   string `json:"department,omitempty"`
	PhoneNumber  string `json:"phone_number,omitempty"`
	Address      string `json:"address,omitempty"`
	Salary       string `json:"salary,omitempty"`
	Status       string `json:"status,omitempty"`
	Active       string `json:"active"`
	OnlineStatus string `json:"online_status"`

	DOB *time.Time `json:"dob,omitempty"`
	DOJ *time.Time `json:"doj,omitempty"`

	CreatedDate time.Time `json:"created_date"`
}

func (e *Employee) IsManager() bool {
	return e.UserRole == RoleSalesManager
}

func (e *Employee) Validate() error {
	if e.EmpID == "" {
		return errors.New("empid is required")
	}
	if e.FullName == "" {
		return errors.New("full_name is required")
	}
	if e.Email == "" {
		return errors.New("email is required")
	}
	if e.UserRole != RoleSalesManager && e.UserRole != RoleSalesExecutive {
		return errors.New("user_role must be sales_manager or sales_executive")
	}
	return nil
}
