package mail

import (
	"bytes"
	"fmt"
	"path/filepath"
	"text/template"
	"time"

	"gopkg.in/gomail.v2"
)

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	if from == "" {
		from = "crm@liguemedicina.com"
	}
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
	}
}

func (s *EmailSender) SendFollowUpReminder(to, executiveName, leadName string, stage string, when time.Time) error {
	data := ReminderEmailData{
		ExecutiveName: executiveName,
		LeadName:      leadName,
		Stage:         stage,
		ScheduledAt:   when.Format("02/01/2006 15:04"),
	}

	tmplPath := filepath.Join("templates", "followup_reminder.html")
	t, err := template.ParseFiles(tmplPath)
	if err != nil {
		return fmt.Errorf("erro ao ler template de email: %w", err)
	}

	var body bytes.Buffer
	if err := t.Execute(&body, data); err != nil {
		return fmt.Errorf("erro ao processar template: %w", err)
	}

	subject := fmt.Sprintf("Lembrete: %s com %s em %s", stage, leadName, data.ScheduledAt)
	return s.Send(to, subject, body.String())
}

// Send dispara um email avulso (usado pelo endpoint de comunicações).
func (s *EmailSender) Send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}

	return nil
}
