package mail

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type ReminderEmailData struct {
	ExecutiveName string
	LeadName      string
	Stage         string
	ScheduledAt   string
}
