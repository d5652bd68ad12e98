package internal

import (
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
	"time"
)

// Mailer delivers alerts by email over SMTP with STARTTLS auth. Sends run
// in the sink caller's goroutine; the poll loop calls sinks after state
// updates, so a slow SMTP server delays the next poll rather than dropping
// state.
type Mailer struct {
	server     string
	port       int
	sender     string
	password   string
	recipients []string
	noticeTo   []string // operational notices go here, not to the alert list
	logger     *slog.Logger

	// send is swapped out in tests.
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewMailer(cfg EmailConfig, logger *slog.Logger) *Mailer {
	noticeTo := cfg.Recipients
	if cfg.NotificationEmail != "" {
		noticeTo = []string{cfg.NotificationEmail}
	}

	return &Mailer{
		server:     cfg.SMTPServer,
		port:       cfg.SMTPPort,
		sender:     cfg.Sender,
		password:   cfg.Password,
		recipients: cfg.Recipients,
		noticeTo:   noticeTo,
		logger:     logger,
		send:       smtp.SendMail,
	}
}

func (m *Mailer) Proximity(alert ProximityAlert) {
	subject := fmt.Sprintf("Aircraft Alert: %s (%s)", alert.Owner, alert.TailNumber)
	body := fmt.Sprintf(
		"<h2>Watched Aircraft Detected</h2>"+
			"<p><b>%s</b> (%s) %s</p>"+
			"<p>Closest approach: <b>%.1f miles %s</b> of home</p>"+
			"<p>Altitude: %s<br>Tracked for: %s<br>Time: %s</p>"+
			"<p>%s</p>",
		alert.Owner, alert.TailNumber, alert.Model,
		alert.ClosestMiles, alert.Direction,
		alert.Closest.AltitudeString(), alert.TrackedFor.Round(time.Second),
		alert.FiredAt.Format(time.RFC1123),
		alert.Description)
	m.deliver(subject, body, m.recipients)
}

func (m *Mailer) Emergency(alert EmergencyAlert) {
	subject := fmt.Sprintf("EMERGENCY: Squawk %s from %s", alert.Code, alert.Hex)
	body := fmt.Sprintf(
		"<h2>Emergency Squawk %s</h2>"+
			"<p>%s</p>"+
			"<p>Aircraft: <b>%s</b> flight %s<br>"+
			"Altitude: %s<br>Sustained for: %d seconds<br>Time: %s</p>",
		alert.Code, alert.Description,
		alert.Hex, alert.Snapshot.Callsign(),
		alert.Snapshot.AltitudeString(), alert.SustainedSeconds,
		alert.FiredAt.Format(time.RFC1123))
	m.deliver(subject, body, m.recipients)
}

// ServiceNotice sends a plain operational message (startup, shutdown, daily
// alive). It goes to the dedicated notification address when one is
// configured, so operational chatter stays out of the alert inboxes.
func (m *Mailer) ServiceNotice(subject, text string) {
	m.deliver(subject, fmt.Sprintf("<p>%s</p>", text), m.noticeTo)
}

func (m *Mailer) deliver(subject, htmlBody string, recipients []string) {
	msg := strings.Join([]string{
		"From: " + m.sender,
		"To: " + strings.Join(recipients, ", "),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=\"UTF-8\"",
		"",
		htmlBody,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%d", m.server, m.port)
	auth := smtp.PlainAuth("", m.sender, m.password, m.server)

	if err := m.send(addr, auth, m.sender, recipients, []byte(msg)); err != nil {
		m.logger.Error("email delivery failed", "subject", subject, "error", err)
		return
	}

	m.logger.Info("email sent", "subject", subject, "recipients", len(recipients))
}
