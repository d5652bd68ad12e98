package internal

import (
	"net/smtp"
	"strings"
	"testing"
	"time"
)

func TestMailerDeliversEmergencyAlert(t *testing.T) {
	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte

	mailer := NewMailer(EmailConfig{
		SMTPServer: "smtp.example.com",
		SMTPPort:   587,
		Sender:     "alerts@example.com",
		Password:   "secret",
		Recipients: []string{"ops@example.com"},
	}, NewDiscardLogger())

	mailer.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	}

	mailer.Emergency(EmergencyAlert{
		Hex:              "ABC123",
		Code:             SquawkEmergency,
		Description:      SquawkDescription(SquawkEmergency),
		SustainedSeconds: 45,
		FiredAt:          time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	})

	if gotAddr != "smtp.example.com:587" {
		t.Errorf("addr = %q, want smtp.example.com:587", gotAddr)
	}
	if gotFrom != "alerts@example.com" {
		t.Errorf("from = %q, want the configured sender", gotFrom)
	}
	if len(gotTo) != 1 || gotTo[0] != "ops@example.com" {
		t.Errorf("to = %v, want the configured recipients", gotTo)
	}

	msg := string(gotMsg)
	if !strings.Contains(msg, "Subject: EMERGENCY: Squawk 7700 from ABC123") {
		t.Errorf("message lacks the expected subject: %q", msg)
	}
	if !strings.Contains(msg, "Content-Type: text/html") {
		t.Errorf("message is not flagged as HTML: %q", msg)
	}
	if !strings.Contains(msg, "45 seconds") {
		t.Errorf("message lacks the sustained duration: %q", msg)
	}
}

func TestMailerServiceNoticeRouting(t *testing.T) {
	tests := []struct {
		name              string
		notificationEmail string
		wantTo            []string
	}{
		{
			name:              "dedicated notification address",
			notificationEmail: "pager@example.com",
			wantTo:            []string{"pager@example.com"},
		},
		{
			name:   "falls back to alert recipients",
			wantTo: []string{"ops@example.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotTo []string

			mailer := NewMailer(EmailConfig{
				SMTPServer:        "smtp.example.com",
				SMTPPort:          587,
				Sender:            "alerts@example.com",
				Recipients:        []string{"ops@example.com"},
				NotificationEmail: tt.notificationEmail,
			}, NewDiscardLogger())

			mailer.send = func(_ string, _ smtp.Auth, _ string, to []string, _ []byte) error {
				gotTo = to
				return nil
			}

			mailer.ServiceNotice("monitor started", "Polling has begun.")

			if len(gotTo) != len(tt.wantTo) || gotTo[0] != tt.wantTo[0] {
				t.Errorf("service notice sent to %v, want %v", gotTo, tt.wantTo)
			}

			// Alert mail always goes to the alert recipients.
			mailer.Emergency(EmergencyAlert{Hex: "ABC123", Code: SquawkEmergency})
			if len(gotTo) != 1 || gotTo[0] != "ops@example.com" {
				t.Errorf("alert sent to %v, want the alert recipients", gotTo)
			}
		})
	}
}
