/*
Package notify delivers the statement of accounts to the student.

PURPOSE:
  After a run is computed, the numbered statement is mailed to the
  student's address with the course operator in copy, mirroring how the
  exercise is graded: the student works from the emailed statement, the
  operator keeps the same copy for reference.

DELIVERY IS BEST-EFFORT:
  The simulation result never depends on the email going out. Callers
  report delivery failures alongside the result instead of failing the
  request; see api/handlers.go.
*/
package notify

import (
	"context"
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"github.com/kopi/venture-engine/engine"
)

// Statement is the rendered result to deliver.
type Statement struct {
	StudentName  string
	StudentEmail string
	Scenario     string
	Body         string
}

// Notifier delivers a statement. Implementations must honor ctx
// cancellation before starting a send.
type Notifier interface {
	Send(ctx context.Context, st Statement) error
}

// SMTPConfig carries the mail account settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	// OperatorEmail receives a copy of every statement.
	OperatorEmail string
}

// Mailer sends statements over SMTP (SSL).
type Mailer struct {
	cfg    SMTPConfig
	dialer *gomail.Dialer
}

// NewMailer builds an SMTP notifier.
func NewMailer(cfg SMTPConfig) *Mailer {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.SSL = cfg.Port == 465
	return &Mailer{cfg: cfg, dialer: d}
}

// Send mails the statement to the student with the operator in copy.
func (m *Mailer) Send(ctx context.Context, st Statement) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", engine.ErrTransport, err)
	}

	msg := BuildMessage(m.cfg, st)
	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("%w: send statement to %s: %v", engine.ErrTransport, st.StudentEmail, err)
	}
	return nil
}

// BuildMessage assembles the outgoing mail. Split out from Send so the
// message contents can be tested without an SMTP server.
func BuildMessage(cfg SMTPConfig, st Statement) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", cfg.From)
	msg.SetHeader("To", st.StudentEmail, cfg.OperatorEmail)
	msg.SetHeader("Subject", fmt.Sprintf("Statement of accounts - %s (%s)", st.StudentName, st.Scenario))
	msg.SetBody("text/plain", st.Body)
	return msg
}

// Discard is a Notifier that drops every statement. Used when no SMTP
// account is configured.
type Discard struct{}

func (Discard) Send(context.Context, Statement) error { return nil }
