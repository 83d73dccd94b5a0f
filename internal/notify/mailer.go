// Package notify composes and delivers the umbrella recommendation email.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"

	"github.com/i474232898/umbrella-advisor/internal/advisor"
)

// Mailer sends recommendation emails over SMTP.
type Mailer struct {
	host      string
	port      int
	sender    string
	password  string
	recipient string
	logger    *zap.Logger

	// now is swapped out in tests.
	now func() time.Time
}

func NewMailer(host string, port int, sender, password, recipient string, logger *zap.Logger) *Mailer {
	return &Mailer{
		host:      host,
		port:      port,
		sender:    sender,
		password:  password,
		recipient: recipient,
		logger:    logger,
		now:       time.Now,
	}
}

// Send composes the notification for rec and delivers it. The SMTP session is
// opened, authenticated, and closed within this call on all paths; a failure
// anywhere means nothing was delivered.
func (m *Mailer) Send(ctx context.Context, rec advisor.Recommendation, locationName string) error {
	msg, err := compose(rec, locationName, m.now())
	if err != nil {
		return err
	}

	mm := mail.NewMsg()
	if err := mm.From(m.sender); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := mm.To(m.recipient); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	mm.Subject(msg.Subject)
	mm.SetBodyString(mail.TypeTextPlain, msg.Text)
	mm.AddAlternativeString(mail.TypeTextHTML, msg.HTML)

	client, err := mail.NewClient(m.host,
		mail.WithPort(m.port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.sender),
		mail.WithPassword(m.password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	m.logger.Info("sending notification",
		zap.String("to", m.recipient),
		zap.String("subject", msg.Subject),
	)

	if err := client.DialAndSendWithContext(ctx, mm); err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	return nil
}
