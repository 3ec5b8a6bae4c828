package mailer

import "context"

// Mailer is the transactional email relay used for application emails.
type Mailer interface {
	Send(ctx context.Context, templateParams map[string]string) error
}
