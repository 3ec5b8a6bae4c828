package mailer

import "context"

// StubMailer swallows sends; used when the relay is not configured and in
// tests.
type StubMailer struct{}

func (StubMailer) Send(ctx context.Context, templateParams map[string]string) error {
	return nil
}
