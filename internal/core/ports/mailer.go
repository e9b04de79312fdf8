package ports

import "context"

// Mailer delivers account notifications out of band.
type Mailer interface {
	// SendPasswordReset mails a recovery link carrying the plaintext reset
	// token. The token is only ever transmitted here; storage keeps its hash.
	SendPasswordReset(ctx context.Context, to, token string) error
}

// ResetMail is one queued password-reset delivery.
type ResetMail struct {
	To    string
	Token string
}

// MailDispatcher accepts deliveries for asynchronous dispatch. Enqueue must
// not block the caller beyond queue backpressure; delivery failures are the
// dispatcher's to log, never the requester's.
type MailDispatcher interface {
	Enqueue(mail ResetMail)
}
