// Package queue defines message payloads exchanged over the message broker
// and a small publisher for them.
package queue

// EmailKind distinguishes the templates a downstream mailer renders.
type EmailKind string

const (
	EmailKindResetPassword EmailKind = "resetPassword"
	EmailKindVerifyEmail   EmailKind = "verifyEmail"
)

// EmailJob is published when an auth flow needs a mail sent out of band.
// It carries enough for a consumer to render and deliver the message
// without querying the primary database.
type EmailJob struct {
	Kind      EmailKind `json:"kind"`
	To        string    `json:"to"`
	Name      string    `json:"name"`
	Token     string    `json:"token"`
	ExpiresAt string    `json:"expires_at"`
}
