package provider

import "context"

// Message is one outbound email: transient, constructed per dispatch.
type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

type EmailProvider interface {
	Send(ctx context.Context, msg Message) error
}
