// Package notification resolves a named delivery channel to a sender.
// Channels here only log the message; delivery is best effort and callers
// never roll back on a send failure.
package notification

import (
	"log/slog"
)

// Notifier sends a single message through one channel.
type Notifier interface {
	Name() string
	Send(sender, recipient, subject, body string) error
}

// Registry resolves a channel by name, falling back to the default channel
// for unknown names.
type Registry struct {
	defaultChannel Notifier
	channels       map[string]Notifier
}

func NewRegistry(defaultChannel Notifier, others ...Notifier) *Registry {
	channels := map[string]Notifier{
		defaultChannel.Name(): defaultChannel,
	}
	for _, n := range others {
		channels[n.Name()] = n
	}
	return &Registry{
		defaultChannel: defaultChannel,
		channels:       channels,
	}
}

func (r *Registry) Default() Notifier {
	return r.defaultChannel
}

// Preferred returns the channel registered under name, or the default
// channel when the name is unrecognized.
func (r *Registry) Preferred(name string) Notifier {
	if n, ok := r.channels[name]; ok {
		return n
	}
	return r.defaultChannel
}

type emailNotifier struct {
	logger *slog.Logger
}

func NewEmailNotifier(logger *slog.Logger) Notifier {
	return &emailNotifier{logger: logger}
}

func (n *emailNotifier) Name() string {
	return "email"
}

func (n *emailNotifier) Send(sender, recipient, subject, body string) error {
	n.logger.Info("Sending email notification",
		"sender", sender,
		"recipient", recipient,
		"subject", subject,
		"body", body,
	)
	return nil
}

type smsNotifier struct {
	logger *slog.Logger
}

func NewSMSNotifier(logger *slog.Logger) Notifier {
	return &smsNotifier{logger: logger}
}

func (n *smsNotifier) Name() string {
	return "sms"
}

func (n *smsNotifier) Send(sender, recipient, subject, body string) error {
	n.logger.Info("Sending sms notification",
		"sender", sender,
		"recipient", recipient,
		"subject", subject,
		"body", body,
	)
	return nil
}
