package testutil

import (
	"time"

	"bank-service/internal/notification"
)

// SentMessage captures one delivery through a NotifierRecorder.
type SentMessage struct {
	Channel   string
	Sender    string
	Recipient string
	Subject   string
	Body      string
}

// NotifierRecorder is a notification.Notifier that records every send.
// Deliveries arrive on Sent, so tests can wait for the fire-and-forget
// welcome message.
type NotifierRecorder struct {
	ChannelName string
	Err         error
	Sent        chan SentMessage
}

var _ notification.Notifier = (*NotifierRecorder)(nil)

func NewNotifierRecorder(channelName string) *NotifierRecorder {
	return &NotifierRecorder{
		ChannelName: channelName,
		Sent:        make(chan SentMessage, 16),
	}
}

func (n *NotifierRecorder) Name() string {
	return n.ChannelName
}

func (n *NotifierRecorder) Send(sender, recipient, subject, body string) error {
	n.Sent <- SentMessage{
		Channel:   n.ChannelName,
		Sender:    sender,
		Recipient: recipient,
		Subject:   subject,
		Body:      body,
	}
	return n.Err
}

// WaitForMessage blocks until a message is recorded or the timeout elapses.
func (n *NotifierRecorder) WaitForMessage(timeout time.Duration) (SentMessage, bool) {
	select {
	case msg := <-n.Sent:
		return msg, true
	case <-time.After(timeout):
		return SentMessage{}, false
	}
}
