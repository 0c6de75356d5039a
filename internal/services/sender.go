package services

// MessageSender delivers a WhatsApp text message. The dialogue manager treats
// delivery as fire-and-forget; a send failure is logged, never surfaced to
// the conversation.
type MessageSender interface {
	SendText(to, body string) error
}
