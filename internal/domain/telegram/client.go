package telegram

import "gopkg.in/telebot.v3"

// Client sends operator-facing alert messages via a Telegram bot. The
// schedule service uses it to surface jobs that exhausted their retry
// budget; wiring it is optional.
type Client interface {
	SendMessage(recipientChatID int64, text string, options *telebot.SendOptions) error
}
