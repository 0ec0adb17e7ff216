// internal/infra/telegram/client.go
package telegram

import (
	"time"

	"gopkg.in/telebot.v3"
)

// TelebotAdapter implements the domain telegram.Client interface using
// gopkg.in/telebot.v3. The service only sends outbound admin alerts, so no
// poller or handler registration is needed.
type TelebotAdapter struct {
	bot *telebot.Bot
}

// NewTelebotAdapter creates the bot from a token. The alert channel is
// optional; callers skip construction when no token is configured.
func NewTelebotAdapter(token string) (*TelebotAdapter, error) {
	bot, err := telebot.NewBot(telebot.Settings{
		Token:  token,
		Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		return nil, err
	}
	return &TelebotAdapter{bot: bot}, nil
}

// SendMessage sends a text message to the specified chat.
func (tba *TelebotAdapter) SendMessage(recipientChatID int64, text string, options *telebot.SendOptions) error {
	if options == nil {
		options = &telebot.SendOptions{}
	}

	recipient := &telebot.User{ID: recipientChatID}
	_, err := tba.bot.Send(recipient, text, options)
	return err
}
