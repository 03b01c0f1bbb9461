// Package bot glues the Telegram transport to the conversation state
// machine: it receives updates over long polling, serializes them per
// owner and answers with texts and keyboards.
package bot

import (
	"context"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	xlog "spendbot/internal/log"
	"spendbot/internal/service"
	"spendbot/internal/session"
)

// API is the slice of the Telegram client the bot needs. *tgbotapi.BotAPI
// satisfies it; tests substitute a fake.
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

type Bot struct {
	api         API
	tracker     *service.ExpenseTracker
	sessions    *session.Store
	logger      *xlog.Logger
	pollTimeout time.Duration

	// now is the clock for draft timestamps and report windows.
	now func() time.Time
}

// NewBot authorizes against the Telegram API and wires up the bot.
func NewBot(token string, pollTimeout time.Duration, tracker *service.ExpenseTracker, logger *xlog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("authorize bot: %w", err)
	}

	logger.Info("Telegram bot authorized", "username", api.Self.UserName)

	return newBot(api, pollTimeout, tracker, logger), nil
}

func newBot(api API, pollTimeout time.Duration, tracker *service.ExpenseTracker, logger *xlog.Logger) *Bot {
	return &Bot{
		api:         api,
		tracker:     tracker,
		sessions:    session.NewStore(),
		logger:      logger.WithComponent(xlog.ComponentBot),
		pollTimeout: pollTimeout,
		now:         time.Now,
	}
}

// Run polls for updates until ctx is canceled, dispatching each one on
// its owner's queue. Handler errors are logged here, centrally; a failed
// update never stops the loop. On cancel the intake stops first and every
// queued update is still handled before Run returns.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = int(b.pollTimeout / time.Second)

	updates := b.api.GetUpdatesChan(u)

	d := newDispatcher(func(ctx context.Context, update tgbotapi.Update) {
		if err := b.handleUpdate(ctx, update); err != nil {
			b.logger.Error("Update handling failed",
				xlog.FieldOwnerID, ownerOf(update),
				xlog.FieldError, err)
		}
	})

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			d.drain()
			b.logger.Info("Bot stopped", xlog.FieldOperation, xlog.OpShutdown)
			return nil
		case update, ok := <-updates:
			if !ok {
				d.drain()
				return nil
			}
			owner := ownerOf(update)
			if owner == 0 {
				continue
			}
			d.enqueue(ctx, owner, update)
		}
	}
}

// ownerOf extracts the scoping user ID, or 0 for updates without one.
func ownerOf(update tgbotapi.Update) int64 {
	if from := update.SentFrom(); from != nil {
		return from.ID
	}
	return 0
}

func (b *Bot) send(chatID int64, text string) {
	b.sendMessage(tgbotapi.NewMessage(chatID, text))
}

func (b *Bot) sendMessage(msg tgbotapi.MessageConfig) {
	if _, err := b.api.Send(msg); err != nil {
		// Delivery failures are logged, not retried.
		b.logger.Error("Failed to send message",
			xlog.FieldChatID, msg.ChatID,
			xlog.FieldError, err)
	}
}
