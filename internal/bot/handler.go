package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"spendbot/internal/core"
	xlog "spendbot/internal/log"
	"spendbot/internal/session"
)

// handleUpdate is the single entry point per update. The dispatcher runs
// it serially per owner, so session reads and writes below never race
// for the same owner.
func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) error {
	switch {
	case update.CallbackQuery != nil:
		return b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.Text != "":
		return b.handleMessage(ctx, update.Message)
	}
	return nil
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) error {
	owner := msg.From.ID

	// Mid-flow, the text is the expected input for the pending action and
	// nothing else; commands and button labels get no special treatment.
	state := b.sessions.Peek(owner)
	if state.Action != session.ActionNone {
		return b.continueAction(ctx, msg, state)
	}

	if msg.IsCommand() {
		switch msg.Command() {
		case commandStart:
			b.sendMainMenu(msg.Chat.ID)
		case commandClean:
			return b.clearData(ctx, msg.Chat.ID, owner)
		}
		return nil
	}

	switch msg.Text {
	case buttonNewEntry:
		b.sendCategoryPicker(msg.Chat.ID)
	case buttonWeeklyReport:
		return b.sendReport(ctx, msg.Chat.ID, owner, core.WindowWeek)
	case buttonMonthlyReport:
		return b.sendReport(ctx, msg.Chat.ID, owner, core.WindowMonth)
	case buttonLimit:
		b.startLimitFlow(msg.Chat.ID, owner)
	}
	// Unknown idle text is ignored without a reply.
	return nil
}

func (b *Bot) continueAction(ctx context.Context, msg *tgbotapi.Message, state session.Session) error {
	switch state.Action {
	case session.ActionAwaitingCost:
		b.handleCostInput(msg)
	case session.ActionAwaitingNotes:
		return b.handleNotesInput(ctx, msg, state)
	case session.ActionAwaitingLimit:
		return b.handleLimitInput(ctx, msg)
	}
	return nil
}

// handleCallback reacts to category-picker clicks. Every click is
// acknowledged so the Telegram UI clears its pending indicator, including
// clicks that are ignored because a flow is already running.
func (b *Bot) handleCallback(ctx context.Context, callback *tgbotapi.CallbackQuery) error {
	defer b.ackCallback(callback.ID)

	if callback.Message == nil || !strings.HasPrefix(callback.Data, callbackCategoryPrefix) {
		return nil
	}

	owner := callback.From.ID
	if b.sessions.Peek(owner).Action != session.ActionNone {
		return nil
	}

	category := strings.TrimPrefix(callback.Data, callbackCategoryPrefix)
	if category == "" {
		return nil
	}

	// The draft keeps the pick time, not the later commit time.
	b.sessions.Update(owner, func(s *session.Session) {
		s.Action = session.ActionAwaitingCost
		s.Draft = &core.Entry{
			OwnerID:   owner,
			Category:  category,
			CreatedAt: b.now(),
		}
	})

	b.logger.Debug("Spending flow started",
		xlog.FieldOwnerID, owner,
		xlog.FieldCategory, category)

	b.send(callback.Message.Chat.ID, askCostText)
	return nil
}

func (b *Bot) handleCostInput(msg *tgbotapi.Message) {
	amount, err := core.ParseAmount(msg.Text)
	if err != nil {
		b.send(msg.Chat.ID, badCostText)
		return
	}

	advanced := false
	b.sessions.Update(msg.From.ID, func(s *session.Session) {
		if s.Draft == nil {
			// Awaiting a cost without a draft is a broken flow; drop it
			// instead of wedging, same as handleNotesInput.
			s.Reset()
			return
		}
		s.Draft.Amount = amount
		s.Action = session.ActionAwaitingNotes
		advanced = true
	})
	if !advanced {
		return
	}

	b.send(msg.Chat.ID, askNotesText)
}

func (b *Bot) handleNotesInput(ctx context.Context, msg *tgbotapi.Message, state session.Session) error {
	if state.Draft == nil {
		// Should be impossible; drop the broken flow instead of wedging.
		b.sessions.Update(msg.From.ID, func(s *session.Session) { s.Reset() })
		return fmt.Errorf("awaiting notes without a draft for owner %d", msg.From.ID)
	}

	note := msg.Text
	if strings.EqualFold(note, noNoteWord) {
		note = core.NoNoteText
	}

	entry := *state.Draft
	entry.Note = note

	if err := b.tracker.RecordEntry(ctx, &entry); err != nil {
		// Draft and pending action stay put so the user can retry.
		b.send(msg.Chat.ID, saveFailedText)
		return fmt.Errorf("commit entry: %w", err)
	}

	b.sessions.Update(msg.From.ID, func(s *session.Session) { s.Reset() })

	b.send(msg.Chat.ID, fmt.Sprintf(recordedTextFmt, entry.Category, entry.Amount, entry.Note))
	return nil
}

func (b *Bot) handleLimitInput(ctx context.Context, msg *tgbotapi.Message) error {
	amount, err := core.ParseAmount(msg.Text)
	if err != nil {
		b.send(msg.Chat.ID, badLimitText)
		return nil
	}

	if err := b.tracker.SetLimit(ctx, msg.From.ID, amount); err != nil {
		b.send(msg.Chat.ID, saveFailedText)
		return fmt.Errorf("set limit: %w", err)
	}

	b.sessions.Update(msg.From.ID, func(s *session.Session) { s.Reset() })

	b.send(msg.Chat.ID, fmt.Sprintf(limitSetTextFmt, amount))
	return nil
}

func (b *Bot) sendMainMenu(chatID int64) {
	msg := tgbotapi.NewMessage(chatID, greetingText)
	msg.ReplyMarkup = mainKeyboard()
	b.sendMessage(msg)
}

func (b *Bot) sendCategoryPicker(chatID int64) {
	msg := tgbotapi.NewMessage(chatID, pickCategoryText)
	msg.ReplyMarkup = categoryKeyboard()
	b.sendMessage(msg)
}

func (b *Bot) startLimitFlow(chatID, ownerID int64) {
	b.sessions.Update(ownerID, func(s *session.Session) {
		s.Action = session.ActionAwaitingLimit
	})
	b.send(chatID, askLimitText)
}

func (b *Bot) sendReport(ctx context.Context, chatID, ownerID int64, window core.Window) error {
	rows, err := b.tracker.Totals(ctx, ownerID, window, b.now())
	if err != nil {
		b.send(chatID, reportFailedText)
		return fmt.Errorf("%s report: %w", window, err)
	}

	title, empty := weeklyReportTitle, weeklyReportEmpty
	if window == core.WindowMonth {
		title, empty = monthlyReportTitle, monthlyReportEmpty
	}

	b.send(chatID, core.RenderReport(title, empty, rows))
	return nil
}

func (b *Bot) clearData(ctx context.Context, chatID, ownerID int64) error {
	if err := b.tracker.ClearData(ctx, ownerID); err != nil {
		b.send(chatID, clearFailedText)
		return fmt.Errorf("clear data: %w", err)
	}

	b.send(chatID, clearedText)
	return nil
}

func (b *Bot) ackCallback(id string) {
	if _, err := b.api.Request(tgbotapi.NewCallback(id, "")); err != nil {
		b.logger.Error("Failed to answer callback", xlog.FieldError, err)
	}
}
