// Package notify sends decision notifications to an outer sink. It is
// entirely outside the strategy core: pkg/engine never imports it and
// never blocks on a notification being delivered.
package notify

import (
	"fmt"

	tb "gopkg.in/tucnak/telebot.v2"

	"github.com/raykavin/strategycore/pkg/core"
	"github.com/raykavin/strategycore/pkg/logger"
)

// Telegram sends a message to every authorized user on an EXIT or a new
// LONG/SHORT proposal, gated by core.Settings.Telegram. It is a fixed
// fire-and-forget notifier: it never receives commands, since the
// strategy core has no order book for a user to query or mutate.
type Telegram struct {
	client *tb.Bot
	users  []int
	log    logger.Logger
}

// NewTelegram builds a Telegram sink from core.TelegramSettings. Returns a nil
// *Telegram (with no error) when notifications are disabled, so callers
// can hold a possibly-nil sink and treat every method as a no-op on it.
func NewTelegram(settings core.TelegramSettings, log logger.Logger) (*Telegram, error) {
	if !settings.Enabled {
		return nil, nil
	}

	client, err := tb.NewBot(tb.Settings{
		ParseMode: tb.ModeMarkdown,
		Token:     settings.Token,
		Poller:    &tb.LongPoller{Timeout: 0},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	return &Telegram{client: client, users: settings.Users, log: log}, nil
}

// Notify sends text to every authorized user. A nil receiver is a no-op
// so callers never need to check whether notifications are enabled.
func (t *Telegram) Notify(text string) {
	if t == nil {
		return
	}
	for _, user := range t.users {
		if _, err := t.client.Send(&tb.User{ID: int64(user)}, text); err != nil && t.log != nil {
			t.log.WithError(err).Error("failed to send telegram notification")
		}
	}
}

// OnDecision formats a StrategyOutput for pair and sends it, skipping
// HOLD decisions (position_open is the overwhelming majority of calls
// and would otherwise flood the chat on every poll).
func (t *Telegram) OnDecision(pair string, out core.StrategyOutput) {
	if t == nil || out.Signal == core.SignalHold {
		return
	}

	switch out.Signal {
	case core.SignalExit:
		t.Notify(fmt.Sprintf("🔔 EXIT %s\nreason: %s", pair, out.Reason))
	case core.SignalLong, core.SignalShort:
		p := out.ProposedPosition
		t.Notify(fmt.Sprintf(
			"🆕 %s %s\nentry: %.8f\nstop: %.8f\ntarget: %.8f\nqty: %.8f\nleverage: %dx",
			out.Signal, pair, p.EntryPrice, p.StopLoss, p.TakeProfit, p.Quantity, p.Leverage,
		))
	}
}
