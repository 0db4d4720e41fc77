package notifier

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"strings"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"

	"dealsync/internal/domain/entity"
	"dealsync/pkg/contextx"
	"dealsync/pkg/logx"
)

const queueSize = 64

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

var ErrQueueFull = errors.New("review queue is full")

// ReviewNotifier posts orders with custom items to a Telegram chat so that
// someone can map them to real catalog entries. Reviews are queued and sent
// by Run, off the request path.
type ReviewNotifier struct {
	bot     *telego.Bot
	chatID  int64
	reviews chan entity.OrderReview
}

func NewReviewNotifier(token string, chatID int64, opts ...telego.BotOption) (*ReviewNotifier, error) {
	bot, err := telego.NewBot(token, opts...)
	if err != nil {
		return nil, fmt.Errorf("telego.NewBot: %w", err)
	}

	return &ReviewNotifier{
		bot:     bot,
		chatID:  chatID,
		reviews: make(chan entity.OrderReview, queueSize),
	}, nil
}

// NotifyCustomItems queues review without blocking.
func (n *ReviewNotifier) NotifyCustomItems(_ context.Context, review entity.OrderReview) error {
	select {
	case n.reviews <- review:
		return nil
	default:
		return ErrQueueFull
	}
}

// Run sends queued reviews until ctx is done.
func (n *ReviewNotifier) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case review := <-n.reviews:
			if err := n.SendReview(ctx, review); err != nil {
				logger(ctx).Error(
					"review notification failed",
					slog.String(logx.FieldDealID, review.DealID),
					logx.Error(err),
				)
			}
		}
	}
}

func (n *ReviewNotifier) SendReview(ctx context.Context, review entity.OrderReview) error {
	msg := tu.Message(tu.ID(n.chatID), RenderReview(review)).WithParseMode(telego.ModeHTML)

	if _, err := n.bot.SendMessage(ctx, msg); err != nil {
		return fmt.Errorf("bot.SendMessage: %w", err)
	}

	return nil
}

// RenderReview formats review as Telegram HTML.
func RenderReview(review entity.OrderReview) string {
	var b strings.Builder

	fmt.Fprintf(&b, "🧾 <b>Order %s needs review</b>\n\n", html.EscapeString(review.OrderNo))
	fmt.Fprintf(&b, "<b>Deal:</b> %s (%s)\n", html.EscapeString(review.DealTitle), html.EscapeString(review.DealID))
	fmt.Fprintf(&b, "<b>Order id:</b> %d\n\n", review.OrderID)
	fmt.Fprintf(&b, "<b>Custom items:</b> %d\n", len(review.CustomItems))

	for _, item := range review.CustomItems {
		fmt.Fprintf(&b, "• Row %d: %s", item.RowIndex, html.EscapeString(item.Name))

		if item.StockCode != "" {
			fmt.Fprintf(&b, " <code>%s</code>", html.EscapeString(item.StockCode))
		}

		fmt.Fprintf(&b, " × %d @ %s\n", item.Quantity, item.UnitPrice.StringFixed(2))
	}

	return strings.TrimSuffix(b.String(), "\n")
}
