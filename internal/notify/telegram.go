package notify

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/cam71101/vinted-scanner/internal/metrics"
	domain "github.com/cam71101/vinted-scanner/pkg/types"
)

const (
	defaultTelegramAPIURL = "https://api.telegram.org"

	// Telegram rejects photo captions and messages longer than these.
	maxCaptionRunes = 1024
	maxMessageRunes = 4096
)

// TelegramNotifier implements Notifier via the Telegram Bot API. Listings
// with a photo go out as sendPhoto with the message as caption, everything
// else as sendMessage. Exactly one call is made per listing.
type TelegramNotifier struct {
	token          string
	chatID         string
	apiURL         string
	currencySymbol string
	client         *http.Client
	bot            *bot.Bot
}

// TelegramOption configures a TelegramNotifier.
type TelegramOption func(*TelegramNotifier)

// WithTelegramAPIURL overrides the Bot API base URL.
func WithTelegramAPIURL(u string) TelegramOption {
	return func(t *TelegramNotifier) {
		if u != "" {
			t.apiURL = strings.TrimRight(u, "/")
		}
	}
}

// WithCurrencySymbol sets the symbol used for prices without a currency code.
func WithCurrencySymbol(sym string) TelegramOption {
	return func(t *TelegramNotifier) {
		if sym != "" {
			t.currencySymbol = sym
		}
	}
}

// WithTelegramHTTPClient sets a custom HTTP client.
func WithTelegramHTTPClient(c *http.Client) TelegramOption {
	return func(t *TelegramNotifier) {
		t.client = c
	}
}

// NewTelegramNotifier creates a notifier posting to chatID. No request is
// made until the first listing is sent.
func NewTelegramNotifier(token, chatID string, opts ...TelegramOption) (*TelegramNotifier, error) {
	t := &TelegramNotifier{
		token:          token,
		chatID:         chatID,
		apiURL:         defaultTelegramAPIURL,
		currencySymbol: DefaultCurrencySymbol,
		client:         &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(t)
	}

	b, err := bot.New(token,
		bot.WithSkipGetMe(),
		bot.WithServerURL(t.apiURL),
		bot.WithHTTPClient(t.client.Timeout, t.client),
	)
	if err != nil {
		return nil, fmt.Errorf("creating telegram bot: %w", redactToken(err, token))
	}
	t.bot = b
	return t, nil
}

// SendListing implements Notifier.
func (t *TelegramNotifier) SendListing(ctx context.Context, l *domain.Listing) error {
	start := time.Now()
	defer func() {
		metrics.NotificationDuration.Observe(time.Since(start).Seconds())
	}()

	if l.PhotoURL != "" {
		_, err := t.bot.SendPhoto(ctx, &bot.SendPhotoParams{
			ChatID:  t.chatID,
			Photo:   &models.InputFileString{Data: l.PhotoURL},
			Caption: FormatCaption(l, t.currencySymbol, maxCaptionRunes),
		})
		if err != nil {
			return fmt.Errorf("telegram sendPhoto: %w", redactToken(err, t.token))
		}
		metrics.NotificationsSentTotal.WithLabelValues("telegram", "photo").Inc()
		return nil
	}

	_, err := t.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: t.chatID,
		Text:   FormatCaption(l, t.currencySymbol, maxMessageRunes),
	})
	if err != nil {
		return fmt.Errorf("telegram sendMessage: %w", redactToken(err, t.token))
	}
	metrics.NotificationsSentTotal.WithLabelValues("telegram", "text").Inc()
	return nil
}

type redactedError struct {
	msg string
	err error
}

func (e *redactedError) Error() string { return e.msg }
func (e *redactedError) Unwrap() error { return e.err }

// redactToken hides the bot token, which the Bot API embeds in every
// request URL and therefore in transport errors.
func redactToken(err error, token string) error {
	if token == "" || !strings.Contains(err.Error(), token) {
		return err
	}
	return &redactedError{
		msg: strings.ReplaceAll(err.Error(), token, "<redacted>"),
		err: err,
	}
}
