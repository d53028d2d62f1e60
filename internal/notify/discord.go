package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cam71101/vinted-scanner/internal/metrics"
	domain "github.com/cam71101/vinted-scanner/pkg/types"
)

const (
	// Vinted brand teal.
	colorVinted = 0x09B1BA

	// Discord rejects embeds whose title is longer than this.
	maxEmbedTitleRunes = 256
)

// DiscordNotifier implements Notifier via Discord webhook.
type DiscordNotifier struct {
	webhookURL     string
	currencySymbol string
	client         *http.Client
}

// DiscordOption configures a DiscordNotifier.
type DiscordOption func(*DiscordNotifier)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) DiscordOption {
	return func(d *DiscordNotifier) {
		d.client = c
	}
}

// WithDiscordCurrencySymbol sets the symbol used for prices without a
// currency code.
func WithDiscordCurrencySymbol(sym string) DiscordOption {
	return func(d *DiscordNotifier) {
		if sym != "" {
			d.currencySymbol = sym
		}
	}
}

// NewDiscordNotifier creates a new DiscordNotifier.
func NewDiscordNotifier(webhookURL string, opts ...DiscordOption) *DiscordNotifier {
	d := &DiscordNotifier{
		webhookURL:     webhookURL,
		currencySymbol: DefaultCurrencySymbol,
		client:         http.DefaultClient,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// discordWebhookPayload is the Discord webhook JSON structure.
type discordWebhookPayload struct {
	Embeds []discordEmbed `json:"embeds"`
}

type discordEmbed struct {
	Title       string              `json:"title"`
	URL         string              `json:"url,omitempty"`
	Color       int                 `json:"color"`
	Description string              `json:"description,omitempty"`
	Fields      []discordEmbedField `json:"fields,omitempty"`
	Image       *discordImage       `json:"image,omitempty"`
}

type discordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type discordImage struct {
	URL string `json:"url"`
}

// SendListing sends one listing as a Discord embed.
func (d *DiscordNotifier) SendListing(ctx context.Context, l *domain.Listing) error {
	start := time.Now()
	defer func() {
		metrics.NotificationDuration.Observe(time.Since(start).Seconds())
	}()

	payload := discordWebhookPayload{
		Embeds: []discordEmbed{buildEmbed(l, d.currencySymbol)},
	}
	if err := d.post(ctx, payload); err != nil {
		return err
	}

	variant := "text"
	if l.PhotoURL != "" {
		variant = "photo"
	}
	metrics.NotificationsSentTotal.WithLabelValues("discord", variant).Inc()
	return nil
}

func buildEmbed(l *domain.Listing, currencySymbol string) discordEmbed {
	description := l.Description
	if description == "" {
		description = noDescription
	}

	embed := discordEmbed{
		Title:       truncateRunes("New Vinted Item: "+l.Title, maxEmbedTitleRunes),
		URL:         l.URL,
		Color:       colorVinted,
		Description: TruncateDescription(description),
		Fields: []discordEmbedField{
			{Name: "Price", Value: FormatPrice(l.Price, currencySymbol), Inline: true},
			{Name: "Brand", Value: orNA(l.Brand), Inline: true},
			{Name: "Size", Value: orNA(l.Size), Inline: true},
			{Name: "Condition", Value: orNA(l.Condition), Inline: true},
		},
	}

	if l.PhotoURL != "" {
		embed.Image = &discordImage{URL: l.PhotoURL}
	}

	return embed
}

func (d *DiscordNotifier) post(ctx context.Context, payload discordWebhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling discord payload: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		d.webhookURL,
		bytes.NewReader(body),
	)
	if err != nil {
		return fmt.Errorf("creating discord request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending discord webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("discord rate limited (429)")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return fmt.Errorf("discord returned %d (body unreadable)", resp.StatusCode)
		}
		return fmt.Errorf("discord returned %d: %s", resp.StatusCode, respBody)
	}

	return nil
}
