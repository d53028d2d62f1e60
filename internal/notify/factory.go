package notify

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cam71101/vinted-scanner/internal/config"
)

// FromConfig assembles every configured notifier behind one Notifier. A
// target with missing credentials is skipped with an info log; with no
// targets left the result is a NoOpNotifier. The returned close function
// releases producer connections.
func FromConfig(cfg *config.NotificationsConfig, log *slog.Logger) (Notifier, func() error) {
	httpClient := &http.Client{Timeout: cfg.Timeout}
	var (
		targets []Named
		closers []func() error
	)

	if cfg.Telegram.Enabled() {
		tg, err := NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID,
			WithTelegramAPIURL(cfg.Telegram.APIURL),
			WithCurrencySymbol(cfg.CurrencySymbol),
			WithTelegramHTTPClient(httpClient),
		)
		if err != nil {
			log.Warn("telegram notifications disabled", "error", err)
		} else {
			targets = append(targets, Named{Name: "telegram", Notifier: tg})
		}
	} else {
		log.Info("telegram notifications disabled", "reason", "TELEGRAM_BOT_TOKEN or TELEGRAM_CHAT_ID not set")
	}

	if cfg.Discord.WebhookURL != "" {
		targets = append(targets, Named{
			Name: "discord",
			Notifier: NewDiscordNotifier(cfg.Discord.WebhookURL,
				WithHTTPClient(httpClient),
				WithDiscordCurrencySymbol(cfg.CurrencySymbol),
			),
		})
	}

	if len(cfg.Kafka.Brokers) > 0 {
		producer, err := NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.ClientID, cfg.Timeout)
		if err != nil {
			log.Warn("kafka notifications disabled", "brokers", cfg.Kafka.Brokers, "error", err)
		} else {
			k := NewKafkaNotifier(producer, cfg.Kafka.Topic)
			targets = append(targets, Named{Name: "kafka", Notifier: k})
			closers = append(closers, k.Close)
		}
	}

	closeAll := func() error {
		var errs []error
		for _, c := range closers {
			errs = append(errs, c())
		}
		return errors.Join(errs...)
	}

	if len(targets) == 0 {
		return NewNoOpNotifier(log), closeAll
	}

	m := NewMulti(targets...)
	log.Info("notifications enabled", "targets", m.Names())
	return m, closeAll
}
