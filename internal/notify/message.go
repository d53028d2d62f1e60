package notify

import (
	"fmt"
	"strings"
	"unicode/utf8"

	domain "github.com/cam71101/vinted-scanner/pkg/types"
)

const (
	// DefaultCurrencySymbol prefixes structured prices that carry no
	// currency code.
	DefaultCurrencySymbol = "£"

	maxDescriptionRunes = 300
	ellipsis            = "..."

	notAvailable  = "N/A"
	noDescription = "No description"
)

var currencySymbols = map[string]string{
	"GBP": "£",
	"EUR": "€",
	"USD": "$",
	"PLN": "zł",
	"CZK": "Kč",
	"SEK": "kr",
}

// FormatPrice renders a price for display. Structured amounts get a currency
// prefix, scalar prices pass through, and an absent price is "N/A".
func FormatPrice(p domain.Price, defaultSymbol string) string {
	switch {
	case p.IsStructured():
		if p.Currency == "" {
			if defaultSymbol == "" {
				defaultSymbol = DefaultCurrencySymbol
			}
			return defaultSymbol + p.Amount
		}
		if sym, ok := currencySymbols[strings.ToUpper(p.Currency)]; ok {
			return sym + p.Amount
		}
		return p.Currency + " " + p.Amount
	case p.Raw != "":
		return p.Raw
	default:
		return notAvailable
	}
}

// TruncateDescription caps s at 300 characters. Longer text keeps its first
// 297 characters followed by "...".
func TruncateDescription(s string) string {
	if utf8.RuneCountInString(s) <= maxDescriptionRunes {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxDescriptionRunes-len(ellipsis)]) + ellipsis
}

// FormatMessage builds the plain-text notification body for a listing.
func FormatMessage(l *domain.Listing, currencySymbol string) string {
	description := l.Description
	if description == "" {
		description = noDescription
	}

	var b strings.Builder
	b.WriteString("🆕 New Vinted Item!\n\n")
	fmt.Fprintf(&b, "📌 %s\n", l.Title)
	fmt.Fprintf(&b, "💰 Price: %s\n", FormatPrice(l.Price, currencySymbol))
	fmt.Fprintf(&b, "👕 Brand: %s\n", orNA(l.Brand))
	fmt.Fprintf(&b, "📏 Size: %s\n", orNA(l.Size))
	fmt.Fprintf(&b, "✨ Condition: %s\n\n", orNA(l.Condition))
	fmt.Fprintf(&b, "📝 Description:\n%s\n\n", TruncateDescription(description))
	fmt.Fprintf(&b, "🔗 %s\n", l.URL)
	return b.String()
}

// FormatCaption is FormatMessage capped at limit characters. The description
// and then the title give way first so the link line is kept.
func FormatCaption(l *domain.Listing, currencySymbol string, limit int) string {
	msg := FormatMessage(l, currencySymbol)
	over := utf8.RuneCountInString(msg) - limit
	if over <= 0 {
		return msg
	}

	description := l.Description
	if description == "" {
		description = noDescription
	}

	short := *l
	short.Description, over = shrink(TruncateDescription(description), over)
	short.Title, _ = shrink(l.Title, over)

	return truncateRunes(FormatMessage(&short, currencySymbol), limit)
}

// shrink shortens s by up to over characters, ending it with "...". It
// returns the shortened text and how much is still over.
func shrink(s string, over int) (string, int) {
	runes := []rune(s)
	if over <= 0 || len(runes) <= len(ellipsis) {
		return s, over
	}
	keep := max(len(runes)-over, len(ellipsis))
	return string(runes[:keep-len(ellipsis)]) + ellipsis, over - (len(runes) - keep)
}

func orNA(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}

// truncateRunes cuts s to at most n characters.
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
