package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cam71101/vinted-scanner/internal/metrics"
	domain "github.com/cam71101/vinted-scanner/pkg/types"
)

func testListing() *domain.Listing {
	return &domain.Listing{
		ID:          "4821734",
		Title:       "The North Face Nuptse jacket",
		Price:       domain.Price{Amount: "45.0", Currency: "GBP"},
		Brand:       "The North Face",
		Size:        "M",
		Condition:   "Very good",
		Description: "Worn twice, no marks.",
		PhotoURL:    "https://images1.vinted.net/t/4821734.jpeg",
		URL:         "https://www.vinted.co.uk/items/4821734",
	}
}

func TestDiscordNotifier_SendListing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		statusCode int
		wantErr    bool
		errMsg     string
	}{
		{
			name:       "valid listing sends embed",
			statusCode: http.StatusNoContent,
		},
		{
			name:       "discord returns 429 rate limited",
			statusCode: http.StatusTooManyRequests,
			wantErr:    true,
			errMsg:     "rate limited",
		},
		{
			name:       "discord returns 400 error",
			statusCode: http.StatusBadRequest,
			wantErr:    true,
			errMsg:     "discord returned 400",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var received discordWebhookPayload

			srv := httptest.NewServer(
				http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
					assert.Equal(t, http.MethodPost, r.Method)

					err := json.NewDecoder(r.Body).Decode(&received)
					assert.NoError(t, err)

					w.WriteHeader(tt.statusCode)
				}),
			)
			defer srv.Close()

			l := testListing()
			d := NewDiscordNotifier(srv.URL)
			err := d.SendListing(context.Background(), l)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}

			require.NoError(t, err)
			require.Len(t, received.Embeds, 1)

			embed := received.Embeds[0]
			assert.Equal(t, colorVinted, embed.Color)
			assert.Contains(t, embed.Title, l.Title)
			assert.Equal(t, l.URL, embed.URL)
			assert.Equal(t, l.Description, embed.Description)
			require.NotNil(t, embed.Image)
			assert.Equal(t, l.PhotoURL, embed.Image.URL)

			fieldMap := make(map[string]string)
			for _, f := range embed.Fields {
				fieldMap[f.Name] = f.Value
			}
			assert.Equal(t, "£45.0", fieldMap["Price"])
			assert.Equal(t, "The North Face", fieldMap["Brand"])
			assert.Equal(t, "M", fieldMap["Size"])
			assert.Equal(t, "Very good", fieldMap["Condition"])
		})
	}
}

func TestDiscordNotifier_SendListing_Sparse(t *testing.T) {
	t.Parallel()

	var received discordWebhookPayload

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := json.NewDecoder(r.Body).Decode(&received)
		assert.NoError(t, err)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	l := &domain.Listing{
		ID:          "1",
		Title:       "Scarf",
		Description: strings.Repeat("a", 400),
		URL:         "https://www.vinted.co.uk/items/1",
	}

	d := NewDiscordNotifier(srv.URL)
	require.NoError(t, d.SendListing(context.Background(), l))

	require.Len(t, received.Embeds, 1)
	embed := received.Embeds[0]
	assert.Nil(t, embed.Image)
	assert.Len(t, []rune(embed.Description), 300)

	fieldMap := make(map[string]string)
	for _, f := range embed.Fields {
		fieldMap[f.Name] = f.Value
	}
	assert.Equal(t, "N/A", fieldMap["Price"])
	assert.Equal(t, "N/A", fieldMap["Brand"])
}

func TestDiscordNotifier_LongTitleIsCapped(t *testing.T) {
	t.Parallel()

	var received discordWebhookPayload

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	l := testListing()
	l.Title = strings.Repeat("é", 300)

	d := NewDiscordNotifier(srv.URL)
	require.NoError(t, d.SendListing(context.Background(), l))

	require.Len(t, received.Embeds, 1)
	assert.Len(t, []rune(received.Embeds[0].Title), maxEmbedTitleRunes)
	assert.True(t, strings.HasPrefix(received.Embeds[0].Title, "New Vinted Item: "))
}

func TestDiscordNotifier_NetworkError(t *testing.T) {
	t.Parallel()

	d := NewDiscordNotifier("http://127.0.0.1:1") // nothing listening
	err := d.SendListing(context.Background(), testListing())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sending discord webhook")
}

func TestDiscordNotifier_InvalidWebhookURL(t *testing.T) {
	t.Parallel()

	d := NewDiscordNotifier("://not-a-valid-url")
	err := d.SendListing(context.Background(), testListing())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating discord request")
}

func TestWithHTTPClient(t *testing.T) {
	t.Parallel()

	custom := &http.Client{}
	d := NewDiscordNotifier("https://example.com", WithHTTPClient(custom))
	assert.Same(t, custom, d.client)
}

func getNotificationHistogramSampleCount() uint64 {
	ch := make(chan prometheus.Metric, 1)
	metrics.NotificationDuration.Collect(ch)
	m := <-ch
	pb := &dto.Metric{}
	_ = m.Write(pb)
	return pb.GetHistogram().GetSampleCount()
}

func TestSendListing_ObservesNotificationDuration(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	before := getNotificationHistogramSampleCount()

	d := NewDiscordNotifier(srv.URL)
	require.NoError(t, d.SendListing(context.Background(), testListing()))

	after := getNotificationHistogramSampleCount()
	assert.Greater(t, after, before, "NotificationDuration histogram sample count should increase")
}
