package main

import "errors"

// KnownMetrics is the set of metric names vinted-scanner pushes plus the
// recording rule names referenced in dashboards and alerts.
var KnownMetrics = map[string]bool{
	// Scan metrics.
	"vinted_scanner_scan_duration_seconds_sum":             true,
	"vinted_scanner_scan_duration_seconds_count":           true,
	"vinted_scanner_scan_last_completed_timestamp_seconds": true,
	"vinted_scanner_queries_total":                         true,
	"vinted_scanner_query_failures_total":                  true,
	"vinted_scanner_listings_total":                        true,
	"vinted_scanner_novel_listings_total":                  true,

	// Catalog metrics.
	"vinted_scanner_catalog_requests_total":                 true,
	"vinted_scanner_catalog_request_duration_seconds_sum":   true,
	"vinted_scanner_catalog_request_duration_seconds_count": true,
	"vinted_scanner_catalog_calls_remaining":                true,
	"vinted_scanner_enrichment_failures_total":              true,

	// Seen-set metrics.
	"vinted_scanner_seen_set_size":      true,
	"vinted_scanner_store_errors_total": true,

	// Notification metrics.
	"vinted_scanner_notifications_sent_total":    true,
	"vinted_scanner_notification_failures_total": true,

	// Recording rules.
	"vinted_scanner:scan_staleness_seconds":     true,
	"vinted_scanner:query_failure_ratio":        true,
	"vinted_scanner:catalog_block_ratio":        true,
	"vinted_scanner:notification_failure_ratio": true,

	// Added by the Pushgateway to every pushed group.
	"push_time_seconds": true,
}

// Config controls which artifacts the generator produces and where they go.
type Config struct {
	OutputDir        string
	DashboardEnabled bool
	RulesEnabled     bool
}

// DefaultConfig returns a Config that generates all artifacts into ../../deploy
// (relative to tools/dashgen/).
func DefaultConfig() Config {
	return Config{
		OutputDir:        "../../deploy",
		DashboardEnabled: true,
		RulesEnabled:     true,
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory must be set")
	}
	if !c.DashboardEnabled && !c.RulesEnabled {
		return errors.New("at least one of dashboard or rules must be enabled")
	}
	return nil
}
