package rules

// RecordingRules returns a PrometheusRule CR with the derived series used by
// the dashboard and alert rules.
func RecordingRules() PrometheusRule {
	return newPrometheusRule("vinted-scanner-recording-rules", "vinted-scanner-recording",
		Rule{
			Record: "vinted_scanner:scan_staleness_seconds",
			Expr:   `time() - max(vinted_scanner_scan_last_completed_timestamp_seconds{job="vinted_scanner"})`,
		},
		Rule{
			Record: "vinted_scanner:query_failure_ratio",
			Expr: `max(vinted_scanner_query_failures_total{job="vinted_scanner"})` +
				` / clamp_min(max(vinted_scanner_queries_total{job="vinted_scanner"}), 1)`,
		},
		Rule{
			Record: "vinted_scanner:catalog_block_ratio",
			Expr: `sum(vinted_scanner_catalog_requests_total{job="vinted_scanner",outcome="status"})` +
				` / clamp_min(sum(vinted_scanner_catalog_requests_total{job="vinted_scanner"}), 1)`,
		},
		Rule{
			Record: "vinted_scanner:notification_failure_ratio",
			Expr: `max(vinted_scanner_notification_failures_total{job="vinted_scanner"})` +
				` / clamp_min(max(vinted_scanner_novel_listings_total{job="vinted_scanner"}), 1)`,
		},
	)
}
