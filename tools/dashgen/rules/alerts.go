package rules

// AlertRules returns a PrometheusRule CR containing alert rules for
// vinted-scanner runs.
func AlertRules() PrometheusRule {
	return newPrometheusRule("vinted-scanner-alerts", "vinted-scanner-alerts",
		Rule{
			Alert: "VintedScannerNotPushing",
			Expr:  `absent(push_time_seconds{job="vinted_scanner"})`,
			For:   "1h",
			Labels: map[string]string{
				"severity": "warning",
			},
			Annotations: map[string]string{
				"summary":     "Vinted scanner has never pushed metrics",
				"description": "No vinted_scanner job is present on the Pushgateway. The scheduled run may not be configured.",
			},
		},
		Rule{
			Alert: "VintedScannerStale",
			Expr:  `vinted_scanner:scan_staleness_seconds > 7200`,
			For:   "10m",
			Labels: map[string]string{
				"severity": "critical",
			},
			Annotations: map[string]string{
				"summary":     "No Vinted scan has completed in two hours",
				"description": "The last completed scan is more than two hours old. Runs are failing, interrupted, or no longer scheduled.",
			},
		},
		Rule{
			Alert: "VintedScannerAllQueriesFailing",
			Expr:  `vinted_scanner:query_failure_ratio >= 1`,
			For:   "30m",
			Labels: map[string]string{
				"severity": "critical",
			},
			Annotations: map[string]string{
				"summary":     "Every Vinted query is failing",
				"description": "No catalog search succeeded in the latest runs. No new listings can be reported.",
			},
		},
		Rule{
			Alert: "VintedScannerCatalogBlocked",
			Expr:  `vinted_scanner:catalog_block_ratio > 0.5`,
			For:   "30m",
			Labels: map[string]string{
				"severity": "warning",
			},
			Annotations: map[string]string{
				"summary":     "Most catalog requests are rejected",
				"description": "More than half of catalog requests return a non-2xx status, usually a bot-protection challenge.",
			},
		},
		Rule{
			Alert: "VintedScannerNotificationFailures",
			Expr:  `vinted_scanner:notification_failure_ratio > 0`,
			For:   "5m",
			Labels: map[string]string{
				"severity": "warning",
			},
			Annotations: map[string]string{
				"summary":     "New listing notifications are failing",
				"description": "At least one notification failed in the latest run. Check the bot token, chat id, and webhook settings.",
			},
		},
		Rule{
			Alert: "VintedScannerSeenSetErrors",
			Expr:  `sum(vinted_scanner_store_errors_total{job="vinted_scanner"}) > 0`,
			For:   "30m",
			Labels: map[string]string{
				"severity": "warning",
			},
			Annotations: map[string]string{
				"summary":     "Seen-set store is failing",
				"description": "Loading or saving the seen-set failed in the latest runs. Listings will be reported again.",
			},
		},
	)
}
