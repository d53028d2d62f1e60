package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// NotificationsSent returns a timeseries panel showing notifications per run
// by notifier and variant.
func NotificationsSent() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Notifications Sent").
		Description("Notifications delivered per run by target and message variant").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(
			`sum by (notifier, variant) (`+Series("notifications_sent_total")+`)`,
			"{{notifier}} {{variant}}", "A",
		)).
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("sum")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleBars)
}

// NotificationFailures returns a stat panel showing failed deliveries in the
// last run.
func NotificationFailures() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Notification Failures").
		Description("Listings whose notification failed in the last run").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(`max(`+Series("notification_failures_total")+`)`, "", "A")).
		Thresholds(ThresholdsGreenYellowRed(1, 5)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeArea)
}

// StoreErrors returns a timeseries panel showing seen-set load and save
// failures by backend.
func StoreErrors() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Seen-Set Store Errors").
		Description("Failed seen-set loads and saves per run; a failed save means duplicates next run").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(
			`sum by (backend, operation) (`+Series("store_errors_total")+`)`,
			"{{backend}} {{operation}}", "A",
		)).
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenYellowRed(1, 3)).
		ColorScheme(ColorSchemeThresholds()).
		DrawStyle(common.GraphDrawStyleBars)
}
