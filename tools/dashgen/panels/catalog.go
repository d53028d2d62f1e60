package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// CatalogOutcomes returns a timeseries panel showing catalog requests per run
// split by outcome.
func CatalogOutcomes() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Catalog Requests by Outcome").
		Description("Requests to the catalog per run: ok, non-2xx status, or transport error").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(
			`sum by (outcome) (`+Series("catalog_requests_total")+`)`,
			"{{outcome}}", "A",
		)).
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleBars)
}

// CatalogLatency returns a timeseries panel showing mean catalog latency per
// endpoint.
func CatalogLatency() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Catalog Latency").
		Description("Mean catalog request duration per endpoint in the last run").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(
			`sum by (endpoint) (`+Series("catalog_request_duration_seconds_sum")+`) / `+
				`sum by (endpoint) (`+Series("catalog_request_duration_seconds_count")+`)`,
			"{{endpoint}}", "A",
		)).
		Unit("s").
		FillOpacity(10).
		LineWidth(2).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// BlockRatio returns a stat panel showing the share of catalog requests
// rejected with a non-2xx status.
func BlockRatio() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Blocked Requests %").
		Description("Share of catalog requests answered with a non-2xx status, usually bot protection").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(`vinted_scanner:catalog_block_ratio * 100`, "", "A")).
		Unit("percent").
		Thresholds(ThresholdsGreenYellowRed(10, 50)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeArea)
}
