package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// LastScan returns a stat panel showing time since the last completed scan.
func LastScan() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Last Completed Scan").
		Description("Time since a scan last ran to completion").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(`vinted_scanner:scan_staleness_seconds`, "", "A")).
		Unit("s").
		Thresholds(ThresholdsGreenYellowRed(3600, 7200)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeNone)
}

// NovelListings returns a stat panel showing listings reported by the last run.
func NovelListings() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("New Listings (last run)").
		Description("Listings notified for the first time by the most recent scan").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(`max(`+Series("novel_listings_total")+`)`, "", "A")).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemeThresholds()).
		GraphMode(common.BigValueGraphModeArea)
}

// SeenSetSize returns a stat panel showing the persisted seen-set size.
func SeenSetSize() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Seen-Set Size").
		Description("Listing IDs remembered after the most recent scan").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(`max(`+Series("seen_set_size")+`)`, "", "A")).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemeThresholds()).
		GraphMode(common.BigValueGraphModeArea)
}

// FailedQueries returns a stat panel showing the share of queries whose
// search failed in the last run.
func FailedQueries() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Failed Queries %").
		Description("Share of configured queries whose catalog search failed in the last run").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(`vinted_scanner:query_failure_ratio * 100`, "", "A")).
		Unit("percent").
		Thresholds(ThresholdsGreenYellowRed(1, 50)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeNone)
}

// NovelTrend returns a timeseries panel showing new and total listings per
// run over time.
func NovelTrend() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Listings per Run").
		Description("Listings returned by search and how many of them were new").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`max(`+Series("listings_total")+`)`, "returned", "A")).
		WithTarget(PromQuery(`max(`+Series("novel_listings_total")+`)`, "new", "B")).
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// ScanDuration returns a timeseries panel showing how long each run took.
func ScanDuration() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Scan Duration").
		Description("Wall-clock duration of the most recent scan").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`max(`+Series("scan_duration_seconds_sum")+`) / max(`+Series("scan_duration_seconds_count")+`)`,
			"duration", "A",
		)).
		Unit("s").
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}
