// Package dashboards assembles Grafana dashboard definitions from panel builders.
package dashboards

import (
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"

	"github.com/cam71101/vinted-scanner/tools/dashgen/panels"
)

// UID is the stable dashboard identifier.
const UID = "vinted-scanner-overview"

// BuildOverview constructs the Vinted Scanner dashboard.
func BuildOverview() *dashboard.DashboardBuilder {
	b := dashboard.NewDashboardBuilder("Vinted Scanner").
		Uid(UID).
		Tags([]string{"vinted", "vinted-scanner"}).
		Refresh("1m").
		Time("now-7d", "now").
		Timezone("browser").
		Editable().
		Tooltip(dashboard.DashboardCursorSyncCrosshair).
		WithVariable(datasourceVar())

	b.WithRow(dashboard.NewRowBuilder("Last Run").
		WithPanel(panels.LastScan()).
		WithPanel(panels.NovelListings()).
		WithPanel(panels.SeenSetSize()).
		WithPanel(panels.FailedQueries()))

	b.WithRow(dashboard.NewRowBuilder("Scans").
		WithPanel(panels.NovelTrend()).
		WithPanel(panels.ScanDuration()))

	b.WithRow(dashboard.NewRowBuilder("Catalog").
		WithPanel(panels.CatalogOutcomes()).
		WithPanel(panels.CatalogLatency()).
		WithPanel(panels.BlockRatio()))

	b.WithRow(dashboard.NewRowBuilder("Delivery").
		WithPanel(panels.NotificationsSent()).
		WithPanel(panels.NotificationFailures()).
		WithPanel(panels.StoreErrors()))

	return b
}

func datasourceVar() *dashboard.DatasourceVariableBuilder {
	return dashboard.NewDatasourceVariableBuilder("datasource").
		Label("Datasource").
		Type("prometheus")
}
