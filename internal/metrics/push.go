package metrics

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Push sends the default registry to a Prometheus Pushgateway. A scan is a
// short-lived batch job, so nothing is around long enough to be scraped.
func Push(ctx context.Context, gatewayURL, job, instance string) error {
	return PushGatherer(ctx, prometheus.DefaultGatherer, gatewayURL, job, instance)
}

// PushGatherer is Push with an explicit gatherer.
func PushGatherer(
	ctx context.Context,
	g prometheus.Gatherer,
	gatewayURL, job, instance string,
) error {
	p := push.New(gatewayURL, job).Gatherer(g)
	if instance != "" {
		p = p.Grouping("instance", instance)
	}
	if err := p.PushContext(ctx); err != nil {
		return fmt.Errorf("pushing metrics to %s: %w", gatewayURL, err)
	}
	return nil
}
