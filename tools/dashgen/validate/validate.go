// Package validate checks generated dashboards and rules: every PromQL
// expression must parse and reference only known metrics.
package validate

import (
	"fmt"

	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/grafana/grafana-foundation-sdk/go/prometheus"
	"github.com/prometheus/prometheus/promql/parser"

	"github.com/cam71101/vinted-scanner/tools/dashgen/rules"
)

// Result collects validation findings.
type Result struct {
	Errors   []string
	Warnings []string
}

// Ok reports whether no errors were found.
func (r *Result) Ok() bool {
	return len(r.Errors) == 0
}

func (r *Result) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Result) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Metrics returns the metric names an expression selects.
func Metrics(expr string) ([]string, error) {
	node, err := parser.ParseExpr(expr)
	if err != nil {
		return nil, err
	}

	var names []string
	parser.Inspect(node, func(n parser.Node, _ []parser.Node) error {
		if vs, ok := n.(*parser.VectorSelector); ok && vs.Name != "" {
			names = append(names, vs.Name)
		}
		return nil
	})
	return names, nil
}

func checkExpr(r *Result, where, expr string, known map[string]bool) {
	if expr == "" {
		r.errorf("%s: empty expression", where)
		return
	}
	names, err := Metrics(expr)
	if err != nil {
		r.errorf("%s: invalid PromQL %q: %v", where, expr, err)
		return
	}
	if len(names) == 0 {
		r.warnf("%s: expression selects no metrics", where)
	}
	for _, n := range names {
		if !known[n] {
			r.errorf("%s: unknown metric %q", where, n)
		}
	}
}

// Dashboard validates every Prometheus target in d.
func Dashboard(d *dashboard.Dashboard, known map[string]bool) *Result {
	r := &Result{}

	var all []dashboard.Panel
	for _, p := range d.Panels {
		switch {
		case p.Panel != nil:
			all = append(all, *p.Panel)
		case p.RowPanel != nil:
			all = append(all, p.RowPanel.Panels...)
		}
	}

	for i := range all {
		title := fmt.Sprintf("panel %d", i)
		if all[i].Title != nil {
			title = fmt.Sprintf("panel %q", *all[i].Title)
		}
		if len(all[i].Targets) == 0 {
			r.errorf("%s: no targets", title)
		}
		for _, t := range all[i].Targets {
			q, ok := t.(*prometheus.Dataquery)
			if !ok {
				r.errorf("%s: target is %T, not a Prometheus query", title, t)
				continue
			}
			checkExpr(r, title, q.Expr, known)
		}
	}
	return r
}

// Rules validates every rule expression in cr.
func Rules(cr *rules.PrometheusRule, known map[string]bool) *Result {
	r := &Result{}

	for _, g := range cr.Spec.Groups {
		for _, rule := range g.Rules {
			name := rule.Record
			if name == "" {
				name = rule.Alert
			}
			if name == "" {
				r.errorf("group %s: rule without record or alert name", g.Name)
				continue
			}
			checkExpr(r, g.Name+"/"+name, rule.Expr, known)
		}
	}
	return r
}
