package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/cam71101/vinted-scanner/tools/dashgen/dashboards"
	"github.com/cam71101/vinted-scanner/tools/dashgen/rules"
	"github.com/cam71101/vinted-scanner/tools/dashgen/validate"
)

const generatedHeader = "# Code generated by dashgen. DO NOT EDIT.\n"

// Output paths relative to Config.OutputDir.
var (
	dashboardPath = filepath.Join("grafana", "data", dashboards.UID+".json")
	recordingPath = filepath.Join("prometheus", "vinted-scanner-recording-rules.yaml")
	alertsPath    = filepath.Join("prometheus", "vinted-scanner-alerts.yaml")
)

func main() {
	validateOnly := flag.Bool("validate", false, "validate generated artifacts without writing files")
	outputDir := flag.String("output", "", "override output directory")
	flag.Parse()

	cfg := DefaultConfig()
	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	if err := run(os.Stdout, cfg, *validateOnly); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// artifact is one generated file.
type artifact struct {
	path string
	data []byte
}

func run(out io.Writer, cfg Config, validateOnly bool) error {
	artifacts, err := build(cfg)
	if err != nil {
		return err
	}

	if validateOnly {
		fmt.Fprintln(out, "validation passed")
		return nil
	}

	for _, a := range artifacts {
		path := filepath.Join(cfg.OutputDir, a.path)
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, a.data, 0o600); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		fmt.Fprintf(out, "dashgen: wrote %s\n", path)
	}
	return nil
}

func build(cfg Config) ([]artifact, error) {
	var artifacts []artifact

	if cfg.DashboardEnabled {
		dash, err := dashboards.BuildOverview().Build()
		if err != nil {
			return nil, fmt.Errorf("building dashboard: %w", err)
		}
		if res := validate.Dashboard(&dash, KnownMetrics); !res.Ok() {
			return nil, fmt.Errorf("dashboard: %w", joinFindings(res.Errors))
		}
		data, err := json.MarshalIndent(dash, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encoding dashboard: %w", err)
		}
		artifacts = append(artifacts, artifact{path: dashboardPath, data: append(data, '\n')})
	}

	if cfg.RulesEnabled {
		for _, r := range []struct {
			path string
			cr   rules.PrometheusRule
		}{
			{recordingPath, rules.RecordingRules()},
			{alertsPath, rules.AlertRules()},
		} {
			if res := validate.Rules(&r.cr, KnownMetrics); !res.Ok() {
				return nil, fmt.Errorf("%s: %w", r.cr.Metadata.Name, joinFindings(res.Errors))
			}
			data, err := yaml.Marshal(r.cr)
			if err != nil {
				return nil, fmt.Errorf("encoding %s: %w", r.cr.Metadata.Name, err)
			}
			artifacts = append(artifacts, artifact{path: r.path, data: append([]byte(generatedHeader), data...)})
		}
	}

	return artifacts, nil
}

func joinFindings(findings []string) error {
	errs := make([]error, 0, len(findings))
	for _, f := range findings {
		errs = append(errs, errors.New(f))
	}
	return errors.Join(errs...)
}
