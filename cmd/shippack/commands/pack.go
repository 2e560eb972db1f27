package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/piwi3910/ShipPack/internal/engine"
	"github.com/piwi3910/ShipPack/internal/export"
	"github.com/piwi3910/ShipPack/internal/metrics"
	"github.com/piwi3910/ShipPack/internal/model"
	"github.com/piwi3910/ShipPack/internal/project"
	"github.com/piwi3910/ShipPack/internal/telemetry"
)

type packFlags struct {
	out          string
	pdf          string
	dxf          string
	labels       string
	metricsFile  string
	traceFile    string
	otlpEndpoint string
	timeout      time.Duration
}

func newPackCmd(a *app) *cobra.Command {
	var f packFlags

	cmd := &cobra.Command{
		Use:   "pack <boxes-file>",
		Short: "Pack a box list and write the result",
		Long: `Pack the boxes listed in a CSV, Excel (.xlsx) or DXF file.

The result is always written as JSON. PDF, DXF and label outputs are
written when their flag is given or enabled in the app config.

Example:
  shippack pack boxes.csv --alpha 0.8 --pdf layout.pdf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runPack(cmd, args[0], f)
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.out, "out", "o", "", "result JSON path (default <boxes-file>.result.json in the output dir)")
	fl.StringVar(&f.pdf, "pdf", "", "write a PDF layout")
	fl.StringVar(&f.dxf, "dxf", "", "write a DXF layout")
	fl.StringVar(&f.labels, "labels", "", "write a PDF of QR box labels")
	fl.StringVar(&f.metricsFile, "metrics-file", "", "write Prometheus metrics in textfile format")
	fl.StringVar(&f.traceFile, "trace-file", "", "write OpenTelemetry spans as JSON")
	fl.StringVar(&f.otlpEndpoint, "otlp-endpoint", "", "export spans to an OTLP/HTTP endpoint")
	fl.DurationVar(&f.timeout, "timeout", 0, "stop annealing after this long and keep the best-so-far layout")
	return cmd
}

func (a *app) runPack(cmd *cobra.Command, boxesPath string, f packFlags) error {
	specs, err := a.loadBoxes(boxesPath)
	if err != nil {
		return err
	}
	catalog, err := a.catalog()
	if err != nil {
		return err
	}
	settings := a.settings()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	shutdown, err := a.initTracing(ctx, f)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			a.logger.Warn("failed to flush traces", "error", err)
		}
	}()

	opts := []engine.Option{engine.WithLogger(a.logger)}
	var rec *metrics.Recorder
	if f.metricsFile != "" {
		rec = metrics.NewRecorder()
		opts = append(opts, engine.WithObserver(rec))
	}

	res, err := engine.New(settings, catalog, opts...).Optimize(ctx, specs)
	if err != nil {
		if !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		a.logger.Warn("annealing stopped early, keeping current layout", "reason", err)
	}

	renderSummary(cmd.OutOrStdout(), res)

	outPath := f.out
	if outPath == "" {
		outPath = a.defaultOutput(boxesPath, ".result.json")
	}
	if err := project.SaveResult(outPath, boxesPath, catalog, res); err != nil {
		return err
	}
	a.logger.Info("result written", "path", outPath, "run_id", res.RunID)
	a.rememberRun(outPath)

	if err := a.writeOutputs(boxesPath, res, f); err != nil {
		return err
	}

	if rec != nil {
		if err := rec.WriteTextfile(f.metricsFile); err != nil {
			return err
		}
		a.logger.Info("metrics written", "path", f.metricsFile)
	}
	return nil
}

// initTracing installs the tracer provider. The returned shutdown also closes
// the trace file, if any.
func (a *app) initTracing(ctx context.Context, f packFlags) (func(context.Context) error, error) {
	cfg := telemetry.Config{
		ServiceName:    "shippack",
		ServiceVersion: CurrentVersion,
		Endpoint:       f.otlpEndpoint,
	}
	var traceOut *os.File
	if f.traceFile != "" {
		out, err := os.Create(f.traceFile)
		if err != nil {
			return nil, fmt.Errorf("failed to create trace file: %w", err)
		}
		traceOut = out
		cfg.Writer = out
	}

	shutdown, err := telemetry.Init(ctx, cfg)
	if err != nil {
		if traceOut != nil {
			traceOut.Close()
		}
		return nil, err
	}
	return func(ctx context.Context) error {
		err := shutdown(ctx)
		if traceOut != nil {
			if cerr := traceOut.Close(); err == nil {
				err = cerr
			}
		}
		return err
	}, nil
}

// writeOutputs renders the optional layout files. A flag path wins; an
// enabled app config preference derives the path from the boxes file.
func (a *app) writeOutputs(boxesPath string, res model.PackResult, f packFlags) error {
	outputs := []struct {
		name    string
		path    string
		enabled bool
		suffix  string
		write   func(string, model.PackResult) error
	}{
		{"pdf", f.pdf, a.appCfg.WritePDF, ".layout.pdf", export.ExportPDF},
		{"dxf", f.dxf, a.appCfg.WriteDXF, ".layout.dxf", export.ExportDXF},
		{"labels", f.labels, a.appCfg.WriteLabels, ".labels.pdf", export.ExportLabels},
	}

	for _, o := range outputs {
		path := o.path
		if path == "" && o.enabled {
			path = a.defaultOutput(boxesPath, o.suffix)
		}
		if path == "" {
			continue
		}
		if err := o.write(path, res); err != nil {
			return fmt.Errorf("failed to write %s: %w", o.name, err)
		}
		a.logger.Info("output written", "kind", o.name, "path", path)
	}
	return nil
}

// defaultOutput names an output after the boxes file, in the output dir when
// one is configured and next to the boxes file otherwise.
func (a *app) defaultOutput(boxesPath, suffix string) string {
	base := strings.TrimSuffix(filepath.Base(boxesPath), filepath.Ext(boxesPath)) + suffix
	dir := a.v.GetString(keyOutputDir)
	if dir == "" {
		dir = filepath.Dir(boxesPath)
	}
	return filepath.Join(dir, base)
}

func (a *app) rememberRun(path string) {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	a.appCfg.AddRecentRun(path)
	if err := project.SaveAppConfig(a.appConfigPath, a.appCfg); err != nil {
		a.logger.Warn("failed to update recent runs", "error", err)
	}
}
