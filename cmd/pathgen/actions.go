package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"go.viam.com/autopilot/config"
	"go.viam.com/autopilot/logging"
	"go.viam.com/autopilot/path"
	"go.viam.com/autopilot/registry"
	"go.viam.com/autopilot/trajectory"
	"go.viam.com/autopilot/utils"
)

func newLogger(c *cli.Context) logging.Logger {
	logger := logging.NewLogger("pathgen")
	if c.Bool(flagDebug) {
		logger = logging.NewDebugLogger("pathgen")
	}
	logging.ReplaceGlobal(logger)
	return logger
}

func vectorFlag(c *cli.Context, name string) (r3.Vector, error) {
	v := c.Float64Slice(name)
	if len(v) != 3 {
		return r3.Vector{}, errors.Errorf("--%s needs exactly 3 values, got %d", name, len(v))
	}
	return r3.Vector{X: v[0], Y: v[1], Z: v[2]}, nil
}

// SampleAction prints a circle evaluated over its domain.
func SampleAction(c *cli.Context) error {
	center, err := vectorFlag(c, flagCenter)
	if err != nil {
		return err
	}
	normal, err := vectorFlag(c, flagNormal)
	if err != nil {
		return err
	}
	steps := c.Int(flagSteps)
	if steps < 1 {
		return errors.Errorf("--%s must be at least 1, got %d", flagSteps, steps)
	}

	circle := trajectory.NewCircle(center, normal, c.Float64(flagRadius), c.Float64(flagSpeed))
	newLogger(c).Debugw("sampling", "trajectory", circle, "steps", steps)

	fmt.Fprintln(c.App.Writer, sampleTable(circle, steps))
	q := circle.Rotation().Quaternion()
	fmt.Fprintf(c.App.Writer, "frame: %v\nquaternion: (w: %.4f, x: %.4f, y: %.4f, z: %.4f)\n",
		circle.Rotation(), q.Real, q.Imag, q.Jmag, q.Kmag)
	return nil
}

func sampleTable(traj trajectory.Parametric, steps int) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Gamma", "Position", "Velocity", "Yaw (deg)", "Path speed"})
	domain := traj.Domain()
	for i := 0; i <= steps; i++ {
		gamma := domain.Start + domain.Length()*float64(i)/float64(steps)
		p := traj.Position(gamma)
		v := traj.Velocity(gamma)
		t.AppendRow(table.Row{
			fmt.Sprintf("%.3f", gamma),
			fmt.Sprintf("(%.3f, %.3f, %.3f)", p.X, p.Y, p.Z),
			fmt.Sprintf("(%.3f, %.3f, %.3f)", v.X, v.Y, v.Z),
			fmt.Sprintf("%.2f", utils.RadToDeg(traj.Yaw(gamma))),
			fmt.Sprintf("%.6g", traj.PathSpeed(gamma)),
		})
	}
	return t.Render()
}

// AddAction replays request files against the factories a config starts and prints what the
// path manager holds afterwards.
func AddAction(c *cli.Context) error {
	logger := newLogger(c)
	ctx := c.Context
	if ctx == nil {
		ctx = context.Background()
	}

	cfg := config.Default()
	if cfgPath := c.String(flagConfig); cfgPath != "" {
		var err error
		if cfg, err = config.Read(ctx, cfgPath, logger); err != nil {
			return err
		}
		if !c.Bool(flagDebug) {
			logger.SetLevel(cfg.Level())
		}
	}

	reg := prometheus.NewRegistry()
	metrics, err := path.NewMetrics(reg)
	if err != nil {
		return err
	}
	manager := path.NewManager(nil, metrics)
	router, err := registry.NewRouter(ctx, cfg, manager, nil)
	if err != nil {
		return err
	}

	files := c.StringSlice(flagRequest)
	requests, err := readRequests(ctx, files)
	if err != nil {
		return err
	}

	// requests are replayed in order; the path is a sequence
	service := c.String(flagService)
	var errs error
	for i, request := range requests {
		resp, err := router.Call(ctx, service, request)
		if resp != nil {
			fmt.Fprintf(c.App.Writer, "%s: %s\n", files[i], resp)
		}
		if err != nil {
			errs = multierr.Append(errs, errors.Wrapf(err, "request %q", files[i]))
		}
	}

	fmt.Fprintln(c.App.Writer, manager)
	summary, err := metricsTable(reg)
	if err != nil {
		return multierr.Append(errs, err)
	}
	fmt.Fprintln(c.App.Writer, summary)
	return errs
}

// metricsTable renders every counter and gauge gathered from g.
func metricsTable(g prometheus.Gatherer) (string, error) {
	families, err := g.Gather()
	if err != nil {
		return "", errors.Wrap(err, "failed to gather metrics")
	}
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Metric", "Labels", "Value"})
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				labels = append(labels, fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue()))
			}
			var value float64
			switch mf.GetType() {
			case dto.MetricType_COUNTER:
				value = m.GetCounter().GetValue()
			case dto.MetricType_GAUGE:
				value = m.GetGauge().GetValue()
			default:
				continue
			}
			t.AppendRow(table.Row{mf.GetName(), strings.Join(labels, ","), value})
		}
	}
	return t.Render(), nil
}

func readRequests(ctx context.Context, files []string) ([][]byte, error) {
	requests := make([][]byte, len(files))
	errs, ctx := errgroup.WithContext(ctx)
	for i, file := range files {
		i, file := i, file
		errs.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			request, err := os.ReadFile(file)
			if err != nil {
				return errors.Wrapf(err, "failed to read request %q", file)
			}
			requests[i] = request
			return nil
		})
	}
	if err := errs.Wait(); err != nil {
		return nil, err
	}
	return requests, nil
}

// SchemaAction prints the request schema of a factory type.
func SchemaAction(c *cli.Context) error {
	model := c.String(flagType)
	schema := registry.RequestSchemaLookup(model)
	if schema == nil {
		return errors.Errorf("no request schema for factory type %q, known types: %s",
			model, strings.Join(registry.RegisteredFactories(), ", "))
	}
	out, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, string(out))
	return nil
}
