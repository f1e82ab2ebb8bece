package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/litescript/ls-ephem/internal/render"
	"github.com/litescript/ls-ephem/internal/ui"
	"github.com/litescript/ls-ephem/pkg/horizons"
)

// spanFlags are shared by every table-producing subcommand.
func spanFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "target",
			Aliases:  []string{"t"},
			Usage:    "Target body: numeric id, catalog name, or Horizons lookup string",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "center",
			Usage: "Coordinate origin, e.g. 500@399 or @10",
		},
		&cli.StringFlag{
			Name:  "start",
			Usage: "Window start (YYYY-MM-DD or \"YYYY-MM-DD HH:MM:SS\")",
		},
		&cli.StringFlag{
			Name:  "stop",
			Usage: "Window stop",
		},
		&cli.StringFlag{
			Name:  "step",
			Usage: "Sampling step, e.g. \"1 d\", \"10 m\", or \"60\" for fixed intervals",
		},
	}
}

func bodiesCommand() *cli.Command {
	return &cli.Command{
		Name:  "bodies",
		Usage: "List the major-bodies catalog (planets, moons, spacecraft)",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a, err := setup(cmd)
			if err != nil {
				return err
			}
			records, err := a.client().MajorBodies(ctx)
			if err != nil {
				return err
			}
			return a.emit(render.BodiesTable(records))
		},
	}
}

func observerCommand() *cli.Command {
	return &cli.Command{
		Name:  "observer",
		Usage: "Fetch an observer table (RA/Dec, Az/El, range)",
		Flags: append(spanFlags(),
			&cli.StringFlag{
				Name:    "quantities",
				Aliases: []string{"q"},
				Usage:   "Comma-separated quantity codes (1=astrometric RA/Dec, 2=apparent RA/Dec, 4=Az/El, 20=range)",
				Value:   "4",
			},
			&cli.BoolFlag{
				Name:  "range-km",
				Usage: "Report range in km instead of AU",
			},
			&cli.BoolFlag{
				Name:  "extra-precision",
				Usage: "Request extra angle digits",
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a, err := setup(cmd)
			if err != nil {
				return err
			}
			target := cmd.String("target")

			qs, err := parseQuantities(cmd.String("quantities"))
			if err != nil {
				return err
			}
			opts := []horizons.RequestOption{
				centerOption(cmd, a),
				horizons.WithQuantities(qs...),
				// The decoder reads decimal degrees.
				horizons.WithAngleFormat(horizons.AngleDegrees),
			}
			if cmd.Bool("range-km") {
				opts = append(opts, horizons.WithRangeKm())
			}
			if cmd.Bool("extra-precision") {
				opts = append(opts, horizons.WithExtraPrecision())
			}
			opts, err = appendSpan(opts, cmd, a)
			if err != nil {
				return err
			}

			r, err := horizons.NewRequest(horizons.ResolveCommand(target), horizons.TypeObserver, opts...)
			if err != nil {
				return err
			}
			records, err := a.client().Observer(ctx, r)
			if err != nil {
				return err
			}
			return a.emit(render.ObserverTable(target, records))
		},
	}
}

func vectorsCommand() *cli.Command {
	return &cli.Command{
		Name:  "vectors",
		Usage: "Fetch Cartesian state vectors (position and velocity)",
		Flags: append(spanFlags(),
			&cli.IntFlag{
				Name:  "table",
				Usage: "Vector table layout (2=state vector, 3=state plus range quantities)",
				Value: 3,
			},
			&cli.StringFlag{
				Name:  "correction",
				Usage: "Aberration correction: none, lt, lt+s",
				Value: "none",
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a, err := setup(cmd)
			if err != nil {
				return err
			}
			target := cmd.String("target")

			corr, err := parseCorrection(cmd.String("correction"))
			if err != nil {
				return err
			}
			opts := []horizons.RequestOption{
				centerOption(cmd, a),
				horizons.WithVectorTable(int(cmd.Int("table"))),
				horizons.WithVectorCorrection(corr),
			}
			opts, err = appendSpan(opts, cmd, a)
			if err != nil {
				return err
			}

			r, err := horizons.NewRequest(horizons.ResolveCommand(target), horizons.TypeVectors, opts...)
			if err != nil {
				return err
			}
			records, err := a.client().Vectors(ctx, r)
			if err != nil {
				return err
			}
			return a.emit(render.VectorsTable(target, records))
		},
	}
}

func elementsCommand() *cli.Command {
	return &cli.Command{
		Name:  "elements",
		Usage: "Fetch osculating orbital elements",
		Flags: append(spanFlags(),
			&cli.BoolFlag{
				Name:  "relative-tp",
				Usage: "Report periapsis time relative to each epoch",
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a, err := setup(cmd)
			if err != nil {
				return err
			}
			target := cmd.String("target")

			opts := []horizons.RequestOption{centerOption(cmd, a)}
			if cmd.Bool("relative-tp") {
				opts = append(opts, horizons.WithRelativePeriapsisTime())
			}
			opts, err = appendSpan(opts, cmd, a)
			if err != nil {
				return err
			}

			r, err := horizons.NewRequest(horizons.ResolveCommand(target), horizons.TypeElements, opts...)
			if err != nil {
				return err
			}
			records, err := a.client().Elements(ctx, r)
			if err != nil {
				return err
			}
			return a.emit(render.ElementsTable(target, records))
		},
	}
}

func summaryCommand() *cli.Command {
	return &cli.Command{
		Name:  "summary",
		Usage: "Fetch state vectors and orbital elements for a target in one shot",
		Flags: spanFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a, err := setup(cmd)
			if err != nil {
				return err
			}
			target := cmd.String("target")
			command := horizons.ResolveCommand(target)
			client := a.client()

			baseOpts := func() ([]horizons.RequestOption, error) {
				return appendSpan([]horizons.RequestOption{centerOption(cmd, a)}, cmd, a)
			}

			var (
				vectors  []horizons.VectorRecord
				elements []horizons.ElementRecord
			)
			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				opts, err := baseOpts()
				if err != nil {
					return err
				}
				r, err := horizons.NewRequest(command, horizons.TypeVectors, opts...)
				if err != nil {
					return err
				}
				vectors, err = client.Vectors(gctx, r)
				return err
			})
			g.Go(func() error {
				opts, err := baseOpts()
				if err != nil {
					return err
				}
				r, err := horizons.NewRequest(command, horizons.TypeElements, opts...)
				if err != nil {
					return err
				}
				elements, err = client.Elements(gctx, r)
				return err
			})
			if err := g.Wait(); err != nil {
				return err
			}

			if err := a.emit(render.VectorsTable(target, vectors)); err != nil {
				return err
			}
			fmt.Println()
			return a.emit(render.ElementsTable(target, elements))
		},
	}
}

func uiCommand() *cli.Command {
	return &cli.Command{
		Name:  "ui",
		Usage: "Browse state vectors in an interactive table viewer",
		Flags: spanFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a, err := setup(cmd)
			if err != nil {
				return err
			}
			target := cmd.String("target")
			client := a.client()

			loader := func(ctx context.Context) (render.Table, error) {
				opts, err := appendSpan([]horizons.RequestOption{centerOption(cmd, a)}, cmd, a)
				if err != nil {
					return render.Table{}, err
				}
				r, err := horizons.NewRequest(horizons.ResolveCommand(target), horizons.TypeVectors, opts...)
				if err != nil {
					return render.Table{}, err
				}
				records, err := client.Vectors(ctx, r)
				if err != nil {
					return render.Table{}, err
				}
				return render.VectorsTable(target, records), nil
			}
			return ui.Run(ctx, loader)
		},
	}
}

// centerOption applies the coordinate origin: the --center flag wins over
// the configured default; with neither, the request default (geocenter)
// stands.
func centerOption(cmd *cli.Command, a *app) horizons.RequestOption {
	return func(r *horizons.Request) error {
		center := cmd.String("center")
		if center == "" {
			center = a.cfg.Query.Center
		}
		if center == "" || center == string(horizons.Geocenter) {
			return nil
		}
		return horizons.WithCenter(horizons.Center(center))(r)
	}
}

// appendSpan adds the time window options when --start/--stop are given.
// The step falls back to the configured default.
func appendSpan(opts []horizons.RequestOption, cmd *cli.Command, a *app) ([]horizons.RequestOption, error) {
	startStr, stopStr := cmd.String("start"), cmd.String("stop")
	if startStr == "" && stopStr == "" {
		return opts, nil
	}
	if startStr == "" || stopStr == "" {
		return nil, fmt.Errorf("--start and --stop must be given together")
	}

	start, err := parseTimeFlag(startStr)
	if err != nil {
		return nil, fmt.Errorf("--start: %w", err)
	}
	stop, err := parseTimeFlag(stopStr)
	if err != nil {
		return nil, fmt.Errorf("--stop: %w", err)
	}

	stepStr := cmd.String("step")
	if stepStr == "" {
		stepStr = a.cfg.Query.Step
	}
	step, err := ParseStep(stepStr)
	if err != nil {
		return nil, fmt.Errorf("--step: %w", err)
	}

	return append(opts, horizons.WithTimeSpan(start, stop, step)), nil
}

func parseTimeFlag(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q", s)
}

// parseQuantities parses a comma-separated quantity code list.
func parseQuantities(s string) ([]horizons.Quantity, error) {
	var qs []horizons.Quantity
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		code, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("quantity %q is not a number", part)
		}
		qs = append(qs, horizons.Quantity(code))
	}
	if len(qs) == 0 {
		return nil, fmt.Errorf("no quantity codes in %q", s)
	}
	return qs, nil
}

func parseCorrection(s string) (horizons.VecCorrection, error) {
	switch strings.ToLower(s) {
	case "", "none":
		return horizons.VecCorrNone, nil
	case "lt":
		return horizons.VecCorrLightTime, nil
	case "lt+s", "lt-s":
		return horizons.VecCorrLightTimeStellar, nil
	default:
		return 0, fmt.Errorf("unknown correction %q (use none, lt, lt+s)", s)
	}
}

// ParseStep parses step strings like "1 d", "10m", or "60" (unitless).
func ParseStep(s string) (horizons.StepSize, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return horizons.StepSize{}, fmt.Errorf("empty step")
	}

	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return horizons.StepSize{}, fmt.Errorf("step %q has no leading count", s)
	}
	value, err := strconv.Atoi(s[:i])
	if err != nil {
		return horizons.StepSize{}, fmt.Errorf("step %q: %w", s, err)
	}

	unit := strings.TrimSpace(s[i:])
	switch strings.ToLower(unit) {
	case "":
		return horizons.StepSize{Value: value, Unit: horizons.StepUnitless}, nil
	case "m", "min":
		return horizons.StepSize{Value: value, Unit: horizons.StepMinutes}, nil
	case "h", "hr":
		return horizons.StepSize{Value: value, Unit: horizons.StepHours}, nil
	case "d", "day", "days":
		return horizons.StepSize{Value: value, Unit: horizons.StepDays}, nil
	case "mo":
		return horizons.StepSize{Value: value, Unit: horizons.StepMonths}, nil
	case "y", "yr":
		return horizons.StepSize{Value: value, Unit: horizons.StepYears}, nil
	default:
		return horizons.StepSize{}, fmt.Errorf("step %q has unknown unit %q", s, unit)
	}
}

// client builds the query client from the effective configuration.
func (a *app) client() *horizons.Client {
	var transportOpts []horizons.TransportOption
	if a.cfg.HTTP.BaseURL != "" {
		transportOpts = append(transportOpts, horizons.WithBaseURL(a.cfg.HTTP.BaseURL))
	}
	if a.cfg.HTTP.Timeout.Std() > 0 {
		transportOpts = append(transportOpts, horizons.WithTimeout(a.cfg.HTTP.Timeout.Std()))
	}

	clientOpts := []horizons.ClientOption{
		horizons.WithTransport(horizons.NewHTTPTransport(transportOpts...)),
		horizons.WithLogger(a.logger.Named("client")),
	}
	if a.cfg.Query.Email != "" {
		clientOpts = append(clientOpts, horizons.WithDefaultEmail(a.cfg.Query.Email))
	}
	return horizons.NewClient(clientOpts...)
}

// emit writes a table in the selected output mode.
func (a *app) emit(t render.Table) error {
	switch {
	case a.json:
		return t.WriteJSON(os.Stdout)
	case a.plain:
		t.WritePlain(os.Stdout)
	default:
		t.WriteStyled(os.Stdout)
	}
	return nil
}
