package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sarchlab/vliwdbt/scenario"
	"github.com/sarchlab/vliwdbt/trace"
)

func init() {
	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "straightline",
			Short: "Translate the branch-heavy straight-line region.",
			RunE: func(cmd *cobra.Command, args []string) error {
				r, err := runnerFromFlags(cmd)
				if err != nil {
					return err
				}
				_, err = r.RunStraightLine()
				return err
			},
		},
		&cobra.Command{
			Use:   "reorder",
			Short: "Apply deferred-store reordering to the co-issued load/store packet.",
			RunE: func(cmd *cobra.Command, args []string) error {
				r, err := runnerFromFlags(cmd)
				if err != nil {
					return err
				}
				r.RunReorder()
				return nil
			},
		},
		&cobra.Command{
			Use:   "sploop",
			Short: "Run the single software-pipelined loop.",
			RunE: func(cmd *cobra.Command, args []string) error {
				r, err := runnerFromFlags(cmd)
				if err != nil {
					return err
				}
				_, err = r.RunPipelinedLoop()
				return err
			},
		},
		&cobra.Command{
			Use:   "nested",
			Short: "Run the nested software-pipelined loop.",
			RunE: func(cmd *cobra.Command, args []string) error {
				r, err := runnerFromFlags(cmd)
				if err != nil {
					return err
				}
				_, err = r.RunNestedLoop()
				return err
			},
		},
		&cobra.Command{
			Use:   "all",
			Short: "Run all four scenarios in sequence.",
			RunE: func(cmd *cobra.Command, args []string) error {
				r, err := runnerFromFlags(cmd)
				if err != nil {
					return err
				}
				return r.RunAll()
			},
		},
	)
}

// runnerFromFlags assembles the run configuration and trace sink from
// the config file, environment defaults, and flag overrides.
func runnerFromFlags(cmd *cobra.Command) (*scenario.Runner, error) {
	flags := cmd.Flags()

	config := scenario.DefaultConfig()
	if path, _ := flags.GetString("config"); path != "" {
		loaded, err := scenario.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		config = loaded
	}

	if v, _ := flags.GetInt("budget"); v > 0 {
		config.Budget = v
	}
	if v, _ := flags.GetInt("ilc"); v > 0 {
		config.SingleILC = v
		config.NestedILC = v
	}
	if v, _ := flags.GetInt("rilc"); v > 0 {
		config.NestedRILC = v
	}
	if v, _ := flags.GetInt("a1"); v > 0 {
		config.NestedA1 = v
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	tracer, err := tracerFromFlags(cmd)
	if err != nil {
		return nil, err
	}

	return scenario.NewRunner(config,
		scenario.WithOutput(os.Stdout),
		scenario.WithTracer(tracer),
	), nil
}

func tracerFromFlags(cmd *cobra.Command) (trace.Tracer, error) {
	sink, _ := cmd.Flags().GetString("trace")
	path, _ := cmd.Flags().GetString("trace-file")

	switch sink {
	case "", "none":
		return trace.NilTracer{}, nil

	case "stdout":
		return trace.NewWriterTracer(os.Stdout), nil

	case "csv":
		w := trace.NewCSVTraceWriter(path)
		if err := w.Init(); err != nil {
			return nil, err
		}
		return w, nil

	case "sqlite":
		w := trace.NewSQLiteTraceWriter(path)
		if err := w.Init(); err != nil {
			return nil, err
		}
		return w, nil

	default:
		return nil, fmt.Errorf("unknown trace sink %q", sink)
	}
}
