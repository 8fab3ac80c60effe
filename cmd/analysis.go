package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"hrr-numbers/hrr"
	"hrr-numbers/measure"
	"hrr-numbers/probe"
)

func addProbeFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("op", string(probe.OpMul), "operation to check: mul or div")
	f.Int64("limit", 0, "operands below this value; 0 means floor(sqrt(M))")
	f.Int("sample", 0, "check this many random pairs instead of all pairs")
	f.String("seed", "hrr-probe", "PRNG key for --sample")
	f.Int("workers", 0, "parallel workers; 0 means GOMAXPROCS")
	f.Int("max-failures", 20, "failing pairs listed in the report")
}

func (a *app) checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Count products (or quotients) that decode to the wrong integer",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := probe.LoadSettings(a.v)
			if err != nil {
				return err
			}
			b, err := hrr.NewBasis(s.Bound, s.Beta)
			if err != nil {
				return err
			}
			rep, err := probe.Run(cmd.Context(), b, s.Probe, a.log)
			if err != nil {
				return err
			}
			measure.Global.Dump(cmd.ErrOrStderr())
			return probe.WriteYAML(cmd.OutOrStdout(), rep)
		},
	}
	addProbeFlags(cmd)
	return cmd
}

func (a *app) sweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Probe one basis per β and plot error rate against β",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := probe.LoadSettings(a.v)
			if err != nil {
				return err
			}
			points, err := probe.Sweep(cmd.Context(), s.Bound, s.Betas, s.Probe, a.log)
			if err != nil {
				return err
			}
			title := fmt.Sprintf("%s error rate, N=%d", s.Probe.Op, s.Bound)
			if err := probe.Plot(points, title, s.Plot); err != nil {
				return err
			}
			a.log.WithField("path", s.Plot).Info("✔ plot saved")
			return probe.WriteYAML(cmd.OutOrStdout(), points)
		},
	}
	addProbeFlags(cmd)
	cmd.Flags().StringSlice("betas", []string{"5", "10", "25", "50", "75", "100"}, "β values to sweep")
	cmd.Flags().String("plot", "error_rate.png", "plot output path (png, svg or pdf)")
	return cmd
}
