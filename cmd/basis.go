package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"hrr-numbers/params"
	"hrr-numbers/probe"
)

func (a *app) basisCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "basis",
		Short: "Build a basis and write its parameters to <out>/Parameters.json",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := probe.LoadSettings(a.v)
			if err != nil {
				return err
			}
			b, p, err := params.Generate(s.Bound, s.Beta, s.Out)
			if err != nil {
				return err
			}
			a.log.WithField("path", filepath.Join(s.Out, params.FileName)).Info("✔ parameters written")
			a.log.WithField("basis", b.String()).Debug("basis built")
			return probe.WriteYAML(cmd.OutOrStdout(), p)
		},
	}
	cmd.Flags().String("out", "Parameters", "output directory")
	return cmd
}
