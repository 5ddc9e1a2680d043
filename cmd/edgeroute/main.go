package main

import (
	"os"

	"github.com/spf13/cobra"
)

type globalFlags struct {
	verbose bool
	mode    string
	smooth  bool
	strict  bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var flags globalFlags

	rootCmd := &cobra.Command{
		Use:          "edgeroute",
		Short:        "Route diagram edges around nodes and render the result",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Log routing fallbacks to stderr")
	rootCmd.PersistentFlags().StringVar(&flags.mode, "mode", "", "Override routing mode: default or orthogonal")
	rootCmd.PersistentFlags().BoolVar(&flags.smooth, "smooth", false, "Override smoothing (curves or rounded corners)")
	rootCmd.PersistentFlags().BoolVar(&flags.strict, "strict", false, "Check whole segments against obstacles")

	rootCmd.AddCommand(routeCmd(&flags))
	rootCmd.AddCommand(exportCmd(&flags))
	rootCmd.AddCommand(viewCmd(&flags))
	return rootCmd
}

func routeCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "route [scene-file]",
		Short: "Print the SVG path of every edge",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, flags, args[0], "paths", "", 1)
		},
	}
}

func exportCmd(flags *globalFlags) *cobra.Command {
	var (
		format string
		output string
		scale  float64
	)

	cmd := &cobra.Command{
		Use:   "export [scene-file]",
		Short: "Write the routed diagram as SVG, PNG or a path listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, flags, args[0], format, output, scale)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "svg", "Export format: svg, png, paths")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file or directory (default: stdout, or <scene>.png beside the scene for PNG)")
	cmd.Flags().Float64Var(&scale, "scale", 1, "Pixels per canvas unit for PNG output")
	return cmd
}

func viewCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "view [scene-file]",
		Short: "Preview the routed diagram in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, flags, args[0])
		},
	}
}
