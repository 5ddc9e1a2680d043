package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"edgeroute/connections"
	"edgeroute/export"
	"edgeroute/scene"
	"edgeroute/terminal"
)

func newLogger(verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// loadScene reads the scene and applies command line overrides.
func loadScene(cmd *cobra.Command, flags *globalFlags, path string) (*scene.Scene, error) {
	s, err := scene.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading scene: %w", err)
	}

	pf := cmd.Flags()
	if pf.Changed("mode") {
		s.Settings.Mode = flags.mode
	}
	if pf.Changed("smooth") {
		s.Settings.Smooth = flags.smooth
	}
	if pf.Changed("strict") {
		s.Settings.StrictSegments = flags.strict
	}
	return s, nil
}

// routeScene routes every edge of s.
func routeScene(ctx context.Context, s *scene.Scene, logger *slog.Logger) *export.Drawing {
	router := connections.NewRouter(s.RouterOptions(logger))
	results := router.RouteEdges(ctx, s.Nodes, s.CoreEdges(), s.Mode(), s.Settings.Smooth)

	d := &export.Drawing{Nodes: s.Nodes}
	for i, res := range results {
		if res.Commands == nil {
			logger.Warn("edge skipped", slog.String("edge", res.Edge.ID), slog.Any("error", res.Err))
			continue
		}
		d.Edges = append(d.Edges, export.RoutedEdge{
			ID:       res.Edge.ID,
			Label:    s.Label(i),
			Commands: res.Commands,
			Fallback: res.Fallback,
		})
	}
	return d
}

func runExport(cmd *cobra.Command, flags *globalFlags, path, formatName, output string, scale float64) error {
	logger := newLogger(flags.verbose)

	s, err := loadScene(cmd, flags, path)
	if err != nil {
		return err
	}

	format, err := export.ParseFormat(formatName)
	if err != nil {
		return err
	}
	exporter, err := export.NewExporter(format)
	if err != nil {
		return err
	}
	if png, ok := exporter.(*export.PNGExporter); ok && scale > 0 {
		png.Scale = scale
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	drawing := routeScene(ctx, s, logger)

	target := outputPath(output, path, format, exporter)
	if target == "" {
		if err := exporter.Export(drawing, cmd.OutOrStdout()); err != nil {
			return fmt.Errorf("exporting %s: %w", format, err)
		}
	} else if err := writeFile(target, drawing, exporter); err != nil {
		return err
	}

	fallbacks := 0
	for _, e := range drawing.Edges {
		if e.Fallback {
			fallbacks++
		}
	}
	logger.Info("routed scene",
		slog.Int("nodes", len(s.Nodes)),
		slog.Int("edges", len(drawing.Edges)),
		slog.Int("fallbacks", fallbacks),
		slog.String("mode", s.Mode().String()))
	return nil
}

// outputPath resolves where an export goes. An empty result means stdout.
// A directory, or no output for a binary format, gets the scene's base name
// with the exporter's extension.
func outputPath(output, scenePath string, format export.Format, exporter export.Exporter) string {
	base := strings.TrimSuffix(filepath.Base(scenePath), filepath.Ext(scenePath)) + exporter.FileExtension()
	switch {
	case output == "" && format == export.FormatPNG:
		return filepath.Join(filepath.Dir(scenePath), base)
	case output == "":
		return ""
	}
	if info, err := os.Stat(output); err == nil && info.IsDir() {
		return filepath.Join(output, base)
	}
	return output
}

func writeFile(path string, d *export.Drawing, exporter export.Exporter) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	if err := exporter.Export(d, f); err != nil {
		f.Close()
		return fmt.Errorf("exporting %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}

func runView(cmd *cobra.Command, flags *globalFlags, path string) error {
	s, err := loadScene(cmd, flags, path)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to setup terminal: %w", err)
	}
	defer screen.Fini()

	// Logs would corrupt the screen.
	viewer := terminal.NewViewer(screen, s, newLogger(false))
	return viewer.Run(cmd.Context())
}
