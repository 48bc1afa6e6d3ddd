package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"quill/pkg/config"
	"quill/pkg/observability"
	"quill/pkg/visualtest"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		observability.GetLogger().Error("update failed", zap.Error(err))
		observability.Sync()
		os.Exit(1)
	}
	observability.Sync()
}

// newRootCmd regenerates the reference images used by the visual regression
// tests. The same images are written by
// UPDATE_REFS=1 go test ./pkg/visualtest -run TestReferenceImages.
func newRootCmd() *cobra.Command {
	var (
		dir           string
		width, height int
		level         string
	)
	cmd := &cobra.Command{
		Use:           "update-references",
		Short:         "Regenerate reference PNGs for every *.html fixture in a directory",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if width <= 0 || height <= 0 {
				return fmt.Errorf("viewport must be positive, got %dx%d", width, height)
			}
			observability.InitializeLogger(config.LoggerConfig{Level: level, Format: "console", ServiceName: "update-references"})
			logger := observability.GetLogger()

			pages, err := visualtest.Pages(dir)
			if err != nil {
				return fmt.Errorf("listing fixtures in %s: %w", dir, err)
			}
			if len(pages) == 0 {
				return fmt.Errorf("no *.html fixtures found in %s", dir)
			}
			for _, page := range pages {
				if err := visualtest.UpdateReferenceImage(page.HTMLPath, page.ReferencePath, width, height); err != nil {
					return fmt.Errorf("generating %s: %w", page.ReferencePath, err)
				}
				logger.Info("reference updated", zap.String("path", page.ReferencePath))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated %d reference images\n", len(pages))
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "pkg/visualtest/testdata", "directory holding *.html fixtures")
	cmd.Flags().IntVarP(&width, "width", "w", 800, "viewport width in pixels")
	cmd.Flags().IntVarP(&height, "height", "h", 600, "viewport height in pixels")
	cmd.Flags().StringVar(&level, "log-level", "info", "log level (debug, info, warn, error)")
	return cmd
}
