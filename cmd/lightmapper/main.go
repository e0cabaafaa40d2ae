// Command lightmapper bakes diffuse light and hard shadows for a mesh into a
// UV-space PNG lightmap.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"github.com/taigrr/lightmapper/internal/logger"
	"go.uber.org/zap"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := fang.Execute(ctx, newRootCmd()); err != nil {
		logger.Error("command failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "lightmapper",
		Short: "UV-space lightmap baker",
		Long: `lightmapper bakes a single directional light into a grayscale lightmap.

Each triangle is painted into its UV footprint with Lambert diffuse plus an
ambient floor, then every other triangle's silhouette is projected along the
light onto it and the overlap is darkened to ambient only.`,
		SilenceUsage: true,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Sync()
		},
	}

	root.AddCommand(
		newBakeCmd(),
		newStdinCmd(),
		newInfoCmd(),
		newPreviewCmd(),
		newConfigCmd(),
	)
	return root
}
