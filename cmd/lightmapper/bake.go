package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/taigrr/lightmapper/internal/config"
	"github.com/taigrr/lightmapper/internal/logger"
	"github.com/taigrr/lightmapper/pkg/lightmap"
	"github.com/taigrr/lightmapper/pkg/models"
	"github.com/taigrr/lightmapper/pkg/render"
	"go.uber.org/zap"
)

// overlayColor marks UV edges when the overlay is enabled.
var overlayColor = render.ColorRed

func newBakeCmd() *cobra.Command {
	var flags config.Flags

	cmd := &cobra.Command{
		Use:   "bake <mesh.obj|mesh.glb> <out.png>",
		Short: "Bake a lightmap for a mesh",
		Example: `  lightmapper bake scene.obj scene_lm.png --width 1024 --height 1024
  lightmapper bake scene.glb out.png --azimuth 30 --elevation 60 --overlay`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(&flags)
			if err != nil {
				return err
			}
			return bake(cmd.Context(), args[0], args[1], cfg)
		},
	}
	flags.Register(cmd.Flags())
	return cmd
}

func newStdinCmd() *cobra.Command {
	var flags config.Flags

	cmd := &cobra.Command{
		Use:   "stdin",
		Short: "Read <mesh> <out.png> <width> <height> from standard input and bake",
		Long: `stdin reads four whitespace separated values from standard input:
the mesh path, the output PNG path, the lightmap width and height. Other
settings come from the config file and flags.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(&flags)
			if err != nil {
				return err
			}
			job, err := readJob(cmd.InOrStdin())
			if err != nil {
				return err
			}
			cfg.Bake.Width, cfg.Bake.Height = job.width, job.height
			return bake(cmd.Context(), job.mesh, job.out, cfg)
		},
	}
	flags.Register(cmd.Flags())
	return cmd
}

// loadConfig resolves defaults < file < flags and starts logging.
func loadConfig(flags *config.Flags) (*config.Config, error) {
	cfg, err := config.Load(flags.ConfigPath)
	if err != nil {
		return nil, err
	}
	flags.Apply(cfg)

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, nil
}

type bakeJob struct {
	mesh, out     string
	width, height int
}

// readJob scans the four stdin parameters.
func readJob(r io.Reader) (bakeJob, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)

	var words []string
	for len(words) < 4 && sc.Scan() {
		words = append(words, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return bakeJob{}, fmt.Errorf("read stdin: %w", err)
	}
	if len(words) < 4 {
		return bakeJob{}, fmt.Errorf("expected <mesh> <out.png> <width> <height>, got %d values", len(words))
	}

	w, err := strconv.Atoi(words[2])
	if err != nil {
		return bakeJob{}, fmt.Errorf("parse width: %w", err)
	}
	h, err := strconv.Atoi(words[3])
	if err != nil {
		return bakeJob{}, fmt.Errorf("parse height: %w", err)
	}
	return bakeJob{mesh: words[0], out: words[1], width: w, height: h}, nil
}

func bake(ctx context.Context, meshPath, outPath string, cfg *config.Config) error {
	lc, err := cfg.Lightmap()
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	mesh, err := models.LoadMeshWith(meshPath, models.LoadOptions{SmoothNormals: cfg.Mesh.SmoothNormals})
	if err != nil {
		return fmt.Errorf("load mesh: %w", err)
	}
	if cfg.Mesh.ZUp {
		mesh.Transform(models.ZUpToYUp())
	}
	if !mesh.HasUVs {
		logger.Warn("mesh has no texture coordinates, every triangle maps to UV (0,0)", zap.String("mesh", meshPath))
	}

	logger.Info("loaded mesh",
		zap.String("path", meshPath),
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int("triangles", mesh.TriangleCount()),
	)

	lm, err := lightmap.New(mesh.Triangles(), lc)
	if err != nil {
		return err
	}

	logger.Debug("baking",
		zap.Int("width", lc.Width),
		zap.Int("height", lc.Height),
		zap.Float64("ambient", lc.AmbientFactor),
		zap.Float64("bias", lc.Bias),
		zap.Stringer("light", lc.LightDirection),
		zap.Int("workers", lc.Workers),
	)

	// The passes are not interruptible; honour a cancel that arrived while
	// loading so a large bake is not started needlessly.
	if err := ctx.Err(); err != nil {
		return err
	}

	start := time.Now()
	lm.Bake()
	elapsed := time.Since(start)

	stats := lm.Stats()
	logger.Info("bake finished",
		zap.Duration("elapsed", elapsed),
		zap.Int("pairs", stats.Pairs),
		zap.Int("silhouettes", stats.Silhouettes),
		zap.Int("shadow_writes", stats.ShadowWrites),
	)

	if cfg.Bake.UVOverlay {
		lm.DrawUVOverlay(overlayColor)
	}

	if err := lm.Encode(outPath); err != nil {
		return fmt.Errorf("write lightmap: %w", err)
	}
	logger.Info("wrote lightmap", zap.String("path", outPath))
	return nil
}
