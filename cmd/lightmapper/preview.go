package main

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/harmonica"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/spf13/cobra"
	"github.com/taigrr/lightmapper/pkg/render"
)

func newPreviewCmd() *cobra.Command {
	var (
		fps      int
		bilinear bool
	)

	cmd := &cobra.Command{
		Use:   "preview <lightmap.png>",
		Short: "Show a baked lightmap in the terminal",
		Long: `preview draws a lightmap with half-block cells.

Controls:
  arrows / w a s d  pan
  + / -             zoom
  r                 reset view
  q / esc           quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tex, err := render.LoadTexture(args[0])
			if err != nil {
				return err
			}
			if bilinear {
				tex.FilterMode = render.FilterBilinear
			}
			return runPreview(cmd.Context(), tex, fps)
		},
	}
	cmd.Flags().IntVar(&fps, "fps", 30, "target frames per second")
	cmd.Flags().BoolVar(&bilinear, "bilinear", false, "smooth sampling when zoomed in")
	return cmd
}

// viewAxis eases a view coordinate toward its target with a critically
// damped spring.
type viewAxis struct {
	Position float64
	Target   float64
	velocity float64
	spring   harmonica.Spring
}

func newViewAxis(fps int, pos float64) viewAxis {
	return viewAxis{
		Position: pos,
		Target:   pos,
		// Frequency 6.0 settles in a few frames, damping 1.0 = no overshoot
		spring: harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0),
	}
}

func (a *viewAxis) Update() {
	a.Position, a.velocity = a.spring.Update(a.Position, a.velocity, a.Target)
}

const (
	minZoom  = 1.0
	maxZoom  = 32.0
	panStep  = 0.1
	zoomStep = 1.25
)

// viewState is shared between the event goroutine and the draw loop.
type viewState struct {
	mu               sync.Mutex
	centerU, centerV viewAxis
	zoom             viewAxis
	fps              int
}

func newViewState(fps int) *viewState {
	s := &viewState{fps: fps}
	s.reset()
	return s
}

func (s *viewState) reset() {
	s.centerU = newViewAxis(s.fps, 0.5)
	s.centerV = newViewAxis(s.fps, 0.5)
	s.zoom = newViewAxis(s.fps, 1)
}

// Pan moves the target by a fraction of the visible extent.
func (s *viewState) Pan(du, dv float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	step := panStep / s.zoom.Target
	s.centerU.Target = clamp01(s.centerU.Target + du*step)
	s.centerV.Target = clamp01(s.centerV.Target + dv*step)
}

// Zoom multiplies the target magnification by factor.
func (s *viewState) Zoom(factor float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.zoom.Target = math.Max(minZoom, math.Min(maxZoom, s.zoom.Target*factor))
}

// Reset snaps back to the whole lightmap.
func (s *viewState) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

// Step advances the springs one frame and returns the view to draw.
func (s *viewState) Step() render.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.centerU.Update()
	s.centerV.Update()
	s.zoom.Update()
	return render.View{CenterU: s.centerU.Position, CenterV: s.centerV.Position, Zoom: s.zoom.Position}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// previewBackground fills area outside the lightmap.
var previewBackground = render.RGB(30, 30, 40)

func runPreview(ctx context.Context, tex *render.Texture, fps int) error {
	if fps <= 0 {
		fps = 30
	}

	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	defer func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	state := newViewState(fps)
	fb := render.NewFramebuffer(width, height*2)

	var sizeMu sync.Mutex
	resized := false

	go func() {
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				sizeMu.Lock()
				width, height = ev.Width, ev.Height
				resized = true
				sizeMu.Unlock()

			case uv.KeyPressEvent:
				switch {
				case ev.MatchString("q", "escape", "ctrl+c"):
					cancel()
					return
				case ev.MatchString("left", "a"):
					state.Pan(-1, 0)
				case ev.MatchString("right", "d"):
					state.Pan(1, 0)
				case ev.MatchString("up", "w"):
					state.Pan(0, 1)
				case ev.MatchString("down", "s"):
					state.Pan(0, -1)
				case ev.MatchString("+", "="):
					state.Zoom(zoomStep)
				case ev.MatchString("-", "_"):
					state.Zoom(1 / zoomStep)
				case ev.MatchString("r"):
					state.Reset()
				}
			}
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		sizeMu.Lock()
		if resized {
			term.Erase()
			term.Resize(width, height)
			fb = render.NewFramebuffer(width, height*2)
			resized = false
		}
		w, h := width, height
		sizeMu.Unlock()

		tex.Resample(fb, state.Step(), previewBackground)
		fb.Draw(term, uv.Rect(0, 0, w, h))
		if err := term.Display(); err != nil {
			return fmt.Errorf("display: %w", err)
		}
	}
}
