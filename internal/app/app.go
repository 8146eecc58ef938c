// Package app orchestrates a capture run: it opens the video source, paces
// the frame loop, hands frames to the detection stage, and guarantees the
// source is released on every exit path.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gocv.io/x/gocv"

	"github.com/ayusman/humanhanddetect/internal/capture"
	"github.com/ayusman/humanhanddetect/internal/config"
	"github.com/ayusman/humanhanddetect/internal/detector"
	"github.com/ayusman/humanhanddetect/internal/store"
)

// Config holds the collaborators for a run.
type Config struct {
	// Cfg is the validated runtime configuration.
	Cfg *config.Config

	// Store receives the capture-session journal entries. Optional.
	Store *store.Store

	// Source overrides the video source built from Cfg. Used by tests.
	Source capture.Source

	// Log is the process logger.
	Log zerolog.Logger
}

// App drives the frame loop.
type App struct {
	cfg      *config.Config
	source   capture.Source
	store    *store.Store
	detector detector.Detector
	log      zerolog.Logger
	frames   int
}

// New creates an App. When no source is injected, one is built from the
// configured video source string and FPS.
func New(c Config) *App {
	source := c.Source
	if source == nil {
		source = capture.NewVideoSource(c.Cfg.VideoSource, c.Cfg.VideoFPS, c.Log)
	}

	return &App{
		cfg:    c.Cfg,
		source: source,
		store:  c.Store,
		log:    c.Log,
	}
}

// SetDetector installs the detection stage. Without one the loop only paces
// and counts frames.
func (a *App) SetDetector(d detector.Detector) {
	a.detector = d
}

// FramesRead reports how many frames the last run read.
func (a *App) FramesRead() int {
	return a.frames
}

// Run opens the video source and reads one frame per tick at the configured
// FPS until the context is cancelled or the stream ends. The source is
// released and the journal entry finished on every exit path, including
// cancellation. A cancelled run is a normal stop, not an error.
func (a *App) Run(ctx context.Context) error {
	if err := a.source.Open(); err != nil {
		return fmt.Errorf("open video source: %w", err)
	}
	defer func() {
		if err := a.source.Close(); err != nil {
			a.log.Error().Err(err).Msg("error closing video source")
		}
	}()

	if a.detector != nil {
		defer func() {
			if err := a.detector.Close(); err != nil {
				a.log.Error().Err(err).Msg("error closing detector")
			}
		}()
	}

	sessionID := a.source.ID()
	if a.store != nil {
		if err := a.store.Sessions().Begin(sessionID, a.cfg.VideoSource); err != nil {
			a.log.Warn().Err(err).Msg("failed to record session start")
		}
		defer func() {
			if err := a.store.Sessions().Finish(sessionID, a.frames); err != nil {
				a.log.Warn().Err(err).Msg("failed to record session end")
			}
		}()
	}

	fps := a.cfg.VideoFPS
	if fps <= 0 {
		a.log.Warn().Int("video_fps", fps).Msg("non-positive FPS, falling back to 1")
		fps = 1
	}

	width, height := a.source.FrameSize()
	a.log.Info().
		Str("session", sessionID).
		Int("width", width).
		Int("height", height).
		Int("fps", fps).
		Msg("capture started")

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			a.log.Info().Int("frames", a.frames).Msg("capture stopped")
			return nil

		case <-ticker.C:
			frame, err := a.source.ReadFrame()
			if err != nil {
				if errors.Is(err, capture.ErrEndOfStream) {
					a.log.Info().Int("frames", a.frames).Msg("end of stream")
					return nil
				}
				return fmt.Errorf("read frame: %w", err)
			}

			a.frames++
			a.process(frame)
			frame.Close()
		}
	}
}

// process runs the detection stage on one frame. Detection and
// classification results are not acted on yet.
func (a *App) process(frame *gocv.Mat) {
	if a.detector == nil {
		return
	}

	detections, err := a.detector.Detect(frame)
	if err != nil {
		a.log.Error().Err(err).Msg("detection failed")
		return
	}
	if len(detections) > 0 {
		a.log.Debug().Int("detections", len(detections)).Msg("frame processed")
	}
}
