// Package capture wraps video input devices and files using GoCV (OpenCV).
package capture

import (
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gocv.io/x/gocv"
)

// ErrSourceNotOpen is returned when reading from a source that is not open.
var ErrSourceNotOpen = errors.New("video source is not open")

// ErrEndOfStream is returned when no more frames are available or the
// underlying device stops delivering them.
var ErrEndOfStream = errors.New("end of video stream")

// Source is the frame supplier the application loop reads from.
type Source interface {
	Open() error
	ReadFrame() (*gocv.Mat, error)
	Close() error
	IsOpen() bool

	// ID identifies the capture session. Empty until Open succeeds.
	ID() string

	// FrameSize reports the frame dimensions seen at Open time.
	FrameSize() (width, height int)
}

// VideoSource captures frames from a webcam device or a video file/URL.
type VideoSource struct {
	deviceID int
	path     string
	isDevice bool
	fps      int
	log      zerolog.Logger

	mu      sync.Mutex
	capture *gocv.VideoCapture
	open    bool
	id      string
	width   int
	height  int
}

// NewVideoSource builds a source from the configured source string. A string
// that parses entirely as an integer selects a webcam device index; anything
// else is treated as a file path or URL.
func NewVideoSource(source string, fps int, log zerolog.Logger) *VideoSource {
	v := &VideoSource{fps: fps, log: log}

	if idx, err := strconv.Atoi(source); err == nil {
		v.deviceID = idx
		v.isDevice = true
		log.Info().Int("device", idx).Msg("using webcam index")
	} else {
		v.path = source
		log.Info().Str("path", source).Msg("using video file or URL")
	}

	return v
}

// Open establishes the capture session and records frame dimensions.
// Opening an already-open source is a no-op.
func (v *VideoSource) Open() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.open {
		return nil
	}

	var (
		capture *gocv.VideoCapture
		err     error
	)
	if v.isDevice {
		capture, err = gocv.OpenVideoCapture(v.deviceID)
	} else {
		capture, err = gocv.OpenVideoCapture(v.path)
	}
	if err != nil {
		return fmt.Errorf("open video source: %w", err)
	}

	if v.fps > 0 {
		capture.Set(gocv.VideoCaptureFPS, float64(v.fps))
	}

	v.capture = capture
	v.open = true
	v.id = uuid.NewString()
	v.width = int(capture.Get(gocv.VideoCaptureFrameWidth))
	v.height = int(capture.Get(gocv.VideoCaptureFrameHeight))

	v.log.Debug().
		Str("session", v.id).
		Int("width", v.width).
		Int("height", v.height).
		Msg("video source opened")

	return nil
}

// ReadFrame reads a single frame. The caller is responsible for closing the
// returned Mat. Reading before a successful Open is a programming error and
// returns ErrSourceNotOpen; an exhausted or failed stream returns
// ErrEndOfStream.
func (v *VideoSource) ReadFrame() (*gocv.Mat, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.open || v.capture == nil {
		v.log.Error().Msg("ReadFrame called before Open")
		return nil, ErrSourceNotOpen
	}

	mat := gocv.NewMat()
	if ok := v.capture.Read(&mat); !ok {
		mat.Close()
		return nil, ErrEndOfStream
	}
	if mat.Empty() {
		mat.Close()
		return nil, ErrEndOfStream
	}

	return &mat, nil
}

// Close releases the underlying device or file handle. It is idempotent and
// safe to call even if Open was never called or failed.
func (v *VideoSource) Close() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.open || v.capture == nil {
		v.open = false
		return nil
	}

	err := v.capture.Close()
	v.capture = nil
	v.open = false

	v.log.Debug().Str("session", v.id).Msg("video source released")

	return err
}

// IsOpen reports whether the capture session is established.
func (v *VideoSource) IsOpen() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.open
}

// ID returns the capture session identifier assigned by Open.
func (v *VideoSource) ID() string {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.id
}

// FrameSize returns the frame dimensions reported by the device at Open time.
func (v *VideoSource) FrameSize() (width, height int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.width, v.height
}

// FPS returns the configured target frame rate.
func (v *VideoSource) FPS() int {
	return v.fps
}
