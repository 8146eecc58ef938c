package capture

import (
	"sync"

	"github.com/google/uuid"
	"gocv.io/x/gocv"
)

// MockSource plays back pre-recorded frames for testing.
type MockSource struct {
	frames []*gocv.Mat
	index  int
	loop   bool

	mu     sync.Mutex
	open   bool
	id     string
	failOn error
}

// NewMockSource creates a mock source that yields the given frames in order.
// With loop set, playback restarts from the first frame instead of ending.
func NewMockSource(frames []*gocv.Mat, loop bool) *MockSource {
	return &MockSource{
		frames: frames,
		loop:   loop,
	}
}

func (m *MockSource) Open() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failOn != nil {
		return m.failOn
	}

	m.open = true
	m.index = 0
	m.id = uuid.NewString()
	return nil
}

func (m *MockSource) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.open = false
	return nil
}

func (m *MockSource) ReadFrame() (*gocv.Mat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.open {
		return nil, ErrSourceNotOpen
	}

	if m.index >= len(m.frames) {
		if !m.loop || len(m.frames) == 0 {
			return nil, ErrEndOfStream
		}
		m.index = 0
	}

	// Clone so the caller can close its copy freely.
	frame := m.frames[m.index].Clone()
	m.index++

	return &frame, nil
}

func (m *MockSource) IsOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.open
}

func (m *MockSource) ID() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.id
}

func (m *MockSource) FrameSize() (width, height int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.frames) == 0 {
		return 0, 0
	}
	return m.frames[0].Cols(), m.frames[0].Rows()
}

// FailOpen makes subsequent Open calls fail with err.
func (m *MockSource) FailOpen(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.failOn = err
}

// FramesRemaining reports how many frames are left before end of stream.
func (m *MockSource) FramesRemaining() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.frames) - m.index
}
