package capture

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewVideoSource_SourceResolution(t *testing.T) {
	tests := []struct {
		name       string
		source     string
		wantDevice bool
		wantID     int
		wantPath   string
	}{
		{
			name:       "webcam zero",
			source:     "0",
			wantDevice: true,
			wantID:     0,
		},
		{
			name:       "webcam two",
			source:     "2",
			wantDevice: true,
			wantID:     2,
		},
		{
			name:     "video file",
			source:   "clips/session.mp4",
			wantPath: "clips/session.mp4",
		},
		{
			name:     "rtsp url",
			source:   "rtsp://camera.local:554/stream",
			wantPath: "rtsp://camera.local:554/stream",
		},
		{
			name:     "numeric-looking filename",
			source:   "0.mp4",
			wantPath: "0.mp4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewVideoSource(tt.source, 30, zerolog.Nop())

			if v.isDevice != tt.wantDevice {
				t.Fatalf("isDevice = %v, want %v", v.isDevice, tt.wantDevice)
			}
			if tt.wantDevice && v.deviceID != tt.wantID {
				t.Errorf("deviceID = %d, want %d", v.deviceID, tt.wantID)
			}
			if !tt.wantDevice && v.path != tt.wantPath {
				t.Errorf("path = %q, want %q", v.path, tt.wantPath)
			}
		})
	}
}

func TestVideoSource_ReadFrame_NotOpened(t *testing.T) {
	v := NewVideoSource("0", 30, zerolog.Nop())

	_, err := v.ReadFrame()
	if !errors.Is(err, ErrSourceNotOpen) {
		t.Errorf("ReadFrame() before Open: error = %v, want ErrSourceNotOpen", err)
	}
}

func TestVideoSource_Close_Idempotent(t *testing.T) {
	v := NewVideoSource("0", 30, zerolog.Nop())

	// Close without a prior Open, then close again.
	if err := v.Close(); err != nil {
		t.Errorf("first Close() = %v, want nil", err)
	}
	if err := v.Close(); err != nil {
		t.Errorf("second Close() = %v, want nil", err)
	}
	if v.IsOpen() {
		t.Error("IsOpen() should be false after Close")
	}
}

func TestVideoSource_InitialState(t *testing.T) {
	v := NewVideoSource("0", 15, zerolog.Nop())

	if v.IsOpen() {
		t.Error("IsOpen() should be false before Open")
	}
	if v.ID() != "" {
		t.Errorf("ID() = %q, want empty before Open", v.ID())
	}
	if v.FPS() != 15 {
		t.Errorf("FPS() = %d, want 15", v.FPS())
	}
}

func TestVideoSource_OpenReadClose_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	v := NewVideoSource("0", 30, zerolog.Nop())

	if err := v.Open(); err != nil {
		t.Skipf("skipping test - camera not available: %v", err)
	}

	if !v.IsOpen() {
		t.Error("IsOpen() should be true after Open()")
	}
	if v.ID() == "" {
		t.Error("ID() should be assigned after Open()")
	}

	frame, err := v.ReadFrame()
	if err != nil {
		t.Errorf("ReadFrame() failed: %v", err)
	} else {
		if frame.Empty() {
			t.Error("ReadFrame() returned an empty frame")
		}
		frame.Close()
	}

	if err := v.Close(); err != nil {
		t.Errorf("Close() failed: %v", err)
	}
	if v.IsOpen() {
		t.Error("IsOpen() should be false after Close()")
	}
}
