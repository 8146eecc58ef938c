// Package detector defines the detection boundary for the frame-processing
// pipeline. There is no inference implementation yet; the interface and the
// settings derived from the runtime configuration are the contract the future
// detection stages plug into.
package detector

import (
	"image"

	"gocv.io/x/gocv"

	"github.com/ayusman/humanhanddetect/internal/config"
)

// Detection is one detected region in a frame.
type Detection struct {
	// Box is the bounding rectangle in pixel coordinates.
	Box image.Rectangle

	// Label names the detected class, e.g. "person" or "hand".
	Label string

	// Score is the detection confidence in [0, 1].
	Score float64
}

// Detector analyzes video frames.
type Detector interface {
	// Detect analyzes a frame and returns the detections found in it.
	// Returns an empty slice if nothing is detected.
	Detect(frame *gocv.Mat) ([]Detection, error)

	// Close releases any resources held by the detector.
	Close() error
}

// Settings carries the model paths and tuning values the detection stages
// consume, derived from the validated runtime configuration.
type Settings struct {
	// YOLOModelPath is the person-detection ONNX model.
	YOLOModelPath string

	// YOLOThreshold is the confidence threshold for person detections.
	YOLOThreshold float64

	// InputWidth and InputHeight are the YOLO network input dimensions.
	InputWidth  int
	InputHeight int

	// HandDetectionModelPath and HandLandmarkModelPath are the hand
	// pipeline models.
	HandDetectionModelPath string
	HandLandmarkModelPath  string

	// ClassifierModelPath and EmbedderModelPath are the gesture
	// classification models.
	ClassifierModelPath string
	EmbedderModelPath   string

	// HandDetectionThreshold is the confidence threshold for hand detections.
	HandDetectionThreshold float64

	// MaxHands caps the number of hands detected per frame.
	MaxHands int

	// NMSThreshold is the non-maximum suppression threshold for hand boxes.
	NMSThreshold float64
}

// SettingsFromConfig maps the runtime configuration onto detector settings.
func SettingsFromConfig(cfg *config.Config) Settings {
	return Settings{
		YOLOModelPath:          cfg.YOLOONNXPath,
		YOLOThreshold:          cfg.YOLOThreshold,
		InputWidth:             cfg.YOLOInputSize.Width,
		InputHeight:            cfg.YOLOInputSize.Height,
		HandDetectionModelPath: cfg.HandDetectionModelPath,
		HandLandmarkModelPath:  cfg.HandLandmarkModelPath,
		ClassifierModelPath:    cfg.ClassifierModelPath,
		EmbedderModelPath:      cfg.EmbedderModelPath,
		HandDetectionThreshold: cfg.HandDetectionThreshold,
		MaxHands:               cfg.MaximumHands,
		NMSThreshold:           cfg.HandsNMSThreshold,
	}
}
