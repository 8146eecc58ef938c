// Package config loads and validates the JSON runtime configuration for the
// human/hand detection application.
package config

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Default thresholds applied when the corresponding key is absent.
const (
	DefaultYOLOThreshold          = 0.5
	DefaultHandDetectionThreshold = 0.5
	DefaultHandsNMSThreshold      = 0.3
)

// InputSize is a model input size in pixels.
type InputSize struct {
	Width  int
	Height int
}

// Config is the validated runtime configuration. It is produced once by Load
// and treated as read-only afterwards. All model paths are absolute: relative
// values in the JSON file are resolved against the config file's directory
// and are verified to exist at load time.
type Config struct {
	// YOLOONNXPath is the path to the YOLO ONNX model.
	YOLOONNXPath string

	// YOLOThreshold is the confidence threshold for YOLO detections, in [0, 1].
	YOLOThreshold float64

	// YOLOInputSize is the YOLO model input size as (width, height).
	YOLOInputSize InputSize

	// VideoSource is the capture source exactly as given in the file:
	// a webcam index ("0") or a file path/URL. Disambiguation happens in
	// the capture wrapper, not here.
	VideoSource string

	// VideoFPS is the target frames per second for the capture loop.
	VideoFPS int

	// ClassifierModelPath is the path to the gesture classifier model.
	ClassifierModelPath string

	// EmbedderModelPath is the path to the hand embedder model.
	EmbedderModelPath string

	// HandLandmarkModelPath is the path to the hand landmark model.
	HandLandmarkModelPath string

	// HandDetectionModelPath is the path to the hand detection model.
	HandDetectionModelPath string

	// HandDetectionThreshold is the detection threshold for the hand
	// detector, in [0, 1].
	HandDetectionThreshold float64

	// MaximumHands is the maximum number of hands to detect.
	MaximumHands int

	// HandsNMSThreshold is the non-maximum suppression threshold for hand
	// detections, in [0, 1].
	HandsNMSThreshold float64
}

type fieldKind int

const (
	kindModelPath fieldKind = iota
	kindThreshold
	kindInputSize
	kindString
	kindInt
)

// fieldSpec describes one configuration key: its expected shape, whether it
// is required, the default for optional thresholds, and where the validated
// value lands.
type fieldSpec struct {
	key      string
	kind     fieldKind
	optional bool
	def      float64
	dst      any
}

// schema returns the validation plan for c. Order matters: fields are checked
// front to back, so the first violated constraint in this order is always the
// one reported. The required model paths come first, then thresholds, input
// size, source and counts.
func (c *Config) schema() []fieldSpec {
	return []fieldSpec{
		{key: "yolo_onnx_path", kind: kindModelPath, dst: &c.YOLOONNXPath},
		{key: "classifier_model_path", kind: kindModelPath, dst: &c.ClassifierModelPath},
		{key: "embedder_model_path", kind: kindModelPath, dst: &c.EmbedderModelPath},
		{key: "hand_landmark_model_path", kind: kindModelPath, dst: &c.HandLandmarkModelPath},
		{key: "hand_detection_model_path", kind: kindModelPath, dst: &c.HandDetectionModelPath},
		{key: "yolo_threshold", kind: kindThreshold, optional: true, def: DefaultYOLOThreshold, dst: &c.YOLOThreshold},
		{key: "hand_detection_threshold", kind: kindThreshold, optional: true, def: DefaultHandDetectionThreshold, dst: &c.HandDetectionThreshold},
		{key: "hands_nms_threshold", kind: kindThreshold, optional: true, def: DefaultHandsNMSThreshold, dst: &c.HandsNMSThreshold},
		{key: "yolo_input_size", kind: kindInputSize, dst: &c.YOLOInputSize},
		{key: "video_source", kind: kindString, dst: &c.VideoSource},
		{key: "video_fps", kind: kindInt, dst: &c.VideoFPS},
		{key: "maximum_hands", kind: kindInt, dst: &c.MaximumHands},
	}
}

// Load reads the JSON configuration at path and returns a validated Config.
// Failures are reported as typed errors (NotFoundError, ParseError,
// MissingKeyError, TypeError, PathNotFoundError, RangeError) so callers can
// distinguish them with errors.As.
func Load(path string, log zerolog.Logger) (*Config, error) {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return nil, &NotFoundError{Path: path}
	}

	log.Info().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &NotFoundError{Path: path}
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	baseDir := filepath.Dir(path)

	cfg := &Config{}
	for _, f := range cfg.schema() {
		if err := applyField(f, raw, baseDir); err != nil {
			return nil, err
		}
	}

	log.Info().Msg("configuration loaded and validated")
	log.Debug().
		Str("yolo_onnx_path", cfg.YOLOONNXPath).
		Float64("yolo_threshold", cfg.YOLOThreshold).
		Int("yolo_input_width", cfg.YOLOInputSize.Width).
		Int("yolo_input_height", cfg.YOLOInputSize.Height).
		Str("video_source", cfg.VideoSource).
		Int("video_fps", cfg.VideoFPS).
		Str("classifier_model_path", cfg.ClassifierModelPath).
		Str("embedder_model_path", cfg.EmbedderModelPath).
		Str("hand_landmark_model_path", cfg.HandLandmarkModelPath).
		Str("hand_detection_model_path", cfg.HandDetectionModelPath).
		Float64("hand_detection_threshold", cfg.HandDetectionThreshold).
		Int("maximum_hands", cfg.MaximumHands).
		Float64("hands_nms_threshold", cfg.HandsNMSThreshold).
		Msg("parsed configuration")

	return cfg, nil
}

// applyField validates a single key of the raw document against its field
// spec and writes the result to the field's destination.
func applyField(f fieldSpec, raw map[string]any, baseDir string) error {
	v, present := raw[f.key]
	if !present && !f.optional {
		return &MissingKeyError{Key: f.key}
	}

	switch f.kind {
	case kindModelPath:
		s, isString := v.(string)
		if !isString {
			return &TypeError{Key: f.key, Want: "a string path"}
		}
		resolved := resolvePath(s, baseDir)
		if _, err := os.Stat(resolved); err != nil {
			return &PathNotFoundError{Key: f.key, Path: resolved}
		}
		*f.dst.(*string) = resolved

	case kindThreshold:
		value := f.def
		if present {
			n, isNumber := v.(float64)
			if !isNumber {
				return &TypeError{Key: f.key, Want: "a number"}
			}
			value = n
		}
		if value < 0 || value > 1 {
			return &RangeError{Key: f.key, Value: value}
		}
		*f.dst.(*float64) = value

	case kindInputSize:
		seq, isSeq := v.([]any)
		if !isSeq || len(seq) != 2 {
			return &TypeError{Key: f.key, Want: "a two-element array [width, height]"}
		}
		width, okW := asInt(seq[0])
		height, okH := asInt(seq[1])
		if !okW || !okH {
			return &TypeError{Key: f.key, Want: "an array of integer values"}
		}
		*f.dst.(*InputSize) = InputSize{Width: width, Height: height}

	case kindString:
		s, isString := v.(string)
		if !isString {
			return &TypeError{Key: f.key, Want: "a string"}
		}
		*f.dst.(*string) = s

	case kindInt:
		n, ok := asInt(v)
		if !ok {
			return &TypeError{Key: f.key, Want: "an integer"}
		}
		*f.dst.(*int) = n
	}

	return nil
}

// resolvePath makes a model path absolute. Relative values resolve against
// the config file's directory, not the process working directory.
func resolvePath(value, baseDir string) string {
	if filepath.IsAbs(value) {
		return value
	}
	joined := filepath.Join(baseDir, value)
	abs, err := filepath.Abs(joined)
	if err != nil {
		return joined
	}
	return abs
}

// asInt converts a decoded JSON value to an int. Numbers with a fractional
// part are rejected rather than truncated.
func asInt(v any) (int, bool) {
	n, ok := v.(float64)
	if !ok || math.Trunc(n) != n {
		return 0, false
	}
	return int(n), true
}
