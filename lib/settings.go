package lib

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/nvlled/screensnip/lib/selection"
)

const (
	defaultSettingsFile   = "screensnip-config.json"
	defaultEnvFile        = ".env"
	defaultOutputFilename = "capture"
	envPrefix             = "SCREENSNIP_"
)

type OutputType int

const (
	OutputTypePng OutputType = iota
	OutputTypeJpeg
	OutputTypeGif

	OutputType_Size
)

func (otype OutputType) String() string {
	switch otype {
	case OutputTypePng:
		return "png"
	case OutputTypeJpeg:
		return "jpeg"
	case OutputTypeGif:
		return "gif"
	}
	return "invalid-output-type"
}

// Ext is the file extension used for new files of this type.
func (otype OutputType) Ext() string {
	if otype == OutputTypeJpeg {
		return ".jpg"
	}
	return "." + otype.String()
}

func ParseOutputType(s string) (OutputType, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "png":
		return OutputTypePng, nil
	case "jpg", "jpeg":
		return OutputTypeJpeg, nil
	case "gif":
		return OutputTypeGif, nil
	}
	return OutputTypePng, fmt.Errorf("unknown output type: %q", s)
}

func (otype OutputType) MarshalJSON() ([]byte, error) {
	return json.Marshal(otype.String())
}

func (otype *OutputType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	t, err := ParseOutputType(s)
	if err != nil {
		return err
	}
	*otype = t
	return nil
}

type Settings struct {
	OutputDir      string     `json:"outputDir"`
	OutputFilename string     `json:"outputFilename"`
	OutputType     OutputType `json:"outputType"`
	JpegQuality    int        `json:"jpegQuality"`
	QuantizePng    bool       `json:"quantizePng"`

	Display int `json:"display"`

	MagnifierWidth  int `json:"magnifierWidth"`
	MagnifierHeight int `json:"magnifierHeight"`
	MagnifierZoom   int `json:"magnifierZoom"`
	PanelOffset     int `json:"panelOffset"`
	ShadowAlpha     int `json:"shadowAlpha"`

	ToastSeconds float64 `json:"toastSeconds"`
	LogFile      string  `json:"logFile"`
}

func DefaultSettings() Settings {
	return Settings{
		OutputDir:       ".",
		OutputFilename:  defaultOutputFilename + OutputTypePng.Ext(),
		OutputType:      OutputTypePng,
		JpegQuality:     90,
		Display:         0,
		MagnifierWidth:  selection.DefaultMagnifierSize.X,
		MagnifierHeight: selection.DefaultMagnifierSize.Y,
		MagnifierZoom:   1,
		PanelOffset:     selection.DefaultPanelOffset.X,
		ShadowAlpha:     int(selection.DefaultShadowColor.A),
		ToastSeconds:    2,
	}
}

// normalize pulls out-of-range values back to something usable.
func (s *Settings) normalize() {
	d := DefaultSettings()
	if s.OutputDir == "" {
		s.OutputDir = d.OutputDir
	}
	if s.OutputFilename == "" {
		s.OutputFilename = defaultOutputFilename + s.OutputType.Ext()
	}
	if s.OutputType < 0 || s.OutputType >= OutputType_Size {
		s.OutputType = d.OutputType
	}
	s.JpegQuality = clamp(s.JpegQuality, 1, 100)
	if s.Display < 0 {
		s.Display = 0
	}
	if s.MagnifierWidth <= 0 || s.MagnifierHeight <= 0 {
		s.MagnifierWidth, s.MagnifierHeight = d.MagnifierWidth, d.MagnifierHeight
	}
	s.MagnifierZoom = clamp(s.MagnifierZoom, 1, 16)
	s.ShadowAlpha = clamp(s.ShadowAlpha, 0, 255)
	if s.ToastSeconds <= 0 {
		s.ToastSeconds = d.ToastSeconds
	}
}

func (s *Settings) ToastDuration() time.Duration {
	return time.Duration(s.ToastSeconds * float64(time.Second))
}

func (s *Settings) ControllerOptions(saver selection.Saver, clip selection.Clipboard, notifier selection.Notifier) selection.Options {
	return selection.Options{
		Saver:         saver,
		Clipboard:     clip,
		Notifier:      notifier,
		MagnifierSize: image.Pt(s.MagnifierWidth, s.MagnifierHeight),
		MagnifierZoom: s.MagnifierZoom,
		PanelOffset:   image.Pt(s.PanelOffset, s.PanelOffset),
		ShadowColor:   color.NRGBA{0, 0, 0, uint8(s.ShadowAlpha)},
	}
}

// Args holds the command line options, keyed by option name without dashes.
type Args map[string]string

var knownOptions = map[string]bool{
	"config":       true,
	"env-file":     true,
	"display":      true,
	"output-dir":   true,
	"output-type":  true,
	"jpeg-quality": true,
	"quantize-png": true,
	"zoom":         true,
	"log-file":     true,
}

// ParseArgs reads "-option value" pairs. Every option takes a value.
func ParseArgs(args []string) (Args, error) {
	result := Args{}
	for i := 0; i < len(args); i++ {
		opt := args[i]
		if opt == "" {
			continue
		}
		if opt[0] != '-' {
			return nil, fmt.Errorf("unknown option: %v", opt)
		}
		if i >= len(args)-1 {
			return nil, fmt.Errorf("invalid option: %v needs a parameter", opt)
		}

		opt = strings.TrimLeft(opt, "-")
		if !knownOptions[opt] {
			return nil, fmt.Errorf("unknown option: %v", opt)
		}

		result[opt] = args[i+1]
		i++
	}
	return result, nil
}

// SettingsPath is -config when given, otherwise the settings file next to
// the executable.
func (args Args) SettingsPath() string {
	if filename := args["config"]; filename != "" {
		return filename
	}
	return besideExecutable(defaultSettingsFile)
}

func (args Args) EnvPath() string {
	if filename := args["env-file"]; filename != "" {
		return filename
	}
	if filename := os.Getenv(envPrefix + "ENV_FILE"); filename != "" {
		return filename
	}
	return besideExecutable(defaultEnvFile)
}

func besideExecutable(name string) string {
	binPath, err := os.Executable()
	if err != nil {
		return name
	}
	return filepath.Join(filepath.Dir(binPath), name)
}

// LoadSettings layers, from lowest to highest priority: defaults, the JSON
// settings file, SCREENSNIP_* variables (optionally from a .env file), and
// the command line.
func LoadSettings(settingsFile, envFile string, args Args) (Settings, error) {
	s, err := readSettingsFile(settingsFile)
	if err != nil {
		return s, err
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return s, fmt.Errorf("reading %v: %w", envFile, err)
		}
	}

	if err := s.apply(envOverrides()); err != nil {
		return s, err
	}
	if err := s.apply(args); err != nil {
		return s, err
	}

	s.normalize()
	return s, nil
}

// readSettingsFile returns the defaults overlaid with filename, which may
// not exist yet.
func readSettingsFile(filename string) (Settings, error) {
	s := DefaultSettings()

	file, err := os.Open(filename)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	} else if err != nil {
		return s, err
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(&s); err != nil {
		return s, fmt.Errorf("reading %v: %w", filename, err)
	}
	return s, nil
}

// UpdateSettingsFile changes only what is stored in filename. Values that
// came from the environment or the command line stay out of the file.
func UpdateSettingsFile(filename string, update func(*Settings)) error {
	s, err := readSettingsFile(filename)
	if err != nil {
		return err
	}
	update(&s)
	return SaveSettings(filename, s)
}

func SaveSettings(filename string, s Settings) error {
	file, err := os.OpenFile(filename, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(s)
}

// envOverrides maps SCREENSNIP_OUTPUT_DIR and friends onto option names.
func envOverrides() map[string]string {
	values := map[string]string{}
	for opt := range knownOptions {
		key := envPrefix + strings.ToUpper(strings.ReplaceAll(opt, "-", "_"))
		if v := os.Getenv(key); v != "" {
			values[opt] = v
		}
	}
	return values
}

func (s *Settings) apply(values map[string]string) error {
	for opt, val := range values {
		var err error
		switch opt {
		case "display":
			s.Display, err = strconv.Atoi(val)
		case "output-dir":
			s.OutputDir = val
		case "output-type":
			s.OutputType, err = ParseOutputType(val)
			if err == nil {
				base, _ := TrimExt(s.OutputFilename)
				s.OutputFilename = base + s.OutputType.Ext()
			}
		case "jpeg-quality":
			s.JpegQuality, err = strconv.Atoi(val)
		case "quantize-png":
			s.QuantizePng, err = strconv.ParseBool(val)
		case "zoom":
			s.MagnifierZoom, err = strconv.Atoi(val)
		case "log-file":
			s.LogFile = val
		}
		if err != nil {
			return fmt.Errorf("invalid value for %v: %w", opt, err)
		}
	}
	return nil
}

func clamp(x, min, max int) int {
	if x < min {
		return min
	} else if x > max {
		return max
	}
	return x
}
