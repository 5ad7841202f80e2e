package lib

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/ericpauley/go-quantize/quantize"
	"github.com/nvlled/screensnip/lib/selection"
	"github.com/sqweek/dialog"
)

// DialogSaver asks for a path with the native save dialog and writes the
// image there. The directory of the last saved file is remembered in the
// settings file.
type DialogSaver struct {
	settings     *Settings
	settingsFile string

	// prompt is replaced in tests.
	prompt func(startDir, startFile string, otype OutputType) (string, error)
}

func NewDialogSaver(settings *Settings, settingsFile string) *DialogSaver {
	return &DialogSaver{
		settings:     settings,
		settingsFile: settingsFile,
		prompt:       promptSavePath,
	}
}

func promptSavePath(startDir, startFile string, otype OutputType) (string, error) {
	filter := otype.String()
	return dialog.File().
		Title("Save screenshot").
		Filter(filter, filter).
		Filter("images", "png", "jpg", "jpeg", "gif").
		SetStartDir(startDir).
		SetStartFile(startFile).
		Save()
}

func (saver *DialogSaver) Save(img *image.NRGBA) (string, error) {
	s := saver.settings
	startFile := NextFreeFilename(s.OutputDir, s.OutputFilename)

	filename, err := saver.prompt(s.OutputDir, startFile, s.OutputType)
	if err != nil {
		if errors.Is(err, dialog.ErrCancelled) {
			return "", selection.ErrCancelled
		}
		return "", err
	}
	if filename == "" {
		return "", selection.ErrCancelled
	}

	ext := filepath.Ext(filename)
	otype, err := ParseOutputType(ext)
	if err != nil {
		otype = s.OutputType
		if ext == "" {
			filename += otype.Ext()
		} else {
			log.Printf("unknown extension %v, writing %v as %v", ext, filename, otype)
		}
	}

	if err := WriteImageFile(filename, img, otype, s); err != nil {
		return "", err
	}

	if dir := filepath.Dir(filename); dir != s.OutputDir {
		s.OutputDir = dir
		err := UpdateSettingsFile(saver.settingsFile, func(stored *Settings) {
			stored.OutputDir = dir
		})
		if err != nil {
			log.Println("error: saving settings:", err)
		}
	}

	return filename, nil
}

func WriteImageFile(filename string, img *image.NRGBA, otype OutputType, s *Settings) error {
	file, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	if err := EncodeImage(file, img, otype, s); err != nil {
		file.Close()
		return fmt.Errorf("encoding %v: %w", filename, err)
	}
	return file.Close()
}

func EncodeImage(w io.Writer, img *image.NRGBA, otype OutputType, s *Settings) error {
	switch otype {
	case OutputTypePng:
		if s.QuantizePng {
			return png.Encode(w, palettize(img))
		}
		return png.Encode(w, img)
	case OutputTypeJpeg:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: s.JpegQuality})
	case OutputTypeGif:
		return gif.Encode(w, palettize(img), nil)
	}
	return fmt.Errorf("unsupported output type: %v", otype)
}

// palettize reduces img to at most 256 colors with a median cut.
func palettize(img *image.NRGBA) *image.Paletted {
	quantizer := quantize.MedianCutQuantizer{}
	emptyPalette := make([]color.Color, 0, 256)
	pal := quantizer.Quantize(emptyPalette, img)

	paletted := image.NewPaletted(img.Rect, pal)
	draw.Src.Draw(paletted, img.Bounds(), img, image.Point{})
	return paletted
}
