package imageio

import (
	"bufio"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Format is an output image encoding
type Format int

const (
	PNG Format = iota
	JPEG
	BMP
	TIFF
)

func (f Format) String() string {
	switch f {
	case PNG:
		return "png"
	case JPEG:
		return "jpeg"
	case BMP:
		return "bmp"
	case TIFF:
		return "tiff"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// FormatFromExt maps a filename extension, with or without the dot, to a Format
func FormatFromExt(ext string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "png":
		return PNG, nil
	case "jpg", "jpeg":
		return JPEG, nil
	case "bmp":
		return BMP, nil
	case "tif", "tiff":
		return TIFF, nil
	}
	return PNG, fmt.Errorf("unsupported image extension %q", ext)
}

// Save writes img to filename, picking the encoding from the extension
func Save(img image.Image, filename string) error {
	format, err := FormatFromExt(filepath.Ext(filename))
	if err != nil {
		return err
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	bw := bufio.NewWriter(file)
	if err := Write(bw, img, format); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode %s: %w", format, err)
	}
	if err := bw.Flush(); err != nil {
		file.Close()
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return file.Close()
}

// Write encodes img to w in the given format
func Write(w io.Writer, img image.Image, format Format) error {
	switch format {
	case PNG:
		return png.Encode(w, img)
	case JPEG:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 95})
	case BMP:
		return bmp.Encode(w, img)
	case TIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("unknown format %v", format)
	}
}
