// Package avatar turns user-supplied image files into the data URLs stored
// on the profile.
package avatar

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"os"

	"golang.org/x/image/draw"
)

// MaxFileSize caps the size of an image file accepted for encoding.
const MaxFileSize = 5 << 20

const dataURLPrefix = "data:image/jpeg;base64,"

// ErrTooLarge is returned for files above MaxFileSize.
var ErrTooLarge = errors.New("image file too large")

// EncodeFile reads the image at path and returns it as a JPEG data URL,
// scaled so neither side exceeds maxDimension.
func EncodeFile(path string, maxDimension, quality int) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("reading avatar: %w", err)
	}
	if info.Size() > MaxFileSize {
		return "", fmt.Errorf("%w: %d bytes", ErrTooLarge, info.Size())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading avatar: %w", err)
	}
	return Encode(data, maxDimension, quality)
}

// Encode decodes any registered image format from data and returns a
// resized JPEG data URL.
func Encode(data []byte, maxDimension, quality int) (string, error) {
	out, err := compress(data, maxDimension, quality)
	if err != nil {
		return "", err
	}
	return dataURLPrefix + base64.StdEncoding.EncodeToString(out), nil
}

func compress(data []byte, maxDimension, quality int) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image (format: %s): %w", format, err)
	}

	bounds := img.Bounds()
	width, height := fit(bounds.Dx(), bounds.Dy(), maxDimension)

	resized := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(resized, resized.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("encoding image: %w", err)
	}
	return buf.Bytes(), nil
}

// fit scales width and height down so the longer side equals maxDimension,
// keeping the aspect ratio. Images already small enough are unchanged.
func fit(width, height, maxDimension int) (int, int) {
	if maxDimension <= 0 {
		return width, height
	}
	if width > height {
		if width <= maxDimension {
			return width, height
		}
		return maxDimension, max(1, height*maxDimension/width)
	}
	if height <= maxDimension {
		return width, height
	}
	return max(1, width*maxDimension/height), maxDimension
}
