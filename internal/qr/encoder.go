package qr

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strconv"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// Options control how a payload is rendered.
type Options struct {
	Size            int    // target width and height in pixels
	Margin          int    // quiet zone in modules
	Dark            string // #rrggbb
	Light           string // #rrggbb
	ErrorCorrection string // L, M, Q or H
}

// DefaultOptions renders gold modules on black.
func DefaultOptions() Options {
	return Options{
		Size:            200,
		Margin:          2,
		Dark:            "#d4af37",
		Light:           "#000000",
		ErrorCorrection: "M",
	}
}

// Encoder turns a payload into a displayable image reference.
type Encoder interface {
	Encode(p Payload, opts Options) (string, error)
}

// PNGEncoder renders payloads as PNG data URLs.
type PNGEncoder struct{}

func NewPNGEncoder() *PNGEncoder { return &PNGEncoder{} }

// Encode returns a data:image/png;base64 URL holding the QR code for p.
func (e *PNGEncoder) Encode(p Payload, opts Options) (string, error) {
	content, err := p.Encode()
	if err != nil {
		return "", fmt.Errorf("encode payload: %w", err)
	}
	level, err := recoveryLevel(opts.ErrorCorrection)
	if err != nil {
		return "", err
	}
	dark, err := parseHexColor(opts.Dark)
	if err != nil {
		return "", fmt.Errorf("dark color: %w", err)
	}
	light, err := parseHexColor(opts.Light)
	if err != nil {
		return "", fmt.Errorf("light color: %w", err)
	}

	code, err := qrcode.New(content, level)
	if err != nil {
		return "", fmt.Errorf("build qr code: %w", err)
	}
	// the quiet zone is drawn below so that Margin is honoured exactly
	code.DisableBorder = true

	img := render(code.Bitmap(), opts.Size, opts.Margin, dark, light)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("png encode: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func render(bitmap [][]bool, size, margin int, dark, light color.Color) image.Image {
	if margin < 0 {
		margin = 0
	}
	modules := len(bitmap) + 2*margin
	scale := size / modules
	if scale < 1 {
		scale = 1
	}
	side := modules * scale

	img := image.NewRGBA(image.Rect(0, 0, side, side))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: light}, image.Point{}, draw.Src)

	fg := &image.Uniform{C: dark}
	for y, row := range bitmap {
		for x, on := range row {
			if !on {
				continue
			}
			x0 := (x + margin) * scale
			y0 := (y + margin) * scale
			draw.Draw(img, image.Rect(x0, y0, x0+scale, y0+scale), fg, image.Point{}, draw.Src)
		}
	}
	return img
}

func recoveryLevel(s string) (qrcode.RecoveryLevel, error) {
	switch strings.ToUpper(s) {
	case "L":
		return qrcode.Low, nil
	case "", "M":
		return qrcode.Medium, nil
	case "Q":
		return qrcode.High, nil
	case "H":
		return qrcode.Highest, nil
	}
	return 0, fmt.Errorf("unknown error correction level %q", s)
}

func parseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
