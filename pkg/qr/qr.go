package qr

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	qrcode "github.com/skip2/go-qrcode"
)

const DefaultSize = 500

// Options control the rendered PNG.
type Options struct {
	Size       int
	Foreground color.Color
	Background color.Color
}

func DefaultOptions() Options {
	return Options{
		Size:       DefaultSize,
		Foreground: color.Black,
		Background: color.White,
	}
}

// PNG encodes content as a QR code image.
func PNG(content string, opts Options) ([]byte, error) {
	if content == "" {
		return nil, fmt.Errorf("qr content is required")
	}
	if opts.Size <= 0 {
		opts.Size = DefaultSize
	}
	if opts.Foreground == nil {
		opts.Foreground = color.Black
	}
	if opts.Background == nil {
		opts.Background = color.White
	}

	code, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("failed to encode qr code: %w", err)
	}
	code.ForegroundColor = opts.Foreground
	code.BackgroundColor = opts.Background

	png, err := code.PNG(opts.Size)
	if err != nil {
		return nil, fmt.Errorf("failed to render qr code: %w", err)
	}
	return png, nil
}

// WriteFile renders content and writes the PNG to path.
func WriteFile(content, path string, opts Options) error {
	png, err := PNG(content, opts)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, png, 0o644); err != nil {
		return fmt.Errorf("failed to write qr code: %w", err)
	}
	return nil
}
