package thumbnail

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// MaxWidth bounds rendered previews in pixels.
const MaxWidth = 500

const (
	glyphWidth  = 7
	lineHeight  = 13
	padding     = 6
	minRendered = 64
)

var (
	background = color.RGBA{0x1e, 0x1e, 0x2e, 0xff}
	foreground = color.RGBA{0xcd, 0xd6, 0xf4, 0xff}
)

// Render draws preview lines onto an image no wider than MaxWidth.
func Render(lines []string) *image.RGBA {
	cols := 0
	for _, line := range lines {
		if n := len([]rune(line)); n > cols {
			cols = n
		}
	}
	maxCols := (MaxWidth - 2*padding) / glyphWidth
	if cols > maxCols {
		cols = maxCols
	}
	width := cols*glyphWidth + 2*padding
	if width < minRendered {
		width = minRendered
	}
	height := len(lines)*lineHeight + 2*padding
	if height < minRendered/2 {
		height = minRendered / 2
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(foreground),
		Face: basicfont.Face7x13,
	}
	for i, line := range lines {
		runes := []rune(line)
		if len(runes) > cols {
			runes = runes[:cols]
		}
		d.Dot = fixed.P(padding, padding+(i+1)*lineHeight-3)
		d.DrawString(string(runes))
	}
	return img
}

// WritePNG renders the payload and writes it as PNG. Image payloads are
// written unchanged.
func WritePNG(w io.Writer, payload string) error {
	format, err := Detect(payload)
	if err != nil {
		return err
	}
	if format == FormatPNG {
		raw, err := DecodePNG(payload)
		if err != nil {
			return err
		}
		_, err = w.Write(raw)
		return err
	}
	lines, err := DecodeText(payload)
	if err != nil {
		return err
	}
	if err := png.Encode(w, Render(lines)); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// RenderPayload converts a text payload into an image payload.
func RenderPayload(payload string) (string, error) {
	var buf bytes.Buffer
	if err := WritePNG(&buf, payload); err != nil {
		return "", err
	}
	return EncodePNG(buf.Bytes()), nil
}
