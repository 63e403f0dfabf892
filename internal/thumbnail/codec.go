// Package thumbnail encodes window previews as self-describing strings.
//
// Two payload shapes are understood: captured terminal text
// ("text/plain;base64,...") and rendered images ("data:image/png;base64,...").
package thumbnail

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

const (
	textPrefix = "text/plain;base64,"
	pngPrefix  = "data:image/png;base64,"
)

// ErrUnknownFormat is returned for payloads with an unrecognised prefix.
var ErrUnknownFormat = errors.New("unknown thumbnail format")

// Format identifies the payload shape.
type Format int

const (
	FormatText Format = iota
	FormatPNG
)

// EncodeText packs preview lines into a payload. Escape sequences and
// trailing blank lines are removed.
func EncodeText(lines []string) string {
	clean := make([]string, 0, len(lines))
	for _, line := range lines {
		clean = append(clean, strings.TrimRight(ansi.Strip(line), " \t"))
	}
	for len(clean) > 0 && clean[len(clean)-1] == "" {
		clean = clean[:len(clean)-1]
	}
	return textPrefix + base64.StdEncoding.EncodeToString([]byte(strings.Join(clean, "\n")))
}

// EncodePNG packs PNG bytes into a payload.
func EncodePNG(data []byte) string {
	return pngPrefix + base64.StdEncoding.EncodeToString(data)
}

// Detect reports the payload format.
func Detect(payload string) (Format, error) {
	switch {
	case strings.HasPrefix(payload, textPrefix):
		return FormatText, nil
	case strings.HasPrefix(payload, pngPrefix):
		return FormatPNG, nil
	default:
		return 0, ErrUnknownFormat
	}
}

// DecodeText returns the preview lines of a text payload.
func DecodeText(payload string) ([]string, error) {
	if !strings.HasPrefix(payload, textPrefix) {
		return nil, ErrUnknownFormat
	}
	raw, err := base64.StdEncoding.DecodeString(payload[len(textPrefix):])
	if err != nil {
		return nil, fmt.Errorf("decode text thumbnail: %w", err)
	}
	if len(raw) == 0 {
		return nil, nil
	}
	return strings.Split(string(raw), "\n"), nil
}

// DecodePNG returns the image bytes of a PNG payload.
func DecodePNG(payload string) ([]byte, error) {
	if !strings.HasPrefix(payload, pngPrefix) {
		return nil, ErrUnknownFormat
	}
	raw, err := base64.StdEncoding.DecodeString(payload[len(pngPrefix):])
	if err != nil {
		return nil, fmt.Errorf("decode png thumbnail: %w", err)
	}
	return raw, nil
}

// PreviewLines returns at most limit lines suitable for drawing inside a
// card. Image payloads produce a placeholder line.
func PreviewLines(payload string, limit int) []string {
	if payload == "" || limit <= 0 {
		return nil
	}
	format, err := Detect(payload)
	if err != nil {
		return []string{"(unreadable preview)"}
	}
	if format == FormatPNG {
		return []string{"(image preview)"}
	}
	lines, err := DecodeText(payload)
	if err != nil {
		return []string{"(unreadable preview)"}
	}
	if len(lines) > limit {
		lines = lines[len(lines)-limit:]
	}
	return lines
}
