package thumbnail

import (
	"bytes"
	"image/png"
	"reflect"
	"strings"
	"testing"
)

func TestEncodeTextStripsEscapes(t *testing.T) {
	payload := EncodeText([]string{"\x1b[31mred\x1b[0m  ", "plain", "", ""})
	lines, err := DecodeText(payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := []string{"red", "plain"}
	if !reflect.DeepEqual(lines, want) {
		t.Fatalf("expected %v, got %v", want, lines)
	}
}

func TestDetectFormats(t *testing.T) {
	if f, err := Detect(EncodeText([]string{"x"})); err != nil || f != FormatText {
		t.Fatalf("expected text format, got %v/%v", f, err)
	}
	if f, err := Detect(EncodePNG([]byte{1, 2})); err != nil || f != FormatPNG {
		t.Fatalf("expected png format, got %v/%v", f, err)
	}
	if _, err := Detect("garbage"); err != ErrUnknownFormat {
		t.Fatalf("expected unknown format, got %v", err)
	}
}

func TestPreviewLinesKeepsTail(t *testing.T) {
	payload := EncodeText([]string{"1", "2", "3", "4"})
	got := PreviewLines(payload, 2)
	if !reflect.DeepEqual(got, []string{"3", "4"}) {
		t.Fatalf("expected tail lines, got %v", got)
	}
	if PreviewLines("", 3) != nil {
		t.Fatalf("expected nil for empty payload")
	}
	if got := PreviewLines("bogus", 3); len(got) != 1 || !strings.Contains(got[0], "unreadable") {
		t.Fatalf("expected placeholder, got %v", got)
	}
}

func TestRenderRespectsMaxWidth(t *testing.T) {
	img := Render([]string{strings.Repeat("x", 400), "short"})
	if img.Bounds().Dx() > MaxWidth {
		t.Fatalf("expected width <= %d, got %d", MaxWidth, img.Bounds().Dx())
	}
	if img.Bounds().Dy() < 2*lineHeight {
		t.Fatalf("expected room for two lines, got height %d", img.Bounds().Dy())
	}
}

func TestWritePNGProducesDecodableImage(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePNG(&buf, EncodeText([]string{"hello", "world"})); err != nil {
		t.Fatalf("write png: %v", err)
	}
	if _, err := png.Decode(&buf); err != nil {
		t.Fatalf("decode png: %v", err)
	}

	payload, err := RenderPayload(EncodeText([]string{"hi"}))
	if err != nil {
		t.Fatalf("render payload: %v", err)
	}
	if f, _ := Detect(payload); f != FormatPNG {
		t.Fatalf("expected png payload")
	}
}
