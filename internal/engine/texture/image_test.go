package texture

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"golang.org/x/image/bmp"
)

func checker() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.NRGBA{255, 0, 0, 255})
	img.Set(1, 0, color.NRGBA{0, 255, 0, 255})
	img.Set(0, 1, color.NRGBA{0, 0, 255, 255})
	img.Set(1, 1, color.NRGBA{255, 255, 255, 255})
	return img
}

func TestDecodeFormats(t *testing.T) {
	tests := []struct {
		name   string
		encode func(*bytes.Buffer) error
	}{
		{"png", func(b *bytes.Buffer) error { return png.Encode(b, checker()) }},
		{"bmp", func(b *bytes.Buffer) error { return bmp.Encode(b, checker()) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := tt.encode(&buf); err != nil {
				t.Fatalf("encode: %v", err)
			}
			img, err := Decode(&buf, tt.name)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			rgba := ToRGBA(img)
			if got := rgba.RGBAAt(1, 0); got != (color.RGBA{0, 255, 0, 255}) {
				t.Errorf("pixel (1,0) = %v, want green", got)
			}
		})
	}
}

func TestDecodeGarbage(t *testing.T) {
	if _, err := Decode(bytes.NewReader([]byte("not an image")), "junk"); err == nil {
		t.Error("Decode() of garbage should fail")
	}
}

func TestToRGBARebasesBounds(t *testing.T) {
	src := image.NewRGBA(image.Rect(5, 5, 7, 8))
	src.SetRGBA(5, 5, color.RGBA{1, 2, 3, 4})

	got := ToRGBA(src)
	if got.Bounds() != image.Rect(0, 0, 2, 3) {
		t.Errorf("ToRGBA().Bounds() = %v, want (0,0)-(2,3)", got.Bounds())
	}
	if c := got.RGBAAt(0, 0); c != (color.RGBA{1, 2, 3, 4}) {
		t.Errorf("ToRGBA() pixel (0,0) = %v, want {1 2 3 4}", c)
	}

	same := image.NewRGBA(image.Rect(0, 0, 4, 4))
	if ToRGBA(same) != same {
		t.Error("ToRGBA() should return a packed RGBA unchanged")
	}
}
