package atlas

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"chosenoffset.com/thornvale/internal/render"
)

// fakeImage records only its bounds
type fakeImage struct {
	bounds image.Rectangle
	source string
}

func newFakeImage(w, h int) *fakeImage {
	return &fakeImage{bounds: image.Rect(0, 0, w, h)}
}

func (f *fakeImage) Bounds() image.Rectangle { return f.bounds }
func (f *fakeImage) Size() (int, int)        { return f.bounds.Dx(), f.bounds.Dy() }
func (f *fakeImage) SubImage(r image.Rectangle) render.Image {
	return &fakeImage{bounds: r.Intersect(f.bounds), source: f.source}
}
func (f *fakeImage) Fill(color.Color)                                 {}
func (f *fakeImage) DrawImage(render.Image, *render.DrawImageOptions) {}

// fakeLoader serves fixed-size images and records requested paths
type fakeLoader struct {
	sizes  map[string]image.Point
	loaded []string
}

func (l *fakeLoader) LoadImage(path string) (render.Image, error) {
	l.loaded = append(l.loaded, path)
	size, ok := l.sizes[filepath.Base(path)]
	if !ok {
		return nil, fmt.Errorf("no such image: %s", path)
	}
	img := newFakeImage(size.X, size.Y)
	img.source = path
	return img, nil
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}
