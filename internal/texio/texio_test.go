package texio

import (
	"context"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/disintegration/imaging"

	"texatlas/atlas"
)

func writePNG(t *testing.T, dir, name string, w, h int, c color.NRGBA) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := imaging.Save(imaging.New(w, h, c), path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestListDirNaturalOrder(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"tile10.png", "tile2.png", "tile1.png"} {
		writePNG(t, dir, name, 4, 4, color.NRGBA{A: 255})
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.png"), 0755); err != nil {
		t.Fatal(err)
	}
	paths, err := ListDir(dir, true)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, p := range paths {
		names = append(names, TextureName(p))
	}
	want := []string{"tile1", "tile2", "tile10"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("names = %v, want %v", names, want)
	}
}

func TestListDirEmpty(t *testing.T) {
	if _, err := ListDir(t.TempDir(), true); !errors.Is(err, ErrNoImages) {
		t.Errorf("err = %v, want ErrNoImages", err)
	}
	if _, err := ListDir(filepath.Join(t.TempDir(), "missing"), true); err == nil {
		t.Error("expected error for missing dir")
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, dir, "wood.png", 64, 32, color.NRGBA{R: 200, A: 255})
	writePNG(t, dir, "stone.jpg", 16, 16, color.NRGBA{G: 128, A: 255})
	tga := []byte{0, 0, 2, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 0, 1, 0, 24, 0x20, 10, 20, 30}
	if err := os.WriteFile(filepath.Join(dir, "grass.TGA"), tga, 0644); err != nil {
		t.Fatal(err)
	}

	images, err := LoadDir(context.Background(), dir, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(images) != 3 {
		t.Fatalf("loaded %d images, want 3", len(images))
	}
	got := map[string]image.Point{}
	for _, img := range images {
		got[img.Name] = img.Bitmap.Bounds().Size()
	}
	want := map[string]image.Point{
		"grass": {1, 1},
		"stone": {16, 16},
		"wood":  {64, 32},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("sizes = %v, want %v", got, want)
	}
	if images[0].Name != "grass" || images[2].Name != "wood" {
		t.Errorf("order = %s, %s, %s", images[0].Name, images[1].Name, images[2].Name)
	}
}

func TestLoadDirBadFile(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, dir, "ok.png", 8, 8, color.NRGBA{A: 255})
	if err := os.WriteFile(filepath.Join(dir, "broken.png"), []byte("not a png"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadDir(context.Background(), dir, true); err == nil {
		t.Error("expected decode error")
	}
}

func TestLoadDirCancelled(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, dir, "a.png", 8, 8, color.NRGBA{A: 255})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := LoadDir(ctx, dir, true); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestManifestRoundTrip(t *testing.T) {
	images := []atlas.Image{
		{Name: "a", Bitmap: imaging.New(64, 64, color.NRGBA{A: 255})},
		{Name: "b", Bitmap: imaging.New(64, 64, color.NRGBA{A: 255})},
	}
	res, err := atlas.Pack(images, 256, 2)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "out", "atlas.json")
	m := NewManifest(res, "atlas.png", 2, "test")
	if err := m.Write(path); err != nil {
		t.Fatal(err)
	}
	loaded, err := ReadManifest(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Size.Width != 256 || loaded.Size.Height != 64 {
		t.Errorf("size = %v, want 256x64", loaded.Size)
	}
	if loaded.Origin != "bottom-left" || loaded.Padding != 2 || loaded.Meta.Version != "test" {
		t.Errorf("header = %+v", loaded)
	}
	for _, name := range res.Names {
		want, _ := res.Lookup(name)
		got, ok := loaded.Lookup(name)
		if !ok || got != want {
			t.Errorf("Lookup(%s) = %v, %v, want %v", name, got, ok, want)
		}
	}
	if r := loaded.Textures["b"].Region; r != (Region{X: 66, Y: 0, W: 64, H: 64}) {
		t.Errorf("region b = %+v", r)
	}
	if _, ok := loaded.Lookup("c"); ok {
		t.Error("lookup of unknown texture succeeded")
	}
	if got := loaded.AtlasPath(path); got != filepath.Join(filepath.Dir(path), "atlas.png") {
		t.Errorf("AtlasPath = %s", got)
	}
}

func TestReadManifestInvalid(t *testing.T) {
	tests := map[string]string{
		"degenerate uv": `{"atlas":"atlas.png","textures":{"x":{"uv":{"xMin":0.5,"yMin":0,"xMax":0.5,"yMax":1}}}}`,
		"missing atlas": `{"textures":{"x":{"uv":{"xMin":0,"yMin":0,"xMax":1,"yMax":1}}}}`,
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.json")
			if err := os.WriteFile(path, []byte(data), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := ReadManifest(path); !errors.Is(err, atlas.ErrInvalidInput) {
				t.Errorf("err = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestUnpack(t *testing.T) {
	red := color.NRGBA{R: 255, A: 255}
	blue := color.NRGBA{B: 255, A: 255}
	images := []atlas.Image{
		{Name: "red", Bitmap: imaging.New(20, 10, red)},
		{Name: "blue", Bitmap: imaging.New(8, 12, blue)},
	}
	res, err := atlas.Pack(images, 256, 2)
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	if err := SaveImage(res.Atlas, filepath.Join(dir, "atlas.png")); err != nil {
		t.Fatal(err)
	}
	manifest := filepath.Join(dir, "atlas.json")
	if err := NewManifest(res, "atlas.png", 2, "test").Write(manifest); err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(dir, "unpacked")
	written, err := Unpack(context.Background(), manifest, out)
	if err != nil {
		t.Fatal(err)
	}
	if len(written) != 2 {
		t.Fatalf("wrote %v", written)
	}
	for _, src := range images {
		img, err := Decode(filepath.Join(out, src.Name+".png"))
		if err != nil {
			t.Fatal(err)
		}
		if img.Bounds().Size() != src.Bitmap.Bounds().Size() {
			t.Errorf("%s: size %v, want %v", src.Name, img.Bounds().Size(), src.Bitmap.Bounds().Size())
			continue
		}
		want := src.Bitmap.At(0, 0)
		b := img.Bounds()
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				if got := color.NRGBAModel.Convert(img.At(x, y)); got != want {
					t.Fatalf("%s: pixel (%d,%d) = %v, want %v", src.Name, x, y, got, want)
				}
			}
		}
	}
}
