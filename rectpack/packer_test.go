package rectpack

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
)

var heuristics = map[string]Heuristic{
	"Shelf_FirstFit":               ShelfFF,
	"Shelf_BestHeightFit":          ShelfBHF,
	"Skyline_BottomLeft":           SkylineBL,
	"Guillotine_BestAreaFit":       GuillotineBAF,
	"Guillotine_BestShortSideFit":  GuillotineBSSF,
	"Guillotine_BestLongSideFit":   GuillotineBLSF,
	"Guillotine_WorstAreaFit":      GuillotineWAF,
	"Guillotine_WorstShortSideFit": GuillotineWSSF,
	"Guillotine_WorstLongSideFit":  GuillotineWLSF,
}

// randomSize returns a size within the given minimum and maximum sizes.
func randomSize(rng *rand.Rand, id int, minSize, maxSize Size) Size {
	w := rng.Intn(maxSize.Width-minSize.Width) + minSize.Width
	h := rng.Intn(maxSize.Height-minSize.Height) + minSize.Height
	return NewSizeID(id, w, h)
}

// randomColor (surprise!) returns a random color.
func randomColor(rng *rand.Rand) color.RGBA {
	// Offset to use a minimum value so it is never pure black.
	return color.RGBA{
		R: uint8(rng.Intn(240)) + 15,
		G: uint8(rng.Intn(240)) + 15,
		B: uint8(rng.Intn(240)) + 15,
		A: 255,
	}
}

// createImage colorizes and creates an image from packed rectangles to provide
// a visual representation.
func createImage(t *testing.T, path string, packer *Packer) {
	t.Helper()
	rng := rand.New(rand.NewSource(1))
	size := packer.Canvas()
	img := image.NewRGBA(image.Rect(0, 0, size.Width, size.Height))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.RGBA{0, 0, 0, 255}}, image.Point{}, draw.Src)
	for _, rect := range packer.Rects() {
		r := image.Rect(rect.X, rect.Y, rect.Right(), rect.Bottom())
		draw.Draw(img, r, &image.Uniform{randomColor(rng)}, image.Point{}, draw.Src)
	}
	file, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()
	if err := png.Encode(file, img); err != nil {
		t.Fatal(err)
	}
}

// assertLayout checks that every rect lies inside the canvas and that no two
// rects come closer than padding.
func assertLayout(t *testing.T, packer *Packer) {
	t.Helper()
	canvas := packer.Canvas()
	bounds := NewRect(0, 0, canvas.Width, canvas.Height)
	rects := packer.Rects()
	for i := range rects {
		if !bounds.ContainsRect(rects[i]) {
			t.Errorf("%s lies outside canvas %s", rects[i], canvas)
		}
		for j := i + 1; j < len(rects); j++ {
			if rects[i].Inflate(packer.Padding).Intersects(rects[j].Inflate(packer.Padding)) {
				t.Errorf("%s and %s closer than padding %d", rects[i], rects[j], packer.Padding)
			}
		}
	}
}

func TestRandom(t *testing.T) {
	const (
		count    = 256
		maxWidth = 2048
	)
	minSize := NewSize(8, 8)
	maxSize := NewSize(96, 96)
	for name, heuristic := range heuristics {
		t.Run(name, func(t *testing.T) {
			rng := rand.New(rand.NewSource(42))
			packer, err := NewPacker(maxWidth, maxWidth, heuristic)
			if err != nil {
				t.Fatal(err)
			}
			packer.SetPadding(2)
			for i := 0; i < count; i++ {
				packer.Insert(randomSize(rng, i, minSize, maxSize))
			}
			if !packer.Pack() {
				t.Fatalf("%d sizes left unpacked", len(packer.Unpacked()))
			}
			if got := len(packer.Rects()); got != count {
				t.Fatalf("packed %d rects, want %d", got, count)
			}
			assertLayout(t, packer)

			ids := make(map[int]bool, count)
			for _, rect := range packer.Rects() {
				if ids[rect.ID] {
					t.Errorf("id %d packed twice", rect.ID)
				}
				ids[rect.ID] = true
			}
			createImage(t, filepath.Join(t.TempDir(), "packed.png"), packer)
		})
	}
}

func TestPackTwoSquaresWithPadding(t *testing.T) {
	packer, _ := NewPacker(256, 256, ShelfFF)
	packer.SetPadding(2)
	packer.InsertSize(0, 64, 64)
	packer.InsertSize(1, 64, 64)
	if !packer.Pack() {
		t.Fatal("pack failed")
	}
	mapping := packer.Map()
	if want := NewRect(0, 0, 64, 64); !mapping[0].Eq(want) {
		t.Errorf("rect 0 = %s, want %s", mapping[0], want)
	}
	if want := NewRect(66, 0, 64, 64); !mapping[1].Eq(want) {
		t.Errorf("rect 1 = %s, want %s", mapping[1], want)
	}
	if got, want := packer.Canvas(), NewSize(256, 128); !got.Eq(want) {
		t.Errorf("canvas = %s, want %s", got, want)
	}
	if got, want := packer.Size(), NewSize(130, 64); !got.Eq(want) {
		t.Errorf("size = %s, want %s", got, want)
	}
	if got, want := packer.Shrink(true), NewSize(256, 64); !got.Eq(want) {
		t.Errorf("shrink = %s, want %s", got, want)
	}
	if got, want := packer.Shrink(false), NewSize(130, 64); !got.Eq(want) {
		t.Errorf("shrink = %s, want %s", got, want)
	}
}

func TestPackExactFit(t *testing.T) {
	for name, heuristic := range heuristics {
		t.Run(name, func(t *testing.T) {
			packer, _ := NewPacker(256, 256, heuristic)
			for i := 0; i < 4; i++ {
				packer.InsertSize(i, 128, 128)
			}
			if !packer.Pack() {
				t.Fatalf("four 128x128 squares must fill a 256x256 canvas, %d left", len(packer.Unpacked()))
			}
			assertLayout(t, packer)
			if got := packer.Used(false); got != 1 {
				t.Errorf("used = %v, want 1", got)
			}
		})
	}
}

func TestPackCapacityExceeded(t *testing.T) {
	for name, heuristic := range heuristics {
		t.Run(name, func(t *testing.T) {
			packer, _ := NewPacker(256, 256, heuristic)
			for i := 0; i < 5; i++ {
				packer.InsertSize(i, 128, 128)
			}
			if packer.Pack() {
				t.Fatal("five 128x128 squares cannot fit into 256x256")
			}
			if got := len(packer.Unpacked()); got != 1 {
				t.Errorf("unpacked = %d, want 1", got)
			}
			for _, size := range packer.Unpacked() {
				if !size.Eq(NewSize(128, 128)) {
					t.Errorf("unpacked size %s lost its padding correction", size)
				}
			}
			if got := packer.Canvas(); !got.Eq(NewSize(256, 256)) {
				t.Errorf("canvas = %s, want fully grown 256x256", got)
			}
		})
	}
}

func TestPackTooWide(t *testing.T) {
	packer, _ := NewPacker(256, 256, ShelfFF)
	packer.InsertSize(0, 300, 10)
	if packer.Pack() {
		t.Fatal("a 300 px wide size cannot fit a 256 px canvas")
	}
}

func TestGrowth(t *testing.T) {
	packer, _ := NewPacker(1024, 1024, ShelfFF)
	for i := 0; i < 3; i++ {
		packer.InsertSize(i, 200, 100)
	}
	if !packer.Pack() {
		t.Fatal("pack failed")
	}
	// 3 * 200 * 100 = 60000, sqrt ~ 245 -> 256; the shelf holds one 200 px wide
	// size per row and three rows of 100 px exceed 256, so width doubles once.
	if got, want := packer.Canvas(), NewSize(512, 256); !got.Eq(want) {
		t.Errorf("canvas = %s, want %s", got, want)
	}
	assertLayout(t, packer)
}

func TestSorter(t *testing.T) {
	packer, _ := NewPacker(1024, 1024, ShelfFF)
	packer.InsertSize(0, 10, 10)
	packer.InsertSize(1, 10, 40)
	packer.InsertSize(2, 10, 20)
	packer.Pack()
	if got := packer.Rects()[0].ID; got != 1 {
		t.Errorf("tallest size placed first = %d, want 1", got)
	}

	packer.Sorter(nil, false)
	packer.Pack()
	if got := packer.Rects()[0].ID; got != 0 {
		t.Errorf("unsorted first = %d, want 0", got)
	}
}

func TestNewPackerInvalid(t *testing.T) {
	if _, err := NewPacker(0, 256, ShelfFF); err == nil {
		t.Error("expected error for zero width")
	}
	if _, err := NewPacker(256, 256, Heuristic(0x9)); err == nil {
		t.Error("expected error for unknown algorithm")
	}
}

func TestResolveAlgorithm(t *testing.T) {
	tests := []struct {
		algo, variant string
		want          Heuristic
		wantErr       bool
	}{
		{"shelf", "", ShelfFF, false},
		{"Shelf", "BestHeightFit", ShelfBHF, false},
		{"skyline", "", SkylineBL, false},
		{"guillotine", "WorstAreaFit", GuillotineWAF, false},
		{"maxrects", "", 0, true},
		{"skyline", "MinWaste", 0, true},
	}
	for _, tt := range tests {
		got, err := ResolveAlgorithm(tt.algo, tt.variant)
		if (err != nil) != tt.wantErr {
			t.Errorf("ResolveAlgorithm(%q, %q) error = %v", tt.algo, tt.variant, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ResolveAlgorithm(%q, %q) = %#x, want %#x", tt.algo, tt.variant, got, tt.want)
		}
	}
}

func TestNextPowerOfTwo(t *testing.T) {
	for n, want := range map[int]int{0: 1, 1: 1, 2: 2, 3: 4, 64: 64, 65: 128, 130: 256} {
		if got := NextPowerOfTwo(n); got != want {
			t.Errorf("NextPowerOfTwo(%d) = %d, want %d", n, got, want)
		}
	}
}

func TestResolveSort(t *testing.T) {
	a, b := NewSize(10, 40), NewSize(30, 30)
	tests := []struct {
		name string
		want int // 比较 a, b 的结果
	}{
		{"", -1},
		{"height", -1},
		{"AREA", 1},
		{"perimeter", 1},
		{"diff", -1},
		{"maxside", -1},
	}
	for _, tt := range tests {
		sortFunc, err := ResolveSort(tt.name)
		if err != nil {
			t.Fatalf("ResolveSort(%q): %v", tt.name, err)
		}
		if got := sortFunc(a, b); got != tt.want {
			t.Errorf("%q: compare = %d, want %d", tt.name, got, tt.want)
		}
	}
	if _, err := ResolveSort("random"); err == nil {
		t.Error("expected error for unknown order")
	}
}
