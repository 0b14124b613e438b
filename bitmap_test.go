package potrace

import (
	"image"
	"image/color"
	"testing"
)

func TestNewBitmapInvalid(t *testing.T) {
	for _, dims := range [][2]int{{0, 1}, {1, 0}, {0, 0}, {-3, 4}} {
		if _, err := NewBitmap(dims[0], dims[1]); err == nil {
			t.Errorf("NewBitmap(%d, %d): expected error", dims[0], dims[1])
		}
	}
}

func TestBitmapGetSet(t *testing.T) {
	bm := mustBitmap(t, 100, 10)

	bm.Set(0, 0)
	bm.Set(63, 4)
	bm.Set(64, 4)
	bm.Set(99, 9)
	for _, p := range [][2]int{{0, 0}, {63, 4}, {64, 4}, {99, 9}} {
		if !bm.Get(p[0], p[1]) {
			t.Errorf("pixel (%d, %d) not set", p[0], p[1])
		}
	}
	if bm.Get(1, 0) || bm.Get(62, 4) || bm.Get(65, 4) {
		t.Error("unexpected set pixel")
	}

	// out of bounds reads as false, writes are ignored
	if bm.Get(-1, 0) || bm.Get(0, -1) || bm.Get(100, 0) || bm.Get(0, 10) {
		t.Error("out-of-bounds read returned true")
	}
	bm.Set(-1, 0)
	bm.Set(100, 3)

	bm.Invert(63, 4)
	if bm.Get(63, 4) {
		t.Error("Invert did not clear the pixel")
	}
	bm.Clear(64, 4)
	if bm.Get(64, 4) {
		t.Error("Clear did not clear the pixel")
	}
}

func TestBitmapXorRange(t *testing.T) {
	// brute-force comparison, with both word-aligned and ragged x
	for _, tt := range []struct{ x, xa int }{
		{0, 64}, {5, 64}, {64, 0}, {70, 64}, {127, 0}, {3, 128}, {128, 128},
	} {
		bm := mustBitmap(t, 192, 1)
		bm.Set(2, 0)
		bm.Set(100, 0)

		want := make([]bool, 192)
		want[2] = true
		want[100] = true
		for x := min(tt.x, tt.xa); x < max(tt.x, tt.xa); x++ {
			want[x] = !want[x]
		}

		bm.xorRange(tt.x, 0, tt.xa)
		for x := range want {
			if bm.Get(x, 0) != want[x] {
				t.Errorf("xorRange(%d, 0, %d): pixel %d = %v, want %v",
					tt.x, tt.xa, x, bm.Get(x, 0), want[x])
			}
		}
	}
}

func TestBitmapFindNext(t *testing.T) {
	bm := mustBitmap(t, 200, 20)
	bm.Set(130, 7)
	bm.Set(3, 5)

	// the search starts at the top and skips whole words
	x, y, ok := bm.findNext(0, 19)
	if !ok || x != 130 || y != 7 {
		t.Fatalf("findNext(0, 19) = (%d, %d, %v), want (130, 7, true)", x, y, ok)
	}

	// on the incoming row the search starts at the word containing x, so
	// a pixel earlier in the row is not revisited
	bm2 := mustBitmap(t, 200, 20)
	bm2.Set(3, 5)
	if _, _, ok := bm2.findNext(64, 5); ok {
		t.Error("findNext(64, 5) found a pixel before the start word")
	}
	x, y, ok = bm2.findNext(0, 5)
	if !ok || x != 3 || y != 5 {
		t.Fatalf("findNext(0, 5) = (%d, %d, %v), want (3, 5, true)", x, y, ok)
	}
}

func TestBitmapClearExcess(t *testing.T) {
	bm := mustBitmap(t, 70, 2)
	// simulate an external writer leaving garbage in the padding
	bm.words[1] |= 0xffff
	bm.clearExcess()
	if _, _, ok := bm.findNext(0, 1); ok {
		t.Error("findNext found a pixel in scanline padding")
	}
}

func TestBitmapClone(t *testing.T) {
	bm := mustBitmap(t, 40, 8)
	bm.SetRect(3, 2, 10, 6)
	cl := bm.Clone()
	cl.Invert(4, 3)
	if !bm.Get(4, 3) {
		t.Error("mutating the clone changed the original")
	}
}

func TestFromImage(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 8, 4))
	for y := range 4 {
		for x := range 8 {
			img.SetGray(x, y, color.Gray{Y: 0xff})
		}
	}
	img.SetGray(1, 0, color.Gray{Y: 0}) // top row of the image

	bm, err := FromImage(img, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	// the image's top row is the bitmap's top row, which is row h-1
	if !bm.Get(1, 3) {
		t.Error("dark pixel did not map to the top bitmap row")
	}
	if bm.Get(1, 0) {
		t.Error("unexpected foreground pixel")
	}

	round, err := FromImage(bm.Image(), 0.5)
	if err != nil {
		t.Fatal(err)
	}
	// Image marks foreground white, so thresholding it selects the
	// complement
	for y := range 4 {
		for x := range 8 {
			if round.Get(x, y) == bm.Get(x, y) {
				t.Fatalf("round trip not complementary at (%d, %d)", x, y)
			}
		}
	}
}
