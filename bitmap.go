package potrace

import (
	"fmt"
	"image"
	"image/color"
	"math/bits"
)

const (
	wordBits = 64
	hiBit    = uint64(1) << (wordBits - 1)
	allBits  = ^uint64(0)
)

// Bitmap is a binary raster with bit-packed scanlines. The leftmost pixel of
// a row is the most significant bit of the row's first word. Row 0 is the
// bottom row of the raster.
//
// The zero value is not a valid bitmap; use [NewBitmap] or [FromImage].
type Bitmap struct {
	w, h  int
	dy    int // words per scanline
	words []uint64
}

// NewBitmap returns an all-zero bitmap of the given dimensions. Both
// dimensions must be positive.
func NewBitmap(w, h int) (*Bitmap, error) {
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("potrace: invalid bitmap dimensions %d×%d", w, h)
	}
	dy := (w-1)/wordBits + 1
	return &Bitmap{
		w:     w,
		h:     h,
		dy:    dy,
		words: make([]uint64, dy*h),
	}, nil
}

// Width returns the width of the bitmap in pixels.
func (bm *Bitmap) Width() int { return bm.w }

// Height returns the height of the bitmap in pixels.
func (bm *Bitmap) Height() int { return bm.h }

func (bm *Bitmap) scanline(y int) []uint64 {
	return bm.words[y*bm.dy : (y+1)*bm.dy]
}

func (bm *Bitmap) index(x, y int) *uint64 {
	return &bm.words[y*bm.dy+x/wordBits]
}

func mask(x int) uint64 {
	return hiBit >> (x & (wordBits - 1))
}

// Get returns the pixel at (x, y). Out-of-bounds coordinates read as false.
func (bm *Bitmap) Get(x, y int) bool {
	if x < 0 || x >= bm.w || y < 0 || y >= bm.h {
		return false
	}
	return *bm.index(x, y)&mask(x) != 0
}

// Set sets the pixel at (x, y). Out-of-bounds coordinates are ignored.
func (bm *Bitmap) Set(x, y int) {
	if x < 0 || x >= bm.w || y < 0 || y >= bm.h {
		return
	}
	*bm.index(x, y) |= mask(x)
}

// Clear clears the pixel at (x, y). Out-of-bounds coordinates are ignored.
func (bm *Bitmap) Clear(x, y int) {
	if x < 0 || x >= bm.w || y < 0 || y >= bm.h {
		return
	}
	*bm.index(x, y) &^= mask(x)
}

// Invert inverts the pixel at (x, y). Out-of-bounds coordinates are ignored.
func (bm *Bitmap) Invert(x, y int) {
	if x < 0 || x >= bm.w || y < 0 || y >= bm.h {
		return
	}
	*bm.index(x, y) ^= mask(x)
}

// SetRect sets all pixels in the rectangle [x0, x1) × [y0, y1), clipped to
// the bitmap.
func (bm *Bitmap) SetRect(x0, y0, x1, y1 int) {
	for y := max(y0, 0); y < min(y1, bm.h); y++ {
		for x := max(x0, 0); x < min(x1, bm.w); x++ {
			*bm.index(x, y) |= mask(x)
		}
	}
}

// Clone returns a copy of the bitmap.
func (bm *Bitmap) Clone() *Bitmap {
	words := make([]uint64, len(bm.words))
	copy(words, bm.words)
	return &Bitmap{w: bm.w, h: bm.h, dy: bm.dy, words: words}
}

// clearAll sets every pixel to zero.
func (bm *Bitmap) clearAll() {
	clear(bm.words)
}

// clearExcess zeroes the unused trailing bits of every scanline. findNext
// skips whole words at a time and requires the padding to be zero.
func (bm *Bitmap) clearExcess() {
	if bm.w%wordBits == 0 {
		return
	}
	m := allBits << (wordBits - bm.w%wordBits)
	for y := 0; y < bm.h; y++ {
		bm.scanline(y)[bm.dy-1] &= m
	}
}

// xorRange inverts the bits [min(x, xa), max(x, xa)) of row y. xa must be a
// multiple of the word size.
func (bm *Bitmap) xorRange(x, y, xa int) {
	xhi := x &^ (wordBits - 1)
	xlo := x & (wordBits - 1)

	row := bm.scanline(y)
	if xhi < xa {
		for i := xhi; i < xa; i += wordBits {
			row[i/wordBits] ^= allBits
		}
	} else {
		for i := xa; i < xhi; i += wordBits {
			row[i/wordBits] ^= allBits
		}
	}
	// The guard matters: for a word-aligned x at the right edge of the
	// bitmap, xhi indexes one word past the end of the row.
	if xlo != 0 {
		row[xhi/wordBits] ^= allBits << (wordBits - xlo)
	}
}

// xorPath inverts the interior of the closed contour pts, which must lie
// within the bitmap.
func (bm *Bitmap) xorPath(pts []IntPoint) {
	if len(pts) == 0 {
		return
	}
	y1 := pts[len(pts)-1].Y
	xa := pts[0].X &^ (wordBits - 1)
	for _, p := range pts {
		if p.Y != y1 {
			bm.xorRange(p.X, min(p.Y, y1), xa)
			y1 = p.Y
		}
	}
}

// clearRect zeroes the words covering columns [x0, x1) of rows [y0, y1).
// Cheaper than clearAll when the dirty region's bounding box is known.
func (bm *Bitmap) clearRect(x0, y0, x1, y1 int) {
	imin := x0 / wordBits
	imax := (x1 + wordBits - 1) / wordBits
	for y := y0; y < y1; y++ {
		row := bm.scanline(y)
		for i := imin; i < imax; i++ {
			row[i] = 0
		}
	}
}

// findNext finds the next set pixel in raster order: rows are visited from y
// down to 0, left to right within a row, starting on the incoming row at the
// word containing x. It requires scanline padding to be zero, see
// clearExcess.
func (bm *Bitmap) findNext(x, y int) (int, int, bool) {
	x0 := x &^ (wordBits - 1)
	for ; y >= 0; y-- {
		row := bm.scanline(y)
		for wx := x0; wx < bm.w; wx += wordBits {
			if w := row[wx/wordBits]; w != 0 {
				return wx + bits.LeadingZeros64(w), y, true
			}
		}
		x0 = 0
	}
	return 0, 0, false
}

// FromImage converts an image to a bitmap. A pixel is foreground if its
// luminance is below threshold, which is expressed in [0, 1]; 0.5 is a
// reasonable default for black-on-white sources. The bottom row of the image
// becomes row 0 of the bitmap, so that traced outlines come out in the usual
// y-up orientation.
func FromImage(img image.Image, threshold float64) (*Bitmap, error) {
	b := img.Bounds()
	bm, err := NewBitmap(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}
	for y := 0; y < bm.h; y++ {
		iy := b.Max.Y - 1 - y
		for x := 0; x < bm.w; x++ {
			g := color.GrayModel.Convert(img.At(b.Min.X+x, iy)).(color.Gray)
			if float64(g.Y)/255 < threshold {
				*bm.index(x, y) |= mask(x)
			}
		}
	}
	return bm, nil
}

// Image returns the bitmap as a grayscale mask, with foreground pixels white
// and row 0 at the bottom.
func (bm *Bitmap) Image() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, bm.w, bm.h))
	for y := 0; y < bm.h; y++ {
		iy := bm.h - 1 - y
		for x := 0; x < bm.w; x++ {
			if bm.Get(x, y) {
				img.SetGray(x, iy, color.Gray{Y: 0xff})
			}
		}
	}
	return img
}
