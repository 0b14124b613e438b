package potrace

import (
	"context"
	"math"
	"math/rand/v2"
)

// TurnPolicy selects how to resolve ambiguous diagonal crossings during
// contour extraction: positions where two foreground and two background
// pixels meet diagonally and the contour could continue either way.
type TurnPolicy int

const (
	// TurnBlack prefers the turn that connects the foreground regions.
	TurnBlack TurnPolicy = iota
	// TurnWhite prefers the turn that connects the background regions.
	TurnWhite
	// TurnLeft always turns left.
	TurnLeft
	// TurnRight always turns right.
	TurnRight
	// TurnMinority prefers the turn towards the color that is rarest in
	// the neighborhood of the crossing.
	TurnMinority
	// TurnMajority prefers the turn towards the color that is most common
	// in the neighborhood of the crossing.
	TurnMajority
	// TurnRandom decides by an unbiased coin flip, drawn from a PRNG that
	// is seeded once per call to [Trace].
	TurnRandom
)

func (tp TurnPolicy) String() string {
	switch tp {
	case TurnBlack:
		return "Black"
	case TurnWhite:
		return "White"
	case TurnLeft:
		return "Left"
	case TurnRight:
		return "Right"
	case TurnMinority:
		return "Minority"
	case TurnMajority:
		return "Majority"
	case TurnRandom:
		return "Random"
	default:
		return "InvalidTurnPolicy"
	}
}

// majority returns the majority pixel value around the corner (x, y) of the
// bitmap. The four pixels meeting at the corner are assumed to be balanced;
// square neighborhoods of radius 2 through 4 are polled until one has a
// clear majority.
func (bm *Bitmap) majority(x, y int) bool {
	for i := 2; i < 5; i++ {
		ct := 0
		for a := -i + 1; a <= i-1; a++ {
			for _, px := range [4][2]int{
				{x + a, y + i - 1},
				{x + i - 1, y + a - 1},
				{x + a - 1, y - i},
				{x - i, y + a},
			} {
				if bm.Get(px[0], px[1]) {
					ct++
				} else {
					ct--
				}
			}
		}
		if ct > 0 {
			return true
		} else if ct < 0 {
			return false
		}
	}
	return false
}

// satAdd adds two ints, clamping instead of overflowing.
func satAdd(a, b int) int {
	s := a + b
	if a > 0 && b > 0 && s < 0 {
		return math.MaxInt
	}
	if a < 0 && b < 0 && s >= 0 {
		return math.MinInt
	}
	return s
}

// findPath traces one closed contour of the bitmap, starting at the corner
// (x0, y0), which must be the upper-left corner of a set pixel, and heading
// down in raster terms. It returns the contour and the area it encloses.
// sign is the polarity of the contour in the original raster and is only
// consulted by the Black and White turn policies.
func (bm *Bitmap) findPath(x0, y0 int, sign bool, policy TurnPolicy, rng *rand.Rand) *Path {
	var (
		x, y       = x0, y0
		dirx, diry = 0, -1
		area       int
		pt         []IntPoint
	)

	for {
		pt = append(pt, IntPoint{x, y})

		x += dirx
		y += diry
		area = satAdd(area, x*diry)

		if x == x0 && y == y0 {
			break
		}

		// the two pixels diagonally ahead, right and left of the heading
		c := bm.Get(x+(dirx+diry-1)/2, y+(diry-dirx-1)/2)
		d := bm.Get(x+(dirx-diry-1)/2, y+(diry+dirx-1)/2)

		switch {
		case c && !d: // ambiguous crossing
			right := policy == TurnRight ||
				(policy == TurnBlack && sign) ||
				(policy == TurnWhite && !sign) ||
				(policy == TurnRandom && rng.Uint64()&1 != 0) ||
				(policy == TurnMajority && bm.majority(x, y)) ||
				(policy == TurnMinority && !bm.majority(x, y))
			if right {
				dirx, diry = diry, -dirx
			} else {
				dirx, diry = -diry, dirx
			}
		case c: // right turn
			dirx, diry = diry, -dirx
		case !d: // left turn
			dirx, diry = -diry, dirx
		}
	}

	return &Path{pt: pt, Area: area, Sign: sign}
}

// decompose extracts all contours of bm, despeckles them, and returns them
// in discovery order, which places enclosing contours before the contours
// they enclose. work must be a clone of bm; it is consumed and is all zero
// on return.
func decompose(ctx context.Context, bm, work *Bitmap, opts *Options, prog *progress) ([]*Path, error) {
	work.clearExcess()

	var (
		rng   *rand.Rand
		plist []*Path
	)
	if opts.TurnPolicy == TurnRandom {
		rng = rand.New(rand.NewPCG(opts.RandomSeed, 0))
	}

	x, y := 0, work.h-1
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var ok bool
		x, y, ok = work.findNext(x, y)
		if !ok {
			break
		}

		// polarity comes from the original raster; in the working copy
		// holes have been turned into blobs by the xor fills
		sign := bm.Get(x, y)

		p := work.findPath(x, y+1, sign, opts.TurnPolicy, rng)
		work.xorPath(p.pt)

		if p.Area > opts.TurdSize {
			plist = append(plist, p)
		}

		prog.report(ProgressPathList, float64(work.h-1-y)/float64(work.h))
	}
	prog.report(ProgressPathList, 1)

	return plist, nil
}
