package potrace

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

// mustTrace traces bm with opts and fails the test on error.
func mustTrace(t *testing.T, bm *Bitmap, opts Options) *Result {
	t.Helper()
	res, err := Trace(context.Background(), bm, opts)
	if err != nil {
		t.Fatalf("Trace: %v", err)
	}
	return res
}

// mustBitmap returns an all-zero bitmap and fails the test on error.
func mustBitmap(t *testing.T, w, h int) *Bitmap {
	t.Helper()
	bm, err := NewBitmap(w, h)
	if err != nil {
		t.Fatalf("NewBitmap(%d, %d): %v", w, h, err)
	}
	return bm
}

// cmpPathPointers compares paths by identity, since Path values form cycles.
func cmpPathPointers() cmp.Option {
	return cmp.Comparer(func(a, b *Path) bool { return a == b })
}

// collect gathers all paths of a trace into a slice.
func collect(res *Result) []*Path {
	var out []*Path
	for p := range res.Paths() {
		out = append(out, p)
	}
	return out
}
