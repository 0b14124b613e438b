package potrace_test

import (
	"context"
	"fmt"

	"honnef.co/go/potrace"
)

func ExampleTrace() {
	bm, err := potrace.NewBitmap(16, 16)
	if err != nil {
		panic(err)
	}
	bm.SetRect(4, 4, 12, 12)

	res, err := potrace.Trace(context.Background(), bm, potrace.DefaultOptions())
	if err != nil {
		panic(err)
	}
	for p := range res.Paths() {
		fmt.Printf("%d segments\n", len(p.Curve.Segments))
		for _, s := range p.Curve.Segments {
			fmt.Println(s.Kind, s.C1, s.End)
		}
	}

	// Output:
	// 4 segments
	// Corner (4, 4) (8, 4)
	// Corner (12, 4) (12, 8)
	// Corner (12, 12) (8, 12)
	// Corner (4, 12) (4, 8)
}
