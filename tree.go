package potrace

import "context"

// bbox is an integer bounding box; x1 and y1 are exclusive.
type bbox struct {
	x0, y0, x1, y1 int
}

func pathBBox(p *Path) bbox {
	b := bbox{
		x0: p.pt[0].X,
		y0: p.pt[0].Y,
	}
	for _, pt := range p.pt {
		b.x0 = min(b.x0, pt.X)
		b.x1 = max(b.x1, pt.X)
		b.y0 = min(b.y0, pt.Y)
		b.y1 = max(b.y1, pt.Y)
	}
	return b
}

// buildTree arranges the contours of plist, which must be ordered so that
// enclosing contours come first, into a tree by insideness testing, and
// returns the first top-level path. scratch must be an all-zero bitmap of
// the raster's dimensions; it is used to render one contour at a time, and
// is all zero again on return.
//
// Because point 0 of every contour is its upper-left corner, a contour lies
// inside another exactly if the pixel below its point 0 is set once the
// other contour's interior has been xor-filled into the scratch bitmap.
func buildTree(ctx context.Context, plist []*Path, scratch *Bitmap) (*Path, error) {
	if len(plist) == 0 {
		return nil, nil
	}

	// chain the contours in discovery order
	for i, p := range plist {
		if i+1 < len(plist) {
			p.Next = plist[i+1]
		} else {
			p.Next = nil
		}
	}
	root := plist[0]

	// Partition each sublist into the head, the paths inside the head
	// (children), and the rest (siblings). Freshly made child and sibling
	// sublists are pushed for the same treatment; every contour is
	// rendered exactly once.
	stack := []*Path{root}
	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		head := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		rest := head.Next
		head.Next = nil

		scratch.xorPath(head.pt)
		b := pathBBox(head)

		hookIn := &head.ChildList
		hookOut := &head.Next
		for p := rest; p != nil; p = rest {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			rest = p.Next
			p.Next = nil

			// contours are discovered top to bottom, so once one
			// starts below the head's bounding box, it and everything
			// after it are outside the head
			if p.pt[0].Y <= b.y0 {
				*hookOut = p
				hookOut = &p.Next
				*hookOut = rest
				break
			}

			if scratch.Get(p.pt[0].X, p.pt[0].Y-1) {
				*hookIn = p
				hookIn = &p.Next
			} else {
				*hookOut = p
				hookOut = &p.Next
			}
		}

		scratch.clearRect(b.x0, b.y0, b.x1, b.y1)

		if head.ChildList != nil {
			stack = append(stack, head.ChildList)
		}
		if head.Next != nil {
			stack = append(stack, head.Next)
		}
	}

	// the partition built its lists through the Next fields; move them to
	// Sibling where they belong
	var toSiblings func(head *Path)
	toSiblings = func(head *Path) {
		for p := head; p != nil; p = p.Sibling {
			p.Sibling = p.Next
			p.Next = nil
		}
		for p := head; p != nil; p = p.Sibling {
			toSiblings(p.ChildList)
		}
	}
	toSiblings(root)

	relinkNext(root)
	return root, nil
}

// relinkNext rebuilds the Next chain from the tree structure:
// each path is followed by its children, and deeper levels follow once the
// current level is exhausted.
func relinkNext(root *Path) {
	queue := []*Path{root}
	hook := &root
	for len(queue) > 0 {
		l := queue[0]
		queue = queue[1:]
		for p := l; p != nil; p = p.Sibling {
			*hook = p
			hook = &p.Next
			for c := p.ChildList; c != nil; c = c.Sibling {
				*hook = c
				hook = &c.Next
				if c.ChildList != nil {
					queue = append(queue, c.ChildList)
				}
			}
		}
	}
	*hook = nil
}
