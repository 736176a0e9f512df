package layout

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

type Point struct {
	X, Y int
}

type Flex struct {
	Dir   Direction // direction of the main axis
	Items []FlexItem
}

func Column(items ...FlexItem) *Flex {
	return &Flex{Dir: Y, Items: items}
}

func Row(items ...FlexItem) *Flex {
	return &Flex{Dir: X, Items: items}
}

func (f Flex) StartLayouting(width, height int) {
	f.Layout(Dimensions{
		Origin: Point{X: 0, Y: 0},
		Width:  width,
		Height: height,
	})
}

// Layout sizes the items along the main axis, hands every item its box and
// then lays out nested flexes inside the box they were given.
func (f Flex) Layout(dim Dimensions) {
	space := dim.Height
	if f.Dir == X {
		space = dim.Width
	}

	items := fitting(f.Items, space)
	sizes := Distribute(constraints(items), space)

	boxes := make([]Dimensions, len(items))
	orig := dim.Origin
	for i, item := range items {
		if f.Dir == Y {
			boxes[i] = Dimensions{orig, dim.Width, sizes[i]}
			orig = Point{orig.X, orig.Y + sizes[i]}
		} else {
			boxes[i] = Dimensions{orig, sizes[i], dim.Height}
			orig = Point{orig.X + sizes[i], orig.Y}
		}
		if item.Box != nil {
			item.Box(boxes[i])
		}
	}

	// recursively layout flex items
	for i, item := range items {
		if item.Flex != nil {
			item.Flex.Layout(boxes[i])
		}
	}
}

// fitting drops items from the end until the minimum sizes fit into space.
func fitting(items []FlexItem, space int) []FlexItem {
	total := 0
	for i, item := range items {
		total += item.Size.Min.toAbs(space)
		if total > space {
			return items[:i]
		}
	}
	return items
}

func constraints(items []FlexItem) []Constraint {
	cs := make([]Constraint, len(items))
	for i, item := range items {
		cs[i] = item.Size
	}
	return cs
}

// Distribute assigns every constraint a size so that the sizes sum to at most
// space, each lies between its minimum and maximum, and as much space as
// possible is used. Earlier constraints are served first when space is short.
//
// It is solved as a linear program in standard form over the variables
// (s, t, u, v): s are the sizes, t the unused space, u the room left below
// each maximum and v the excess above each minimum.
//
//	minimize  -Σ wᵢ·sᵢ
//	s.t.      Σ sᵢ + t = space
//	          sᵢ + uᵢ  = maxᵢ
//	          sᵢ - vᵢ  = minᵢ
func Distribute(cs []Constraint, space int) []int {
	n := len(cs)
	if n == 0 {
		return nil
	}

	mins, maxs := make([]int, n), make([]int, n)
	for i, c := range cs {
		mins[i] = c.Min.toAbs(space)
		maxs[i] = max(c.Max.toAbs(space), mins[i])
	}

	rows, cols := 2*n+1, 3*n+1
	a := mat.NewDense(rows, cols, nil)
	b := make([]float64, rows)
	obj := make([]float64, cols)

	a.Set(0, n, 1)
	b[0] = float64(space)
	for i := 0; i < n; i++ {
		obj[i] = -(1 + float64(n-i)*1e-3)

		a.Set(0, i, 1)

		a.Set(1+i, i, 1)
		a.Set(1+i, n+1+i, 1)
		b[1+i] = float64(maxs[i])

		a.Set(1+n+i, i, 1)
		a.Set(1+n+i, 2*n+1+i, -1)
		b[1+n+i] = float64(mins[i])
	}

	_, x, err := lp.Simplex(obj, a, b, 0, nil)
	if err != nil {
		return fill(mins, maxs, space)
	}

	sizes := make([]int, n)
	remaining := space
	for i := range sizes {
		sizes[i] = min(max(int(math.Round(x[i])), mins[i]), maxs[i], max(remaining, 0))
		remaining -= sizes[i]
	}
	return sizes
}

// fill hands out space evenly, smallest maximum first, never going past a
// maximum.
func fill(mins, maxs []int, space int) []int {
	order := make([]int, len(maxs))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return maxs[a] - maxs[b]
	})

	sizes := make([]int, len(maxs))
	remaining := space
	for tos, i := range order {
		share := remaining / len(order[tos:])
		sizes[i] = max(min(maxs[i], share), 0)
		remaining -= sizes[i]
	}
	return sizes
}

type FlexItem struct {
	Box  LayoutBox
	Flex *Flex
	Size Constraint
}

func FlexItemBox(box LayoutBox, size Constraint, flex *Flex) FlexItem {
	return FlexItem{Box: box, Size: size, Flex: flex}
}

type Constraint struct {
	Min, Max Size
}

func Exact(size Size) Constraint {
	return Constraint{Min: size, Max: size}
}

func Max(size Size) Constraint {
	return Constraint{Min: Abs(0), Max: size}
}

func Between(min, max Size) Constraint {
	return Constraint{Min: min, Max: max}
}

type Size struct {
	abs int     // absolute size
	rel float64 // [0, 1]
}

func Abs(abs int) Size {
	return Size{abs: abs}
}

func Rel(rel float64) Size {
	return Size{rel: rel}
}

func (s Size) toAbs(size int) int {
	if s.abs != 0 {
		return s.abs
	}

	return int(s.rel * float64(size))
}

type Direction int

const (
	Y Direction = iota
	X
)

// Dimensions of a resolved box
type Dimensions struct {
	Origin        Point // TL corner
	Width, Height int
}

type LayoutBox func(Dimensions)

func EmptyBox(Dimensions) {}
