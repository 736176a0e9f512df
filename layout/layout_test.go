package layout

import (
	"slices"
	"testing"
)

func expectSizes(t *testing.T, expected, got []int) {
	t.Helper()
	if !slices.Equal(expected, got) {
		t.Fatalf("expected sizes %v, got %v", expected, got)
	}
}

func TestDistribute(t *testing.T) {
	tests := []struct {
		name     string
		cs       []Constraint
		space    int
		expected []int
	}{
		{"gutter and text", []Constraint{Exact(Abs(3)), Max(Rel(1))}, 80, []int{3, 77}},
		{"text and status line", []Constraint{Max(Rel(1)), Exact(Abs(1))}, 24, []int{23, 1}},
		{"halves", []Constraint{Exact(Rel(0.5)), Exact(Rel(0.5))}, 200, []int{100, 100}},
		{"capped", []Constraint{Max(Abs(10)), Exact(Abs(5))}, 100, []int{10, 5}},
		{"minimum respected", []Constraint{Max(Abs(2)), Between(Abs(4), Abs(8))}, 5, []int{1, 4}},
		{"earlier first", []Constraint{Max(Rel(1)), Max(Rel(1))}, 10, []int{10, 0}},
		{"no space", []Constraint{Max(Rel(1)), Max(Rel(1))}, 0, []int{0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectSizes(t, tt.expected, Distribute(tt.cs, tt.space))
		})
	}
}

func TestDistributeEmpty(t *testing.T) {
	if sizes := Distribute(nil, 10); sizes != nil {
		t.Fatalf("expected no sizes, got %v", sizes)
	}
}

func TestFill(t *testing.T) {
	expectSizes(t, []int{5, 5}, fill([]int{0, 0}, []int{10, 10}, 10))
	expectSizes(t, []int{3, 7}, fill([]int{3, 0}, []int{3, 10}, 10))
}

func TestLayoutEditorScreen(t *testing.T) {
	got := map[string]Dimensions{}
	box := func(name string) LayoutBox {
		return func(dim Dimensions) { got[name] = dim }
	}

	flex := Column(
		FlexItemBox(box("main"), Max(Rel(1)), Row(
			FlexItemBox(box("gutter"), Exact(Abs(4)), nil),
			FlexItemBox(box("text"), Max(Rel(1)), nil),
		)),
		FlexItemBox(box("status"), Exact(Abs(1)), nil),
	)
	flex.StartLayouting(80, 24)

	expected := map[string]Dimensions{
		"main":   {Point{0, 0}, 80, 23},
		"gutter": {Point{0, 0}, 4, 23},
		"text":   {Point{4, 0}, 76, 23},
		"status": {Point{0, 23}, 80, 1},
	}
	for name, dim := range expected {
		if got[name] != dim {
			t.Fatalf("expected %v box %v, got %v", name, dim, got[name])
		}
	}
}

func TestLayoutDropsItemsThatDoNotFit(t *testing.T) {
	laidOut := 0
	count := func(Dimensions) { laidOut++ }

	Row(
		FlexItemBox(count, Exact(Abs(6)), nil),
		FlexItemBox(count, Exact(Abs(6)), nil),
	).StartLayouting(10, 1)

	if laidOut != 1 {
		t.Fatalf("expected one box to be laid out, got %d", laidOut)
	}
}
