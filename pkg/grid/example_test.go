package grid_test

import (
	"fmt"

	"github.com/matzehuels/gridboard/pkg/errors"
	"github.com/matzehuels/gridboard/pkg/grid"
)

func ExampleEngine_Add() {
	e := grid.NewEngine(grid.DefaultConfig(), nil, 4)

	a, _ := e.Add("revenue", "cash-flow", nil)
	b, _ := e.Add("focus", "todays-focus", nil)
	c, _ := e.Add("prices", "live-prices", nil)

	fmt.Println(a.ID, a.Rect())
	fmt.Println(b.ID, b.Rect())
	fmt.Println(c.ID, c.Rect())
	// Output:
	// revenue (0,0 2x2)
	// focus (2,0 2x2)
	// prices (0,2 1x2)
}

func ExampleEngine_Move_push() {
	e := grid.NewEngine(grid.DefaultConfig(), nil, 4)
	_, _ = e.Add("a", "cash-flow", nil)
	_, _ = e.Add("b", "cash-flow", nil)

	// Pushing b right by one column would leave the grid.
	_, err := e.Move("a", 1, 0)
	fmt.Println(errors.GetCode(err))

	a, _ := e.Item("a")
	fmt.Println("a stays at", a.Rect())
	// Output:
	// MOVE_REJECTED
	// a stays at (0,0 2x2)
}

func ExampleEngine_Move_arrange() {
	e := grid.NewEngine(grid.DefaultConfig(), nil, 4, grid.WithPolicy(grid.ArrangePolicy{}))
	_, _ = e.Add("a", "cash-flow", nil)
	_, _ = e.Add("b", "cash-flow", nil)

	out, _ := e.Move("a", 2, 0)
	fmt.Println("displaced:", out.Displaced)
	for _, it := range e.Snapshot() {
		fmt.Println(it.ID, it.Rect())
	}
	// Output:
	// displaced: [b]
	// a (2,0 2x2)
	// b (2,2 2x2)
}

func ExampleComputeColumns() {
	cfg := grid.DefaultConfig()
	for _, width := range []int{0, 800, 1280, 1920, 4000} {
		fmt.Printf("%dpx: %d columns\n", width, grid.ComputeColumns(width, cfg))
	}
	// Output:
	// 0px: 4 columns
	// 800px: 4 columns
	// 1280px: 7 columns
	// 1920px: 11 columns
	// 4000px: 12 columns
}

func ExampleGridToPixel() {
	px := grid.GridToPixel(grid.Rect{X: 1, Y: 0, W: 2, H: 2}, grid.DefaultConfig())
	fmt.Printf("left=%d top=%d width=%d height=%d\n", px.Left, px.Top, px.Width, px.Height)
	// Output:
	// left=174 top=12 width=312 height=312
}
