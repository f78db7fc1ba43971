package viz

import (
	"math"
	"strings"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBlank = 0x2800

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Set lights the sub-pixel (x, y). The canvas is (Width*2) x (Height*4)
// sub-pixels; out of range coordinates are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Bounds is a world-space rectangle mapped onto the canvas.
type Bounds struct {
	MinX, MaxX, MinY, MaxY float64
}

// Fit returns bounds covering every (xs[i], ys[i]) with a margin, keeping
// a non-zero extent on both axes.
func Fit(xs, ys []float64) Bounds {
	if len(xs) == 0 {
		return Bounds{-1, 1, -1, 1}
	}
	b := Bounds{xs[0], xs[0], ys[0], ys[0]}
	for i := range xs {
		b.MinX = math.Min(b.MinX, xs[i])
		b.MaxX = math.Max(b.MaxX, xs[i])
		b.MinY = math.Min(b.MinY, ys[i])
		b.MaxY = math.Max(b.MaxY, ys[i])
	}
	padX := math.Max((b.MaxX-b.MinX)*0.05, 0.5)
	padY := math.Max((b.MaxY-b.MinY)*0.05, 0.5)
	b.MinX -= padX
	b.MaxX += padX
	b.MinY -= padY
	b.MaxY += padY
	return b
}

// Project maps world (x, y) to canvas sub-pixels with y pointing up.
func (c *Canvas) Project(b Bounds, x, y float64) (int, int) {
	w := float64(c.Width*2 - 1)
	h := float64(c.Height*4 - 1)
	px := (x - b.MinX) / (b.MaxX - b.MinX) * w
	py := h - (y-b.MinY)/(b.MaxY-b.MinY)*h
	return int(math.Round(px)), int(math.Round(py))
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
