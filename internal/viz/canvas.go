package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const brailleBase = 0x2800

// Braille dot bits for a 2x4 cell:
// 1 4
// 2 5
// 3 6
// 7 8
var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a braille dot grid of Width x Height cells, i.e. 2*Width by
// 4*Height dots. Each cell keeps the colour of the last dot set in it.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Colors        [][]lipgloss.Color
	// Labels overwrite whole cells, e.g. node badges.
	Labels map[[2]int]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h}
	c.Grid = make([][]rune, h)
	c.Colors = make([][]lipgloss.Color, h)
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Colors[i] = make([]lipgloss.Color, w)
	}
	c.Clear()
	return c
}

// Dots returns the canvas size in dots.
func (c *Canvas) Dots() (int, int) { return c.Width * 2, c.Height * 4 }

func (c *Canvas) cell(x, y int) (row, col int, ok bool) {
	if x < 0 || y < 0 {
		return 0, 0, false
	}
	col, row = x/2, y/4
	return row, col, col < c.Width && row < c.Height
}

// Set lights the dot at (x, y) in colour col. An empty colour keeps the
// cell's current one.
func (c *Canvas) Set(x, y int, col lipgloss.Color) {
	row, cl, ok := c.cell(x, y)
	if !ok {
		return
	}
	c.Grid[row][cl] |= pixelMap[y%4][x%2]
	if col != "" {
		c.Colors[row][cl] = col
	}
}

func (c *Canvas) IsSet(x, y int) bool {
	row, cl, ok := c.cell(x, y)
	if !ok {
		return false
	}
	return c.Grid[row][cl]&pixelMap[y%4][x%2] != 0
}

// Label places r over the cell containing dot (x, y).
func (c *Canvas) Label(x, y int, r rune, col lipgloss.Color) {
	row, cl, ok := c.cell(x, y)
	if !ok {
		return
	}
	c.Labels[[2]int{row, cl}] = r
	c.Colors[row][cl] = col
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBase
			c.Colors[i][j] = ""
		}
	}
	c.Labels = make(map[[2]int]rune)
}

// DrawLine draws a line using Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, col lipgloss.Color) {
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
		c.Set(x0, y0, col)
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

// String renders the canvas without colour.
func (c *Canvas) String() string {
	var b strings.Builder
	for i, row := range c.Grid {
		for j, r := range row {
			if l, ok := c.Labels[[2]int{i, j}]; ok {
				r = l
			}
			b.WriteRune(r)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Render renders the canvas with per-cell colours, batching runs of the
// same colour into one styled span.
func (c *Canvas) Render() string {
	var b strings.Builder
	for i, row := range c.Grid {
		var run []rune
		var runCol lipgloss.Color
		flush := func() {
			if len(run) == 0 {
				return
			}
			if runCol == "" {
				b.WriteString(string(run))
			} else {
				b.WriteString(lipgloss.NewStyle().Foreground(runCol).Render(string(run)))
			}
			run = run[:0]
		}
		for j, r := range row {
			if l, ok := c.Labels[[2]int{i, j}]; ok {
				r = l
			}
			col := c.Colors[i][j]
			if col != runCol {
				flush()
				runCol = col
			}
			run = append(run, r)
		}
		flush()
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
