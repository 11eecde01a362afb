package maploader

import (
	"chosenoffset.com/raycaster/internal/core/trig"
	"chosenoffset.com/raycaster/internal/world/gridmap"
)

const defaultSize = 14

// quadrant is the 6x6 interior pattern the built-in level tiles four times.
var quadrant = [6][6]gridmap.Material{
	{0, 0, 1, 0, 0, 0},
	{0, 0, 1, 0, 0, 0},
	{0, 0, 0, 0, 2, 2},
	{0, 3, 0, 0, 0, 0},
	{0, 3, 0, 0, 0, 0},
	{0, 0, 0, 1, 0, 0},
}

var defaultPalette = gridmap.Palette{
	BlankColor,
	{R: 255, G: 120, B: 0, A: 255},
	{R: 0, G: 200, B: 255, A: 255},
	{R: 0, G: 0, B: 250, A: 255},
}

// DefaultLevel builds the 14x14 built-in level: a walled room whose interior
// holds the quadrant pattern as is, shifted one column right, and transposed
// then shifted two rows down.
func DefaultLevel() *Level {
	cells := make([][]gridmap.Material, defaultSize)
	for r := range cells {
		cells[r] = make([]gridmap.Material, defaultSize)
	}

	for c := 0; c < defaultSize; c++ {
		cells[0][c] = 1
		cells[defaultSize-1][c] = 2
	}
	for r := 0; r < defaultSize; r++ {
		cells[r][0] = 1
		cells[r][defaultSize-1] = 3
	}

	const n = len(quadrant)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			cells[1+i][1+j] = quadrant[i][j]
			cells[1+n+i][1+j] = quadrant[i][j]
			cells[1+i][1+n+j] = quadrant[i][(j+n-1)%n]
			cells[1+n+i][1+n+j] = quadrant[j][(i+n-2)%n]
		}
	}

	m, err := gridmap.New(cells, defaultPalette, DefaultBlockSize, DefaultBlockSize)
	if err != nil {
		// The layout is fixed; failing here is a programming error.
		panic(err)
	}

	return &Level{
		Name: "default",
		Map:  m,
		Spawn: Spawn{
			X:       85,
			Y:       85,
			Heading: trig.Radians(360 - 45),
		},
	}
}

