package types

import (
	"fmt"
	"strings"
)

// Directions, index 0 is time
const (
	X0 = iota
	X1
	X2
	X3
	NDIM
)

type Location uint8

const (
	CENTER Location = iota
	LEFT            // lower X1 face
	RIGHT           // upper X1 face
	TOP             // upper X2 face
	BOTTOM          // lower X2 face
	FRONT           // upper X3 face
	BACK            // lower X3 face
	NumLocations
)

var (
	// Directions over which fluxes are meaningful at each location.
	// Direction 0 yields the conserved variables.
	locationDirections = [NumLocations][]int{
		{X0},     // CENTER
		{X0, X1}, // LEFT
		{X0, X1}, // RIGHT
		{X0, X2}, // TOP
		{X0, X2}, // BOTTOM
		{X0, X3}, // FRONT
		{X0, X3}, // BACK
	}
	// Fractional position within the cell along X1, X2, X3
	locationOffsets = [NumLocations][3]float64{
		{0.5, 0.5, 0.5}, // CENTER
		{0.0, 0.5, 0.5}, // LEFT
		{1.0, 0.5, 0.5}, // RIGHT
		{0.5, 1.0, 0.5}, // TOP
		{0.5, 0.0, 0.5}, // BOTTOM
		{0.5, 0.5, 1.0}, // FRONT
		{0.5, 0.5, 0.0}, // BACK
	}
	LocationPrintNames = []string{"Center", "Left", "Right", "Top", "Bottom", "Front", "Back"}
	LocationNameMap    = map[string]Location{
		"center": CENTER,
		"left":   LEFT,
		"right":  RIGHT,
		"top":    TOP,
		"bottom": BOTTOM,
		"front":  FRONT,
		"back":   BACK,
	}
)

func NewLocation(label string) (loc Location) {
	var (
		ok bool
	)
	label = strings.ToLower(strings.TrimSpace(label))
	if loc, ok = LocationNameMap[label]; !ok {
		panic(fmt.Errorf("unable to use location named [%s]", label))
	}
	return
}

func (loc Location) Print() (txt string) {
	if int(loc) >= len(LocationPrintNames) {
		return fmt.Sprintf("Location(%d)", int(loc))
	}
	return LocationPrintNames[loc]
}

func (loc Location) String() string { return loc.Print() }

// Directions returns the active directions of the location, always
// starting with the time direction
func (loc Location) Directions() []int {
	return locationDirections[loc]
}

// HasDirection reports whether dir is one of the active directions of loc
func (loc Location) HasDirection(dir int) bool {
	for _, d := range locationDirections[loc] {
		if d == dir {
			return true
		}
	}
	return false
}

// FaceDirection is the spatial direction normal to a face location, 0 at CENTER
func (loc Location) FaceDirection() (dir int) {
	dirs := locationDirections[loc]
	return dirs[len(dirs)-1]
}

// Offset is the fractional position of the location inside a cell along
// the spatial direction dir (1, 2 or 3)
func (loc Location) Offset(dir int) float64 {
	if dir < X1 || dir > X3 {
		panic(fmt.Errorf("offset requested for non spatial direction %d", dir))
	}
	return locationOffsets[loc][dir-1]
}

// FaceLocation returns the lower face of a cell normal to dir
func FaceLocation(dir int) (loc Location) {
	switch dir {
	case X1:
		loc = LEFT
	case X2:
		loc = BOTTOM
	case X3:
		loc = BACK
	default:
		panic(fmt.Errorf("no face location for direction %d", dir))
	}
	return
}
