package formatting

import "math"

const (
	// UnknownLandmark and UnknownDirection are returned when no
	// landmark table is available to narrate against.
	UnknownLandmark  = "an unknown location"
	UnknownDirection = "Unknown"
)

// Nearest returns the closest landmark to (x, y) and a coarse compass
// direction of the point relative to it ("east of", "west of",
// "north of", "south of").
//
// Ties are deterministic: an exact-distance tie keeps the earliest
// landmark in the table, and |dx| == |dy| takes the vertical branch.
func Nearest(x, y float64, landmarks []Landmark) (string, string) {
	var closest *Landmark
	minDist := math.Inf(1)

	for i := range landmarks {
		lm := &landmarks[i]
		dist := math.Hypot(x-lm.X, y-lm.Y)
		if dist < minDist {
			minDist = dist
			closest = lm
		}
	}

	if closest == nil {
		return UnknownLandmark, UnknownDirection
	}

	dx := x - closest.X
	dy := y - closest.Y

	var direction string
	if math.Abs(dx) > math.Abs(dy) {
		if dx > 0 {
			direction = "east of"
		} else {
			direction = "west of"
		}
	} else {
		if dy > 0 {
			direction = "north of"
		} else {
			direction = "south of"
		}
	}

	return closest.Name, direction
}
