package game

import (
	"math"

	"chosenoffset.com/siderun/internal/core/geom"
)

// FloorTiles returns the screen-space top-left corners of the floor tiles
// covering a viewW x viewH viewport whose top-left is at cam in world
// space. Tiles are aligned to the world grid, so they scroll with the
// camera.
func FloorTiles(cam geom.Vector2, tileW, tileH, viewW, viewH int) []geom.Vector2 {
	if tileW <= 0 || tileH <= 0 || viewW <= 0 || viewH <= 0 {
		return nil
	}
	tw, th := float64(tileW), float64(tileH)

	// First tile origin at or left/above the screen edge.
	startX := -positiveMod(cam.X, tw)
	startY := -positiveMod(cam.Y, th)

	var origins []geom.Vector2
	for y := startY; y < float64(viewH); y += th {
		for x := startX; x < float64(viewW); x += tw {
			origins = append(origins, geom.Vec(x, y))
		}
	}
	return origins
}

func positiveMod(v, m float64) float64 {
	r := math.Mod(v, m)
	if r < 0 {
		r += m
	}
	return r
}
