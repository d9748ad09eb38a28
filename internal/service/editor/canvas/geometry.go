package canvas

import "math"

// NormalizeDegrees maps an arbitrary angle in degrees to (-180, 180].
func NormalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg > 180 {
		deg -= 360
	} else if deg <= -180 {
		deg += 360
	}
	return deg
}

// AngleDegrees returns the angle, in degrees, of the vector from (cx, cy)
// to (px, py).
func AngleDegrees(cx, cy, px, py float64) float64 {
	return math.Atan2(py-cy, px-cx) * 180 / math.Pi
}

// Center returns the center point of a rectangle at (x, y) with the given
// width and height.
func Center(x, y, w, h float64) (float64, float64) {
	return x + w/2, y + h/2
}

// PointAtAngle returns the point at the given distance and angle (degrees)
// from (cx, cy). Inverse of AngleDegrees for gesture synthesis.
func PointAtAngle(cx, cy, dist, deg float64) (float64, float64) {
	rad := deg * math.Pi / 180
	return cx + dist*math.Cos(rad), cy + dist*math.Sin(rad)
}

func isFinite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
