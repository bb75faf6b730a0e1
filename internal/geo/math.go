package geo

import "math"

// KmPerLatDegree is the average spacing of latitude circles in kilometers.
// Latitude circles are nearly uniform, so a single constant is good enough
// for placing markers; this is not a geodesic model.
const KmPerLatDegree = 111.32

// poleEpsilon is the cosine magnitude below which a latitude is treated
// as sitting on a pole for longitude-step purposes.
const poleEpsilon = 1e-9

// EarthRadiusKm is the mean Earth radius used for haversine distances.
const EarthRadiusKm = 6371.0

// KmToLatDegrees converts a distance in kilometers to a delta in degrees
// of latitude. The result has the same sign as km.
func KmToLatDegrees(km float64) float64 {
	return km / KmPerLatDegree
}

// KmToLngDegrees converts a distance in kilometers to a delta in degrees
// of longitude at the given latitude. Longitude circles shrink toward the
// poles, so the same distance spans more degrees as |lat| approaches 90.
//
// At or extremely near a pole the step is meaningless; rather than divide
// by a near-zero cosine and hand the caller an enormous step, it returns 0.
// Callers must treat a zero step as "skip this latitude".
func KmToLngDegrees(km, lat float64) float64 {
	cos := math.Cos(lat * math.Pi / 180.0)
	if math.Abs(cos) < poleEpsilon {
		return 0
	}
	return km / (KmPerLatDegree * cos)
}

// WrapLongitude normalizes a longitude into the [-180, 180) range,
// keeping exactly 180 as 180.
func WrapLongitude(lng float64) float64 {
	wrapped := math.Mod(lng+180.0, 360.0)
	if wrapped < 0 {
		wrapped += 360.0
	}
	wrapped -= 180.0
	if wrapped == -180.0 {
		return 180.0
	}
	return wrapped
}

// HaversineKm returns the approximate great-circle distance in kilometers
// between two points given in degrees.
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180.0
	dLng := (lng2 - lng1) * math.Pi / 180.0

	a := math.Sin(dLat/2.0)*math.Sin(dLat/2.0) +
		math.Cos(lat1*math.Pi/180.0)*math.Cos(lat2*math.Pi/180.0)*
			math.Sin(dLng/2.0)*math.Sin(dLng/2.0)
	c := 2.0 * math.Atan2(math.Sqrt(a), math.Sqrt(1.0-a))

	return EarthRadiusKm * c
}
