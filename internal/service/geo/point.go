package geo

import (
	"math"
	"math/rand/v2"
	"strings"

	"github.com/paulmach/orb"
)

const metersPerDegree = 111000.0

// RandomPointInRadius равномерно по площади выбирает точку в круге радиуса
// radiusMeters вокруг center. Корень из u даёт равномерную плотность по площади,
// деление на cos(lat) компенсирует сходимость меридианов.
func RandomPointInRadius(center orb.Point, radiusMeters float64, rng *rand.Rand) orb.Point {
	radiusDegrees := radiusMeters / metersPerDegree

	u := rng.Float64()
	v := rng.Float64()

	w := radiusDegrees * math.Sqrt(u)
	t := 2 * math.Pi * v

	dx := w * math.Cos(t)
	dy := w * math.Sin(t)

	dLon := dx / math.Cos(center.Lat()*math.Pi/180)

	return orb.Point{center.Lon() + dLon, center.Lat() + dy}
}

var cityCenters = map[string]orb.Point{
	"helsinki": {24.945831, 60.192059},
	"espoo":    {24.6559, 60.2055},
	"vantaa":   {25.0378, 60.2934},
	"tampere":  {23.7610, 61.4978},
	"oulu":     {25.46816, 65.01236},
}

// CityCenter центр известного города, регистр не важен.
func CityCenter(city string) (orb.Point, bool) {
	p, ok := cityCenters[strings.ToLower(strings.TrimSpace(city))]
	return p, ok
}
