package geo_test

import (
	"testing"

	"github.com/okian/laborconnect/internal/domain/geo"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDistanceKm(t *testing.T) {
	Convey("Given the haversine distance function", t, func() {
		Convey("When both points are the same", func() {
			points := [][2]float64{{0, 0}, {51.5074, -0.1278}, {-33.8688, 151.2093}, {90, 0}, {-90, 180}}

			Convey("Then the distance should be zero", func() {
				for _, p := range points {
					So(geo.DistanceKm(p[0], p[1], p[0], p[1]), ShouldEqual, 0)
				}
			})
		})

		Convey("When swapping the two points", func() {
			d1 := geo.DistanceKm(40.7128, -74.0060, 34.0522, -118.2437)
			d2 := geo.DistanceKm(34.0522, -118.2437, 40.7128, -74.0060)

			Convey("Then the distance should be symmetric", func() {
				So(d1, ShouldAlmostEqual, d2, 1e-9)
			})
		})

		Convey("When measuring a quarter of the equator", func() {
			d := geo.DistanceKm(0, 0, 0, 90)

			Convey("Then it should be a quarter of Earth's circumference", func() {
				So(d, ShouldAlmostEqual, 10007.543, 0.01)
			})
		})

		Convey("When measuring pole to pole", func() {
			d := geo.DistanceKm(90, 0, -90, 0)

			Convey("Then it should be half the circumference", func() {
				So(d, ShouldAlmostEqual, 20015.087, 0.01)
			})
		})

		Convey("When measuring one degree of longitude at the equator", func() {
			d := geo.DistanceKm(0, 0, 0, 1)

			Convey("Then it should be about 111.19 km", func() {
				So(d, ShouldAlmostEqual, 111.195, 0.001)
			})
		})

		Convey("When measuring a known city pair", func() {
			// London -> Paris
			d := geo.DistanceKm(51.5074, -0.1278, 48.8566, 2.3522)

			Convey("Then it should match the reference distance", func() {
				So(d, ShouldAlmostEqual, 343.5, 1.0)
			})
		})

		Convey("When coordinates are outside geographic ranges", func() {
			d := geo.DistanceKm(200, 400, -300, -500)

			Convey("Then it still returns a finite non-negative number", func() {
				So(d, ShouldBeGreaterThanOrEqualTo, 0)
				So(d, ShouldBeLessThanOrEqualTo, 2*geo.EarthRadiusKm*3.1416)
			})
		})
	})
}
