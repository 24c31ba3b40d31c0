package api

import (
	"encoding/json"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func ptr[T any](v T) *T { return &v }

func validRequest() registerRequest {
	avail := availability(true)
	return registerRequest{
		Name:          ptr("Alice"),
		Skill:         ptr("plumber"),
		Experience:    ptr(10),
		Rating:        ptr(5.0),
		CompletedJobs: ptr(50),
		Latitude:      ptr(12.9716),
		Longitude:     ptr(77.5946),
		Available:     &avail,
	}
}

func TestRegisterRequest_Validate(t *testing.T) {
	Convey("Given a register request", t, func() {
		req := validRequest()

		Convey("When all fields are valid", func() {
			So(req.validate(defaultMaxRating), ShouldBeNil)
		})

		Convey("When the name is blank", func() {
			req.Name = ptr("   ")
			So(req.validate(defaultMaxRating).Error(), ShouldContainSubstring, "name must not be empty")
		})

		Convey("When the skill is missing", func() {
			req.Skill = nil
			So(req.validate(defaultMaxRating).Error(), ShouldContainSubstring, "missing skill")
		})

		Convey("When experience is negative", func() {
			req.Experience = ptr(-1)
			So(req.validate(defaultMaxRating), ShouldNotBeNil)
		})

		Convey("When completed jobs is negative", func() {
			req.CompletedJobs = ptr(-3)
			So(req.validate(defaultMaxRating), ShouldNotBeNil)
		})

		Convey("When the rating is on the boundaries", func() {
			req.Rating = ptr(0.0)
			So(req.validate(defaultMaxRating), ShouldBeNil)
			req.Rating = ptr(5.0)
			So(req.validate(defaultMaxRating), ShouldBeNil)
			req.Rating = ptr(-0.1)
			So(req.validate(defaultMaxRating), ShouldNotBeNil)
		})

		Convey("When the skill is empty", func() {
			req.Skill = ptr("")
			So(req.validate(defaultMaxRating), ShouldBeNil)
		})

		Convey("When the rating bound is raised", func() {
			req.Rating = ptr(8.0)
			So(req.validate(defaultMaxRating), ShouldNotBeNil)
			So(req.validate(10), ShouldBeNil)
			req.Rating = ptr(10.5)
			So(req.validate(10).Error(), ShouldContainSubstring, "between 0 and 10")
		})

		Convey("When coordinates are out of range", func() {
			req.Latitude = ptr(90.5)
			So(req.validate(defaultMaxRating), ShouldNotBeNil)
			req.Latitude = ptr(-90.0)
			req.Longitude = ptr(180.1)
			So(req.validate(defaultMaxRating), ShouldNotBeNil)
		})

		Convey("When available is missing", func() {
			req.Available = nil
			So(req.validate(defaultMaxRating).Error(), ShouldContainSubstring, "missing available")
		})
	})
}

func TestDecodeSingleObject(t *testing.T) {
	Convey("Given request bodies", t, func() {
		var v map[string]any

		Convey("When the body holds one object and trailing whitespace", func() {
			So(decodeSingleObject(strings.NewReader("{\"a\":1}\n  "), &v), ShouldBeNil)
			So(v["a"], ShouldEqual, 1.0)
		})

		Convey("When a second object follows", func() {
			err := decodeSingleObject(strings.NewReader(`{"a":1}{"garbage":true}`), &v)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "single JSON object")
		})

		Convey("When trailing bytes are not JSON", func() {
			So(decodeSingleObject(strings.NewReader(`{"a":1} x`), &v), ShouldNotBeNil)
		})
	})
}

func TestAvailability_UnmarshalJSON(t *testing.T) {
	Convey("Given availability values", t, func() {
		var a availability

		So(json.Unmarshal([]byte(`true`), &a), ShouldBeNil)
		So(bool(a), ShouldBeTrue)
		So(json.Unmarshal([]byte(`0`), &a), ShouldBeNil)
		So(bool(a), ShouldBeFalse)
		So(json.Unmarshal([]byte(`1`), &a), ShouldBeNil)
		So(bool(a), ShouldBeTrue)
		So(json.Unmarshal([]byte(`"yes"`), &a), ShouldNotBeNil)
		So(json.Unmarshal([]byte(`2`), &a), ShouldNotBeNil)
	})
}
