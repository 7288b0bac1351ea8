package mileage

import (
	"context"
	"errors"
	"time"

	"github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"googlemaps.github.io/maps"
)

type fakeMatrixClient struct {
	resp *maps.DistanceMatrixResponse
	err  error
	req  *maps.DistanceMatrixRequest
}

func (f *fakeMatrixClient) DistanceMatrix(ctx context.Context, r *maps.DistanceMatrixRequest) (*maps.DistanceMatrixResponse, error) {
	f.req = r
	return f.resp, f.err
}

func matrixResponse(status string, meters int) *maps.DistanceMatrixResponse {
	return &maps.DistanceMatrixResponse{
		Rows: []maps.DistanceMatrixElementsRow{{
			Elements: []*maps.DistanceMatrixElement{{
				Status:   status,
				Duration: 25 * time.Minute,
				Distance: maps.Distance{Meters: meters},
			}},
		}},
	}
}

var _ = ginkgo.Describe("GoogleDistance", func() {
	var (
		client   *fakeMatrixClient
		provider *GoogleDistance
		units    Units
		start    string
		route    *Route
		err      error
	)

	ginkgo.BeforeEach(func() {
		client = &fakeMatrixClient{resp: matrixResponse("OK", 16093)}
		provider = &GoogleDistance{client: client}
		units = UnitsImperial
		start = "1 Main St"
	})

	ginkgo.JustBeforeEach(func() {
		route, err = provider.Distance(context.Background(), start, "2 Elm St", units)
	})

	ginkgo.When("the route exists", func() {
		ginkgo.It("converts meters to miles", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(route.Distance).To(BeNumerically("~", 10.0, 0.01))
			Expect(route.UnitLabel).To(Equal("mi"))
			Expect(route.DurationLabel).To(Equal("25m0s"))
		})

		ginkgo.It("requests driving directions", func() {
			Expect(client.req.Mode).To(Equal(maps.TravelModeDriving))
		})
	})

	ginkgo.When("metric units are requested", func() {
		ginkgo.BeforeEach(func() {
			units = UnitsMetric
		})

		ginkgo.It("reports kilometers", func() {
			Expect(route.Distance).To(BeNumerically("~", 16.093, 0.001))
			Expect(route.UnitLabel).To(Equal("km"))
		})
	})

	ginkgo.When("the address is empty", func() {
		ginkgo.BeforeEach(func() {
			start = "  "
		})

		ginkgo.It("returns ErrInvalidAddress", func() {
			Expect(err).To(MatchError(ErrInvalidAddress))
		})
	})

	ginkgo.When("the element status is ZERO_RESULTS", func() {
		ginkgo.BeforeEach(func() {
			client.resp = matrixResponse("ZERO_RESULTS", 0)
		})

		ginkgo.It("returns ErrNoRoute", func() {
			Expect(err).To(MatchError(ErrNoRoute))
		})
	})

	ginkgo.When("the element status is NOT_FOUND", func() {
		ginkgo.BeforeEach(func() {
			client.resp = matrixResponse("NOT_FOUND", 0)
		})

		ginkgo.It("returns ErrInvalidAddress", func() {
			Expect(err).To(MatchError(ErrInvalidAddress))
		})
	})

	ginkgo.When("the API call fails", func() {
		ginkgo.BeforeEach(func() {
			client.err = errors.New("connection refused")
		})

		ginkgo.It("returns the error", func() {
			Expect(err).To(MatchError(ContainSubstring("calling distance matrix")))
		})
	})
})
