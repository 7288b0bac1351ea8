package mileage

import (
	"context"
	"errors"

	"github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type mockRepository struct {
	entries map[string]*Entry
	saveErr error
}

func newMockRepository() *mockRepository {
	return &mockRepository{entries: make(map[string]*Entry)}
}

func (m *mockRepository) SaveMileage(entry *Entry) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.entries[entry.ID] = entry
	return nil
}

func (m *mockRepository) GetMileage(id string) (*Entry, error) {
	e, ok := m.entries[id]
	if !ok {
		return nil, errors.New("mileage entry not found")
	}
	return e, nil
}

func (m *mockRepository) ListMileage() ([]*Entry, error) {
	entries := make([]*Entry, 0, len(m.entries))
	for _, e := range m.entries {
		entries = append(entries, e)
	}
	return entries, nil
}

func (m *mockRepository) DeleteMileage(id string) error {
	if _, ok := m.entries[id]; !ok {
		return errors.New("mileage entry not found")
	}
	delete(m.entries, id)
	return nil
}

type mockProvider struct {
	route *Route
	err   error
}

func (m *mockProvider) Distance(ctx context.Context, startAddress, endAddress string, units Units) (*Route, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.route, nil
}

var _ = ginkgo.Describe("Service", func() {
	var (
		repo     *mockRepository
		provider *mockProvider
		service  *Service
	)

	ginkgo.BeforeEach(func() {
		repo = newMockRepository()
		provider = &mockProvider{route: &Route{Distance: 12.5, UnitLabel: "mi", DurationLabel: "20m0s"}}
		service = NewService(repo, provider, 0.5)
	})

	ginkgo.Describe("Calculate", func() {
		var (
			req   CalculateRequest
			entry *Entry
			route *Route
			err   error
		)

		ginkgo.BeforeEach(func() {
			req = CalculateRequest{
				StartAddress:    " 1 Main St ",
				EndAddress:      "2 Elm St",
				RoundTrip:       true,
				PersonalCommute: 5,
			}
		})

		ginkgo.JustBeforeEach(func() {
			entry, route, err = service.Calculate(context.Background(), req)
		})

		ginkgo.When("the provider finds a route", func() {
			ginkgo.It("should not return an error", func() {
				Expect(err).NotTo(HaveOccurred())
			})

			ginkgo.It("returns the provider route", func() {
				Expect(route.UnitLabel).To(Equal("mi"))
			})

			ginkgo.It("prices the trip", func() {
				Expect(entry.CalculatedDistance).To(Equal(25.0))
				Expect(entry.ReimbursableDistance).To(Equal(20.0))
				Expect(entry.ReimbursableAmount).To(Equal(10.0))
			})

			ginkgo.It("trims the addresses", func() {
				Expect(entry.StartAddress).To(Equal("1 Main St"))
			})

			ginkgo.It("does not store the entry", func() {
				Expect(repo.entries).To(BeEmpty())
			})
		})

		ginkgo.When("the provider finds no route", func() {
			ginkgo.BeforeEach(func() {
				provider.err = ErrNoRoute
			})

			ginkgo.It("wraps the provider error", func() {
				Expect(err).To(MatchError(ErrNoRoute))
			})
		})

		ginkgo.When("no provider is configured", func() {
			ginkgo.BeforeEach(func() {
				service = NewService(repo, nil, 0.5)
			})

			ginkgo.It("returns an error", func() {
				Expect(err).To(HaveOccurred())
			})
		})
	})

	ginkgo.Describe("Save", func() {
		var (
			entry Entry
			saved *Entry
			err   error
		)

		ginkgo.BeforeEach(func() {
			entry = Entry{
				Date:               "1/4/24",
				CalculatedDistance: 40,
				PersonalCommute:    10,
				ReimbursableAmount: 1000,
			}
		})

		ginkgo.JustBeforeEach(func() {
			saved, err = service.Save(entry)
		})

		ginkgo.When("saving succeeds", func() {
			ginkgo.It("should not return an error", func() {
				Expect(err).NotTo(HaveOccurred())
			})

			ginkgo.It("recomputes the reimbursable fields", func() {
				Expect(saved.ReimbursableDistance).To(Equal(30.0))
				Expect(saved.ReimbursableAmount).To(Equal(15.0))
			})

			ginkgo.It("assigns an ID", func() {
				Expect(saved.ID).NotTo(BeEmpty())
				Expect(repo.entries).To(HaveKey(saved.ID))
			})
		})

		ginkgo.When("the repository fails", func() {
			ginkgo.BeforeEach(func() {
				repo.saveErr = errors.New("disk full")
			})

			ginkgo.It("returns the error", func() {
				Expect(err).To(MatchError(ContainSubstring("saving mileage entry")))
			})
		})
	})

	ginkgo.Describe("Delete", func() {
		ginkgo.When("the entry does not exist", func() {
			ginkgo.It("returns the error", func() {
				Expect(service.Delete("missing")).To(HaveOccurred())
			})
		})
	})
})
