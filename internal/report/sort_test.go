package report

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func merchants(receipts []Receipt) []string {
	out := make([]string, len(receipts))
	for i, r := range receipts {
		out[i] = r.Merchant
	}
	return out
}

var _ = Describe("SortChronologically", func() {
	var (
		input  []Receipt
		sorted []Receipt
	)

	JustBeforeEach(func() {
		sorted = SortChronologically(input)
	})

	When("dates are mixed formats", func() {
		BeforeEach(func() {
			input = []Receipt{
				{Merchant: "c", Date: "2024-01-05"},
				{Merchant: "a", Date: "1/3/24"},
				{Merchant: "b", Date: "01-04-2024"},
			}
		})

		It("orders oldest first", func() {
			Expect(merchants(sorted)).To(Equal([]string{"a", "b", "c"}))
		})

		It("does not modify the input", func() {
			Expect(merchants(input)).To(Equal([]string{"c", "a", "b"}))
		})
	})

	When("dates are equal", func() {
		BeforeEach(func() {
			input = []Receipt{
				{Merchant: "late", Date: "2/1/24"},
				{Merchant: "first", Date: "1/1/24"},
				{Merchant: "second", Date: "2024-01-01"},
				{Merchant: "third", Date: "01/01/2024"},
			}
		})

		It("keeps input order among them", func() {
			Expect(merchants(sorted)).To(Equal([]string{"first", "second", "third", "late"}))
		})
	})

	When("some dates do not parse", func() {
		BeforeEach(func() {
			input = []Receipt{
				{Merchant: "bad1", Date: "garbage"},
				{Merchant: "new", Date: "3/1/24"},
				{Merchant: "bad2", Date: ""},
				{Merchant: "old", Date: "1/1/24"},
				{Merchant: "bad3", Date: "13/45/24"},
			}
		})

		It("moves them to the end in input order", func() {
			Expect(merchants(sorted)).To(Equal([]string{"old", "new", "bad1", "bad2", "bad3"}))
		})
	})

	When("the input is empty", func() {
		BeforeEach(func() {
			input = nil
		})

		It("returns an empty slice", func() {
			Expect(sorted).To(BeEmpty())
		})
	})
})
