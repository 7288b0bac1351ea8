package report

import (
	"strconv"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/zombor/expense-report/internal/mileage"
)

var _ = Describe("planReport", func() {
	It("sums cents without float drift", func() {
		var receipts []Receipt
		for i := 0; i < 10; i++ {
			receipts = append(receipts, Receipt{Date: "1/3/24", Merchant: "Cafe " + strconv.Itoa(i), Total: "0.10", Category: "MEALS"})
		}

		p := planReport(Request{EmployeeName: "Jane", Receipts: receipts}, mileage.DefaultRate)

		Expect(p.totals.ByCategory[CategoryMeals]).To(Equal(1.0))
		Expect(p.totals.Receipts).To(Equal(1.0))
		Expect(p.totals.Grand).To(Equal(1.0))
	})

	It("keeps every category present even when empty", func() {
		p := planReport(Request{EmployeeName: "Jane"}, mileage.DefaultRate)

		Expect(p.totals.ByCategory).To(HaveLen(len(Categories)))
		for _, c := range Categories {
			Expect(p.totals.ByCategory).To(HaveKeyWithValue(c, 0.0))
		}
	})

	It("adds recomputed mileage into the grand total only", func() {
		p := planReport(Request{
			EmployeeName: "Jane",
			Receipts:     []Receipt{{Date: "1/3/24", Merchant: "Shell", Total: "40", Category: "GAS"}},
			MileageEntries: []mileage.Entry{
				{Date: "1/4/24", CalculatedDistance: 100, PersonalCommute: 20, ReimbursableAmount: 12},
			},
		}, 0.5)

		Expect(p.totals.Mileage).To(Equal(40.0))
		Expect(p.totals.ByCategory[CategoryGas]).To(Equal(40.0))
		Expect(p.totals.Grand).To(Equal(80.0))
		Expect(p.warnings).To(HaveLen(1))
	})
})
