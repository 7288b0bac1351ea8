package report

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Classify", func() {
	DescribeTable("classifying categories",
		func(category, merchant string, expected Category) {
			c, column := Classify(Receipt{Category: category, Merchant: merchant})
			Expect(c).To(Equal(expected))
			Expect(column).To(Equal(expected.Column()))
		},
		Entry("exact enum label", "HOTEL/MOTEL", "", CategoryHotel),
		Entry("lodging", "Lodging", "", CategoryHotel),
		Entry("meals", "meal", "", CategoryMeals),
		Entry("food", "Food & Drink", "", CategoryMeals),
		Entry("restaurant merchant", "", "Joe's Restaurant", CategoryMeals),
		Entry("entertainment", "entertainment", "", CategoryEntertainment),
		Entry("uber", "Uber ride", "", CategoryTransport),
		Entry("airfare", "Airfare", "", CategoryTransport),
		Entry("transportation", "transportation", "", CategoryTransport),
		Entry("computer supplies", "Computer Supplies", "", CategoryComputer),
		Entry("bare supplies", "supplies", "", CategoryComputer),
		Entry("office supplies label", "Office Supplies", "", CategoryOffice),
		Entry("office supplies lower case", "office supplies", "", CategoryOffice),
		Entry("office supplies phrase", "supplies for the office", "", CategoryOffice),
		Entry("cell phone", "Cell Phone", "", CategoryCellPhone),
		Entry("smartphone", "Smartphone", "", CategoryCellPhone),
		Entry("telephone", "Telephone", "", CategoryCellPhone),
		Entry("iphone", "iPhone case", "", CategoryCellPhone),
		Entry("phones", "Office phones", "", CategoryCellPhone),
		Entry("fuel", "fuel", "", CategoryGas),
		Entry("gasoline", "Gasoline", "", CategoryGas),
		Entry("printing", "printing", "", CategoryCopies),
		Entry("membership", "Membership", "", CategoryDues),
		Entry("shipping", "shipping", "", CategoryPostage),
		Entry("unknown", "widgets", "", CategoryMisc),
		Entry("empty", "", "Acme", CategoryMisc),
		Entry("no accidental substring match", "repair", "", CategoryMisc),
	)

	It("maps office supplies to office, not computer supplies", func() {
		c, _ := Classify(Receipt{Category: "Office Supplies"})
		Expect(c).To(Equal(CategoryOffice))
		Expect(c).NotTo(Equal(CategoryComputer))
	})

	It("uses the category before the merchant", func() {
		c, _ := Classify(Receipt{Category: "Hotel", Merchant: "Hotel Restaurant"})
		Expect(c).To(Equal(CategoryHotel))
	})
})

var _ = Describe("Category.Column", func() {
	It("places categories in form order after the purpose column", func() {
		Expect(CategoryHotel.Column()).To(Equal(4))
		Expect(CategoryGas.Column()).To(Equal(10))
		Expect(CategoryOffice.Column()).To(Equal(14))
		Expect(CategoryMisc.Column()).To(Equal(15))
		Expect(CategoryMisc.Column() + 1).To(Equal(TotalsColumn))
	})

	It("sends unknown values to MISC", func() {
		Expect(Category("BOATS").Column()).To(Equal(CategoryMisc.Column()))
	})
})
