package receipt

import (
	"errors"
	"fmt"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/zombor/expense-report/internal/report"
	"github.com/zombor/expense-report/internal/scanning"
)

var _ = Describe("Service", func() {
	var (
		db      *mockDB
		storage *mockStorage
		scanner *mockScanner
		idGen   *mockIDGenerator
		timeSrc *mockTimeSource
		service *Service
	)

	BeforeEach(func() {
		db = newMockDB()
		storage = newMockStorage()
		scanner = newMockScanner()
		idGen = &mockIDGenerator{id: "test-id-123"}
		timeSrc = &mockTimeSource{now: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)}
		service = NewServiceWithDeps(db, scanner, storage, idGen, timeSrc)
	})

	Describe("ProcessReceipt", func() {
		var (
			receipt *Receipt
			err     error
		)

		JustBeforeEach(func() {
			receipt, err = service.ProcessReceipt("receipt.jpg", []byte("fake image data"), "image/jpeg")
		})

		When("processing succeeds", func() {
			It("should not return an error", func() {
				Expect(err).NotTo(HaveOccurred())
			})

			It("copies the OCR fields onto the receipt", func() {
				Expect(receipt.ID).To(Equal("test-id-123"))
				Expect(receipt.Merchant).To(Equal("Staples"))
				Expect(receipt.Date).To(Equal("2024-01-15"))
				Expect(receipt.Category).To(Equal("OFFICE SUPPLIES"))
			})

			It("formats the total with two decimals", func() {
				Expect(receipt.Total).To(Equal("25.99"))
			})

			It("keeps the raw OCR result", func() {
				Expect(receipt.Extracted).To(Equal(scanner.receiptData))
			})

			It("records the storage key and timestamps", func() {
				Expect(receipt.Filename).To(Equal("stored-1.jpg"))
				Expect(receipt.ContentType).To(Equal("image/jpeg"))
				Expect(receipt.CreatedAt).To(Equal(timeSrc.now))
				Expect(receipt.UpdatedAt).To(Equal(timeSrc.now))
			})

			It("saves the receipt and the file", func() {
				Expect(db.receipts).To(HaveKey("test-id-123"))
				Expect(storage.files).To(HaveKey("stored-1.jpg"))
			})
		})

		When("OCR finds no total", func() {
			BeforeEach(func() {
				scanner.receiptData.Total = nil
			})

			It("leaves the total empty", func() {
				Expect(err).NotTo(HaveOccurred())
				Expect(receipt.Total).To(BeEmpty())
			})
		})

		When("storage put fails", func() {
			var setupErr error

			BeforeEach(func() {
				setupErr = errors.New("storage error")
				storage.putErr = setupErr
			})

			It("returns the error", func() {
				Expect(err).To(MatchError(setupErr))
			})
		})

		When("the scanner rejects the format", func() {
			BeforeEach(func() {
				scanner.scanErr = fmt.Errorf("decoding: %w", scanning.ErrUnsupportedFormat)
			})

			It("returns an unsupported format error", func() {
				Expect(err).To(MatchError(scanning.ErrUnsupportedFormat))
			})

			It("removes the stored file", func() {
				Expect(storage.files).To(BeEmpty())
			})

			It("saves nothing", func() {
				Expect(db.receipts).To(BeEmpty())
			})
		})

		When("saving to the database fails", func() {
			var setupErr error

			BeforeEach(func() {
				setupErr = errors.New("db error")
				db.saveErr = setupErr
			})

			It("returns the error", func() {
				Expect(err).To(MatchError(setupErr))
			})

			It("removes the stored file", func() {
				Expect(storage.files).To(BeEmpty())
			})
		})
	})

	Describe("UpdateReceipt", func() {
		var (
			update  Update
			updated *Receipt
			err     error
		)

		BeforeEach(func() {
			db.receipts["r1"] = &Receipt{
				ID:       "r1",
				Merchant: "STAPLES #12",
				Date:     "2024-01-15",
				Total:    "25.99",
				Category: "OFFICE SUPPLIES",
			}
			merchant := "  Staples  "
			total := "26.99"
			update = Update{Merchant: &merchant, Total: &total}
			timeSrc.now = time.Date(2024, 1, 16, 8, 0, 0, 0, time.UTC)
		})

		JustBeforeEach(func() {
			updated, err = service.UpdateReceipt("r1", update)
		})

		It("applies the provided fields trimmed", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Merchant).To(Equal("Staples"))
			Expect(updated.Total).To(Equal("26.99"))
		})

		It("leaves omitted fields alone", func() {
			Expect(updated.Date).To(Equal("2024-01-15"))
			Expect(updated.Category).To(Equal("OFFICE SUPPLIES"))
		})

		It("bumps UpdatedAt", func() {
			Expect(updated.UpdatedAt).To(Equal(timeSrc.now))
		})

		When("the receipt does not exist", func() {
			JustBeforeEach(func() {
				updated, err = service.UpdateReceipt("missing", update)
			})

			It("returns ErrNotFound", func() {
				Expect(err).To(MatchError(ErrNotFound))
			})
		})
	})

	Describe("DeleteReceipt", func() {
		BeforeEach(func() {
			db.receipts["r1"] = &Receipt{ID: "r1", Filename: "stored-9.jpg"}
			storage.files["stored-9.jpg"] = []byte("data")
		})

		It("removes the receipt and its file", func() {
			Expect(service.DeleteReceipt("r1")).To(Succeed())
			Expect(db.receipts).To(BeEmpty())
			Expect(storage.files).To(BeEmpty())
		})

		When("the file is already gone", func() {
			BeforeEach(func() {
				storage.deleteErr = errors.New("file not found")
			})

			It("still removes the receipt", func() {
				Expect(service.DeleteReceipt("r1")).To(Succeed())
				Expect(db.receipts).To(BeEmpty())
			})
		})

		When("the receipt does not exist", func() {
			It("returns ErrNotFound", func() {
				Expect(service.DeleteReceipt("missing")).To(MatchError(ErrNotFound))
			})
		})
	})

	Describe("GetReceiptFile", func() {
		It("returns the stored bytes and content type", func() {
			db.receipts["r1"] = &Receipt{ID: "r1", Filename: "stored-9.pdf", ContentType: "application/pdf"}
			storage.files["stored-9.pdf"] = []byte("%PDF")

			data, contentType, err := service.GetReceiptFile("r1")
			Expect(err).NotTo(HaveOccurred())
			Expect(data).To(Equal([]byte("%PDF")))
			Expect(contentType).To(Equal("application/pdf"))
		})
	})

	Describe("ReportReceipts", func() {
		BeforeEach(func() {
			db.receipts["a"] = &Receipt{ID: "a", Merchant: "Hilton", Date: "1/5/24", Total: "120.00", Category: "HOTEL/MOTEL", Description: "stay"}
			db.receipts["b"] = &Receipt{ID: "b", Merchant: "Staples", Date: "1/3/24", Total: "45.50", Category: "OFFICE SUPPLIES"}
		})

		It("snapshots receipts in the requested order", func() {
			out, err := service.ReportReceipts([]string{"b", "a"})
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal([]report.Receipt{
				{Date: "1/3/24", Merchant: "Staples", Total: "45.50", Category: "OFFICE SUPPLIES"},
				{Date: "1/5/24", Merchant: "Hilton", Description: "stay", Total: "120.00", Category: "HOTEL/MOTEL"},
			}))
		})

		It("fails on an unknown ID", func() {
			_, err := service.ReportReceipts([]string{"a", "zzz"})
			Expect(err).To(MatchError(ErrNotFound))
		})
	})
})
