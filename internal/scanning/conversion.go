package scanning

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	"image/png"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/gen2brain/heic"
)

// receiptScanPrompt is the shared prompt used by all LLM providers for scanning receipts
const receiptScanPrompt = `You are analyzing a receipt or invoice document. Carefully read all text in the image and extract the following information:

1. **Merchant**: The store or business name, usually the largest text at the top of the receipt.

2. **Date**: The transaction date. Convert it to ISO 8601 format (YYYY-MM-DD).

3. **Total**: The final total or amount due, as a number (e.g., 42.75 for $42.75).

4. **Subtotal** and **Tax**: The pre-tax subtotal and the tax amount, as numbers.

5. **Address** and **Phone**: The merchant's street address and phone number as printed.

6. **Category**: The best fit from HOTEL/MOTEL, MEALS, ENTERTAINMENT, TRANSPORT/AIR-RAIL, COMPUTER SUPPLIES, CELL PHONE, GAS, COPIES, DUES, POSTAGE, OFFICE SUPPLIES, MISC.

7. **Line items**: Each purchased item with its description, price and quantity.

Return ONLY valid JSON in this exact format:
{
  "merchant": "Store Name",
  "date": "YYYY-MM-DD",
  "total": 0.00,
  "subtotal": 0.00,
  "tax": 0.00,
  "address": "123 Main St, City, ST",
  "phone": "555-555-5555",
  "category": "MEALS",
  "line_items": [{"description": "Item", "price": 0.00, "quantity": 1}]
}

Important:
- Amounts must be numbers (not strings), representing dollars and cents
- If you cannot find a field, use null for that field
- Do not include any text before or after the JSON
- Do not use markdown code blocks`

// maxDocumentBytes bounds what is handed to a model after conversion
const maxDocumentBytes = 20 << 20

// pdfToImage renders the first page of a PDF as PNG
func pdfToImage(pdfData []byte) ([]byte, error) {
	doc, err := fitz.NewFromMemory(pdfData)
	if err != nil {
		return nil, fmt.Errorf("%w: opening PDF: %v", ErrUnsupportedFormat, err)
	}
	defer doc.Close()

	if doc.NumPage() == 0 {
		return nil, fmt.Errorf("%w: PDF has no pages", ErrUnsupportedFormat)
	}

	img, err := doc.Image(0)
	if err != nil {
		return nil, fmt.Errorf("rendering PDF page: %w", err)
	}

	return encodePNG(img)
}

// imageToPNG decodes JPEG, GIF, PNG or HEIC/HEIF data and re-encodes it as PNG
func imageToPNG(imageData []byte, mimeType string) ([]byte, error) {
	var (
		img image.Image
		err error
	)

	if isHEICFormat(imageData) || isHEICMimeType(mimeType) {
		img, err = heic.Decode(bytes.NewReader(imageData))
		if err != nil {
			return nil, fmt.Errorf("%w: decoding HEIC/HEIF image: %v", ErrUnsupportedFormat, err)
		}
	} else {
		img, _, err = image.Decode(bytes.NewReader(imageData))
		if err != nil {
			return nil, fmt.Errorf("%w: supported formats are JPEG, PNG, GIF, HEIC, HEIF, PDF: %v", ErrUnsupportedFormat, err)
		}
	}

	return encodePNG(img)
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// isHEICFormat looks for an ftyp box with a HEIC-family brand at offset 4
func isHEICFormat(data []byte) bool {
	if len(data) < 12 || string(data[4:8]) != "ftyp" {
		return false
	}
	switch string(data[8:12]) {
	case "heic", "heix", "heif", "mif1", "msf1":
		return true
	}
	return false
}

func isHEICMimeType(mimeType string) bool {
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	return strings.Contains(mimeType, "heic") || strings.Contains(mimeType, "heif")
}

// prepareImageData converts a document to PNG for the model. PNG input that
// is not secretly HEIC passes through untouched.
func prepareImageData(imageData []byte, contentType string) ([]byte, error) {
	if len(imageData) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrUnsupportedFormat)
	}

	mimeType := strings.ToLower(strings.TrimSpace(contentType))
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	var (
		out []byte
		err error
	)
	switch {
	case mimeType == "application/pdf":
		out, err = pdfToImage(imageData)
		if err != nil {
			return nil, fmt.Errorf("converting PDF to image: %w", err)
		}
	case mimeType != "image/png" || isHEICFormat(imageData):
		out, err = imageToPNG(imageData, mimeType)
		if err != nil {
			return nil, fmt.Errorf("converting image to PNG: %w", err)
		}
	default:
		out = imageData
	}

	if len(out) > maxDocumentBytes {
		return nil, fmt.Errorf("%w: converted image is %d bytes, limit is %d", ErrUnsupportedFormat, len(out), maxDocumentBytes)
	}
	return out, nil
}
