package invoice

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	pdf "github.com/ledongthuc/pdf"
)

// Invoice holds the fields extracted from an electricity bill. A monthly
// bill is enough to run the no-smart-meter estimator, so TotalAmount is
// the only field callers strictly need.
type Invoice struct {
	InvoiceNumber string    `json:"invoiceNumber,omitempty"`
	TotalAmount   float64   `json:"totalAmount"`
	TotalKwh      float64   `json:"totalKwh,omitempty"`
	ParsedAt      time.Time `json:"parsedAt"`
}

// ParseInvoicePDF opens an electricity invoice PDF at the given path,
// extracts text, and delegates to ParseInvoiceText.
func ParseInvoicePDF(path string) (*Invoice, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	rc, err := r.GetPlainText()
	if err != nil {
		return nil, fmt.Errorf("extract pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, rc); err != nil {
		return nil, fmt.Errorf("read pdf text: %w", err)
	}

	return ParseInvoiceText(buf.String())
}

// Bills come in Hebrew (IEC and private suppliers) and occasionally in
// English. Amounts may use thousands separators.
var (
	totalHebRe  = regexp.MustCompile(`סה"?כ לתשלום[:\s]*([0-9,]+(?:\.[0-9]+)?)`)
	totalEngRe  = regexp.MustCompile(`(?i)total (?:for payment|amount|due)[:\s]*(?:NIS|₪)?\s*([0-9,]+(?:\.[0-9]+)?)`)
	shekelRe    = regexp.MustCompile(`₪\s*([0-9,]+(?:\.[0-9]+)?)`)
	kwhHebRe    = regexp.MustCompile(`([0-9,]+(?:\.[0-9]+)?)\s*קוט"?ש`)
	kwhEngRe    = regexp.MustCompile(`(?i)([0-9,]+(?:\.[0-9]+)?)\s*kwh`)
	invoiceRe   = regexp.MustCompile(`(?:חשבונית מס|מספר חשבונית|invoice (?:no\.?|number))[:\s#]*([0-9-]+)`)
	invoiceCiRe = regexp.MustCompile(`(?i)invoice (?:no\.?|number)[:\s#]*([0-9-]+)`)
)

// ParseInvoiceText parses a plain-text representation of an electricity
// invoice and extracts fields using regex heuristics.
func ParseInvoiceText(text string) (*Invoice, error) {
	inv := &Invoice{ParsedAt: time.Now().UTC()}

	inv.TotalAmount = parseFirstAmount(totalHebRe, text)
	if inv.TotalAmount == 0 {
		inv.TotalAmount = parseFirstAmount(totalEngRe, text)
	}
	if inv.TotalAmount == 0 {
		// Fall back to the largest shekel amount on the page.
		for _, m := range shekelRe.FindAllStringSubmatch(text, -1) {
			if v := parseAmount(m[1]); v > inv.TotalAmount {
				inv.TotalAmount = v
			}
		}
	}
	if inv.TotalAmount == 0 {
		return nil, fmt.Errorf("no total amount found in invoice text")
	}

	inv.TotalKwh = parseFirstAmount(kwhHebRe, text)
	if inv.TotalKwh == 0 {
		inv.TotalKwh = parseFirstAmount(kwhEngRe, text)
	}

	if m := invoiceRe.FindStringSubmatch(text); m != nil {
		inv.InvoiceNumber = m[1]
	} else if m := invoiceCiRe.FindStringSubmatch(text); m != nil {
		inv.InvoiceNumber = m[1]
	}

	return inv, nil
}

func parseFirstAmount(re *regexp.Regexp, text string) float64 {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	return parseAmount(m[1])
}

func parseAmount(s string) float64 {
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
