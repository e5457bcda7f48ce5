package payroll

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderPayslipPDF_EscapesText(t *testing.T) {
	pdf := string(renderPayslipPDF([]string{"Payslip", `Name: A (B) \ C`}))

	assert.Contains(t, pdf, `(Name: A \(B\) \\ C) Tj`)
	assert.Contains(t, pdf, "xref\n0 6\n")
	assert.Equal(t, 5, strings.Count(pdf, " 0 obj\n"))
}
