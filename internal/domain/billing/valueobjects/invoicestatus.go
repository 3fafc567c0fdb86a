package valueobjects

// InvoiceStatus values keep the Spanish wire form used across the billing
// tables and reports.
type InvoiceStatus string

const (
	InvoiceStatusIssued InvoiceStatus = "EMITIDA"
	InvoiceStatusPaid   InvoiceStatus = "PAGADA"
	InvoiceStatusVoid   InvoiceStatus = "ANULADA"
)

func (s InvoiceStatus) String() string {
	return string(s)
}

// IsTerminal reports whether no further transition leaves this status.
func (s InvoiceStatus) IsTerminal() bool {
	return s == InvoiceStatusPaid || s == InvoiceStatusVoid
}

var ValidInvoiceStatuses = map[InvoiceStatus]bool{
	InvoiceStatusIssued: true,
	InvoiceStatusPaid:   true,
	InvoiceStatusVoid:   true,
}
