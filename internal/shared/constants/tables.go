// Package constants centralizes table names so models and raw queries
// never drift apart.
package constants

const (
	TableUsers          = "users"
	TablePlans          = "plans"
	TableSubscriptions  = "subscriptions"
	TableInvoices       = "invoices"
	TablePayments       = "payments"
	TableAuditRevisions = "audit_revisions"
)
