package valueobjects

// SubscriptionStatus values keep the Spanish wire form used in the
// subscription tables and audit snapshots.
type SubscriptionStatus string

const (
	StatusActive   SubscriptionStatus = "ACTIVA"
	StatusCanceled SubscriptionStatus = "CANCELADA"
	StatusUnpaid   SubscriptionStatus = "IMPAGO"
	// StatusPendingRenewal is a declared status no transition currently
	// produces; it is reserved for a future renewal-confirmation flow.
	StatusPendingRenewal SubscriptionStatus = "PENDIENTE_RENOVACION"
	StatusExpired        SubscriptionStatus = "EXPIRADA"
)

func (s SubscriptionStatus) String() string {
	return string(s)
}

// HasEnded reports whether the status closes the subscription and so
// requires an end date to be set.
func (s SubscriptionStatus) HasEnded() bool {
	return s == StatusCanceled || s == StatusExpired
}

var ValidStatuses = map[SubscriptionStatus]bool{
	StatusActive:         true,
	StatusCanceled:       true,
	StatusUnpaid:         true,
	StatusPendingRenewal: true,
	StatusExpired:        true,
}
