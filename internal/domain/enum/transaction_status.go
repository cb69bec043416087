package enum

// TransactionStatus represents the lifecycle state of a POS transaction.
// Values are persisted as-is, matching the external store schema.
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusRefunded  TransactionStatus = "refunded"
	TransactionStatusCancelled TransactionStatus = "cancelled"
	TransactionStatusVoided    TransactionStatus = "voided"
)

func (s TransactionStatus) String() string {
	return string(s)
}

// Valid reports whether s is one of the known statuses
func (s TransactionStatus) Valid() bool {
	switch s {
	case TransactionStatusPending, TransactionStatusCompleted,
		TransactionStatusRefunded, TransactionStatusCancelled,
		TransactionStatusVoided:
		return true
	}
	return false
}
