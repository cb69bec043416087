package request

// CheckoutRequest represents a walk-in checkout request
type CheckoutRequest struct {
	PaymentMethod string  `json:"payment_method" binding:"required"`
	CashAmount    *string `json:"cash_amount"`
}

// SettleRequest settles a pending transaction with a concrete payment
// method
type SettleRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required"`
}

// VoidRequest voids a transaction. ManagerCode is required when the
// caller is not a manager.
type VoidRequest struct {
	ManagerCode string `json:"manager_code"`
}

// FolioToggleRequest toggles one pending transaction in the folio
// selection
type FolioToggleRequest struct {
	TransactionID string `json:"transaction_id" binding:"required,uuid"`
}

// FolioPayRequest settles the selected folio transactions
type FolioPayRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required"`
}
