package payment

type RecordPaymentRequest struct {
	Amount        float64 `json:"amount" form:"amount" binding:"required,gt=0" example:"150.00"`
	PaymentMethod string  `json:"payment_method" form:"payment_method" binding:"required" example:"card"`
	PaymentStatus string  `json:"payment_status" form:"payment_status" example:"completed"`
	TransactionID string  `json:"transaction_id" form:"transaction_id" binding:"max=100"`
	Notes         string  `json:"notes" form:"notes"`
}
