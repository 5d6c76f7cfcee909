package dto

// NotificationMessage travels over the in-process notification queue and is
// consumed by the email worker.
type NotificationMessage struct {
	Type        string  `json:"type"`
	Email       string  `json:"email"`
	OrderNumber string  `json:"order_number"`
	ProductName string  `json:"product_name,omitempty"`
	Amount      float64 `json:"amount,omitempty"`
	Reason      string  `json:"reason,omitempty"`
}
