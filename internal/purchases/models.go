package purchases

// Status is a purchase lifecycle state. Transitions happen upstream only;
// the gateway never mutates a purchase locally except via re-fetch.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
	StatusRefunded  Status = "REFUNDED"
)

// TicketPurchase is the purchase record as the upstream API returns it.
// totalAmount is computed server-side and trusted as-is.
type TicketPurchase struct {
	ID               int64   `json:"id"`
	CustomerID       int64   `json:"customerId"`
	CustomerEmail    string  `json:"customerEmail"`
	CustomerName     string  `json:"customerName"`
	MovieID          int64   `json:"movieId"`
	MovieTitle       string  `json:"movieTitle"`
	Quantity         int     `json:"quantity"`
	UnitPrice        float64 `json:"unitPrice"`
	TotalAmount      float64 `json:"totalAmount"`
	Status           Status  `json:"status"`
	CardLastFour     string  `json:"cardLastFour"`
	CardHolderName   string  `json:"cardHolderName"`
	PurchaseDate     string  `json:"purchaseDate"`
	ConfirmationCode string  `json:"confirmationCode"`
}

// PaymentInfo is the payment block of a create request. The expiry date is
// already joined as MM/YY by the wizard.
type PaymentInfo struct {
	CardNumber     string `json:"cardNumber"`
	CardHolderName string `json:"cardHolderName"`
	ExpiryDate     string `json:"expiryDate"`
	CVV            string `json:"cvv"`
}

// CreateTicketPurchase is the body of the create-purchase call
type CreateTicketPurchase struct {
	MovieID     int64       `json:"movieId"`
	Quantity    int         `json:"quantity"`
	PaymentInfo PaymentInfo `json:"paymentInfo"`
}
