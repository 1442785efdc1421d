package purchases

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"movieticket/internal/movies"
	"movieticket/internal/session"
	"movieticket/pkg/logger"
)

// Step is a wizard position. The flow is strictly forward-linear; the only
// way back to quantity selection is re-entering the flow with Start.
type Step int

const (
	StepQuantity Step = iota + 1
	StepPayment
	StepConfirmation
)

func (s Step) String() string {
	switch s {
	case StepQuantity:
		return "quantity"
	case StepPayment:
		return "payment"
	case StepConfirmation:
		return "confirmation"
	}
	return "none"
}

var (
	ErrLoginRequired = errors.New("login required")
	ErrNoActiveFlow  = errors.New("no purchase in progress")
	ErrWrongStep     = errors.New("step not reachable from current state")
)

// ValidationError carries per-field static messages, surfaced before any
// network call is made.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

// PaymentDetails is what the payment step collects
type PaymentDetails struct {
	CardNumber  string `json:"cardNumber" validate:"required,number,len=16"`
	CardHolder  string `json:"cardHolder" validate:"required,min=3"`
	ExpiryMonth string `json:"expiryMonth" validate:"required,expiry_month"`
	ExpiryYear  string `json:"expiryYear" validate:"required,number,len=2"`
	CVV         string `json:"cvv" validate:"required,number,min=3,max=4"`
}

var expiryMonthRx = regexp.MustCompile(`^(0[1-9]|1[0-2])$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("expiry_month", func(fl validator.FieldLevel) bool {
		return expiryMonthRx.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// WizardState is the snapshot the view renders
type WizardState struct {
	Step         Step            `json:"step"`
	Movie        *movies.Movie   `json:"movie,omitempty"`
	Quantity     int             `json:"quantity"`
	TotalPrice   float64         `json:"totalPrice"`
	Submitting   bool            `json:"submitting"`
	Confirmation *TicketPurchase `json:"confirmation,omitempty"`
}

// Wizard drives the three-step purchase flow:
// quantity selection, payment details, confirmation.
// The create-purchase call is issued exactly once per payment submission
// and is never retried automatically. The submitting flag is advisory; it
// does not enforce single-flight.
type Wizard struct {
	mu        sync.Mutex
	movies    *movies.Client
	purchases *Client
	holder    *session.Holder
	log       *logger.Logger

	movie      *movies.Movie
	step       Step
	quantity   int
	submitting bool
	completed  *TicketPurchase
}

func NewWizard(movieClient *movies.Client, purchaseClient *Client, holder *session.Holder, log *logger.Logger) *Wizard {
	return &Wizard{
		movies:    movieClient,
		purchases: purchaseClient,
		holder:    holder,
		log:       log,
	}
}

// Start enters the flow for a movie. It requires an active session — the
// caller redirects to login with a return path otherwise — and loads the
// target movie; a failed load aborts the flow.
func (w *Wizard) Start(ctx context.Context, movieID int64) error {
	if !w.holder.IsLoggedIn() {
		return ErrLoginRequired
	}

	movie, err := w.movies.Get(ctx, movieID)
	if err != nil {
		w.Reset()
		return err
	}

	w.mu.Lock()
	w.movie = movie
	w.step = StepQuantity
	w.quantity = 1
	w.completed = nil
	w.submitting = false
	w.mu.Unlock()
	return nil
}

// SubmitQuantity validates the ticket count and advances to payment
func (w *Wizard) SubmitQuantity(quantity int) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.movie == nil {
		return ErrNoActiveFlow
	}
	if w.step != StepQuantity {
		return ErrWrongStep
	}

	if err := validate.Var(quantity, "min=1,max=10"); err != nil {
		return &ValidationError{Fields: map[string]string{
			"quantity": "Quantity must be between 1 and 10",
		}}
	}

	w.quantity = quantity
	w.step = StepPayment
	return nil
}

// SubmitPayment validates the payment details and issues the single
// create-purchase call. On failure the wizard stays on the payment step
// and the upstream message travels back unchanged; on success the
// server-returned record becomes the confirmation payload.
func (w *Wizard) SubmitPayment(ctx context.Context, details PaymentDetails) (*TicketPurchase, error) {
	w.mu.Lock()
	if w.movie == nil {
		w.mu.Unlock()
		return nil, ErrNoActiveFlow
	}
	if w.step != StepPayment {
		w.mu.Unlock()
		return nil, ErrWrongStep
	}

	details.CardNumber = FormatCardNumber(details.CardNumber)
	if err := validatePayment(details); err != nil {
		w.mu.Unlock()
		return nil, err
	}

	current := w.holder.Current()
	if current == nil {
		w.mu.Unlock()
		return nil, ErrLoginRequired
	}

	body := CreateTicketPurchase{
		MovieID:  w.movie.ID,
		Quantity: w.quantity,
		PaymentInfo: PaymentInfo{
			CardNumber:     details.CardNumber,
			CardHolderName: strings.ToUpper(details.CardHolder),
			ExpiryDate:     details.ExpiryMonth + "/" + details.ExpiryYear,
			CVV:            details.CVV,
		},
	}
	w.submitting = true
	w.mu.Unlock()

	purchase, err := w.purchases.Create(ctx, current.CustomerID, body)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.submitting = false

	if err != nil {
		// Stay on the payment step; the user retries manually
		return nil, err
	}

	w.completed = purchase
	w.step = StepConfirmation

	w.log.LogPurchaseCreated(ctx, purchase.ID, purchase.MovieID, purchase.CustomerID, purchase.ConfirmationCode)
	return purchase, nil
}

// TotalPrice is the client-side preview: movie price times quantity.
// The authoritative total comes back in the server response.
func (w *Wizard) TotalPrice() float64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.movie == nil {
		return 0
	}
	return w.movie.Price * float64(w.quantity)
}

func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// Confirmation returns the completed purchase, or nil before step 3
func (w *Wizard) Confirmation() *TicketPurchase {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.completed
}

// State snapshots the flow for rendering
func (w *Wizard) State() WizardState {
	w.mu.Lock()
	defer w.mu.Unlock()

	state := WizardState{
		Step:         w.step,
		Movie:        w.movie,
		Quantity:     w.quantity,
		Submitting:   w.submitting,
		Confirmation: w.completed,
	}
	if w.movie != nil {
		state.TotalPrice = w.movie.Price * float64(w.quantity)
	}
	return state
}

// Reset abandons the flow
func (w *Wizard) Reset() {
	w.mu.Lock()
	w.movie = nil
	w.step = 0
	w.quantity = 0
	w.completed = nil
	w.submitting = false
	w.mu.Unlock()
}

// FormatCardNumber strips whitespace and truncates to 16 digits.
// Applying it twice yields the same result as once.
func FormatCardNumber(s string) string {
	cleaned := strings.Join(strings.Fields(s), "")
	if len(cleaned) > 16 {
		cleaned = cleaned[:16]
	}
	return cleaned
}

func validatePayment(details PaymentDetails) error {
	err := validate.Struct(details)
	if err == nil {
		return nil
	}

	var invalid validator.ValidationErrors
	if !errors.As(err, &invalid) {
		return err
	}

	fields := make(map[string]string, len(invalid))
	for _, fieldErr := range invalid {
		fields[paymentFieldName(fieldErr.Field())] = paymentFieldMessage(fieldErr.Field())
	}
	return &ValidationError{Fields: fields}
}

func paymentFieldName(field string) string {
	switch field {
	case "CardNumber":
		return "cardNumber"
	case "CardHolder":
		return "cardHolder"
	case "ExpiryMonth":
		return "expiryMonth"
	case "ExpiryYear":
		return "expiryYear"
	case "CVV":
		return "cvv"
	}
	return field
}

func paymentFieldMessage(field string) string {
	switch field {
	case "CardNumber":
		return "Invalid card number (16 digits)"
	case "CardHolder":
		return "Card holder name must be at least 3 characters"
	case "ExpiryMonth":
		return "Invalid month (01-12)"
	case "ExpiryYear":
		return "Invalid year (2 digits)"
	case "CVV":
		return "Invalid CVV (3-4 digits)"
	}
	return "Invalid value"
}
