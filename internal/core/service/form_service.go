package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/storeflow/order-console/internal/api/metrics"
	"github.com/storeflow/order-console/internal/core/domain"
	"github.com/storeflow/order-console/internal/core/notice"
	"github.com/storeflow/order-console/internal/core/ports"
)

const msgOrderPlaced = "Order placed successfully!"
const msgOrderFail = "Error placing order. Please try again."

// LineField names a mutable field of a line draft.
type LineField string

const (
	FieldName     LineField = "name"
	FieldQuantity LineField = "quantity"
	FieldPrice    LineField = "price"
)

// LineDraft holds raw user input for one line item. Values stay as typed
// until submission normalizes them.
type LineDraft struct {
	Name     string
	Quantity string
	Price    string
}

// OrderForm manages a dynamic list of line items plus the customer fields,
// validates before submitting, and surfaces the outcome through ephemeral
// notices. The form always keeps at least one line item.
type OrderForm struct {
	orders   ports.OrderService
	notices  *notice.Center
	validate *validator.Validate
	logger   zerolog.Logger

	mu              sync.Mutex
	customerName    string
	customerPhone   string
	customerAddress string
	lines           []LineDraft
	submitting      bool
	known           []domain.CustomerGroup
}

func NewOrderForm(orders ports.OrderService, notices *notice.Center, logger zerolog.Logger) *OrderForm {
	return &OrderForm{
		orders:   orders,
		notices:  notices,
		validate: validator.New(),
		logger:   logger,
		lines:    []LineDraft{blankLine()},
	}
}

func blankLine() LineDraft {
	return LineDraft{Quantity: "1", Price: "0"}
}

// SetCustomer fills the customer fields in one go.
func (f *OrderForm) SetCustomer(name, phone, address string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.customerName = name
	f.customerPhone = phone
	f.customerAddress = address
}

// Customer returns the current customer fields.
func (f *OrderForm) Customer() (name, phone, address string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.customerName, f.customerPhone, f.customerAddress
}

// AddLine appends a blank line item.
func (f *OrderForm) AddLine() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lines = append(f.lines, blankLine())
}

// RemoveLine removes the line at index i. Removing the last remaining line
// is a no-op: a form always has at least one line item.
func (f *OrderForm) RemoveLine(i int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.lines) <= 1 || i < 0 || i >= len(f.lines) {
		return
	}
	f.lines = append(f.lines[:i], f.lines[i+1:]...)
}

// UpdateLine mutates one field of one line item, leaving the others intact.
func (f *OrderForm) UpdateLine(i int, field LineField, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if i < 0 || i >= len(f.lines) {
		return
	}
	switch field {
	case FieldName:
		f.lines[i].Name = value
	case FieldQuantity:
		f.lines[i].Quantity = value
	case FieldPrice:
		f.lines[i].Price = value
	}
}

// Lines returns a copy of the current line drafts.
func (f *OrderForm) Lines() []LineDraft {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]LineDraft, len(f.lines))
	copy(out, f.lines)
	return out
}

// Total computes the running sum of price*quantity across all lines.
// Unparsable numeric input counts as zero; Total never fails.
func (f *OrderForm) Total() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	var total float64
	for _, line := range f.lines {
		price, _ := strconv.ParseFloat(strings.TrimSpace(line.Price), 64)
		qty, _ := strconv.Atoi(strings.TrimSpace(line.Quantity))
		total += price * float64(qty)
	}
	return total
}

// orderSubmission is the normalized payload checked before the API call.
type orderSubmission struct {
	CustomerName    string           `validate:"required"`
	CustomerPhone   string           `validate:"required"`
	CustomerAddress string           `validate:"required"`
	Products        []lineSubmission `validate:"required,min=1,dive"`
}

type lineSubmission struct {
	Name     string  `validate:"required"`
	Quantity int     `validate:"min=1"`
	Price    float64 `validate:"gte=0"`
}

// Submit validates the form, normalizes the line items, and posts the order.
// Validation failures abort locally without touching the network. Success
// resets the form to a single blank line and clears the customer fields.
// A submission already in flight blocks re-entry. The outcome, either way,
// is published as a self-clearing notice.
func (f *OrderForm) Submit(ctx context.Context) error {
	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return domain.ErrSubmitInFlight
	}
	f.submitting = true
	submission := f.buildSubmission()
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.submitting = false
		f.mu.Unlock()
	}()

	if err := f.validate.Struct(submission); err != nil {
		msg := validationMessage(err)
		metrics.OrdersSubmittedTotal.WithLabelValues("validation_error").Inc()
		f.notices.Publish(notice.KindError, msg)
		return fmt.Errorf("order form: %s", msg)
	}

	input := ports.OrderInput{
		CustomerName:    submission.CustomerName,
		CustomerPhone:   submission.CustomerPhone,
		CustomerAddress: submission.CustomerAddress,
		Products:        make([]domain.LineItem, len(submission.Products)),
	}
	for i, p := range submission.Products {
		input.Products[i] = domain.LineItem{Name: p.Name, Quantity: p.Quantity, Price: p.Price}
	}

	if _, err := f.orders.Create(ctx, input); err != nil {
		metrics.OrdersSubmittedTotal.WithLabelValues("api_error").Inc()
		f.notices.Publish(notice.KindError, submitFailureMessage(err))
		return err
	}

	f.reset()
	metrics.OrdersSubmittedTotal.WithLabelValues("ok").Inc()
	f.notices.Publish(notice.KindSuccess, msgOrderPlaced)
	return nil
}

// buildSubmission trims and coerces the drafts into the normalized shape:
// quantity becomes an integer >= 1 (unparsable -> 1), price a non-negative
// decimal (unparsable -> 0). Caller holds f.mu.
func (f *OrderForm) buildSubmission() orderSubmission {
	sub := orderSubmission{
		CustomerName:    strings.TrimSpace(f.customerName),
		CustomerPhone:   strings.TrimSpace(f.customerPhone),
		CustomerAddress: strings.TrimSpace(f.customerAddress),
		Products:        make([]lineSubmission, len(f.lines)),
	}
	for i, line := range f.lines {
		qty, err := strconv.Atoi(strings.TrimSpace(line.Quantity))
		if err != nil || qty < 1 {
			qty = 1
		}
		price, err := strconv.ParseFloat(strings.TrimSpace(line.Price), 64)
		if err != nil || price < 0 {
			price = 0
		}
		sub.Products[i] = lineSubmission{
			Name:     strings.TrimSpace(line.Name),
			Quantity: qty,
			Price:    price,
		}
	}
	return sub
}

func (f *OrderForm) reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.customerName = ""
	f.customerPhone = ""
	f.customerAddress = ""
	f.lines = []LineDraft{blankLine()}
}

// RefreshSuggestions reloads the distinct known customers used for
// name autocompletion from the latest fetched orders.
func (f *OrderForm) RefreshSuggestions(ctx context.Context) error {
	groups, err := f.orders.Customers(ctx, "")
	if err != nil {
		return err
	}
	f.mu.Lock()
	f.known = groups
	f.mu.Unlock()
	return nil
}

// Suggest filters the known customers by case-insensitive substring match on
// the name.
func (f *OrderForm) Suggest(query string) []domain.CustomerGroup {
	f.mu.Lock()
	defer f.mu.Unlock()
	return domain.SuggestCustomers(f.known, query)
}

// SelectSuggestion adopts a suggested customer, pre-filling the phone and
// address, and returns that customer's most recent five orders plus the
// count of any remainder.
func (f *OrderForm) SelectSuggestion(name string) ([]domain.Order, int, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, g := range f.known {
		if g.CustomerName == name {
			f.customerName = g.CustomerName
			f.customerPhone = g.CustomerPhone
			f.customerAddress = g.CustomerAddress
			recent, rest := g.RecentOrders(5)
			return recent, rest, true
		}
	}
	return nil, 0, false
}

// submitFailureMessage prefers the backend-supplied message, then classifies
// transport failures, then falls back to a generic notice.
func submitFailureMessage(err error) string {
	var remote *domain.RemoteError
	if errors.As(err, &remote) && remote.Message != "" {
		return remote.Message
	}
	switch {
	case errors.Is(err, domain.ErrNotLoggedIn):
		return "You must be logged in to place an order."
	case errors.Is(err, domain.ErrTimeout):
		return msgTimeout
	case errors.Is(err, domain.ErrServerUnavailable):
		return msgServerError
	}
	return msgOrderFail
}

// validationMessage flattens validator errors into one human-readable line.
func validationMessage(err error) string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err.Error()
	}
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", humanField(fe.Field())))
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s", humanField(fe.Field()), fe.Param()))
		case "gte":
			msgs = append(msgs, fmt.Sprintf("%s must be %s or more", humanField(fe.Field()), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", humanField(fe.Field())))
		}
	}
	return strings.Join(msgs, "; ")
}

func humanField(field string) string {
	switch field {
	case "CustomerName":
		return "customer name"
	case "CustomerPhone":
		return "customer phone"
	case "CustomerAddress":
		return "customer address"
	case "Name":
		return "product name"
	case "Quantity":
		return "quantity"
	case "Price":
		return "price"
	default:
		return strings.ToLower(field)
	}
}
