// Package service implements the backend side of the order workflow: it
// validates and persists orders and publishes the outcome as OData-v2-style
// message batches through its service binding.
package service

import (
	"context"
	"database/sql"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nward/backtalk/internal/binding"
	"github.com/nward/backtalk/internal/database"
	"github.com/nward/backtalk/internal/database/repository"
	"github.com/nward/backtalk/internal/message"
)

// Message codes produced by order validation.
const (
	CodeCustomerRequired = "ORDER/CUSTOMER_REQUIRED"
	CodeSKURequired      = "ORDER/SKU_REQUIRED"
	CodeQuantityInvalid  = "ORDER/QUANTITY_INVALID"
	CodeQuantityLarge    = "ORDER/QUANTITY_LARGE"
	CodeNotesTooLong     = "ORDER/NOTES_TOO_LONG"
	CodeSaved            = "ORDER/SAVED"
)

const (
	largeQuantity = 1000
	maxNotesRunes = 500
)

// OrderService validates and persists orders. Every Save emits one complete
// batch on Binding: either a fault batch led by the gateway envelope
// message, or a single success message.
type OrderService struct {
	DB      *sql.DB
	Orders  *repository.OrderRepo
	Binding *binding.ServiceBinding
	Log     zerolog.Logger
}

// Save validates o, persists it when no validation error was found, and
// emits the resulting batch. The returned bool reports whether the order was
// persisted; the error covers storage failures only, never validation.
func (s *OrderService) Save(ctx context.Context, o repository.Order) (bool, error) {
	msgs := validate(o)

	if hasError(msgs) {
		// the gateway wraps every fault in the busi-exception envelope;
		// detail messages follow it
		batch := append([]message.Message{envelope()}, msgs...)
		s.Log.Info().Str("order", o.ID).Int("messages", len(msgs)).Msg("order rejected")
		s.Binding.Emit(batch)
		return false, nil
	}

	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	now := database.Now()
	if o.CreatedAt.IsZero() {
		o.CreatedAt = now
	}
	o.UpdatedAt = now
	if o.Status == "" {
		o.Status = "open"
	}
	err := database.WithTx(s.DB, func(tx *sql.Tx) error {
		return s.Orders.UpsertTx(ctx, tx, o)
	})
	if err != nil {
		return false, err
	}
	s.Log.Debug().Str("order", o.ID).Msg("order persisted")

	batch := append(msgs, message.Message{
		ID:       uuid.NewString(),
		Code:     CodeSaved,
		Severity: message.SeveritySuccess,
		Text:     "Order saved",
		Target:   "id",
	})
	s.Binding.Emit(batch)
	return true, nil
}

// validate returns the non-envelope messages for o: Errors abort the save,
// Warnings ride along with it.
func validate(o repository.Order) []message.Message {
	var msgs []message.Message

	if strings.TrimSpace(o.Customer) == "" {
		msgs = append(msgs, newMessage(CodeCustomerRequired, message.SeverityError,
			"Customer is required", "Enter the ordering customer before saving.", "customer"))
	}
	if strings.TrimSpace(o.SKU) == "" {
		msgs = append(msgs, newMessage(CodeSKURequired, message.SeverityError,
			"SKU is required", "Every order line needs a product SKU.", "sku"))
	}
	if o.Quantity <= 0 {
		msgs = append(msgs, newMessage(CodeQuantityInvalid, message.SeverityError,
			"Quantity must be positive", "Quantities of zero or less cannot be ordered.", "quantity"))
	} else if o.Quantity > largeQuantity {
		msgs = append(msgs, newMessage(CodeQuantityLarge, message.SeverityWarning,
			"Unusually large quantity", "Orders above 1000 units are flagged for review.", "quantity"))
	}
	if utf8.RuneCountInString(o.Notes) > maxNotesRunes {
		msgs = append(msgs, newMessage(CodeNotesTooLong, message.SeverityWarning,
			"Notes were truncated for display", "Only the first 500 characters are shown downstream.", "notes"))
	}
	return msgs
}

func hasError(msgs []message.Message) bool {
	for _, m := range msgs {
		if m.Severity == message.SeverityError {
			return true
		}
	}
	return false
}

func envelope() message.Message {
	return message.Message{
		ID:       uuid.NewString(),
		Code:     message.EnvelopeExceptionCode,
		Severity: message.SeverityError,
		Text:     "An exception was raised",
	}
}

func newMessage(code string, sev message.Severity, text, detail, target string) message.Message {
	return message.Message{
		ID:             uuid.NewString(),
		Code:           code,
		Severity:       sev,
		Text:           text,
		AdditionalText: detail,
		Target:         target,
	}
}
