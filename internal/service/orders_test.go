package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/nward/backtalk/internal/binding"
	"github.com/nward/backtalk/internal/database"
	"github.com/nward/backtalk/internal/database/repository"
	"github.com/nward/backtalk/internal/message"
)

func newService(t *testing.T) (*OrderService, *binding.ServiceBinding, *repository.OrderRepo) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	migrations, err := filepath.Abs("../database/migrations")
	require.NoError(t, err)

	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.RunMigrationsWithDB(db, migrations))

	repo := repository.NewOrderRepo(db)
	b := binding.NewServiceBinding("orders")
	return &OrderService{DB: db, Orders: repo, Binding: b, Log: zerolog.Nop()}, b, repo
}

func TestSaveValidOrderPersistsAndEmitsSuccess(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	svc, b, repo := newService(t)
	var batches [][]message.Message
	b.AttachMessagesChanged(func(msgs []message.Message) { batches = append(batches, msgs) })

	saved, err := svc.Save(ctx, repository.Order{Customer: "ACME", SKU: "SKU-1", Quantity: 5})
	require.NoError(t, err)
	require.True(t, saved)

	orders, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Equal(t, "ACME", orders[0].Customer)
	require.NotEmpty(t, orders[0].ID)

	require.Len(t, batches, 1)
	require.Len(t, batches[0], 1)
	require.Equal(t, CodeSaved, batches[0][0].Code)
	require.Equal(t, message.SeveritySuccess, batches[0][0].Severity)
}

func TestSaveInvalidOrderEmitsEnvelopeAndDetails(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	svc, b, repo := newService(t)
	var batches [][]message.Message
	b.AttachMessagesChanged(func(msgs []message.Message) { batches = append(batches, msgs) })

	saved, err := svc.Save(ctx, repository.Order{Customer: "", SKU: "", Quantity: 0})
	require.NoError(t, err)
	require.False(t, saved)

	orders, err := repo.List(ctx)
	require.NoError(t, err)
	require.Empty(t, orders, "rejected order must not be persisted")

	require.Len(t, batches, 1)
	batch := batches[0]
	require.Equal(t, message.EnvelopeExceptionCode, batch[0].Code, "batch must lead with the envelope")

	codes := map[string]bool{}
	for _, m := range batch[1:] {
		codes[m.Code] = true
	}
	require.True(t, codes[CodeCustomerRequired])
	require.True(t, codes[CodeSKURequired])
	require.True(t, codes[CodeQuantityInvalid])
}

func TestSaveLargeQuantityWarnsButPersists(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	svc, b, repo := newService(t)
	var batches [][]message.Message
	b.AttachMessagesChanged(func(msgs []message.Message) { batches = append(batches, msgs) })

	saved, err := svc.Save(ctx, repository.Order{Customer: "ACME", SKU: "SKU-1", Quantity: 5000})
	require.NoError(t, err)
	require.True(t, saved)

	orders, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)

	require.Len(t, batches, 1)
	batch := batches[0]
	require.Len(t, batch, 2)
	require.Equal(t, CodeQuantityLarge, batch[0].Code)
	require.Equal(t, message.SeverityWarning, batch[0].Severity)
	require.Equal(t, CodeSaved, batch[1].Code)
	for _, m := range batch {
		require.NotEqual(t, message.EnvelopeExceptionCode, m.Code, "warnings alone do not raise the envelope")
	}
}

func TestValidateNotesLength(t *testing.T) {
	t.Parallel()

	long := make([]rune, 501)
	for i := range long {
		long[i] = 'x'
	}
	msgs := validate(repository.Order{Customer: "ACME", SKU: "S", Quantity: 1, Notes: string(long)})
	require.Len(t, msgs, 1)
	require.Equal(t, CodeNotesTooLong, msgs[0].Code)
	require.Equal(t, message.SeverityWarning, msgs[0].Severity)
	require.Equal(t, "notes", msgs[0].Target)
}
