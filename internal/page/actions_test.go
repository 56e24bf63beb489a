package page

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/bookx-web/internal/backend"
	"github.com/hongminglow/bookx-web/internal/models"
	"github.com/hongminglow/bookx-web/internal/session"
)

func mountProfile(t *testing.T, gw *gatewayStub) *Profile {
	t.Helper()
	p, err := MountProfile(context.Background(), deps(gw))
	require.NoError(t, err)
	t.Cleanup(p.Unmount)
	return p
}

func TestCancelPendingChangesOnlyThatTransaction(t *testing.T) {
	gw := fullStub()
	gw.cancelResult = models.Transaction{ID: 1, Book: models.Book{ID: 10, Title: "Dune"}, Status: models.StatusCanceled}
	p := mountProfile(t, gw)
	before := p.Transactions

	require.NoError(t, p.Cancel(1))

	want := txs()
	want[0].Status = models.StatusCanceled
	assert.Equal(t, want, p.Transactions)
	assert.Equal(t, txs(), before)
	assert.Equal(t, []int64{1}, gw.cancelled)
}

func TestCancelKeepsLocalFieldsTheServerOmitted(t *testing.T) {
	created := models.At(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))
	gw := fullStub()
	gw.transactions[0].CreatedAt = created
	gw.cancelResult = models.Transaction{ID: 1, Status: models.StatusCanceled}
	p := mountProfile(t, gw)

	require.NoError(t, p.Cancel(1))

	tx, ok := p.Transaction(1)
	require.True(t, ok)
	assert.Equal(t, models.StatusCanceled, tx.Status)
	assert.Equal(t, "Dune", tx.Book.Title)
	assert.Equal(t, created, tx.CreatedAt)
}

func TestCancelUsesServerStatus(t *testing.T) {
	gw := fullStub()
	gw.cancelResult = models.Transaction{Status: "cancel_requested"}
	p := mountProfile(t, gw)

	require.NoError(t, p.Cancel(3))

	tx, _ := p.Transaction(3)
	assert.Equal(t, "cancel_requested", tx.Status)
}

func TestCancelRejectsNonPending(t *testing.T) {
	gw := fullStub()
	p := mountProfile(t, gw)

	assert.ErrorIs(t, p.Cancel(2), ErrNotCancelable)
	assert.ErrorIs(t, p.Cancel(404), ErrNotCancelable)
	assert.Empty(t, gw.cancelled)
	assert.Equal(t, txs(), p.Transactions)
}

func TestCancelFailureLeavesStateUnchanged(t *testing.T) {
	gw := fullStub()
	gw.cancelErr = &backend.StatusError{Status: 500}
	p := mountProfile(t, gw)

	err := p.Cancel(1)

	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrUnauthenticated))
	assert.Equal(t, txs(), p.Transactions)
}

func TestCancelWithEmptyResponseMarksCanceled(t *testing.T) {
	gw := fullStub()
	p := mountProfile(t, gw)

	require.NoError(t, p.Cancel(1))

	want := txs()
	want[0].Status = models.StatusCanceled
	assert.Equal(t, want, p.Transactions)
	assert.Equal(t, []int64{1}, gw.cancelled)
}

func TestCancelAnsweredWithOtherTransactionLeavesStateUnchanged(t *testing.T) {
	gw := fullStub()
	gw.cancelResult = models.Transaction{ID: 99, Status: models.StatusCanceled}
	p := mountProfile(t, gw)

	assert.ErrorIs(t, p.Cancel(1), ErrUnconfirmed)
	assert.Equal(t, txs(), p.Transactions)
}

func TestCancelUnauthorizedSignsOut(t *testing.T) {
	gw := fullStub()
	gw.cancelErr = backend.ErrUnauthorized
	sess := session.NewMemory("tok")
	p, err := MountProfile(context.Background(), Deps{Session: sess, Gateway: gw})
	require.NoError(t, err)

	assert.ErrorIs(t, p.Cancel(1), ErrUnauthenticated)
	_, ok := sess.Token()
	assert.False(t, ok)
	assert.Equal(t, txs(), p.Transactions)
}

func TestCancelAfterUnmountIsNoop(t *testing.T) {
	gw := fullStub()
	gw.cancelResult = models.Transaction{ID: 1, Status: models.StatusCanceled}
	p, err := MountProfile(context.Background(), deps(gw))
	require.NoError(t, err)
	p.Unmount()

	assert.ErrorIs(t, p.Cancel(1), ErrUnmounted)
	assert.Equal(t, txs(), p.Transactions)
}
