package page

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/hongminglow/bookx-web/internal/models"
	"github.com/hongminglow/bookx-web/internal/models/dto"
)

// gatewayStub serves canned data and counts calls.
type gatewayStub struct {
	profile       dto.ProfileResponse
	notifications []models.Notification
	transactions  []models.Transaction

	profileErr       error
	notificationsErr error
	transactionsErr  error

	cancelResult models.Transaction
	cancelErr    error

	calls atomic.Int32

	mu         sync.Mutex
	cancelled  []int64
	seenTokens []string
}

func (g *gatewayStub) record(token string) {
	g.calls.Add(1)
	g.mu.Lock()
	g.seenTokens = append(g.seenTokens, token)
	g.mu.Unlock()
}

func (g *gatewayStub) Profile(_ context.Context, token string) (dto.ProfileResponse, error) {
	g.record(token)
	return g.profile, g.profileErr
}

func (g *gatewayStub) ExchangeRequests(_ context.Context, token string) ([]models.Notification, error) {
	g.record(token)
	return g.notifications, g.notificationsErr
}

func (g *gatewayStub) Transactions(_ context.Context, token string) ([]models.Transaction, error) {
	g.record(token)
	return g.transactions, g.transactionsErr
}

func (g *gatewayStub) CancelTransaction(_ context.Context, token string, id int64) (models.Transaction, error) {
	g.record(token)
	g.mu.Lock()
	g.cancelled = append(g.cancelled, id)
	g.mu.Unlock()
	return g.cancelResult, g.cancelErr
}

func books(n int) []models.Book {
	out := make([]models.Book, n)
	for i := range out {
		out[i] = models.Book{ID: int64(i + 1), Title: fmt.Sprintf("Book %02d", i+1), Author: "Author"}
	}
	return out
}

func txs() []models.Transaction {
	return []models.Transaction{
		{ID: 1, Book: models.Book{ID: 10, Title: "Dune"}, Status: models.StatusPending},
		{ID: 2, Book: models.Book{ID: 11, Title: "Foundation"}, Status: models.StatusCompleted},
		{ID: 3, Book: models.Book{ID: 12, Title: "Hyperion"}, Status: models.StatusPending},
	}
}

func fullStub() *gatewayStub {
	return &gatewayStub{
		profile: dto.ProfileResponse{
			User:  models.User{Username: "ana", Email: "ana@example.com"},
			Books: books(25),
		},
		notifications: []models.Notification{models.Notification(`{"id":1}`), models.Notification(`{"id":2}`)},
		transactions:  txs(),
	}
}
