package page

import (
	"errors"
	"fmt"
	"log"
	"slices"

	"github.com/hongminglow/bookx-web/internal/backend"
	"github.com/hongminglow/bookx-web/internal/models"
)

var (
	// ErrNotCancelable is returned for unknown or non-pending transactions.
	ErrNotCancelable = errors.New("page: transaction is not cancelable")
	// ErrUnconfirmed is returned when the API answered a cancel with a
	// different transaction.
	ErrUnconfirmed = errors.New("page: cancel not confirmed by server")
)

// Cancel cancels a pending transaction. The local record is replaced with the
// record the API returns; on any failure local state is left as it was.
func (p *Profile) Cancel(id int64) error {
	idx := slices.IndexFunc(p.Transactions, func(tx models.Transaction) bool { return tx.ID == id })
	if idx < 0 || !p.Transactions[idx].Cancelable() {
		return fmt.Errorf("cancel transaction %d: %w", id, ErrNotCancelable)
	}

	confirmed, err := p.deps.Gateway.CancelTransaction(p.ctx, p.token, id)
	if !p.Alive() {
		return ErrUnmounted
	}
	if err != nil {
		if backend.IsUnauthorized(err) {
			p.signOut()
			return ErrUnauthenticated
		}
		log.Printf("error canceling transaction %d: %v", id, err)
		return fmt.Errorf("cancel transaction %d: %w", id, err)
	}

	updated, err := reconcile(p.Transactions[idx], confirmed)
	if err != nil {
		log.Printf("cancel transaction %d: %v", id, err)
		return err
	}
	txs := slices.Clone(p.Transactions)
	txs[idx] = updated
	p.Transactions = txs
	return nil
}

// reconcile merges the server's answer into the local record. Fields the
// server left out keep their local value. A record for another transaction is
// rejected.
func reconcile(local, confirmed models.Transaction) (models.Transaction, error) {
	switch {
	case confirmed.ID == local.ID:
		if confirmed.Book == (models.Book{}) {
			confirmed.Book = local.Book
		}
		if confirmed.CreatedAt.IsZero() {
			confirmed.CreatedAt = local.CreatedAt
		}
		if confirmed.BorrowerName == "" {
			confirmed.BorrowerName = local.BorrowerName
		}
		if confirmed.Status == "" {
			confirmed.Status = local.Status
		}
		return confirmed, nil
	case confirmed.ID == 0 && confirmed.Status != "":
		local.Status = confirmed.Status
		return local, nil
	case confirmed.ID != 0:
		return local, fmt.Errorf("%w: server returned transaction %d", ErrUnconfirmed, confirmed.ID)
	default:
		// An empty 2xx body is the confirmation.
		local.Status = models.StatusCanceled
		return local, nil
	}
}
