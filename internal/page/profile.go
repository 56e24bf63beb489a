package page

import (
	"context"

	"github.com/hongminglow/bookx-web/internal/models"
)

// Profile shows the user's details and transaction history, with a cancel
// action on pending transactions.
type Profile struct {
	*Shell

	User         *models.User
	Transactions []models.Transaction
}

// MountProfile loads the profile, notifications and transactions.
func MountProfile(ctx context.Context, deps Deps) (*Profile, error) {
	p := &Profile{Shell: newShell(ctx, deps)}
	if err := p.guard(); err != nil {
		return nil, p.fail(err)
	}
	res, err := p.load(plan{profile: true, notifications: true, transactions: true})
	if err != nil {
		return nil, p.fail(err)
	}
	p.applyHeader(res)
	if res.profile != nil {
		user := res.profile.User
		p.User = &user
	}
	p.Transactions = res.transactions
	return p, nil
}

// Transaction returns the local copy of transaction id.
func (p *Profile) Transaction(id int64) (models.Transaction, bool) {
	for _, tx := range p.Transactions {
		if tx.ID == id {
			return tx, true
		}
	}
	return models.Transaction{}, false
}
