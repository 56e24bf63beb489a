package page

import (
	"context"

	"github.com/hongminglow/bookx-web/internal/listing"
	"github.com/hongminglow/bookx-web/internal/models"
)

// BookFields are the fields a book search matches against.
func BookFields(b models.Book) []string { return []string{b.Title, b.Author} }

// TransactionFields are the fields a transaction search matches against.
func TransactionFields(tx models.Transaction) []string { return []string{tx.Book.Title} }

// MyBooks lists the user's books with search and pagination.
type MyBooks struct {
	*Shell

	User  *models.User
	Books *listing.View[models.Book]
}

// MountMyBooks loads the profile (which carries the books) and notifications.
func MountMyBooks(ctx context.Context, deps Deps) (*MyBooks, error) {
	p := &MyBooks{Shell: newShell(ctx, deps)}
	p.Books = listing.NewView(nil, BookFields, deps.PageSize)
	if err := p.guard(); err != nil {
		return nil, p.fail(err)
	}
	res, err := p.load(plan{profile: true, notifications: true})
	if err != nil {
		return nil, p.fail(err)
	}
	p.applyHeader(res)
	if res.profile != nil {
		user := res.profile.User
		p.User = &user
		p.Books = listing.NewView(res.profile.Books, BookFields, deps.PageSize)
	}
	return p, nil
}

// ManageBooks lists the user's transactions with search and pagination.
type ManageBooks struct {
	*Shell

	Transactions *listing.View[models.Transaction]
}

// MountManageBooks loads the transactions.
func MountManageBooks(ctx context.Context, deps Deps) (*ManageBooks, error) {
	p := &ManageBooks{Shell: newShell(ctx, deps)}
	p.Transactions = listing.NewView(nil, TransactionFields, deps.PageSize)
	if err := p.guard(); err != nil {
		return nil, p.fail(err)
	}
	res, err := p.load(plan{transactions: true})
	if err != nil {
		return nil, p.fail(err)
	}
	p.applyHeader(res)
	p.Transactions = listing.NewView(res.transactions, TransactionFields, deps.PageSize)
	return p, nil
}
