package page

import (
	"context"

	"github.com/hongminglow/bookx-web/internal/models"
)

// Notifications shows the pending exchange requests.
type Notifications struct {
	*Shell

	Items []models.Notification
}

// MountNotifications loads the profile and exchange requests.
func MountNotifications(ctx context.Context, deps Deps) (*Notifications, error) {
	p := &Notifications{Shell: newShell(ctx, deps)}
	if err := p.guard(); err != nil {
		return nil, p.fail(err)
	}
	res, err := p.load(plan{profile: true, notifications: true})
	if err != nil {
		return nil, p.fail(err)
	}
	p.applyHeader(res)
	p.Items = res.notifications
	return p, nil
}
