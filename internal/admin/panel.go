package admin

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"go.uber.org/zap"

	"hospital-portal/internal/models"
	"hospital-portal/internal/upstream"
	"hospital-portal/internal/utils"
)

// protectedUserID is the root account. Deleting it is refused in the
// portal regardless of what the backend would allow.
const protectedUserID = 1

// ErrProtectedUser is returned when a delete targets the root account.
var ErrProtectedUser = errors.New("the root account cannot be deleted")

// Panel implements the admin account-management operations over the
// backend, holding the listing the view renders.
type Panel struct {
	api     *upstream.Client
	cookies []*http.Cookie
	log     *zap.Logger

	mu    sync.Mutex
	users []models.UserRecord
}

// NewPanel creates an admin panel bound to the caller's session.
func NewPanel(api *upstream.Client, cookies []*http.Cookie, log *zap.Logger) *Panel {
	return &Panel{api: api, cookies: cookies, log: log}
}

// LoadUsers fetches all accounts and marks the protected one.
func (p *Panel) LoadUsers(ctx context.Context) ([]models.UserRecord, error) {
	users, err := p.api.Users(ctx, p.cookies)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].Protected = users[i].ID == protectedUserID
	}

	p.mu.Lock()
	p.users = users
	p.mu.Unlock()
	return p.Users(), nil
}

// Users returns a copy of the cached listing.
func (p *Panel) Users() []models.UserRecord {
	p.mu.Lock()
	defer p.mu.Unlock()
	users := make([]models.UserRecord, len(p.users))
	copy(users, p.users)
	return users
}

// GetUser fetches a single account for the edit view.
func (p *Panel) GetUser(ctx context.Context, id int64) (*models.UserRecord, error) {
	user, err := p.api.User(ctx, p.cookies, id)
	if err != nil {
		return nil, err
	}
	user.Protected = user.ID == protectedUserID
	return user, nil
}

// UpdateUser validates and applies an account edit.
func (p *Panel) UpdateUser(ctx context.Context, id int64, update models.UserUpdate) error {
	if err := utils.Validate(update); err != nil {
		return err
	}
	return p.api.UpdateUser(ctx, p.cookies, id, update)
}

// DeleteUser deletes an account. The root account is refused before any
// network call; on success the entry is dropped from the cached listing,
// on failure the listing is left alone.
func (p *Panel) DeleteUser(ctx context.Context, id int64) error {
	if id == protectedUserID {
		return ErrProtectedUser
	}

	if err := p.api.DeleteUser(ctx, p.cookies, id); err != nil {
		return err
	}

	p.mu.Lock()
	for i, u := range p.users {
		if u.ID == id {
			p.users = append(p.users[:i], p.users[i+1:]...)
			break
		}
	}
	p.mu.Unlock()

	p.log.Info("account deleted", zap.Int64("userId", id))
	return nil
}
