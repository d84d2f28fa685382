package user

import (
	"context"

	"github.com/jiggy-ai/jiggy-user-api/internal/application/ports"
	domerrors "github.com/jiggy-ai/jiggy-user-api/internal/domain/errors"
)

// Delete removes an account. Only the account's own user may delete it; the
// cascade over API keys, memberships and the personal team happens inside
// the repository transaction.
type Delete struct {
	users ports.UserRepository
	cache ports.MembershipCache
}

func NewDelete(users ports.UserRepository, cache ports.MembershipCache) *Delete {
	return &Delete{users: users, cache: cache}
}

func (uc *Delete) Execute(ctx context.Context, callerID, userID int64) error {
	if callerID != userID {
		return domerrors.ErrForbidden
	}
	u, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if u == nil {
		return domerrors.ErrNotFound
	}
	if err := uc.users.Delete(ctx, u); err != nil {
		return err
	}
	uc.cache.Invalidate(userID)
	return nil
}
