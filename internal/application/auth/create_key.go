package auth

import (
	"context"
	"time"

	"github.com/jiggy-ai/jiggy-user-api/internal/application/ports"
	"github.com/jiggy-ai/jiggy-user-api/internal/domain"
)

// CreateKey generates and persists a fresh API key for a user. No uniqueness
// re-check is performed against storage; a primary-key collision on insert
// propagates as an internal error, never a silent overwrite.
type CreateKey struct {
	keys ports.APIKeyRepository
}

func NewCreateKey(keys ports.APIKeyRepository) *CreateKey {
	return &CreateKey{keys: keys}
}

func (uc *CreateKey) Execute(ctx context.Context, userID int64, description string) (*domain.APIKey, error) {
	secret, err := GenerateAPIKey()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	key := &domain.APIKey{
		Key:         secret,
		UserID:      userID,
		Description: description,
		CreatedAt:   now,
		LastUsed:    now,
	}
	if err := uc.keys.Insert(ctx, key); err != nil {
		return nil, err
	}
	return key, nil
}
