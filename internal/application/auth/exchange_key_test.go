package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jiggy-ai/jiggy-user-api/internal/domain"
	domerrors "github.com/jiggy-ai/jiggy-user-api/internal/domain/errors"
)

func TestExchangeKey_Success(t *testing.T) {
	t.Parallel()

	keys := newFakeKeyRepo()
	secret := KeyPrefix + "abcdefghijklmnopqrstuvwxyzabcdefghijklmnopqrstuv"
	keys.keys[secret] = &domain.APIKey{Key: secret, UserID: 42, LastUsed: time.Now().Add(-time.Hour)}
	issuer := &fakeIssuer{mintToken: "signed-token"}
	uc := NewExchangeKey(keys, issuer)

	token, err := uc.Execute(context.Background(), secret)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if token != "signed-token" {
		t.Errorf("token = %q, want signed-token", token)
	}
	if _, ok := keys.touched[secret]; !ok {
		t.Error("last_used should be stamped on successful exchange")
	}
}

func TestExchangeKey_UnknownKey(t *testing.T) {
	t.Parallel()

	uc := NewExchangeKey(newFakeKeyRepo(), &fakeIssuer{mintToken: "t"})

	_, err := uc.Execute(context.Background(), KeyPrefix+"nosuchkeynosuchkeynosuchkeynosuchkeynosuchkeynos")
	if !errors.Is(err, domerrors.ErrInvalidCredential) {
		t.Fatalf("want ErrInvalidCredential, got: %v", err)
	}
}

func TestCreateKey_GeneratesAndStores(t *testing.T) {
	t.Parallel()

	keys := newFakeKeyRepo()
	uc := NewCreateKey(keys)

	key, err := uc.Execute(context.Background(), 7, "ci pipeline")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !ValidKeyFormat(key.Key) {
		t.Errorf("stored key has bad format: %s", key.Key)
	}
	if key.UserID != 7 {
		t.Errorf("user id = %d, want 7", key.UserID)
	}
	if key.Description != "ci pipeline" {
		t.Errorf("description = %q", key.Description)
	}
	if keys.keys[key.Key] == nil {
		t.Error("key should be persisted")
	}
}
