package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.JWT.Issuer != "Jiggy.AI" {
		t.Errorf("issuer = %q, want Jiggy.AI", cfg.JWT.Issuer)
	}
	if cfg.JWT.AccessExpiry != 900 {
		t.Errorf("access expiry = %d, want 900", cfg.JWT.AccessExpiry)
	}
	if cfg.Auth0.Domain != "auth.jiggy.ai" {
		t.Errorf("auth0 domain = %q", cfg.Auth0.Domain)
	}
	if cfg.Auth0.Audience != "https://api.jiggy.ai" {
		t.Errorf("auth0 audience = %q", cfg.Auth0.Audience)
	}
	if cfg.Auth0.JWKSTTL != 3600 {
		t.Errorf("jwks ttl = %d, want 3600", cfg.Auth0.JWKSTTL)
	}
	if cfg.Cache.MembershipTTL != 60 {
		t.Errorf("membership ttl = %d, want 60", cfg.Cache.MembershipTTL)
	}
	if cfg.StorageConfigured() {
		t.Error("storage should not be configured by default")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9001")
	t.Setenv("JWT_ISSUER", "Test.Issuer")
	t.Setenv("JWT_ACCESS_EXPIRY", "120")
	t.Setenv("AUTH0_DOMAIN", "auth.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != "9001" {
		t.Errorf("port = %q, want 9001", cfg.Server.Port)
	}
	if cfg.JWT.Issuer != "Test.Issuer" {
		t.Errorf("issuer = %q", cfg.JWT.Issuer)
	}
	if cfg.JWT.AccessExpiry != 120 {
		t.Errorf("access expiry = %d, want 120", cfg.JWT.AccessExpiry)
	}
	if cfg.Auth0.Domain != "auth.example.com" {
		t.Errorf("auth0 domain = %q", cfg.Auth0.Domain)
	}
}

func TestStorageConfigured(t *testing.T) {
	t.Setenv("STORAGE_BUCKET", "assets")
	t.Setenv("STORAGE_ACCESS_KEY", "ak")
	t.Setenv("STORAGE_SECRET_KEY", "sk")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !cfg.StorageConfigured() {
		t.Error("storage should be configured when bucket and credentials are set")
	}
}
