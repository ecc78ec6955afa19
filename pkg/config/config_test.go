package config

import "testing"

func TestLoadRequiresCatalogSource(t *testing.T) {
	t.Setenv(EnvCatalogURL, "")
	t.Setenv(EnvCatalogFile, "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when no catalog source is configured")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv(EnvCatalogFile, "./json/products.json")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.Port != "8080" {
		t.Fatalf("unexpected default port: %s", cfg.App.Port)
	}
	if !cfg.App.IsDev() {
		t.Fatal("expected dev env by default")
	}
	if cfg.Cart.Backend() != StorageBackendFile {
		t.Fatalf("unexpected default cart storage: %s", cfg.Cart.StorageBackend)
	}
	if cfg.Cart.StorageKey != "shopping-cart" {
		t.Fatalf("unexpected default cart key: %s", cfg.Cart.StorageKey)
	}
}

func TestLoadRejectsUnknownStorageBackend(t *testing.T) {
	t.Setenv(EnvCatalogFile, "./json/products.json")
	t.Setenv("STOREFRONT_CART_STORAGE", "mongo")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown storage backend")
	}
}

func TestCartBackendNormalized(t *testing.T) {
	t.Setenv(EnvCatalogFile, "./json/products.json")
	t.Setenv("STOREFRONT_CART_STORAGE", "  SQLite ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Cart.Backend() != StorageBackendSQLite {
		t.Fatalf("expected sqlite, got %s", cfg.Cart.Backend())
	}
}
