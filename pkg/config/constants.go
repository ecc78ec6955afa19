package config

const (
	EnvCatalogURL  = "STOREFRONT_CATALOG_URL"
	EnvCatalogFile = "STOREFRONT_CATALOG_FILE"

	StorageBackendMemory = "memory"
	StorageBackendFile   = "file"
	StorageBackendSQLite = "sqlite"
	StorageBackendRedis  = "redis"
)
