package config

import (
	"os"
	"strings"
)

// Server captures process-level configuration. The registry core itself is
// storage-agnostic; everything here wires collaborators around it.
type Server struct {
	Addr string

	// OwnerAddress is the single identity permitted to mutate the registry.
	OwnerAddress string

	// JWTSigningKey signs caller tokens accepted by the transport.
	JWTSigningKey string

	// DatabaseURL switches the ledgers and audit log from in-memory to
	// Postgres when set.
	DatabaseURL string

	// RedisURL enables the audit stream sink when set.
	RedisURL string
	// AuditStream is the Redis stream name for audit events.
	AuditStream string

	// KafkaBrokers enables the Kafka audit sink when non-empty.
	KafkaBrokers []string
	// KafkaTopic is the audit topic; defaults to coldchain.audit.
	KafkaTopic string
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	cfg := Server{
		Addr:          getenv("COLDCHAIN_ADDR", ":8080"),
		OwnerAddress:  os.Getenv("COLDCHAIN_OWNER_ADDRESS"),
		JWTSigningKey: getenv("COLDCHAIN_JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		DatabaseURL:   os.Getenv("COLDCHAIN_DATABASE_URL"),
		RedisURL:      os.Getenv("COLDCHAIN_REDIS_URL"),
		AuditStream:   getenv("COLDCHAIN_AUDIT_STREAM", "coldchain:audit"),
		KafkaTopic:    getenv("COLDCHAIN_KAFKA_TOPIC", "coldchain.audit"),
	}
	if brokers := os.Getenv("COLDCHAIN_KAFKA_BROKERS"); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
