package mealiemcp

import "time"

type MealieConfig struct {
	BaseURL     string        `env:"MEALIE_URL,default=http://localhost:9000"`
	APIToken    string        `env:"MEALIE_API_TOKEN,required"`
	HTTPTimeout time.Duration `env:"MEALIE_HTTP_TIMEOUT,default=30s"`
}

type ServerConfig struct {
	Profile     string `env:"MEALIE_MCP_PROFILE,default=full"`
	Transport   string `env:"MCP_TRANSPORT,default=stdio"`
	HTTPHost    string `env:"MCP_HTTP_HOST,default=127.0.0.1"`
	HTTPPort    int    `env:"MCP_HTTP_PORT,default=8765"`
	HTTPPath    string `env:"MCP_HTTP_PATH,default=/mcp"`
	OtelEnabled bool   `env:"OTEL_ENABLED,default=false"`
}

type AuditConfig struct {
	Mode     string `env:"AUDIT_MODE,default=off"`
	Dir      string `env:"AUDIT_DIR,default=./logs"`
	S3Bucket string `env:"AUDIT_S3_BUCKET"`
	S3Prefix string `env:"AUDIT_S3_PREFIX,default=audit"`
}
