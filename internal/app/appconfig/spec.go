package appconfig

import (
	"time"

	"github.com/vila-abandonada/backend/internal/app/appcontext"
)

type ConfigSpec struct {
	// ServiceAddress is the listen address for the HTTP API.
	ServiceAddress string `required:"true" split_words:"true" default:"localhost:8080"`

	// DevMode enables debugging utilities (pprof, fgprof, verbose logging) and more contextual panic messages.
	// See internal/server/httpserver/http.go for what gets mounted.
	DevMode bool `split_words:"true"`

	// LogJsonStdout is whether to log JSON (instead of pretty-printed) lines to stdout.
	LogJsonStdout bool `split_words:"true" default:"false"`

	// LogFilePath is the rotating log file. Leave empty to log to stdout only.
	LogFilePath   string `split_words:"true" default:"logs/app.log"`
	LogMaxSizeMB  int    `split_words:"true" default:"100"`
	LogMaxBackups int    `split_words:"true" default:"5"`

	// TrustedProxies are trusted to report a real IP via the X-Forwarded-For header.
	TrustedProxies []string `required:"true" split_words:"true" default:"::1,127.0.0.1,10.0.0.0/8"`

	// TracingEnabled to indicate whether to enable OpenTelemetry tracing.
	TracingEnabled bool `split_words:"true"`

	// TracingExporters to indicate which exporters to use for tracing.
	// Valid values are: otlp, stdout (for debug).
	TracingExporters []string `split_words:"true" default:"otlp"`

	// TracingSampleRate is between 0.0 (disabled) and 1.0 (all traces).
	TracingSampleRate float64 `split_words:"true" default:"1.0"`

	// PostgresDSN is the data source name for the PostgreSQL database. See
	// https://bun.uptrace.dev/postgres/#pgdriver for more details on how to construct a PostgreSQL DSN.
	PostgresDSN string `required:"true" split_words:"true"`

	PostgresMaxOpenConns    int           `split_words:"true" default:"10"`
	PostgresMaxIdleConns    int           `split_words:"true" default:"2"`
	PostgresConnMaxLifeTime time.Duration `split_words:"true" default:"5m"`
	PostgresConnMaxIdleTime time.Duration `split_words:"true" default:"5m"`

	BunDebugVerbose bool `split_words:"true"`

	// RedisURL is optional. When set, rate limit counters of the mail sending endpoints
	// are shared through Redis instead of living in process memory.
	RedisURL string `split_words:"true"`

	// NatsURL is optional and only used when MailTransport is "nats".
	NatsURL string `split_words:"true" default:"nats://127.0.0.1:4222"`

	// SentryDSN is the DSN of the Sentry project. Empty disables Sentry.
	SentryDSN string `split_words:"true"`

	// HTTPServerShutdownTimeout is the timeout for the HTTP server to shut down gracefully.
	HTTPServerShutdownTimeout time.Duration `required:"true" split_words:"true" default:"60s"`

	// MailTransport selects how notification mails leave the process: none, smtp or nats.
	// With nats, mails are queued on JetStream and delivered over SMTP by the mail worker.
	MailTransport MailTransport `split_words:"true" default:"none"`

	SMTPHost     string `envconfig:"SMTP_HOST"`
	SMTPPort     int    `envconfig:"SMTP_PORT" default:"587"`
	SMTPUsername string `envconfig:"SMTP_USERNAME"`
	SMTPPassword string `envconfig:"SMTP_PASSWORD"`

	// MailFrom is the sender address of every notification.
	MailFrom string `split_words:"true" default:"Vila Abandonada <no-reply@vila-abandonada.com>"`

	// PasswordResetURL is the front-end page receiving the reset token as the `token` query parameter.
	PasswordResetURL string `split_words:"true" default:"https://vila-abandonada.com/reset-password"`

	// PasswordResetTokenTTL is how long a reset token stays redeemable.
	PasswordResetTokenTTL time.Duration `split_words:"true" default:"1h"`

	// ResetTokenSweepInterval is how often the server deletes redeemed and expired reset
	// tokens. 0 disables the sweeper.
	ResetTokenSweepInterval time.Duration `split_words:"true" default:"1h"`

	// SensitiveRateLimitMax is the number of requests per SensitiveRateLimitWindow a single IP may
	// send to the waitlist and password reset endpoints. 0 disables the limiter.
	SensitiveRateLimitMax    int           `split_words:"true" default:"10"`
	SensitiveRateLimitWindow time.Duration `split_words:"true" default:"10m"`

	// ExportS3Bucket is where `run-script export-gamedata` uploads the game data bundle.
	ExportS3Bucket   string `split_words:"true"`
	ExportS3Region   string `split_words:"true" default:"us-east-1"`
	ExportS3Endpoint string `split_words:"true"`

	AWSAccessKey string `envconfig:"AWS_ACCESS_KEY"`
	AWSSecretKey string `envconfig:"AWS_SECRET_KEY"`
}

type Config struct {
	// ConfigSpec is the configuration specification injected to the config.
	ConfigSpec

	// AppContext is the application context
	AppContext appcontext.Ctx
}
