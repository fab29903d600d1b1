package config

const (
	DefaultHost        = "0.0.0.0"
	DefaultPort        = 3000
	DefaultEnvironment = "development"
	DefaultLogLevel    = "info"

	DefaultRateLimitPerMinute = 60

	DefaultDBMaxOpenConns = 10
	DefaultDBMaxIdleConns = 5

	DefaultChatURL            = "http://localhost:11434/v1/chat/completions"
	DefaultChatModel          = "gemma3"
	DefaultChatTimeoutSeconds = 60

	// Stage 1 wants near-deterministic SQL bounded to a single statement;
	// stage 2 gets room for prose.
	DefaultSQLGenTemperature = 0.1
	DefaultSQLGenMaxTokens   = 500
	DefaultAnswerTemperature = 0.5
)

var DefaultCORSOrigins = []string{
	"http://localhost:3000",
	"http://localhost:8080",
}
