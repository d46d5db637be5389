package types

// RunMode is the deployment mode of the application
type RunMode string

const (
	ModeLocal RunMode = "local"
	ModeDev   RunMode = "dev"
	ModeProd  RunMode = "prod"
)

// LogLevel controls the logger verbosity
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// AuthProvider identifies the configured authentication backend
type AuthProvider string

const (
	AuthProviderSupabase AuthProvider = "supabase"

	// AuthProviderFlag accepts any credentials and signs tokens locally;
	// for local development only
	AuthProviderFlag AuthProvider = "flag"
)
