package types

type RunMode string

const (
	// ModeLocal is the mode for running the API server locally
	ModeLocal RunMode = "local"
	// ModeAPI is the mode for running just the API server
	ModeAPI RunMode = "api"
	// ModeAWSLambdaAPI is the mode for running the API server in AWS Lambda
	ModeAWSLambdaAPI RunMode = "aws_lambda_api"
)

type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// AuthProvider selects how bearer tokens are verified
type AuthProvider string

const (
	// AuthProviderEmail issues and verifies our own HS256 tokens after email login
	AuthProviderEmail AuthProvider = "email"
	// AuthProviderSupabase verifies access tokens issued by a hosted Supabase project
	AuthProviderSupabase AuthProvider = "supabase"
)
