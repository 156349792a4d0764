package envvar

const (
	// LoanriskEnv is the environment variable used to determine the environment
	LoanriskEnv = "LOANRISK_ENV"

	// LoanriskServerHTTPPort is the environment variable used to determine the HTTP port
	LoanriskServerHTTPPort = "LOANRISK_SERVER_HTTP_PORT"

	// LoanriskServerGRPCPort is the environment variable used to determine the gRPC port
	LoanriskServerGRPCPort = "LOANRISK_SERVER_GRPC_PORT"

	// LoanriskModelsPath is the environment variable used to override the models directory
	LoanriskModelsPath = "LOANRISK_MODELS_PATH"
)
