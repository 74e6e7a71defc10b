package metrics

// Prometheus metric namespaces
const (
	namespaceRegistry = "registry"
	namespaceEmulator = "emulator"
	namespaceRestAPI  = "access_rest_api"
)

// Registry subsystems
const (
	subsystemOrchestrator = "orchestrator"
	subsystemLedger       = "ledger"
)
