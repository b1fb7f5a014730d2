package config

const (
	defaultStorageProvider = "sqlite"
	defaultTreeProvider    = "chrome"
	defaultAPIListen       = ":8742"

	defaultVisitsTopic = "marksort.visits"
	defaultVisitsGroup = "marksort"
	defaultWorkers     = 2
	defaultQueueSize   = 256

	defaultEventsProvider = "none"
	defaultEventsTopic    = "marksort.events"
)

// NewDefaultConfig returns a Config with sane defaults for all fields.
// This is the single source of truth for default values.
func NewDefaultConfig() *Config {
	return &Config{
		Version: CurrentV,
		Storage: StorageConfig{
			Provider: defaultStorageProvider,
		},
		Tree: TreeConfig{
			Provider: defaultTreeProvider,
			Watch:    true,
		},
		Policy: PolicyConfig{
			SortUntitled: true,
			SortTitled:   true,
		},
		API: APIConfig{
			Listen: defaultAPIListen,
			MCP:    true,
		},
		Visits: VisitsConfig{
			KafkaTopic: defaultVisitsTopic,
			KafkaGroup: defaultVisitsGroup,
			Workers:    defaultWorkers,
			QueueSize:  defaultQueueSize,
		},
		Events: EventsConfig{
			Provider:   defaultEventsProvider,
			KafkaTopic: defaultEventsTopic,
		},
	}
}
