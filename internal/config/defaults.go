package config

const (
	// DefaultProjectPath is the default project path
	DefaultProjectPath = "."
	// DefaultConfigFile is the optional YAML config file read from the project path
	DefaultConfigFile = "itd.yaml"
	// DefaultOutputJSONFile is the default output JSON file name
	DefaultOutputJSONFile = "test-results.json"
	// DefaultOutputJSONDir is the default output directory
	DefaultOutputJSONDir = "storage"
	// DefaultProcessors is the default number of processors
	DefaultProcessors = 4
	// DefaultLogLevel is used when neither LOG_LEVEL nor --verbose is set
	DefaultLogLevel = "info"
)
