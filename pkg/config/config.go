// Package config provides configuration management for consetl.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Sources: constituents, emails, subscriptions, chapter_id
//   - Output: dir, people_file, acquisitions_file, sinks
//   - Database: host, port, user, password, database, ssl_mode, batch_size
//   - SQLite: path
//   - Log: level, format, destination
//
// Runtime-only fields:
//   - HomeDir (set once at startup)
//   - RunID (set for every run)
//
// # Environment Variables
//
// Use CONSETL_ prefix with underscores for nesting:
//
//	CONSETL_SOURCES_CHAPTER_ID=1
//	CONSETL_OUTPUT_DIR=/tmp/out
//	CONSETL_DATABASE_HOST=localhost
//	CONSETL_LOG_LEVEL=info
package config

// Default locations of the sample ALS datasets.
const (
	DefaultConstituentsURL = "https://als-hiring.s3.amazonaws.com/" +
		"fake_data/2020-07-01_17%3A11%3A00/cons.csv"
	DefaultEmailsURL = "https://als-hiring.s3.amazonaws.com/" +
		"fake_data/2020-07-01_17%3A11%3A00/cons_email.csv"
	DefaultSubscriptionsURL = "https://als-hiring.s3.amazonaws.com/" +
		"fake_data/2020-07-01_17%3A11%3A00/cons_email_chapter_subscription.csv"
)

// Config represents the complete consetl configuration.
type Config struct {
	// Sources contains locations of input tables and the chapter filter.
	Sources SourcesConfig `mapstructure:"sources" yaml:"sources"`

	// Output contains settings for the produced tables.
	Output OutputConfig `mapstructure:"output" yaml:"output"`

	// Database contains PostgreSQL connection settings for the
	// 'postgres' sink.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// SQLite contains settings for the 'sqlite' sink.
	SQLite SQLiteConfig `mapstructure:"sqlite" yaml:"sqlite"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string

	// RunID identifies one execution of the pipeline in logs.
	RunID string
}

// SourcesConfig contains locations of the three input tables.
// A location is a local path, an http(s) URL or an s3://bucket/key URI.
type SourcesConfig struct {
	// Constituents is the location of the constituents (cons) table.
	Constituents string `mapstructure:"constituents" yaml:"constituents"`

	// Emails is the location of the constituent emails (cons_email) table.
	Emails string `mapstructure:"emails" yaml:"emails"`

	// Subscriptions is the location of the chapter subscriptions
	// (cons_email_chapter_subscription) table.
	Subscriptions string `mapstructure:"subscriptions" yaml:"subscriptions"`

	// ChapterID selects subscription rows that determine unsubscribe
	// status.
	ChapterID int `mapstructure:"chapter_id" yaml:"chapter_id"`
}

// OutputConfig describes where and how results are written.
type OutputConfig struct {
	// Dir is the directory for CSV files.
	Dir string `mapstructure:"dir" yaml:"dir"`

	// PeopleFile is the file name of the people roster.
	PeopleFile string `mapstructure:"people_file" yaml:"people_file"`

	// AcquisitionsFile is the file name of the acquisitions fact table.
	AcquisitionsFile string `mapstructure:"acquisitions_file" yaml:"acquisitions_file"`

	// Sinks lists destinations for results.
	// Valid values: "csv", "postgres", "sqlite".
	Sinks []string `mapstructure:"sinks" yaml:"sinks"`
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`

	// BatchSize is the number of people rows sent per COPY batch.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`
}

// SQLiteConfig contains settings of the SQLite sink.
type SQLiteConfig struct {
	// Path to the SQLite file. Relative paths are resolved against
	// Output.Dir.
	Path string `mapstructure:"path" yaml:"path"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Sources: SourcesConfig{
			Constituents:  DefaultConstituentsURL,
			Emails:        DefaultEmailsURL,
			Subscriptions: DefaultSubscriptionsURL,
			ChapterID:     1,
		},
		Output: OutputConfig{
			Dir:              ".",
			PeopleFile:       "people.csv",
			AcquisitionsFile: "acquisition_facts.csv",
			Sinks:            []string{"csv"},
		},
		Database: DatabaseConfig{
			Host:      "localhost",
			Port:      5432,
			User:      "postgres",
			Password:  "postgres",
			Database:  "consetl",
			SSLMode:   "disable",
			BatchSize: 10_000,
		},
		SQLite: SQLiteConfig{
			Path: "consetl.sqlite",
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
	}

	return res
}
