package config

import (
	"slices"
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptSourcesConstituents sets the location of the constituents table.
func OptSourcesConstituents(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Constituents Source", s) {
			c.Sources.Constituents = s
		}
	}
}

// OptSourcesEmails sets the location of the emails table.
func OptSourcesEmails(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Emails Source", s) {
			c.Sources.Emails = s
		}
	}
}

// OptSourcesSubscriptions sets the location of the chapter subscriptions
// table.
func OptSourcesSubscriptions(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Subscriptions Source", s) {
			c.Sources.Subscriptions = s
		}
	}
}

// OptSourcesChapterID sets the chapter used to filter subscriptions.
// Any integer is accepted, a chapter without subscriptions is valid.
func OptSourcesChapterID(i int) Option {
	return func(c *Config) {
		c.Sources.ChapterID = i
	}
}

// OptOutputDir sets the directory for CSV output.
func OptOutputDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Output Directory", s) {
			c.Output.Dir = s
		}
	}
}

// OptOutputPeopleFile sets the file name of the people roster.
func OptOutputPeopleFile(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("People File", s) {
			c.Output.PeopleFile = s
		}
	}
}

// OptOutputAcquisitionsFile sets the file name of the acquisitions table.
func OptOutputAcquisitionsFile(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Acquisitions File", s) {
			c.Output.AcquisitionsFile = s
		}
	}
}

// OptOutputSinks sets destinations for results.
// Valid values: "csv", "postgres", "sqlite". Unknown values are
// ignored, duplicates are removed.
func OptOutputSinks(ss []string) Option {
	var sinks []string
	for _, v := range ss {
		v = strings.ToLower(strings.TrimSpace(v))
		if isValidEnum("Output.Sinks", v) && !slices.Contains(sinks, v) {
			sinks = append(sinks, v)
		}
	}
	return func(c *Config) {
		if len(sinks) > 0 {
			c.Output.Sinks = sinks
		}
	}
}

// OptDatabaseHost sets the PostgreSQL server hostname or IP address.
func OptDatabaseHost(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Host", s) {
			c.Database.Host = s
		}
	}
}

// OptDatabasePort sets the PostgreSQL server port number.
func OptDatabasePort(i int) Option {
	return func(c *Config) {
		if isValidInt("Database Port", i) {
			c.Database.Port = i
		}
	}
}

// OptDatabaseUser sets the PostgreSQL database username.
func OptDatabaseUser(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database User", s) {
			c.Database.User = s
		}
	}
}

// OptDatabasePassword sets the PostgreSQL database password.
func OptDatabasePassword(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Password", s) {
			c.Database.Password = s
		}
	}
}

// OptDatabaseDatabase sets the PostgreSQL database name to connect to.
func OptDatabaseDatabase(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Name", s) {
			c.Database.Database = s
		}
	}
}

// OptDatabaseSSLMode sets the SSL connection mode.
// Valid values: "disable", "require", "verify-ca", "verify-full".
func OptDatabaseSSLMode(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Database.SSLMode", s) {
			c.Database.SSLMode = s
		}
	}
}

// OptDatabaseBatchSize sets the number of people rows per COPY batch.
func OptDatabaseBatchSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Batch Size", i) {
			c.Database.BatchSize = i
		}
	}
}

// OptSQLitePath sets the path of the SQLite output file.
func OptSQLitePath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("SQLite Path", s) {
			c.SQLite.Path = s
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptHomeDir sets the home directory for config, cache, and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}

// OptRunID sets the identifier of the current run.
// Runtime-only field - not in ToOptions().
func OptRunID(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Run ID", s) {
			c.RunID = s
		}
	}
}
