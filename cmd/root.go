/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/consetl/internal/iofs"
	"github.com/gnames/consetl/internal/iologger"
	app "github.com/gnames/consetl/pkg"
	"github.com/gnames/consetl/pkg/config"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config
)

// getRootCmd returns the base command when called without any
// subcommands. A new instance is created on every call.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
		Use:     "consetl",
		Short:   "consetl builds people and acquisition tables from constituent data",
		Long: `consetl reads constituents (cons), their emails (cons_email) and
chapter subscriptions (cons_email_chapter_subscription) and produces two
tables:

  people             email, code, is_unsub, created_dt, updated_dt
  acquisition_facts  acquisition_date, acquisitions

Sources can be local files, http(s) URLs or s3://bucket/key locations.
Results are saved to CSV files, SQLite or PostgreSQL.

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (CONSETL_*)
  3. Config file (~/.config/consetl/config.yaml)
  4. Built-in defaults

Nested fields use underscores in environment variables
(database.host becomes CONSETL_DATABASE_HOST).`,
		PersistentPreRunE: bootstrap,
		RunE:              runRoot,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	// Remove the automatic "consetl version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V (consistent with other gn projects)
	rootCmd.Flags().BoolP("version", "V", false, "version for consetl")

	rootCmd.AddCommand(getRunCmd())
	rootCmd.AddCommand(getStatsCmd())

	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults
	// Will be reconfigured later with user's config settings
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if err = iologger.Init(config.LogDir(homeDir), defaultLog); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)

	// Set HomeDir after config is loaded
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	// Reconfigure logging with user's settings
	if err = iologger.Init(config.LogDir(cfg.HomeDir), cfg.Log); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir))

	return nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	versionFlag(cmd)
	return cmd.Help()
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	err := getRootCmd().Execute()
	if err != nil {
		os.Exit(1)
	}
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	// defaults stay for keys that are absent in the file and environment
	res := config.New()
	if err = v.Unmarshal(res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return res, nil
}

func initEnvVars(v *viper.Viper) {
	// Environment variables are bound one by one, so it is clear which of
	// them are allowed. They match the fields of config.ToOptions().
	v.SetEnvPrefix("CONSETL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Sources configuration
	v.BindEnv("sources.constituents", "CONSETL_SOURCES_CONSTITUENTS")
	v.BindEnv("sources.emails", "CONSETL_SOURCES_EMAILS")
	v.BindEnv("sources.subscriptions", "CONSETL_SOURCES_SUBSCRIPTIONS")
	v.BindEnv("sources.chapter_id", "CONSETL_SOURCES_CHAPTER_ID")

	// Output configuration
	v.BindEnv("output.dir", "CONSETL_OUTPUT_DIR")
	v.BindEnv("output.people_file", "CONSETL_OUTPUT_PEOPLE_FILE")
	v.BindEnv("output.acquisitions_file", "CONSETL_OUTPUT_ACQUISITIONS_FILE")
	v.BindEnv("output.sinks", "CONSETL_OUTPUT_SINKS")

	// Database configuration
	v.BindEnv("database.host", "CONSETL_DATABASE_HOST")
	v.BindEnv("database.port", "CONSETL_DATABASE_PORT")
	v.BindEnv("database.user", "CONSETL_DATABASE_USER")
	v.BindEnv("database.password", "CONSETL_DATABASE_PASSWORD")
	v.BindEnv("database.database", "CONSETL_DATABASE_DATABASE")
	v.BindEnv("database.ssl_mode", "CONSETL_DATABASE_SSL_MODE")
	v.BindEnv("database.batch_size", "CONSETL_DATABASE_BATCH_SIZE")

	// SQLite configuration
	v.BindEnv("sqlite.path", "CONSETL_SQLITE_PATH")

	// Log configuration
	v.BindEnv("log.level", "CONSETL_LOG_LEVEL")
	v.BindEnv("log.format", "CONSETL_LOG_FORMAT")
	v.BindEnv("log.destination", "CONSETL_LOG_DESTINATION")

	v.AutomaticEnv()
}
