// Package config holds the settings shared by all dipkit tools. Values are
// layered: built-in defaults, an optional YAML file, a .env file, DIPKIT_*
// environment variables and finally command line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/adrg/xdg"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/uklibraries/dipkit"
	"github.com/uklibraries/dipkit/pairtree"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment variable name we look at.
const EnvPrefix = "DIPKIT_"

// ErrInvalidValue is returned for unparsable settings.
var ErrInvalidValue = errors.New("invalid config value")

type Config struct {
	// DIPRoot contains the pairtree of dissemination packages.
	DIPRoot string `yaml:"dip_root"`
	// AIPRoot contains the pairtree of archival packages, used as repair
	// source.
	AIPRoot string `yaml:"aip_root"`
	// JSONRoot receives derived documents, one directory per object.
	JSONRoot string `yaml:"json_root"`
	// SolrRoot receives mapped Solr documents.
	SolrRoot string `yaml:"solr_root"`
	// BaseURL is the public prefix for package files.
	BaseURL   string `yaml:"base_url"`
	Workers   int    `yaml:"workers"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DIPRoot:   "/opt/shares/library_dips_2/test_dips",
		AIPRoot:   "/opt/shares/library_aips_1",
		JSONRoot:  "/tmpdir/json-cache",
		SolrRoot:  "/tmpdir/solr-cache",
		BaseURL:   "https://nyx.uky.edu/dips",
		Workers:   runtime.NumCPU(),
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// DefaultFile is the per-user configuration file location, it may not exist.
func DefaultFile() string {
	return filepath.Join(xdg.ConfigHome, dipkit.AppName, "config.yaml")
}

// Load builds a configuration from defaults, the YAML file at filename (or
// DefaultFile, if filename is empty), a .env file in the working directory
// and the environment. An explicitly named file must exist.
func Load(filename string) (*Config, error) {
	c := Default()
	explicit := filename != ""
	if !explicit {
		filename = DefaultFile()
	}
	if err := c.readFile(filename); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("dotenv: %w", err)
	}
	if err := c.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) readFile(filename string) error {
	b, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("config %s: %w", filename, err)
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"DIP_ROOT":   &c.DIPRoot,
		"AIP_ROOT":   &c.AIPRoot,
		"JSON_ROOT":  &c.JSONRoot,
		"SOLR_ROOT":  &c.SolrRoot,
		"BASE_URL":   &c.BaseURL,
		"LOG_LEVEL":  &c.LogLevel,
		"LOG_FORMAT": &c.LogFormat,
	}
	for k, dst := range strs {
		if v, ok := lookup(EnvPrefix + k); ok && v != "" {
			*dst = v
		}
	}
	if v, ok := lookup(EnvPrefix + "WORKERS"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return fmt.Errorf("%w: %sWORKERS=%q", ErrInvalidValue, EnvPrefix, v)
		}
		c.Workers = n
	}
	return nil
}

// Overrides carries values from command line flags, zero values are ignored.
type Overrides struct {
	DIPRoot  string
	AIPRoot  string
	JSONRoot string
	SolrRoot string
	BaseURL  string
	Workers  int
	LogLevel string
}

// Apply copies all non-zero overrides into the configuration.
func (c *Config) Apply(o Overrides) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&c.DIPRoot, o.DIPRoot)
	set(&c.AIPRoot, o.AIPRoot)
	set(&c.JSONRoot, o.JSONRoot)
	set(&c.SolrRoot, o.SolrRoot)
	set(&c.BaseURL, o.BaseURL)
	set(&c.LogLevel, o.LogLevel)
	if o.Workers > 0 {
		c.Workers = o.Workers
	}
}

// ObjectDir is the directory of a dissemination package.
func (c *Config) ObjectDir(id string) string {
	return path.Join(c.DIPRoot, pairtree.RootedPath(id))
}

// AIPDir is the directory of an archival package.
func (c *Config) AIPDir(id string) string {
	return path.Join(c.AIPRoot, pairtree.RootedPath(id))
}

// JSONDir is the output directory for derived documents of an object.
func (c *Config) JSONDir(id string) string {
	return path.Join(c.JSONRoot, pairtree.RootedPath(id))
}

// SolrDir is the output directory for Solr documents of an object.
func (c *Config) SolrDir(id string) string {
	return path.Join(c.SolrRoot, pairtree.RootedPath(id))
}

// Logger returns a logger writing to stderr with the configured level and
// format.
func (c *Config) Logger() (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("%w: log level %q", ErrInvalidValue, c.LogLevel)
	}
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(level)
	switch c.LogFormat {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	case "text", "":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return nil, fmt.Errorf("%w: log format %q", ErrInvalidValue, c.LogFormat)
	}
	return logger, nil
}

// Entry returns a log entry for one invocation of tool, tagged with a random
// run identifier.
func (c *Config) Entry(tool string) (*logrus.Entry, error) {
	logger, err := c.Logger()
	if err != nil {
		return nil, err
	}
	return logger.WithFields(logrus.Fields{
		"tool": tool,
		"run":  uuid.NewString(),
	}), nil
}
