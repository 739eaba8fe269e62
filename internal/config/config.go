package config

import (
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/routeview/internal/errors"
)

const (
	// JSONFileName is the JSON configuration file name.
	JSONFileName = "routeview.json"

	// YAMLFileName is the YAML configuration file name.
	YAMLFileName = "routeview.yaml"

	// DefaultPort is the default preview server port.
	DefaultPort = 3000

	// DefaultHost is the default preview server host.
	DefaultHost = "localhost"

	// DefaultMetricsPath is where the preview server exposes metrics.
	DefaultMetricsPath = "/metrics"
)

// fileNames are tried in order by Load.
var fileNames = []string{JSONFileName, YAMLFileName, "routeview.yml"}

// Config represents a routeview project configuration.
type Config struct {
	// Name is the project name, used as the page title fallback.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Basename is the URL prefix the routes live under (default: "/").
	Basename string `json:"basename,omitempty" yaml:"basename,omitempty"`

	// MountElementID is the id of the mount element (default: "root").
	MountElementID string `json:"mountElementId,omitempty" yaml:"mountElementId,omitempty"`

	// UseStream shows loading placeholders for lazy components (default: true).
	UseStream *bool `json:"useStream,omitempty" yaml:"useStream,omitempty"`

	// Server configures the preview server.
	Server ServerConfig `json:"server,omitempty" yaml:"server,omitempty"`

	// S3 configures the client used by s3 loaders.
	S3 S3Config `json:"s3,omitempty" yaml:"s3,omitempty"`

	// Routes is the route table, in sibling order.
	Routes []RouteConfig `json:"routes" yaml:"routes"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains preview server settings.
type ServerConfig struct {
	// Host is the host to bind to.
	Host string `json:"host,omitempty" yaml:"host,omitempty"`

	// Port is the port to listen on.
	Port int `json:"port,omitempty" yaml:"port,omitempty"`

	// Metrics exposes Prometheus metrics.
	Metrics bool `json:"metrics,omitempty" yaml:"metrics,omitempty"`

	// MetricsPath is the metrics endpoint (default: "/metrics").
	MetricsPath string `json:"metricsPath,omitempty" yaml:"metricsPath,omitempty"`
}

// S3Config contains S3 client settings.
type S3Config struct {
	Region    string `json:"region,omitempty" yaml:"region,omitempty"`
	Endpoint  string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
	PathStyle bool   `json:"pathStyle,omitempty" yaml:"pathStyle,omitempty"`
}

// RouteConfig is one route of the table.
type RouteConfig struct {
	ID        string           `json:"id" yaml:"id"`
	Path      string           `json:"path,omitempty" yaml:"path,omitempty"`
	ParentID  string           `json:"parentId,omitempty" yaml:"parentId,omitempty"`
	Index     bool             `json:"index,omitempty" yaml:"index,omitempty"`
	Redirect  string           `json:"redirect,omitempty" yaml:"redirect,omitempty"`
	Props     map[string]any   `json:"props,omitempty" yaml:"props,omitempty"`
	Loader    *LoaderConfig    `json:"loader,omitempty" yaml:"loader,omitempty"`
	Component *ComponentConfig `json:"component,omitempty" yaml:"component,omitempty"`
}

// Loader kinds.
const (
	LoaderStatic = "static"
	LoaderHTTP   = "http"
	LoaderS3     = "s3"
)

// LoaderConfig declares a route loader.
type LoaderConfig struct {
	// Kind is static, http or s3.
	Kind string `json:"kind" yaml:"kind"`

	// Value is the data of a static loader.
	Value any `json:"value,omitempty" yaml:"value,omitempty"`

	// URL is fetched by an http loader.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`

	// Header is sent by an http loader.
	Header map[string]string `json:"header,omitempty" yaml:"header,omitempty"`

	// Bucket and Key locate the object of an s3 loader.
	Bucket string `json:"bucket,omitempty" yaml:"bucket,omitempty"`
	Key    string `json:"key,omitempty" yaml:"key,omitempty"`

	// Hydrate starts the loader at mount time.
	Hydrate bool `json:"hydrate,omitempty" yaml:"hydrate,omitempty"`
}

// ComponentConfig declares the content a route renders. Child routes render
// below it.
type ComponentConfig struct {
	Title string `json:"title,omitempty" yaml:"title,omitempty"`
	Body  string `json:"body,omitempty" yaml:"body,omitempty"`

	// HideData hides the loader data the component shows by default.
	HideData bool `json:"hideData,omitempty" yaml:"hideData,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from the specified directory.
// It looks for routeview.json, then routeview.yaml, then routeview.yml.
func Load(dir string) (*Config, error) {
	for _, name := range fileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return nil, errors.New("R503").
		WithDetail("No routeview configuration found in " + dir).
		WithSuggestion("Create routeview.yaml with a routes list")
}

// LoadFile reads configuration from the specified file path.
// Files ending in .yaml or .yml are parsed as YAML, others as JSON.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("R503").WithDetail("No file at " + path)
		}
		return nil, errors.New("R501").Wrap(err)
	}

	cfg, err := Parse(data, isYAML(path))
	if err != nil {
		return nil, err
	}
	cfg.configPath = path
	return cfg, nil
}

// Parse decodes configuration from data.
func Parse(data []byte, yamlFormat bool) (*Config, error) {
	cfg := &Config{}
	if yamlFormat {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.New("R501").
				WithDetail("Failed to parse YAML: " + err.Error()).
				WithSuggestion("Check the indentation of routeview.yaml")
		}
	} else {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, errors.New("R501").
				WithDetail("Failed to parse JSON: " + err.Error()).
				WithSuggestion("Check that routeview.json is valid JSON")
		}
	}
	cfg.applyDefaults()
	return cfg, nil
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// Path returns the path the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Basename == "" {
		c.Basename = "/"
	}
	if c.MountElementID == "" {
		c.MountElementID = "root"
	}
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.MetricsPath == "" {
		c.Server.MetricsPath = DefaultMetricsPath
	}
	for i := range c.Routes {
		if l := c.Routes[i].Loader; l != nil && l.Kind == "" {
			l.Kind = LoaderStatic
		}
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return errors.New("R501").
			WithDetail("server.port must be between 0 and 65535")
	}
	if !strings.HasPrefix(c.Basename, "/") {
		return errors.New("R501").
			WithDetail("basename must start with \"/\"")
	}

	seen := make(map[string]bool, len(c.Routes))
	for i, r := range c.Routes {
		if r.ID == "" {
			return errors.New("R501").
				WithDetail("routes[" + strconv.Itoa(i) + "] has no id")
		}
		if seen[r.ID] {
			return errors.New("R501").WithRoute(r.ID).
				WithDetail("route id is used twice")
		}
		seen[r.ID] = true

		if r.Loader == nil {
			continue
		}
		switch r.Loader.Kind {
		case LoaderStatic:
		case LoaderHTTP:
			if r.Loader.URL == "" {
				return errors.New("R501").WithRoute(r.ID).
					WithDetail("http loader needs a url")
			}
		case LoaderS3:
			if r.Loader.Bucket == "" || r.Loader.Key == "" {
				return errors.New("R501").WithRoute(r.ID).
					WithDetail("s3 loader needs a bucket and a key")
			}
		default:
			return errors.New("R502").WithRoute(r.ID).
				WithDetail("unknown loader kind " + strconv.Quote(r.Loader.Kind))
		}
	}
	return nil
}

// Address returns the listen address of the preview server.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// URL returns the base URL of the preview server.
func (c *Config) URL() string {
	return "http://" + c.Address() + strings.TrimSuffix(c.Basename, "/")
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	for _, name := range fileNames {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing the config file, or an error if not found.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("R503").
				WithDetail("No routeview configuration found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}
