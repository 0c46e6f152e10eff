// Package config loads runtime settings for the catalog service and the
// catalog viewer from the environment, after an optional .env file.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultCatalogPort = "5000"
	DefaultViewerPort  = "3000"
	DefaultCatalogURL  = "http://localhost:5000"
	DefaultDelay       = 500 * time.Millisecond
)

// Common holds the knobs every binary shares.
type Common struct {
	Port            string
	LogLevel        string
	ShutdownTimeout time.Duration

	MetricsEnabled bool
	MetricsToken   string

	TracingEnabled bool
	OTLPEndpoint   string
}

type Catalog struct {
	Common
	Delay time.Duration
}

type Viewer struct {
	Common
	CatalogURL string
	// FetchTimeout bounds the single catalog request; zero waits forever.
	FetchTimeout time.Duration
}

// LoadDotEnv reads .env into the process environment if the file exists.
// Variables already set win over the file.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	present := make([]string, 0, len(files))
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		}
	}
	if len(present) == 0 {
		return nil
	}
	return godotenv.Load(present...)
}

func LoadCatalog() Catalog {
	return Catalog{
		Common: loadCommon(DefaultCatalogPort),
		Delay:  durenvms("CATALOG_DELAY_MS", DefaultDelay),
	}
}

func LoadViewer() Viewer {
	return Viewer{
		Common:       loadCommon(DefaultViewerPort),
		CatalogURL:   strings.TrimRight(getenv("CATALOG_URL", DefaultCatalogURL), "/"),
		FetchTimeout: durenvms("VIEWER_FETCH_TIMEOUT_MS", 0),
	}
}

func loadCommon(defPort string) Common {
	return Common{
		Port:            getenv("PORT", defPort),
		LogLevel:        getenv("LOG_LEVEL", "info"),
		ShutdownTimeout: durenvms("SHUTDOWN_TIMEOUT_MS", 10*time.Second),
		MetricsEnabled:  boolenv("METRICS_ENABLED", false),
		MetricsToken:    os.Getenv("METRICS_TOKEN"),
		TracingEnabled:  boolenv("OTEL_ENABLED", false),
		OTLPEndpoint:    os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}
}

func getenv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

// durenvms reads a millisecond count. Negative or unparsable values fall
// back to def.
func durenvms(k string, def time.Duration) time.Duration {
	v := getenv(k, "")
	if v == "" {
		return def
	}
	ms, err := strconv.Atoi(v)
	if err != nil || ms < 0 {
		return def
	}
	return time.Duration(ms) * time.Millisecond
}

func boolenv(k string, def bool) bool {
	switch strings.ToLower(getenv(k, "")) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return def
	}
}
