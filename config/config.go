package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"github.com/viant/knnq/logger"
	"github.com/viant/knnq/vector"
)

// DefaultFile is read when Load is given an empty path. A missing default
// file is not an error.
const DefaultFile = "./config.yaml"

// Index kinds answering a query.
const (
	IndexStore = "store"
	IndexBrute = "brute"
	IndexCover = "cover"
)

// Distance metrics, as printed in the distance column of knnq output.
const (
	DistanceSquaredL2 = "l2sq"
	DistanceEuclidean = "euclidean"
	DistanceCosine    = "cosine"
)

// DefaultDistance returns the metric index reports when knn.distance is
// unset. The store ranks by squared euclidean distance, brute by cosine
// distance (1-cosine similarity) and cover by euclidean distance.
func DefaultDistance(index string) string {
	switch index {
	case IndexBrute:
		return DistanceCosine
	case IndexCover:
		return DistanceEuclidean
	}
	return DistanceSquaredL2
}

// Config holds the settings of the knnq command.
type Config struct {
	LogLevel   logger.Level
	LogFile    string
	DBPath     string
	K          int
	Index      string
	Distance   string
	Query      []float32
	ImportFile string
}

// Load reads configuration from path (or DefaultFile) and the environment.
// Environment variables use the KNNQ_ prefix with dots replaced by
// underscores, e.g. KNNQ_KNN_K, and take precedence over the file.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.AutomaticEnv()
	v.SetEnvPrefix("knnq")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("db.path", ":memory:")
	v.SetDefault("knn.k", 5)
	v.SetDefault("knn.index", IndexStore)
	v.SetDefault("knn.distance", "")
	v.SetDefault("knn.query", "")
	v.SetDefault("import.file", "")

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}
	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	level, err := logger.ParseLevel(v.GetString("log.level"))
	if err != nil {
		return nil, fmt.Errorf("config: log.level: %w", err)
	}
	cfg := &Config{
		LogLevel:   level,
		LogFile:    v.GetString("log.file"),
		DBPath:     v.GetString("db.path"),
		K:          v.GetInt("knn.k"),
		Index:      strings.ToLower(strings.TrimSpace(v.GetString("knn.index"))),
		Distance:   strings.ToLower(strings.TrimSpace(v.GetString("knn.distance"))),
		ImportFile: v.GetString("import.file"),
	}
	if q := strings.TrimSpace(v.GetString("knn.query")); q != "" {
		if cfg.Query, err = vector.ParseEmbedding(q); err != nil {
			return nil, fmt.Errorf("config: knn.query: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Distance == "" {
		cfg.Distance = DefaultDistance(cfg.Index)
	}
	return cfg, nil
}

// supportsDistance reports whether the index can rank by c.Distance. Only
// the cover index has a choice of metric.
func (c *Config) supportsDistance() bool {
	if c.Distance == "" || c.Distance == DefaultDistance(c.Index) {
		return true
	}
	return c.Index == IndexCover && (c.Distance == DistanceCosine || c.Distance == "l2")
}

// Validate checks value ranges and enumerations. An empty Distance stands
// for DefaultDistance of the index.
func (c *Config) Validate() error {
	if c.K < 1 {
		return fmt.Errorf("config: knn.k must be at least 1, got %d", c.K)
	}
	switch c.Index {
	case IndexStore, IndexBrute, IndexCover:
	default:
		return fmt.Errorf("config: unknown knn.index %q", c.Index)
	}
	if !c.supportsDistance() {
		return fmt.Errorf("config: knn.distance %q is not available for the %s index (it reports %s)",
			c.Distance, c.Index, DefaultDistance(c.Index))
	}
	if c.DBPath == "" {
		return fmt.Errorf("config: db.path is empty")
	}
	return nil
}
