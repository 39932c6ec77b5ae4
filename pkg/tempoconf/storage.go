package tempoconf

import (
	"strings"

	"github.com/charmops/tempo-operator/pkg/types"
)

// Local storage layout used when no object store is available
const (
	LocalStoragePath = "/traces"
	WALPath          = "/etc/tempo_wal"
)

type StorageConfig struct {
	Trace TraceStorage `yaml:"trace"`
}

type TraceStorage struct {
	Backend string        `yaml:"backend"`
	Local   *LocalBackend `yaml:"local,omitempty"`
	S3      *S3Backend    `yaml:"s3,omitempty"`
	WAL     WALConfig     `yaml:"wal"`
	Pool    PoolConfig    `yaml:"pool"`
}

type LocalBackend struct {
	Path string `yaml:"path"`
}

type S3Backend struct {
	Bucket    string `yaml:"bucket"`
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Insecure  bool   `yaml:"insecure"`
}

type WALConfig struct {
	Path string `yaml:"path"`
}

type PoolConfig struct {
	MaxWorkers int `yaml:"max_workers"`
	QueueDepth int `yaml:"queue_depth"`
}

// BuildStorage renders the trace storage backend: local disk when s3 is nil,
// object store otherwise. The bucket client rejects scheme-qualified
// endpoints, so the scheme is stripped and only survives as the insecure
// flag. Total function; incomplete credentials never reach this point.
func BuildStorage(s3 *types.S3Credentials) StorageConfig {
	trace := TraceStorage{
		WAL:  WALConfig{Path: WALPath},
		Pool: PoolConfig{MaxWorkers: 100, QueueDepth: 10000},
	}

	if s3 == nil {
		trace.Backend = "local"
		trace.Local = &LocalBackend{Path: LocalStoragePath}
	} else {
		endpoint, insecure := splitEndpointScheme(s3.Endpoint)
		trace.Backend = "s3"
		trace.S3 = &S3Backend{
			Bucket:    s3.Bucket,
			Endpoint:  endpoint,
			AccessKey: s3.AccessKey,
			SecretKey: s3.SecretKey,
			Insecure:  insecure,
		}
	}

	return StorageConfig{Trace: trace}
}

// splitEndpointScheme strips a leading scheme from an endpoint and reports
// whether that scheme was plain http
func splitEndpointScheme(endpoint string) (string, bool) {
	switch {
	case strings.HasPrefix(endpoint, "https://"):
		return strings.TrimPrefix(endpoint, "https://"), false
	case strings.HasPrefix(endpoint, "http://"):
		return strings.TrimPrefix(endpoint, "http://"), true
	default:
		return endpoint, false
	}
}
