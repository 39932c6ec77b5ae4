package tempoconf

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/charmops/tempo-operator/pkg/receiver"
	"github.com/charmops/tempo-operator/pkg/types"
	"gopkg.in/yaml.v3"
)

// Workload paths and ports. The gRPC listen port deliberately avoids 9095,
// which collides with promtail.
const (
	ConfigPath = "/etc/tempo.yaml"
	LogPath    = "/var/log/tempo.log"

	HTTPListenPort = 3200
	GRPCListenPort = 9096
	GossipPort     = 7946

	TLSCertPath = "/etc/tempo/tls/server.crt"
	TLSKeyPath  = "/etc/tempo/tls/server.key"
	TLSCAPath   = "/etc/tempo/tls/ca.crt"

	tlsMinVersion = "VersionTLS12"
)

// Params are the inputs the generator is a pure function of
type Params struct {
	// Active is the negotiated receiver set.
	Active types.ReceiverSet

	// S3 enables the object-store backend when complete; nil means local
	// disk. Incomplete credentials must be filtered out before this point.
	S3 *types.S3Credentials

	// Peers are the worker addresses joined into the gossip ring; empty
	// means no memberlist block.
	Peers []string

	// TLS, when present, wires the cert material paths into the server and
	// every receiver block.
	TLS *types.TLSMaterial
}

// Document is the full Tempo configuration. Field order here is the
// serialization order, so two documents generated from equal Params always
// marshal to identical bytes.
type Document struct {
	AuthEnabled   bool              `yaml:"auth_enabled"`
	SearchEnabled bool              `yaml:"search_enabled"`
	Server        ServerConfig      `yaml:"server"`
	Distributor   DistributorConfig `yaml:"distributor"`
	Ingester      IngesterConfig    `yaml:"ingester"`
	Compactor     CompactorConfig   `yaml:"compactor"`
	Storage       StorageConfig     `yaml:"storage"`
	Memberlist    *Memberlist       `yaml:"memberlist,omitempty"`
	Querier       *QuerierConfig    `yaml:"querier,omitempty"`
}

type ServerConfig struct {
	HTTPListenPort int        `yaml:"http_listen_port"`
	GRPCListenPort int        `yaml:"grpc_listen_port"`
	HTTPTLSConfig  *ServerTLS `yaml:"http_tls_config,omitempty"`
	GRPCTLSConfig  *ServerTLS `yaml:"grpc_tls_config,omitempty"`
}

type ServerTLS struct {
	CertFile     string `yaml:"cert_file"`
	KeyFile      string `yaml:"key_file"`
	ClientCAFile string `yaml:"client_ca_file"`
}

type DistributorConfig struct {
	Receivers map[string]any `yaml:"receivers"`
}

// IngesterConfig controls when a head block is cut: after this much idle
// time on a trace, this many bytes, or this much wall time, whichever first.
type IngesterConfig struct {
	TraceIdlePeriod  string `yaml:"trace_idle_period"`
	MaxBlockBytes    int    `yaml:"max_block_bytes"`
	MaxBlockDuration string `yaml:"max_block_duration"`
}

type CompactorConfig struct {
	Compaction CompactionConfig `yaml:"compaction"`
}

type CompactionConfig struct {
	CompactionWindow        string `yaml:"compaction_window"`
	MaxCompactionObjects    int    `yaml:"max_compaction_objects"`
	BlockRetention          string `yaml:"block_retention"`
	CompactedBlockRetention string `yaml:"compacted_block_retention"`
	FlushSizeBytes          int    `yaml:"flush_size_bytes"`
}

type Memberlist struct {
	AbortIfClusterJoinFails bool     `yaml:"abort_if_cluster_join_fails"`
	BindPort                int      `yaml:"bind_port"`
	JoinMembers             []string `yaml:"join_members"`
}

type QuerierConfig struct {
	FrontendWorker FrontendWorker `yaml:"frontend_worker"`
}

type FrontendWorker struct {
	FrontendAddress string `yaml:"frontend_address"`
}

// Generate composes the full configuration document from one pass's inputs.
// It is a pure function: equal Params produce byte-identical documents once
// marshalled, which is the property the reconciler's no-op detection rests
// on.
func Generate(p Params) Document {
	doc := Document{
		// trace search on the backend is always on; auth stays off, the
		// operator fronts access control
		SearchEnabled: true,
		Server: ServerConfig{
			HTTPListenPort: HTTPListenPort,
			GRPCListenPort: GRPCListenPort,
		},
		Distributor: DistributorConfig{
			Receivers: receiver.Render(p.Active, receiverTLS(p.TLS)),
		},
		Ingester: IngesterConfig{
			TraceIdlePeriod:  "10s",
			MaxBlockBytes:    100,
			MaxBlockDuration: "5m",
		},
		Compactor: CompactorConfig{
			Compaction: CompactionConfig{
				CompactionWindow:        "1h",
				MaxCompactionObjects:    1000000,
				BlockRetention:          "1h",
				CompactedBlockRetention: "10m",
				FlushSizeBytes:          5242880,
			},
		},
		Storage: BuildStorage(p.S3),
	}

	if p.TLS != nil {
		serverTLS := &ServerTLS{
			CertFile:     TLSCertPath,
			KeyFile:      TLSKeyPath,
			ClientCAFile: TLSCAPath,
		}
		doc.Server.HTTPTLSConfig = serverTLS
		doc.Server.GRPCTLSConfig = serverTLS
	}

	if len(p.Peers) > 0 {
		members := make([]string, 0, len(p.Peers))
		for _, peer := range p.Peers {
			members = append(members, fmt.Sprintf("%s:%d", peer, GossipPort))
		}
		sort.Strings(members)

		doc.Memberlist = &Memberlist{
			AbortIfClusterJoinFails: false,
			BindPort:                GossipPort,
			JoinMembers:             members,
		}
		// queriers reach the colocated query-frontend over the server's
		// gRPC port
		doc.Querier = &QuerierConfig{
			FrontendWorker: FrontendWorker{
				FrontendAddress: fmt.Sprintf("localhost:%d", GRPCListenPort),
			},
		}
	}

	return doc
}

func receiverTLS(tls *types.TLSMaterial) *receiver.TLSConfig {
	if tls == nil {
		return nil
	}
	return &receiver.TLSConfig{
		CAFile:     TLSCAPath,
		CertFile:   TLSCertPath,
		KeyFile:    TLSKeyPath,
		MinVersion: tlsMinVersion,
	}
}

// Marshal serializes a document to its canonical on-disk form
func Marshal(doc Document) ([]byte, error) {
	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tempo config: %w", err)
	}
	return out, nil
}

// Equal reports whether two serialized documents are the same config.
// Equality is byte equality of the canonical form, nothing smarter.
func Equal(a, b []byte) bool {
	return bytes.Equal(a, b)
}
