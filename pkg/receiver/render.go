package receiver

import (
	"github.com/charmops/tempo-operator/pkg/types"
)

// TLSConfig is the per-receiver TLS block Tempo expects: file paths, not
// inline PEM. The workload layer is responsible for the files existing at
// these paths before the config referencing them is pushed.
type TLSConfig struct {
	CAFile     string `yaml:"ca_file"`
	CertFile   string `yaml:"cert_file"`
	KeyFile    string `yaml:"key_file"`
	MinVersion string `yaml:"min_version"`
}

// Render builds the distributor.receivers sub-document for the active
// protocols. Protocols group into Tempo's receiver families: otlp and jaeger
// carry their sub-protocols under "protocols", zipkin and opencensus stand
// alone. An enabled protocol with no TLS renders as null, which Tempo reads
// as "enable with defaults".
//
// The output is built from sorted input and nested maps whose keys yaml
// serializes in sorted order, so equal inputs always render to equal bytes.
func Render(active types.ReceiverSet, tls *TLSConfig) map[string]any {
	config := map[string]any{}

	// value for one enabled protocol block
	block := func() any {
		if tls == nil {
			return nil
		}
		return map[string]any{"tls": *tls}
	}

	otlp := map[string]any{}
	jaeger := map[string]any{}

	for _, p := range active.Sorted() {
		switch p {
		case types.ReceiverOTLPGRPC:
			otlp["grpc"] = block()
		case types.ReceiverOTLPHTTP:
			otlp["http"] = block()
		case types.ReceiverZipkin:
			config["zipkin"] = block()
		case types.ReceiverOpenCensus:
			config["opencensus"] = block()
		case types.ReceiverJaegerThriftHTTP:
			jaeger["thrift_http"] = block()
		case types.ReceiverJaegerGRPC:
			jaeger["grpc"] = block()
		case types.ReceiverJaegerThriftBinary:
			jaeger["thrift_binary"] = block()
		case types.ReceiverJaegerThriftCompact:
			jaeger["thrift_compact"] = block()
		}
	}

	if len(otlp) > 0 {
		config["otlp"] = map[string]any{"protocols": otlp}
	}
	if len(jaeger) > 0 {
		config["jaeger"] = map[string]any{"protocols": jaeger}
	}

	return config
}
