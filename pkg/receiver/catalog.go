package receiver

import (
	"sort"
	"strings"

	"github.com/charmops/tempo-operator/pkg/types"
)

// Receiver describes one supported trace-ingestion protocol: its canonical
// name, the port Tempo listens on for it, and the transport family it runs
// over.
type Receiver struct {
	Protocol types.ReceiverProtocol
	Port     int
	Family   types.TransportFamily
}

// catalog is the authoritative table of supported receiver protocols.
// Ports follow Tempo's defaults; any protocol name not in this table (after
// alias normalization) is unsupported and gets dropped by the aggregator.
var catalog = map[types.ReceiverProtocol]Receiver{
	types.ReceiverOTLPGRPC:            {types.ReceiverOTLPGRPC, 4317, types.TransportGRPC},
	types.ReceiverOTLPHTTP:            {types.ReceiverOTLPHTTP, 4318, types.TransportHTTP},
	types.ReceiverZipkin:              {types.ReceiverZipkin, 9411, types.TransportHTTP},
	types.ReceiverOpenCensus:          {types.ReceiverOpenCensus, 55678, types.TransportGRPC},
	types.ReceiverJaegerThriftHTTP:    {types.ReceiverJaegerThriftHTTP, 14268, types.TransportHTTP},
	types.ReceiverJaegerGRPC:          {types.ReceiverJaegerGRPC, 14250, types.TransportGRPC},
	types.ReceiverJaegerThriftBinary:  {types.ReceiverJaegerThriftBinary, 6832, types.TransportHTTP},
	types.ReceiverJaegerThriftCompact: {types.ReceiverJaegerThriftCompact, 6831, types.TransportHTTP},
}

// aliases maps deprecated protocol names, still sent by old clients, to
// their canonical replacements. "tempo" predates protocol-qualified names
// and pointed at the ingestion endpoint that is otlp_grpc today.
var aliases = map[string]types.ReceiverProtocol{
	"tempo":              types.ReceiverOTLPGRPC,
	"jaeger_http_thrift": types.ReceiverJaegerThriftHTTP,
}

// Canonical resolves a protocol name, following deprecated aliases, to a
// catalog entry. ok is false for names the catalog does not know.
func Canonical(name string) (types.ReceiverProtocol, bool) {
	if canonical, ok := aliases[name]; ok {
		return canonical, true
	}
	p := types.ReceiverProtocol(name)
	if _, ok := catalog[p]; ok {
		return p, true
	}
	return "", false
}

// Lookup returns the catalog entry for a (possibly aliased) protocol name
func Lookup(name string) (Receiver, bool) {
	p, ok := Canonical(name)
	if !ok {
		return Receiver{}, false
	}
	return catalog[p], true
}

// Supported reports whether a canonical protocol is in the catalog
func Supported(p types.ReceiverProtocol) bool {
	_, ok := catalog[p]
	return ok
}

// Port returns the default listen port for a supported protocol, 0 otherwise
func Port(p types.ReceiverProtocol) int {
	return catalog[p].Port
}

// All returns every catalog entry sorted by protocol name
func All() []Receiver {
	out := make([]Receiver, 0, len(catalog))
	for _, r := range catalog {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Protocol < out[j].Protocol })
	return out
}

// PortSpec names one port a fronting service must expose for a receiver
type PortSpec struct {
	Name       string
	Port       int
	TargetPort int
}

// RequestedPorts lists the service-name/port pairs for every supported
// receiver, for whoever patches the fronting service. Underscores are not
// valid in service names, so they become dashes.
func RequestedPorts(serviceNamePrefix string) []PortSpec {
	all := All()
	out := make([]PortSpec, 0, len(all))
	for _, r := range all {
		name := strings.ReplaceAll(serviceNamePrefix+string(r.Protocol), "_", "-")
		out = append(out, PortSpec{Name: name, Port: r.Port, TargetPort: r.Port})
	}
	return out
}
