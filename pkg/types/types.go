package types

import (
	"sort"
	"strings"
)

// ReceiverProtocol identifies a wire protocol the Tempo distributor can
// accept spans over (e.g. "otlp_grpc", "zipkin").
type ReceiverProtocol string

const (
	ReceiverOTLPGRPC            ReceiverProtocol = "otlp_grpc"
	ReceiverOTLPHTTP            ReceiverProtocol = "otlp_http"
	ReceiverZipkin              ReceiverProtocol = "zipkin"
	ReceiverOpenCensus          ReceiverProtocol = "opencensus"
	ReceiverJaegerThriftHTTP    ReceiverProtocol = "jaeger_thrift_http"
	ReceiverJaegerGRPC          ReceiverProtocol = "jaeger_grpc"
	ReceiverJaegerThriftBinary  ReceiverProtocol = "jaeger_thrift_binary"
	ReceiverJaegerThriftCompact ReceiverProtocol = "jaeger_thrift_compact"
)

// TransportFamily is the wire transport a receiver protocol runs over
type TransportFamily string

const (
	TransportHTTP TransportFamily = "http"
	TransportGRPC TransportFamily = "grpc"
)

// ReceiverSet is a set of receiver protocols. The zero value is empty and
// ready to use via Add; prefer NewReceiverSet for literals.
type ReceiverSet map[ReceiverProtocol]struct{}

// NewReceiverSet builds a set from the given protocols
func NewReceiverSet(protocols ...ReceiverProtocol) ReceiverSet {
	s := make(ReceiverSet, len(protocols))
	for _, p := range protocols {
		s[p] = struct{}{}
	}
	return s
}

// Add inserts a protocol into the set
func (s ReceiverSet) Add(p ReceiverProtocol) {
	s[p] = struct{}{}
}

// Has reports whether the protocol is in the set
func (s ReceiverSet) Has(p ReceiverProtocol) bool {
	_, ok := s[p]
	return ok
}

// Union merges other into s
func (s ReceiverSet) Union(other ReceiverSet) {
	for p := range other {
		s[p] = struct{}{}
	}
}

// Sorted returns the set's members in lexicographic order. All rendering
// paths go through this so output never depends on map iteration order.
func (s ReceiverSet) Sorted() []ReceiverProtocol {
	out := make([]ReceiverProtocol, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Equal reports whether both sets hold exactly the same protocols
func (s ReceiverSet) Equal(other ReceiverSet) bool {
	if len(s) != len(other) {
		return false
	}
	for p := range s {
		if !other.Has(p) {
			return false
		}
	}
	return true
}

// Role is a named processing responsibility a cluster member can declare
type Role string

const (
	// RoleMonolithic is a meta-role: the unit acts as every worker role at once
	RoleMonolithic Role = "scalable-single-binary"

	RoleQuerier          Role = "querier"
	RoleQueryFrontend    Role = "query-frontend"
	RoleIngester         Role = "ingester"
	RoleDistributor      Role = "distributor"
	RoleCompactor        Role = "compactor"
	RoleMetricsGenerator Role = "metrics-generator"
)

// WorkerRoles returns every concrete (non-meta) role in a fixed order
func WorkerRoles() []Role {
	return []Role{
		RoleQuerier,
		RoleQueryFrontend,
		RoleIngester,
		RoleDistributor,
		RoleCompactor,
		RoleMetricsGenerator,
	}
}

// IsMeta reports whether the role expands to other roles rather than
// naming one directly
func (r Role) IsMeta() bool {
	return r == RoleMonolithic
}

// RelationRequest is one external consumer's ask, snapshotted for a single
// reconciliation pass. Either Legacy is set (the consumer predates explicit
// protocol negotiation and expects the full legacy bundle) or Receivers
// carries the explicitly requested protocols.
type RelationRequest struct {
	ID        string
	Legacy    bool
	Receivers []ReceiverProtocol
}

// WorkerClaim is one connected worker application's role declaration:
// which role it runs, with how many units, at which addresses.
type WorkerClaim struct {
	Role      Role
	Units     int
	Addresses []string
}

// DeploymentFacts is a snapshot of the deployment's shape, recomputed fresh
// on every reconciliation pass and never cached across passes.
type DeploymentFacts struct {
	// HasObjectStorage is true when a complete set of object-store
	// credentials is available.
	HasObjectStorage bool

	// HorizontallyScaled is true when this application runs more than one
	// peer unit.
	HorizontallyScaled bool

	// Clustered is true when this node coordinates a multi-node worker
	// cluster.
	Clustered bool

	// WorkerNode is true when this node runs worker duties itself.
	WorkerNode bool

	// HasWorkers is true when at least one worker application is attached,
	// regardless of whether its role data validated.
	HasWorkers bool

	// RoleCounts holds how many units declare each concrete role, across
	// the whole cluster.
	RoleCounts map[Role]int
}

// S3Credentials holds object-store access material
type S3Credentials struct {
	Bucket    string `yaml:"bucket" json:"bucket"`
	Endpoint  string `yaml:"endpoint" json:"endpoint"`
	AccessKey string `yaml:"access-key" json:"access-key"`
	SecretKey string `yaml:"secret-key" json:"secret-key"`
}

// IsComplete reports whether every required field is populated. Incomplete
// credentials must be treated as "no object storage" by callers; the config
// builders assume they only ever see complete ones.
func (c *S3Credentials) IsComplete() bool {
	if c == nil {
		return false
	}
	return c.Bucket != "" && c.Endpoint != "" && c.AccessKey != "" && c.SecretKey != ""
}

// TLSMaterial holds the PEM-encoded server certificate chain
type TLSMaterial struct {
	Cert string `yaml:"cert" json:"cert"`
	Key  string `yaml:"key" json:"key"`
	CA   string `yaml:"ca" json:"ca"`
}

// ConsistencyViolation describes one failed deployment precondition in
// operator-actionable terms. A non-empty list blocks workload startup.
type ConsistencyViolation string

// ViolationText joins violations into a single status line
func ViolationText(violations []ConsistencyViolation) string {
	parts := make([]string, len(violations))
	for i, v := range violations {
		parts[i] = string(v)
	}
	return strings.Join(parts, " ")
}
