package aggregator

import (
	"fmt"

	"github.com/charmops/tempo-operator/pkg/log"
	"github.com/charmops/tempo-operator/pkg/receiver"
	"github.com/charmops/tempo-operator/pkg/types"
)

// LegacyReceiverProtocols is the fixed bundle of receivers every legacy
// client assumes is active. Activation is all-or-nothing: one legacy client
// is enough to require the whole bundle, and legacy clients cannot ask for
// a subset.
var LegacyReceiverProtocols = []types.ReceiverProtocol{
	types.ReceiverOTLPGRPC,
	types.ReceiverOTLPHTTP,
	types.ReceiverZipkin,
}

// Aggregate computes the authoritative active receiver set for one
// reconciliation pass:
//
//  1. start from the protocols this operator always needs for itself
//  2. union in every explicit request
//  3. union in the whole legacy bundle if at least one legacy request exists
//  4. keep only protocols the catalog supports
//
// Unsupported names are dropped, not errored: a version-skewed client asking
// for a receiver we cannot serve is an expected mismatch. Pure set algebra,
// so input order never changes the result.
func Aggregate(requests []types.RelationRequest, selfNeeds types.ReceiverSet) types.ReceiverSet {
	logger := log.WithComponent("aggregator")
	active := types.NewReceiverSet()

	add := func(name types.ReceiverProtocol, source string) {
		canonical, ok := receiver.Canonical(string(name))
		if !ok {
			logger.Debug().
				Str("protocol", string(name)).
				Str("source", source).
				Msg("dropping unsupported receiver protocol")
			return
		}
		active.Add(canonical)
	}

	for p := range selfNeeds {
		add(p, "self")
	}

	legacy := false
	for _, req := range requests {
		if req.Legacy {
			legacy = true
			continue
		}
		for _, p := range req.Receivers {
			add(p, req.ID)
		}
	}

	if legacy {
		for _, p := range LegacyReceiverProtocols {
			active.Add(p)
		}
	}

	return active
}

// Endpoint is one {protocol, url} pair published back to an explicit
// requester so it knows where to send spans.
type Endpoint struct {
	Protocol types.ReceiverProtocol `json:"protocol"`
	URL      string                 `json:"url"`
}

// PublishEndpoints maps every active protocol to the URL a client should
// dial. HTTP receivers get a scheme-qualified URL; gRPC receivers get a bare
// host:port target, which is what grpc dialers expect. Sorted by protocol
// for stable relation data.
func PublishEndpoints(active types.ReceiverSet, host string, tlsEnabled bool) []Endpoint {
	scheme := "http"
	if tlsEnabled {
		scheme = "https"
	}

	out := make([]Endpoint, 0, len(active))
	for _, p := range active.Sorted() {
		r, ok := receiver.Lookup(string(p))
		if !ok {
			continue
		}
		var url string
		switch r.Family {
		case types.TransportGRPC:
			url = fmt.Sprintf("%s:%d", host, r.Port)
		default:
			url = fmt.Sprintf("%s://%s:%d", scheme, host, r.Port)
		}
		out = append(out, Endpoint{Protocol: p, URL: url})
	}
	return out
}
