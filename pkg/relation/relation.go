package relation

import (
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/charmops/tempo-operator/pkg/aggregator"
	"github.com/charmops/tempo-operator/pkg/log"
	"github.com/charmops/tempo-operator/pkg/types"
)

// Databag is one relation's raw application data: string keys to
// JSON-encoded string values, as the relation layer hands them over.
type Databag struct {
	ID   string            `yaml:"id" json:"id"`
	Data map[string]string `yaml:"data" json:"data"`
}

// Keys the relation machinery writes on every databag regardless of what
// the remote application publishes. They carry no request semantics and are
// excluded before interpreting the bag.
var builtinKeys = map[string]struct{}{
	"ingress-address": {},
	"private-address": {},
	"egress-subnets":  {},
}

// receiversKey marks an explicit (v2) request. Its absence from an
// otherwise populated databag is what makes a request legacy.
const receiversKey = "receivers"

// Decode interprets one databag as a request snapshot. The detection
// contract, applied after stripping builtin keys:
//
//   - empty bag: the remote has not published yet; no request (ok=false)
//   - bag with a "receivers" key: explicit request for the listed protocols
//   - any other non-empty bag: legacy request
//
// A malformed receivers value invalidates the bag rather than degrading it
// to legacy, so a buggy modern client cannot force the legacy bundle on.
func Decode(bag Databag) (types.RelationRequest, bool) {
	logger := log.WithRelation(bag.ID)

	data := make(map[string]string, len(bag.Data))
	for k, v := range bag.Data {
		if _, builtin := builtinKeys[k]; !builtin {
			data[k] = v
		}
	}

	if len(data) == 0 {
		return types.RelationRequest{}, false
	}

	raw, explicit := data[receiversKey]
	if !explicit {
		logger.Debug().Msg("databag carries no receivers key, treating as legacy request")
		return types.RelationRequest{ID: bag.ID, Legacy: true}, true
	}

	var names []string
	if err := json.Unmarshal([]byte(raw), &names); err != nil {
		logger.Info().Err(err).Msg("invalid receivers value in databag, skipping relation")
		return types.RelationRequest{}, false
	}

	receivers := make([]types.ReceiverProtocol, 0, len(names))
	for _, name := range names {
		receivers = append(receivers, types.ReceiverProtocol(name))
	}
	return types.RelationRequest{ID: bag.ID, Receivers: receivers}, true
}

// DecodeAll decodes every databag, dropping the ones that carry no request
func DecodeAll(bags []Databag) []types.RelationRequest {
	out := make([]types.RelationRequest, 0, len(bags))
	for _, bag := range bags {
		if req, ok := Decode(bag); ok {
			out = append(out, req)
		}
	}
	return out
}

// EncodeEndpoints serializes the published {protocol, url} pairs into the
// databag value answered back to explicit requesters
func EncodeEndpoints(endpoints []aggregator.Endpoint) (string, error) {
	out, err := json.Marshal(endpoints)
	if err != nil {
		return "", fmt.Errorf("failed to encode receiver endpoints: %w", err)
	}
	return string(out), nil
}
