package relation

import (
	"testing"

	"github.com/charmops/tempo-operator/pkg/aggregator"
	"github.com/charmops/tempo-operator/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		bag      Databag
		ok       bool
		expected types.RelationRequest
	}{
		{
			name: "empty databag is no request",
			bag:  Databag{ID: "tracing:0", Data: map[string]string{}},
			ok:   false,
		},
		{
			name: "databag with only builtin keys is no request",
			bag: Databag{ID: "tracing:0", Data: map[string]string{
				"ingress-address": `"10.0.0.5"`,
				"private-address": `"10.0.0.5"`,
				"egress-subnets":  `"10.0.0.5/32"`,
			}},
			ok: false,
		},
		{
			name: "receivers key makes an explicit request",
			bag: Databag{ID: "tracing:1", Data: map[string]string{
				"receivers": `["otlp_http", "zipkin"]`,
			}},
			ok: true,
			expected: types.RelationRequest{
				ID:        "tracing:1",
				Receivers: []types.ReceiverProtocol{types.ReceiverOTLPHTTP, types.ReceiverZipkin},
			},
		},
		{
			name: "populated databag without receivers is legacy",
			bag: Databag{ID: "tracing:2", Data: map[string]string{
				"ingress-address": `"10.0.0.9"`,
				"hostname":        `"client.example"`,
			}},
			ok:       true,
			expected: types.RelationRequest{ID: "tracing:2", Legacy: true},
		},
		{
			name: "malformed receivers value invalidates the bag",
			bag: Databag{ID: "tracing:3", Data: map[string]string{
				"receivers": `not json`,
			}},
			ok: false,
		},
		{
			name: "empty receivers list is an explicit request for nothing",
			bag: Databag{ID: "tracing:4", Data: map[string]string{
				"receivers": `[]`,
			}},
			ok:       true,
			expected: types.RelationRequest{ID: "tracing:4", Receivers: []types.ReceiverProtocol{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, ok := Decode(tt.bag)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, req)
			}
		})
	}
}

func TestDecodeAll(t *testing.T) {
	bags := []Databag{
		{ID: "tracing:0", Data: map[string]string{"receivers": `["otlp_grpc"]`}},
		{ID: "tracing:1", Data: map[string]string{}},
		{ID: "tracing:2", Data: map[string]string{"hostname": `"x"`}},
	}

	requests := DecodeAll(bags)
	require.Len(t, requests, 2)
	assert.Equal(t, "tracing:0", requests[0].ID)
	assert.False(t, requests[0].Legacy)
	assert.True(t, requests[1].Legacy)
}

func TestEncodeEndpoints(t *testing.T) {
	out, err := EncodeEndpoints([]aggregator.Endpoint{
		{Protocol: types.ReceiverOTLPGRPC, URL: "tempo.example:4317"},
		{Protocol: types.ReceiverZipkin, URL: "http://tempo.example:9411"},
	})
	require.NoError(t, err)
	assert.JSONEq(t,
		`[{"protocol":"otlp_grpc","url":"tempo.example:4317"},{"protocol":"zipkin","url":"http://tempo.example:9411"}]`,
		out)
}
