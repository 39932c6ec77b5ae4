package coordinator

import (
	"testing"

	"github.com/charmops/tempo-operator/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func minimalCounts() map[types.Role]int {
	return map[types.Role]int{
		types.RoleQuerier:          1,
		types.RoleQueryFrontend:    1,
		types.RoleIngester:         3,
		types.RoleDistributor:      1,
		types.RoleCompactor:        1,
		types.RoleMetricsGenerator: 1,
	}
}

func TestGatherRoles(t *testing.T) {
	tests := []struct {
		name        string
		claims      []types.WorkerClaim
		localWorker bool
		expected    map[types.Role]int
	}{
		{
			name:     "no claims, no local worker",
			expected: map[types.Role]int{},
		},
		{
			name:        "local worker contributes every concrete role",
			localWorker: true,
			expected: map[types.Role]int{
				types.RoleQuerier:          1,
				types.RoleQueryFrontend:    1,
				types.RoleIngester:         1,
				types.RoleDistributor:      1,
				types.RoleCompactor:        1,
				types.RoleMetricsGenerator: 1,
			},
		},
		{
			name: "monolithic claim expands per unit",
			claims: []types.WorkerClaim{
				{Role: types.RoleMonolithic, Units: 2},
			},
			expected: map[types.Role]int{
				types.RoleQuerier:          2,
				types.RoleQueryFrontend:    2,
				types.RoleIngester:         2,
				types.RoleDistributor:      2,
				types.RoleCompactor:        2,
				types.RoleMetricsGenerator: 2,
			},
		},
		{
			name: "distinct single-role claims count only their role",
			claims: []types.WorkerClaim{
				{Role: types.RoleIngester, Units: 3},
				{Role: types.RoleQuerier, Units: 1},
			},
			expected: map[types.Role]int{
				types.RoleIngester: 3,
				types.RoleQuerier:  1,
			},
		},
		{
			name: "unknown roles and zero-unit claims are ignored",
			claims: []types.WorkerClaim{
				{Role: "barista", Units: 4},
				{Role: types.RoleCompactor, Units: 0},
				{Role: types.RoleCompactor, Units: 1},
			},
			expected: map[types.Role]int{
				types.RoleCompactor: 1,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GatherRoles(tt.claims, tt.localWorker))
		})
	}
}

func TestGatherAddresses(t *testing.T) {
	claims := []types.WorkerClaim{
		{Role: types.RoleIngester, Units: 2, Addresses: []string{"w1", "w0"}},
		{Role: types.RoleQuerier, Units: 1, Addresses: []string{"w1", ""}},
	}

	assert.Equal(t, []string{"w0", "w1"}, GatherAddresses(claims))

	byRole := GatherAddressesByRole(claims)
	assert.Equal(t, []string{"w0", "w1"}, byRole[types.RoleIngester])
	assert.Equal(t, []string{"w1"}, byRole[types.RoleQuerier])
}

func TestGatherAddressesByRoleMonolithic(t *testing.T) {
	byRole := GatherAddressesByRole([]types.WorkerClaim{
		{Role: types.RoleMonolithic, Units: 1, Addresses: []string{"mono"}},
	})

	for _, role := range types.WorkerRoles() {
		assert.Equal(t, []string{"mono"}, byRole[role])
	}
}

func TestEvaluateRoles(t *testing.T) {
	t.Run("full deployment is coherent and recommended", func(t *testing.T) {
		status := EvaluateRoles(minimalCounts())
		assert.True(t, status.Coherent)
		assert.True(t, status.Recommended)
		assert.Empty(t, status.Missing)
	})

	t.Run("single ingester is coherent but not recommended", func(t *testing.T) {
		counts := minimalCounts()
		counts[types.RoleIngester] = 1
		status := EvaluateRoles(counts)
		assert.True(t, status.Coherent)
		assert.False(t, status.Recommended)
	})

	t.Run("missing roles are reported sorted", func(t *testing.T) {
		counts := minimalCounts()
		delete(counts, types.RoleQuerier)
		delete(counts, types.RoleCompactor)
		status := EvaluateRoles(counts)
		assert.False(t, status.Coherent)
		assert.Equal(t, []types.Role{types.RoleCompactor, types.RoleQuerier}, status.Missing)
	})
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name     string
		facts    types.DeploymentFacts
		expected int
	}{
		{
			name: "scaled without object storage",
			facts: types.DeploymentFacts{
				HorizontallyScaled: true,
				WorkerNode:         true,
			},
			expected: 1,
		},
		{
			name: "clustered without object storage",
			facts: types.DeploymentFacts{
				Clustered:  true,
				WorkerNode: true,
				HasWorkers: true,
			},
			expected: 1,
		},
		{
			name: "fully coherent clustered deployment",
			facts: types.DeploymentFacts{
				HasObjectStorage: true,
				Clustered:        true,
				HasWorkers:       true,
				RoleCounts:       minimalCounts(),
			},
			expected: 0,
		},
		{
			name:     "no workers anywhere",
			facts:    types.DeploymentFacts{},
			expected: 1,
		},
		{
			name: "violations accumulate instead of short-circuiting",
			facts: types.DeploymentFacts{
				HorizontallyScaled: true,
				Clustered:          true,
			},
			expected: 3,
		},
		{
			name: "object storage present but roles missing",
			facts: types.DeploymentFacts{
				HasObjectStorage: true,
				WorkerNode:       false,
				HasWorkers:       true,
				RoleCounts: map[types.Role]int{
					types.RoleIngester: 1,
				},
			},
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violations := Check(tt.facts)
			assert.Len(t, violations, tt.expected)
		})
	}
}

// adding object storage to a scaled deployment removes exactly the storage
// violation, all else equal
func TestCheckStorageMonotonicity(t *testing.T) {
	without := types.DeploymentFacts{
		HorizontallyScaled: true,
		WorkerNode:         true,
	}
	violations := Check(without)
	require.Len(t, violations, 1)
	assert.Contains(t, string(violations[0]), "scaled")

	with := without
	with.HasObjectStorage = true
	with.RoleCounts = minimalCounts()
	assert.Empty(t, Check(with))
}

func TestCheckIncoherentMessageNamesRoles(t *testing.T) {
	violations := Check(types.DeploymentFacts{
		HasObjectStorage: true,
		HasWorkers:       true,
		RoleCounts: map[types.Role]int{
			types.RoleQuerier:          1,
			types.RoleQueryFrontend:    1,
			types.RoleIngester:         1,
			types.RoleDistributor:      1,
			types.RoleMetricsGenerator: 1,
		},
	})

	require.Len(t, violations, 1)
	assert.Contains(t, string(violations[0]), "compactor")
}
