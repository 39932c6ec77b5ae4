package coordinator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmops/tempo-operator/pkg/log"
	"github.com/charmops/tempo-operator/pkg/types"
)

// MinimalDeployment is the least set of roles that must be present, across
// the whole cluster, for the deployment to be coherent. Below this the
// workload is blocked, not merely degraded.
var MinimalDeployment = map[types.Role]int{
	types.RoleQuerier:          1,
	types.RoleQueryFrontend:    1,
	types.RoleIngester:         1,
	types.RoleDistributor:      1,
	types.RoleCompactor:        1,
	types.RoleMetricsGenerator: 1,
}

// RecommendedDeployment is the stricter table a robust deployment meets.
// Falling short of it is worth a warning, never a block.
var RecommendedDeployment = map[types.Role]int{
	types.RoleQuerier:          1,
	types.RoleQueryFrontend:    1,
	types.RoleIngester:         3,
	types.RoleDistributor:      1,
	types.RoleCompactor:        1,
	types.RoleMetricsGenerator: 1,
}

// GatherRoles sums role declarations across all connected worker claims.
// A monolithic claim expands to one count against every concrete role per
// unit. When the local node runs worker duties itself it contributes its
// own implicit full role set.
func GatherRoles(claims []types.WorkerClaim, localWorker bool) map[types.Role]int {
	logger := log.WithComponent("coordinator")
	counts := map[types.Role]int{}

	if localWorker {
		for _, role := range types.WorkerRoles() {
			counts[role]++
		}
	}

	for _, claim := range claims {
		if claim.Units <= 0 {
			continue
		}
		switch {
		case claim.Role.IsMeta():
			for _, role := range types.WorkerRoles() {
				counts[role] += claim.Units
			}
		case knownRole(claim.Role):
			counts[claim.Role] += claim.Units
		default:
			logger.Info().
				Str("role", string(claim.Role)).
				Msg("ignoring worker claim with unknown role")
		}
	}

	return counts
}

func knownRole(r types.Role) bool {
	for _, role := range types.WorkerRoles() {
		if r == role {
			return true
		}
	}
	return false
}

// GatherAddresses collects every worker address, deduplicated and sorted
func GatherAddresses(claims []types.WorkerClaim) []string {
	seen := map[string]struct{}{}
	for _, claim := range claims {
		for _, addr := range claim.Addresses {
			if addr != "" {
				seen[addr] = struct{}{}
			}
		}
	}

	out := make([]string, 0, len(seen))
	for addr := range seen {
		out = append(out, addr)
	}
	sort.Strings(out)
	return out
}

// GatherAddressesByRole collects worker addresses keyed by the role those
// units serve, with monolithic claims counting for every role
func GatherAddressesByRole(claims []types.WorkerClaim) map[types.Role][]string {
	seen := map[types.Role]map[string]struct{}{}

	record := func(role types.Role, addr string) {
		if addr == "" {
			return
		}
		if seen[role] == nil {
			seen[role] = map[string]struct{}{}
		}
		seen[role][addr] = struct{}{}
	}

	for _, claim := range claims {
		roles := []types.Role{claim.Role}
		if claim.Role.IsMeta() {
			roles = types.WorkerRoles()
		}
		for _, role := range roles {
			for _, addr := range claim.Addresses {
				record(role, addr)
			}
		}
	}

	out := make(map[types.Role][]string, len(seen))
	for role, addrs := range seen {
		list := make([]string, 0, len(addrs))
		for addr := range addrs {
			list = append(list, addr)
		}
		sort.Strings(list)
		out[role] = list
	}
	return out
}

// RoleStatus is the verdict over aggregated role counts
type RoleStatus struct {
	Counts map[types.Role]int

	// Coherent: every minimal role is covered at all.
	Coherent bool

	// Recommended: every role meets or exceeds the recommended count.
	Recommended bool

	// Missing are the minimal roles nobody covers, sorted.
	Missing []types.Role
}

// EvaluateRoles checks aggregated counts against the minimal and
// recommended tables
func EvaluateRoles(counts map[types.Role]int) RoleStatus {
	status := RoleStatus{
		Counts:      counts,
		Coherent:    true,
		Recommended: true,
	}

	for role, min := range MinimalDeployment {
		if counts[role] < min {
			status.Coherent = false
			status.Missing = append(status.Missing, role)
		}
	}
	sort.Slice(status.Missing, func(i, j int) bool { return status.Missing[i] < status.Missing[j] })

	for role, min := range RecommendedDeployment {
		if counts[role] < min {
			status.Recommended = false
			break
		}
	}

	return status
}

// Consistency rule messages. These are operator-facing status text: they
// say what is missing, not just that something is wrong.
const (
	violationNoWorkers = "the deployment must either run a worker on this node or have worker applications attached"
	violationScaledS3  = "the deployment is scaled but has no object storage: scaling requires an s3 integration"
	violationCluster   = "the deployment is clustered but has no object storage: clustering requires an s3 integration"
)

// Check evaluates every deployment precondition against the facts and
// returns all violations found. Rules are independent: no short-circuiting,
// so the operator sees the full list at once. An empty result is the only
// "go" signal; this function never errors.
func Check(facts types.DeploymentFacts) []types.ConsistencyViolation {
	var violations []types.ConsistencyViolation

	if !facts.WorkerNode && !facts.HasWorkers {
		violations = append(violations, violationNoWorkers)
	}

	if !facts.HasObjectStorage {
		if facts.HorizontallyScaled {
			violations = append(violations, violationScaledS3)
		}
		if facts.Clustered {
			violations = append(violations, violationCluster)
		}
	} else {
		status := EvaluateRoles(facts.RoleCounts)
		if !status.Coherent {
			names := make([]string, len(status.Missing))
			for i, role := range status.Missing {
				names[i] = string(role)
			}
			violations = append(violations, types.ConsistencyViolation(fmt.Sprintf(
				"incoherent deployment: missing required roles: %s",
				strings.Join(names, ", "),
			)))
		}
	}

	return violations
}
