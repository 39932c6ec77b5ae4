package statefile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/charmops/tempo-operator/pkg/coordinator"
	"github.com/charmops/tempo-operator/pkg/reconciler"
	"github.com/charmops/tempo-operator/pkg/relation"
	"github.com/charmops/tempo-operator/pkg/types"
)

// State is the declarative input document: everything external the operator
// needs to run one reconciliation pass, in one YAML file.
type State struct {
	// Hostname is the address clients are told to send spans to.
	Hostname string `yaml:"hostname"`

	// WorkerNode declares that this node runs worker duties itself.
	WorkerNode bool `yaml:"worker_node"`

	// Peers are the addresses of the other units of this application.
	Peers []string `yaml:"peers,omitempty"`

	// S3 holds object-store credentials; incomplete credentials count as
	// no object storage at all.
	S3 *types.S3Credentials `yaml:"s3,omitempty"`

	// TLS points at PEM files on disk.
	TLS *TLSFiles `yaml:"tls,omitempty"`

	// Workers are the attached worker applications' role claims.
	Workers []WorkerEntry `yaml:"workers,omitempty"`

	// Relations are the raw tracing-client databags.
	Relations []relation.Databag `yaml:"relations,omitempty"`
}

// TLSFiles references the server certificate material by path
type TLSFiles struct {
	CertFile string `yaml:"cert_file"`
	KeyFile  string `yaml:"key_file"`
	CAFile   string `yaml:"ca_file"`
}

// WorkerEntry is one worker application's claim as written in the state file
type WorkerEntry struct {
	Role      string   `yaml:"role"`
	Units     int      `yaml:"units"`
	Addresses []string `yaml:"addresses,omitempty"`
}

// Parse decodes a state document from YAML bytes
func Parse(data []byte) (*State, error) {
	var state State
	if err := yaml.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse state file: %w", err)
	}
	return &state, nil
}

// claims converts the file entries to typed worker claims
func (s *State) claims() []types.WorkerClaim {
	out := make([]types.WorkerClaim, 0, len(s.Workers))
	for _, w := range s.Workers {
		out = append(out, types.WorkerClaim{
			Role:      types.Role(w.Role),
			Units:     w.Units,
			Addresses: w.Addresses,
		})
	}
	return out
}

// Inputs derives one pass's reconciliation inputs from the state. Facts are
// recomputed from scratch on every call; nothing is cached between passes.
func (s *State) Inputs() (reconciler.Inputs, error) {
	claims := s.claims()

	var s3 *types.S3Credentials
	if s.S3.IsComplete() {
		s3 = s.S3
	}

	tls, err := s.loadTLS()
	if err != nil {
		return reconciler.Inputs{}, err
	}

	facts := types.DeploymentFacts{
		HasObjectStorage:   s3 != nil,
		HorizontallyScaled: len(s.Peers) > 0,
		Clustered:          len(claims) > 0,
		WorkerNode:         s.WorkerNode,
		HasWorkers:         len(claims) > 0,
		RoleCounts:         coordinator.GatherRoles(claims, s.WorkerNode),
	}

	return reconciler.Inputs{
		Requests: relation.DecodeAll(s.Relations),
		Facts:    facts,
		S3:       s3,
		TLS:      tls,
		Peers:    s.Peers,
		Hostname: s.Hostname,
	}, nil
}

func (s *State) loadTLS() (*types.TLSMaterial, error) {
	if s.TLS == nil {
		return nil, nil
	}

	read := func(path string) (string, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read TLS material: %w", err)
		}
		return string(data), nil
	}

	cert, err := read(s.TLS.CertFile)
	if err != nil {
		return nil, err
	}
	key, err := read(s.TLS.KeyFile)
	if err != nil {
		return nil, err
	}
	ca, err := read(s.TLS.CAFile)
	if err != nil {
		return nil, err
	}

	return &types.TLSMaterial{Cert: cert, Key: key, CA: ca}, nil
}

// FileSource re-reads a state file on every load, so a pass always sees
// whatever is on disk right now. Implements reconciler.Source.
type FileSource struct {
	Path string
}

// Load reads and derives fresh inputs from the state file
func (f *FileSource) Load() (reconciler.Inputs, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return reconciler.Inputs{}, fmt.Errorf("failed to read state file: %w", err)
	}
	state, err := Parse(data)
	if err != nil {
		return reconciler.Inputs{}, err
	}
	return state.Inputs()
}
