package workload

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/charmops/tempo-operator/pkg/health"
	"github.com/charmops/tempo-operator/pkg/log"
	"github.com/charmops/tempo-operator/pkg/tempoconf"
)

// Handle is the reconciler's view of the workload. Implementations own the
// config file and the process; nothing else touches either.
type Handle interface {
	// CanConnect reports whether the workload environment is reachable at
	// all. False is the expected "not yet" state early in the lifecycle.
	CanConnect() bool

	// ReadConfig returns the current on-disk config, nil when none exists.
	ReadConfig() ([]byte, error)

	// WriteConfig replaces the on-disk config.
	WriteConfig(config []byte) error

	// IsActive reports whether the process is currently running.
	IsActive() bool

	// Restart stops the process if running and starts it again. A single
	// attempt; the reconciler owns retry policy.
	Restart(ctx context.Context) error

	// Stop terminates the process and keeps it down.
	Stop(ctx context.Context) error
}

// Local manages a Tempo process on the local machine
type Local struct {
	// ConfigFile is where the rendered config lives.
	ConfigFile string

	// Binary is the tempo executable.
	Binary string

	// HTTPPort is the server port the readiness endpoint answers on.
	HTTPPort int

	mu  sync.Mutex
	cmd *exec.Cmd
}

// NewLocal creates a handle for a locally-run Tempo binary
func NewLocal(binary, configFile string) *Local {
	return &Local{
		ConfigFile: configFile,
		Binary:     binary,
		HTTPPort:   tempoconf.HTTPListenPort,
	}
}

// CanConnect reports whether the config location is usable
func (l *Local) CanConnect() bool {
	dir := filepath.Dir(l.ConfigFile)
	info, err := os.Stat(dir)
	return err == nil && info.IsDir()
}

// ReadConfig returns the current on-disk config, nil when none exists
func (l *Local) ReadConfig() ([]byte, error) {
	data, err := os.ReadFile(l.ConfigFile)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read workload config: %w", err)
	}
	return data, nil
}

// WriteConfig replaces the on-disk config
func (l *Local) WriteConfig(config []byte) error {
	if err := os.WriteFile(l.ConfigFile, config, 0644); err != nil {
		return fmt.Errorf("failed to write workload config: %w", err)
	}
	return nil
}

// IsActive reports whether the process is currently running
func (l *Local) IsActive() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.running()
}

func (l *Local) running() bool {
	if l.cmd == nil || l.cmd.Process == nil {
		return false
	}
	// signal 0 probes existence without touching the process
	return l.cmd.Process.Signal(syscall.Signal(0)) == nil
}

// Restart stops the process if running, then starts it
func (l *Local) Restart(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.running() {
		if err := l.terminate(ctx); err != nil {
			return err
		}
	}
	return l.start()
}

// Stop terminates the process and keeps it down
func (l *Local) Stop(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.running() {
		return nil
	}
	return l.terminate(ctx)
}

func (l *Local) start() error {
	cmd := exec.Command(l.Binary, "-config.file="+l.ConfigFile)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start workload: %w", err)
	}
	l.cmd = cmd

	// reap the process when it exits so running() stays accurate
	go func() { _ = cmd.Wait() }()

	logger := log.WithComponent("workload")
	logger.Info().
		Int("pid", cmd.Process.Pid).
		Msg("workload started")
	return nil
}

func (l *Local) terminate(ctx context.Context) error {
	proc := l.cmd.Process
	if err := proc.Signal(syscall.SIGTERM); err != nil {
		return fmt.Errorf("failed to signal workload: %w", err)
	}

	deadline := time.After(10 * time.Second)
	tick := time.NewTicker(100 * time.Millisecond)
	defer tick.Stop()

	for {
		select {
		case <-tick.C:
			if !l.running() {
				l.cmd = nil
				return nil
			}
		case <-deadline:
			_ = proc.Kill()
			l.cmd = nil
			return nil
		case <-ctx.Done():
			// don't leave a half-terminated process for the next attempt
			// to trip over
			_ = proc.Kill()
			l.cmd = nil
			return ctx.Err()
		}
	}
}

// ReadinessChecker probes the workload's own readiness endpoint. The
// endpoint answers the literal body "ready" only once Tempo is serving,
// which is a stronger signal than the process merely existing.
func (l *Local) ReadinessChecker() health.Checker {
	url := fmt.Sprintf("http://localhost:%d/ready", l.HTTPPort)
	return health.NewHTTPChecker(url).WithBody("ready")
}
