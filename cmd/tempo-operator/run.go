package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmops/tempo-operator/pkg/log"
	"github.com/charmops/tempo-operator/pkg/metrics"
	"github.com/charmops/tempo-operator/pkg/reconciler"
	"github.com/charmops/tempo-operator/pkg/statefile"
	"github.com/charmops/tempo-operator/pkg/storage"
	"github.com/charmops/tempo-operator/pkg/tempoconf"
	"github.com/charmops/tempo-operator/pkg/tracing"
	"github.com/charmops/tempo-operator/pkg/workload"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the reconcile loop against a local Tempo workload",
	Long: `Run the operator as a daemon: re-read the state file on a fixed
interval, reconcile the local Tempo workload onto the configuration the
state asks for, and serve Prometheus metrics.

Examples:
  tempo-operator run -f state.yaml
  tempo-operator run -f state.yaml --tempo-binary /opt/tempo/tempo --trace`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringP("file", "f", "", "State file to reconcile from (required)")
	runCmd.Flags().String("tempo-binary", "/usr/bin/tempo", "Path to the tempo executable")
	runCmd.Flags().String("config-file", tempoconf.ConfigPath, "Where to write the workload config")
	runCmd.Flags().String("data-dir", "./tempo-operator-data", "Data directory for operator state")
	runCmd.Flags().String("metrics-addr", ":9090", "Address for the Prometheus metrics endpoint")
	runCmd.Flags().Duration("interval", 30*time.Second, "Reconcile tick interval")
	runCmd.Flags().Bool("trace", false, "Export the operator's own spans to the managed Tempo")
	_ = runCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	filename, _ := cmd.Flags().GetString("file")
	binary, _ := cmd.Flags().GetString("tempo-binary")
	configFile, _ := cmd.Flags().GetString("config-file")
	dataDir, _ := cmd.Flags().GetString("data-dir")
	metricsAddr, _ := cmd.Flags().GetString("metrics-addr")
	interval, _ := cmd.Flags().GetDuration("interval")
	selfTrace, _ := cmd.Flags().GetBool("trace")

	logger := log.WithComponent("main")
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %v", err)
	}
	store, err := storage.NewBoltStore(dataDir)
	if err != nil {
		return fmt.Errorf("failed to open state store: %v", err)
	}
	defer store.Close()

	if selfTrace {
		shutdown, err := tracing.Setup(ctx)
		if err != nil {
			return fmt.Errorf("failed to set up tracing: %v", err)
		}
		defer func() {
			flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer flushCancel()
			_ = shutdown(flushCtx)
		}()
	}

	handle := workload.NewLocal(binary, configFile)
	controller := reconciler.NewController(handle, store).
		WithReadiness(handle.ReadinessChecker())

	source := &statefile.FileSource{Path: filename}
	runner := reconciler.NewRunner(controller, source, interval)

	// metrics endpoint
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	metricsServer := &http.Server{Addr: metricsAddr, Handler: mux}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("metrics server failed")
		}
	}()

	runner.Start(ctx)
	logger.Info().
		Str("state_file", filename).
		Dur("interval", interval).
		Str("metrics_addr", metricsAddr).
		Msg("operator started")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	logger.Info().Msg("shutting down")

	runner.Stop()
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = metricsServer.Shutdown(shutdownCtx)

	return nil
}
