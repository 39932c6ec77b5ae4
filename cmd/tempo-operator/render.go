package main

import (
	"fmt"
	"os"

	"github.com/charmops/tempo-operator/pkg/aggregator"
	"github.com/charmops/tempo-operator/pkg/statefile"
	"github.com/charmops/tempo-operator/pkg/tempoconf"
	"github.com/charmops/tempo-operator/pkg/tracing"
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the Tempo configuration for a state file",
	Long: `Render the exact Tempo configuration the operator would apply for
the given state, without touching any workload.

Examples:
  # Print the config to stdout
  tempo-operator render -f state.yaml

  # Diff against what a workload is currently running
  tempo-operator render -f state.yaml | diff /etc/tempo.yaml -`,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringP("file", "f", "", "State file to render from (required)")
	_ = renderCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	filename, _ := cmd.Flags().GetString("file")

	source := &statefile.FileSource{Path: filename}
	in, err := source.Load()
	if err != nil {
		return err
	}

	active := aggregator.Aggregate(in.Requests, tracing.SelfNeeds())
	rendered, err := tempoconf.Marshal(tempoconf.Generate(tempoconf.Params{
		Active: active,
		S3:     in.S3,
		Peers:  in.Peers,
		TLS:    in.TLS,
	}))
	if err != nil {
		return fmt.Errorf("failed to render config: %v", err)
	}

	_, err = os.Stdout.Write(rendered)
	return err
}
