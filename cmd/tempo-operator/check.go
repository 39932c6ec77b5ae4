package main

import (
	"fmt"

	"github.com/charmops/tempo-operator/pkg/coordinator"
	"github.com/charmops/tempo-operator/pkg/statefile"
	"github.com/charmops/tempo-operator/pkg/types"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check deployment consistency for a state file",
	Long: `Evaluate every deployment precondition against the given state and
report all violations at once. Exits non-zero when the deployment is
inconsistent, which is the same condition under which the operator would
hold the workload down.

Examples:
  tempo-operator check -f state.yaml`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringP("file", "f", "", "State file to check (required)")
	_ = checkCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	filename, _ := cmd.Flags().GetString("file")

	source := &statefile.FileSource{Path: filename}
	in, err := source.Load()
	if err != nil {
		return err
	}

	violations := coordinator.Check(in.Facts)
	if len(violations) == 0 {
		fmt.Println("✓ Deployment is consistent")

		status := coordinator.EvaluateRoles(in.Facts.RoleCounts)
		if !status.Recommended {
			fmt.Println("  (below the recommended scale; the deployment will run degraded)")
		}
		return nil
	}

	for _, v := range violations {
		fmt.Printf("✗ %s\n", v)
	}
	return fmt.Errorf("deployment is inconsistent: %s", types.ViolationText(violations))
}
