package patch

import (
	"fmt"
	"os"

	"github.com/Manu343726/bodypatch/cmd/common"
	"github.com/Manu343726/bodypatch/pkg/host"
	patching "github.com/Manu343726/bodypatch/pkg/patch"
	"github.com/Manu343726/bodypatch/pkg/report"
	"github.com/Manu343726/bodypatch/pkg/routes"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

var (
	patchOutput string
	patchSample bool
	patchDiff   bool
	patchStrict bool
)

var PatchCmd = &cobra.Command{
	Use:   "patch [snapshot.yaml]",
	Short: "Patch the method bodies of a host snapshot",
	Long: `Runs every patch route against the method bodies of a host snapshot and installs the patched
bodies that the host accepts.

Routes that do not match are reported and skipped: the host keeps working without the feature of
the route. The result of every route is printed as a table.

Example:
  bodypatch patch deepdelve-1.4.2.yaml -o deepdelve-1.4.2.patched.yaml
  bodypatch patch --sample --diff`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPatch,
}

func init() {
	PatchCmd.Flags().StringVarP(&patchOutput, "output", "o", "", "Write the patched snapshot to this file")
	PatchCmd.Flags().BoolVar(&patchSample, "sample", false, "Patch the built-in "+routes.HostName+" "+routes.HostVersion+" snapshot")
	PatchCmd.Flags().BoolVarP(&patchDiff, "diff", "d", false, "Print a diff of every patched method body")
	PatchCmd.Flags().BoolVar(&patchStrict, "strict", false, "Exit with code 3 if any route was not applied")
}

func runPatch(cmd *cobra.Command, args []string) {
	logger, err := common.Logger(os.Stderr)
	if err != nil {
		common.Fail("setting up logging", err, 2)
	}

	path := ""
	if len(args) > 0 {
		path = args[0]
	}

	snapshot, h, err := common.LoadHost(path, patchSample)
	if err != nil {
		common.Fail("loading host snapshot", err, 2)
	}

	orchestrator := patching.NewOrchestrator(logger)
	result := host.PatchAll(h, h, orchestrator, routes.Table(), logger)

	report.Results(os.Stdout, result.Results)
	report.Diagnostics(os.Stderr, result.Results)

	if patchDiff {
		for _, method := range result.Installed {
			original, _ := h.Body(method)
			patched, _ := h.Current(method)

			if err := report.WriteDiff(os.Stdout, method, original, patched); err != nil {
				common.Fail("diffing "+method.String(), err, 2)
			}
		}
	}

	if patchOutput != "" {
		patched, err := host.SnapshotOf(h, snapshot.Host, snapshot.Version)
		if err != nil {
			common.Fail("building patched snapshot", err, 2)
		}

		if err := patched.Save(patchOutput); err != nil {
			common.Fail("writing patched snapshot", err, 2)
		}

		fmt.Fprintf(os.Stderr, "Patched snapshot written to %s\n", patchOutput)
	}

	if summary := result.Summary(); patchStrict && summary.Applied != summary.Total() {
		atexit.Exit(3)
	}
}
