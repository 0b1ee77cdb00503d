package patch

import (
	"os"

	"github.com/Manu343726/bodypatch/cmd/common"
	"github.com/Manu343726/bodypatch/pkg/report"
	"github.com/Manu343726/bodypatch/pkg/routes"
	"github.com/spf13/cobra"
)

var (
	routesShapes   bool
	routesSnapshot string
)

var RoutesCmd = &cobra.Command{
	Use:   "routes",
	Short: "List the available patch routes",
	Long: `Lists every patch route with its target method, the rule locating its anchor and the edits it
makes, followed by the method interpositions installed at runtime.

With --shapes, the shape fingerprint of the region inspected by each route is computed on a host
snapshot (the built-in sample by default), so it can be pinned in the route rule.

Example:
  bodypatch routes
  bodypatch routes --shapes --snapshot deepdelve-1.4.2.yaml`,
	Args: cobra.NoArgs,
	Run:  runRoutes,
}

func init() {
	RoutesCmd.Flags().BoolVarP(&routesShapes, "shapes", "s", false, "Print the shape fingerprints of each route region")
	RoutesCmd.Flags().StringVar(&routesSnapshot, "snapshot", "", "Host snapshot used to compute shapes (default: built-in sample)")
}

func runRoutes(cmd *cobra.Command, args []string) {
	table := routes.Table()

	if !routesShapes {
		report.Routes(os.Stdout, table)
		report.Interpositions(os.Stdout, routes.Interpositions())
		return
	}

	_, h, err := common.LoadHost(routesSnapshot, routesSnapshot == "")
	if err != nil {
		common.Fail("loading host snapshot", err, 2)
	}

	shapes, err := report.Shapes(h, table)
	if err != nil {
		common.Fail("computing shapes", err, 2)
	}

	report.WriteShapes(os.Stdout, shapes)
}
