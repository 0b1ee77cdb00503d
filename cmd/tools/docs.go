package tools

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/Manu343726/bodypatch/pkg/il/instructions"
	"github.com/Manu343726/bodypatch/pkg/report"
	"github.com/Manu343726/bodypatch/pkg/routes"
	"github.com/Manu343726/bodypatch/pkg/utils"
	"github.com/spf13/cobra"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

var supportedModules = map[string]func() string{
	"il.opkinds": func() string { return instructions.OpKinds.DocString() },
	"routes": func() string {
		var buffer bytes.Buffer
		report.Routes(&buffer, routes.Table())
		return buffer.String()
	},
}

func moduleNames() []string {
	names := maps.Keys(supportedModules)
	slices.Sort(names)
	return names
}

var docsCmd = &cobra.Command{
	Use:   "docs module",
	Short: "Show bodypatch documentation",
	Long: `Dumps the documentation of the specified bodypatch module.
By default the tool dumps the documentation to stdout, but it can be redirected to a file using the --output flag.

Supported modules:
` + strings.Join(utils.Map(moduleNames(), func(module string) string { return "  " + module }), "\n"),
	Args:      cobra.MatchAll(cobra.OnlyValidArgs, cobra.ExactArgs(1)),
	ValidArgs: moduleNames(),
	Run: func(cmd *cobra.Command, args []string) {
		doc := supportedModules[args[0]]()

		outputFile, _ := cmd.Flags().GetString("output")
		if outputFile == "" {
			fmt.Println(doc)
			return
		}

		file, err := os.Create(outputFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error creating file:", err)
			os.Exit(1)
		}
		defer file.Close()
		fmt.Fprintln(file, doc)
	},
}

func init() {
	ToolsCmd.AddCommand(docsCmd)
	docsCmd.Flags().StringP("output", "o", "", "Output file. If not specified, the documentation is dumped to stdout.")
}
