package tools

import (
	"fmt"
	"os"

	"github.com/Manu343726/bodypatch/pkg/routes"
	"github.com/spf13/cobra"
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Write the built-in host snapshot",
	Long: `Writes the built-in ` + routes.HostName + ` ` + routes.HostVersion + ` host snapshot as YAML, to stdout or to the
file given with --output. The snapshot checked in as routes test data is generated this way.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		snapshot := routes.SampleSnapshot()

		outputFile, _ := cmd.Flags().GetString("output")
		if outputFile == "" {
			if err := snapshot.Write(os.Stdout); err != nil {
				fmt.Fprintln(os.Stderr, "Error writing snapshot:", err)
				os.Exit(1)
			}
			return
		}

		if err := snapshot.Save(outputFile); err != nil {
			fmt.Fprintln(os.Stderr, "Error writing snapshot:", err)
			os.Exit(1)
		}
	},
}

func init() {
	ToolsCmd.AddCommand(sampleCmd)
	sampleCmd.Flags().StringP("output", "o", "", "Output file. If not specified, the snapshot is dumped to stdout.")
}
