package inspect

import (
	"github.com/Manu343726/bodypatch/cmd/common"
	"github.com/Manu343726/bodypatch/pkg/host"
	"github.com/Manu343726/bodypatch/pkg/logging"
	"github.com/Manu343726/bodypatch/pkg/patch"
	"github.com/Manu343726/bodypatch/pkg/routes"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/spf13/cobra"
)

var inspectSample bool

var InspectCmd = &cobra.Command{
	Use:   "inspect [snapshot.yaml]",
	Short: "Browse the outcome of patching a host snapshot",
	Long: `Patches a host snapshot in memory and opens an interactive view with, for each target method,
the original and patched bodies side by side, the result of each route and every diagnostic record
down to trace level.

Keys:
  up/down  select method
  tab      switch focus between the method list and the diagnostics
  q, esc   quit

Example:
  bodypatch inspect --sample`,
	Args: cobra.MaximumNArgs(1),
	Run:  runInspect,
}

func init() {
	InspectCmd.Flags().BoolVar(&inspectSample, "sample", false, "Inspect the built-in "+routes.HostName+" "+routes.HostVersion+" snapshot")
}

func runInspect(cmd *cobra.Command, args []string) {
	recorder := logging.NewRecorder(logging.LevelTrace)

	// The terminal belongs to the inspector: records only go to the recorder and the log file
	logger, err := common.Logger(nil, recorder)
	if err != nil {
		common.Fail("setting up logging", err, 2)
	}

	path := ""
	if len(args) > 0 {
		path = args[0]
	}

	_, h, err := common.LoadHost(path, inspectSample)
	if err != nil {
		common.Fail("loading host snapshot", err, 2)
	}

	table := routes.Table()
	m := &model{
		host:     h,
		table:    table,
		report:   host.PatchAll(h, h, patch.NewOrchestrator(logger), table, logger),
		recorder: recorder,
	}

	if err := newInspector(m).Run(); err != nil {
		common.Fail("running inspector", err, 2)
	}
}

func newInspector(m *model) *tview.Application {
	app := tview.NewApplication()

	original := tview.NewTextView().SetDynamicColors(true)
	original.SetBorder(true).SetTitle(" Original ")

	patched := tview.NewTextView().SetDynamicColors(true)
	patched.SetBorder(true).SetTitle(" Patched ")

	diagnostics := tview.NewTextView().SetDynamicColors(true).SetWrap(true)
	diagnostics.SetBorder(true).SetTitle(" Diagnostics ")

	methods := tview.NewList().ShowSecondaryText(true)
	methods.SetBorder(true).SetTitle(" Methods ")

	show := func(index int) {
		method := m.table[index].Method

		left, right, err := m.listings(method)
		if err != nil {
			left, right = "[red]"+tview.Escape(err.Error())+"[-]", ""
		}

		original.SetText(left).ScrollToBeginning()
		patched.SetText(right).ScrollToBeginning()
		diagnostics.SetText(m.diagnostics(method)).ScrollToBeginning()
	}

	for _, target := range m.table {
		methods.AddItem(target.Method.String(), m.status(target.Method), 0, nil)
	}
	methods.SetChangedFunc(func(index int, _ string, _ string, _ rune) {
		show(index)
	})

	bodies := tview.NewFlex().
		AddItem(original, 0, 1, false).
		AddItem(patched, 0, 1, false)
	right := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(bodies, 0, 3, false).
		AddItem(diagnostics, 0, 2, false)
	root := tview.NewFlex().
		AddItem(methods, 0, 1, true).
		AddItem(right, 0, 3, false)

	app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch {
		case event.Key() == tcell.KeyEscape, event.Rune() == 'q':
			app.Stop()
			return nil
		case event.Key() == tcell.KeyTab:
			if methods.HasFocus() {
				app.SetFocus(diagnostics)
			} else {
				app.SetFocus(methods)
			}
			return nil
		}
		return event
	})

	if len(m.table) > 0 {
		show(0)
	}

	return app.SetRoot(root, true).SetFocus(methods)
}
