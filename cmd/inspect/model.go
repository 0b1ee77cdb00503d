package inspect

import (
	"fmt"
	"strings"

	"github.com/Manu343726/bodypatch/pkg/host"
	"github.com/Manu343726/bodypatch/pkg/il"
	"github.com/Manu343726/bodypatch/pkg/logging"
	"github.com/Manu343726/bodypatch/pkg/patch"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/rivo/tview"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Attributes shared by every record of a method, not worth repeating in the diagnostics pane
var commonAttrs = map[string]bool{"run": true, "method": true}

// model is what the inspector shows: the outcome of patching a host
type model struct {
	host     *host.MemoryHost
	table    patch.Table
	report   host.PatchReport
	recorder *logging.Recorder
}

func (m *model) results(method il.MethodID) []patch.Result {
	var results []patch.Result
	for _, result := range m.report.Results {
		if result.Method.Equal(method) {
			results = append(results, result)
		}
	}
	return results
}

func (m *model) reverted(method il.MethodID) bool {
	return slices.ContainsFunc(m.report.Reverted, method.Equal)
}

// status returns the one line summary shown below each method in the method list
func (m *model) status(method il.MethodID) string {
	summary := patch.Summarize(m.results(method))
	status := fmt.Sprintf("%d/%d applied", summary.Applied, summary.Total())

	if summary.NotMatched > 0 {
		status += fmt.Sprintf(", %d not matched", summary.NotMatched)
	}
	if summary.Failed > 0 {
		status += fmt.Sprintf(", %d failed", summary.Failed)
	}
	if m.reverted(method) {
		status += ", reverted"
	}

	return status
}

// listings returns the original and current bodies of a method as tview text, with removed
// instructions in red and inserted ones in green
func (m *model) listings(method il.MethodID) (string, string, error) {
	original, err := m.host.Body(method)
	if err != nil {
		return "", "", err
	}

	current, err := m.host.Current(method)
	if err != nil {
		return "", "", err
	}

	left, right := listings(original, current)
	return left, right, nil
}

func listings(original, current il.Stream) (string, string) {
	a, b := original.Lines(), current.Lines()
	var left, right strings.Builder

	for _, op := range difflib.NewMatcher(a, b).GetOpCodes() {
		leftColor, rightColor := "", ""

		switch op.Tag {
		case 'r':
			leftColor, rightColor = "red", "green"
		case 'd':
			leftColor = "red"
		case 'i':
			rightColor = "green"
		}

		for i := op.I1; i < op.I2; i++ {
			writeLine(&left, i, a[i], leftColor)
		}
		for j := op.J1; j < op.J2; j++ {
			writeLine(&right, j, b[j], rightColor)
		}
	}

	return left.String(), right.String()
}

func writeLine(builder *strings.Builder, index int, line, color string) {
	text := fmt.Sprintf("%4d: %s", index, tview.Escape(line))
	if color != "" {
		text = "[" + color + "]" + text + "[-]"
	}

	builder.WriteString(text)
	builder.WriteByte('\n')
}

// diagnostics returns the route results of a method followed by its log records, as tview text
func (m *model) diagnostics(method il.MethodID) string {
	var builder strings.Builder

	for _, result := range m.results(method) {
		color := "green"
		switch result.Status {
		case patch.Status_NotMatched:
			color = "yellow"
		case patch.Status_Failed:
			color = "red"
		}

		fmt.Fprintf(&builder, "[%s]%-10s[-] %s\n", color, result.Status, tview.Escape(result.Diagnostic))
	}

	if m.recorder == nil {
		return builder.String()
	}

	builder.WriteByte('\n')

	for _, entry := range m.recorder.Filter("method", method.String()) {
		builder.WriteString(tview.Escape(formatEntry(entry)))
		builder.WriteByte('\n')
	}

	return builder.String()
}

// formatEntry formats a log record as LEVEL message key=value..., with keys sorted
func formatEntry(entry logging.Entry) string {
	keys := maps.Keys(entry.Attrs)
	slices.Sort(keys)

	var builder strings.Builder
	fmt.Fprintf(&builder, "%-5s %s", logging.LevelName(entry.Level), entry.Message)

	for _, key := range keys {
		if commonAttrs[key] || key == "stack" {
			continue
		}

		fmt.Fprintf(&builder, " %s=%s", key, entry.Attr(key))
	}

	return builder.String()
}
