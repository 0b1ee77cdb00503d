// Package report renders patch results, route tables and method body diffs for humans.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/Manu343726/bodypatch/pkg/il"
	"github.com/Manu343726/bodypatch/pkg/patch"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/pmezard/go-difflib/difflib"
)

var (
	colorApplied    = color.New(color.FgGreen)
	colorNotMatched = color.New(color.FgYellow)
	colorFailed     = color.New(color.FgRed, color.Bold)
	colorHeader     = color.New(color.FgWhite, color.Bold, color.Underline)
	colorAdded      = color.New(color.FgGreen)
	colorRemoved    = color.New(color.FgRed)
	colorHunk       = color.New(color.FgCyan)
)

// Status returns the colored name of a status
func Status(status patch.Status) string {
	switch status {
	case patch.Status_Applied:
		return colorApplied.Sprint(status)
	case patch.Status_NotMatched:
		return colorNotMatched.Sprint(status)
	default:
		return colorFailed.Sprint(status)
	}
}

// Results writes one row per route result
func Results(w io.Writer, results []patch.Result) {
	style := table.StyleLight
	style.Format.Footer = text.FormatDefault

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(style)
	t.AppendHeader(table.Row{"Method", "Route", "Status", "Anchor", "Cause"})

	for _, result := range results {
		anchor := "-"
		if result.Anchor >= 0 {
			anchor = fmt.Sprint(result.Anchor)
		}
		t.AppendRow(table.Row{result.Method, result.Route, Status(result.Status), anchor, result.Cause()})
	}

	summary := patch.Summarize(results)
	t.AppendFooter(table.Row{"", fmt.Sprintf("%d routes", summary.Total()), Summary(summary), "", ""})
	t.Render()
}

// Summary returns a one line summary of route results
func Summary(summary patch.Summary) string {
	return fmt.Sprintf("%s applied, %s not matched, %s failed",
		colorApplied.Sprint(summary.Applied), colorNotMatched.Sprint(summary.NotMatched), colorFailed.Sprint(summary.Failed))
}

// Diagnostics writes the diagnostic message of every route that did not apply
func Diagnostics(w io.Writer, results []patch.Result) {
	for _, result := range results {
		if result.Status == patch.Status_Applied {
			continue
		}
		fmt.Fprintf(w, "%s %s\n", Status(result.Status), result.Diagnostic)
	}
}

// Diff returns a unified diff of two bodies of a method, or "" if they are equal
func Diff(method il.MethodID, original, patched il.Stream) (string, error) {
	if original.Equal(patched) {
		return "", nil
	}

	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(strings.Join(original.Lines(), "\n") + "\n"),
		B:        difflib.SplitLines(strings.Join(patched.Lines(), "\n") + "\n"),
		FromFile: method.String() + " (original)",
		ToFile:   method.String() + " (patched)",
		Context:  2,
	})
}

// WriteDiff writes a colored unified diff of two bodies of a method
func WriteDiff(w io.Writer, method il.MethodID, original, patched il.Stream) error {
	diff, err := Diff(method, original, patched)
	if err != nil {
		return err
	}

	for _, line := range difflib.SplitLines(diff) {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			colorHeader.Fprint(w, line)
		case strings.HasPrefix(line, "@@"):
			colorHunk.Fprint(w, line)
		case strings.HasPrefix(line, "+"):
			colorAdded.Fprint(w, line)
		case strings.HasPrefix(line, "-"):
			colorRemoved.Fprint(w, line)
		default:
			fmt.Fprint(w, line)
		}
	}

	return nil
}
