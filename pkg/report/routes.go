package report

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/Manu343726/bodypatch/pkg/host"
	"github.com/Manu343726/bodypatch/pkg/il"
	"github.com/Manu343726/bodypatch/pkg/il/instructions"
	"github.com/Manu343726/bodypatch/pkg/patch"
	"github.com/Manu343726/bodypatch/pkg/patch/match"
	"github.com/Manu343726/bodypatch/pkg/patch/scan"
	"github.com/Manu343726/bodypatch/pkg/utils"
	"github.com/jedib0t/go-pretty/v6/table"
)

// Routes writes the routes of a table with their rules and edit plans
func Routes(w io.Writer, t patch.Table) {
	writer := table.NewWriter()
	writer.SetOutputMirror(w)
	writer.SetStyle(table.StyleLight)
	writer.AppendHeader(table.Row{"Method", "Route", "Feature", "Strategy", "Rule", "Edits"})

	for _, target := range t {
		for _, route := range target.Routes {
			strategy := "linear"
			if route.Strategy != nil {
				strategy = route.Strategy.String()
			}

			writer.AppendRow(table.Row{target.Method, route.Name, route.Feature, strategy, route.Rule, route.Plan})
		}
	}

	writer.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, AutoMerge: true},
		{Number: 5, WidthMax: 60},
		{Number: 6, WidthMax: 48},
	})
	writer.Render()
}

// Interpositions writes the hooks of a list of interpositions
func Interpositions(w io.Writer, interpositions []host.Interposition) {
	writer := table.NewWriter()
	writer.SetOutputMirror(w)
	writer.SetStyle(table.StyleLight)
	writer.AppendHeader(table.Row{"Method", "Hook", "Before", "After"})

	for _, interposition := range interpositions {
		writer.AppendRow(table.Row{
			interposition.Method,
			interposition.Hook.Name,
			interposition.Hook.Before != nil,
			interposition.Hook.After != nil,
		})
	}

	writer.Render()
}

// RouteShape is the shape fingerprint of the region a route inspects, computed on a method body
type RouteShape struct {
	Method il.MethodID
	Route  string
	Anchor int
	Shape  match.Shape
	Ops    []instructions.OpKind
}

// Shapes computes the shape of the full region of each route on the bodies of a host, so
// maintainers can pin them with match.ShapeFromHex(). Routes whose anchor is not found are skipped
func Shapes(provider host.BodyProvider, t patch.Table) ([]RouteShape, error) {
	var shapes []RouteShape

	for _, target := range t {
		body, err := provider.Body(target.Method)
		if err != nil {
			return nil, err
		}

		for _, route := range target.Routes {
			strategy := route.Strategy
			if strategy == nil {
				strategy = scan.First()
			}

			outcome := strategy.Find(body, route.Rule)
			if !outcome.Found {
				continue
			}

			from, to := route.Rule.Span()
			shape, ok := match.ShapeOf(body, outcome.Anchor, from, to-from+1)
			if !ok {
				continue
			}

			ops := utils.Iota(shape.Count, func(i int) instructions.OpKind {
				return body.At(outcome.Anchor + from + i).Op
			})

			shapes = append(shapes, RouteShape{Method: target.Method, Route: route.Name, Anchor: outcome.Anchor, Shape: shape, Ops: ops})
		}
	}

	return shapes, nil
}

// WriteShapes writes route shapes as a table
func WriteShapes(w io.Writer, shapes []RouteShape) {
	writer := table.NewWriter()
	writer.SetOutputMirror(w)
	writer.SetStyle(table.StyleLight)
	writer.AppendHeader(table.Row{"Method", "Route", "Anchor", "Offsets", "Operations", "Digest"})

	for _, shape := range shapes {
		writer.AppendRow(table.Row{
			shape.Method,
			shape.Route,
			shape.Anchor,
			fmt.Sprintf("%+d..%+d", shape.Shape.From, shape.Shape.From+shape.Shape.Count-1),
			utils.FormatSlice(shape.Ops, " "),
			hex.EncodeToString(shape.Shape.Digest[:]),
		})
	}

	writer.Render()
}
