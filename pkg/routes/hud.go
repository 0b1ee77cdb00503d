package routes

import (
	"github.com/Manu343726/bodypatch/pkg/il/instructions"
	"github.com/Manu343726/bodypatch/pkg/patch"
	"github.com/Manu343726/bodypatch/pkg/patch/edit"
	"github.com/Manu343726/bodypatch/pkg/patch/match"
)

// Called by the patched minimap right before drawing markers
var MinimapDrawHook = instructions.Method("ModHooks", "OnMinimapDraw")

// MinimapHook calls the mod minimap hook before the markers are drawn. The hook takes the labels of
// the markers call so the branch skipping the terrain layers still reaches it. A markers call
// already preceded by the hook is not matched, a markers call starting the body is.
func MinimapHook() patch.Route {
	return patch.Route{
		Name:    "minimap-hook",
		Feature: "minimap overlays",
		Rule: match.NewRule(
			match.At(0, match.CallTo("Hud", "DrawMarkers")),
			match.IfPresent(-1, match.Not(match.CallExact(MinimapDrawHook))),
		),
		Plan: edit.NewPlan(
			edit.InsertBeforeTakingLabels(0,
				instructions.MustInstruction(instructions.OpKind_Call, instructions.SymbolOperand(MinimapDrawHook)),
			),
		),
	}
}
