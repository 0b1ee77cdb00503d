package routes

import (
	"github.com/Manu343726/bodypatch/pkg/il/instructions"
	"github.com/Manu343726/bodypatch/pkg/patch"
	"github.com/Manu343726/bodypatch/pkg/patch/edit"
	"github.com/Manu343726/bodypatch/pkg/patch/match"
)

// Tile rows generated per world column. The host generates 10
const TileRows = 20

// TileRowLimit raises the number of tile rows generated per world column.
//
//	call WorldGen::GetTileRow
//	ldc.i 10    <- TileRows
//	bge
func TileRowLimit() patch.Route {
	return patch.Route{
		Name:    "tile-row-limit",
		Feature: "deeper worlds",
		Rule: match.NewRule(
			match.At(0, match.CallTo("WorldGen", "GetTileRow")),
			match.At(1, match.Ldc(10)),
			match.At(2, match.Op(instructions.OpKind_Bge)),
		),
		Plan: edit.NewPlan(
			edit.ReplaceOperand(1, instructions.IntOperand(TileRows)),
		),
	}
}
