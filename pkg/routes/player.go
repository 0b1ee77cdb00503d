package routes

import (
	"github.com/Manu343726/bodypatch/pkg/il/instructions"
	"github.com/Manu343726/bodypatch/pkg/patch"
	"github.com/Manu343726/bodypatch/pkg/patch/edit"
	"github.com/Manu343726/bodypatch/pkg/patch/match"
)

// Oxygen capacity of a player without a dive suit
const OxygenTank = 250.0

// OxygenCapacity raises the base oxygen capacity. Hosts up to 1.2 use 120, later ones 100.
func OxygenCapacity() patch.Route {
	return patch.Route{
		Name:    "oxygen-capacity",
		Feature: "oxygen capacity",
		Rule: match.NewRule(
			match.At(0, match.LdcR(100, 120)),
			match.At(1, match.Op(instructions.OpKind_Ret)),
		),
		Plan: edit.NewPlan(
			edit.ReplaceOperand(0, instructions.FloatOperand(OxygenTank)),
		),
	}
}
