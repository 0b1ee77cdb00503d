package routes

import (
	"github.com/Manu343726/bodypatch/pkg/il/instructions"
	"github.com/Manu343726/bodypatch/pkg/patch"
	"github.com/Manu343726/bodypatch/pkg/patch/edit"
	"github.com/Manu343726/bodypatch/pkg/patch/match"
	"github.com/Manu343726/bodypatch/pkg/patch/scan"
)

// Boulders allowed near a spawn point before no more are spawned. The host allows 5
const BoulderCapacity = 11

// Case of the encounter switch in SpawnDirector::PickEncounter() starting a cave-in
const caveInCase = 3

// BoulderCap raises the number of boulders spawned near the target. The boulder count check is
// eleven instructions after the spawn point lookup:
//
//	+0  ldstr "Target"
//	+1  callvirt SpawnDirector::FindSpawnPoint
//	... (spawn point and depth checks)
//	+8  ldstr "cc_Boulder"
//	+9  ldloc
//	+10 call Hazard::CountNear
//	+11 ldc.i 5    <- BoulderCapacity
func BoulderCap() patch.Route {
	return patch.Route{
		Name:    "boulder-cap",
		Feature: "boulder cap",
		Rule: match.NewRule(
			match.At(0, match.Ldstr("Target")),
			match.At(8, match.Ldstr("cc_Boulder")),
			match.At(11, match.Ldc(5)),
		).WithShape(match.ShapeOfOps(1,
			instructions.OpKind_Callvirt,
			instructions.OpKind_Stloc,
			instructions.OpKind_Ldloc,
			instructions.OpKind_Brfalse,
			instructions.OpKind_Ldarg,
			instructions.OpKind_LdcI,
			instructions.OpKind_Blt,
		)),
		Plan: edit.NewPlan(
			edit.ReplaceOperand(11, instructions.IntOperand(BoulderCapacity)),
		),
	}
}

// LegacyBoulderCap is BoulderCap for hosts before 1.4, where the spawn point was looked up by the
// "HazardTarget" tag and there was no depth check
func LegacyBoulderCap() patch.Route {
	return patch.Route{
		Name:    "legacy-boulder-cap",
		Feature: "boulder cap",
		Rule: match.NewRule(
			match.At(0, match.Ldstr("HazardTarget")),
			match.At(5, match.Ldstr("cc_Boulder")),
			match.At(8, match.Ldc(5)),
		),
		Plan: edit.NewPlan(
			edit.ReplaceOperand(8, instructions.IntOperand(BoulderCapacity)),
		),
	}
}

// NoCaveIn disables cave-in encounters by removing the block the encounter switch jumps to for
// them. The case label moves to the instruction following the block, which leaves the method.
func NoCaveIn() patch.Route {
	return patch.Route{
		Name:     "no-cave-in",
		Feature:  "no cave-ins",
		Strategy: scan.SwitchCase(caveInCase),
		Rule: match.NewRule(
			match.At(0, match.Op(instructions.OpKind_Ldarg)),
			match.At(1, match.FieldRef("SpawnDirector", "caveIn")),
			match.At(3, match.CallTo("CaveIn", "Trigger")),
			match.At(4, match.Op(instructions.OpKind_Br)),
		),
		Plan: edit.NewPlan(
			edit.RemoveRange(0, 4),
		),
	}
}
