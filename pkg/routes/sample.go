package routes

import (
	"github.com/Manu343726/bodypatch/pkg/host"
	"github.com/Manu343726/bodypatch/pkg/il"
	"github.com/Manu343726/bodypatch/pkg/il/instructions"
)

// SampleSnapshot returns the original bodies of the patched methods in the current host version
func SampleSnapshot() *host.Snapshot {
	return host.NewSnapshot(HostName, HostVersion).
		Add(GenerateColumn, generateColumnBody()).
		Add(SpawnHazards, spawnHazardsBody()).
		Add(PickEncounter, pickEncounterBody()).
		Add(MaxOxygen, maxOxygenBody()).
		Add(DrawMinimap, drawMinimapBody()).
		Add(LanternUpdate, lanternUpdateBody())
}

func generateColumnBody() il.Stream {
	return il.NewBuilder().
		LdcI(0).
		Stloc(0).
		Label("L_row").Ldloc(0).
		Call(instructions.Method("WorldGen", "GetTileRow", "int32")).
		LdcI(10).
		Bge("L_done").
		Ldarg(1).
		Ldloc(0).
		Call(instructions.Method("WorldGen", "PlaceTile", "int32", "int32")).
		Ldloc(0).
		LdcI(1).
		Add().
		Stloc(0).
		Br("L_row").
		Label("L_done").Ret().
		MustBuild()
}

func spawnHazardsBody() il.Stream {
	return il.NewBuilder().
		Ldarg(0).
		Ldstr("Target").
		Callvirt(instructions.Method("SpawnDirector", "FindSpawnPoint", "string")).
		Stloc(0).
		Ldloc(0).
		Brfalse("L_none").
		Ldarg(1).
		LdcI(3).
		Blt("L_none").
		Ldstr("cc_Boulder").
		Ldloc(0).
		Call(instructions.Method("Hazard", "CountNear", "string", "Vector3")).
		LdcI(5).
		Bge("L_none").
		Ldstr("cc_Boulder").
		Ldloc(0).
		Call(instructions.Method("Hazard", "Spawn", "string", "Vector3")).
		Label("L_none").Ret().
		MustBuild()
}

func pickEncounterBody() il.Stream {
	start := instructions.Method("Encounter", "Start", "string")

	return il.NewBuilder().
		Ldarg(1).
		Switch("L_bats", "L_slime", "L_gems", "L_cavein", "L_ghost").
		Br("L_none").
		Label("L_bats").Ldstr("bats").Call(start).Ret().
		Label("L_slime").Ldstr("slime").Call(start).Ret().
		Label("L_gems").Ldstr("gems").Call(start).Ret().
		Label("L_cavein").Ldarg(0).
		Ldfld(instructions.Field("SpawnDirector", "caveIn")).
		Ldarg(1).
		Callvirt(instructions.Method("CaveIn", "Trigger", "int32")).
		Br("L_none").
		Label("L_ghost").Ldstr("ghost").Call(start).Ret().
		Label("L_none").Ret().
		MustBuild()
}

func maxOxygenBody() il.Stream {
	return il.NewBuilder().
		Ldarg(0).
		Ldfld(instructions.Field("Player", "hasDiveSuit")).
		Brtrue("L_suit").
		LdcR(100).
		Ret().
		Label("L_suit").LdcR(180).
		Ret().
		MustBuild()
}

func drawMinimapBody() il.Stream {
	return il.NewBuilder().
		Ldsfld(instructions.Field("Hud", "showTerrain")).
		Brfalse("L_markers").
		Call(instructions.Method("Hud", "DrawTerrain")).
		Call(instructions.Method("Hud", "DrawFog")).
		Label("L_markers").Call(instructions.Method("Hud", "DrawMarkers")).
		Ret().
		MustBuild()
}

func lanternUpdateBody() il.Stream {
	return il.NewBuilder().
		Ldarg(0).
		Ldfld(instructions.Field("Lantern", "baseIntensity")).
		LdcR(0.85).
		LdcR(1.15).
		Call(instructions.Method("Random", "Range", "float32", "float32")).
		Mul().
		Stloc(0).
		Ldarg(0).
		Ldfld(instructions.Field("Lantern", "light")).
		Ldloc(0).
		Callvirt(instructions.Method("Light", "set_Intensity", "float32")).
		Ret().
		MustBuild()
}
