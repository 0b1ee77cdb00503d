// Package routes holds the patch routes of the Deepdelve host.
//
// Each target method gets one or more routes, one per structural variant of its body seen across
// host versions. Routes are fixed at build time: a host update that changes a method body needs a
// new route, not a configuration change.
package routes

import (
	"github.com/Manu343726/bodypatch/pkg/il"
	"github.com/Manu343726/bodypatch/pkg/patch"
)

const (
	HostName    = "Deepdelve"
	HostVersion = "1.4.2"
)

// Target methods
var (
	GenerateColumn = il.Method("WorldGen", "GenerateColumn", "int32")
	SpawnHazards   = il.Method("SpawnDirector", "SpawnHazards", "int32")
	PickEncounter  = il.Method("SpawnDirector", "PickEncounter", "int32")
	MaxOxygen      = il.Method("Player", "get_MaxOxygen")
	DrawMinimap    = il.Method("Hud", "DrawMinimap")
	LanternUpdate  = il.Method("Lantern", "Update", "float32")
	AddItem        = il.Method("Inventory", "AddItem", "Item", "int32")
	Speed          = il.Method("Player", "get_Speed")
)

// Table returns the routes of every patched method, in patching order
func Table() patch.Table {
	return patch.Table{
		{Method: GenerateColumn, Routes: []patch.Route{TileRowLimit()}},
		{Method: SpawnHazards, Routes: []patch.Route{BoulderCap(), LegacyBoulderCap()}},
		{Method: PickEncounter, Routes: []patch.Route{NoCaveIn()}},
		{Method: MaxOxygen, Routes: []patch.Route{OxygenCapacity()}},
		{Method: DrawMinimap, Routes: []patch.Route{MinimapHook()}},
		{Method: LanternUpdate, Routes: []patch.Route{LanternFlicker()}},
	}
}
