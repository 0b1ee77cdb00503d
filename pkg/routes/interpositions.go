package routes

import (
	"github.com/Manu343726/bodypatch/pkg/host"
)

const (
	// Largest item stack the inventory accepts
	MaxStack = 999
	// Player speed multiplier
	SpeedMultiplier = 1.25
)

// Interpositions returns the patches that only run code around unmodified host methods
func Interpositions() []host.Interposition {
	return []host.Interposition{
		{Method: AddItem, Hook: StackClamp()},
		{Method: Speed, Hook: SpeedBoost()},
	}
}

// StackClamp limits the amount of items added at once to MaxStack
func StackClamp() host.Hook {
	return host.Hook{
		Name: "stack-clamp",
		Before: func(call *host.Call) bool {
			if amount, ok := call.Arg(1).(int); ok && amount > MaxStack {
				call.Args[1] = MaxStack
			}
			return false
		},
	}
}

// SpeedBoost scales the player speed by SpeedMultiplier
func SpeedBoost() host.Hook {
	return host.Hook{
		Name: "speed-boost",
		After: func(call *host.Call) {
			if speed, ok := call.Result.(float64); ok {
				call.Result = speed * SpeedMultiplier
			}
		},
	}
}
