// Package host is the boundary between the patch engine and the host runtime.
//
// The host supplies the original body of each target method and installs the rewritten one. The
// package also provides an in-memory host backed by YAML snapshots of method bodies, the driver
// running a patch table against a host, and call interposition for patches that only need to run
// code before or after an unmodified method.
package host

import (
	"errors"

	"github.com/Manu343726/bodypatch/pkg/il"
	"github.com/Manu343726/bodypatch/pkg/patch"
)

var (
	// ErrUnknownMethod indicates the host has no method with the given identity
	ErrUnknownMethod = errors.New("unknown method")
	// ErrHostInstallation indicates the host rejected a method body
	ErrHostInstallation = patch.ErrHostInstallation
)

// BodyProvider supplies the original instruction stream of host methods
type BodyProvider interface {
	Body(method il.MethodID) (il.Stream, error)
}

// Installer replaces the body of host methods
type Installer interface {
	Install(method il.MethodID, body il.Stream) error
}

// Host provides and installs method bodies
type Host interface {
	BodyProvider
	Installer
}
