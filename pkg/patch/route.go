// Package patch drives structural patches of host method bodies.
//
// A Route pairs a pattern rule with an edit plan anchored at the rule's match. An Orchestrator runs
// the routes of one method in order against the current stream, isolates the failure of each route,
// reports every outcome as a Result and always returns a usable stream.
package patch

import (
	"errors"

	"github.com/Manu343726/bodypatch/pkg/il"
	"github.com/Manu343726/bodypatch/pkg/patch/edit"
	"github.com/Manu343726/bodypatch/pkg/patch/match"
	"github.com/Manu343726/bodypatch/pkg/patch/scan"
	"github.com/Manu343726/bodypatch/pkg/utils"
)

var (
	// ErrInvalidRoute indicates a route definition is malformed
	ErrInvalidRoute = errors.New("invalid route")
	// ErrInternalFault indicates an unexpected failure while running a route
	ErrInternalFault = errors.New("internal fault")
	// ErrHostInstallation indicates the host rejected a patched method body
	ErrHostInstallation = errors.New("host installation failure")
)

// Route is one independently anchored structural variant of a target method
type Route struct {
	Name string
	// Behavior that is lost if the route does not apply. Shown in diagnostics
	Feature  string
	Strategy scan.Strategy // Defaults to scan.First()
	Rule     match.Rule
	Plan     edit.Plan
}

// Region returns the offsets the route may edit: the span of its rule
func (r Route) Region() edit.Region {
	return edit.NewRegion(r.Rule.MinOffset(), r.Rule.MaxOffset())
}

func (r Route) strategy() scan.Strategy {
	if r.Strategy == nil {
		return scan.First()
	}
	return r.Strategy
}

// Validate checks the route definition is complete and its plan stays within its region
func (r Route) Validate() error {
	if r.Name == "" {
		return utils.MakeError(ErrInvalidRoute, "route has no name")
	}
	if len(r.Rule.Checks) == 0 {
		return utils.MakeError(ErrInvalidRoute, "route %q has no checks", r.Name)
	}
	if len(r.Plan) == 0 {
		return utils.MakeError(ErrInvalidRoute, "route %q has no edits", r.Name)
	}
	if err := r.Plan.Validate(r.Region()); err != nil {
		return utils.MakeError(ErrInvalidRoute, "route %q: %v", r.Name, err)
	}
	return nil
}

// MethodPatch groups the routes targeting one method
type MethodPatch struct {
	Method il.MethodID
	Routes []Route
}

// Table is the full set of structural patches, fixed at build time
type Table []MethodPatch

// TotalRoutes returns the number of routes of all methods
func (t Table) TotalRoutes() int {
	return utils.Accumulate(t, func(p MethodPatch) int { return len(p.Routes) })
}

// Find returns the routes of the given method
func (t Table) Find(method il.MethodID) (MethodPatch, bool) {
	for _, p := range t {
		if p.Method.Equal(method) {
			return p, true
		}
	}
	return MethodPatch{}, false
}

// Validate validates all routes of the table, also checking route names are unique per method
func (t Table) Validate() error {
	var errs []error

	for _, p := range t {
		names := make(map[string]bool, len(p.Routes))

		for _, route := range p.Routes {
			if err := route.Validate(); err != nil {
				errs = append(errs, utils.MakeError(err, "method %v", p.Method))
			}
			if names[route.Name] {
				errs = append(errs, utils.MakeError(ErrInvalidRoute, "method %v has more than one route named %q", p.Method, route.Name))
			}
			names[route.Name] = true
		}
	}

	return errors.Join(errs...)
}
