package patch

import (
	"errors"
	"fmt"

	"github.com/Manu343726/bodypatch/pkg/il"
	"github.com/Manu343726/bodypatch/pkg/patch/edit"
	"github.com/Manu343726/bodypatch/pkg/patch/match"
)

// Status of a route after an orchestrator run
type Status uint

const (
	// The route anchor was not found. The feature keeps the host behavior
	Status_NotMatched Status = iota
	// The route matched and all its edits were applied
	Status_Applied
	// The route matched but its edits could not be applied and were rolled back
	Status_Failed
)

func (s Status) String() string {
	switch s {
	case Status_NotMatched:
		return "NotMatched"
	case Status_Applied:
		return "Applied"
	case Status_Failed:
		return "Failed"
	}

	panic("unreachable")
}

// Result is the outcome of one route in one orchestrator run
type Result struct {
	Route      string
	Method     il.MethodID
	Status     Status
	Matched    bool
	Applied    bool
	Anchor     int // -1 if not matched
	Err        error
	Diagnostic string
}

// Cause returns a short classification of the failure, following the error taxonomy
func (r Result) Cause() string {
	switch {
	case r.Err == nil:
		return ""
	case errors.Is(r.Err, match.ErrOperandTypeMismatch):
		return "OperandTypeMismatch"
	case errors.Is(r.Err, match.ErrPatternNotFound):
		return "PatternNotFound"
	case errors.Is(r.Err, edit.ErrApplyConflict):
		return "ApplyConflict"
	case errors.Is(r.Err, ErrHostInstallation):
		return "HostInstallationFailure"
	case errors.Is(r.Err, ErrInternalFault):
		return "InternalFault"
	case errors.Is(r.Err, ErrInvalidRoute):
		return "InvalidRoute"
	}
	return "EditRejected"
}

func (r Result) String() string {
	if r.Err != nil {
		return fmt.Sprintf("%v/%v: %v (%v)", r.Method, r.Route, r.Status, r.Cause())
	}
	return fmt.Sprintf("%v/%v: %v at %d", r.Method, r.Route, r.Status, r.Anchor)
}

func notMatched(method il.MethodID, route Route, err error) Result {
	return Result{
		Route:  route.Name,
		Method: method,
		Status: Status_NotMatched,
		Anchor: -1,
		Err:    err,
		Diagnostic: fmt.Sprintf("route %q found no anchor in %v: %v. %s keeps the original host behavior; "+
			"the method body probably changed in a host update, compare it with the route rule", route.Name, method, err, feature(route)),
	}
}

func failed(method il.MethodID, route Route, anchor int, err error) Result {
	return Result{
		Route:   route.Name,
		Method:  method,
		Status:  Status_Failed,
		Matched: anchor >= 0,
		Anchor:  anchor,
		Err:     err,
		Diagnostic: fmt.Sprintf("route %q could not be applied to %v: %v. Its edits were rolled back and %s keeps the original host behavior",
			route.Name, method, err, feature(route)),
	}
}

func applied(method il.MethodID, route Route, anchor int) Result {
	return Result{
		Route:      route.Name,
		Method:     method,
		Status:     Status_Applied,
		Matched:    true,
		Applied:    true,
		Anchor:     anchor,
		Diagnostic: fmt.Sprintf("route %q applied to %v at instruction %d", route.Name, method, anchor),
	}
}

func feature(route Route) string {
	if route.Feature == "" {
		return "the patched feature"
	}
	return route.Feature
}

// RevertedByHost returns a copy of an applied result marked as failed because the host rejected the
// patched body of its method
func (r Result) RevertedByHost(err error) Result {
	if r.Status != Status_Applied {
		return r
	}

	r.Status = Status_Failed
	r.Applied = false
	r.Err = err
	r.Diagnostic = fmt.Sprintf("route %q was applied to %v but the host rejected the patched body: %v. The original body was kept",
		r.Route, r.Method, err)
	return r
}

// Summary counts results by status
type Summary struct {
	Applied    int
	NotMatched int
	Failed     int
}

// Summarize counts the given results by status
func Summarize(results []Result) Summary {
	var s Summary
	for _, r := range results {
		switch r.Status {
		case Status_Applied:
			s.Applied++
		case Status_NotMatched:
			s.NotMatched++
		case Status_Failed:
			s.Failed++
		}
	}
	return s
}

// Total returns the number of summarized results
func (s Summary) Total() int {
	return s.Applied + s.NotMatched + s.Failed
}
