package host

import (
	"errors"
	"log/slog"
	"runtime/debug"

	"github.com/Manu343726/bodypatch/pkg/il"
	"github.com/Manu343726/bodypatch/pkg/logging"
	"github.com/Manu343726/bodypatch/pkg/utils"
)

var ErrInvalidHook = errors.New("invalid hook")

// Call is an interposed invocation of a host method. Before hooks may change the arguments or set
// the result, after hooks see and may change the result.
type Call struct {
	Method   il.MethodID
	Receiver any
	Args     []any
	Result   any
}

// Arg returns the i-th argument of the call
func (c *Call) Arg(i int) any {
	return c.Args[i]
}

// Hook runs code before and/or after an unmodified host method
type Hook struct {
	Name string
	// Runs before the method. Returning true skips the original method, leaving call.Result as the
	// result of the call.
	Before func(call *Call) (skipOriginal bool)
	// Runs after the method, or after the before hooks if the original was skipped
	After func(call *Call)
}

// Interposition binds a hook to a method
type Interposition struct {
	Method il.MethodID
	Hook   Hook
}

// MethodBody is the callable implementation of a host method
type MethodBody func(receiver any, args []any) any

// Interposer keeps the hooks registered for each method and wraps method implementations with them
type Interposer struct {
	logger *slog.Logger
	hooks  map[string][]Hook
}

// NewInterposer creates an interposer with no hooks. A nil logger discards diagnostics
func NewInterposer(logger *slog.Logger) *Interposer {
	if logger == nil {
		logger = logging.Discard()
	}

	return &Interposer{
		logger: logger,
		hooks:  make(map[string][]Hook),
	}
}

// Register adds a hook to a method. Hooks run in registration order
func (i *Interposer) Register(method il.MethodID, hook Hook) error {
	if hook.Name == "" {
		return utils.MakeError(ErrInvalidHook, "hook on %v has no name", method)
	}
	if hook.Before == nil && hook.After == nil {
		return utils.MakeError(ErrInvalidHook, "hook %q on %v has neither before nor after code", hook.Name, method)
	}

	i.hooks[method.Key()] = append(i.hooks[method.Key()], hook)
	return nil
}

// RegisterAll registers a list of interpositions, stopping at the first invalid one
func (i *Interposer) RegisterAll(interpositions []Interposition) error {
	for _, interposition := range interpositions {
		if err := i.Register(interposition.Method, interposition.Hook); err != nil {
			return err
		}
	}

	return nil
}

// Hooks returns the hooks registered for a method
func (i *Interposer) Hooks(method il.MethodID) []Hook {
	return i.hooks[method.Key()]
}

// Wrap returns an implementation of the method running its hooks around the original one. A
// panicking hook is logged and otherwise ignored, so a broken hook never breaks the host call.
func (i *Interposer) Wrap(method il.MethodID, original MethodBody) MethodBody {
	hooks := i.Hooks(method)
	if len(hooks) == 0 {
		return original
	}

	log := i.logger.With(slog.String("method", method.String()))

	return func(receiver any, args []any) any {
		call := &Call{
			Method:   method,
			Receiver: receiver,
			Args:     args,
		}

		skip := false
		for _, hook := range hooks {
			if hook.Before != nil && i.before(log, hook, call) {
				skip = true
			}
		}

		if !skip {
			call.Result = original(call.Receiver, call.Args)
		}

		for _, hook := range hooks {
			if hook.After != nil {
				i.after(log, hook, call)
			}
		}

		return call.Result
	}
}

func (i *Interposer) before(log *slog.Logger, hook Hook, call *Call) (skip bool) {
	defer func() {
		if fault := recover(); fault != nil {
			log.Error("before hook panicked, ignoring it", slog.String("hook", hook.Name),
				slog.Any("fault", fault), slog.String("stack", string(debug.Stack())))
			skip = false
		}
	}()

	return hook.Before(call)
}

func (i *Interposer) after(log *slog.Logger, hook Hook, call *Call) {
	result := call.Result

	defer func() {
		if fault := recover(); fault != nil {
			log.Error("after hook panicked, ignoring it", slog.String("hook", hook.Name),
				slog.Any("fault", fault), slog.String("stack", string(debug.Stack())))
			call.Result = result
		}
	}()

	hook.After(call)
}
