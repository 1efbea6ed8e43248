package stagehand

// Actor is a lifecycle listener: it receives the begin and end notification
// of every run dispatched by the Sequence that owns it.
//
// Implementations embed Action to get the name and context plumbing for free
// and only implement Begin and End. Begin/End are invoked from the worker
// goroutine that owns the Sequence; an actor shared across workers must be
// wrapped in a SharedActor.
type Actor interface {
	// Name returns the actor's name, unique within its owning list and
	// fixed for the actor's whole life.
	Name() string

	// Context returns the execution context the actor is currently bound to.
	Context() *Context

	// UpdateContext rebinds the actor to a new execution context.
	UpdateContext(ctx *Context)

	// ConfigureFiber rebinds the actor for use on a newly spawned worker.
	// Called once per worker before the first run is dispatched.
	ConfigureFiber(ctx *Context)

	// Begin is called once at the start of every run.
	Begin(r *Run) error

	// End is called once at the end of every run.
	End(r *Run) error
}

// Action is the embeddable base for actors: a name fixed at construction and
// a rebindable execution context. The zero value is unusable; construct with
// NewAction.
type Action struct {
	name string
	ctx  *Context
}

// NewAction creates an action base bound to ctx under the given name.
func NewAction(ctx *Context, name string) Action {
	return Action{name: name, ctx: ctx}
}

// Name returns the action's name. The name never changes after construction.
func (a *Action) Name() string { return a.name }

// Context returns the context the action is currently bound to.
func (a *Action) Context() *Context { return a.ctx }

// UpdateContext rebinds the action to a new context. May be called any number
// of times during the action's life.
func (a *Action) UpdateContext(ctx *Context) { a.ctx = ctx }

// ConfigureFiber rebinds the action to a new worker's context. The base
// behavior is identical to UpdateContext; composite actions override it to
// propagate the rebind.
func (a *Action) ConfigureFiber(ctx *Context) { a.ctx = ctx }
