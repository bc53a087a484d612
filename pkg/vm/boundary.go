package vm

// StatusSink receives transient user-facing status text, distinct from the
// persisted activity log.
type StatusSink interface {
	// StatusStart announces a long-running operation ("Saving product...").
	StatusStart(msg string)
	// StatusReady announces a completed operation.
	StatusReady(msg string)
	// StatusWarning surfaces an advisory condition without blocking.
	StatusWarning(msg string)
	// StatusError surfaces a failed operation.
	StatusError(msg string)
}

// Confirmer gates destructive operations behind a yes/no prompt.
type Confirmer interface {
	Confirm(title, message, okLabel, cancelLabel string) bool
}

// ConfirmFunc adapts a function to the Confirmer interface.
type ConfirmFunc func(title, message, okLabel, cancelLabel string) bool

// Confirm implements Confirmer.
func (f ConfirmFunc) Confirm(title, message, okLabel, cancelLabel string) bool {
	return f(title, message, okLabel, cancelLabel)
}

// Navigator opens sibling views. List view-models use it for create-new:
// in-place when embedded, a separate view when the list is the primary
// surface.
type Navigator interface {
	Navigate(args any)
	OpenInNewView(args any)
}

// Logger records structured activity entries.
type Logger interface {
	Info(source, action, summary, detail string)
	Error(source, action, summary, detail string)
}

// Deps bundles the boundary services a view-model needs. Dependencies are
// passed explicitly at construction; there is no ambient locator. Nil
// fields fall back to no-op implementations (the confirmer defaults to
// accepting, so headless callers are not silently blocked).
type Deps struct {
	Status  StatusSink
	Confirm Confirmer
	Nav     Navigator
	Log     Logger
}

func (d Deps) normalized() Deps {
	if d.Status == nil {
		d.Status = nopStatus{}
	}
	if d.Confirm == nil {
		d.Confirm = ConfirmFunc(func(string, string, string, string) bool { return true })
	}
	if d.Nav == nil {
		d.Nav = nopNavigator{}
	}
	if d.Log == nil {
		d.Log = NopLogger{}
	}
	return d
}

type nopStatus struct{}

func (nopStatus) StatusStart(string)   {}
func (nopStatus) StatusReady(string)   {}
func (nopStatus) StatusWarning(string) {}
func (nopStatus) StatusError(string)   {}

type nopNavigator struct{}

func (nopNavigator) Navigate(any)      {}
func (nopNavigator) OpenInNewView(any) {}

// NopLogger discards all entries.
type NopLogger struct{}

// Info implements Logger.
func (NopLogger) Info(string, string, string, string) {}

// Error implements Logger.
func (NopLogger) Error(string, string, string, string) {}
