package form

import (
	"errors"
	"slices"
	"sync"
)

// Mode tells the form whether it edits an existing entity.
type Mode string

const (
	Create Mode = "create"
	Edit   Mode = "edit"
)

// ErrInvalid is matched by every ValidationError.
var ErrInvalid = errors.New("form is invalid")

// ValidationError lists the failing fields by form key.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return ErrInvalid.Error() + ": " + joinFields(e.Fields) }

func (e *ValidationError) Unwrap() error { return ErrInvalid }

// Form is the edit buffer of one entity dialog. It validates on submit
// and hands the value to its owner; it never calls services and never
// closes itself.
type Form[V any] struct {
	mu          sync.Mutex
	defaults    func() V
	value       V
	hasInitial  bool
	mode        Mode
	loading     bool
	touched     bool
	errs        map[string]string
	listeners   map[int]func(V)
	nextID      int
	onSaved     []func(V)
	onCancelled []func()
}

// New returns a form in create mode holding defaults().
func New[V any](defaults func() V) *Form[V] {
	return &Form[V]{
		defaults:  defaults,
		value:     defaults(),
		mode:      Create,
		listeners: map[int]func(V){},
	}
}

// SetInitial resets the buffer to exactly v, or to the defaults when v is
// nil. Touched state and errors are cleared.
func (f *Form[V]) SetInitial(v *V) {
	f.mu.Lock()
	if v != nil {
		f.value = *v
		f.hasInitial = true
	} else {
		f.value = f.defaults()
		f.hasInitial = false
	}
	f.touched = false
	f.errs = nil
	snap := f.value
	f.mu.Unlock()
	f.emit(snap)
}

// SetMode switches mode. Without an initial value the buffer is reset.
func (f *Form[V]) SetMode(m Mode) {
	f.mu.Lock()
	if f.mode == m {
		f.mu.Unlock()
		return
	}
	f.mode = m
	reset := !f.hasInitial
	f.mu.Unlock()
	if reset {
		f.SetInitial(nil)
	}
}

func (f *Form[V]) Mode() Mode {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.mode
}

// SetLoading mirrors the owner's saving flag.
func (f *Form[V]) SetLoading(b bool) {
	f.mu.Lock()
	f.loading = b
	f.mu.Unlock()
}

func (f *Form[V]) Loading() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loading
}

// Value returns a copy of the buffer.
func (f *Form[V]) Value() V {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value
}

// Patch edits the buffer and notifies subscribers.
func (f *Form[V]) Patch(fn func(*V)) {
	f.mu.Lock()
	fn(&f.value)
	snap := f.value
	f.mu.Unlock()
	f.emit(snap)
}

// PatchSilent edits the buffer without notifying subscribers.
func (f *Form[V]) PatchSilent(fn func(*V)) {
	f.mu.Lock()
	fn(&f.value)
	f.mu.Unlock()
}

// Subscribe registers fn for every emitted change and returns a function
// removing it.
func (f *Form[V]) Subscribe(fn func(V)) (unsubscribe func()) {
	f.mu.Lock()
	id := f.nextID
	f.nextID++
	f.listeners[id] = fn
	f.mu.Unlock()
	return func() {
		f.mu.Lock()
		delete(f.listeners, id)
		f.mu.Unlock()
	}
}

// OnSaved registers a hook receiving every valid submitted value.
func (f *Form[V]) OnSaved(fn func(V)) {
	f.mu.Lock()
	f.onSaved = append(f.onSaved, fn)
	f.mu.Unlock()
}

// OnCancelled registers a hook run on Cancel.
func (f *Form[V]) OnCancelled(fn func()) {
	f.mu.Lock()
	f.onCancelled = append(f.onCancelled, fn)
	f.mu.Unlock()
}

// Touched reports whether a failed submit marked the fields.
func (f *Form[V]) Touched() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.touched
}

// Errors returns the messages of the last failed submit by field key.
func (f *Form[V]) Errors() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]string, len(f.errs))
	for k, v := range f.errs {
		out[k] = v
	}
	return out
}

// Submit validates the buffer. An invalid buffer marks every field as
// touched and returns a *ValidationError; a valid one is passed to the
// OnSaved hooks and returned.
func (f *Form[V]) Submit() (V, error) {
	f.mu.Lock()
	v := f.value
	if errs := Validate(v); len(errs) > 0 {
		f.touched = true
		f.errs = errs
		f.mu.Unlock()
		var zero V
		return zero, &ValidationError{Fields: errs}
	}
	f.errs = nil
	hooks := slices.Clone(f.onSaved)
	f.mu.Unlock()
	for _, h := range hooks {
		h(v)
	}
	return v, nil
}

// Cancel signals the owner that the operator gave up.
func (f *Form[V]) Cancel() {
	f.mu.Lock()
	hooks := slices.Clone(f.onCancelled)
	f.mu.Unlock()
	for _, h := range hooks {
		h()
	}
}

func (f *Form[V]) emit(v V) {
	f.mu.Lock()
	ls := make([]func(V), 0, len(f.listeners))
	for _, l := range f.listeners {
		ls = append(ls, l)
	}
	f.mu.Unlock()
	for _, l := range ls {
		l(v)
	}
}
