// Package screen drives one entity's list screen: the CFG grid, row
// selection, the create/edit dialog and deletion.
package screen

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"go.uber.org/zap"

	"github.com/faciam-dev/atelie/internal/entity"
	"github.com/faciam-dev/atelie/internal/form"
	"github.com/faciam-dev/atelie/pkg/cfg"
)

var (
	ErrNoSelection = errors.New("no row selected")
	ErrInvalidID   = errors.New("selected row id is not numeric")
)

// Resource is the CRUD endpoint a screen edits through.
type Resource[VM, In any] interface {
	Get(ctx context.Context, id int64) (VM, error)
	Create(ctx context.Context, in In) (VM, error)
	Update(ctx context.Context, id int64, in In) error
	Delete(ctx context.Context, id int64) error
}

// State is a snapshot of a screen.
type State[VM, FV any] struct {
	Columns       []cfg.Column
	Rows          []cfg.GridRow
	SelectedRowID string
	Selected      *VM
	DialogOpen    bool
	DialogMode    form.Mode
	FormInitial   *FV
	Saving        bool
	Loading       bool
}

// Option configures a Screen.
type Option func(*options)

type options struct {
	log *zap.SugaredLogger
}

// WithLogger sets the logger used for failures the screen absorbs.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// Screen is safe for concurrent use.
type Screen[VM, FV, In any] struct {
	desc entity.Descriptor[VM, FV, In]
	dir  cfg.Directory
	res  Resource[VM, In]
	form *form.Form[FV]
	log  *zap.SugaredLogger

	mu            sync.Mutex
	columns       []cfg.Column
	rows          []cfg.GridRow
	selectedRowID string
	selected      *VM
	dialogOpen    bool
	mode          form.Mode
	formInitial   *FV
	saving        bool
	inflight      int
	gen           uint64
	fetches       sync.WaitGroup
}

// New builds the screen of desc. Grid pages come from q, entities from res.
func New[VM, FV, In any](desc entity.Descriptor[VM, FV, In], q cfg.Querier, res Resource[VM, In], opts ...Option) *Screen[VM, FV, In] {
	o := options{log: zap.NewNop().Sugar()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Screen[VM, FV, In]{
		desc: desc,
		dir:  desc.Meta.Directory(q),
		res:  res,
		form: form.New(desc.Defaults),
		log:  o.log.With("entity", desc.Meta.Key),
		mode: form.Create,
	}
}

// Form returns the dialog's form.
func (s *Screen[VM, FV, In]) Form() *form.Form[FV] { return s.form }

// Meta returns the entity the screen edits.
func (s *Screen[VM, FV, In]) Meta() entity.Meta { return s.desc.Meta }

// State returns a copy of the current state.
func (s *Screen[VM, FV, In]) State() State[VM, FV] {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := State[VM, FV]{
		Columns:       append([]cfg.Column(nil), s.columns...),
		Rows:          append([]cfg.GridRow(nil), s.rows...),
		SelectedRowID: s.selectedRowID,
		DialogOpen:    s.dialogOpen,
		DialogMode:    s.mode,
		Saving:        s.saving,
		Loading:       s.inflight > 0,
	}
	if s.selected != nil {
		vm := *s.selected
		st.Selected = &vm
	}
	if s.formInitial != nil {
		fv := *s.formInitial
		st.FormInitial = &fv
	}
	return st
}

// Load fetches a grid page and replaces columns and rows, clearing the
// selection. When loads overlap only the last one started is applied.
func (s *Screen[VM, FV, In]) Load(ctx context.Context, page int) error {
	return s.LoadQuery(ctx, page, nil)
}

// LoadQuery is Load with filters and ordering.
func (s *Screen[VM, FV, In]) LoadQuery(ctx context.Context, page int, extra *cfg.QueryInput) error {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.inflight++
	s.mu.Unlock()

	res, err := s.dir.Load(ctx, page, 0, extra)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight--
	if err != nil {
		s.log.Errorw("load grid failed", "identifier", s.dir.Identifier, "page", page, "error", err)
		return fmt.Errorf("load %s: %w", s.dir.Identifier, err)
	}
	if gen != s.gen {
		s.log.Debugw("stale grid page discarded", "identifier", s.dir.Identifier, "page", page)
		return nil
	}
	s.columns = cfg.Columns(res.Fields)
	s.rows = res.GridRows()
	s.selectedRowID = ""
	s.selected = nil
	return nil
}

// SelectRow selects a row and fetches its entity in the background.
// Selecting the current row does nothing; a non-numeric id selects the
// row without fetching.
func (s *Screen[VM, FV, In]) SelectRow(ctx context.Context, rowID string) {
	s.mu.Lock()
	if s.selectedRowID == rowID {
		s.mu.Unlock()
		return
	}
	s.selectedRowID = rowID
	s.selected = nil
	s.mu.Unlock()

	id, ok := numericID(rowID)
	if !ok {
		return
	}
	s.fetches.Add(1)
	go func() {
		defer s.fetches.Done()
		vm, err := s.res.Get(ctx, id)
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.selectedRowID != rowID {
			return
		}
		if err != nil {
			s.log.Errorw("fetch selected entity failed", "id", id, "error", err)
			return
		}
		s.selected = &vm
	}()
}

// Wait blocks until background entity fetches finish.
func (s *Screen[VM, FV, In]) Wait() { s.fetches.Wait() }

// OpenCreate opens the dialog on a blank form.
func (s *Screen[VM, FV, In]) OpenCreate() {
	s.mu.Lock()
	s.formInitial = nil
	s.mode = form.Create
	s.dialogOpen = true
	s.mu.Unlock()
	s.form.SetInitial(nil)
	s.form.SetMode(form.Create)
}

// OpenEdit opens the dialog on the selected entity. It reports false,
// leaving the dialog closed, until the entity has been fetched.
func (s *Screen[VM, FV, In]) OpenEdit() bool {
	s.mu.Lock()
	if s.selectedRowID == "" || s.selected == nil {
		s.mu.Unlock()
		return false
	}
	fv := s.desc.ToForm(*s.selected)
	s.formInitial = &fv
	s.mode = form.Edit
	s.dialogOpen = true
	s.mu.Unlock()
	s.form.SetInitial(&fv)
	s.form.SetMode(form.Edit)
	return true
}

// CloseDialog closes the dialog and forgets its initial value.
func (s *Screen[VM, FV, In]) CloseDialog() {
	s.mu.Lock()
	s.dialogOpen = false
	s.formInitial = nil
	s.mu.Unlock()
}

// SubmitForm validates the dialog's form and saves it.
func (s *Screen[VM, FV, In]) SubmitForm(ctx context.Context) error {
	fv, err := s.form.Submit()
	if err != nil {
		return err
	}
	return s.Submit(ctx, fv)
}

// Submit saves a form value: an update when editing a fetched entity, a
// create otherwise. On success the dialog closes and the grid reloads
// from the first page; a failed save keeps the dialog open.
func (s *Screen[VM, FV, In]) Submit(ctx context.Context, fv FV) error {
	in := s.desc.ToInput(fv)
	s.mu.Lock()
	editing := s.mode == form.Edit && s.selected != nil
	var id int64
	if editing {
		id = s.desc.ID(*s.selected)
	}
	s.saving = true
	s.mu.Unlock()
	s.form.SetLoading(true)

	var err error
	if editing {
		err = s.res.Update(ctx, id, in)
	} else {
		_, err = s.res.Create(ctx, in)
	}

	s.form.SetLoading(false)
	if err != nil {
		s.mu.Lock()
		s.saving = false
		s.mu.Unlock()
		s.log.Errorw("save failed", "editing", editing, "id", id, "error", err)
		return fmt.Errorf("save %s: %w", s.desc.Meta.Key, err)
	}
	s.CloseDialog()
	reload := s.Load(ctx, 1)
	s.mu.Lock()
	s.saving = false
	s.mu.Unlock()
	return reload
}

// Delete removes the selected entity and reloads the grid. On failure the
// stale grid is kept.
func (s *Screen[VM, FV, In]) Delete(ctx context.Context) error {
	s.mu.Lock()
	rowID := s.selectedRowID
	if rowID == "" {
		s.mu.Unlock()
		return ErrNoSelection
	}
	id, ok := numericID(rowID)
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrInvalidID, rowID)
	}
	s.inflight++
	s.mu.Unlock()

	err := s.res.Delete(ctx, id)

	s.mu.Lock()
	s.inflight--
	if err != nil {
		s.mu.Unlock()
		s.log.Errorw("delete failed", "id", id, "error", err)
		return fmt.Errorf("delete %s %d: %w", s.desc.Meta.Key, id, err)
	}
	s.selected = nil
	s.selectedRowID = ""
	s.mu.Unlock()
	return s.Load(ctx, 1)
}

// numericID reads a row id the way the grid's numeric coercion does. Only
// finite integral values address an entity.
func numericID(rowID string) (int64, bool) {
	f := cfg.ParseNumber(rowID)
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || math.Abs(f) > 1<<53 {
		return 0, false
	}
	return int64(f), true
}
