// Package quote keeps a quote form's total in sync with the backend's
// cost suggestion while the operator edits service, piece and weight.
package quote

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/faciam-dev/atelie/internal/entity"
	"github.com/faciam-dev/atelie/internal/form"
	"github.com/faciam-dev/atelie/pkg/cfg"
	"github.com/faciam-dev/atelie/pkg/metrics"
	"github.com/faciam-dev/atelie/pkg/models"
)

// DefaultDebounce is the quiet period before a form change is priced.
const DefaultDebounce = 250 * time.Millisecond

// Coster prices a quote. sdk/client.Client implements it.
type Coster interface {
	CalcularCusto(ctx context.Context, in models.CalculoInput) (models.CalculoResultado, error)
}

// Option configures a Calculator.
type Option func(*Calculator)

func WithDebounce(d time.Duration) Option {
	return func(c *Calculator) { c.debounce = d }
}

func WithLogger(l *zap.SugaredLogger) Option {
	return func(c *Calculator) {
		if l != nil {
			c.log = l
		}
	}
}

// Calculator watches one quote form. Start it with Start and release it
// with Stop.
type Calculator struct {
	form     *form.Form[entity.OrcamentoForm]
	api      Coster
	log      *zap.SugaredLogger
	debounce time.Duration

	mailbox     chan entity.OrcamentoForm
	calculating atomic.Bool
	cancel      context.CancelFunc
	done        chan struct{}
	unsubscribe func()
}

type outcome struct {
	res models.CalculoResultado
	err error
}

// Start prices the form's current value and then every change to it
// until ctx is cancelled or Stop is called.
func Start(ctx context.Context, f *form.Form[entity.OrcamentoForm], api Coster, opts ...Option) *Calculator {
	c := &Calculator{
		form:     f,
		api:      api,
		log:      zap.NewNop().Sugar(),
		debounce: DefaultDebounce,
		mailbox:  make(chan entity.OrcamentoForm, 1),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	ctx, c.cancel = context.WithCancel(ctx)
	c.unsubscribe = f.Subscribe(c.push)
	c.push(f.Value())
	go c.run(ctx)
	return c
}

// Calculating reports whether a backend call is in flight.
func (c *Calculator) Calculating() bool { return c.calculating.Load() }

// Stop tears the calculator down. After it returns the form is never
// written and the backend never called.
func (c *Calculator) Stop() {
	c.unsubscribe()
	c.cancel()
	<-c.done
}

// push keeps only the newest pending value and never blocks.
func (c *Calculator) push(v entity.OrcamentoForm) {
	for {
		select {
		case c.mailbox <- v:
			return
		default:
		}
		select {
		case <-c.mailbox:
		default:
		}
	}
}

func (c *Calculator) run(ctx context.Context) {
	defer close(c.done)
	var (
		latest     entity.OrcamentoForm
		quiet      *time.Timer
		quietC     <-chan time.Time
		last       *models.CalculoInput
		priced     bool
		callCancel context.CancelFunc = func() {}
		resultC    <-chan outcome
	)
	defer func() {
		c.unsubscribe()
		callCancel()
		c.calculating.Store(false)
		if quiet != nil {
			quiet.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case v := <-c.mailbox:
			latest = v
			if quiet == nil {
				quiet = time.NewTimer(c.debounce)
			} else {
				if !quiet.Stop() {
					select {
					case <-quiet.C:
					default:
					}
				}
				quiet.Reset(c.debounce)
			}
			quietC = quiet.C

		case <-quietC:
			quietC = nil
			req := latest.CalculoInput()
			if priced && sameRequest(last, req) {
				continue
			}
			priced, last = true, req

			callCancel()
			resultC = nil
			if req == nil {
				c.calculating.Store(false)
				c.setTotal(nil)
				continue
			}
			resultC, callCancel = c.call(ctx, *req)

		case r := <-resultC:
			resultC = nil
			c.calculating.Store(false)
			if r.err != nil {
				if ctx.Err() != nil {
					return
				}
				metrics.CostCalculations.WithLabelValues("error").Inc()
				c.log.Errorw("quote cost calculation failed", "error", r.err)
				c.setTotal(nil)
				continue
			}
			metrics.CostCalculations.WithLabelValues("ok").Inc()
			total := r.res.ValorTotal
			c.setTotal(&total)
		}
	}
}

// call prices in on its own goroutine. Cancelling the returned func
// abandons the call.
func (c *Calculator) call(ctx context.Context, in models.CalculoInput) (<-chan outcome, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)
	out := make(chan outcome, 1)
	c.calculating.Store(true)
	go func() {
		res, err := c.api.CalcularCusto(ctx, in)
		out <- outcome{res: res, err: err}
	}()
	return out, cancel
}

// setTotal writes the total without notifying subscribers, so it never
// feeds back into the pipeline.
func (c *Calculator) setTotal(total *float64) {
	c.form.PatchSilent(func(v *entity.OrcamentoForm) {
		if total == nil {
			v.TotalValue = ""
			return
		}
		v.TotalValue = cfg.FormatNumber(*total)
	})
}

func sameRequest(a, b *models.CalculoInput) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.ServicoID == b.ServicoID && sameNumber(a.ProdutoID, b.ProdutoID) && sameNumber(a.PesoGramas, b.PesoGramas)
}

func sameNumber(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
