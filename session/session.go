// Package session drives one drawing session: it owns the stroke surface,
// the downsampled raster and the submission state, and serializes every
// change to them on a single goroutine.
package session

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/nfnt/resize"
	"github.com/pkg/errors"

	"github.com/juruen/digitpad/classifier"
	"github.com/juruen/digitpad/downsample"
	"github.com/juruen/digitpad/log"
	"github.com/juruen/digitpad/raster"
	"github.com/juruen/digitpad/sample"
	"github.com/juruen/digitpad/surface"
)

var (
	ErrWaiting     = errors.New("a prediction is still pending")
	ErrCoolingDown = errors.New("submit is cooling down")
	ErrClosed      = errors.New("session is closed")
)

const subscriberBuffer = 32

type Options struct {
	Width        int
	Height       int
	StrokeWidth  float64
	Filter       resize.InterpolationFunction
	Cooldown     int
	Tick         time.Duration
	DisplayDelay time.Duration
}

func DefaultOptions() Options {
	return Options{
		Width:        surface.DefaultWidth,
		Height:       surface.DefaultHeight,
		StrokeWidth:  surface.DefaultStrokeWidth,
		Filter:       resize.Bilinear,
		Cooldown:     5,
		Tick:         time.Second,
		DisplayDelay: 250 * time.Millisecond,
	}
}

// Submission is an accepted submit request.
type Submission struct {
	ID     string
	Sample sample.Sample
	At     time.Time
}

// Result is the outcome of the latest resolved submission.
type Result struct {
	ID       string        `json:"id"`
	Digit    int           `json:"digit"`
	Err      string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration"`
}

type Session struct {
	opts       Options
	classifier classifier.Classifier
	surface    *surface.Surface
	down       *downsample.Downsampler

	// owned by the Run goroutine
	state       State
	last        *Result
	subscribers map[int]chan Display
	nextSub     int

	ctx  context.Context
	ops  chan func()
	done chan struct{}
}

func New(opts Options, c classifier.Classifier) *Session {
	return &Session{
		opts:        opts,
		classifier:  c,
		surface:     surface.New(opts.Width, opts.Height, opts.StrokeWidth),
		down:        downsample.New(opts.Filter),
		state:       initialState(),
		subscribers: make(map[int]chan Display),
		ops:         make(chan func()),
		done:        make(chan struct{}),
	}
}

// Run processes session events until ctx is done. Every other method
// blocks until Run is processing.
func (s *Session) Run(ctx context.Context) error {
	s.ctx = ctx
	defer close(s.done)

	for {
		select {
		case <-ctx.Done():
			for _, ch := range s.subscribers {
				close(ch)
			}
			return ctx.Err()
		case op := <-s.ops:
			op()
		}
	}
}

// do runs op on the session goroutine and waits for it.
func (s *Session) do(op func()) error {
	finished := make(chan struct{})
	select {
	case s.ops <- func() { op(); close(finished) }:
	case <-s.done:
		return ErrClosed
	}
	<-finished
	return nil
}

// post queues op without waiting. It reports false once the session is closed.
func (s *Session) post(op func()) bool {
	select {
	case s.ops <- op:
		return true
	case <-s.done:
		return false
	}
}

func (s *Session) BeginStroke(p surface.Point) error {
	return s.do(func() { s.surface.BeginStroke(p) })
}

func (s *Session) ExtendStroke(p surface.Point, drawing bool) error {
	return s.do(func() { s.surface.ExtendStroke(p, drawing) })
}

// EndStroke refreshes the downsampled raster. Call it on pointer up and
// when the pointer leaves the surface.
func (s *Session) EndStroke() error {
	return s.do(func() { s.down.Resample(s.surface.Raster()) })
}

// Clear wipes both rasters. The submission state is left alone.
func (s *Session) Clear() error {
	return s.do(func() {
		s.surface.Clear()
		s.down.Clear()
		log.Trace.Println("canvas cleared")
	})
}

func (s *Session) State() (State, error) {
	var st State
	err := s.do(func() { st = s.state })
	return st, err
}

func (s *Session) Display() (Display, error) {
	st, err := s.State()
	return DisplayOf(st), err
}

// LastResult returns the outcome of the latest resolved submission, or nil.
func (s *Session) LastResult() (*Result, error) {
	var res *Result
	err := s.do(func() {
		if s.last != nil {
			r := *s.last
			res = &r
		}
	})
	return res, err
}

// Sample encodes the current downsampled raster.
func (s *Session) Sample() (sample.Sample, error) {
	var (
		smp    sample.Sample
		encErr error
	)
	if err := s.do(func() { smp, encErr = sample.Encode(s.down.Raster()) }); err != nil {
		return nil, err
	}
	return smp, encErr
}

// Preview returns a snapshot of the downsampled raster.
func (s *Session) Preview() (*raster.Raster, error) {
	var r *raster.Raster
	err := s.do(func() { r = s.down.Preview() })
	return r, err
}

// Canvas returns a snapshot of the full resolution raster.
func (s *Session) Canvas() (*raster.Raster, error) {
	var r *raster.Raster
	err := s.do(func() { r = s.surface.Raster().Clone() })
	return r, err
}

// Subscribe returns a channel receiving the display after every state
// change. Slow subscribers lose updates. The channel is closed by cancel or
// when the session stops.
func (s *Session) Subscribe() (<-chan Display, func(), error) {
	ch := make(chan Display, subscriberBuffer)
	var id int
	err := s.do(func() {
		id = s.nextSub
		s.nextSub++
		s.subscribers[id] = ch
	})
	if err != nil {
		return nil, nil, err
	}

	cancel := func() {
		s.do(func() {
			if _, ok := s.subscribers[id]; ok {
				delete(s.subscribers, id)
				close(ch)
			}
		})
	}
	return ch, cancel, nil
}

func (s *Session) publish() {
	d := DisplayOf(s.state)
	for _, ch := range s.subscribers {
		select {
		case ch <- d:
		default:
			log.Warning.Println("display subscriber is full, dropping update")
		}
	}
}

// Submit encodes the current drawing and dispatches it. It fails with
// ErrWaiting or ErrCoolingDown, without dispatching, unless the session
// is idle.
func (s *Session) Submit() (*Submission, error) {
	var (
		sub       *Submission
		submitErr error
	)
	if err := s.do(func() { sub, submitErr = s.submit() }); err != nil {
		return nil, err
	}
	return sub, submitErr
}

func (s *Session) submit() (*Submission, error) {
	if s.state.Waiting {
		return nil, ErrWaiting
	}
	if s.state.Cooldown > 0 {
		return nil, ErrCoolingDown
	}

	smp, err := sample.Encode(s.down.Raster())
	if err != nil {
		return nil, err
	}

	sub := &Submission{ID: uuid.New().String(), Sample: smp, At: time.Now()}
	s.state.Waiting = true
	s.state.Cooldown = s.opts.Cooldown
	log.Trace.Printf("submission %s: dispatching, empty=%v", sub.ID, smp.Empty())
	s.publish()

	go s.dispatch(sub)
	go s.countdown(sub.ID, s.opts.Cooldown)
	return sub, nil
}

// countdown posts one tick per interval until the cooldown reaches 0. It
// does not depend on the request outcome.
func (s *Session) countdown(id string, from int) {
	ticker := time.NewTicker(s.opts.Tick)
	defer ticker.Stop()

	for remaining := from; remaining > 0; {
		select {
		case <-ticker.C:
			remaining--
			left := remaining
			if !s.post(func() { s.tick(id, left) }) {
				return
			}
		case <-s.done:
			return
		}
	}
}

func (s *Session) tick(id string, remaining int) {
	s.state.Cooldown = remaining
	log.Trace.Printf("submission %s: cooldown %d", id, remaining)
	s.publish()
}

func (s *Session) dispatch(sub *Submission) {
	digit, err := s.classifier.Classify(s.ctx, sub.Sample)
	if err != nil {
		s.post(func() { s.fail(sub, err) })
		return
	}

	// keep "waiting" on screen for a moment when the service is very fast
	timer := time.NewTimer(s.opts.DisplayDelay)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-s.done:
		return
	}

	s.post(func() { s.resolve(sub, digit) })
}

func (s *Session) resolve(sub *Submission, digit int) {
	if digit < 0 || digit > 9 {
		s.fail(sub, errors.Wrapf(classifier.ErrMalformedResponse, "digit %d out of range", digit))
		return
	}

	s.state.Guess = digit
	s.state.Waiting = false
	s.last = &Result{ID: sub.ID, Digit: digit, Duration: time.Since(sub.At)}
	log.Trace.Printf("submission %s: guessed %d", sub.ID, digit)
	s.publish()
}

// fail returns the session to its previous guess so the drawing can be
// submitted again once the cooldown ends.
func (s *Session) fail(sub *Submission, err error) {
	log.Error.Printf("submission %s failed: %v", sub.ID, err)

	s.state.Waiting = false
	s.last = &Result{ID: sub.ID, Digit: NoGuess, Err: err.Error(), Duration: time.Since(sub.At)}
	s.publish()
}
