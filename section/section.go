// Package section implements the timing state machine every effect or sound section of a sequence runs through:
// the play condition, a randomized start delay, repetitions with randomized gaps, and the rules deciding which
// repetitions the caller waits for.
package section

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"k8s.io/utils/clock"

	"github.com/Git-GoR/FoundryVTT-Sequencer/effect"
	"github.com/Git-GoR/FoundryVTT-Sequencer/logger"
)

// Runner performs the side effect of a single repetition, such as playing an effect or a sound. Run is awaited
// only when the section decides the repetition must finish before it moves on.
type Runner interface {
	Run(ctx context.Context, rep Repetition) error
}

// RunnerFunc adapts a plain function to Runner.
type RunnerFunc func(ctx context.Context, rep Repetition) error

func (f RunnerFunc) Run(ctx context.Context, rep Repetition) error {
	return f(ctx, rep)
}

// OffsetCacher is an optional interface for runners that precompute a positional offset for every repetition
// before the first one plays.
type OffsetCacher interface {
	CacheOffset(s *Section, index int) Offset
}

// Offset is a positional offset in canvas units.
type Offset struct {
	X float64
	Y float64
}

// Repetition is handed to the Runner for each run.
type Repetition struct {
	Section *Section

	// 0-based index of this repetition.
	Index int

	// Total number of repetitions in the execution.
	Count int

	// Offset cached for this repetition, zero if the runner doesn't cache offsets.
	Offset Offset
}

// IsLast reports whether this is the final repetition.
func (r Repetition) IsLast() bool {
	return r.Index == r.Count-1
}

// Settings is a snapshot of the playback parameters a runner needs.
type Settings struct {
	// Duration overrides the natural length of the effect or sound when non-nil.
	Duration *time.Duration

	// Volume is between 0.0 and 1.0 when non-nil.
	Volume *float64

	FadeIn       *effect.Fade
	FadeOut      *effect.Fade
	FadeInAudio  *effect.Fade
	FadeOutAudio *effect.Fade

	// Mustache is the substitution context for the file path.
	Mustache map[string]interface{}
}

// Section is one independently scheduled unit of a sequence. It is configured through the builder methods, each of
// which returns the section so calls can be chained, and then executed exactly once.
type Section struct {
	name        string
	runner      Runner
	reporter    ErrorReporter
	clock       clock.Clock
	rand        *rand.Rand
	log         *logrus.Entry
	defaultEase string

	playIf                 Condition
	async                  bool
	waitUntilFinished      bool
	waitUntilFinishedDelay time.Duration
	repetitions            int
	repeatDelayMin         time.Duration
	repeatDelayMax         time.Duration
	delayMin               time.Duration
	delayMax               time.Duration
	settings               Settings

	mu                   sync.Mutex
	executed             bool
	currentRepetition    int
	computedInitialDelay time.Duration
	computedRepeatDelay  time.Duration
	offsets              []Offset
	errs                 []error

	// un-awaited repetitions still running
	pending sync.WaitGroup

	// closed when Execute returns
	done chan struct{}
}

// Option configures a Section at construction time.
type Option func(*Section)

// WithName sets the name used in logs and errors.
func WithName(name string) Option {
	return func(s *Section) {
		s.name = name
	}
}

// WithReporter routes invalid arguments to the section's owner.
func WithReporter(r ErrorReporter) Option {
	return func(s *Section) {
		s.reporter = r
	}
}

// WithClock replaces the real clock, mostly for tests.
func WithClock(c clock.Clock) Option {
	return func(s *Section) {
		s.clock = c
	}
}

// WithRand makes the random delays draw from r. r must not be shared with a section executing concurrently.
func WithRand(r *rand.Rand) Option {
	return func(s *Section) {
		s.rand = r
	}
}

// WithLogger replaces the project logger.
func WithLogger(l *logrus.Entry) Option {
	return func(s *Section) {
		s.log = l
	}
}

// WithDefaultEase sets the ease used by fades that don't name one.
func WithDefaultEase(name string) Option {
	return func(s *Section) {
		s.defaultEase = name
	}
}

// New creates a Section that plays once, immediately, with runner as its run hook. A nil runner does nothing.
func New(runner Runner, opts ...Option) *Section {
	s := &Section{
		name:        "section",
		runner:      runner,
		clock:       clock.RealClock{},
		defaultEase: effect.DefaultEase,
		playIf:      Literal(true),
		repetitions: 1,
		done:        make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.runner == nil {
		s.runner = RunnerFunc(func(context.Context, Repetition) error { return nil })
	}
	if s.log == nil {
		s.log = logrus.NewEntry(logger.GetProjectLogger())
	}
	s.log = s.log.WithField("section", s.name)
	return s
}

// Name returns the section's name.
func (s *Section) Name() string {
	return s.name
}

// Clock returns the clock the section schedules on.
func (s *Section) Clock() clock.Clock {
	return s.clock
}

// Errors returns every invalid argument reported by the builder methods so far.
func (s *Section) Errors() []error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]error(nil), s.errs...)
}

// Settings returns a copy of the playback parameters.
func (s *Section) Settings() Settings {
	out := s.settings
	if s.settings.Mustache != nil {
		out.Mustache = make(map[string]interface{}, len(s.settings.Mustache))
		for k, v := range s.settings.Mustache {
			out.Mustache[k] = v
		}
	}
	return out
}

// Repetitions returns how many times the run hook is invoked.
func (s *Section) Repetitions() int {
	return s.repetitions
}

// RepeatDelayRange returns the bounds of the delay between repetitions.
func (s *Section) RepeatDelayRange() (time.Duration, time.Duration) {
	return s.repeatDelayMin, s.repeatDelayMax
}

// DelayRange returns the bounds of the delay before the first repetition.
func (s *Section) DelayRange() (time.Duration, time.Duration) {
	return s.delayMin, s.delayMax
}

// IsAsync reports whether every repetition is awaited before the next starts.
func (s *Section) IsAsync() bool {
	return s.async
}

// WaitsUntilFinished reports whether the section's completion gates whatever follows it.
func (s *Section) WaitsUntilFinished() bool {
	return s.waitUntilFinished
}

// WaitUntilFinishedDelay returns the extra delay requested by WaitUntilFinished.
func (s *Section) WaitUntilFinishedDelay() time.Duration {
	return s.waitUntilFinishedDelay
}

// ShouldAwait reports whether an owner should wait for Execute to return before moving on.
func (s *Section) ShouldAwait() bool {
	return s.async || s.waitUntilFinished
}

// CurrentRepetition returns the index of the repetition in progress, or the last one once execution has finished.
func (s *Section) CurrentRepetition() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentRepetition
}

// ComputedInitialDelay returns the start delay sampled for this execution.
func (s *Section) ComputedInitialDelay() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.computedInitialDelay
}

// ComputedRepeatDelay returns the delay sampled after the current repetition. It is always zero for the last one.
func (s *Section) ComputedRepeatDelay() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.computedRepeatDelay
}

// Offsets returns the offsets cached for this execution, one per repetition.
func (s *Section) Offsets() []Offset {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Offset(nil), s.offsets...)
}

// EffectiveWaitTime is how long an owner that doesn't await Execute should hold before moving past this section.
func (s *Section) EffectiveWaitTime() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	var wait time.Duration
	if s.waitAnywayLocked() {
		wait = s.waitUntilFinishedDelay
	}
	return wait + s.computedInitialDelay + s.computedRepeatDelay
}

// Wait blocks until Execute has returned and every repetition it started without awaiting has finished. It may be
// called while Execute is running. It returns at once if Execute hasn't been called yet.
func (s *Section) Wait() {
	s.mu.Lock()
	executed := s.executed
	s.mu.Unlock()
	if !executed {
		return
	}

	<-s.done
	s.pending.Wait()
}

func (s *Section) waitAnywayLocked() bool {
	return (s.async || s.waitUntilFinished) && (s.repetitions == 1 || s.currentRepetition == s.repetitions-1)
}

func (s *Section) shouldAwaitLocked() bool {
	return s.async || s.waitAnywayLocked()
}

func (s *Section) reportInvalidArgument(method, message string) {
	err := &InvalidArgumentError{Section: s.name, Method: method, Message: message}

	s.mu.Lock()
	s.errs = append(s.errs, err)
	s.mu.Unlock()

	if s.reporter != nil {
		s.reporter.ReportInvalidArgument(s, method, message)
		return
	}
	s.log.WithField("method", method).Warn(message)
}
