// Package sequence owns an ordered list of sections and plays them back.
package sequence

import (
	"context"
	stderrors "errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/gruntwork-io/go-commons/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"k8s.io/utils/clock"

	"github.com/Git-GoR/FoundryVTT-Sequencer/config"
	"github.com/Git-GoR/FoundryVTT-Sequencer/section"
)

// Sequence stores a list of sections and can play them back. It is also the error channel its sections report
// invalid arguments to.
type Sequence struct {
	Name string

	config   *config.Config
	clock    clock.Clock
	rand     *rand.Rand
	log      *logrus.Entry
	sections []*section.Section

	mu   sync.Mutex
	errs []error
}

// Option configures a Sequence.
type Option func(*Sequence)

// WithClock replaces the real clock for the sequence and every section it creates.
func WithClock(c clock.Clock) Option {
	return func(seq *Sequence) {
		seq.clock = c
	}
}

// New creates an empty sequence.
func New(name string, cfg *config.Config, opts ...Option) *Sequence {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	seq := &Sequence{
		Name:   name,
		config: cfg,
		clock:  clock.RealClock{},
		rand:   rand.New(rand.NewSource(seed)),
		log:    cfg.Logger.WithField("sequence", name),
	}
	for _, opt := range opts {
		opt(seq)
	}

	seq.log.Debugf("Sequence created with name: %s", name)
	return seq
}

// AddSection appends a new section driven by runner and returns it for configuration.
func (seq *Sequence) AddSection(runner section.Runner) *section.Section {
	s := section.New(runner,
		section.WithName(fmt.Sprintf("%s[%d]", seq.Name, len(seq.sections))),
		section.WithReporter(seq),
		section.WithClock(seq.clock),
		// each section gets its own source so concurrently executing sections don't share one
		section.WithRand(seq.NewRand()),
		section.WithLogger(seq.log),
		section.WithDefaultEase(seq.config.DefaultEase),
	)
	seq.sections = append(seq.sections, s)
	return s
}

// NewRand returns a random source seeded from the sequence's own, for runners that randomize outside of a section
// such as a playback.Picker. Call it from the goroutine building the sequence.
func (seq *Sequence) NewRand() *rand.Rand {
	return rand.New(rand.NewSource(seq.rand.Int63()))
}

// Sections returns the sections in play order.
func (seq *Sequence) Sections() []*section.Section {
	return append([]*section.Section(nil), seq.sections...)
}

// ReportInvalidArgument records a builder error from one of the sequence's sections.
func (seq *Sequence) ReportInvalidArgument(s *section.Section, method, message string) {
	seq.log.WithFields(logrus.Fields{"section": s.Name(), "method": method}).Warn(message)

	seq.mu.Lock()
	defer seq.mu.Unlock()
	seq.errs = append(seq.errs, &section.InvalidArgumentError{Section: s.Name(), Method: method, Message: message})
}

// Errors returns every invalid argument reported so far.
func (seq *Sequence) Errors() []error {
	seq.mu.Lock()
	defer seq.mu.Unlock()
	return append([]error(nil), seq.errs...)
}

// Play executes the sections in order. A section that is async or waits until finished is awaited, followed by its
// wait-until-finished delay; any other section is started and the next one follows immediately. Play returns once
// every section and every repetition has finished.
func (seq *Sequence) Play(ctx context.Context) error {
	if errs := seq.Errors(); seq.config.StrictArguments && len(errs) > 0 {
		return errors.WithStackTrace(fmt.Errorf("sequence %s: %w", seq.Name, stderrors.Join(errs...)))
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	seq.log.WithField("num_sections", len(seq.sections)).Info("Playing sequence")
	started := seq.clock.Now()

	var background errgroup.Group
	err := seq.playSections(ctx, &background)
	if err != nil {
		cancel()
	}
	if bgErr := background.Wait(); err == nil {
		err = bgErr
	}
	for _, s := range seq.sections {
		s.Wait()
	}

	if err != nil {
		seq.log.WithError(err).Error("Sequence failed")
		return err
	}
	seq.log.WithField("duration", seq.clock.Since(started)).Info("Sequence finished")
	return nil
}

func (seq *Sequence) playSections(ctx context.Context, background *errgroup.Group) error {
	for _, s := range seq.sections {
		s := s
		if !s.ShouldAwait() {
			background.Go(func() error {
				return s.Execute(ctx)
			})
			continue
		}

		if err := s.Execute(ctx); err != nil {
			return err
		}
		seq.log.WithFields(logrus.Fields{"section": s.Name(), "effective_wait": s.EffectiveWaitTime()}).Debug("Section finished")

		if err := seq.sleep(ctx, s.WaitUntilFinishedDelay()); err != nil {
			return err
		}
	}
	return nil
}

func (seq *Sequence) sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	t := seq.clock.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C():
		return nil
	}
}
