package section

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Git-GoR/FoundryVTT-Sequencer/utils"
)

// Execute runs the section: it evaluates the play condition, waits out the start delay, then invokes the run hook
// once per repetition with a random gap between repetitions. A repetition is awaited when the section is async, or
// when it is the last one and the section waits until finished; every other repetition is started and left running.
// Execute returns once all repetitions have been started, after any awaited one has finished.
//
// Cancelling ctx aborts a pending delay. Errors from awaited repetitions are returned; errors from the others are
// logged.
func (s *Section) Execute(ctx context.Context) error {
	s.mu.Lock()
	if s.executed {
		s.mu.Unlock()
		return ErrAlreadyExecuted
	}
	s.executed = true
	s.mu.Unlock()
	defer close(s.done)

	play, err := s.playIf.Evaluate(ctx)
	if err != nil {
		return fmt.Errorf("section %s: evaluating play condition: %w", s.name, err)
	}
	if !play {
		s.log.Debug("Play condition not met, skipping section")
		return nil
	}

	s.prepareOffsetCache()

	initialDelay := s.randomDelay(s.delayMin, s.delayMax)
	s.mu.Lock()
	s.computedInitialDelay = initialDelay
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{"delay": initialDelay, "repetitions": s.repetitions}).Debug("Executing section")
	if err := s.sleep(ctx, initialDelay); err != nil {
		return err
	}

	for i := 0; i < s.repetitions; i++ {
		last := i == s.repetitions-1

		var repeatDelay time.Duration
		if !last {
			repeatDelay = s.randomDelay(s.repeatDelayMin, s.repeatDelayMax)
		}

		s.mu.Lock()
		s.currentRepetition = i
		s.computedRepeatDelay = repeatDelay
		await := s.shouldAwaitLocked()
		rep := Repetition{Section: s, Index: i, Count: s.repetitions, Offset: s.offsetLocked(i)}
		s.mu.Unlock()

		log := s.log.WithFields(logrus.Fields{"repetition": i, "await": await})
		log.Debug("Running repetition")

		if await {
			if err := s.runner.Run(ctx, rep); err != nil {
				return fmt.Errorf("section %s: repetition %d: %w", s.name, i, err)
			}
		} else {
			s.pending.Add(1)
			go func() {
				defer s.pending.Done()
				if err := s.runner.Run(ctx, rep); err != nil {
					log.WithError(err).Error("Repetition failed")
				}
			}()
		}

		if !last {
			if err := s.sleep(ctx, repeatDelay); err != nil {
				return err
			}
		}
	}

	return nil
}

// prepareOffsetCache asks the runner for one offset per repetition before anything plays.
func (s *Section) prepareOffsetCache() {
	cacher, ok := s.runner.(OffsetCacher)
	if !ok {
		return
	}

	offsets := make([]Offset, 0, s.repetitions)
	for i := 0; i < s.repetitions; i++ {
		offsets = append(offsets, cacher.CacheOffset(s, i))
	}

	s.mu.Lock()
	s.offsets = offsets
	s.mu.Unlock()
}

func (s *Section) offsetLocked(i int) Offset {
	if i < len(s.offsets) {
		return s.offsets[i]
	}
	return Offset{}
}

// randomDelay samples uniformly from [minDelay, maxDelay). Equal bounds still draw from the random source. Draws
// beyond the range of time.Duration saturate.
func (s *Section) randomDelay(minDelay, maxDelay time.Duration) time.Duration {
	d := utils.RandomFloatBetweenWith(s.rand, float64(minDelay), float64(maxDelay))
	switch {
	case d >= math.MaxInt64:
		return time.Duration(math.MaxInt64)
	case d <= math.MinInt64:
		return time.Duration(math.MinInt64)
	}
	return time.Duration(d)
}

// RandomFloat draws a value in [minVal, maxVal) from the section's random source, so a runner's own randomization
// follows the section's seed. Only call it from CacheOffset, which runs on the executing goroutine.
func (s *Section) RandomFloat(minVal, maxVal float64) float64 {
	return utils.RandomFloatBetweenWith(s.rand, minVal, maxVal)
}

// sleep suspends for d on the section's clock. Non-positive durations don't suspend.
func (s *Section) sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	t := s.clock.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C():
		return nil
	}
}
