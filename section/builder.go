package section

import (
	"fmt"
	"math"
	"time"

	"github.com/Git-GoR/FoundryVTT-Sequencer/effect"
	"github.com/Git-GoR/FoundryVTT-Sequencer/utils"
)

// FadeOptions tunes a fade. Zero values fall back to the section's default ease and no delay.
type FadeOptions struct {
	Ease  string
	Delay time.Duration
}

// Repeats causes the effect or sound to be repeated count times. With one delay every gap between repetitions
// lasts that long; with two a random gap between them is picked for every repetition. The two delays may be given
// in either order.
func (s *Section) Repeats(count int, delays ...time.Duration) *Section {
	if count < 1 {
		s.reportInvalidArgument("Repeats", fmt.Sprintf("repetitions must be a positive number, got %d", count))
		return s
	}
	if len(delays) > 2 {
		s.reportInvalidArgument("Repeats", fmt.Sprintf("expected at most a minimum and a maximum delay, got %d delays", len(delays)))
		return s
	}

	s.repetitions = count
	s.repeatDelayMin, s.repeatDelayMax = normalizeRange(delays)
	return s
}

// PlayIf causes the section to skip all delays, repetitions and waits unless condition holds. condition is a
// bool, a Condition, a Predicate, or a func returning a bool (optionally taking a context and returning an error);
// functions are called when the section executes.
func (s *Section) PlayIf(condition interface{}) *Section {
	cond, ok := conditionFrom(condition)
	if !ok {
		if utils.IsCallable(condition) {
			s.reportInvalidArgument("PlayIf", fmt.Sprintf("condition has unsupported signature %T", condition))
		} else {
			s.reportInvalidArgument("PlayIf", fmt.Sprintf("condition must be a boolean or a function, got %T", condition))
		}
		return s
	}

	s.playIf = cond
	return s
}

// WaitUntilFinished causes the section to finish before the next section starts, then hold for the optional delay.
// A negative delay lets the next section start that much earlier.
func (s *Section) WaitUntilFinished(delay ...time.Duration) *Section {
	if len(delay) > 1 {
		s.reportInvalidArgument("WaitUntilFinished", fmt.Sprintf("expected at most one delay, got %d", len(delay)))
		return s
	}

	s.waitUntilFinished = true
	s.waitUntilFinishedDelay = 0
	if len(delay) == 1 {
		s.waitUntilFinishedDelay = delay[0]
	}
	return s
}

// Async causes each repetition to finish before the next one starts. WaitUntilFinished by contrast only waits for
// the section as a whole.
func (s *Section) Async() *Section {
	s.async = true
	return s
}

// Delay holds the section for minDelay before the first repetition. Given a second value, a random delay between the
// two is picked when the section executes.
func (s *Section) Delay(minDelay time.Duration, maxDelay ...time.Duration) *Section {
	if len(maxDelay) > 1 {
		s.reportInvalidArgument("Delay", fmt.Sprintf("expected at most a minimum and a maximum delay, got %d delays", len(maxDelay)+1))
		return s
	}

	s.delayMin, s.delayMax = normalizeRange(append([]time.Duration{minDelay}, maxDelay...))
	return s
}

// SetMustache sets the substitution context applied to the file path once it has been randomized.
func (s *Section) SetMustache(context map[string]interface{}) *Section {
	if context == nil {
		s.reportInvalidArgument("SetMustache", "context must be a key-value record, got nil")
		return s
	}

	s.settings.Mustache = context
	return s
}

// Duration overrides the natural length of the effect or sound.
func (s *Section) Duration(d time.Duration) *Section {
	if d < 0 {
		s.reportInvalidArgument("Duration", fmt.Sprintf("duration must not be negative, got %v", d))
		return s
	}

	s.settings.Duration = &d
	return s
}

// Volume sets the volume of the sound, clamped between 0.0 and 1.0.
func (s *Section) Volume(v float64) *Section {
	if math.IsNaN(v) {
		s.reportInvalidArgument("Volume", "volume must be a number, got NaN")
		return s
	}

	v = utils.Clamp(v, 0, 1)
	s.settings.Volume = &v
	return s
}

// FadeIn causes the effect to fade in when played.
func (s *Section) FadeIn(duration time.Duration, opts ...FadeOptions) *Section {
	if fade := s.buildFade("FadeIn", duration, opts); fade != nil {
		s.settings.FadeIn = fade
	}
	return s
}

// FadeOut causes the effect to fade out at the end of its duration.
func (s *Section) FadeOut(duration time.Duration, opts ...FadeOptions) *Section {
	if fade := s.buildFade("FadeOut", duration, opts); fade != nil {
		s.settings.FadeOut = fade
	}
	return s
}

// FadeInAudio causes the section to fade in its audio when played.
func (s *Section) FadeInAudio(duration time.Duration, opts ...FadeOptions) *Section {
	if fade := s.buildFade("FadeInAudio", duration, opts); fade != nil {
		s.settings.FadeInAudio = fade
	}
	return s
}

// FadeOutAudio causes the audio to fade out at the end of the section's duration.
func (s *Section) FadeOutAudio(duration time.Duration, opts ...FadeOptions) *Section {
	if fade := s.buildFade("FadeOutAudio", duration, opts); fade != nil {
		s.settings.FadeOutAudio = fade
	}
	return s
}

func (s *Section) buildFade(method string, duration time.Duration, opts []FadeOptions) *effect.Fade {
	if len(opts) > 1 {
		s.reportInvalidArgument(method, fmt.Sprintf("expected at most one set of options, got %d", len(opts)))
		return nil
	}

	var options FadeOptions
	if len(opts) == 1 {
		options = opts[0]
	}
	options = mergeFadeOptions(options, FadeOptions{Ease: s.defaultEase})

	fade, err := effect.NewFade(duration, options.Ease, options.Delay)
	if err != nil {
		s.reportInvalidArgument(method, err.Error())
		return nil
	}
	return fade
}

// mergeFadeOptions fills the zero fields of options from defaults.
func mergeFadeOptions(options, defaults FadeOptions) FadeOptions {
	if options.Ease == "" {
		options.Ease = defaults.Ease
	}
	if options.Delay == 0 {
		options.Delay = defaults.Delay
	}
	return options
}

// normalizeRange turns zero, one or two bounds into an ordered min/max pair.
func normalizeRange(bounds []time.Duration) (time.Duration, time.Duration) {
	switch len(bounds) {
	case 0:
		return 0, 0
	case 1:
		return bounds[0], bounds[0]
	}
	if bounds[0] > bounds[1] {
		return bounds[1], bounds[0]
	}
	return bounds[0], bounds[1]
}
