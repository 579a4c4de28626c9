package playback

import (
	"context"
	"fmt"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/Git-GoR/FoundryVTT-Sequencer/effect"
	"github.com/Git-GoR/FoundryVTT-Sequencer/section"
)

// EffectRequest describes one repetition of a visual effect.
type EffectRequest struct {
	File       string
	Repetition int
	Position   section.Offset
	Duration   time.Duration
	FadeIn     *effect.Fade
	FadeOut    *effect.Fade

	// Tint is nil when the effect keeps its own colors.
	Tint *colorful.Color
}

// Renderer draws an effect on the canvas. Render returns once the effect has finished playing.
type Renderer interface {
	Render(ctx context.Context, req EffectRequest) error
}

// EffectRunner plays a visual effect once per repetition. It implements section.Runner and section.OffsetCacher.
type EffectRunner struct {
	Renderer Renderer

	// Files to choose from at random, each may contain {{key}} tags.
	Files []string

	// Picker chooses among Files. Nil picks from the package-level source.
	Picker *Picker

	// Origin is where the effect is placed.
	Origin section.Offset

	// Spread scatters each repetition randomly up to this far from Origin on both axes.
	Spread float64

	// Tint is a hex color such as "#ff8800". Empty means no tint.
	Tint string

	// DefaultDuration is used when the section doesn't override the duration.
	DefaultDuration time.Duration
}

// CacheOffset places repetition index somewhere within Spread of the origin.
func (r *EffectRunner) CacheOffset(s *section.Section, index int) section.Offset {
	if r.Spread <= 0 {
		return r.Origin
	}
	return section.Offset{
		X: r.Origin.X + s.RandomFloat(-r.Spread, r.Spread),
		Y: r.Origin.Y + s.RandomFloat(-r.Spread, r.Spread),
	}
}

// Run renders one repetition.
func (r *EffectRunner) Run(ctx context.Context, rep section.Repetition) error {
	settings := rep.Section.Settings()

	file, err := r.Picker.Pick(r.Files)
	if err != nil {
		return err
	}
	file, err = ResolvePath(file, settings.Mustache)
	if err != nil {
		return err
	}

	req := EffectRequest{
		File:       file,
		Repetition: rep.Index,
		Position:   rep.Offset,
		Duration:   r.DefaultDuration,
		FadeIn:     settings.FadeIn,
		FadeOut:    settings.FadeOut,
	}
	if settings.Duration != nil {
		req.Duration = *settings.Duration
	}
	if r.Tint != "" {
		tint, err := colorful.Hex(r.Tint)
		if err != nil {
			return fmt.Errorf("invalid tint %q: %w", r.Tint, err)
		}
		req.Tint = &tint
	}

	return r.Renderer.Render(ctx, req)
}
