package playback

import (
	"context"
	"time"

	"github.com/Git-GoR/FoundryVTT-Sequencer/effect"
	"github.com/Git-GoR/FoundryVTT-Sequencer/section"
)

// DefaultVolume is used when the section doesn't set a volume.
const DefaultVolume = 0.8

// SoundRequest describes one repetition of a sound.
type SoundRequest struct {
	File       string
	Repetition int
	Volume     float64
	Duration   time.Duration
	FadeIn     *effect.Fade
	FadeOut    *effect.Fade
}

// AudioPlayer plays sounds. Play returns once the sound has finished.
type AudioPlayer interface {
	Play(ctx context.Context, req SoundRequest) error
}

// SoundRunner plays a sound once per repetition.
type SoundRunner struct {
	Player AudioPlayer

	// Files to choose from at random, each may contain {{key}} tags.
	Files []string

	// Picker chooses among Files. Nil picks from the package-level source.
	Picker *Picker

	// DefaultDuration is used when the section doesn't override the duration.
	DefaultDuration time.Duration
}

// Run plays one repetition.
func (r *SoundRunner) Run(ctx context.Context, rep section.Repetition) error {
	settings := rep.Section.Settings()

	file, err := r.Picker.Pick(r.Files)
	if err != nil {
		return err
	}
	file, err = ResolvePath(file, settings.Mustache)
	if err != nil {
		return err
	}

	req := SoundRequest{
		File:       file,
		Repetition: rep.Index,
		Volume:     DefaultVolume,
		Duration:   r.DefaultDuration,
		FadeIn:     settings.FadeInAudio,
		FadeOut:    settings.FadeOutAudio,
	}
	if settings.Volume != nil {
		req.Volume = *settings.Volume
	}
	if settings.Duration != nil {
		req.Duration = *settings.Duration
	}

	return r.Player.Play(ctx, req)
}
