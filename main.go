package main

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/gruntwork-io/go-commons/errors"
	"github.com/sirupsen/logrus"
	"k8s.io/utils/clock"

	"github.com/Git-GoR/FoundryVTT-Sequencer/config"
	"github.com/Git-GoR/FoundryVTT-Sequencer/logger"
	"github.com/Git-GoR/FoundryVTT-Sequencer/playback"
	"github.com/Git-GoR/FoundryVTT-Sequencer/section"
	"github.com/Git-GoR/FoundryVTT-Sequencer/sequence"
)

// configEnvVar optionally points at a YAML config file.
const configEnvVar = "SEQUENCER_CONFIG"

func main() {
	ctx := context.Background()
	if err := Run(ctx); err != nil {
		logger.GetProjectLogger().Fatal(errors.PrintErrorWithStackTrace(err))
	}
}

// Run plays the demo sequence until it finishes or the process is interrupted.
func Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// initialize the logger
	logger := logger.GetProjectLogger()

	logger.Info("Initializing config...")
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// handle CTRL+C interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	defer signal.Stop(quit)
	go func() {
		select {
		case <-quit:
			logger.Println("interrupted, stopping sequence")
			cancel()
		case <-ctx.Done():
		}
	}()

	renderer := &playback.FrameRenderer{
		Clock:     clock.RealClock{},
		FrameRate: cfg.FrameRate,
		Log:       logrus.NewEntry(logger),
	}

	seq := buildDemoSequence(cfg, renderer)

	logger.Info("Playing sequence...")
	if err := seq.Play(ctx); err != nil {
		return err
	}
	logger.Println("sequence finished")
	return nil
}

func loadConfig() (*config.Config, error) {
	if path := os.Getenv(configEnvVar); path != "" {
		return config.LoadConfig(path)
	}

	cfg, err := config.NewConfig()
	if err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

// buildDemoSequence is a fireball: three scattered explosions, then a thunder clap that fades out.
func buildDemoSequence(cfg *config.Config, renderer *playback.FrameRenderer) *sequence.Sequence {
	seq := sequence.New("fireball", cfg)

	seq.AddSection(&playback.EffectRunner{
		Renderer:        renderer,
		Files:           []string{"jb2a/Fireball/{{stage}}_{{color}}_01.webm", "jb2a/Fireball/{{stage}}_{{color}}_02.webm"},
		Picker:          playback.NewPicker(seq.NewRand()),
		Origin:          section.Offset{X: 1200, Y: 800},
		Spread:          60,
		Tint:            "#ff6a00",
		DefaultDuration: 1500 * time.Millisecond,
	}).
		SetMustache(map[string]interface{}{"stage": "explode", "color": "orange"}).
		Repeats(3, 200*time.Millisecond, 400*time.Millisecond).
		FadeIn(300 * time.Millisecond).
		FadeOut(300*time.Millisecond, section.FadeOptions{Ease: "easeInQuad"}).
		WaitUntilFinished(250 * time.Millisecond)

	seq.AddSection(&playback.SoundRunner{
		Player:          renderer,
		Files:           []string{"sounds/thunder_{{n}}.ogg"},
		Picker:          playback.NewPicker(seq.NewRand()),
		DefaultDuration: 2 * time.Second,
	}).
		SetMustache(map[string]interface{}{"n": 1}).
		Delay(100*time.Millisecond, 300*time.Millisecond).
		Volume(0.6).
		FadeOutAudio(500 * time.Millisecond).
		Async()

	return seq
}
