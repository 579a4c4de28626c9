package playback

import (
	"errors"
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"sync"
	"text/template"

	"github.com/Git-GoR/FoundryVTT-Sequencer/utils"
)

// ErrNoFile is returned by a runner that has no file to play.
var ErrNoFile = errors.New("no file to play")

var mustacheTag = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_]*)\s*\}\}`)

// Picker chooses one of a runner's files at random. It is safe for concurrent repetitions. A nil Picker draws from
// the package-level source.
type Picker struct {
	mu   sync.Mutex
	rand *rand.Rand
}

// NewPicker creates a Picker drawing from r, so the files chosen follow r's seed.
func NewPicker(r *rand.Rand) *Picker {
	return &Picker{rand: r}
}

// Pick chooses one of files at random.
func (p *Picker) Pick(files []string) (string, error) {
	switch len(files) {
	case 0:
		return "", ErrNoFile
	case 1:
		return files[0], nil
	}

	if p == nil {
		return files[utils.RandomIntBetween(0, float64(len(files)))], nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return files[utils.RandomIntBetweenWith(p.rand, 0, float64(len(files)))], nil
}

// ResolvePath substitutes the {{key}} tags in path with values from context. A tag without a matching key is an
// error.
func ResolvePath(path string, context map[string]interface{}) (string, error) {
	if !mustacheTag.MatchString(path) {
		return path, nil
	}

	tmpl, err := template.New("path").
		Option("missingkey=error").
		Parse(mustacheTag.ReplaceAllString(path, "{{.$1}}"))
	if err != nil {
		return "", fmt.Errorf("parse path %q: %w", path, err)
	}

	data := context
	if data == nil {
		data = map[string]interface{}{}
	}

	var out strings.Builder
	if err := tmpl.Execute(&out, data); err != nil {
		return "", fmt.Errorf("resolve path %q: %w", path, err)
	}
	return out.String(), nil
}
