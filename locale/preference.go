package locale

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/text/language"
)

// Preference is a language choice persisted to a file. A missing or
// unreadable preference falls back to the default language.
type Preference struct {
	mu   sync.RWMutex
	path string
	tag  language.Tag
}

// LoadPreference reads the preference stored at path.
func LoadPreference(path string) (*Preference, error) {
	p := &Preference{path: path, tag: Default()}

	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return p, nil
	case err != nil:
		return p, fmt.Errorf("read preference: %w", err)
	}

	if tag, ok := Parse(strings.TrimSpace(string(raw))); ok {
		p.tag = tag
	}
	return p, nil
}

func (p *Preference) Tag() language.Tag {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.tag
}

// Set changes the language and writes it to disk.
func (p *Preference) Set(value string) error {
	tag, ok := Parse(value)
	if !ok {
		return fmt.Errorf("unsupported language %q", value)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return fmt.Errorf("create preference dir: %w", err)
	}
	if err := os.WriteFile(p.path, []byte(tag.String()+"\n"), 0o644); err != nil {
		return fmt.Errorf("write preference: %w", err)
	}
	p.tag = tag
	return nil
}
