package ai

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"statboard/internal/util/logx"
)

// Cache keeps summaries on disk so asking again about an unchanged view does
// not cost another request.
type Cache struct {
	dir string
}

type cachedSummary struct {
	Model   string    `json:"model"`
	Text    string    `json:"text"`
	Created time.Time `json:"created"`
}

// NewCache stores entries under dir, or under the OS temp dir when dir is empty.
func NewCache(dir string) *Cache {
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "statboard-summary-cache")
	}
	return &Cache{dir: dir}
}

func cacheKey(model, prompt string) string {
	h := sha1.Sum([]byte(model + "\x00" + prompt))
	return hex.EncodeToString(h[:])
}

func (c *Cache) path(model, prompt string) string {
	return filepath.Join(c.dir, fmt.Sprintf("summary_%s.json", cacheKey(model, prompt)))
}

// Get returns the cached summary for model and prompt.
func (c *Cache) Get(model, prompt string) (string, bool) {
	if c == nil {
		return "", false
	}
	f, err := os.Open(c.path(model, prompt))
	if err != nil {
		return "", false
	}
	defer f.Close()
	var s cachedSummary
	if err := json.NewDecoder(f).Decode(&s); err != nil || s.Model != model {
		return "", false
	}
	return s.Text, true
}

// Put writes the summary atomically (temp file then rename).
func (c *Cache) Put(model, prompt, text string) error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	p := c.path(model, prompt)
	tmp := p + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(cachedSummary{Model: model, Text: text, Created: time.Now()}); err != nil {
		f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, p); err != nil {
		return err
	}
	logx.Debugf("ai: cached summary saved to %s", p)
	return nil
}
