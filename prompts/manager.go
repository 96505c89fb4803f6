// Package prompts loads system prompt templates from disk with an
// mtime-checked cache, and renders the per-user contact roster into them.
package prompts

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/Nat1anWasTaken/sitcon-camp-2025/models"
)

const contactsPlaceholder = "{{contacts}}"

type cacheEntry struct {
	content string
	modTime time.Time
}

// Manager reads and caches prompt files from a directory.
type Manager struct {
	dir   string
	mu    sync.Mutex
	cache map[string]cacheEntry
}

func NewManager(dir string) *Manager {
	return &Manager{dir: dir, cache: make(map[string]cacheEntry)}
}

// Get returns the content of <name>.md, re-reading the file only when its
// modification time changed since the last read.
func (m *Manager) Get(name string) (string, error) {
	path := filepath.Join(m.dir, name+".md")

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("找不到 prompt 文件: %s", path)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if entry, ok := m.cache[name]; ok && entry.modTime.Equal(info.ModTime()) {
		return entry.content, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read prompt file %s: %w", path, err)
	}
	m.cache[name] = cacheEntry{content: string(data), modTime: info.ModTime()}
	return string(data), nil
}

// ClearCache drops cached prompts. An empty name clears everything.
func (m *Manager) ClearCache(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if name == "" {
		m.cache = make(map[string]cacheEntry)
		return
	}
	delete(m.cache, name)
}

// SiriPrompt renders the assistant system prompt with the user's contact
// roster substituted in.
func (m *Manager) SiriPrompt(contacts []models.Contact) (string, error) {
	template, err := m.Get("siri")
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(template, contactsPlaceholder, FormatRoster(contacts)), nil
}

// FormatRoster renders the contact roster as the prompt context block.
func FormatRoster(contacts []models.Contact) string {
	if len(contacts) == 0 {
		return "（目前沒有任何聯絡人）"
	}

	var b strings.Builder
	for _, contact := range contacts {
		fmt.Fprintf(&b, "• [%d] %s", contact.ID, contact.Name)
		if contact.Description != nil && *contact.Description != "" {
			fmt.Fprintf(&b, " - %s", *contact.Description)
		}
		if len(contact.Records) > 0 {
			fmt.Fprintf(&b, "（%d 筆記錄）", len(contact.Records))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
