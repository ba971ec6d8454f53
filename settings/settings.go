package settings

import (
	"fmt"
	"log"
	"sync"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// AppName is the gdata storage namespace
const AppName = "vi_beaker"

const (
	settingsObject   = "settings"
	settingsProperty = "preferences"
)

// Color modes accepted by the renderer
const (
	ColorAuto = "auto"
	ColorMono = "mono"
)

// Preferences are the user choices that survive restarts
type Preferences struct {
	MasterVolume float64 `yaml:"masterVolume"` // 0.0 ~ 1.0
	Muted        bool    `yaml:"muted"`
	ColorMode    string  `yaml:"colorMode"`
}

// DefaultPreferences returns the first-run preferences
func DefaultPreferences() Preferences {
	return Preferences{
		MasterVolume: 0.5,
		Muted:        false,
		ColorMode:    ColorAuto,
	}
}

// Manager loads and saves Preferences
// A nil gdata manager runs in memory only: nothing is read or written
type Manager struct {
	mu    sync.Mutex
	store *gdata.Manager
	prefs Preferences
}

// Open creates a manager backed by the platform data directory
// Storage failures degrade to memory-only and are logged, not returned
func Open() *Manager {
	store, err := gdata.Open(gdata.Config{AppName: AppName})
	if err != nil {
		log.Printf("[Settings] storage unavailable, preferences will not persist: %v", err)
		store = nil
	}
	return NewManager(store)
}

// NewManager wraps store and loads saved preferences, falling back to defaults
func NewManager(store *gdata.Manager) *Manager {
	m := &Manager{store: store, prefs: DefaultPreferences()}
	if err := m.Load(); err != nil {
		log.Printf("[Settings] Warning: failed to load preferences: %v (using defaults)", err)
	}
	return m
}

// Load reads preferences from storage; a missing record keeps defaults
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.store == nil || !m.store.ObjectPropExists(settingsObject, settingsProperty) {
		m.prefs = DefaultPreferences()
		return nil
	}

	data, err := m.store.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		m.prefs = DefaultPreferences()
		return fmt.Errorf("load preferences: %w", err)
	}

	loaded := DefaultPreferences()
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		m.prefs = DefaultPreferences()
		return fmt.Errorf("unmarshal preferences: %w", err)
	}
	m.prefs = normalize(loaded)
	return nil
}

// Save writes preferences; memory-only managers succeed without writing
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.store == nil {
		return nil
	}

	data, err := yaml.Marshal(m.prefs)
	if err != nil {
		return fmt.Errorf("marshal preferences: %w", err)
	}
	if err := m.store.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	return nil
}

// Persistent reports whether preferences are backed by storage
func (m *Manager) Persistent() bool {
	return m.store != nil
}

// Preferences returns a copy of the current preferences
func (m *Manager) Preferences() Preferences {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.prefs
}

// SetMasterVolume updates volume in memory, clamped to [0, 1]
func (m *Manager) SetMasterVolume(v float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prefs.MasterVolume = clampVolume(v)
}

// SetMuted updates mute in memory
func (m *Manager) SetMuted(muted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prefs.Muted = muted
}

// SetColorMode updates the color mode; unknown modes fall back to auto
func (m *Manager) SetColorMode(mode string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prefs.ColorMode = normalizeColorMode(mode)
}

func normalize(p Preferences) Preferences {
	p.MasterVolume = clampVolume(p.MasterVolume)
	p.ColorMode = normalizeColorMode(p.ColorMode)
	return p
}

func normalizeColorMode(mode string) string {
	if mode == ColorMono {
		return ColorMono
	}
	return ColorAuto
}

func clampVolume(v float64) float64 {
	if !(v >= 0) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
