// Package plugin manages visualization plugins. Built-in plugins register
// themselves at init; external plugins are discovered from a directory of
// yaml manifests. The registry is the single source of truth for what the
// page composition may render.
package plugin

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/lenslab/lens/errors"
	"github.com/lenslab/lens/logging"
)

// Plugin is one registered visualization plugin.
type Plugin struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Description string `yaml:"description,omitempty"`

	// Builtin marks plugins compiled into the binary; they cannot be
	// disabled or shadowed by manifests.
	Builtin bool `yaml:"-"`

	// Dir is the manifest's directory for external plugins.
	Dir string `yaml:"-"`
}

// Registry holds the set of known plugins.
type Registry struct {
	mu      sync.RWMutex
	plugins map[string]*Plugin
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{plugins: make(map[string]*Plugin)}
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry that built-ins register into.
func Default() *Registry {
	return defaultRegistry
}

// Register adds a plugin to the registry. Registering a name twice is an
// error.
func (r *Registry) Register(p *Plugin) error {
	if p.Name == "" {
		return errors.New(errors.ErrCodePluginManifest, "plugin name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.plugins[p.Name]; ok {
		return errors.PluginDuplicate(p.Name)
	}
	r.plugins[p.Name] = p
	return nil
}

// MustRegister registers a built-in plugin and panics on conflict. It is
// intended for init-time side-effect registration.
func MustRegister(p *Plugin) {
	p.Builtin = true
	if err := defaultRegistry.Register(p); err != nil {
		panic(fmt.Sprintf("plugin: %v", err))
	}
}

// Get returns a plugin by name.
func (r *Registry) Get(name string) (*Plugin, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.plugins[name]
	return p, ok
}

// List returns all registered plugins sorted by name.
func (r *Registry) List() []*Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Plugin, 0, len(r.plugins))
	for _, p := range r.plugins {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// removeExternal drops all non-builtin plugins, ahead of a re-discovery.
func (r *Registry) removeExternal() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for name, p := range r.plugins {
		if !p.Builtin {
			delete(r.plugins, name)
		}
	}
}

// LoadDir discovers external plugins from dir. Each immediate subdirectory
// containing a plugin.yml (or plugin.yaml) manifest contributes one plugin;
// names on the disabled list are skipped. A missing directory is not an
// error: external plugins are optional.
func (r *Registry) LoadDir(dir string, disabled []string) error {
	log := logging.NewLogger("plugin")

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			log.WithField("dir", dir).Debug("Plugin directory does not exist, skipping")
			return nil
		}
		return errors.PluginLoad(dir, err)
	}

	skip := make(map[string]bool, len(disabled))
	for _, name := range disabled {
		skip[strings.TrimSpace(name)] = true
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		pluginDir := filepath.Join(dir, entry.Name())
		manifest := findManifest(pluginDir)
		if manifest == "" {
			continue
		}

		p, err := loadManifest(manifest)
		if err != nil {
			return err
		}

		if skip[p.Name] {
			log.WithField("plugin", p.Name).Debug("Plugin disabled by config")
			continue
		}

		p.Dir = pluginDir
		if err := r.Register(p); err != nil {
			return err
		}
		log.WithField("plugin", p.Name).WithField("version", p.Version).Debug("Loaded plugin")
	}

	return nil
}

func findManifest(dir string) string {
	for _, name := range []string{"plugin.yml", "plugin.yaml"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func loadManifest(path string) (*Plugin, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.PluginLoad(path, err)
	}

	var p Plugin
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodePluginManifest,
			fmt.Sprintf("invalid plugin manifest: %s", path)).WithDetail("path", path)
	}
	if p.Name == "" {
		return nil, errors.New(errors.ErrCodePluginManifest,
			fmt.Sprintf("plugin manifest %s is missing a name", path)).WithDetail("path", path)
	}
	return &p, nil
}
