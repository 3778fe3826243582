package config

import (
	"sync/atomic"

	"github.com/nerva-io/nerva/types"
)

type Manager struct {
	config atomic.Pointer[types.FrameworkConfig]
	loader *Loader
	path   string
}

func NewManager(configPath string) (*Manager, error) {
	m := &Manager{
		loader: NewLoader(),
		path:   configPath,
	}

	if err := m.Load(); err != nil {
		return nil, err
	}

	return m, nil
}

// NewManagerFromConfig wraps an already built config. Used by embedders that
// assemble configuration programmatically.
func NewManagerFromConfig(config *types.FrameworkConfig) *Manager {
	m := &Manager{loader: NewLoader()}
	if config == nil {
		config = m.loader.Defaults()
	}
	m.config.Store(config)
	return m
}

func (m *Manager) Load() error {
	config, err := m.loader.LoadFromFile(m.path)
	if err != nil {
		return types.WrapError(err, "config load failed")
	}

	m.config.Store(config)
	return nil
}

func (m *Manager) GetConfig() *types.FrameworkConfig {
	return m.config.Load()
}
