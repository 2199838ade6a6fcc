package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Export   ExportConfig   `yaml:"export"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	// File receives log output while the TUI owns the terminal.
	File string `yaml:"file"`
}

type ExportConfig struct {
	// Path is where the TUI writes and reads the JSON records file.
	Path string `yaml:"path"`
}

func DefaultConfig(dir string) *Config {
	return &Config{
		Database: DatabaseConfig{
			Path: filepath.Join(dir, "shiftlog.db"),
		},
		Log: LogConfig{
			Level: "info",
			File:  filepath.Join(dir, "shiftlog.log"),
		},
		Export: ExportConfig{
			Path: "records.txt",
		},
	}
}

type Manager struct {
	config     *Config
	configPath string
}

// NewManager loads the config at path, writing defaults there first if it
// does not exist. An empty path means ~/.shiftlog/config.yaml.
func NewManager(path string) (*Manager, error) {
	if path == "" {
		dir, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, "config.yaml")
	}

	manager := &Manager{
		configPath: path,
	}

	if err := manager.loadConfig(); err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		manager.config = DefaultConfig(filepath.Dir(path))
		if err := manager.SaveConfig(); err != nil {
			return nil, err
		}
	}

	return manager, nil
}

func (m *Manager) loadConfig() error {
	data, err := os.ReadFile(m.configPath)
	if err != nil {
		return err
	}

	// unset keys keep their defaults
	config := DefaultConfig(filepath.Dir(m.configPath))
	if err := yaml.Unmarshal(data, config); err != nil {
		return err
	}

	m.config = config
	return nil
}

func (m *Manager) SaveConfig() error {
	data, err := yaml.Marshal(m.config)
	if err != nil {
		return err
	}

	configDir := filepath.Dir(m.configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return err
	}

	return os.WriteFile(m.configPath, data, 0644)
}

func (m *Manager) GetConfig() *Config {
	return m.config
}

func (m *Manager) Path() string {
	return m.configPath
}

// DefaultDir is the per-user data directory.
func DefaultDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".shiftlog"), nil
}
