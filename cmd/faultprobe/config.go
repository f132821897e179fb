package main

import (
	"errors"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

type Config interface {
	LogLevel() string
	PoolName() string
	Workers() int
	LockOSThread() bool
	Probes() []string
	MetricsNamespace() string
}

type YamlConfig struct {
	Level     string   `yaml:"log_level"`
	Pool      YamlPool `yaml:"pool"`
	ProbeList []string `yaml:"probes"`
	Namespace string   `yaml:"metrics_namespace"`
}

type YamlPool struct {
	Name       string `yaml:"name"`
	Size       int    `yaml:"workers"`
	LockThread bool   `yaml:"lock_os_thread"`
}

func (c *YamlConfig) LogLevel() string         { return c.Level }
func (c *YamlConfig) PoolName() string         { return c.Pool.Name }
func (c *YamlConfig) Workers() int             { return c.Pool.Size }
func (c *YamlConfig) LockOSThread() bool       { return c.Pool.LockThread }
func (c *YamlConfig) Probes() []string         { return c.ProbeList }
func (c *YamlConfig) MetricsNamespace() string { return c.Namespace }

func defaultConfig() *YamlConfig {
	return &YamlConfig{
		Level:     "info",
		Pool:      YamlPool{Name: "probe", Size: 2},
		ProbeList: []string{"ok", "nil", "divide", "protnone"},
		Namespace: "faultprobe",
	}
}

func FromYAML(pathTo string) (Config, error) {
	file, err := os.Open(pathTo)
	if err != nil {
		log.WithError(err).Error("Get config failed")
		return nil, err
	}
	defer file.Close()

	conf := defaultConfig()
	if err := yaml.NewDecoder(file).Decode(conf); err != nil {
		log.WithError(err).Error("Error at cfg parsing")
		return nil, err
	}
	if err := validate(conf); err != nil {
		return nil, err
	}
	return conf, nil
}

func validate(c *YamlConfig) error {
	if c.Pool.Name == "" {
		return errors.New("pool.name can't be empty")
	}
	if c.Pool.Size < 1 {
		return fmt.Errorf("pool.workers must be positive, got %d", c.Pool.Size)
	}
	if _, err := log.ParseLevel(c.Level); err != nil {
		return err
	}
	for _, p := range c.ProbeList {
		if _, ok := probes[p]; !ok {
			return fmt.Errorf("unknown probe %q", p)
		}
	}
	return nil
}
