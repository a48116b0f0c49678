package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindUserConfig(t *testing.T) {
	t.Setenv("SOAPGEN_CONFIG", "")

	assert.Equal(t, []string{"a.yaml"}, findUserConfig([]string{"--config=a.yaml", "--input", "s.yaml"}))
	assert.Equal(t, []string{"b.toml"}, findUserConfig([]string{"--input", "s.yaml", "--config", "b.toml"}))
	assert.Equal(t, []string{"soapgen.json", "soapgen.yaml", "soapgen.toml"}, findUserConfig(nil))

	t.Setenv("SOAPGEN_CONFIG", "env.json")
	assert.Equal(t, []string{"env.json"}, findUserConfig(nil))
}

func TestConfigurationLoaders(t *testing.T) {
	assert.Len(t, configurationLoaders([]string{"a.yml", "b.toml", "c.json"}), 3)
}
