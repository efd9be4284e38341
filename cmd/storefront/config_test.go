package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/storefront/internal/config"
)

func TestConfigInit(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	path := filepath.Join(home, "storefront.toml")
	t.Setenv("STOREFRONT_CONFIG", "")

	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"--config", path, "--api", "http://shop.test/api", "config", "init"})
	require.NoError(t, root.Execute())
	require.Contains(t, out.String(), path)

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, "http://shop.test/api", cfg.API.BaseURL)
	require.Equal(t, "synapses", cfg.UI.Currency)

	root = NewRootCommand()
	root.SetOut(&out)
	root.SetArgs([]string{"--config", path, "config", "init"})
	require.ErrorContains(t, root.Execute(), "already exists")

	root = NewRootCommand()
	root.SetOut(&out)
	root.SetArgs([]string{"--config", path, "config", "init", "--force"})
	require.NoError(t, root.Execute())
}
