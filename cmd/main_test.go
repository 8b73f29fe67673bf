package main

import (
	"os"
	"path/filepath"
	"testing"

	"lsmkv/internal/config"
	"lsmkv/internal/storage"
	"lsmkv/internal/storage/tree"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCheck(t *testing.T) {
	conf, err := config.NewConfig(t.TempDir(), config.WithThreshold0(32), config.WithMaxBin(3))
	require.NoError(t, err)
	store, err := storage.NewStorage(conf, nil)
	require.NoError(t, err)
	defer store.Close()

	assert.NoError(t, runCheck(store, 2000))
}

type lyingStorage struct {
	storage.KVStorage
}

func (lyingStorage) Insert(key, value int64) error { return nil }
func (lyingStorage) Update(key, value int64) error { return nil }
func (lyingStorage) Delete(key int64) error        { return nil }
func (lyingStorage) Get(key int64) (tree.Result, error) {
	return tree.Result{Status: tree.Found, Value: key}, nil
}

func TestRunCheckDetectsMismatch(t *testing.T) {
	err := runCheck(lyingStorage{}, 4)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "key 0")
}

func TestLoadConfig(t *testing.T) {
	dataDir := t.TempDir()
	file := filepath.Join(t.TempDir(), "lsmkv.yaml")
	require.NoError(t, os.WriteFile(file, []byte("threshold0: 64\nmax_bin: 4\n"), 0644))

	conf, err := loadConfig(file, dataDir)
	require.NoError(t, err)
	assert.Equal(t, dataDir, conf.Dir)
	assert.Equal(t, 64, conf.Threshold0)
	assert.Equal(t, 4, conf.MaxBin)

	conf, err = loadConfig("", "")
	require.NoError(t, err)
	assert.Equal(t, ".", conf.Dir)
	assert.Equal(t, config.DefaultThreshold0, conf.Threshold0)

	_, err = loadConfig(filepath.Join(t.TempDir(), "missing.yaml"), "")
	assert.Error(t, err)
}
