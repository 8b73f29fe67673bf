package main

import (
	"flag"
	"fmt"
	"os"

	"lsmkv/internal/config"
	"lsmkv/internal/metrics"
	"lsmkv/internal/server"
	"lsmkv/internal/storage"
	"lsmkv/internal/storage/tree"
	"lsmkv/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	configFile := flag.String("config", "", "path to a yaml config file")
	dir := flag.String("dir", "", "data directory, overrides the config file")
	check := flag.Int64("check", 0, "run the insert/delete/update check over N keys and exit")
	flag.Parse()

	conf, err := loadConfig(*configFile, *dir)
	if err != nil {
		logger.Fatal("load config", "error", err)
	}
	if err := logger.InitLogger(conf.LogLevel, conf.LogFile); err != nil {
		logger.Fatal("init logger", "error", err)
	}
	defer logger.Sync()

	reg := prometheus.NewRegistry()
	store, err := storage.NewStorage(conf, metrics.New(reg))
	if err != nil {
		logger.Fatal("open storage", "dir", conf.Dir, "error", err)
	}
	defer store.Close()

	if *check > 0 {
		if err := runCheck(store, *check); err != nil {
			logger.Error("check failed", "error", err)
			logger.Sync()
			os.Exit(1)
		}
		logger.Info("check passed", "keys", *check, "stats", store.Stats())
		return
	}

	logger.Info("serving", "addr", conf.ServerAddr, "dir", conf.Dir)
	if err := server.New(store, reg).Run(conf.ServerAddr); err != nil {
		logger.Fatal("server stopped", "error", err)
	}
}

func loadConfig(file, dir string) (*config.Config, error) {
	var (
		conf *config.Config
		err  error
	)
	if file != "" {
		conf, err = config.FromFile(file)
	} else {
		conf, err = config.NewConfig(".")
	}
	if err != nil {
		return nil, err
	}
	if dir != "" {
		conf.Dir = dir
	}
	return conf, conf.Validate()
}

// runCheck inserts keys 0..n-1 with value key, deletes the even keys, rewrites
// the odd keys to key+1, then reads every key back.
func runCheck(store storage.KVStorage, n int64) error {
	for i := int64(0); i < n; i++ {
		if err := store.Insert(i, i); err != nil {
			return fmt.Errorf("insert %d: %w", i, err)
		}
	}
	for i := int64(0); i < n; i += 2 {
		if err := store.Delete(i); err != nil {
			return fmt.Errorf("delete %d: %w", i, err)
		}
	}
	for i := int64(1); i < n; i += 2 {
		if err := store.Update(i, i+1); err != nil {
			return fmt.Errorf("update %d: %w", i, err)
		}
	}

	for i := int64(0); i < n; i++ {
		want := tree.Result{Status: tree.Deleted}
		if i%2 == 1 {
			want = tree.Result{Status: tree.Found, Value: i + 1}
		}
		got, err := store.Get(i)
		if err != nil {
			return fmt.Errorf("get %d: %w", i, err)
		}
		if got.Status != want.Status || (want.Status == tree.Found && got.Value != want.Value) {
			return fmt.Errorf("key %d: got %s %d, want %s %d", i, got.Status, got.Value, want.Status, want.Value)
		}
	}
	if got, err := store.Get(n); err != nil || got.Status != tree.Absent {
		return fmt.Errorf("key %d past the range: got %s, err %v", n, got.Status, err)
	}
	return nil
}
