// SPDX-FileCopyrightText: 2026 zinc
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/zinclang/zinc/internal/config"
	"github.com/zinclang/zinc/internal/scanner"
)

var (
	watchDebounce int
	watchOnChange string
)

var watchCmd = &cobra.Command{
	Use:   "watch [paths...]",
	Short: "Watch for file changes and recompile",
	Long: `Watch Zinc source files for changes and recompile automatically.

This command monitors the configured source paths and recompiles every
source file when a .zn file is created, modified, or removed.

Example:
  zinc watch                          # Watch configured paths
  zinc watch ./src                    # Watch a specific path
  zinc watch --debounce 1000          # Wait 1s before recompiling
  zinc watch --on-change "cargo fmt"  # Run a command after each build`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().IntVar(&watchDebounce, "debounce", 500, "debounce duration in milliseconds")
	watchCmd.Flags().StringVar(&watchOnChange, "on-change", "", "command to run after recompilation")
}

// Watcher handles file watching and recompilation.
type Watcher struct {
	cfg         *config.Config
	watcher     *fsnotify.Watcher
	paths       []string
	debounce    time.Duration
	onChangeCmd string

	mu            sync.Mutex
	pendingChange bool
}

// NewWatcher creates a new Watcher instance.
func NewWatcher(cfg *config.Config, paths []string) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	debounce := time.Duration(cfg.Watch.Debounce) * time.Millisecond
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}

	return &Watcher{
		cfg:         cfg,
		watcher:     fsWatcher,
		paths:       paths,
		debounce:    debounce,
		onChangeCmd: cfg.Watch.OnChange,
	}, nil
}

// Close closes the watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

// Watch starts watching for file changes until ctx is cancelled.
func (w *Watcher) Watch(ctx context.Context) error {
	for _, path := range w.paths {
		if err := w.addRecursive(path); err != nil {
			return err
		}
	}

	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !scanner.IsSourceFile(event.Name) {
				continue
			}
			printVerbose("Change detected: %s (%s)", event.Name, event.Op)
			w.mu.Lock()
			w.pendingChange = true
			w.mu.Unlock()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			printError("watch error: %v", err)
		case <-ticker.C:
			w.mu.Lock()
			pending := w.pendingChange
			w.pendingChange = false
			w.mu.Unlock()
			if pending {
				w.rebuild()
			}
		}
	}
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != root {
				return filepath.SkipDir
			}
			if err := w.watcher.Add(path); err != nil {
				printVerbose("failed to watch %s: %v", path, err)
			}
		}
		return nil
	})
}

func (w *Watcher) rebuild() {
	printInfo("Recompiling...")

	s := scanner.New(scanner.Config{
		IncludePatterns: w.cfg.Source.Include,
		ExcludePatterns: w.cfg.Source.Exclude,
	})
	files, err := s.ScanPaths(w.paths)
	if err != nil {
		printError("scan failed: %v", err)
		return
	}

	failed := 0
	for _, file := range files {
		rust, err := compileSource(string(file.Content))
		if err != nil {
			failed++
			printError("%s: %v", file.Path, err)
			continue
		}
		outPath := filepath.Join(w.cfg.OutputDir, file.Name()+".rs")
		if err := os.WriteFile(outPath, []byte(rust), 0o644); err != nil {
			failed++
			printError("%s: %v", file.Path, err)
			continue
		}
		printVerbose("Compiled %s -> %s", file.Path, outPath)
	}

	if failed == 0 {
		printInfo("Compiled %d file(s)", len(files))
	} else {
		printInfo("Compiled %d file(s), %d failed", len(files)-failed, failed)
	}

	if w.onChangeCmd != "" {
		w.runOnChange()
	}
}

func (w *Watcher) runOnChange() {
	printVerbose("Running: %s", w.onChangeCmd)
	cmd := exec.Command("sh", "-c", w.onChangeCmd)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		printError("on-change command failed: %v", err)
	}
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cmd.Flags().Changed("debounce") {
		cfg.Watch.Debounce = watchDebounce
	}
	if watchOnChange != "" {
		cfg.Watch.OnChange = watchOnChange
	}

	paths := args
	if len(paths) == 0 {
		paths = cfg.Source.Paths
	}

	watcher, err := NewWatcher(cfg, paths)
	if err != nil {
		return err
	}
	defer watcher.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	printInfo("Watching %s (ctrl-c to stop)", strings.Join(paths, ", "))
	watcher.rebuild()
	return watcher.Watch(ctx)
}
