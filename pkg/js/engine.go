package js

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dop251/goja"

	"pixgrid/pkg/view"
)

// SnapshotFunc is called by grid.snapshot(name).
type SnapshotFunc func(name string) error

// Engine runs scroll scripts against a RecyclerView.
type Engine struct {
	vm   *goja.Runtime
	grid *gridContext
}

// ImageCache reports how many images are held in memory.
type ImageCache interface {
	Len() (decoded, cropped int)
}

// Options configure an Engine. Nil writers default to the process's
// stdout and stderr. When Logger is set, console.warn and console.error are
// logged through it instead of written to Stderr.
type Options struct {
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Snapshot SnapshotFunc
	Images   ImageCache
}

// New creates an engine with fresh `console` and `grid` globals bound to rv.
func New(rv *view.RecyclerView, opts Options) *Engine {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	vm := goja.New()
	e := &Engine{vm: vm}

	c := &consoleAPI{stdout: opts.Stdout, stderr: opts.Stderr, logger: opts.Logger}
	c.register(vm)

	e.grid = registerGrid(vm, rv, opts)
	return e
}

// Execute runs scripts in order and stops at the first error.
func (e *Engine) Execute(scripts ...string) error {
	for i, script := range scripts {
		if _, err := e.vm.RunString(script); err != nil {
			return fmt.Errorf("script %d: %w", i, err)
		}
	}
	return nil
}

// RunFile runs the script at path.
func (e *Engine) RunFile(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading script: %w", err)
	}
	if _, err := e.vm.RunScript(path, string(src)); err != nil {
		return fmt.Errorf("running %s: %w", path, err)
	}
	return nil
}

// Eval runs src and returns its completion value exported to Go.
func (e *Engine) Eval(src string) (any, error) {
	v, err := e.vm.RunString(src)
	if err != nil {
		return nil, err
	}
	return v.Export(), nil
}
