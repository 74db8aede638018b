// Package executor performs the effects requested by nav.State against a
// store and turns their outcome back into inputs.
package executor

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/HaiFongPan/kupo/internal/nav"
	"github.com/HaiFongPan/kupo/internal/preview"
	"github.com/HaiFongPan/kupo/internal/store"
)

// Executor runs effects one at a time
type Executor struct {
	store   store.Store
	preview *preview.Loader
	timeout time.Duration
}

// New creates an executor. Each effect gets at most timeout to finish;
// zero means no limit.
func New(st store.Store, loader *preview.Loader, timeout time.Duration) *Executor {
	return &Executor{store: st, preview: loader, timeout: timeout}
}

// Preview returns the preview loader, nil when previews are off
func (e *Executor) Preview() *preview.Loader {
	return e.preview
}

// Store returns the backing store
func (e *Executor) Store() store.Store {
	return e.store
}

// Execute performs eff and returns the input that reports its result.
// Quit has no result and returns nil.
func (e *Executor) Execute(ctx context.Context, eff nav.Effect) nav.Input {
	logrus.WithFields(logrus.Fields{
		"effect":  fmt.Sprintf("%T", eff),
		"backend": e.store.Name(),
	}).Debug("Executing effect")

	// a batch is never cut short, each path gets its own timeout
	if eff, ok := eff.(nav.DeletePaths); ok {
		return e.deletePaths(ctx, eff.Paths)
	}

	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	switch eff := eff.(type) {
	case nav.ReadDir:
		entries, err := e.store.ReadDir(ctx, eff.Path)
		return nav.DirLoaded{Path: eff.Path, Entries: entries, Highlight: eff.Highlight, Err: err}

	case nav.CreateEntry:
		var err error
		if eff.Kind == nav.KindDir {
			err = e.store.CreateDir(ctx, eff.Path)
		} else {
			err = e.store.CreateFile(ctx, eff.Path)
		}
		if err != nil {
			logrus.WithFields(logrus.Fields{"path": eff.Path, "error": err}).Warn("Create failed")
		}
		return nav.EntryCreated{Path: eff.Path, Kind: eff.Kind, Err: err}

	case nav.LoadPreview:
		if e.preview == nil {
			return nav.PreviewLoaded{Path: eff.Path}
		}
		lines, err := e.preview.Load(ctx, eff.Path, eff.Kind)
		return nav.PreviewLoaded{Path: eff.Path, Lines: lines, Err: err}
	}
	return nil
}

func (e *Executor) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.timeout > 0 {
		return context.WithTimeout(ctx, e.timeout)
	}
	return ctx, func() {}
}

// deletePaths removes every path, carrying on past failures
func (e *Executor) deletePaths(ctx context.Context, paths []string) nav.BatchDeleted {
	var result nav.BatchDeleted
	for _, p := range paths {
		pctx, cancel := e.withTimeout(ctx)
		err := e.store.Delete(pctx, p)
		cancel()
		if err != nil {
			logrus.WithFields(logrus.Fields{"path": p, "error": err}).Error("Failed to delete")
			result.Failures = append(result.Failures, nav.Failure{Path: p, Err: err})
			continue
		}
		logrus.WithField("path", p).Info("Deleted")
		result.Deleted = append(result.Deleted, p)
	}
	return result
}
