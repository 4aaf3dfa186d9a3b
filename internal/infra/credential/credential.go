// Package credential resolves channel credentials that are either literal
// values or produced on demand (environment, secret files, secret-manager calls).
//
// A Resolver memoizes the first successful value for its lifetime. There is no
// refresh: a revoked credential keeps failing until the process restarts.
package credential

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"
)

// ErrEmptyCredential is returned when a source produces an empty value.
var ErrEmptyCredential = errors.New("credential resolved to empty value")

// Source produces a credential value.
type Source interface {
	Resolve(ctx context.Context) (string, error)
}

// Static is a literal credential.
type Static string

// Resolve returns the literal value.
func (s Static) Resolve(context.Context) (string, error) {
	if s == "" {
		return "", ErrEmptyCredential
	}
	return string(s), nil
}

// Func adapts a deferred lookup, for example a secret-manager call.
type Func func(ctx context.Context) (string, error)

// Resolve invokes f.
func (f Func) Resolve(ctx context.Context) (string, error) {
	return f(ctx)
}

// Env reads the named environment variable at resolve time.
type Env string

// Resolve reads the variable.
func (e Env) Resolve(context.Context) (string, error) {
	v := strings.TrimSpace(os.Getenv(string(e)))
	if v == "" {
		return "", fmt.Errorf("env %s: %w", string(e), ErrEmptyCredential)
	}
	return v, nil
}

// File reads a secret mounted as a file, trimming surrounding whitespace.
type File string

// Resolve reads the file.
func (f File) Resolve(context.Context) (string, error) {
	b, err := os.ReadFile(string(f))
	if err != nil {
		return "", fmt.Errorf("read credential file: %w", err)
	}
	v := strings.TrimSpace(string(b))
	if v == "" {
		return "", fmt.Errorf("credential file %s: %w", string(f), ErrEmptyCredential)
	}
	return v, nil
}

// Resolver memoizes a Source. Concurrent first calls share a single lookup.
// Failed lookups are not cached, so the next call tries again.
type Resolver struct {
	src   Source
	group singleflight.Group

	mu    sync.RWMutex
	value string
	done  bool
}

// NewResolver wraps src.
func NewResolver(src Source) *Resolver {
	return &Resolver{src: src}
}

// Resolve returns the memoized value, performing the lookup on first use.
func (r *Resolver) Resolve(ctx context.Context) (string, error) {
	r.mu.RLock()
	if r.done {
		v := r.value
		r.mu.RUnlock()
		return v, nil
	}
	r.mu.RUnlock()

	v, err, _ := r.group.Do("resolve", func() (any, error) {
		r.mu.RLock()
		if r.done {
			v := r.value
			r.mu.RUnlock()
			return v, nil
		}
		r.mu.RUnlock()

		v, err := r.src.Resolve(ctx)
		if err != nil {
			return "", err
		}
		if v == "" {
			return "", ErrEmptyCredential
		}

		r.mu.Lock()
		r.value = v
		r.done = true
		r.mu.Unlock()
		return v, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}
