// Package dispatch orchestrates outbound LINE messages.
//
// A Service normalizes caller messages, performs exactly one platform call per
// operation (push, multicast or broadcast) and appends one history record after
// each successful send. Every failure is returned to the caller; nothing is retried.
package dispatch

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"line-dispatch/internal/domain/entity"
	"line-dispatch/internal/infra/credential"
	"line-dispatch/internal/infra/line"
	"line-dispatch/internal/infra/storage"
	"line-dispatch/internal/observability/metrics"
	"line-dispatch/internal/repository"
	"line-dispatch/internal/usecase/report"

	"github.com/oklog/ulid/v2"
	"github.com/sony/gobreaker"
)

// Operation labels used in logs, spans and metrics.
const (
	opSend      = "send"
	opMulticast = "multicast"
	opBroadcast = "broadcast"
	opSendFile  = "send_file"
)

// PlatformFactory builds the platform client from resolved credentials.
type PlatformFactory func(ctx context.Context, creds line.Credentials) (line.API, error)

// Config is the pass-through configuration consumed at construction.
type Config struct {
	AccessToken   credential.Source
	ChannelSecret credential.Source

	// DefaultNotificationDisabled applies when a call does not say otherwise.
	DefaultNotificationDisabled bool
	DefaultLocale               report.Locale

	// AllowedMIMETypes restricts SendFile. Entries may use a "type/*" wildcard.
	// Empty allows everything.
	AllowedMIMETypes []string
}

// Service is the dispatch entry point shared by HTTP handlers and hooks.
type Service struct {
	cfg     Config
	factory PlatformFactory
	history repository.MessageHistoryRepository
	stager  storage.Stager

	token  *credential.Resolver
	secret *credential.Resolver

	logger         *slog.Logger
	now            func() time.Time
	newID          func() string
	onHistoryError func(error)

	mu     sync.RWMutex
	client line.API
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator overrides history record id generation. Defaults to ULIDs.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) { s.newID = fn }
}

// WithHistoryErrorHandler registers a callback for swallowed history write failures.
func WithHistoryErrorHandler(fn func(error)) Option {
	return func(s *Service) { s.onHistoryError = fn }
}

// NewService creates a Service. history and stager may be nil: without a
// history store nothing is recorded, and without a stager SendFile accepts URLs only.
func NewService(cfg Config, factory PlatformFactory, history repository.MessageHistoryRepository, stager storage.Stager, opts ...Option) *Service {
	s := &Service{
		cfg:     cfg,
		factory: factory,
		history: history,
		stager:  stager,
		token:   credential.NewResolver(cfg.AccessToken),
		secret:  credential.NewResolver(cfg.ChannelSecret),
		logger:  slog.Default(),
		now:     time.Now,
		newID:   func() string { return ulid.Make().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Init eagerly builds the platform client. Calling it is optional; the first
// dispatch does the same thing.
func (s *Service) Init(ctx context.Context) error {
	_, err := s.platform(ctx)
	return err
}

// Ready reports whether the platform client has been built.
func (s *Service) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.client != nil
}

// Breaker is the read-only view of a circuit breaker used by health reporting.
type Breaker interface {
	Name() string
	State() gobreaker.State
}

// Breaker returns the breaker guarding the platform client, or nil when the
// client is not built yet or runs without one.
func (s *Service) Breaker() Breaker {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if b, ok := s.client.(Breaker); ok {
		return b
	}
	return nil
}

// platform returns the client, building it on first use. A failed build is
// not cached and is attempted again by the next call.
func (s *Service) platform(ctx context.Context) (line.API, error) {
	s.mu.RLock()
	c := s.client
	s.mu.RUnlock()
	if c != nil {
		return c, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client != nil {
		return s.client, nil
	}

	token, err := s.token.Resolve(ctx)
	if err != nil {
		metrics.RecordPlatformInit(false)
		return nil, &entity.PlatformError{Op: "resolve LINE channel access token", Err: err}
	}
	secret, err := s.secret.Resolve(ctx)
	if err != nil {
		metrics.RecordPlatformInit(false)
		return nil, &entity.PlatformError{Op: "resolve LINE channel secret", Err: err}
	}

	c, err = s.factory(ctx, line.Credentials{AccessToken: token, ChannelSecret: secret})
	metrics.RecordPlatformInit(err == nil)
	if err != nil {
		return nil, &entity.PlatformError{Op: "initialize LINE client", Err: err}
	}

	s.client = c
	s.logger.Info("LINE client initialized")
	return c, nil
}

// NewPlatformFactory returns the production factory. dryRun swaps in the
// logging no-op client and breaker wraps the result in a circuit breaker.
func NewPlatformFactory(cfg line.Config, dryRun, breaker bool, logger *slog.Logger) PlatformFactory {
	return func(_ context.Context, creds line.Credentials) (line.API, error) {
		var api line.API
		if dryRun {
			api = line.NewNoOpClient(logger)
		} else {
			c, err := line.NewClient(creds, cfg)
			if err != nil {
				return nil, err
			}
			api = c
		}
		if breaker {
			api = line.NewBreakerClient(api)
		}
		return api, nil
	}
}
