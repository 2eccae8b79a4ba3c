package state

import (
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/five82/curio/internal/api"
	"github.com/five82/curio/internal/loader"
)

// ErrSuperseded is returned by a fetch whose response arrived after a newer
// fetch (or a reset) was issued on the same module. Its result is dropped.
var ErrSuperseded = errors.New("state: response superseded by a newer request")

// ErrInvalidObjectID is returned by FetchObject for ids that cannot exist.
var ErrInvalidObjectID = errors.New("state: invalid object id")

// Store is the root of the client-side state. It owns the modules and the
// reset bus they subscribe to.
type Store struct {
	Detail  *DetailModule
	List    *ListModule
	Loaders *loader.Registry

	fetcher api.ObjectFetcher
	logger  *slog.Logger

	mu     sync.Mutex
	nextID int
	resets map[int]func()
	order  []int
}

// Option configures a Store.
type Option func(*Store)

// WithLoaders shares a loader registry with the views.
func WithLoaders(r *loader.Registry) Option {
	return func(s *Store) {
		if r != nil {
			s.Loaders = r
		}
	}
}

// WithLogger sets the logger used for action failures and commit tracing.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// New builds a store whose modules start from their initial state.
func New(fetcher api.ObjectFetcher, opts ...Option) *Store {
	s := &Store{
		Loaders: loader.NewRegistry(),
		fetcher: fetcher,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		resets:  make(map[int]func()),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Detail = newDetailModule(s)
	s.List = newListModule(s)
	return s
}

// OnReset subscribes fn to the store-wide reset broadcast.
func (s *Store) OnReset(fn func()) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.resets[id] = fn
	s.order = append(s.order, id)
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.resets[id]; !ok {
			return
		}
		delete(s.resets, id)
		for i, v := range s.order {
			if v == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
}

// Reset restores every subscribed module to its initial snapshot.
func (s *Store) Reset() {
	s.mu.Lock()
	fns := make([]func(), 0, len(s.resets))
	for _, id := range s.order {
		if fn, ok := s.resets[id]; ok {
			fns = append(fns, fn)
		}
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

func (s *Store) traceCommit(module string, m Mutation) {
	s.logger.Debug("commit", "module", module, "mutation", m.Name())
}
