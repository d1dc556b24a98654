package migration

import (
	"sort"

	"github.com/iov-one/versioned/errors"
	"github.com/tendermint/tendermint/libs/log"
	"go.uber.org/multierr"
)

// Registry holds one handler for each schema version of each registered
// data family.
//
// A registry is built once, during the program startup and it cannot be
// modified afterwards. It is safe to use a registry from multiple goroutines.
type Registry struct {
	families map[string]map[uint32]Handler
	logger   log.Logger
	metrics  *Metrics
}

// Option configures a registry.
type Option func(*Registry)

// WithLogger sets the logger used by a registry and all operations that are
// using it.
func WithLogger(logger log.Logger) Option {
	return func(r *Registry) {
		r.logger = logger.With("module", "migration")
	}
}

// WithMetrics enables metrics collection for all operations using a
// registry.
func WithMetrics(m *Metrics) Option {
	return func(r *Registry) {
		r.metrics = m
	}
}

// NewRegistry returns a registry of given handlers. Each handler is stored
// under its type name and schema version. If more than one handler is given
// for the same version of a data family, the last one is used.
//
// Returned registry is not validated. Use Validate method or MustNewRegistry
// to ensure that each data family can be migrated to its current version.
func NewRegistry(handlers []Handler, opts ...Option) *Registry {
	r := &Registry{
		families: make(map[string]map[uint32]Handler),
		logger:   log.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	for _, h := range handlers {
		versions, ok := r.families[h.TypeName()]
		if !ok {
			versions = make(map[uint32]Handler)
			r.families[h.TypeName()] = versions
		}
		versions[h.SchemaVersion()] = h
	}
	return r
}

// MustNewRegistry returns a validated registry of given handlers. It panics
// if any data family does not declare all versions from 1 to its current
// version.
func MustNewRegistry(handlers []Handler, opts ...Option) *Registry {
	r := NewRegistry(handlers, opts...)
	if err := r.Validate(); err != nil {
		panic(err)
	}
	return r
}

// Validate returns an error if a schema version chain of any registered data
// family has a hole. Each data family must declare all versions starting with
// 1. All discovered problems are reported.
func (r *Registry) Validate() error {
	var err error
	for _, name := range r.Types() {
		versions := r.families[name]
		if _, ok := versions[0]; ok {
			err = multierr.Append(err, errors.Wrapf(errors.ErrSchema, "%s: version 0 is not allowed", name))
		}
		current := r.highest(name)
		for v := uint32(1); v <= current; v++ {
			if _, ok := versions[v]; !ok {
				err = multierr.Append(err, errors.Wrapf(errors.ErrSchema, "%s: handler for version %d missing", name, v))
			}
		}
	}
	return err
}

// CurrentVersion returns the current schema version of given data family,
// which is the highest registered version. It returns ErrNotFound if no
// handler was registered for the data family.
func (r *Registry) CurrentVersion(typeName string) (uint32, error) {
	if _, ok := r.families[typeName]; !ok {
		r.logger.Error("handler not found", "type", typeName)
		return 0, errors.Wrapf(errors.ErrNotFound, "type %q", typeName)
	}
	return r.highest(typeName), nil
}

func (r *Registry) highest(typeName string) uint32 {
	var max uint32
	for v := range r.families[typeName] {
		if v > max {
			max = v
		}
	}
	return max
}

// Lookup returns the handler registered for given schema version of a data
// family.
func (r *Registry) Lookup(typeName string, version uint32) (Handler, bool) {
	h, ok := r.families[typeName][version]
	return h, ok
}

// Types returns the sorted names of all registered data families.
func (r *Registry) Types() []string {
	names := make([]string, 0, len(r.families))
	for name := range r.families {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
