package migration

import (
	"github.com/iov-one/versioned"
	"github.com/iov-one/versioned/errors"
)

// MigrateToCurrent returns given record migrated to the current schema
// version of its data family. T must be the shape of the current version.
//
// Migration is applied one version at a time, in sequence, starting with the
// version following the record version. A record that is already of the
// current version is returned unchanged. A record declaring a version newer
// than the current one is rejected.
func MigrateToCurrent[T versioned.Record](r *Registry, rec versioned.Record) (T, error) {
	var zero T
	name := zero.TypeName()
	if rec == nil {
		return zero, errors.Wrapf(errors.ErrInput, "nil %s record", name)
	}
	if rec.TypeName() != name {
		return zero, errors.Wrapf(errors.ErrType, "cannot migrate %s to %s", rec.TypeName(), name)
	}

	migrated, err := migrate(r, rec)
	if err != nil {
		return zero, err
	}

	current, ok := migrated.(T)
	if !ok {
		return zero, errors.Wrapf(errors.ErrType, "current version of %s is %T, not %T", name, migrated, zero)
	}
	return current, nil
}

// migrate applies all missing migration steps to given record.
func migrate(r *Registry, rec versioned.Record) (versioned.Record, error) {
	name := rec.TypeName()
	current, err := r.CurrentVersion(name)
	if err != nil {
		return nil, err
	}

	from := rec.SchemaVersion()
	switch {
	case from == 0:
		return nil, errors.Wrapf(errors.ErrInput, "%s: schema version must be greater than zero", name)
	case from > current:
		return nil, errors.Wrapf(errors.ErrSchema, "%s: schema version %d is newer than current %d", name, from, current)
	}

	for v := from + 1; v <= current; v++ {
		h, ok := r.Lookup(name, v)
		if !ok {
			return nil, errors.Wrapf(errors.ErrSchema, "%s: migration to version %d missing", name, v)
		}
		next, err := h.MigrateFromPrevious(rec)
		if err != nil {
			return nil, errors.Wrapf(err, "%s: migration to version %d", name, v)
		}
		if next == nil || next.TypeName() != name || next.SchemaVersion() != v {
			return nil, errors.Wrapf(errors.ErrState, "%s: migration to version %d returned %T", name, v, next)
		}
		r.logger.Debug("migrated", "type", name, "from", v-1, "to", v)
		r.metrics.observeStep(name, v)
		rec = next
	}
	return rec, nil
}
