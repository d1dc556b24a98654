package profile

import (
	"strings"

	"github.com/iov-one/versioned/errors"
	"github.com/iov-one/versioned/migration"
)

// Handlers returns handlers of all profile schema versions.
func Handlers() []migration.Handler {
	return []migration.Handler{
		migration.Initial[ProfileV1](),
		migration.Upgrade(migrateToV2),
		migration.Upgrade(migrateToV3),
	}
}

func migrateToV2(v1 ProfileV1) (ProfileV2, error) {
	name := strings.TrimSpace(v1.Name)
	if name == "" {
		return ProfileV2{}, errors.Wrap(errors.ErrInput, "name is required")
	}
	// Everything after the first word is the last name.
	first, last := name, ""
	if i := strings.IndexAny(name, " \t"); i > 0 {
		first, last = name[:i], strings.TrimSpace(name[i+1:])
	}
	return ProfileV2{
		FirstName: first,
		LastName:  last,
		Email:     v1.Email,
	}, nil
}

func migrateToV3(v2 ProfileV2) (Profile, error) {
	emails := []string{}
	if v2.Email != "" {
		emails = append(emails, v2.Email)
	}
	return Profile{
		FirstName: v2.FirstName,
		LastName:  v2.LastName,
		Emails:    emails,
	}, nil
}
