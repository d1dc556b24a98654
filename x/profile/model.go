package profile

// TypeName is the data family identity of all profile shapes.
const TypeName = "Profile"

// ProfileV1 is the first schema version of a user profile.
type ProfileV1 struct {
	Name  string `json:"name" yaml:"name"`
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
}

func (ProfileV1) TypeName() string      { return TypeName }
func (ProfileV1) SchemaVersion() uint32 { return 1 }

// ProfileV2 splits the name into first and last name.
type ProfileV2 struct {
	FirstName string `json:"firstName" yaml:"firstName"`
	LastName  string `json:"lastName,omitempty" yaml:"lastName,omitempty"`
	Email     string `json:"email,omitempty" yaml:"email,omitempty"`
}

func (ProfileV2) TypeName() string      { return TypeName }
func (ProfileV2) SchemaVersion() uint32 { return 2 }

// Profile is the current schema version of a user profile. It allows many
// email addresses, the first one being the primary address.
type Profile struct {
	FirstName string   `json:"firstName" yaml:"firstName"`
	LastName  string   `json:"lastName,omitempty" yaml:"lastName,omitempty"`
	Emails    []string `json:"emails" yaml:"emails"`
}

func (Profile) TypeName() string      { return TypeName }
func (Profile) SchemaVersion() uint32 { return 3 }

// PrimaryEmail returns the primary email address or an empty string.
func (p Profile) PrimaryEmail() string {
	if len(p.Emails) == 0 {
		return ""
	}
	return p.Emails[0]
}
