package versioned

import "fmt"

// Maj is the major version number (updated on breaking release)
const Maj = 0

// Min is the minor version number (updated on minor releases)
const Min = 1

// Fix is the patch number (updated on bugfix releases)
const Fix = 0

// version is private to avoid modifications
var version = fmt.Sprintf("v%d.%d.%d", Maj, Min, Fix)

// GitCommit set by build flags
var GitCommit = ""

// Version returns the module version, followed by the commit hash when the
// binary was built with one.
func Version() string {
	v := version
	if GitCommit != "" {
		v += " " + GitCommit
	}
	return v
}
