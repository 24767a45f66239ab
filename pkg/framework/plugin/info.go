package plugin

import (
	"errors"

	"github.com/google/uuid"
)

// Namespace used to derive class ids from reverse-DNS plugin ids.
var classNamespace = uuid.MustParse("6f1c5a0e-3f2d-4b8e-9a47-f13e6a2b8c01")

// ErrEmptyID is returned by ValidateUID for an Info without an ID.
var ErrEmptyID = errors.New("plugin id is empty")

// Info contains plugin metadata
type Info struct {
	ID       string // Unique plugin identifier (e.g., "com.example.myplugin")
	Name     string // Display name
	Version  string // Semantic version (e.g., "1.0.0")
	Vendor   string // Company/developer name
	Category string // Plugin category (e.g., "Fx", "Instrument")
}

// UID derives a stable 16-byte class id from the string ID.
func (i Info) UID() [16]byte {
	return uuid.NewSHA1(classNamespace, []byte(i.ID))
}

// UIDString returns the class id in canonical UUID text form.
func (i Info) UIDString() string {
	return uuid.UUID(i.UID()).String()
}

// ValidateUID reports whether a usable class id can be derived.
func (i Info) ValidateUID() error {
	if i.ID == "" {
		return ErrEmptyID
	}
	return nil
}
