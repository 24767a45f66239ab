package plugin

import "errors"

var (
	// ErrUnknownParameter is returned for a parameter id the controller does not own.
	ErrUnknownParameter = errors.New("unknown parameter")
	// ErrNotEditing is returned by EndEdit without a matching BeginEdit.
	ErrNotEditing = errors.New("parameter is not being edited")
	// ErrUnknownPlugin is returned by Lookup for an unregistered id.
	ErrUnknownPlugin = errors.New("unknown plugin")
)
