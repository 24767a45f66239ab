// Package state serializes plugin parameter values plus an optional custom
// block into a compact binary blob.
package state

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/justyntemme/fl3ngr/pkg/framework/param"
)

const magic = "FL3NGR"

// ErrInvalidFormat is returned when a blob does not start with the expected header.
var ErrInvalidFormat = errors.New("invalid state format")

// Manager handles plugin state saving and loading
type Manager struct {
	version    uint32
	registry   *param.Registry
	customSave CustomStateFunc
	customLoad CustomLoadFunc
}

// CustomStateFunc allows plugins to save additional state beyond parameters
type CustomStateFunc func(w io.Writer) error

// CustomLoadFunc reads back what the matching CustomStateFunc wrote.
type CustomLoadFunc func(r io.Reader) error

// NewManager creates a new state manager
func NewManager(registry *param.Registry) *Manager {
	return &Manager{
		version:  1,
		registry: registry,
	}
}

// SetCustomState sets the functions used to save and restore custom state.
func (m *Manager) SetCustomState(save CustomStateFunc, load CustomLoadFunc) {
	m.customSave = save
	m.customLoad = load
}

// Save writes the plugin state to a writer
func (m *Manager) Save(w io.Writer) error {
	if _, err := io.WriteString(w, magic); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, m.version); err != nil {
		return err
	}

	if err := binary.Write(w, binary.LittleEndian, m.registry.Count()); err != nil {
		return err
	}
	for _, p := range m.registry.All() {
		if err := binary.Write(w, binary.LittleEndian, p.ID); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, p.GetValue()); err != nil {
			return err
		}
	}

	// custom block is length prefixed so readers without a loader can skip it
	var custom bytes.Buffer
	if m.customSave != nil {
		if err := m.customSave(&custom); err != nil {
			return fmt.Errorf("save custom state: %w", err)
		}
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(custom.Len())); err != nil {
		return err
	}
	_, err := w.Write(custom.Bytes())
	return err
}

// Load reads the plugin state from a reader. Unknown parameter ids are
// ignored for forward compatibility.
func (m *Manager) Load(r io.Reader) error {
	header := make([]byte, len(magic))
	if _, err := io.ReadFull(r, header); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	if string(header) != magic {
		return ErrInvalidFormat
	}

	var version uint32
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return err
	}
	if version > m.version {
		return fmt.Errorf("state version %d is newer than supported version %d", version, m.version)
	}

	var paramCount int32
	if err := binary.Read(r, binary.LittleEndian, &paramCount); err != nil {
		return err
	}
	if paramCount < 0 {
		return fmt.Errorf("%w: negative parameter count", ErrInvalidFormat)
	}

	type entry struct {
		id    uint32
		value float64
	}
	var entries []entry
	for i := int32(0); i < paramCount; i++ {
		var e entry
		if err := binary.Read(r, binary.LittleEndian, &e.id); err != nil {
			return err
		}
		if err := binary.Read(r, binary.LittleEndian, &e.value); err != nil {
			return err
		}
		entries = append(entries, e)
	}

	var customLen uint32
	if err := binary.Read(r, binary.LittleEndian, &customLen); err != nil {
		return err
	}
	if customLen > 0 {
		custom := io.LimitReader(r, int64(customLen))
		if m.customLoad == nil {
			if _, err := io.Copy(io.Discard, custom); err != nil {
				return err
			}
		} else if err := m.customLoad(custom); err != nil {
			return fmt.Errorf("load custom state: %w", err)
		}
	}

	// parameters are applied only once the whole blob has been accepted
	for _, e := range entries {
		if p := m.registry.Get(e.id); p != nil {
			p.SetValue(e.value)
		}
	}
	return nil
}

// Bytes returns the saved state as a byte slice.
func (m *Manager) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := m.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SetBytes loads state from a byte slice.
func (m *Manager) SetBytes(data []byte) error {
	return m.Load(bytes.NewReader(data))
}
