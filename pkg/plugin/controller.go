package plugin

import (
	"fmt"
	"io"
	"sync"

	"github.com/justyntemme/fl3ngr/pkg/framework/debug"
	"github.com/justyntemme/fl3ngr/pkg/framework/param"
	"github.com/justyntemme/fl3ngr/pkg/framework/state"
)

// ComponentHandler receives edit gestures the way a host's automation system
// does. Values are normalized.
type ComponentHandler interface {
	BeginEdit(id uint32) error
	PerformEdit(id uint32, normalized float64) error
	EndEdit(id uint32) error
}

// Listener is notified of host-initiated parameter changes with plain values.
type Listener interface {
	ParameterChanged(index int, value float64)
}

// ParameterInfo describes a parameter to a host.
type ParameterInfo struct {
	ID           uint32
	Title        string
	ShortTitle   string
	Units        string
	StepCount    int32
	DefaultValue float64 // normalized
	Flags        uint32
}

// Controller owns the canonical parameter values. Edits coming from an editor
// are stored and forwarded to the component handler; changes coming from the
// host are stored and broadcast to listeners.
type Controller struct {
	params *param.Registry
	state  *state.Manager
	log    *debug.Logger

	mu        sync.Mutex
	handler   ComponentHandler
	listeners []Listener
	editing   map[uint32]bool
}

// NewController creates a controller over a parameter registry.
func NewController(params *param.Registry) *Controller {
	return &Controller{
		params:  params,
		state:   state.NewManager(params),
		log:     debug.Default().With("controller"),
		editing: make(map[uint32]bool),
	}
}

// SetLogger replaces the controller's logger.
func (c *Controller) SetLogger(l *debug.Logger) {
	c.log = l
}

// SetComponentHandler sets the receiver of edit gestures; nil disables forwarding.
func (c *Controller) SetComponentHandler(h ComponentHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handler = h
}

// AddListener registers a listener for host-initiated changes.
func (c *Controller) AddListener(l Listener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, l)
}

// Parameters returns the registry holding the canonical values.
func (c *Controller) Parameters() *param.Registry {
	return c.params
}

// State returns the state manager used by Save and Load.
func (c *Controller) State() *state.Manager {
	return c.state
}

// GetParameterCount returns the number of parameters
func (c *Controller) GetParameterCount() int32 {
	return c.params.Count()
}

// GetParameterInfo describes the parameter at a registry index.
func (c *Controller) GetParameterInfo(index int32) (ParameterInfo, error) {
	p := c.params.GetByIndex(index)
	if p == nil {
		return ParameterInfo{}, fmt.Errorf("%w: index %d", ErrUnknownParameter, index)
	}
	return ParameterInfo{
		ID:           p.ID,
		Title:        p.Name,
		ShortTitle:   p.ShortName,
		Units:        p.Unit,
		StepCount:    p.StepCount,
		DefaultValue: p.DefaultValue,
		Flags:        p.Flags,
	}, nil
}

func (c *Controller) lookup(id uint32) (*param.Parameter, error) {
	p := c.params.Get(id)
	if p == nil {
		return nil, fmt.Errorf("%w: %d", ErrUnknownParameter, id)
	}
	return p, nil
}

// GetParamNormalized returns the normalized value of a parameter.
func (c *Controller) GetParamNormalized(id uint32) (float64, error) {
	p, err := c.lookup(id)
	if err != nil {
		return 0, err
	}
	return p.GetValue(), nil
}

// GetParamPlain returns the plain value of a parameter.
func (c *Controller) GetParamPlain(id uint32) (float64, error) {
	p, err := c.lookup(id)
	if err != nil {
		return 0, err
	}
	return p.GetPlainValue(), nil
}

// GetParamStringByValue formats a normalized value.
func (c *Controller) GetParamStringByValue(id uint32, normalized float64) (string, error) {
	p, err := c.lookup(id)
	if err != nil {
		return "", err
	}
	return p.FormatValue(normalized), nil
}

// GetParamValueByString parses text into a normalized value.
func (c *Controller) GetParamValueByString(id uint32, text string) (float64, error) {
	p, err := c.lookup(id)
	if err != nil {
		return 0, err
	}
	return p.ParseValue(text)
}

// BeginEdit starts an edit gesture on a parameter.
func (c *Controller) BeginEdit(id uint32) error {
	if _, err := c.lookup(id); err != nil {
		return err
	}

	c.mu.Lock()
	c.editing[id] = true
	h := c.handler
	c.mu.Unlock()

	if h != nil {
		return h.BeginEdit(id)
	}
	return nil
}

// SetValue stores a plain value coming from the editor and forwards it to the
// component handler.
func (c *Controller) SetValue(id uint32, plain float64) error {
	p, err := c.lookup(id)
	if err != nil {
		return err
	}
	p.SetPlainValue(plain)

	c.mu.Lock()
	h := c.handler
	c.mu.Unlock()

	if h != nil {
		return h.PerformEdit(id, p.GetValue())
	}
	return nil
}

// EndEdit finishes an edit gesture. Ending a parameter that is not being
// edited returns ErrNotEditing and is otherwise harmless.
func (c *Controller) EndEdit(id uint32) error {
	if _, err := c.lookup(id); err != nil {
		return err
	}

	c.mu.Lock()
	if !c.editing[id] {
		c.mu.Unlock()
		c.log.Debug("end edit without begin for parameter %d", id)
		return fmt.Errorf("%w: %d", ErrNotEditing, id)
	}
	delete(c.editing, id)
	h := c.handler
	c.mu.Unlock()

	if h != nil {
		return h.EndEdit(id)
	}
	return nil
}

// IsEditing reports whether an edit gesture is open on a parameter.
func (c *Controller) IsEditing(id uint32) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.editing[id]
}

// SetParamNormalized applies a host-initiated change (automation, preset
// recall) and notifies listeners.
func (c *Controller) SetParamNormalized(id uint32, normalized float64) error {
	p, err := c.lookup(id)
	if err != nil {
		return err
	}
	p.SetValue(normalized)
	c.notify(p)
	return nil
}

// SetParamPlain is SetParamNormalized for a plain value.
func (c *Controller) SetParamPlain(id uint32, plain float64) error {
	p, err := c.lookup(id)
	if err != nil {
		return err
	}
	return c.SetParamNormalized(id, p.Normalize(plain))
}

func (c *Controller) notify(p *param.Parameter) {
	c.mu.Lock()
	listeners := append([]Listener(nil), c.listeners...)
	c.mu.Unlock()

	value := p.GetPlainValue()
	for _, l := range listeners {
		l.ParameterChanged(int(p.ID), value)
	}
}

// Save writes the controller state.
func (c *Controller) Save(w io.Writer) error {
	if err := c.state.Save(w); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}

// Load restores state and notifies listeners of every parameter.
func (c *Controller) Load(r io.Reader) error {
	if err := c.state.Load(r); err != nil {
		return fmt.Errorf("load state: %w", err)
	}
	for _, p := range c.params.All() {
		c.notify(p)
	}
	c.log.Debug("state loaded, %d parameters", c.params.Count())
	return nil
}

// ResetToDefaults sets every parameter to its default and notifies listeners.
func (c *Controller) ResetToDefaults() {
	c.params.ResetToDefaults()
	for _, p := range c.params.All() {
		c.notify(p)
	}
}
