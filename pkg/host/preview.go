package host

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/ncruces/zenity"

	"github.com/justyntemme/fl3ngr/pkg/editor"
	"github.com/justyntemme/fl3ngr/pkg/editor/view"
	"github.com/justyntemme/fl3ngr/pkg/framework/debug"
	"github.com/justyntemme/fl3ngr/pkg/plugin"
)

// PreviewOptions configures the preview window.
type PreviewOptions struct {
	Engine     *Engine
	Controller *plugin.Controller
	Policy     editor.EndEditPolicy

	// File is loaded before the window opens when set.
	File string
	// State is a saved controller state restored before the window opens,
	// including the panel's range toggles.
	State []byte
	// Persist receives the controller state when the window closes.
	Persist func(state []byte) error
}

type previewGame struct {
	*view.Panel
	ctx context.Context
}

// gestureLog records edit gestures the way a host's automation lane would.
type gestureLog struct {
	log *debug.Logger
}

func (g gestureLog) BeginEdit(id uint32) error {
	g.log.Debug("begin edit %d", id)
	return nil
}

func (g gestureLog) PerformEdit(id uint32, normalized float64) error {
	g.log.Debug("perform edit %d = %.4f", id, normalized)
	return nil
}

func (g gestureLog) EndEdit(id uint32) error {
	g.log.Debug("end edit %d", id)
	return nil
}

func (g *previewGame) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}
	return g.Panel.Update()
}

// NewEditor connects a panel adapter to the controller: the adapter becomes a
// listener, starts from the controller's current values and stores its range
// toggles in the controller state.
func NewEditor(ctrl *plugin.Controller, policy editor.EndEditPolicy) *editor.Adapter {
	adapter := editor.NewAdapter(ctrl, policy)
	ctrl.AddListener(adapter)
	ctrl.State().SetCustomState(adapter.SaveRanges, adapter.LoadRanges)
	for _, p := range ctrl.Parameters().All() {
		adapter.ParameterChanged(int(p.ID), p.GetPlainValue())
	}
	return adapter
}

// Preview opens the panel window and plays audio until the window is closed
// or ctx is canceled.
func Preview(ctx context.Context, opts PreviewOptions) error {
	log := debug.Default().With("preview")
	e := opts.Engine

	adapter := NewEditor(opts.Controller, opts.Policy)
	adapter.SetLogger(log.With("editor"))
	opts.Controller.SetComponentHandler(gestureLog{log: log.With("automation")})
	if len(opts.State) > 0 {
		if err := opts.Controller.Load(bytes.NewReader(opts.State)); err != nil {
			return err
		}
	}
	if opts.File != "" {
		if err := e.Load(opts.File); err != nil {
			return err
		}
	}

	panel := view.NewPanel(adapter, view.EbitenInput())
	panel.SetStatus(e.Status)
	panel.OnOpen(func() {
		if err := openFileDialog(e); err != nil {
			log.Error("open file: %v", err)
		}
	})

	if err := e.Start(); err != nil {
		return err
	}
	defer func() {
		if err := e.Close(); err != nil {
			log.Warn("close engine: %v", err)
		}
	}()

	ebiten.SetWindowSize(view.Width, view.Height)
	ebiten.SetWindowTitle(view.Title)
	if err := ebiten.RunGame(&previewGame{Panel: panel, ctx: ctx}); err != nil {
		return fmt.Errorf("preview window: %w", err)
	}

	if opts.Persist != nil {
		state, err := opts.Controller.State().Bytes()
		if err != nil {
			return err
		}
		if err := opts.Persist(state); err != nil {
			return fmt.Errorf("persist state: %w", err)
		}
	}
	return nil
}

func openFileDialog(e *Engine) error {
	filename, err := zenity.SelectFile(
		zenity.Title("Open Audio File"),
		zenity.FileFilters{{
			Name:     "Audio",
			Patterns: []string{"*.wav", "*.mp3", "*.flac"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return err
	}
	return e.Load(filename)
}
