// Copyright © 2025 Texelpad contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: engine/engine.go
// Summary: Single-goroutine render and event loop.

package engine

import (
	"fmt"
	"image"
	"log"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelpad/compositor"
	"github.com/framegrace/texelpad/config"
	"github.com/framegrace/texelpad/glyph"
	"github.com/framegrace/texelpad/grid"
	"github.com/framegrace/texelpad/host"
	"github.com/framegrace/texelpad/input"
	"github.com/framegrace/texelpad/internal/statestore"
	"github.com/framegrace/texelpad/layout"
	"github.com/framegrace/texelpad/theme"
	"github.com/framegrace/texelpad/vkeys"
)

const frameInterval = 16 * time.Millisecond

// App is the program whose cells the engine composites. The engine calls
// every method from its own goroutine; Run is the one exception, started
// on a goroutine of its own for apps with background work.
type App interface {
	Run() error
	Stop()
	Resize(cols, rows int)
	HandleEvent(ev tcell.Event)
	Draw(g *grid.Grid)
}

// StatefulApp is implemented by apps that carry state across a host
// suspend/resume cycle. The blob is opaque to the engine.
type StatefulApp interface {
	SaveState() []byte
	RestoreState(data []byte)
}

// Surface is where finished frames go.
type Surface interface {
	Size() (widthPx, heightPx int)
	Present(frame *image.RGBA) error
}

// RawKey is a hardware key press as reported by the host.
type RawKey struct {
	Code int
	Mods tcell.ModMask
}

// Options wires the engine's host collaborators. Every field is optional.
type Options struct {
	Config config.Config
	// Bridge is the host glyph service consulted when the embedded
	// rasterizer misses.
	Bridge glyph.External
	// IME drives the host soft keyboard.
	IME *host.Toggler
	// Insets is the rich inset query; coarse fallback and zero insets
	// cover its absence.
	Insets host.InsetSource
	// StatePath enables suspend/resume persistence when non-empty.
	StatePath string
}

// Engine owns the grid, layout, glyph cache, and frame buffer. All of
// them are touched only from the Run goroutine; hosts feed input through
// the Post methods.
type Engine struct {
	cfg      config.Config
	app      App
	surface  Surface
	renderer *glyph.Renderer
	comp     *compositor.Compositor
	mapper   *input.Mapper
	keyboard *vkeys.Keyboard
	regions  []vkeys.Region
	ime      *host.Toggler
	insetSrc host.InsetSource
	store    *statestore.Store
	theme    *theme.Theme

	cells *grid.Grid
	frame *image.RGBA

	// lay is written by reshape on the Run goroutine and read by hosts
	// through Layout; layMu orders those accesses.
	layMu  sync.Mutex
	lay    layout.Layout
	insets layout.Insets

	// savedLayout is the pre-suspend snapshot loaded on resume; its
	// insets serve as the reshape fallback until the host answers an
	// inset query again.
	savedLayout *SavedState

	visibleHeight int // system IME occlusion, 0 when hidden
	imeShown      bool
	paused        bool
	feedbackLive  bool

	touches  chan input.Touch
	keys     chan RawKey
	hostEvs  chan host.Event
	refresh  chan struct{}
	quit     chan struct{}
	stopOnce sync.Once
}

// New builds an engine for app rendering onto surface.
func New(app App, surface Surface, opts Options) (*Engine, error) {
	if app == nil || surface == nil {
		return nil, fmt.Errorf("engine: app and surface are required")
	}
	cfg := opts.Config
	if cfg.FontSizePx == 0 {
		cfg = config.DefaultConfig()
	}

	th := theme.FromHex(cfg.Theme.Foreground, cfg.Theme.Background, cfg.Theme.Cursor)

	renderer, err := glyph.NewRenderer(glyph.Config{
		SizePx:         cfg.FontSizePx,
		CacheCapacity:  cfg.CacheCapacity,
		External:       opts.Bridge,
		PreferExternal: cfg.PreferHostRenderer,
	})
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	if cfg.WarmCache {
		renderer.Warm(th.DefaultFg)
	}

	e := &Engine{
		cfg:      cfg,
		app:      app,
		surface:  surface,
		renderer: renderer,
		comp:     compositor.New(renderer, th),
		mapper:   input.NewMapper(),
		keyboard: vkeys.New(cfg.ButtonHeightPx),
		ime:      opts.IME,
		insetSrc: opts.Insets,
		theme:    th,
		touches:  make(chan input.Touch, 32),
		keys:     make(chan RawKey, 32),
		hostEvs:  make(chan host.Event, 8),
		refresh:  make(chan struct{}, 1),
		quit:     make(chan struct{}),
	}

	if opts.StatePath != "" {
		store, err := statestore.Open(opts.StatePath)
		if err != nil {
			log.Printf("engine: state store unavailable: %v", err)
		} else {
			e.store = store
		}
	}
	return e, nil
}

// PostTouch feeds a pointer event into the loop. Drops when the loop is
// saturated rather than blocking the host UI thread.
func (e *Engine) PostTouch(t input.Touch) {
	select {
	case e.touches <- t:
	default:
	}
}

// PostKey feeds a hardware key press into the loop.
func (e *Engine) PostKey(k RawKey) {
	select {
	case e.keys <- k:
	default:
	}
}

// PostHostEvent feeds a lifecycle or surface notification into the loop.
// Lifecycle events are never dropped while the loop runs; after Stop the
// send is abandoned instead of blocking the host thread.
func (e *Engine) PostHostEvent(ev host.Event) {
	select {
	case e.hostEvs <- ev:
	case <-e.quit:
	}
}

// Refresh requests a draw pass without an input event.
func (e *Engine) Refresh() {
	select {
	case e.refresh <- struct{}{}:
	default:
	}
}

// Stop makes Run return after the current iteration.
func (e *Engine) Stop() {
	e.stopOnce.Do(func() { close(e.quit) })
}

// Layout returns the most recently computed screen layout. Safe to call
// from host threads.
func (e *Engine) Layout() layout.Layout {
	e.layMu.Lock()
	defer e.layMu.Unlock()
	return e.lay
}

// Run drives the loop until Stop or a quit event. One draw pass per tick,
// and only when something changed.
func (e *Engine) Run() error {
	go func() {
		if err := e.app.Run(); err != nil {
			log.Printf("engine: app stopped: %v", err)
			e.Stop()
		}
	}()

	e.reshape()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()
	defer e.close()
	// Any exit path marks the engine stopped so late posts cannot block.
	defer e.Stop()

	dirty := true
	for {
		select {
		case t := <-e.touches:
			e.handleTouch(t)
			dirty = true
		case k := <-e.keys:
			if ev := e.mapper.MapKey(k.Code, k.Mods); ev != nil {
				e.app.HandleEvent(ev)
			}
			dirty = true
		case hev := <-e.hostEvs:
			if _, isQuit := hev.(host.EventQuit); isQuit {
				return nil
			}
			e.handleHostEvent(hev)
			dirty = true
		case <-e.refresh:
			dirty = true
		case now := <-ticker.C:
			if e.paused {
				continue
			}
			// Key-press feedback decays without new input; keep
			// drawing until one pass after it expires.
			if e.mapper.State().FeedbackActive(now) {
				dirty = true
				e.feedbackLive = true
			} else if e.feedbackLive {
				dirty = true
				e.feedbackLive = false
			}
			if dirty {
				e.draw()
				dirty = false
			}
		case <-e.quit:
			return nil
		}
	}
}

func (e *Engine) handleTouch(t input.Touch) {
	ev := e.mapper.MapTouch(t, e.lay, e.regions)
	switch ev := ev.(type) {
	case nil:
	case *input.EventToggleKeyboard:
		e.toggleIME()
	default:
		e.app.HandleEvent(ev)
	}
}

// toggleIME posts the show/hide to the host without awaiting it; the
// host reports the resulting visibility change back through the event
// channel.
func (e *Engine) toggleIME() {
	if e.ime == nil {
		return
	}
	show := !e.imeShown
	e.imeShown = show
	if show {
		go e.ime.Show()
	} else {
		go e.ime.Hide()
	}
}

func (e *Engine) handleHostEvent(ev host.Event) {
	switch ev := ev.(type) {
	case host.EventResize:
		e.reshape()
	case host.EventKeyboardVisibility:
		if ev.Visible {
			e.visibleHeight = ev.VisibleHeightPx
		} else {
			e.visibleHeight = 0
		}
		e.imeShown = ev.Visible
		e.reshape()
	case host.EventPause:
		e.paused = true
		e.saveState()
	case host.EventResume:
		e.paused = false
		e.restoreState()
		e.reshape()
	}
}

// reshape recomputes the layout and replaces the grid and frame buffer.
// Cells outside the new bounds are discarded, new cells are blank.
func (e *Engine) reshape() {
	w, h := e.surface.Size()
	usableH := h
	if e.visibleHeight > 0 && e.visibleHeight < h {
		usableH = e.visibleHeight
	}

	fallback := host.InsetSource(host.CoarseInsets{})
	if e.savedLayout != nil {
		fallback = host.StaticInsets{Top: e.savedLayout.StatusBarPx, Bottom: e.savedLayout.NavBarPx}
	}
	e.insets = host.QueryInsets(e.insetSrc, fallback)
	fw, fh := e.renderer.CellSize()
	lay := layout.Compute(w, usableH, fw, fh, e.insets, e.keyboard.HeightPx())
	e.layMu.Lock()
	e.lay = lay
	e.layMu.Unlock()
	e.regions = e.keyboard.Regions(lay.WidthPx, lay.KeyboardY)

	if e.cells == nil {
		e.cells = grid.New(lay.Cols, lay.Rows)
	} else {
		e.cells = e.cells.Resize(lay.Cols, lay.Rows)
	}
	if e.frame == nil || e.frame.Rect.Dx() != w || e.frame.Rect.Dy() != usableH {
		e.frame = image.NewRGBA(image.Rect(0, 0, w, usableH))
	}
	e.comp.Invalidate()
	e.app.Resize(lay.Cols, lay.Rows)
}

func (e *Engine) draw() {
	e.app.Draw(e.cells)
	if err := e.comp.Composite(e.frame, e.cells, e.lay); err != nil {
		log.Printf("engine: composite: %v", err)
	}
	e.keyboard.Render(e.mapper.State(), e.frame, e.lay.WidthPx, e.lay.KeyboardY)
	if err := e.surface.Present(e.frame); err != nil {
		log.Printf("engine: present: %v", err)
	}
}

const (
	stateKeyLayout = "layout"
	stateKeyApp    = "app"
)

func (e *Engine) saveState() {
	if e.store == nil {
		return
	}
	w, h := e.surface.Size()
	st := SavedState{
		WidthPx:     w,
		HeightPx:    h,
		Orientation: layout.OrientationOf(w, h),
		StatusBarPx: e.insets.Top,
		NavBarPx:    e.insets.Bottom,
	}
	if err := e.store.Save(stateKeyLayout, st.Encode()); err != nil {
		log.Printf("engine: save layout state: %v", err)
	}
	if sa, ok := e.app.(StatefulApp); ok {
		if err := e.store.Save(stateKeyApp, sa.SaveState()); err != nil {
			log.Printf("engine: save app state: %v", err)
		}
	}
}

func (e *Engine) restoreState() {
	if e.store == nil {
		return
	}
	if blob, err := e.store.Load(stateKeyLayout); err == nil {
		st, err := DecodeState(blob)
		if err != nil {
			log.Printf("engine: restore layout state: %v", err)
		} else {
			e.savedLayout = &st
		}
	} else if err != statestore.ErrNotFound {
		log.Printf("engine: restore layout state: %v", err)
	}
	sa, ok := e.app.(StatefulApp)
	if !ok {
		return
	}
	blob, err := e.store.Load(stateKeyApp)
	if err != nil {
		if err != statestore.ErrNotFound {
			log.Printf("engine: restore app state: %v", err)
		}
		return
	}
	sa.RestoreState(blob)
}

func (e *Engine) close() {
	e.app.Stop()
	if e.store != nil {
		e.store.Close()
	}
	e.renderer.Close()
}
