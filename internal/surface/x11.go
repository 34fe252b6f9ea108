package surface

import (
	"encoding/binary"
	"fmt"
	"log/slog"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// Keysyms for the volume keys, from X11/keysymdef.h.
const (
	keysymUp   xproto.Keysym = 0xff52
	keysymDown xproto.Keysym = 0xff54
)

// X11 implements Service against an X server. The background window is
// created override-redirect at root depth, typed _NET_WM_WINDOW_TYPE_DESKTOP
// and stacked below everything, matching how compositors expect a
// wallpaper surface to behave.
type X11 struct {
	conn   *xgb.Conn
	logger *slog.Logger
	win    xproto.Window
	events chan Event

	minKeycode xproto.Keycode
	keymap     *xproto.GetKeyboardMappingReply
}

// NewX11 connects to the display named by $DISPLAY.
func NewX11(logger *slog.Logger) (*X11, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connecting to X server: %w", err)
	}
	return &X11{
		conn:   conn,
		logger: logger,
		events: make(chan Event, 8),
	}, nil
}

// CreateBackgroundSurface creates and maps the wallpaper window and
// starts the event pump. The returned handle is the window id in the
// "0x…" form mpv's --wid flag accepts.
func (x *X11) CreateBackgroundSurface() (string, error) {
	setup := xproto.Setup(x.conn)
	screen := setup.DefaultScreen(x.conn)

	wid, err := xproto.NewWindowId(x.conn)
	if err != nil {
		return "", fmt.Errorf("allocating window id: %w", err)
	}

	// Value list order follows ascending mask bits:
	// back-pixel, override-redirect, event-mask.
	mask := uint32(xproto.CwBackPixel | xproto.CwOverrideRedirect | xproto.CwEventMask)
	values := []uint32{
		0,
		1,
		uint32(xproto.EventMaskExposure | xproto.EventMaskStructureNotify | xproto.EventMaskKeyPress),
	}
	err = xproto.CreateWindowChecked(x.conn, screen.RootDepth, wid, screen.Root,
		0, 0, screen.WidthInPixels, screen.HeightInPixels, 0,
		xproto.WindowClassInputOutput, screen.RootVisual, mask, values).Check()
	if err != nil {
		return "", fmt.Errorf("creating window: %w", err)
	}

	if err := x.markAsDesktop(wid); err != nil {
		// Window-manager hint only; the window still works without it.
		x.logger.Debug("setting desktop window type", "err", err)
	}

	xproto.MapWindow(x.conn, wid)
	xproto.ConfigureWindow(x.conn, wid,
		xproto.ConfigWindowStackMode, []uint32{xproto.StackModeBelow})

	keymap, err := xproto.GetKeyboardMapping(x.conn, setup.MinKeycode,
		byte(setup.MaxKeycode-setup.MinKeycode+1)).Reply()
	if err != nil {
		return "", fmt.Errorf("fetching keyboard mapping: %w", err)
	}
	x.minKeycode = setup.MinKeycode
	x.keymap = keymap
	x.win = wid

	go x.pump()

	handle := fmt.Sprintf("0x%x", uint32(wid))
	x.logger.Info("window created", "wid", handle)
	return handle, nil
}

// markAsDesktop sets _NET_WM_WINDOW_TYPE to _NET_WM_WINDOW_TYPE_DESKTOP.
func (x *X11) markAsDesktop(wid xproto.Window) error {
	typeAtom, err := xproto.InternAtom(x.conn, false,
		uint16(len("_NET_WM_WINDOW_TYPE")), "_NET_WM_WINDOW_TYPE").Reply()
	if err != nil {
		return err
	}
	desktopAtom, err := xproto.InternAtom(x.conn, false,
		uint16(len("_NET_WM_WINDOW_TYPE_DESKTOP")), "_NET_WM_WINDOW_TYPE_DESKTOP").Reply()
	if err != nil {
		return err
	}

	data := make([]byte, 4)
	binary.LittleEndian.PutUint32(data, uint32(desktopAtom.Atom))
	return xproto.ChangePropertyChecked(x.conn, xproto.PropModeReplace, wid,
		typeAtom.Atom, xproto.AtomAtom, 32, 1, data).Check()
}

// Events delivers volume key events.
func (x *X11) Events() <-chan Event {
	return x.events
}

// pump translates X key presses into volume events until the connection
// closes. Events are dropped rather than queued unboundedly when the
// consumer has gone away.
func (x *X11) pump() {
	defer close(x.events)
	for {
		ev, xerr := x.conn.WaitForEvent()
		if ev == nil && xerr == nil {
			return
		}
		if xerr != nil {
			x.logger.Debug("x11 error", "err", xerr)
			continue
		}

		kp, ok := ev.(xproto.KeyPressEvent)
		if !ok {
			continue
		}

		var out Event
		switch x.keysym(kp.Detail) {
		case keysymUp:
			out = VolumeUp
		case keysymDown:
			out = VolumeDown
		default:
			continue
		}

		select {
		case x.events <- out:
		default:
		}
	}
}

// keysym maps a keycode to its unshifted keysym.
func (x *X11) keysym(code xproto.Keycode) xproto.Keysym {
	if x.keymap == nil || code < x.minKeycode {
		return 0
	}
	idx := int(code-x.minKeycode) * int(x.keymap.KeysymsPerKeycode)
	if idx >= len(x.keymap.Keysyms) {
		return 0
	}
	return x.keymap.Keysyms[idx]
}

// Close destroys the window and drops the X connection, which also
// stops the event pump.
func (x *X11) Close() error {
	if x.win != 0 {
		xproto.DestroyWindow(x.conn, x.win)
	}
	x.conn.Close()
	return nil
}
