package domain

import "sort"

// Overlay names a transient panel layered on top of the resolved screen.
type Overlay string

const (
	OverlayNotifications Overlay = "notifications"
	OverlayRoleSwitcher  Overlay = "role-switcher"
	OverlayFloatPurchase Overlay = "float-purchase"
)

// ParseOverlay converts a raw string to a known Overlay.
func ParseOverlay(s string) (Overlay, bool) {
	switch o := Overlay(s); o {
	case OverlayNotifications, OverlayRoleSwitcher, OverlayFloatPurchase:
		return o, true
	}
	return "", false
}

// Overlays holds independent visibility flags. A missing key means hidden.
type Overlays map[Overlay]bool

// Visible reports whether name is shown.
func (o Overlays) Visible(name Overlay) bool {
	return o[name]
}

// With returns a copy with name set to visible. The receiver is not modified.
func (o Overlays) With(name Overlay, visible bool) Overlays {
	c := o.Clone()
	if visible {
		c[name] = true
	} else {
		delete(c, name)
	}
	return c
}

// Shown lists visible overlays in a stable order.
func (o Overlays) Shown() []Overlay {
	out := make([]Overlay, 0, len(o))
	for name, v := range o {
		if v {
			out = append(out, name)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (o Overlays) Clone() Overlays {
	c := make(Overlays, len(o))
	for k, v := range o {
		if v {
			c[k] = true
		}
	}
	return c
}

func (o Overlays) equal(other Overlays) bool {
	a, b := o.Shown(), other.Shown()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
