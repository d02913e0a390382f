// Package mouse maps terminal cell coordinates to rendered regions.
package mouse

import tea "github.com/charmbracelet/bubbletea"

// Rect is a screen rectangle. W and H are exclusive bounds.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Region is a named rectangle with optional payload.
type Region struct {
	ID   string
	Rect Rect
	Data any
}

// HitMap holds regions in insertion order. Regions added later sit on top.
type HitMap struct {
	regions []Region
}

// NewHitMap returns an empty HitMap.
func NewHitMap() *HitMap {
	return &HitMap{}
}

// Add registers a region from an existing Rect.
func (hm *HitMap) Add(id string, r Rect, data any) {
	hm.regions = append(hm.regions, Region{ID: id, Rect: r, Data: data})
}

// Test returns the topmost region containing (x, y), or nil.
func (hm *HitMap) Test(x, y int) *Region {
	for i := len(hm.regions) - 1; i >= 0; i-- {
		if hm.regions[i].Rect.Contains(x, y) {
			return &hm.regions[i]
		}
	}
	return nil
}

// Find returns the first region registered under id.
func (hm *HitMap) Find(id string) (Region, bool) {
	for _, r := range hm.regions {
		if r.ID == id {
			return r, true
		}
	}
	return Region{}, false
}

// IsLeftClick reports whether msg is a left button press. Releases and
// motion events are ignored so one physical click counts once.
func IsLeftClick(msg tea.MouseMsg) bool {
	return msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft
}
