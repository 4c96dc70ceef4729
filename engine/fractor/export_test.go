package fractor

import "github.com/eevee/raidne/engine/geom"

// Draw exposes the layout step so tests can compare the map with the rooms.
func (f BSPFractor) Draw() (*WorldCanvas, geom.Position, error) { return f.draw() }
