// Copyright 2026 The Canvas Authors
// SPDX-License-Identifier: Apache-2.0

package surface

import "sort"

// StateSnapshot is the serializable form of a [State], used by hosts
// to persist per-session surface state between stream events (see
// lib/codec). Surfaces appear in first-seen order; components are
// sorted by id so the encoding is deterministic.
type StateSnapshot struct {
	Surfaces []SurfaceSnapshot `cbor:"surfaces" json:"surfaces"`
}

// SurfaceSnapshot is one surface in a snapshot.
type SurfaceSnapshot struct {
	ID         string              `cbor:"id" json:"id"`
	RootID     string              `cbor:"rootId,omitempty" json:"rootId,omitempty"`
	CatalogID  string              `cbor:"catalogId,omitempty" json:"catalogId,omitempty"`
	DataModel  map[string]any      `cbor:"dataModel,omitempty" json:"dataModel,omitempty"`
	Styles     map[string]any      `cbor:"styles,omitempty" json:"styles,omitempty"`
	Components []ComponentSnapshot `cbor:"components,omitempty" json:"components,omitempty"`
}

// ComponentSnapshot is one component in a snapshot.
type ComponentSnapshot struct {
	ID     string         `cbor:"id" json:"id"`
	Type   string         `cbor:"type" json:"type"`
	Props  map[string]any `cbor:"props,omitempty" json:"props,omitempty"`
	Weight float64        `cbor:"weight,omitempty" json:"weight,omitempty"`
}

// Snapshot captures the full state: every surface, its components,
// data model, and the first-seen order.
func (s *State) Snapshot() StateSnapshot {
	snapshot := StateSnapshot{Surfaces: make([]SurfaceSnapshot, 0, len(s.order))}
	for _, id := range s.order {
		current := s.surfaces[id]
		entry := SurfaceSnapshot{
			ID:        current.ID,
			RootID:    current.RootID,
			CatalogID: current.CatalogID,
			DataModel: current.DataModel,
			Styles:    current.Styles,
		}
		entry.Components = make([]ComponentSnapshot, 0, len(current.Components))
		for _, component := range current.Components {
			entry.Components = append(entry.Components, ComponentSnapshot{
				ID:     component.ID,
				Type:   component.Type,
				Props:  component.Props,
				Weight: component.Weight,
			})
		}
		sort.Slice(entry.Components, func(i, j int) bool {
			return entry.Components[i].ID < entry.Components[j].ID
		})
		snapshot.Surfaces = append(snapshot.Surfaces, entry)
	}
	return snapshot
}

// Restore rebuilds a State from a snapshot. Surfaces keep their
// snapshot order as the first-seen order.
func Restore(snapshot StateSnapshot) *State {
	state := NewState()
	for _, entry := range snapshot.Surfaces {
		restored := state.ensure(entry.ID)
		restored.RootID = entry.RootID
		restored.CatalogID = entry.CatalogID
		if entry.DataModel != nil {
			restored.DataModel = entry.DataModel
		}
		restored.Styles = entry.Styles
		for _, component := range entry.Components {
			restored.Components[component.ID] = &Component{
				ID:     component.ID,
				Type:   component.Type,
				Props:  component.Props,
				Weight: component.Weight,
			}
		}
	}
	return state
}
