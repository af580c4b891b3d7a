// Copyright 2026 The Canvas Authors
// SPDX-License-Identifier: Apache-2.0

// Package surface maintains named surfaces from incremental
// surface-protocol messages.
//
// A [State] holds every surface a stream has mentioned, in first-seen
// order. Surfaces are created lazily on first reference, mutated in
// place by later messages, and destroyed only by an explicit
// deleteSurface. The typical flow:
//
//  1. payload.Parse: raw text → message objects
//  2. [State.Apply]: fold the batch into the retained state
//  3. [Surface.Document]: snapshot one surface for rendering
//
// Apply is forgiving: unknown message kinds and malformed component
// entries are skipped silently, matching the protocol's degrade-don't-
// crash contract. State is not safe for concurrent use; the caller
// serializes invocations per logical session.
package surface

import (
	"encoding/json"

	"github.com/cklxx/canvas/lib/binding"
	"github.com/cklxx/canvas/lib/schema"
)

// Component is one upserted component within a surface.
type Component struct {
	// ID is the component's identifier, unique within the surface.
	ID string

	// Type is the component type tag, taken from the single key of
	// the wire entry's component object.
	Type string

	// Props holds the component's properties, possibly containing
	// bound-value objects.
	Props map[string]any

	// Weight is the flex sizing hint. Zero means equal sizing.
	Weight float64
}

// Surface is a named, independently addressable widget tree plus its
// own data model.
type Surface struct {
	// ID is the surface identifier.
	ID string

	// Components maps component id → component.
	Components map[string]*Component

	// RootID names the root component, set by beginRendering. Empty
	// until the stream marks the surface ready.
	RootID string

	// DataModel is the surface-scoped data model.
	DataModel map[string]any

	// CatalogID names the component catalog the surface renders
	// against, when the producer declares one.
	CatalogID string

	// Styles is the surface-level style block from beginRendering.
	Styles map[string]any
}

// Document snapshots the surface as a renderable document: every
// component becomes an element keyed by its id, the root follows
// RootID, and the data model is shared (not copied — seed writes
// during rendering land in the surface).
func (s *Surface) Document() *schema.Document {
	elements := make(map[string]*schema.Element, len(s.Components))
	for id, component := range s.Components {
		elements[id] = &schema.Element{
			Key:    id,
			Type:   component.Type,
			Props:  component.Props,
			Weight: component.Weight,
		}
	}
	document := &schema.Document{
		Elements:  elements,
		DataModel: s.DataModel,
		Styles:    s.Styles,
		RootKey:   s.RootID,
	}
	if root, ok := elements[s.RootID]; ok {
		document.Root = root
	}
	return document
}

// State is the surface registry built from a message stream. The
// zero value is not usable; construct with [NewState].
type State struct {
	surfaces map[string]*Surface
	order    []string
}

// NewState returns an empty surface registry.
func NewState() *State {
	return &State{surfaces: make(map[string]*Surface)}
}

// Apply decodes a batch of parsed message objects and applies them in
// arrival order. Objects that decode to no known message kind are
// skipped.
func (s *State) Apply(messages []json.RawMessage) {
	for _, raw := range messages {
		s.ApplyMessage(schema.DecodeMessage(raw))
	}
}

// ApplyMessage applies one decoded message.
func (s *State) ApplyMessage(message schema.Message) {
	switch message.Kind() {
	case schema.KindSurfaceUpdate:
		s.applySurfaceUpdate(message.SurfaceUpdate)
	case schema.KindDataModelUpdate:
		s.applyDataModelUpdate(message.DataModelUpdate)
	case schema.KindBeginRendering:
		s.applyBeginRendering(message.BeginRendering)
	case schema.KindDeleteSurface:
		s.applyDeleteSurface(message.DeleteSurface)
	}
}

// Surface returns the surface with the given id, if present. An empty
// id addresses the default surface.
func (s *State) Surface(id string) (*Surface, bool) {
	found, ok := s.surfaces[normalizeID(id)]
	return found, ok
}

// Surfaces returns all surfaces in first-seen order.
func (s *State) Surfaces() []*Surface {
	result := make([]*Surface, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.surfaces[id])
	}
	return result
}

// Order returns the surface ids in first-seen order. The slice is a
// copy; mutating it does not affect the state.
func (s *State) Order() []string {
	order := make([]string, len(s.order))
	copy(order, s.order)
	return order
}

// ensure returns the surface for id, creating and registering it on
// first reference.
func (s *State) ensure(id string) *Surface {
	id = normalizeID(id)
	if existing, ok := s.surfaces[id]; ok {
		return existing
	}
	created := &Surface{
		ID:         id,
		Components: make(map[string]*Component),
		DataModel:  make(map[string]any),
	}
	s.surfaces[id] = created
	s.order = append(s.order, id)
	return created
}

func normalizeID(id string) string {
	if id == "" {
		return schema.DefaultSurfaceID
	}
	return id
}

func (s *State) applySurfaceUpdate(update *schema.SurfaceUpdate) {
	target := s.ensure(update.SurfaceID)
	for _, entry := range update.Components {
		componentType, props, ok := entry.TypeAndProps()
		if !ok {
			continue
		}
		component := &Component{
			ID:    entry.ID,
			Type:  componentType,
			Props: props,
		}
		if entry.Weight != nil {
			component.Weight = *entry.Weight
		}
		target.Components[entry.ID] = component
	}
}

func (s *State) applyDataModelUpdate(update *schema.DataModelUpdate) {
	target := s.ensure(update.SurfaceID)
	decoded := schema.DecodeDataValue(update.Contents)

	if binding.IsRootPath(update.Path) {
		// Whole-model replacement requires an object; anything else
		// would leave the model un-navigable and is dropped.
		if model, ok := decoded.(map[string]any); ok {
			target.DataModel = model
		}
		return
	}
	binding.Set(target.DataModel, update.Path, decoded)
}

func (s *State) applyBeginRendering(begin *schema.BeginRendering) {
	target := s.ensure(begin.SurfaceID)
	if begin.Root != "" {
		target.RootID = begin.Root
	}
	if begin.CatalogID != "" {
		target.CatalogID = begin.CatalogID
	}
	if begin.Styles != nil {
		target.Styles = begin.Styles
	}
}

func (s *State) applyDeleteSurface(remove *schema.DeleteSurface) {
	id := normalizeID(remove.SurfaceID)
	if _, ok := s.surfaces[id]; !ok {
		return
	}
	delete(s.surfaces, id)
	for index, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:index], s.order[index+1:]...)
			break
		}
	}
}
