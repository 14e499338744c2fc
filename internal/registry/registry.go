package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"nounsIndexer/internal/contracts"
	"nounsIndexer/internal/model"
)

// ErrUnsupportedEvent is returned for event names with no parser.
var ErrUnsupportedEvent = errors.New("unsupported event")

// ParserFunc converts a raw event into its normalized record.
type ParserFunc func(model.RawEvent) (model.Record, error)

// Entry describes one registered event type.
type Entry struct {
	Name   string
	Group  contracts.Group
	Arity  int
	Parse  ParserFunc
	decode func(json.RawMessage) (model.Record, error)
}

// Decode unmarshals a persisted record of this event type.
func (e Entry) Decode(raw json.RawMessage) (model.Record, error) {
	return e.decode(raw)
}

// define builds an Entry for record type T. parse reads arity positional
// arguments and must set the record's Base from a.base.
func define[T model.Record](group contracts.Group, arity int, parse func(a *args) T) Entry {
	var zero T
	name := zero.EventName()
	return Entry{
		Name:  name,
		Group: group,
		Arity: arity,
		Parse: func(raw model.RawEvent) (model.Record, error) {
			if raw.Name != "" && raw.Name != name {
				return nil, fmt.Errorf("parser %s got %s event", name, raw.Name)
			}
			if len(raw.Args) != arity {
				return nil, fmt.Errorf("%s: expected %d args, got %d", name, arity, len(raw.Args))
			}
			a := &args{event: name, values: raw.Args, base: model.Base{Provenance: raw.Provenance}}
			record := parse(a)
			if a.err != nil {
				return nil, a.err
			}
			return record, nil
		},
		decode: func(raw json.RawMessage) (model.Record, error) {
			var record T
			if err := json.Unmarshal(raw, &record); err != nil {
				return nil, fmt.Errorf("decode %s: %w", name, err)
			}
			return record, nil
		},
	}
}

// Registry maps event names to parsers across the four contract groups.
type Registry struct {
	entries map[string]Entry
	groups  map[contracts.Group][]string
}

// New builds the registry from every group table.
func New() (*Registry, error) {
	return build(map[contracts.Group][]Entry{
		contracts.AuctionHouse:   auctionHouseEntries(),
		contracts.GovernanceCore: governanceCoreEntries(),
		contracts.GovernanceData: governanceDataEntries(),
		contracts.Token:          tokenEntries(),
	})
}

func build(tables map[contracts.Group][]Entry) (*Registry, error) {
	r := &Registry{
		entries: make(map[string]Entry),
		groups:  make(map[contracts.Group][]string),
	}
	for group, entries := range tables {
		for _, entry := range entries {
			if entry.Group != group {
				return nil, fmt.Errorf("event %s registered under %s but declared for %s", entry.Name, group, entry.Group)
			}
			if existing, ok := r.entries[entry.Name]; ok {
				return nil, fmt.Errorf("event %s registered in %s and %s", entry.Name, existing.Group, group)
			}
			r.entries[entry.Name] = entry
			r.groups[group] = append(r.groups[group], entry.Name)
		}
		sort.Strings(r.groups[group])
	}
	return r, nil
}

// Resolve returns the parser for an event name.
func (r *Registry) Resolve(name string) (ParserFunc, error) {
	entry, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}
	return entry.Parse, nil
}

// Lookup returns the full entry for an event name.
func (r *Registry) Lookup(name string) (Entry, error) {
	entry, ok := r.entries[name]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %s", ErrUnsupportedEvent, name)
	}
	return entry, nil
}

// Names returns every registered event name in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Group returns the sorted event names of one contract group.
func (r *Registry) Group(group contracts.Group) []string {
	return append([]string(nil), r.groups[group]...)
}

// DecodeRecord unmarshals a persisted record of the named event type.
func (r *Registry) DecodeRecord(name string, raw json.RawMessage) (model.Record, error) {
	entry, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}
	return entry.Decode(raw)
}
