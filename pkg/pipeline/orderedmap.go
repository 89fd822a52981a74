package pipeline

import (
	"github.com/pkg/errors"
)

// OrderedMap is a name-to-handler mapping whose iteration order equals
// insertion order. It is the boundary type for converting a pipeline to and
// from a mapping: a plain Go map is not accepted in its place because its
// iteration order is unspecified.
type OrderedMap struct {
	names    []string
	handlers map[string]Handler
}

// Entry is a single (name, handler) pair of an ordered map.
type Entry struct {
	Name    string
	Handler Handler
}

// NewOrderedMap creates an empty ordered map.
func NewOrderedMap() *OrderedMap {
	return &OrderedMap{
		handlers: make(map[string]Handler),
	}
}

// Set registers a handler under name. Setting an existing name overwrites the
// handler but keeps its original position.
func (m *OrderedMap) Set(name string, handler Handler) error {
	if name == "" {
		return errors.Wrap(ErrNameMustBeSet, "unable to set handler")
	}

	if handler == nil {
		return errors.Wrapf(ErrHandlerMustBeSet, "unable to set handler %q", name)
	}

	if _, ok := m.handlers[name]; !ok {
		m.names = append(m.names, name)
	}

	m.handlers[name] = handler

	return nil
}

// Get returns the handler registered under name, or nil if absent.
func (m *OrderedMap) Get(name string) Handler {
	return m.handlers[name]
}

// Len returns the number of entries.
func (m *OrderedMap) Len() int {
	return len(m.names)
}

// Names returns the registered names in insertion order.
func (m *OrderedMap) Names() []string {
	names := make([]string, len(m.names))
	copy(names, m.names)

	return names
}

// Handlers returns the registered handlers in insertion order.
func (m *OrderedMap) Handlers() []Handler {
	handlers := make([]Handler, 0, len(m.names))
	for _, name := range m.names {
		handlers = append(handlers, m.handlers[name])
	}

	return handlers
}

// Entries returns the (name, handler) pairs in insertion order.
func (m *OrderedMap) Entries() []Entry {
	entries := make([]Entry, 0, len(m.names))
	for _, name := range m.names {
		entries = append(entries, Entry{Name: name, Handler: m.handlers[name]})
	}

	return entries
}
