// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package mapview

// Event names a viewport change notification.
type Event string

const (
	EventMove   Event = "move"
	EventZoom   Event = "zoom"
	EventResize Event = "resize"
)

// Handler is called for a viewport change. Handlers receive no payload and query the
// map for its current state themselves.
type Handler func()

// ListenerID identifies a registration made with On.
type ListenerID uint64

type listener struct {
	id      ListenerID
	handler Handler
}

// On registers handler for event and returns the ID needed to unregister it.
func (m *Map) On(event Event, handler Handler) ListenerID {
	m.nextID++
	id := m.nextID
	m.listeners[event] = append(m.listeners[event], listener{id: id, handler: handler})
	return id
}

// Off removes the registration id for event. Removing an unknown or already removed
// registration is a no-op.
func (m *Map) Off(event Event, id ListenerID) {
	subs := m.listeners[event]
	for i, l := range subs {
		if l.id == id {
			m.listeners[event] = append(subs[:i:i], subs[i+1:]...)
			if len(m.listeners[event]) == 0 {
				delete(m.listeners, event)
			}
			return
		}
	}
}

// Listeners returns the number of handlers registered for event.
func (m *Map) Listeners(event Event) int {
	return len(m.listeners[event])
}

// fire calls the handlers of event in registration order. Handlers may unregister
// themselves or others while being called.
func (m *Map) fire(event Event) {
	subs := append([]listener(nil), m.listeners[event]...)
	for _, l := range subs {
		if !m.registered(event, l.id) {
			continue
		}
		l.handler()
	}
}

func (m *Map) registered(event Event, id ListenerID) bool {
	for _, l := range m.listeners[event] {
		if l.id == id {
			return true
		}
	}
	return false
}
