// Package presencetest provides a Publisher that records events for tests
package presencetest

import "sync"

type Event struct {
	Room  string
	Event string
	Data  interface{}
}

// Recorder is a presence.Publisher keeping every published event
type Recorder struct {
	sync.Mutex
	events []Event
}

func (r *Recorder) Publish(room, event string, data interface{}) {
	r.Lock()
	defer r.Unlock()
	r.events = append(r.events, Event{Room: room, Event: event, Data: data})
}

// Events returns a copy of the recorded events in publish order
func (r *Recorder) Events() []Event {
	r.Lock()
	defer r.Unlock()
	events := make([]Event, len(r.events))
	copy(events, r.events)
	return events
}

// Find returns the recorded events matching room and event
func (r *Recorder) Find(room, event string) []Event {
	found := make([]Event, 0)
	for _, e := range r.Events() {
		if e.Room == room && e.Event == event {
			found = append(found, e)
		}
	}
	return found
}

func (r *Recorder) Reset() {
	r.Lock()
	defer r.Unlock()
	r.events = nil
}
