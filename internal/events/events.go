// Package events carries user intent from the view to the controller as
// typed messages.
package events

// ReloadRequested asks for a scan of RootPath, the path currently typed into
// the path field.
type ReloadRequested struct {
	RootPath string
}

// SaveRequested asks to persist Name for the record identified by DirName.
type SaveRequested struct {
	DirName string
	Name    string
}

// Topic fans a single event type out to its subscribers. Handlers run
// synchronously, in subscription order, on the publishing goroutine.
type Topic[E any] struct {
	handlers []func(E)
}

// NewTopic creates an empty Topic.
func NewTopic[E any]() *Topic[E] {
	return &Topic[E]{}
}

// Subscribe registers handler for every future Publish.
func (t *Topic[E]) Subscribe(handler func(E)) {
	t.handlers = append(t.handlers, handler)
}

// Publish delivers event to every subscriber.
func (t *Topic[E]) Publish(event E) {
	for _, handler := range t.handlers {
		handler(event)
	}
}

// Subscribers returns the number of registered handlers.
func (t *Topic[E]) Subscribers() int {
	return len(t.handlers)
}
