package naming

import (
	"fmt"
	"sync"

	"github.com/enersys/pypsa2gems/internal/pkg/utils/errors"
)

// Ref identifies a source element: the category it belongs to and its
// original name, before any identity derivation.
type Ref struct {
	Category string
	Name     string
}

func (r Ref) String() string {
	return r.Category + "/" + r.Name
}

func (r Ref) Desc() string {
	return fmt.Sprintf(`%s "%s"`, r.Category, r.Name)
}

// Registry tracks derived identifiers and guarantees that they stay unique
// across the whole run, no matter which category they come from.
type Registry struct {
	lock  *sync.Mutex
	byID  map[string]Ref    // derived identifier -> source element
	byRef map[string]string // source element -> derived identifier
}

func NewRegistry() *Registry {
	return &Registry{
		lock:  &sync.Mutex{},
		byID:  make(map[string]Ref),
		byRef: make(map[string]string),
	}
}

// Attach reserves the derived identifier for the source element.
// Two different elements deriving the same identifier is an error,
// identity normalization can make distinct source names collide.
func (r Registry) Attach(ref Ref, id string) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	// Identifier cannot be empty
	if len(id) == 0 {
		panic(errors.Errorf(`naming error: identifier for %s cannot be empty`, ref.Desc()))
	}

	// Check if the identifier is unique
	if foundRef, found := r.byID[id]; found && foundRef != ref {
		return errors.Errorf(
			`naming error: identifier "%s" is attached to %s, but new %s derives the same identifier`,
			id, foundRef.Desc(), ref.Desc(),
		)
	}

	// Remove the previous identifier attached to the element
	if foundID, found := r.byRef[ref.String()]; found {
		delete(r.byID, foundID)
	}

	r.byID[id] = ref
	r.byRef[ref.String()] = id
	return nil
}

// Detach releases the element's identifier, so it can be used by another element.
func (r Registry) Detach(ref Ref) {
	r.lock.Lock()
	defer r.lock.Unlock()

	if foundID, found := r.byRef[ref.String()]; found {
		delete(r.byID, foundID)
		delete(r.byRef, ref.String())
	}
}

func (r Registry) IDByRef(ref Ref) (string, bool) {
	r.lock.Lock()
	defer r.lock.Unlock()
	id, found := r.byRef[ref.String()]
	return id, found
}

func (r Registry) RefByID(id string) (Ref, bool) {
	r.lock.Lock()
	defer r.lock.Unlock()
	ref, found := r.byID[id]
	return ref, found
}
