package diagram

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/sync/singleflight"
)

type detectorEntry struct {
	id string
	fn DetectorFunc
}

var (
	registryMu  sync.RWMutex
	definitions = make(map[string]*Definition)
	loaders     = make(map[string]LoaderFunc)
	detectors   []detectorEntry

	// loadGroup collapses concurrent first-time loads of the same type.
	loadGroup singleflight.Group
)

// Register adds a definition to the registry under id. Registering the same
// definition twice is a no-op; a different definition under an id already
// taken is a *RegistrationConflictError. Existing registrations are never
// silently replaced.
func Register(id string, def *Definition) error {
	registryMu.Lock()
	defer registryMu.Unlock()
	return register(id, def)
}

func register(id string, def *Definition) error {
	if existing, ok := definitions[id]; ok {
		if existing == def {
			return nil
		}
		return &RegistrationConflictError{ID: id}
	}
	definitions[id] = def
	return nil
}

// RegisterDetector appends a detector to the probe order. Detectors run in
// registration order, so more specific grammars must register before ones
// with looser opening keywords. Re-registering an id replaces its detector
// in place, keeping its position.
func RegisterDetector(id string, fn DetectorFunc) {
	registryMu.Lock()
	defer registryMu.Unlock()
	for i, d := range detectors {
		if d.id == id {
			detectors[i].fn = fn
			return
		}
	}
	detectors = append(detectors, detectorEntry{id: id, fn: fn})
}

// RegisterLoader installs a lazy loader for a diagram type. The loader runs
// on the first Resolve of the id.
func RegisterLoader(id string, load LoaderFunc) {
	registryMu.Lock()
	defer registryMu.Unlock()
	loaders[id] = load
}

// RegisterDiagram adds an externally built diagram kind: the definition is
// registered eagerly and detect, when non-nil, joins the probe order.
func RegisterDiagram(id string, def *Definition, detect DetectorFunc) error {
	if err := Register(id, def); err != nil {
		return err
	}
	if detect != nil {
		RegisterDetector(id, detect)
	}
	return nil
}

// Resolve returns the definition registered under id, running its loader
// first if the type has not materialized yet. Concurrent resolves of one id
// share a single loader invocation. A loader failure leaves the id
// unregistered, so a later Resolve retries; resolving a registered id has no
// side effects.
func Resolve(ctx context.Context, id string) (*Definition, error) {
	registryMu.RLock()
	def, ok := definitions[id]
	load, hasLoader := loaders[id]
	registryMu.RUnlock()

	if ok {
		return def, nil
	}
	if !hasLoader {
		return nil, &UnknownDiagramError{Name: id, Available: knownTypes()}
	}

	v, err, _ := loadGroup.Do(id, func() (any, error) {
		// A concurrent resolve may have won the race before this call
		// entered the group.
		registryMu.RLock()
		def, ok := definitions[id]
		registryMu.RUnlock()
		if ok {
			return def, nil
		}

		loaded, err := load(ctx)
		if err != nil {
			return nil, &LoadError{ID: id, Err: err}
		}
		if loaded == nil {
			return nil, &LoadError{ID: id, Err: fmt.Errorf("loader returned no definition")}
		}
		if loaded.ID != id {
			return nil, &LoadError{ID: id, Err: fmt.Errorf("loader returned definition %q", loaded.ID)}
		}

		registryMu.Lock()
		err = register(id, loaded)
		registryMu.Unlock()
		if err != nil {
			return nil, err
		}
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Definition), nil
}

// Get retrieves a materialized definition by id. Types whose loader has not
// run yet report false.
func Get(id string) (*Definition, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	def, ok := definitions[id]
	return def, ok
}

// IsRegistered checks whether a diagram type has a materialized definition.
func IsRegistered(id string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := definitions[id]
	return ok
}

// List returns all materialized diagram type ids (sorted).
func List() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	ids := make([]string, 0, len(definitions))
	for id := range definitions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Loaders returns the ids of all installed lazy loaders (sorted).
func Loaders() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	ids := make([]string, 0, len(loaders))
	for id := range loaders {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// knownTypes returns every id with either a definition or a loader (sorted).
func knownTypes() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	seen := make(map[string]bool, len(definitions)+len(loaders))
	for id := range definitions {
		seen[id] = true
	}
	for id := range loaders {
		seen[id] = true
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ResetRegistry drops every materialized definition, returning lazily loaded
// types to their unloaded state. Detectors and loaders stay installed. Test
// hook; production code has no reason to call it.
func ResetRegistry() {
	registryMu.Lock()
	defer registryMu.Unlock()
	definitions = make(map[string]*Definition)
}
