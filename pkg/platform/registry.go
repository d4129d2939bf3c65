package platform

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Platform registry
var (
	platformsMu sync.RWMutex
	platforms   = make(map[string]*Info)
)

// ErrPlatformRequired is returned when a platform is required but not provided.
var ErrPlatformRequired = errors.New("platform is required")

// UnknownPlatformError is returned when an unregistered platform is requested.
type UnknownPlatformError struct {
	Name      string
	Available []string
}

func (e *UnknownPlatformError) Error() string {
	return fmt.Sprintf("unknown platform %q (available: %s)", e.Name, strings.Join(e.Available, ", "))
}

// Register registers a platform in the global registry, replacing any
// platform of the same name. Called by platform packages in their init()
// functions, and by configuration code to swap in a reconfigured Info.
func Register(info *Info) {
	platformsMu.Lock()
	defer platformsMu.Unlock()
	platforms[strings.ToLower(info.Name())] = info
}

// Get returns a platform by name (case-insensitive).
func Get(name string) (*Info, bool) {
	platformsMu.RLock()
	defer platformsMu.RUnlock()
	info, ok := platforms[strings.ToLower(name)]
	return info, ok
}

// Lookup returns a platform by name or a descriptive error.
func Lookup(name string) (*Info, error) {
	if name == "" {
		return nil, ErrPlatformRequired
	}
	info, ok := Get(name)
	if !ok {
		return nil, &UnknownPlatformError{Name: name, Available: List()}
	}
	return info, nil
}

// MustGet is like Lookup but panics on error. Intended for init-time wiring.
func MustGet(name string) *Info {
	info, err := Lookup(name)
	if err != nil {
		panic(err)
	}
	return info
}

// List returns all registered platform names (sorted).
func List() []string {
	platformsMu.RLock()
	defer platformsMu.RUnlock()
	names := make([]string, 0, len(platforms))
	for name := range platforms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// unregister removes a platform. Used by tests.
func unregister(name string) {
	platformsMu.Lock()
	defer platformsMu.Unlock()
	delete(platforms, strings.ToLower(name))
}
