// Package sources holds the registry of content sources available to the
// engine. Each source registers itself at startup; capability interfaces
// (listings, deep links, image requests) are discovered by type assertion.
package sources

import (
	"context"
	"sort"
	"sync"

	"Lantern/engine"
	"Lantern/errors"
)

var (
	registry      = make(map[string]engine.Source)
	registryMutex sync.RWMutex
)

// Register adds a source to the registry, replacing any previous source with
// the same ID.
func Register(src engine.Source) {
	registryMutex.Lock()
	defer registryMutex.Unlock()
	registry[src.ID()] = src
}

// Get retrieves a source by ID, or nil when unknown
func Get(id string) engine.Source {
	registryMutex.RLock()
	defer registryMutex.RUnlock()
	return registry[id]
}

// All returns the registered sources sorted by ID
func All() []engine.Source {
	registryMutex.RLock()
	defer registryMutex.RUnlock()

	all := make([]engine.Source, 0, len(registry))
	for _, src := range registry {
		all = append(all, src)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID() < all[j].ID() })
	return all
}

// Resolve asks every deep-link capable source to recognize raw. The first
// match wins; (nil, "", nil) means no source recognized the URL.
func Resolve(ctx context.Context, raw string) (*engine.DeepLink, string, error) {
	for _, src := range All() {
		handler, ok := src.(engine.DeepLinkHandler)
		if !ok {
			continue
		}

		link, err := handler.ResolveURL(ctx, raw)
		if err != nil {
			return nil, "", err
		}
		if link != nil {
			return link, src.ID(), nil
		}
	}
	return nil, "", nil
}

// ListingsOf returns the listings of a source, or ErrUnknownListing when the
// source does not provide any.
func ListingsOf(src engine.Source) ([]engine.Listing, error) {
	provider, ok := src.(engine.ListingProvider)
	if !ok {
		return nil, errors.ErrUnknownListing
	}
	return provider.Listings(), nil
}
