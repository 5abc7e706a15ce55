// Package caches provides the platform's specialized cache facades. Each
// facade is a thin, statically-typed wrapper that fixes the TTL, capacity, and
// key-prefix convention for one kind of data; all algorithms live in the cache
// package.
package caches

import (
	"time"

	"github.com/iamaanahmad/madhubani-nikah-core/cache"
)

// Key prefixes keep the kinds disjoint and make cascade invalidation a glob.
const (
	profilePrefix      = "profile:"
	searchPrefix       = "search:"
	notificationPrefix = "notification:"
)

// Profile is the rendered shape of a member profile.
type Profile struct {
	ID          string
	DisplayName string
	Age         int
	District    string
	Education   string
	Bio         string
	PhotoURL    string
	Verified    bool
}

// SearchResults is one page of profile search results keyed by query
// signature.
type SearchResults struct {
	Query      string
	ProfileIDs []string
	Total      int
}

// Notification is an interest/match notification shown to a member.
type Notification struct {
	ID        string
	ProfileID string
	Kind      string
	Message   string
	CreatedAt time.Time
}

// SearchCache holds search result pages. Searches go stale quickly, so the
// TTL is short.
type SearchCache struct {
	store *cache.Cache[SearchResults]
}

// NewSearchCache creates a SearchCache. Extra options override the defaults,
// which is how tests inject a mock clock.
func NewSearchCache(opts ...cache.Option[SearchResults]) (*SearchCache, error) {
	defaults := []cache.Option[SearchResults]{
		cache.WithCapacity[SearchResults](1000),
		cache.WithTTL[SearchResults](2 * time.Minute),
	}
	store, err := cache.New(append(defaults, opts...)...)
	if err != nil {
		return nil, err
	}
	return &SearchCache{store: store}, nil
}

func (s *SearchCache) Get(querySig string) (SearchResults, bool) {
	return s.store.Get(searchPrefix + querySig)
}

func (s *SearchCache) Put(querySig string, results SearchResults) {
	s.store.Set(searchPrefix+querySig, results)
}

// InvalidateAll drops every cached search page. Result pages embed profile
// data, so any profile change invalidates them wholesale.
func (s *SearchCache) InvalidateAll() int {
	return s.store.InvalidatePattern(searchPrefix + "*")
}

func (s *SearchCache) Metrics() cache.Metrics { return s.store.Metrics() }

func (s *SearchCache) Close() { s.store.Close() }

// ProfileCache holds member profiles. Invalidation cascades into the paired
// search cache.
type ProfileCache struct {
	store  *cache.Cache[Profile]
	search *SearchCache
}

// NewProfileCache creates a ProfileCache wired to the search cache its
// invalidations cascade into.
func NewProfileCache(search *SearchCache, opts ...cache.Option[Profile]) (*ProfileCache, error) {
	defaults := []cache.Option[Profile]{
		cache.WithCapacity[Profile](5000),
		cache.WithTTL[Profile](10 * time.Minute),
	}
	store, err := cache.New(append(defaults, opts...)...)
	if err != nil {
		return nil, err
	}
	return &ProfileCache{store: store, search: search}, nil
}

func (p *ProfileCache) Get(id string) (Profile, bool) {
	return p.store.Get(profilePrefix + id)
}

func (p *ProfileCache) Put(profile Profile) {
	p.store.Set(profilePrefix+profile.ID, profile)
}

// Invalidate removes one profile and clears all search pages that might still
// reference it.
func (p *ProfileCache) Invalidate(id string) {
	p.store.Delete(profilePrefix + id)
	if p.search != nil {
		p.search.InvalidateAll()
	}
}

func (p *ProfileCache) Metrics() cache.Metrics { return p.store.Metrics() }

func (p *ProfileCache) Close() { p.store.Close() }

// NotificationCache holds per-member notification feeds for the brief window
// between polls.
type NotificationCache struct {
	store *cache.Cache[[]Notification]
}

func NewNotificationCache(opts ...cache.Option[[]Notification]) (*NotificationCache, error) {
	defaults := []cache.Option[[]Notification]{
		cache.WithCapacity[[]Notification](2000),
		cache.WithTTL[[]Notification](30 * time.Second),
	}
	store, err := cache.New(append(defaults, opts...)...)
	if err != nil {
		return nil, err
	}
	return &NotificationCache{store: store}, nil
}

func (n *NotificationCache) Get(memberID string) ([]Notification, bool) {
	return n.store.Get(notificationPrefix + memberID)
}

func (n *NotificationCache) Put(memberID string, feed []Notification) {
	n.store.Set(notificationPrefix+memberID, feed)
}

// Invalidate drops one member's feed, e.g. after they act on an interest.
func (n *NotificationCache) Invalidate(memberID string) bool {
	return n.store.Delete(notificationPrefix + memberID)
}

func (n *NotificationCache) Metrics() cache.Metrics { return n.store.Metrics() }

func (n *NotificationCache) Close() { n.store.Close() }
