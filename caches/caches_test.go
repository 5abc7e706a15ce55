package caches

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/suite"

	"github.com/iamaanahmad/madhubani-nikah-core/cache"
)

type CachesSuite struct {
	suite.Suite
	clk *clock.Mock
}

func (s *CachesSuite) SetupTest() {
	s.clk = clock.NewMock()
}

func TestCachesSuite(t *testing.T) {
	suite.Run(t, new(CachesSuite))
}

func (s *CachesSuite) TestProfileRoundTrip() {
	search, err := NewSearchCache(cache.WithClock[SearchResults](s.clk))
	s.Require().NoError(err)
	defer search.Close()

	profiles, err := NewProfileCache(search, cache.WithClock[Profile](s.clk))
	s.Require().NoError(err)
	defer profiles.Close()

	p := Profile{ID: "42", DisplayName: "A. Khatun", Age: 27, District: "Madhubani"}
	profiles.Put(p)

	got, ok := profiles.Get("42")
	s.True(ok)
	s.Equal(p, got)

	_, ok = profiles.Get("404")
	s.False(ok)
}

func (s *CachesSuite) TestInvalidateCascadesIntoSearch() {
	search, err := NewSearchCache(cache.WithClock[SearchResults](s.clk))
	s.Require().NoError(err)
	defer search.Close()

	profiles, err := NewProfileCache(search, cache.WithClock[Profile](s.clk))
	s.Require().NoError(err)
	defer profiles.Close()

	profiles.Put(Profile{ID: "42"})
	search.Put("district=madhubani", SearchResults{ProfileIDs: []string{"42", "7"}, Total: 2})
	search.Put("age=25-30", SearchResults{ProfileIDs: []string{"42"}, Total: 1})

	profiles.Invalidate("42")

	_, ok := profiles.Get("42")
	s.False(ok)
	_, ok = search.Get("district=madhubani")
	s.False(ok)
	_, ok = search.Get("age=25-30")
	s.False(ok)
}

func (s *CachesSuite) TestSearchKeysStayInTheirLane() {
	search, err := NewSearchCache(cache.WithClock[SearchResults](s.clk))
	s.Require().NoError(err)
	defer search.Close()

	search.Put("recent", SearchResults{Total: 3})
	s.Equal(1, search.InvalidateAll())
	_, ok := search.Get("recent")
	s.False(ok)
}

func (s *CachesSuite) TestNotificationExpiry() {
	notifs, err := NewNotificationCache(cache.WithClock[[]Notification](s.clk))
	s.Require().NoError(err)
	defer notifs.Close()

	feed := []Notification{{ID: "n1", ProfileID: "42", Kind: "interest_received"}}
	notifs.Put("42", feed)

	got, ok := notifs.Get("42")
	s.True(ok)
	s.Len(got, 1)

	// Feeds are only cached for the 30s polling window.
	s.clk.Add(31 * time.Second)
	_, ok = notifs.Get("42")
	s.False(ok)
}

func (s *CachesSuite) TestInvalidateSingleFeed() {
	notifs, err := NewNotificationCache(cache.WithClock[[]Notification](s.clk))
	s.Require().NoError(err)
	defer notifs.Close()

	notifs.Put("42", nil)
	s.True(notifs.Invalidate("42"))
	s.False(notifs.Invalidate("42"))
}
