package ratelimit

import (
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/suite"
)

type LimiterSuite struct {
	suite.Suite
	clk *clock.Mock
	lim *Limiter
}

func (s *LimiterSuite) SetupTest() {
	s.clk = clock.NewMock()
	lim, err := New(WithClock(s.clk))
	s.Require().NoError(err)
	s.lim = lim
}

func (s *LimiterSuite) TearDownTest() {
	s.lim.Close()
}

func TestLimiterSuite(t *testing.T) {
	suite.Run(t, new(LimiterSuite))
}

func (s *LimiterSuite) TestWindowQuota() {
	rule := MustRule(time.Second, 3)

	d := s.lim.Check("user1", "search", rule)
	s.True(d.Allowed)
	s.Equal(2, d.Remaining)

	d = s.lim.Check("user1", "search", rule)
	s.True(d.Allowed)
	s.Equal(1, d.Remaining)

	d = s.lim.Check("user1", "search", rule)
	s.True(d.Allowed)
	s.Equal(0, d.Remaining)

	d = s.lim.Check("user1", "search", rule)
	s.False(d.Allowed)
	s.Equal(0, d.Remaining)
	s.Positive(d.RetryAfter)
	s.LessOrEqual(d.RetryAfter, time.Second)
}

func (s *LimiterSuite) TestDenialsDoNotConsumeQuota() {
	rule := MustRule(time.Second, 2)

	s.lim.Check("user1", "login", rule)
	s.lim.Check("user1", "login", rule)

	// A burst of denied calls must not push the counter past the limit.
	for i := 0; i < 10; i++ {
		d := s.lim.Check("user1", "login", rule)
		s.False(d.Allowed)
	}

	s.clk.Add(time.Second)
	d := s.lim.Check("user1", "login", rule)
	s.True(d.Allowed)
	s.Equal(1, d.Remaining)
}

func (s *LimiterSuite) TestWindowRollover() {
	rule := MustRule(time.Second, 3)

	for i := 0; i < 3; i++ {
		s.Require().True(s.lim.Check("user1", "search", rule).Allowed)
	}
	s.Require().False(s.lim.Check("user1", "search", rule).Allowed)

	// The window ends at exactly resetAt; the next call starts fresh.
	s.clk.Add(time.Second)
	d := s.lim.Check("user1", "search", rule)
	s.True(d.Allowed)
	s.Equal(2, d.Remaining)
	s.Equal(s.clk.Now().Add(time.Second), d.ResetAt)
}

func (s *LimiterSuite) TestRetryAfterShrinks() {
	rule := MustRule(time.Second, 1)

	s.lim.Check("user1", "upload", rule)

	d := s.lim.Check("user1", "upload", rule)
	s.False(d.Allowed)
	s.Equal(time.Second, d.RetryAfter)

	s.clk.Add(600 * time.Millisecond)
	d = s.lim.Check("user1", "upload", rule)
	s.False(d.Allowed)
	s.Equal(400*time.Millisecond, d.RetryAfter)
}

func (s *LimiterSuite) TestKeysAreIndependent() {
	rule := MustRule(time.Second, 1)

	s.True(s.lim.Check("user1", "search", rule).Allowed)
	s.False(s.lim.Check("user1", "search", rule).Allowed)

	// Different identifier and different action each get their own window.
	s.True(s.lim.Check("user2", "search", rule).Allowed)
	s.True(s.lim.Check("user1", "upload", rule).Allowed)
}

func (s *LimiterSuite) TestCustomKeyFunc() {
	// Key by action only, so all identifiers share one quota.
	rule := MustRule(time.Second, 2, WithKeyFunc(func(_, action string) string {
		return "global:" + action
	}))

	s.True(s.lim.Check("user1", "signup", rule).Allowed)
	s.True(s.lim.Check("user2", "signup", rule).Allowed)
	s.False(s.lim.Check("user3", "signup", rule).Allowed)
}

func (s *LimiterSuite) TestReset() {
	rule := MustRule(time.Minute, 1)

	s.True(s.lim.Check("user1", "login", rule).Allowed)
	s.False(s.lim.Check("user1", "login", rule).Allowed)

	s.lim.Reset("user1", "login", rule)

	d := s.lim.Check("user1", "login", rule)
	s.True(d.Allowed)
	s.Equal(0, d.Remaining)
}

func (s *LimiterSuite) TestResetKeyWithCustomScheme() {
	rule := MustRule(time.Minute, 1, WithKeyFunc(func(id, _ string) string {
		return "addr:" + id
	}))

	s.True(s.lim.Check("10.0.0.1", "any", rule).Allowed)
	s.False(s.lim.Check("10.0.0.1", "any", rule).Allowed)

	s.lim.ResetKey("addr:10.0.0.1")
	s.True(s.lim.Check("10.0.0.1", "any", rule).Allowed)
}

func (s *LimiterSuite) TestStats() {
	rule := MustRule(time.Second, 5)
	long := MustRule(time.Hour, 5)

	s.lim.Check("user1", "search", rule)
	s.lim.Check("user2", "search", long)

	s.clk.Add(2 * time.Second)

	st := s.lim.Stats()
	s.Equal(2, st.TotalEntries)
	s.Equal(1, st.ActiveWindows, "user1's window has elapsed")
	s.Positive(st.MemoryEstimate)
}

func (s *LimiterSuite) TestSweepPurgesElapsedWindows() {
	lim, err := New(WithClock(s.clk), WithSweepInterval(time.Second))
	s.Require().NoError(err)
	defer lim.Close()

	rule := MustRule(100*time.Millisecond, 5)
	lim.Check("user1", "search", rule)
	lim.Check("user2", "search", rule)
	s.Equal(2, lim.Stats().TotalEntries)

	// Let the sweep goroutine register its ticker before advancing time.
	time.Sleep(10 * time.Millisecond)
	s.clk.Add(1100 * time.Millisecond)

	s.Eventually(func() bool { return lim.Stats().TotalEntries == 0 }, time.Second, 5*time.Millisecond)
}

func (s *LimiterSuite) TestNewValidation() {
	_, err := New(WithSweepInterval(0))
	s.Error(err)
}

func (s *LimiterSuite) TestRuleValidation() {
	_, err := NewRule(0, 5)
	s.Error(err)

	_, err = NewRule(-time.Second, 5)
	s.Error(err)

	_, err = NewRule(time.Second, 0)
	s.Error(err)
}

func (s *LimiterSuite) TestRuleSet() {
	def := MustRule(time.Minute, 60)
	login := MustRule(15*time.Minute, 5)

	rules := NewRuleSet(def)
	rules.Set("login", login)

	s.equalRule(login, rules.Rule("login"))
	s.equalRule(def, rules.Rule("profile_search"))
}

// equalRule compares Rules field by field; reflect.DeepEqual (and thus
// s.Equal) reports non-nil func fields as unequal even when identical.
func (s *LimiterSuite) equalRule(want, got Rule) {
	s.T().Helper()
	s.Equal(want.window, got.window)
	s.Equal(want.max, got.max)
	s.Equal(reflect.ValueOf(want.keyFn).Pointer(), reflect.ValueOf(got.keyFn).Pointer())
}

func (s *LimiterSuite) TestConcurrentChecksAdmitExactly() {
	rule := MustRule(time.Minute, 100)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if s.lim.Check("user1", "search", rule).Allowed {
					mu.Lock()
					allowed++
					mu.Unlock()
				}
			}
		}()
	}
	wg.Wait()

	// 400 racing calls against a 100-request window: no lost updates.
	s.Equal(100, allowed)
}
