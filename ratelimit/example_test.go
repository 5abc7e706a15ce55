package ratelimit_test

import (
	"fmt"
	"time"

	"github.com/iamaanahmad/madhubani-nikah-core/ratelimit"
)

func ExampleLimiter_Check() {
	lim, err := ratelimit.New()
	if err != nil {
		panic(err)
	}
	defer lim.Close()

	rule := ratelimit.MustRule(time.Minute, 3)

	for i := 0; i < 4; i++ {
		d := lim.Check("user1", "profile_search", rule)
		fmt.Println(d.Allowed, d.Remaining)
	}
	// Output:
	// true 2
	// true 1
	// true 0
	// false 0
}

func ExampleRuleSet() {
	rules := ratelimit.NewRuleSet(ratelimit.MustRule(time.Minute, 60))
	rules.Set("login", ratelimit.MustRule(15*time.Minute, 5))

	fmt.Println(rules.Rule("login").MaxRequests())
	fmt.Println(rules.Rule("interest_message").MaxRequests())
	// Output:
	// 5
	// 60
}

func ExampleCombine() {
	lim, err := ratelimit.New()
	if err != nil {
		panic(err)
	}
	defer lim.Close()

	userRule := ratelimit.MustRule(time.Minute, 1)
	addrRule := ratelimit.MustRule(time.Minute, 100, ratelimit.WithKeyFunc(
		func(id, _ string) string { return "addr:" + id },
	))

	lim.Check("user1", "message", userRule) // spends the only per-user slot

	d := ratelimit.Combine(
		lim.Check("user1", "message", userRule),
		lim.Check("10.0.0.1", "message", addrRule),
	)
	fmt.Println(d.Allowed, d.Remaining)
	// Output: false 0
}
