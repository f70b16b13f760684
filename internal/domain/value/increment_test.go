package value_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"auction_house/internal/domain/value"
)

func TestIncrementSchedule(t *testing.T) {
	rq := require.New(t)
	schedule := value.DefaultIncrementSchedule()

	testCases := []struct {
		name      string
		current   int64
		increment int64
	}{
		{name: "Zero", current: 0, increment: 10},
		{name: "Low tier", current: 150, increment: 10},
		{name: "Just below 200", current: 199, increment: 10},
		{name: "Exactly 200", current: 200, increment: 20},
		{name: "Mid tier", current: 350, increment: 20},
		{name: "Just below 500", current: 499, increment: 20},
		{name: "Exactly 500", current: 500, increment: 25},
		{name: "High tier", current: 10_000, increment: 25},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			rq.Equal(tc.increment, schedule.Increment(tc.current))
			rq.Equal(tc.current+tc.increment, schedule.MinimumNextBid(tc.current))
		})
	}
}

func TestIncrementScheduleTiers(t *testing.T) {
	schedule := value.DefaultIncrementSchedule()

	rapid.Check(t, func(t *rapid.T) {
		current := rapid.Int64Range(0, 1_000_000).Draw(t, "current")

		var want int64

		switch {
		case current < 200:
			want = 10
		case current < 500:
			want = 20
		default:
			want = 25
		}

		if got := schedule.Increment(current); got != want {
			t.Fatalf("increment for %d: got %d, want %d", current, got, want)
		}
	})
}

func TestIncrementScheduleAdmitsBoundary(t *testing.T) {
	schedule := value.DefaultIncrementSchedule()

	rapid.Check(t, func(t *rapid.T) {
		current := rapid.Int64Range(0, 1_000_000).Draw(t, "current")
		minimum := current + schedule.Increment(current)

		if !schedule.Admits(current, minimum) {
			t.Fatalf("bid %d equal to minimum over %d must be admitted", minimum, current)
		}

		if schedule.Admits(current, minimum-1) {
			t.Fatalf("bid %d one unit below minimum over %d must be rejected", minimum-1, current)
		}

		above := rapid.Int64Range(minimum, minimum+10_000).Draw(t, "above")
		if !schedule.Admits(current, above) {
			t.Fatalf("bid %d above minimum over %d must be admitted", above, current)
		}
	})
}

func TestAdmitsNearInt64Limit(t *testing.T) {
	rq := require.New(t)
	schedule := value.DefaultIncrementSchedule()

	testCases := []struct {
		name     string
		current  int64
		amount   int64
		admitted bool
	}{
		{name: "Low bid after the maximum", current: math.MaxInt64, amount: 1},
		{name: "Equal to the maximum", current: math.MaxInt64, amount: math.MaxInt64},
		{name: "Step would overflow", current: math.MaxInt64 - 10, amount: math.MaxInt64},
		{name: "Exact step below the limit", current: math.MaxInt64 - 25, amount: math.MaxInt64, admitted: true},
		{name: "Bid limit then a low bid", current: value.MaxBidAmount, amount: 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			rq.Equal(tc.admitted, schedule.Admits(tc.current, tc.amount))
		})
	}

	rq.Equal(int64(math.MaxInt64), schedule.MinimumNextBid(math.MaxInt64-1))
}

func TestBidAmountInRange(t *testing.T) {
	rq := require.New(t)

	rq.False(value.BidAmountInRange(0))
	rq.True(value.BidAmountInRange(1))
	rq.True(value.BidAmountInRange(value.MaxBidAmount))
	rq.False(value.BidAmountInRange(value.MaxBidAmount + 1))
	rq.Less(value.MaxBidAmount, int64(1)<<53)
}
