// Property-based tests for the weekly claim eligibility logic.
package ledger

import (
	"testing"
	"time"

	"pgregory.net/rapid"
)

// TestClaimEligibilityProperty checks the weekly claim rule: a sender
// who never claimed is always eligible, and otherwise eligibility flips
// exactly when the cooldown has elapsed.
func TestClaimEligibilityProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		now := time.Unix(rapid.Int64Range(1_000_000_000, 2_000_000_000).Draw(t, "now"), 0)
		cooldownDays := rapid.IntRange(1, 30).Draw(t, "cooldownDays")
		cooldown := time.Duration(cooldownDays) * 24 * time.Hour

		if eligible, remaining := claimEligibility(nil, cooldown, now); !eligible || remaining != 0 {
			t.Fatalf("never-claimed sender must be eligible, got eligible=%v remaining=%v", eligible, remaining)
		}

		elapsed := time.Duration(rapid.Int64Range(0, int64(60*24*time.Hour)).Draw(t, "elapsed"))
		lastClaim := now.Add(-elapsed)

		eligible, remaining := claimEligibility(&lastClaim, cooldown, now)
		if elapsed >= cooldown {
			if !eligible {
				t.Fatalf("claim %v after last with cooldown %v must be eligible", elapsed, cooldown)
			}
			if remaining != 0 {
				t.Fatalf("eligible claim must have zero remaining, got %v", remaining)
			}
		} else {
			if eligible {
				t.Fatalf("claim %v after last with cooldown %v must be blocked", elapsed, cooldown)
			}
			if want := cooldown - elapsed; remaining != want {
				t.Fatalf("remaining wait mismatch: want %v, got %v", want, remaining)
			}
		}
	})
}

// TestClaimEligibilityRemainingBoundedProperty checks the remaining
// wait never exceeds the cooldown itself.
func TestClaimEligibilityRemainingBoundedProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		now := time.Unix(rapid.Int64Range(1_000_000_000, 2_000_000_000).Draw(t, "now"), 0)
		cooldown := time.Duration(rapid.IntRange(1, 30).Draw(t, "cooldownDays")) * 24 * time.Hour
		elapsed := time.Duration(rapid.Int64Range(0, int64(60*24*time.Hour)).Draw(t, "elapsed"))
		lastClaim := now.Add(-elapsed)

		_, remaining := claimEligibility(&lastClaim, cooldown, now)
		if remaining < 0 || remaining > cooldown {
			t.Fatalf("remaining %v outside [0, %v]", remaining, cooldown)
		}
	})
}
