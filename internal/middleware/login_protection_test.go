// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"testing"
	"time"
)

func newTestProtection() *LoginProtection {
	return NewLoginProtection(LoginProtectionConfig{
		IPRateLimit:       100, // effectively unlimited for tests
		IPBurst:           100,
		MaxFailedAttempts: 3,
		LockoutDuration:   time.Minute,
		AttemptWindow:     time.Minute,
	})
}

func TestAccountLocksAfterMaxFailures(t *testing.T) {
	lp := newTestProtection()
	email := "admin@example.com"

	for i := 0; i < 2; i++ {
		if locked, _ := lp.RecordFailedAttempt(email); locked {
			t.Fatalf("locked after %d attempts", i+1)
		}
	}

	locked, duration := lp.RecordFailedAttempt(email)
	if !locked {
		t.Fatal("expected lockout on third failure")
	}
	if duration != time.Minute {
		t.Errorf("expected base lockout duration, got %v", duration)
	}

	isLocked, remaining := lp.IsAccountLocked(email)
	if !isLocked {
		t.Error("IsAccountLocked should report locked")
	}
	if remaining <= 0 || remaining > time.Minute {
		t.Errorf("unexpected remaining time %v", remaining)
	}
}

func TestSuccessfulLoginClearsFailures(t *testing.T) {
	lp := newTestProtection()
	email := "admin@example.com"

	lp.RecordFailedAttempt(email)
	lp.RecordFailedAttempt(email)
	lp.RecordSuccessfulLogin(email)

	// Counter restarted, two more failures do not lock
	if locked, _ := lp.RecordFailedAttempt(email); locked {
		t.Error("locked after reset")
	}
	if locked, _ := lp.RecordFailedAttempt(email); locked {
		t.Error("locked after reset on second failure")
	}
}

func TestLockoutBackoffDoubles(t *testing.T) {
	lp := newTestProtection()
	email := "admin@example.com"

	lockAccount := func() time.Duration {
		t.Helper()
		for {
			if locked, d := lp.RecordFailedAttempt(email); locked {
				return d
			}
		}
	}

	first := lockAccount()

	// Expire the first lockout manually
	lp.attemptsMu.Lock()
	lp.failedAttempts[email].lockedUntil = time.Now().Add(-time.Second)
	lp.attemptsMu.Unlock()

	second := lockAccount()
	if second != 2*first {
		t.Errorf("expected doubled lockout, first=%v second=%v", first, second)
	}
}

func TestAccountsTrackedIndependently(t *testing.T) {
	lp := newTestProtection()

	for i := 0; i < 3; i++ {
		lp.RecordFailedAttempt("victim@example.com")
	}

	if locked, _ := lp.IsAccountLocked("other@example.com"); locked {
		t.Error("unrelated account locked")
	}
}
