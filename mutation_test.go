//go:build mutation

package main

import (
	"testing"

	"github.com/gtramontina/ooze"
)

// TestMutation mutates the calculator and snake cores and expects their tests to notice.
func TestMutation(t *testing.T) {
	ooze.Release(
		t,
		ooze.WithTestCommand("go test ./sparkos/tasks/..."),
		ooze.Parallel(),
		ooze.IgnoreSourceFiles(`^(app|hal|internal|sparkos/(client|gfx|kernel|proto|services))/.*|^main_host\.go|.*_test\.go|.*/(render|task|keys|layout)\.go`),
		ooze.WithMinimumThreshold(0.80),
		ooze.WithRepositoryRoot("."),
		ooze.ForceColors(),
	)
}
