// Package testutil provides shared test helpers: goroutine leak checks and
// synthetic audio fixtures.
package testutil

import (
	"testing"

	"go.uber.org/goleak"
)

// fyneGoroutines are started by the Fyne drivers and live as long as the
// process, so no test can be expected to stop them.
var fyneGoroutines = []goleak.Option{
	goleak.IgnoreTopFunction("fyne.io/fyne/v2/internal/driver/glfw.(*gLDriver).runGL.func1"),
	goleak.IgnoreTopFunction("fyne.io/fyne/v2/internal/driver/glfw.(*window).RunEventQueue"),
	goleak.IgnoreTopFunction("fyne.io/fyne/v2/internal/animation.(*Runner).runAnimations"),
	goleak.IgnoreAnyFunction("fyne.io/fyne/v2"),
}

// VerifyNoLeaks should be deferred first in tests that spawn goroutines, so
// it runs after every other deferred Shutdown or Close.
func VerifyNoLeaks(t testing.TB, opts ...goleak.Option) {
	t.Helper()
	goleak.VerifyNone(t, opts...)
}

// VerifyNoLeaksWithFyne is VerifyNoLeaks for tests that create a Fyne test app.
func VerifyNoLeaksWithFyne(t testing.TB, opts ...goleak.Option) {
	t.Helper()
	VerifyNoLeaks(t, append(IgnoreFyneGoroutines(), opts...)...)
}

// IgnoreFyneGoroutines returns goleak options to ignore known Fyne framework goroutines.
func IgnoreFyneGoroutines() []goleak.Option {
	return append([]goleak.Option(nil), fyneGoroutines...)
}
