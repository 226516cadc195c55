// Package statusbar holds the transient status message shown at the
// bottom of the screen. Messages either stay until replaced or expire
// on a timer.
package statusbar

import (
	"sync"
	"time"
)

// Bar is the status message holder. It implements the notifier the
// find/replace engine reports through.
// Safe for concurrent use; expiry timers fire on their own goroutine.
type Bar struct {
	mu      sync.Mutex
	message string
	timer   *time.Timer

	onChange func(msg string)
}

// New creates an empty bar. onChange, if non-nil, is called with the
// new message text after every change, including expiry.
func New(onChange func(msg string)) *Bar {
	return &Bar{onChange: onChange}
}

// Show displays a message until it is replaced or cleared.
func (b *Bar) Show(msg string) {
	b.mu.Lock()
	b.stopTimer()
	b.message = msg
	b.mu.Unlock()
	b.notify(msg)
}

// ShowTimed displays a message that clears itself after d.
func (b *Bar) ShowTimed(msg string, d time.Duration) {
	b.mu.Lock()
	b.stopTimer()
	b.message = msg
	b.timer = time.AfterFunc(d, func() { b.expire(msg) })
	b.mu.Unlock()
	b.notify(msg)
}

// Clear removes the current message.
func (b *Bar) Clear() {
	b.mu.Lock()
	b.stopTimer()
	b.message = ""
	b.mu.Unlock()
	b.notify("")
}

// Message returns the currently displayed message.
func (b *Bar) Message() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.message
}

// expire clears the message only if it is still the one the timer was
// armed for.
func (b *Bar) expire(msg string) {
	b.mu.Lock()
	if b.message != msg {
		b.mu.Unlock()
		return
	}
	b.message = ""
	b.timer = nil
	b.mu.Unlock()
	b.notify("")
}

func (b *Bar) stopTimer() {
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
}

func (b *Bar) notify(msg string) {
	if b.onChange != nil {
		b.onChange(msg)
	}
}
