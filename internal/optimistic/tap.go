package optimistic

import (
	"sync"
	"time"
)

const (
	// DoubleTapWindow is how long after a first tap a second tap still
	// counts as a double tap.
	DoubleTapWindow = 300 * time.Millisecond
	// LikePulseDuration is how long the like affordance stays highlighted
	// after a double-tap like.
	LikePulseDuration = 150 * time.Millisecond
)

// TapAction is the classified outcome of tap input on a post.
type TapAction int

const (
	// ActionNone means the tap is held pending the double-tap window.
	ActionNone TapAction = iota
	// ActionOpenDetail is a settled single tap.
	ActionOpenDetail
	// ActionLike is a double tap on an unliked post.
	ActionLike
)

// TapClassifier resolves the single-tap vs double-tap ambiguity on a post.
// A first tap is held for DoubleTapWindow; a second tap inside the window
// classifies as a like, and window expiry without one classifies as opening
// the detail view. The caller drives time explicitly via Expire, so the
// classifier itself has no timers.
type TapClassifier struct {
	mu         sync.Mutex
	pendingAt  time.Time
	hasPending bool
	liked      bool
}

// NewTapClassifier creates a classifier for a post with the given liked
// state.
func NewTapClassifier(liked bool) *TapClassifier {
	return &TapClassifier{liked: liked}
}

// SetLiked updates the liked state the classifier gates double taps on.
func (t *TapClassifier) SetLiked(liked bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.liked = liked
}

// Tap feeds one tap at the given instant. The first tap returns ActionNone
// and starts the window. A second tap inside the window returns ActionLike
// when the post is unliked; on an already-liked post the double tap is
// consumed without toggling. A second tap after the window expired settles
// the held tap as ActionOpenDetail and starts a new window.
func (t *TapClassifier) Tap(now time.Time) TapAction {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.hasPending && now.Sub(t.pendingAt) <= DoubleTapWindow {
		t.hasPending = false
		if t.liked {
			return ActionNone
		}
		return ActionLike
	}

	expired := t.hasPending
	t.pendingAt = now
	t.hasPending = true
	if expired {
		return ActionOpenDetail
	}
	return ActionNone
}

// Expire settles the held tap once the window has passed. Returns
// ActionOpenDetail exactly once per expired tap, ActionNone otherwise.
func (t *TapClassifier) Expire(now time.Time) TapAction {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.hasPending || now.Sub(t.pendingAt) <= DoubleTapWindow {
		return ActionNone
	}
	t.hasPending = false
	return ActionOpenDetail
}
