// Package auth hands identity-provider sign-in off from the embedded
// content view. Under the window policy the provider's pages open in a
// standalone window sharing the content view's storage partition; under the
// inplace policy the content view itself is navigated there. Either way,
// completion is detected from navigation events and announced with the
// auth-complete signal.
//
// Coordinator is driven from the UI event loop only.
package auth

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yllada/chatdock/bridge"
	"github.com/yllada/chatdock/common"
)

// Policy selects how identity-provider navigations are handled.
type Policy int

const (
	// PolicyWindow opens a secondary window sharing the partition.
	PolicyWindow Policy = iota
	// PolicyInPlace navigates the content view itself.
	PolicyInPlace
)

func (p Policy) String() string {
	if p == PolicyInPlace {
		return common.AuthPolicyInPlace
	}
	return common.AuthPolicyWindow
}

// ParsePolicy maps a config value to a Policy. Unknown values select
// PolicyWindow.
func ParsePolicy(s string) Policy {
	if s == common.AuthPolicyInPlace {
		return PolicyInPlace
	}
	return PolicyWindow
}

// Kind tells an in-view navigation from a request for a new window.
type Kind int

const (
	InView Kind = iota
	NewWindow
)

// Navigation is a navigation attempt reported by the content view.
type Navigation struct {
	URL  string
	Kind Kind
}

// Decision is the verdict for an intercepted navigation.
type Decision int

const (
	Allow Decision = iota
	Deny
)

func (d Decision) String() string {
	if d == Deny {
		return "deny"
	}
	return "allow"
}

// Origin names the surface a navigation event came from.
type Origin int

const (
	FromContent Origin = iota
	FromAuthWindow
)

// AuthWindow is a live secondary window.
type AuthWindow interface {
	Focus()
	Close()
	Destroyed() bool
}

// WindowOpener opens a secondary window at a URL using the content view's
// storage partition.
type WindowOpener interface {
	OpenAuthWindow(url string) (AuthWindow, error)
}

// ContentNavigator loads a URL in the content view.
type ContentNavigator interface {
	Load(url string)
}

// Session is one sign-in attempt.
type Session struct {
	ID        string
	Active    bool
	Partition string
	Target    AuthWindow
	Started   time.Time
}

// Options configures a Coordinator.
type Options struct {
	Policy         Policy
	Matcher        *Matcher
	Opener         WindowOpener
	Content        ContentNavigator
	Emitter        bridge.Emitter
	Partition      string
	MaskAutomation bool
}

// Coordinator owns the AuthSession. At most one session is active.
type Coordinator struct {
	policy    Policy
	matcher   *Matcher
	opener    WindowOpener
	content   ContentNavigator
	emitter   bridge.Emitter
	partition string
	mask      bool
	log       *common.ComponentLogger

	session Session
}

// NewCoordinator creates a coordinator with no active session.
func NewCoordinator(opts Options) *Coordinator {
	return &Coordinator{
		policy:    opts.Policy,
		matcher:   opts.Matcher,
		opener:    opts.Opener,
		content:   opts.Content,
		emitter:   opts.Emitter,
		partition: opts.Partition,
		mask:      opts.MaskAutomation,
		log:       common.Logger("auth"),
	}
}

// Policy returns the active policy.
func (c *Coordinator) Policy() Policy { return c.policy }

// MaskAutomation reports whether the content view should carry the
// automation-masking script. It only applies to the inplace policy.
func (c *Coordinator) MaskAutomation() bool {
	return c.mask && c.policy == PolicyInPlace
}

// Session returns a copy of the current session.
func (c *Coordinator) Session() Session { return c.session }

// Intercept decides a navigation from the content view. URLs that do not
// match the identity provider are always allowed.
func (c *Coordinator) Intercept(nav Navigation) Decision {
	if !c.matcher.IsProvider(nav.URL) {
		return Allow
	}

	switch c.policy {
	case PolicyInPlace:
		return c.interceptInPlace(nav)
	default:
		return c.interceptWindow(nav)
	}
}

func (c *Coordinator) interceptWindow(nav Navigation) Decision {
	if target := c.session.Target; c.session.Active && target != nil && !target.Destroyed() {
		c.log.Debug("Auth window already open, focusing it")
		target.Focus()
		return Deny
	}

	w, err := c.opener.OpenAuthWindow(nav.URL)
	if err != nil {
		c.log.Warn("Opening auth window: %v; falling back to default handling", err)
		return Allow
	}
	c.begin(w)
	return Deny
}

func (c *Coordinator) interceptInPlace(nav Navigation) Decision {
	if !c.session.Active {
		c.begin(nil)
	}
	if nav.Kind == InView {
		return Allow
	}
	c.content.Load(nav.URL)
	return Deny
}

func (c *Coordinator) begin(target AuthWindow) {
	c.session = Session{
		ID:        uuid.NewString(),
		Active:    true,
		Partition: c.partition,
		Target:    target,
		Started:   time.Now(),
	}
	c.log.Info("Auth session %s started (%s policy)", c.session.ID, c.policy)
}

// Observe handles a committed navigation, full or same-document. Events
// from the surface the active policy does not watch are ignored.
func (c *Coordinator) Observe(origin Origin, rawURL string) {
	if !c.session.Active || origin != c.watched() {
		return
	}
	if !c.matcher.IsComplete(rawURL) {
		return
	}

	done := c.session
	c.session = Session{}
	c.log.Info("Auth session %s complete after %s", done.ID, time.Since(done.Started).Round(time.Millisecond))

	if done.Target != nil && !done.Target.Destroyed() {
		done.Target.Close()
	}
	c.emitter.Emit(bridge.AuthComplete)
}

// AuthWindowClosed resets the session when the user closes its auth window
// before finishing. Closures of any other window are ignored.
func (c *Coordinator) AuthWindowClosed(w AuthWindow) {
	if !c.session.Active || c.session.Target != w {
		return
	}
	c.log.Info("Auth session %s abandoned", c.session.ID)
	c.session = Session{}
}

func (c *Coordinator) watched() Origin {
	if c.policy == PolicyInPlace {
		return FromContent
	}
	return FromAuthWindow
}

func (s Session) String() string {
	return fmt.Sprintf("session %s active=%t partition=%s", s.ID, s.Active, s.Partition)
}
