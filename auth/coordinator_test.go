package auth

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yllada/chatdock/bridge"
)

type fakeAuthWindow struct {
	url       string
	focuses   int
	closed    bool
	onClose   func(*fakeAuthWindow)
	destroyed bool
}

func (w *fakeAuthWindow) Focus() { w.focuses++ }
func (w *fakeAuthWindow) Close() {
	w.closed = true
	w.destroyed = true
	if w.onClose != nil {
		w.onClose(w)
	}
}
func (w *fakeAuthWindow) Destroyed() bool { return w.destroyed }

type fakeOpener struct {
	opened []*fakeAuthWindow
	err    error
	coord  *Coordinator
}

func (o *fakeOpener) OpenAuthWindow(url string) (AuthWindow, error) {
	if o.err != nil {
		return nil, o.err
	}
	w := &fakeAuthWindow{url: url}
	w.onClose = func(w *fakeAuthWindow) { o.coord.AuthWindowClosed(w) }
	o.opened = append(o.opened, w)
	return w, nil
}

func (o *fakeOpener) live() int {
	n := 0
	for _, w := range o.opened {
		if !w.destroyed {
			n++
		}
	}
	return n
}

type fakeContent struct{ loads []string }

func (c *fakeContent) Load(url string) { c.loads = append(c.loads, url) }

type signals struct{ got []bridge.Signal }

func (s *signals) Emit(sig bridge.Signal) { s.got = append(s.got, sig) }

const (
	signinURL   = "https://accounts.example.com/signin"
	continueURL = "https://accounts.example.com/continue"
	appURL      = "https://chat.example.com/app"
)

type harness struct {
	coord   *Coordinator
	opener  *fakeOpener
	content *fakeContent
	signals *signals
}

func newHarness(policy Policy) *harness {
	h := &harness{opener: &fakeOpener{}, content: &fakeContent{}, signals: &signals{}}
	h.coord = NewCoordinator(Options{
		Policy:    policy,
		Matcher:   NewMatcher([]string{"accounts.", "signin."}, []string{"chat.example.com"}),
		Opener:    h.opener,
		Content:   h.content,
		Emitter:   h.signals,
		Partition: "persist:chat",
	})
	h.opener.coord = h.coord
	return h
}

func TestIntercept_UnmatchedAllowed(t *testing.T) {
	for _, policy := range []Policy{PolicyWindow, PolicyInPlace} {
		t.Run(policy.String(), func(t *testing.T) {
			h := newHarness(policy)

			assert.Equal(t, Allow, h.coord.Intercept(Navigation{URL: "https://docs.example.org/help", Kind: NewWindow}))
			assert.Equal(t, Allow, h.coord.Intercept(Navigation{URL: appURL, Kind: InView}))
			assert.Empty(t, h.opener.opened)
			assert.Empty(t, h.content.loads)
			assert.False(t, h.coord.Session().Active)
		})
	}
}

func TestWindowPolicy_OpensSharedPartitionWindow(t *testing.T) {
	h := newHarness(PolicyWindow)

	assert.Equal(t, Deny, h.coord.Intercept(Navigation{URL: signinURL, Kind: InView}))
	require.Len(t, h.opener.opened, 1)
	assert.Equal(t, signinURL, h.opener.opened[0].url)

	s := h.coord.Session()
	assert.True(t, s.Active)
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, "persist:chat", s.Partition)
}

func TestWindowPolicy_Singleton(t *testing.T) {
	h := newHarness(PolicyWindow)

	h.coord.Intercept(Navigation{URL: signinURL, Kind: NewWindow})
	id := h.coord.Session().ID
	assert.Equal(t, Deny, h.coord.Intercept(Navigation{URL: "https://signin.example.com/x", Kind: NewWindow}))

	assert.Equal(t, 1, h.opener.live())
	assert.Equal(t, 1, h.opener.opened[0].focuses)
	assert.Equal(t, id, h.coord.Session().ID)
}

func TestWindowPolicy_Completion(t *testing.T) {
	h := newHarness(PolicyWindow)
	h.coord.Intercept(Navigation{URL: signinURL, Kind: InView})
	w := h.opener.opened[0]

	h.coord.Observe(FromAuthWindow, continueURL)
	assert.Empty(t, h.signals.got)
	assert.False(t, w.closed)

	h.coord.Observe(FromAuthWindow, appURL)
	h.coord.Observe(FromAuthWindow, appURL+"#thread")

	assert.Equal(t, []bridge.Signal{bridge.AuthComplete}, h.signals.got)
	assert.True(t, w.closed)
	assert.False(t, h.coord.Session().Active)
}

func TestWindowPolicy_IgnoresContentEvents(t *testing.T) {
	h := newHarness(PolicyWindow)
	h.coord.Intercept(Navigation{URL: signinURL, Kind: InView})

	h.coord.Observe(FromContent, appURL)
	assert.Empty(t, h.signals.got)
	assert.True(t, h.coord.Session().Active)
}

func TestWindowPolicy_EarlyCloseResets(t *testing.T) {
	h := newHarness(PolicyWindow)
	h.coord.Intercept(Navigation{URL: signinURL, Kind: InView})

	h.opener.opened[0].Close()
	assert.False(t, h.coord.Session().Active)

	h.coord.Observe(FromAuthWindow, appURL)
	assert.Empty(t, h.signals.got)

	h.coord.Intercept(Navigation{URL: signinURL, Kind: InView})
	assert.Len(t, h.opener.opened, 2)
	assert.True(t, h.coord.Session().Active)
}

func TestWindowPolicy_StaleCloseIgnored(t *testing.T) {
	h := newHarness(PolicyWindow)
	h.coord.Intercept(Navigation{URL: signinURL, Kind: InView})

	h.coord.AuthWindowClosed(&fakeAuthWindow{})
	assert.True(t, h.coord.Session().Active)
}

func TestWindowPolicy_DestroyedWindowReplaced(t *testing.T) {
	h := newHarness(PolicyWindow)
	h.coord.Intercept(Navigation{URL: signinURL, Kind: InView})
	h.opener.opened[0].destroyed = true

	h.coord.Intercept(Navigation{URL: signinURL, Kind: InView})
	assert.Len(t, h.opener.opened, 2)
}

func TestWindowPolicy_OpenFailureAllows(t *testing.T) {
	h := newHarness(PolicyWindow)
	h.opener.err = errors.New("no display")

	assert.Equal(t, Allow, h.coord.Intercept(Navigation{URL: signinURL, Kind: NewWindow}))
	assert.False(t, h.coord.Session().Active)
}

func TestInPlacePolicy(t *testing.T) {
	h := newHarness(PolicyInPlace)

	assert.Equal(t, Deny, h.coord.Intercept(Navigation{URL: signinURL, Kind: NewWindow}))
	assert.Equal(t, []string{signinURL}, h.content.loads)
	assert.Empty(t, h.opener.opened)

	// The redirect chain inside the view is left alone.
	assert.Equal(t, Allow, h.coord.Intercept(Navigation{URL: continueURL, Kind: InView}))

	h.coord.Observe(FromAuthWindow, appURL)
	assert.Empty(t, h.signals.got)

	h.coord.Observe(FromContent, appURL)
	h.coord.Observe(FromContent, appURL)
	assert.Equal(t, []bridge.Signal{bridge.AuthComplete}, h.signals.got)
	assert.False(t, h.coord.Session().Active)
}

func TestMaskAutomation_OnlyInPlace(t *testing.T) {
	for _, tt := range []struct {
		policy Policy
		mask   bool
		want   bool
	}{
		{PolicyInPlace, true, true},
		{PolicyInPlace, false, false},
		{PolicyWindow, true, false},
	} {
		c := NewCoordinator(Options{Policy: tt.policy, MaskAutomation: tt.mask})
		assert.Equal(t, tt.want, c.MaskAutomation(), "%s mask=%t", tt.policy, tt.mask)
	}
}

func TestParsePolicy(t *testing.T) {
	assert.Equal(t, PolicyInPlace, ParsePolicy("inplace"))
	assert.Equal(t, PolicyWindow, ParsePolicy("window"))
	assert.Equal(t, PolicyWindow, ParsePolicy("popup"))
}
