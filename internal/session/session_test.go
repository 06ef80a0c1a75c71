package session_test

import (
	"sort"
	"testing"
	"time"

	"github.com/MegaGrindStone/finbot-web/internal/chat"
	"github.com/MegaGrindStone/finbot-web/internal/market"
	"github.com/MegaGrindStone/finbot-web/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time {
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func newSession(id string, now time.Time) *session.Session {
	return session.New(id, chat.NewPanel(nil), market.NewSidebar(market.MockSnapshot()), now)
}

func TestStoreAddGetRemove(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	st := session.NewStore(clock.now)

	s := newSession("a", st.Now())
	st.Add(s)
	assert.Equal(t, 1, st.Len())

	got, ok := st.Get("a")
	require.True(t, ok)
	assert.Same(t, s, got)

	_, ok = st.Get("missing")
	assert.False(t, ok)

	assert.True(t, st.Remove("a"))
	assert.False(t, st.Remove("a"))
	_, ok = st.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, st.Len())
}

func TestStoreSweep(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	st := session.NewStore(clock.now)

	st.Add(newSession("old", st.Now()))
	st.Add(newSession("busy", st.Now()))

	clock.advance(20 * time.Minute)
	st.Add(newSession("fresh", st.Now()))
	_, ok := st.Get("busy")
	require.True(t, ok)

	clock.advance(15 * time.Minute)
	removed := st.Sweep(30 * time.Minute)
	sort.Strings(removed)

	assert.Equal(t, []string{"old"}, removed)
	assert.Equal(t, 2, st.Len())

	_, ok = st.Get("old")
	assert.False(t, ok)
	_, ok = st.Get("busy")
	assert.True(t, ok)
	_, ok = st.Get("fresh")
	assert.True(t, ok)
}

func TestStoreSweepKeepsStreamingPages(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	st := session.NewStore(clock.now)

	open := newSession("open", st.Now())
	st.Add(open)
	open.StreamOpened()
	open.StreamOpened()

	clock.advance(3 * time.Hour)
	assert.Empty(t, st.Sweep(time.Hour))

	open.StreamClosed(st.Now())
	assert.True(t, open.Streaming())
	clock.advance(3 * time.Hour)
	assert.Empty(t, st.Sweep(time.Hour))

	open.StreamClosed(st.Now())
	assert.False(t, open.Streaming())
	assert.Empty(t, st.Sweep(time.Hour), "idle time starts when the last stream closes")

	clock.advance(2 * time.Hour)
	assert.Equal(t, []string{"open"}, st.Sweep(time.Hour))
}

func TestSessionsIndependent(t *testing.T) {
	st := session.NewStore(nil)
	a := newSession("a", st.Now())
	b := newSession("b", st.Now())
	st.Add(a)
	st.Add(b)

	require.NoError(t, a.Sidebar.SelectView(market.ViewNews))
	a.Chat.SetDraft("only on a")

	assert.Equal(t, market.ViewOverview, b.Sidebar.View())
	assert.Equal(t, "", b.Chat.Draft())
}
