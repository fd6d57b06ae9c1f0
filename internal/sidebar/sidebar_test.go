package sidebar

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgallion1/navtree/internal/navtree"
)

func TestToggle(t *testing.T) {
	c := New(0)
	c.Toggle("a")
	assert.True(t, c.IsOpen("a"))
	c.Toggle("a")
	assert.False(t, c.IsOpen("a"))
}

func TestSelectOpensNode(t *testing.T) {
	c := New(0)
	c.Select("a")
	assert.Equal(t, "a", c.SelectedKey())
	assert.True(t, c.IsOpen("a"))

	c.Select("")
	assert.Equal(t, "", c.SelectedKey())
	assert.True(t, c.IsOpen("a"), "clearing the selection keeps nodes expanded")
}

func TestSetOpenKeysCopies(t *testing.T) {
	c := New(0)
	keys := navtree.KeySet{"a": {}, "b": {}}
	c.SetOpenKeys(keys)
	delete(keys, "a")
	assert.True(t, c.IsOpen("a"))

	got := c.OpenKeys()
	delete(got, "b")
	assert.True(t, c.IsOpen("b"))

	c.SetOpenKeys(nil)
	assert.Empty(t, c.OpenKeys())
}

func TestFollowRoute(t *testing.T) {
	pages := navtree.PageMap{
		"guide": {Key: "guide", Name: "Guide"},
		"setup": {Key: "setup", Name: "Setup", ParentKey: navtree.StringPtr("guide"), Link: navtree.StringPtr("setup.html")},
	}
	c := New(0)
	c.Toggle("unrelated")
	c.FollowRoute(pages, "/setup.html")

	snap := c.Snapshot()
	assert.Equal(t, []string{"guide", "setup"}, snap.OpenKeys)
	assert.Equal(t, "setup", snap.SelectedKey)

	c.FollowRoute(pages, "/")
	snap = c.Snapshot()
	assert.Empty(t, snap.OpenKeys)
	assert.Equal(t, "", snap.SelectedKey)
}

func TestFilterImmediateWithoutDebounce(t *testing.T) {
	c := New(0)
	c.SetFilterInput("  Setup ")
	assert.Equal(t, "setup", c.FilterText())
	assert.True(t, c.IsFilterActive())

	c.ClearFilter()
	snap := c.Snapshot()
	assert.Equal(t, "", snap.FilterInput)
	assert.False(t, snap.FilterActive)
}

func TestFilterDebounced(t *testing.T) {
	c := New(30 * time.Millisecond)
	c.SetFilterInput("gu")
	c.SetFilterInput("guide")

	assert.Equal(t, "guide", c.Snapshot().FilterInput)
	assert.Equal(t, "", c.FilterText(), "filter must not apply before the quiet period")

	assert.Eventually(t, func() bool { return c.FilterText() == "guide" }, time.Second, 5*time.Millisecond)
}

func TestClearFilterCancelsPending(t *testing.T) {
	c := New(30 * time.Millisecond)
	c.SetFilterInput("guide")
	c.ClearFilter()

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, "", c.FilterText())
	assert.False(t, c.IsFilterActive())
}

func TestWhitespaceFilterIsInactive(t *testing.T) {
	c := New(0)
	c.SetFilterInput("   ")
	assert.False(t, c.IsFilterActive())
}

func TestView(t *testing.T) {
	tree := navtree.BuildTree(&navtree.Content{
		Pages: navtree.PageMap{
			"a": {Key: "a", Name: "Alpha"},
			"b": {Key: "b", Name: "Beta"},
		},
		RootLevelKeys: []string{"a", "b"},
	})
	c := New(0)
	assert.Len(t, c.View(tree), 2)

	c.SetFilterInput("BETA")
	view := c.View(tree)
	require.Len(t, view, 1)
	assert.Equal(t, "b", view[0].Key)
}

func TestSubscribe(t *testing.T) {
	c := New(0)
	var mu sync.Mutex
	var snaps []Snapshot
	unsubscribe := c.Subscribe(func(s Snapshot) {
		mu.Lock()
		defer mu.Unlock()
		snaps = append(snaps, s)
	})

	c.Toggle("a")
	c.Select("b")
	unsubscribe()
	c.Toggle("c")

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, snaps, 2)
	assert.Equal(t, []string{"a"}, snaps[0].OpenKeys)
	assert.Equal(t, "b", snaps[1].SelectedKey)
}

func TestDebouncerLastValueWins(t *testing.T) {
	var mu sync.Mutex
	var got []int
	d := NewDebouncer(20*time.Millisecond, func(v int) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, v)
	})
	for i := range 5 {
		d.Push(i)
	}

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 1
	}, time.Second, 5*time.Millisecond)

	time.Sleep(40 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{4}, got)
}

func TestDebouncerFiredTimerAfterCancelIsDropped(t *testing.T) {
	var calls []string
	d := NewDebouncer(time.Hour, func(v string) { calls = append(calls, v) })
	d.Push("guide")

	d.mu.Lock()
	g := d.gen
	d.mu.Unlock()

	// The timer callback may already be running when Cancel takes the lock.
	d.Cancel()
	d.fire(g, "guide")
	assert.Empty(t, calls)

	d.Push("api")
	d.mu.Lock()
	g = d.gen
	d.mu.Unlock()
	d.fire(g, "api")
	assert.Equal(t, []string{"api"}, calls)
}

func TestApplyFilterAfterClearIsDropped(t *testing.T) {
	c := New(time.Hour)
	var notified int
	c.Subscribe(func(Snapshot) { notified++ })

	c.SetFilterInput("guide")
	c.ClearFilter()
	before := notified

	c.applyFilter("guide")
	assert.Equal(t, "", c.FilterText())
	assert.False(t, c.IsFilterActive())
	assert.Equal(t, before, notified, "a dropped delivery must not notify observers")
}

func TestApplyFilterStaleValueIsDropped(t *testing.T) {
	c := New(time.Hour)
	c.SetFilterInput("gu")
	c.SetFilterInput("guide")

	c.applyFilter("gu")
	assert.Equal(t, "", c.FilterText())

	c.applyFilter("guide")
	assert.Equal(t, "guide", c.FilterText())
}
