// Test Type: Unit Test
// Description: Tests for the navigation package - profile and page switching

package navigation_test

import (
	"testing"

	"github.com/qdeck/qdeck/pkg/errors"
	"github.com/qdeck/qdeck/pkg/navigation"
	"github.com/qdeck/qdeck/pkg/state"
	"github.com/qdeck/qdeck/pkg/testutil"
	"github.com/qdeck/qdeck/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T) *navigation.Engine {
	t.Helper()
	return navigation.New(testutil.TestConfig(), nil)
}

func TestInitialPosition(t *testing.T) {
	e := newEngine(t)

	ctx := e.Context()
	assert.Equal(t, "Profile1", ctx.ProfileName)
	assert.Equal(t, 0, ctx.ProfileIndex)
	assert.Equal(t, "Page1", ctx.PageName)
	assert.Equal(t, 0, ctx.PageIndex)
	assert.Equal(t, 2, ctx.TotalProfiles)
	assert.Equal(t, 2, ctx.TotalPages)
	assert.False(t, ctx.HasPreviousPage)
	assert.True(t, ctx.HasNextPage)
}

func TestSwitchToProfile(t *testing.T) {
	e := newEngine(t)

	ctx, err := e.SwitchToProfile(1)
	require.NoError(t, err)
	assert.Equal(t, "Profile2", ctx.ProfileName)
	assert.Equal(t, "MainPage", ctx.PageName)
	assert.Equal(t, 1, ctx.TotalPages)
	assert.False(t, ctx.HasNextPage)

	_, err = e.SwitchToProfile(7)
	assert.True(t, errors.IsErrorCode(err, errors.ErrProfileNotFound))

	_, err = e.SwitchToProfileByName("Profile1")
	require.NoError(t, err)
	_, err = e.SwitchToProfileByName("Nope")
	assert.True(t, errors.IsErrorCode(err, errors.ErrProfileNotFound))
}

func TestLastActivePageRestoredOnProfileReturn(t *testing.T) {
	e := newEngine(t)

	// Move to Page2 of Profile1, leave, come back.
	_, err := e.SwitchToPage(1)
	require.NoError(t, err)
	_, err = e.SwitchToProfile(1)
	require.NoError(t, err)

	ctx, err := e.SwitchToProfile(0)
	require.NoError(t, err)
	assert.Equal(t, "Page2", ctx.PageName)
	assert.Equal(t, 1, ctx.PageIndex)
}

func TestNextPreviousBoundaries(t *testing.T) {
	e := newEngine(t)

	// At the first page, previous is a no-op returning nil.
	ctx, err := e.PreviousPage()
	require.NoError(t, err)
	assert.Nil(t, ctx)
	assert.Equal(t, 0, e.Context().PageIndex)

	ctx, err = e.NextPage()
	require.NoError(t, err)
	require.NotNil(t, ctx)
	assert.Equal(t, 1, ctx.PageIndex)
	assert.False(t, ctx.HasNextPage)

	// At the last page, next is a no-op returning nil.
	ctx, err = e.NextPage()
	require.NoError(t, err)
	assert.Nil(t, ctx)
	assert.Equal(t, 1, e.Context().PageIndex)
}

func TestNextThenPreviousIsIdentity(t *testing.T) {
	e := newEngine(t)

	before := e.Context()
	moved, err := e.NextPage()
	require.NoError(t, err)
	require.NotNil(t, moved)
	back, err := e.PreviousPage()
	require.NoError(t, err)
	require.NotNil(t, back)
	assert.Equal(t, before, *back)
}

func TestSwitchToPageOutOfRange(t *testing.T) {
	e := newEngine(t)
	_, err := e.SwitchToPage(5)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPageNotFound))
	assert.Equal(t, 0, e.Context().PageIndex)
}

func TestSubscribersGetPostSwitchSnapshot(t *testing.T) {
	e := newEngine(t)

	var got []types.NavigationContext
	e.Subscribe(func(ctx types.NavigationContext) {
		got = append(got, ctx)
	})

	_, err := e.SwitchToPage(1)
	require.NoError(t, err)
	_, err = e.SwitchToProfile(1)
	require.NoError(t, err)
	_, err = e.NextPage() // boundary no-op, must not notify
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "Page2", got[0].PageName)
	assert.Equal(t, "Profile2", got[1].ProfileName)
}

func TestProfilesAndPagesListing(t *testing.T) {
	e := newEngine(t)

	profiles := e.Profiles()
	require.Len(t, profiles, 2)
	assert.Equal(t, "Profile1", profiles[0].Name)
	assert.Equal(t, 2, profiles[0].PageCount)
	assert.Equal(t, "Ctrl+2", profiles[1].Hotkey)

	pages := e.Pages()
	require.Len(t, pages, 2)
	assert.Equal(t, "Page1", pages[0].Name)
	assert.Equal(t, 3, pages[0].Rows)
	assert.Equal(t, 4, pages[0].Cols)

	cur := e.CurrentPage()
	assert.Equal(t, 0, cur.Index)
}

func TestRestoreClampsStaleIndices(t *testing.T) {
	e := newEngine(t)

	e.Restore(state.Pointer{
		ProfileIndex:    9,
		PageIndex:       9,
		LastActivePages: map[string]int{"Profile1": 1, "Gone": 3},
	})

	ctx := e.Context()
	assert.Equal(t, 0, ctx.ProfileIndex)
	assert.Equal(t, 0, ctx.PageIndex)
}

func TestRestoreValidPointer(t *testing.T) {
	e := newEngine(t)
	e.Restore(state.Pointer{ProfileIndex: 1, PageIndex: 0})
	assert.Equal(t, "Profile2", e.Context().ProfileName)
}

func TestReplaceClampsPosition(t *testing.T) {
	e := newEngine(t)
	_, err := e.SwitchToPage(1)
	require.NoError(t, err)

	// New tree where Profile1 only has one page.
	cfg := testutil.TestConfig()
	cfg.Profiles[0].Pages = cfg.Profiles[0].Pages[:1]
	e.Replace(cfg)

	ctx := e.Context()
	assert.Equal(t, 0, ctx.PageIndex)
	assert.Equal(t, 1, ctx.TotalPages)
}
