package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/meur/pinboard/internal/masonry"
	"github.com/meur/pinboard/internal/models"
	"github.com/meur/pinboard/internal/seed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pinIDs(pins []models.Pin) []string {
	ids := make([]string, len(pins))
	for i, p := range pins {
		ids[i] = p.ID
	}
	return ids
}

func columnIDs(cols [][]models.Pin) [][]string {
	out := make([][]string, len(cols))
	for i, col := range cols {
		out[i] = pinIDs(col)
	}
	return out
}

func TestFeedLayout_AllBreakpoints(t *testing.T) {
	s, store := newTestServer(t)
	_, err := store.BulkCreatePins(context.Background(), "u1", seed.MockPins())
	require.NoError(t, err)

	feed := decode[[]models.Pin](t, do(t, s, http.MethodGet, "/api/pins", "", nil))

	rr := do(t, s, http.MethodGet, "/api/feed/layout", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	layout := decode[models.FeedLayout](t, rr)

	assert.Equal(t, 15, layout.TotalCount)
	require.Len(t, layout.Grids, 4)

	want := []int{2, 3, 4, 6}
	for i, grid := range layout.Grids {
		require.Len(t, grid.Columns, want[i], grid.Breakpoint.Name)
		assert.Equal(t, want[i], grid.Breakpoint.Columns)

		// the grid reads back as the feed order
		got := pinIDs(masonry.Flatten(grid.Columns))
		if diff := cmp.Diff(pinIDs(feed), got); diff != "" {
			t.Errorf("%s: interleaved read mismatch (-want +got):\n%s", grid.Breakpoint.Name, diff)
		}

		if diff := cmp.Diff(columnIDs(masonry.Distribute(feed, want[i])), columnIDs(grid.Columns)); diff != "" {
			t.Errorf("%s: columns mismatch (-want +got):\n%s", grid.Breakpoint.Name, diff)
		}
	}
}

func TestFeedLayout_Columns(t *testing.T) {
	s, _ := newTestServer(t)
	for _, title := range []string{"a", "b", "c"} {
		createPin(t, s, "u1", title)
	}

	rr := do(t, s, http.MethodGet, "/api/feed/layout?columns=4", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	layout := decode[models.FeedLayout](t, rr)
	require.Len(t, layout.Grids, 1)

	cols := layout.Grids[0].Columns
	require.Len(t, cols, 4)
	assert.Len(t, cols[0], 1)
	assert.Len(t, cols[1], 1)
	assert.Len(t, cols[2], 1)
	assert.NotNil(t, cols[3])
	assert.Empty(t, cols[3])
}

func TestFeedLayout_Width(t *testing.T) {
	s, _ := newTestServer(t)

	tests := map[string]string{
		"300":  "sm",
		"800":  "md",
		"1100": "lg",
		"1920": "2xl",
	}
	for width, want := range tests {
		rr := do(t, s, http.MethodGet, "/api/feed/layout?width="+width, "", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		layout := decode[models.FeedLayout](t, rr)
		require.Len(t, layout.Grids, 1)
		assert.Equal(t, want, layout.Grids[0].Breakpoint.Name, "width=%s", width)
		assert.Equal(t, 0, layout.TotalCount)
	}
}

func TestFeedLayout_BadParams(t *testing.T) {
	s, _ := newTestServer(t)

	for _, q := range []string{"columns=0", "columns=13", "columns=two", "width=-5", "width=wide"} {
		rr := do(t, s, http.MethodGet, "/api/feed/layout?"+q, "", nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code, q)
		assert.NotEmpty(t, errorMessage(t, rr), q)
	}
}

func TestFeedLayout_CustomBreakpoints(t *testing.T) {
	_, store := newTestServer(t)
	s := New(store, Options{
		Breakpoints: []masonry.Breakpoint{{Name: "one", Columns: 1}},
		MaxColumns:  3,
	})

	rr := do(t, s, http.MethodGet, "/api/feed/layout", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	layout := decode[models.FeedLayout](t, rr)
	require.Len(t, layout.Grids, 1)
	assert.Equal(t, "one", layout.Grids[0].Breakpoint.Name)

	assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodGet, "/api/feed/layout?columns=4", "", nil).Code)
}

func TestCollectionLayout(t *testing.T) {
	s, _ := newTestServer(t)
	c := createCollection(t, s, "u1", "Board", false)
	for _, title := range []string{"a", "b", "c", "d", "e"} {
		pin := createPin(t, s, "u1", title)
		rr := do(t, s, http.MethodPost, "/api/collections/"+c.ID+"/pins", "u1", models.AddPinRequest{PinID: pin.ID})
		require.Equal(t, http.StatusOK, rr.Code)
	}
	createPin(t, s, "u1", "not saved")

	pins := decode[[]models.Pin](t, do(t, s, http.MethodGet, "/api/collections/"+c.ID+"/pins", "", nil))

	rr := do(t, s, http.MethodGet, "/api/collections/"+c.ID+"/layout?columns=2", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	layout := decode[models.FeedLayout](t, rr)
	assert.Equal(t, 5, layout.TotalCount)
	require.Len(t, layout.Grids, 1)

	want := [][]string{
		{pins[0].ID, pins[2].ID, pins[4].ID},
		{pins[1].ID, pins[3].ID},
	}
	if diff := cmp.Diff(want, columnIDs(layout.Grids[0].Columns)); diff != "" {
		t.Errorf("columns mismatch (-want +got):\n%s", diff)
	}
}
