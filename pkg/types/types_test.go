package types_test

import (
	"testing"

	"github.com/qdeck/qdeck/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageInBounds(t *testing.T) {
	page := types.Page{Name: "Main", Rows: 3, Cols: 6}

	tests := []struct {
		name string
		pos  types.Position
		want bool
	}{
		{"top_left", types.Position{Row: 1, Col: 1}, true},
		{"bottom_right", types.Position{Row: 3, Col: 6}, true},
		{"row_zero", types.Position{Row: 0, Col: 1}, false},
		{"col_zero", types.Position{Row: 1, Col: 0}, false},
		{"row_past_end", types.Position{Row: 4, Col: 1}, false},
		{"col_past_end", types.Position{Row: 1, Col: 7}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, page.InBounds(tt.pos))
		})
	}
}

func TestPageButtonAt(t *testing.T) {
	page := types.Page{
		Rows: 2, Cols: 2,
		Buttons: []types.Button{
			{Position: types.Position{Row: 1, Col: 2}, Label: "a"},
		},
	}

	got := page.ButtonAt(types.Position{Row: 1, Col: 2})
	require.NotNil(t, got)
	assert.Equal(t, "a", got.Label)

	assert.Nil(t, page.ButtonAt(types.Position{Row: 2, Col: 2}))
}

func TestConfigClone(t *testing.T) {
	cfg := &types.Config{
		Version: types.ConfigVersion,
		Profiles: []types.Profile{
			{
				Name: "Default",
				Pages: []types.Page{
					{
						Name: "Main", Rows: 3, Cols: 6,
						Buttons: []types.Button{
							{
								Position:   types.Position{Row: 1, Col: 1},
								ActionType: types.ActionLaunchApp,
								Label:      "editor",
								Config:     map[string]interface{}{"path": "/usr/bin/vi"},
								Style:      &types.ButtonStyle{BackgroundColor: "#4CAF50"},
							},
						},
					},
				},
			},
		},
	}

	clone := cfg.Clone()
	require.Len(t, clone.Profiles, 1)

	// Mutating the clone must not leak into the original.
	clone.Profiles[0].Pages[0].Buttons[0].Config["path"] = "/usr/bin/emacs"
	clone.Profiles[0].Pages[0].Buttons[0].Style.BackgroundColor = "#000000"
	clone.Profiles[0].Pages[0].Buttons[0].Label = "other"

	orig := cfg.Profiles[0].Pages[0].Buttons[0]
	assert.Equal(t, "/usr/bin/vi", orig.Config["path"])
	assert.Equal(t, "#4CAF50", orig.Style.BackgroundColor)
	assert.Equal(t, "editor", orig.Label)
}

func TestProfileIndexByName(t *testing.T) {
	cfg := &types.Config{Profiles: []types.Profile{
		{Name: "Work"},
		{Name: "Games"},
	}}

	assert.Equal(t, 1, cfg.ProfileIndexByName("Games"))
	assert.Equal(t, -1, cfg.ProfileIndexByName("Missing"))
}

func TestActionResults(t *testing.T) {
	ok := types.OKResult("started")
	assert.True(t, ok.Success)
	assert.Equal(t, "started", ok.Message)

	fail := types.FailResult("no handler registered")
	assert.False(t, fail.Success)
	assert.NotEmpty(t, fail.Message)
}
