package config

import "github.com/qdeck/qdeck/pkg/types"

// Default returns the tree written on first run: one profile with one
// empty 3x6 page, matching the starter layout users see before any
// buttons exist.
func Default() *types.Config {
	return &types.Config{
		Version: types.ConfigVersion,
		UI: types.UISettings{
			Window: types.WindowSettings{
				Placement:  "dropdown-top",
				WidthPx:    1000,
				HeightPx:   600,
				CellSizePx: 96,
				GapPx:      8,
				Opacity:    0.92,
				Theme:      "dark",
			},
		},
		Profiles: []types.Profile{
			{
				Name: "Default",
				Pages: []types.Page{
					{Name: "Main", Rows: 3, Cols: 6, Buttons: []types.Button{}},
				},
			},
		},
	}
}
