package types

// ProfileInfo is a read-only summary of one profile.
type ProfileInfo struct {
	Name             string `yaml:"name"`
	Index            int    `yaml:"index"`
	PageCount        int    `yaml:"page_count"`
	CurrentPageIndex int    `yaml:"current_page_index"`
	Hotkey           string `yaml:"hotkey,omitempty"`
}

// PageInfo is a read-only summary of one page.
type PageInfo struct {
	Name        string `yaml:"name"`
	Index       int    `yaml:"index"`
	Rows        int    `yaml:"rows"`
	Cols        int    `yaml:"cols"`
	ButtonCount int    `yaml:"button_count"`
}

// NavigationContext is the aggregated snapshot emitted after every
// successful switch. It is recomputed on demand and always describes the
// post-switch state, so subscribers never need prior state to react.
type NavigationContext struct {
	ProfileName     string `yaml:"profile_name"`
	ProfileIndex    int    `yaml:"profile_index"`
	PageName        string `yaml:"page_name"`
	PageIndex       int    `yaml:"page_index"`
	TotalProfiles   int    `yaml:"total_profiles"`
	TotalPages      int    `yaml:"total_pages"`
	HasPreviousPage bool   `yaml:"has_previous_page"`
	HasNextPage     bool   `yaml:"has_next_page"`
}
