package types

// ConfigVersion is the version tag written to new configuration trees.
const ConfigVersion = "1.0"

// Config is the root of the persisted configuration tree. It is loaded
// once at startup and only ever replaced wholesale after a successful
// persistence write.
type Config struct {
	Version  string     `yaml:"version"`
	UI       UISettings `yaml:"ui"`
	Profiles []Profile  `yaml:"profiles"`
}

// UISettings holds presentation hints consumed by external renderers.
// The runtime stores and round-trips them but never interprets them.
type UISettings struct {
	Window WindowSettings `yaml:"window"`
}

// WindowSettings mirrors the window block of the config document.
type WindowSettings struct {
	Placement  string  `yaml:"placement"`
	WidthPx    int     `yaml:"width_px"`
	HeightPx   int     `yaml:"height_px"`
	CellSizePx int     `yaml:"cell_size_px"`
	GapPx      int     `yaml:"gap_px"`
	Opacity    float64 `yaml:"opacity"`
	Theme      string  `yaml:"theme"`
}

// Profile is a named collection of pages with an optional activation hotkey.
// Names are unique within a Config and used for lookup-by-name.
type Profile struct {
	Name   string `yaml:"name"`
	Hotkey string `yaml:"hotkey,omitempty"`
	Pages  []Page `yaml:"pages"`
}

// Page is a fixed rows x cols grid of button slots.
type Page struct {
	Name    string   `yaml:"name"`
	Rows    int      `yaml:"rows"`
	Cols    int      `yaml:"cols"`
	Buttons []Button `yaml:"buttons"`
}

// Position addresses one grid cell. Rows and columns are 1-indexed.
type Position struct {
	Row int `yaml:"row"`
	Col int `yaml:"col"`
}

// Button binds a configured action to one grid position.
type Button struct {
	Position   Position               `yaml:"position"`
	ActionType string                 `yaml:"action_type"`
	Label      string                 `yaml:"label"`
	Icon       string                 `yaml:"icon,omitempty"`
	Config     map[string]interface{} `yaml:"config"`
	Style      *ButtonStyle           `yaml:"style,omitempty"`
}

// ButtonStyle carries optional presentation hints for one button.
type ButtonStyle struct {
	BackgroundColor string `yaml:"background_color,omitempty"`
	TextColor       string `yaml:"text_color,omitempty"`
	FontSize        int    `yaml:"font_size,omitempty"`
	FontFamily      string `yaml:"font_family,omitempty"`
}

// InBounds reports whether pos addresses a valid cell of the page.
func (p *Page) InBounds(pos Position) bool {
	return pos.Row >= 1 && pos.Row <= p.Rows && pos.Col >= 1 && pos.Col <= p.Cols
}

// Capacity returns the number of cells on the page.
func (p *Page) Capacity() int {
	return p.Rows * p.Cols
}

// ButtonAt returns the button occupying pos, or nil if the slot is empty.
func (p *Page) ButtonAt(pos Position) *Button {
	for i := range p.Buttons {
		if p.Buttons[i].Position == pos {
			return &p.Buttons[i]
		}
	}
	return nil
}

// Clone returns a deep copy of the page.
func (p *Page) Clone() Page {
	out := Page{Name: p.Name, Rows: p.Rows, Cols: p.Cols}
	if p.Buttons != nil {
		out.Buttons = make([]Button, len(p.Buttons))
		for i := range p.Buttons {
			out.Buttons[i] = p.Buttons[i].Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the button.
func (b *Button) Clone() Button {
	out := *b
	if b.Config != nil {
		out.Config = make(map[string]interface{}, len(b.Config))
		for k, v := range b.Config {
			out.Config[k] = v
		}
	}
	if b.Style != nil {
		style := *b.Style
		out.Style = &style
	}
	return out
}

// Clone returns a deep copy of the profile.
func (pr *Profile) Clone() Profile {
	out := Profile{Name: pr.Name, Hotkey: pr.Hotkey}
	if pr.Pages != nil {
		out.Pages = make([]Page, len(pr.Pages))
		for i := range pr.Pages {
			out.Pages[i] = pr.Pages[i].Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the whole tree. Grid mutations operate on a
// clone and swap it in only after the clone has been persisted.
func (c *Config) Clone() *Config {
	out := &Config{Version: c.Version, UI: c.UI}
	if c.Profiles != nil {
		out.Profiles = make([]Profile, len(c.Profiles))
		for i := range c.Profiles {
			out.Profiles[i] = c.Profiles[i].Clone()
		}
	}
	return out
}

// ProfileIndexByName returns the index of the named profile, or -1.
func (c *Config) ProfileIndexByName(name string) int {
	for i := range c.Profiles {
		if c.Profiles[i].Name == name {
			return i
		}
	}
	return -1
}
