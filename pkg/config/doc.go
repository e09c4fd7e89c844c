// Package config owns the two configuration layers of qdeck.
//
// The document layer is the whole-tree YAML config (profiles, pages,
// buttons) persisted by Store: load once at startup, save the complete
// tree atomically, never a partial update.
//
// The settings layer is runtime tuning (cache quota, cleanup interval,
// terminal defaults) merged koanf-style from embedded defaults, an
// optional settings.toml, and QDECK_ environment variables.
package config
