// Package icons resolves button icon references into displayable payloads
// and keeps resolved payloads in a byte-quota LRU cache.
package icons

import (
	"encoding/base64"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/rs/zerolog"

	"github.com/qdeck/qdeck/pkg/errors"
	"github.com/qdeck/qdeck/pkg/logging"
	"github.com/qdeck/qdeck/pkg/types"
)

// Source kinds an icon reference can classify into.
const (
	SourceEmoji     = "emoji"
	SourceURL       = "url"
	SourceDataURL   = "data-url"
	SourceFile      = "file"
	SourceExtracted = "extracted"
)

// Icon is one resolved icon. For SourceEmoji and SourceURL the payload
// stays in Ref and Data is nil; the renderer handles those natively.
type Icon struct {
	Kind string
	MIME string
	Ref  string
	Data []byte
}

// Extractor pulls an icon out of an application binary or bundle. It is a
// platform seam; hosts plug in their native implementation.
type Extractor interface {
	Extract(path string) ([]byte, string, error)
}

// Service classifies, resolves and caches icon references.
type Service struct {
	fs        types.FS
	cache     *Cache
	extractor Extractor // nil when the host provides none
	logger    zerolog.Logger
}

func NewService(fs types.FS, cache *Cache, extractor Extractor) *Service {
	return &Service{
		fs:        fs,
		cache:     cache,
		extractor: extractor,
		logger:    logging.GetLogger("icons"),
	}
}

// Classify determines how an icon reference should be resolved.
func Classify(icon string) string {
	switch {
	case strings.HasPrefix(icon, "data:"):
		return SourceDataURL
	case strings.HasPrefix(icon, "http://"), strings.HasPrefix(icon, "https://"):
		return SourceURL
	case isEmoji(icon):
		return SourceEmoji
	case isIconFile(icon):
		return SourceFile
	default:
		return SourceExtracted
	}
}

// isEmoji reports whether s is a short sequence of non-ASCII symbol runes,
// such as a single emoji with optional modifiers.
func isEmoji(s string) bool {
	if s == "" {
		return false
	}
	runes := []rune(s)
	if len(runes) > 8 {
		return false
	}
	for _, r := range runes {
		if r <= unicode.MaxASCII {
			return false
		}
	}
	return true
}

// isIconFile reports whether s looks like a path to an image file.
func isIconFile(s string) bool {
	switch strings.ToLower(filepath.Ext(s)) {
	case ".png", ".jpg", ".jpeg", ".gif", ".webp", ".svg", ".ico", ".bmp":
		return true
	}
	return false
}

// Resolve turns an icon reference into a displayable Icon, serving repeat
// lookups of file and data payloads from the cache.
func (s *Service) Resolve(icon string) (Icon, error) {
	if icon == "" {
		return Icon{}, errors.New(errors.ErrIconResolve, "empty icon reference")
	}

	kind := Classify(icon)
	switch kind {
	case SourceEmoji, SourceURL:
		return Icon{Kind: kind, Ref: icon}, nil
	case SourceDataURL:
		return s.resolveDataURL(icon)
	case SourceFile:
		return s.resolveFile(icon)
	default:
		return s.resolveExtracted(icon)
	}
}

func (s *Service) resolveDataURL(icon string) (Icon, error) {
	if data, ok := s.cache.Get(icon); ok {
		return Icon{Kind: SourceDataURL, MIME: dataURLMime(icon), Data: data}, nil
	}

	comma := strings.IndexByte(icon, ',')
	if comma < 0 {
		return Icon{}, errors.New(errors.ErrIconResolve, "malformed data url")
	}
	header, payload := icon[len("data:"):comma], icon[comma+1:]

	var data []byte
	var err error
	if strings.HasSuffix(header, ";base64") {
		data, err = base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return Icon{}, errors.Wrap(err, errors.ErrIconResolve, "failed to decode data url payload")
		}
	} else {
		data = []byte(payload)
	}

	s.cache.Put(icon, data)
	return Icon{Kind: SourceDataURL, MIME: dataURLMime(icon), Data: data}, nil
}

func dataURLMime(icon string) string {
	comma := strings.IndexByte(icon, ',')
	if comma < 0 {
		return ""
	}
	header := icon[len("data:"):comma]
	if semi := strings.IndexByte(header, ';'); semi >= 0 {
		header = header[:semi]
	}
	return header
}

func (s *Service) resolveFile(path string) (Icon, error) {
	mime := mimeForExt(filepath.Ext(path))
	if data, ok := s.cache.Get(path); ok {
		return Icon{Kind: SourceFile, MIME: mime, Ref: path, Data: data}, nil
	}

	data, err := s.fs.ReadFile(path)
	if err != nil {
		return Icon{}, errors.Wrapf(err, errors.ErrIconResolve, "failed to read icon %s", path)
	}
	if mime == "image/svg+xml" {
		if _, _, err := ProbeSVG(data); err != nil {
			s.logger.Warn().Str("path", path).Err(err).Msg("SVG icon has no usable size")
		}
	}

	s.cache.Put(path, data)
	return Icon{Kind: SourceFile, MIME: mime, Ref: path, Data: data}, nil
}

func (s *Service) resolveExtracted(path string) (Icon, error) {
	if s.extractor == nil {
		return Icon{}, errors.Newf(errors.ErrIconResolve, "no icon extractor available for %s", path)
	}

	key := "extracted:" + path
	if data, ok := s.cache.Get(key); ok {
		return Icon{Kind: SourceExtracted, Ref: path, MIME: "image/png", Data: data}, nil
	}

	data, mime, err := s.extractor.Extract(path)
	if err != nil {
		return Icon{}, errors.Wrapf(err, errors.ErrIconResolve, "failed to extract icon from %s", path)
	}
	s.cache.Put(key, data)
	return Icon{Kind: SourceExtracted, Ref: path, MIME: mime, Data: data}, nil
}

func mimeForExt(ext string) string {
	switch strings.ToLower(ext) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".svg":
		return "image/svg+xml"
	case ".ico":
		return "image/x-icon"
	case ".bmp":
		return "image/bmp"
	default:
		return "application/octet-stream"
	}
}
