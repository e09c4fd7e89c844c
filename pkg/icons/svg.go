package icons

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/qdeck/qdeck/pkg/errors"
)

// ProbeSVG reads the intrinsic size of an SVG document from its width and
// height attributes, falling back to the viewBox. Renderers use the size
// to pick a raster resolution without rendering first.
func ProbeSVG(data []byte) (width, height float64, err error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return 0, 0, errors.Wrap(err, errors.ErrIconResolve, "failed to parse svg")
	}
	root := doc.SelectElement("svg")
	if root == nil {
		return 0, 0, errors.New(errors.ErrIconResolve, "document has no svg root element")
	}

	width = svgLength(root.SelectAttrValue("width", ""))
	height = svgLength(root.SelectAttrValue("height", ""))
	if width > 0 && height > 0 {
		return width, height, nil
	}

	if vb := root.SelectAttrValue("viewBox", ""); vb != "" {
		parts := strings.Fields(strings.ReplaceAll(vb, ",", " "))
		if len(parts) == 4 {
			w := svgLength(parts[2])
			h := svgLength(parts[3])
			if w > 0 && h > 0 {
				return w, h, nil
			}
		}
	}
	return 0, 0, errors.New(errors.ErrIconResolve, "svg has no usable size")
}

func svgLength(s string) float64 {
	s = strings.TrimSuffix(strings.TrimSpace(s), "px")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
