package assemble

import (
	"path"
	"strconv"
	"strings"
)

// ImageNamer assigns image URIs unique output paths below images/. The name
// keeps the base name of the URI; clashing names get a numeric suffix. One
// namer serves all documents of a build so equal URIs share a file.
type ImageNamer struct {
	byURI map[string]string
	used  map[string]bool
}

// NewImageNamer returns an empty namer.
func NewImageNamer() *ImageNamer {
	return &ImageNamer{byURI: make(map[string]string), used: make(map[string]bool)}
}

// Name returns the output path for uri.
func (n *ImageNamer) Name(uri string) string {
	if p, ok := n.byURI[uri]; ok {
		return p
	}
	base := path.Base(strings.ReplaceAll(uri, `\`, "/"))
	if base == "." || base == "/" {
		base = "image"
	}
	ext := path.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	candidate := path.Join("images", base)
	for i := 1; n.used[candidate]; i++ {
		candidate = path.Join("images", stem+"-"+strconv.Itoa(i)+ext)
	}
	n.used[candidate] = true
	n.byURI[uri] = candidate
	return candidate
}
