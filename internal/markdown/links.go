package markdown

import (
	"net/url"
	"path"
	"strings"
)

// LinkKind classifies a link destination.
type LinkKind string

const (
	// LinkKindExternal is a URL with a scheme or a protocol-relative URL.
	LinkKindExternal LinkKind = "external"
	// LinkKindAnchor points into the current document.
	LinkKindAnchor LinkKind = "anchor"
	// LinkKindDocument points at another Markdown source, optionally with an anchor.
	LinkKindDocument LinkKind = "document"
	// LinkKindFile is any other relative path; it stays a plain link.
	LinkKindFile LinkKind = "file"
)

// Link is a classified destination.
type Link struct {
	Kind LinkKind
	// Target is the refuri or refid to store on the reference node: the URL
	// for external and file links, the anchor for anchor links and a
	// qualified label ("%guide/install#setup") for document links.
	Target string
}

// markdownExts are the source extensions a document link may carry.
var markdownExts = []string{".md", ".markdown"}

// ClassifyLink resolves dest as written in docname.
func ClassifyLink(docname, dest string) Link {
	if dest == "" {
		return Link{Kind: LinkKindFile}
	}
	if strings.HasPrefix(dest, "#") {
		return Link{Kind: LinkKindAnchor, Target: dest[1:]}
	}
	if strings.HasPrefix(dest, "//") {
		return Link{Kind: LinkKindExternal, Target: dest}
	}
	if u, err := url.Parse(dest); err == nil && u.Scheme != "" {
		return Link{Kind: LinkKindExternal, Target: dest}
	}

	file, anchor, _ := strings.Cut(dest, "#")
	for _, ext := range markdownExts {
		if !strings.HasSuffix(strings.ToLower(file), ext) {
			continue
		}
		target := strings.TrimSuffix(file[:len(file)-len(ext)], "/")
		if !strings.HasPrefix(target, "/") {
			target = path.Join(path.Dir(docname), target)
		}
		target = strings.TrimPrefix(path.Clean(target), "/")
		label := "%" + target
		if anchor != "" {
			label += "#" + anchor
		}
		return Link{Kind: LinkKindDocument, Target: label}
	}
	return Link{Kind: LinkKindFile, Target: dest}
}
