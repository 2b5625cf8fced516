// Package translator turns a resolved document tree into Typst markup.
//
// The translator walks the tree by recursive descent. Handlers that produce a
// Typst construct push an IR element, translate their children into it and pop
// it again, appending its rendering to the enclosing element. The resulting
// text is the document body; label aliases, the title and the files the body
// refers to are returned alongside it for the assembler.
package translator

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/typstbuilder/internal/doctree"
	"git.home.luguber.info/inful/typstbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/typstbuilder/internal/labels"
	"git.home.luguber.info/inful/typstbuilder/internal/logfields"
	"git.home.luguber.info/inful/typstbuilder/internal/metrics"
	"git.home.luguber.info/inful/typstbuilder/internal/typst"
	"git.home.luguber.info/inful/typstbuilder/internal/util/sets"
)

var (
	// ErrUnbalancedStack reports that elements or open documents were left
	// over after the walk.
	ErrUnbalancedStack = errors.TranslateError("builder stack unbalanced").Build()
	// ErrStackMismatch reports that a handler popped an element it did not push.
	ErrStackMismatch = errors.TranslateError("builder stack mismatch").Build()
	// ErrTranslatorReused is returned by a second call to Translate.
	ErrTranslatorReused = errors.InternalError("translator already used").Build()
)

// builderTags are always set for only directives.
var builderTags = []string{"typst", "format_typst", "builder_typst"}

// Options configures a translation.
type Options struct {
	// StartDoc names the root document; it defaults to the document's
	// docname attribute.
	StartDoc string
	// Images maps image URIs as they appear in the tree to output paths.
	Images map[string]string
	// Tags are additional tags for only expressions.
	Tags     []string
	Logger   *slog.Logger
	Recorder metrics.Recorder
}

// Download is a file referenced by a download role.
type Download struct {
	// Source is the reference target as written in the source document.
	Source string
	// Filename is the unique name assigned by the host; the file is attached
	// as downloads/<Filename>.
	Filename string
}

// Result is the outcome of a translation.
type Result struct {
	Body  string
	Title string
	// LabelAliases maps every qualified id to the label that is attached.
	LabelAliases map[string]string
	// References lists the keys of internal links in first-use order.
	References []string
	// Footnotes lists the defined footnote keys.
	Footnotes []string
	// Images lists the image URIs resolved through Options.Images.
	Images      []string
	Downloads   []Download
	Diagnostics []Diagnostic
	NodeCounts  map[doctree.Kind]int
}

// Unresolved returns the internal link keys that have no label.
func (r *Result) Unresolved() []string {
	var out []string
	for _, key := range r.References {
		if _, ok := r.LabelAliases[key]; !ok {
			out = append(out, key)
		}
	}
	return out
}

// walkContext carries what a handler needs to know about its ancestors.
type walkContext struct {
	parent doctree.Kind
	// imageWidth is the width of an enclosing figure.
	imageWidth string
}

func (c walkContext) enter(n *doctree.Node) walkContext {
	c.parent = n.Kind
	return c
}

// Translator translates one document tree. It is single use.
type Translator struct {
	opts     Options
	logger   *slog.Logger
	recorder metrics.Recorder
	tags     sets.Set[string]

	stack        []typst.Element
	labels       *labels.Registry
	pending      []string
	sectionDepth int
	titlePending bool
	title        string

	attached  sets.Ordered[string]
	images    sets.Ordered[string]
	refs      sets.Ordered[string]
	footnotes sets.Ordered[string]
	unknown   sets.Ordered[string]
	downloads []Download
	diags     []Diagnostic
	counts    map[doctree.Kind]int

	used bool
	err  error
}

// New returns a translator for opts.
func New(opts Options) *Translator {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	recorder := opts.Recorder
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	tags := sets.New(builderTags...)
	for _, tag := range opts.Tags {
		tags.Add(tag)
	}
	return &Translator{
		opts:         opts,
		logger:       logger,
		recorder:     recorder,
		tags:         tags,
		labels:       labels.NewRegistry(),
		titlePending: true,
		counts:       make(map[doctree.Kind]int),
	}
}

// Translate translates doc, which must be a document node.
func (t *Translator) Translate(doc *doctree.Node) (*Result, error) {
	if t.used {
		return nil, ErrTranslatorReused
	}
	t.used = true
	if doc == nil || doc.Kind != doctree.KindDocument {
		return nil, errors.SourceError("translation root is not a document").Build()
	}

	root := &typst.Fragment{}
	t.stack = []typst.Element{root}
	t.visit(doc, walkContext{})
	if t.err != nil {
		return nil, t.err
	}
	if len(t.stack) != 1 || t.labels.OpenFiles() != 0 {
		return nil, ErrUnbalancedStack.
			WithContext("elements", len(t.stack)-1).
			WithContext("open_documents", t.labels.OpenFiles())
	}
	if len(t.pending) > 0 {
		t.diagnose(slog.LevelDebug, CodePendingLabels, doctree.KindDocument,
			"ids after the last block element were dropped", t.pending[0])
		t.pending = nil
	}
	for _, tag := range t.unknown.Items() {
		t.diagnose(slog.LevelDebug, CodeUnsupportedNode, doctree.KindUnknown,
			"unsupported element rendered as its children", tag)
	}
	aliases := t.labels.Aliases()
	for _, key := range t.refs.Items() {
		if _, ok := aliases[key]; !ok {
			t.diagnose(slog.LevelWarn, CodeUnresolvedReference, doctree.KindReference,
				"internal reference target not found", key)
		}
	}
	for kind, n := range t.counts {
		t.recorder.IncNodes(kind.String(), n)
	}

	return &Result{
		Body:         typst.Render(root),
		Title:        t.title,
		LabelAliases: aliases,
		References:   t.refs.Items(),
		Footnotes:    t.footnotes.Items(),
		Images:       t.images.Items(),
		Downloads:    t.downloads,
		Diagnostics:  t.diags,
		NodeCounts:   t.counts,
	}, nil
}

func (t *Translator) fail(err error) {
	if t.err == nil {
		t.err = err
	}
}

func (t *Translator) top() typst.Element {
	return t.stack[len(t.stack)-1]
}

// emit appends rendered markup to the element receiving content.
func (t *Translator) emit(s string) {
	t.top().Append(s)
}

// emitText appends a string literal in markup mode.
func (t *Translator) emitText(s string) {
	if s != "" {
		t.emit("#" + typst.EscapeString(s))
	}
}

func (t *Translator) push(e typst.Element) {
	t.stack = append(t.stack, e)
}

// pop removes e, which must be the element on top of the stack.
func (t *Translator) pop(e typst.Element) bool {
	n := len(t.stack)
	if n <= 1 || t.stack[n-1] != e {
		t.fail(ErrStackMismatch.WithContext("depth", n-1))
		return false
	}
	t.stack = t.stack[:n-1]
	return true
}

// capture translates into e with fill and returns e's rendering without
// appending it anywhere.
func (t *Translator) capture(e typst.Element, fill func()) string {
	t.push(e)
	fill()
	if t.err != nil || !t.pop(e) {
		return ""
	}
	return typst.Render(e)
}

// wrap translates n's children into e and appends e to the enclosing element.
func (t *Translator) wrap(n *doctree.Node, ctx walkContext, e typst.Element) {
	out := t.capture(e, func() { t.children(n, ctx) })
	if t.err == nil {
		t.emit(out)
	}
}

func (t *Translator) children(n *doctree.Node, ctx walkContext) {
	inner := ctx.enter(n)
	for _, c := range n.Children {
		if t.err != nil {
			return
		}
		t.visit(c, inner)
	}
}

// pend queues ids for the next block element, qualified by the document
// that is open now.
func (t *Translator) pend(ids ...string) {
	for _, id := range ids {
		t.pending = append(t.pending, t.labels.Ref(id))
	}
}

// takeLabels registers the pending ids together with ids and returns the
// labels to attach.
func (t *Translator) takeLabels(ids ...string) []string {
	t.pend(ids...)
	if len(t.pending) == 0 {
		return nil
	}
	out := t.labels.Register(t.pending)
	t.pending = t.pending[:0]
	return out
}

// blockCall returns a block markup call that carries the pending labels and
// those of n.
func (t *Translator) blockCall(name string, n *doctree.Node) *typst.Call {
	c := typst.NewCall(name, typst.BlockMarkup)
	c.Labels = t.takeLabels(n.IDs()...)
	return c
}

func inlineCall(name string) *typst.Call {
	return typst.NewCall(name, typst.InlineMarkup)
}

type namedSetter interface {
	Set(name, value string) *typst.Call
}

type positionalAdder interface {
	Arg(value string) *typst.Call
}

// setOnTop assigns a named argument of the element receiving content.
func (t *Translator) setOnTop(name, value string) {
	if s, ok := t.top().(namedSetter); ok {
		s.Set(name, value)
		return
	}
	t.emit(value)
}

// addToTop appends a positional argument to the element receiving content.
func (t *Translator) addToTop(value string) {
	if a, ok := t.top().(positionalAdder); ok {
		a.Arg(value)
		return
	}
	t.emit(value)
}

func (t *Translator) diagnose(level slog.Level, code string, kind doctree.Kind, msg, subject string) {
	d := Diagnostic{
		Level:    level,
		Code:     code,
		Kind:     kind,
		Document: t.labels.CurrentFile(),
		Message:  msg,
		Subject:  subject,
	}
	t.diags = append(t.diags, d)
	t.recorder.IncDiagnostic(code)
	t.logger.LogAttrs(context.Background(), level, msg,
		logfields.Code(code),
		logfields.NodeKind(kind.String()),
		logfields.Document(d.Document),
		slog.String("subject", subject),
	)
}
