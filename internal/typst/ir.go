package typst

// Element is an IR node under construction. Children render themselves and
// append their text to the element that currently receives content.
type Element interface {
	// Append adds a rendered child fragment to the element's body.
	Append(fragment string)
	element()
}

// Mode selects how a Call is written: in markup mode calls are prefixed with
// '#', block calls end the line.
type Mode int

const (
	InlineMarkup Mode = iota
	BlockMarkup
	InlineCode
	BlockCode
)

func (m Mode) markup() bool { return m == InlineMarkup || m == BlockMarkup }
func (m Mode) block() bool  { return m == BlockMarkup || m == BlockCode }

// Fragment is an ordered list of raw pieces concatenated verbatim.
type Fragment struct {
	Parts []string
}

func (f *Fragment) Append(s string) { f.Parts = append(f.Parts, s) }
func (*Fragment) element()          {}

// NamedArg is a keyword argument. A nil Value is Typst's none and is omitted
// from the output.
type NamedArg struct {
	Name  string
	Value *string
}

// Call is a Typst function call.
type Call struct {
	Name       string
	Mode       Mode
	Named      []NamedArg
	Positional []string
	Body       []string
	Labels     []string
	// ForceBody emits a content block even when Body is empty.
	ForceBody bool
}

// NewCall returns a call of name in the given mode.
func NewCall(name string, mode Mode) *Call {
	return &Call{Name: name, Mode: mode}
}

// Set assigns the named argument to a Typst code value. Assigning an existing
// name replaces its value and keeps its position.
func (c *Call) Set(name, value string) *Call {
	return c.SetOptional(name, &value)
}

// SetOptional is Set with a nullable value.
func (c *Call) SetOptional(name string, value *string) *Call {
	for i := range c.Named {
		if c.Named[i].Name == name {
			c.Named[i].Value = value
			return c
		}
	}
	c.Named = append(c.Named, NamedArg{Name: name, Value: value})
	return c
}

// Get returns the value of a named argument.
func (c *Call) Get(name string) (string, bool) {
	for _, arg := range c.Named {
		if arg.Name == name && arg.Value != nil {
			return *arg.Value, true
		}
	}
	return "", false
}

// Arg appends a positional argument (a Typst code value).
func (c *Call) Arg(value string) *Call {
	c.Positional = append(c.Positional, value)
	return c
}

// Label attaches labels to the call.
func (c *Call) Label(labels ...string) *Call {
	c.Labels = append(c.Labels, labels...)
	return c
}

func (c *Call) Append(s string) { c.Body = append(c.Body, s) }
func (*Call) element()          {}

// Arg is a bracketed content argument such as a list item or a caption.
type Arg struct {
	Body   []string
	Labels []string
}

func (a *Arg) Append(s string) { a.Body = append(a.Body, s) }
func (*Arg) element()          {}

// Table accumulates a table's column spec and cells. It renders as a figure
// (the embedded Call, carrying caption and labels) wrapping a table call.
type Table struct {
	Call
	Widths      []int
	WidthsGiven bool
	// Cols is the declared column count; zero means len(Widths).
	Cols int

	Header []string
	Cells  []string
	// InHeader routes AddCell to the header row group.
	InHeader bool
}

// NewTable returns an empty table accumulator.
func NewTable() *Table {
	return &Table{Call: Call{Name: "figure", Mode: BlockMarkup}}
}

// AddColumn records a column width from the column spec.
func (t *Table) AddColumn(width int) { t.Widths = append(t.Widths, width) }

// AddCell appends a rendered cell to the header or the body.
func (t *Table) AddCell(cell string) {
	if t.InHeader {
		t.Header = append(t.Header, cell)
		return
	}
	t.Cells = append(t.Cells, cell)
}

// Math is a formula whose source is opaque to the translator.
type Math struct {
	Block  bool
	Source string
	Labels []string
}

func (m *Math) Append(s string) { m.Source += s }
func (*Math) element()          {}
