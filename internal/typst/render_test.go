package typst

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRenderCall(t *testing.T) {
	t.Run("paragraph with forced body", func(t *testing.T) {
		c := NewCall("par", BlockMarkup)
		c.ForceBody = true
		require.Equal(t, "#par[]\n", Render(c))
		c.Append(EscapeString("Hello"))
		require.Equal(t, "#par[#\"Hello\"]\n", Render(c))
	})

	t.Run("zero arguments without body", func(t *testing.T) {
		require.Equal(t, "#horizontalrule()\n", Render(NewCall("horizontalrule", BlockMarkup)))
		require.Equal(t, "#linebreak()", Render(NewCall("linebreak", InlineMarkup)))
	})

	t.Run("named arguments keep order and drop none", func(t *testing.T) {
		c := NewCall("heading", BlockMarkup)
		c.Set("level", "2")
		c.SetOptional("supplement", nil)
		c.Set("outlined", "false")
		c.Append(`#"Usage"`)
		require.Equal(t, "#heading(level: 2, outlined: false)[#\"Usage\"]\n", Render(c))
	})

	t.Run("set replaces in place", func(t *testing.T) {
		c := NewCall("admonition", BlockMarkup)
		c.Set("title", "[a]").Set("kind", `"x"`).Set("title", "[b]")
		c.Append("x")
		require.Equal(t, "#admonition(title: [b], kind: \"x\")[x]\n", Render(c))
		v, ok := c.Get("kind")
		require.True(t, ok)
		require.Equal(t, `"x"`, v)
	})

	t.Run("positional after named", func(t *testing.T) {
		c := NewCall("image", InlineMarkup)
		c.Set("width", "50%")
		c.Arg(EscapeString("images/a.png"))
		require.Equal(t, `#image(width: 50%, "images/a.png")`, Render(c))
	})

	t.Run("labels", func(t *testing.T) {
		c := NewCall("heading", BlockMarkup).Set("level", "1").Label("%index#intro")
		c.Append(`#"Intro"`)
		require.Equal(t, "#heading(level: 1)[#\"Intro\"] #label(\"%index#intro\")\n", Render(c))
	})

	t.Run("code mode labels are wrapped in content", func(t *testing.T) {
		c := NewCall("terms.item", InlineCode).Arg("[a]").Arg("[b]").Label("x")
		require.Equal(t, `[#terms.item([a], [b]) #label("x")]`, Render(c))
		c.Labels = nil
		require.Equal(t, `terms.item([a], [b])`, Render(c))
	})

	t.Run("multi-line body is indented", func(t *testing.T) {
		c := NewCall("note", BlockMarkup)
		c.Append("#par[a]\n")
		c.Append("\n")
		c.Append("#par[b]\n")
		require.Equal(t, "#note[\n  #par[a]\n\n  #par[b]\n]\n", Render(c))
	})

	t.Run("render is pure", func(t *testing.T) {
		c := NewCall("strong", InlineMarkup)
		c.Append(`#"x"`)
		require.Equal(t, Render(c), Render(c))
	})
}

func TestIndent(t *testing.T) {
	require.Equal(t, "  a\n\n  b", indent("a\n\nb", "  "))
	require.Equal(t, "  a\n \n  b\n", indent("a\n \nb\n", "  "))
}

func TestRenderArg(t *testing.T) {
	require.Equal(t, "[]", Render(&Arg{}))
	require.Equal(t, "[]", Render(&Arg{Labels: []string{"dropped"}}))
	require.Equal(t, `[#"x" #label("l")]`, Render(&Arg{Body: []string{` #"x" `}, Labels: []string{"l"}}))
	require.Equal(t, "[\n  #par[a]\n  #par[b]\n]", Render(&Arg{Body: []string{"#par[a]\n#par[b]\n"}}))
}

func TestRenderFragment(t *testing.T) {
	f := &Fragment{}
	f.Append("a")
	f.Append("b\n")
	require.Equal(t, "ab\n", Render(f))
}

func TestRenderTable(t *testing.T) {
	t.Run("given widths and header", func(t *testing.T) {
		tbl := NewTable()
		tbl.WidthsGiven = true
		for _, w := range []int{1, 2, 1} {
			tbl.AddColumn(w)
		}
		tbl.InHeader = true
		for _, c := range []string{"[a]", "[b]", "[c]"} {
			tbl.AddCell(c)
		}
		tbl.InHeader = false
		for _, c := range []string{"[1]", "[2]", "[3]"} {
			tbl.AddCell(c)
		}
		require.Equal(t,
			"#figure[#table(columns: (1fr, 2fr, 1fr), table.header([a], [b], [c]), [1], [2], [3])]\n",
			Render(tbl))
	})

	t.Run("caption labels and automatic widths", func(t *testing.T) {
		tbl := NewTable()
		tbl.AddColumn(10)
		tbl.AddColumn(30)
		tbl.Set("caption", `[#"Results"]`)
		tbl.Label("%index#results")
		tbl.AddCell("[x]")
		tbl.AddCell("[y]")
		require.Equal(t,
			"#figure(caption: [#\"Results\"])[#table(columns: 2, [x], [y])] #label(\"%index#results\")\n",
			Render(tbl))
	})

	t.Run("declared column count", func(t *testing.T) {
		tbl := NewTable()
		tbl.Cols = 3
		require.Equal(t, "#figure[#table(columns: 3)]\n", Render(tbl))
	})

	t.Run("single given width is an array", func(t *testing.T) {
		tbl := NewTable()
		tbl.WidthsGiven = true
		tbl.AddColumn(5)
		require.Equal(t, "#figure[#table(columns: (5fr,))]\n", Render(tbl))
	})
}

func TestRenderMath(t *testing.T) {
	require.Equal(t, `#mi("x^2")`, Render(&Math{Source: "x^2"}))
	require.Equal(t,
		"#mitex(\"\\\\frac{a}{b}\\n\") #label(\"%index#eq\")\n",
		Render(&Math{Block: true, Source: "\\frac{a}{b}\n", Labels: []string{"%index#eq"}}))
}
