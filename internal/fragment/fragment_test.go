package fragment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	n := Span("a b", Text("x < y"), Break(), Element("ul", "list", Element("li", "", Text("one"))))
	SetAttr(n, "style", "color: red;")
	SetAttr(n, "style", "color: blue;")

	out, err := Render(n, Text(" & more"))
	require.NoError(t, err)
	assert.Equal(t, `<span class="a b" style="color: blue;">x &lt; y<br/><ul class="list"><li>one</li></ul></span> &amp; more`, out)
}

func TestPlainText(t *testing.T) {
	out, err := PlainText(`<span class="keyword-display">Blocker</span><br/>Pay <span class="mana">2</span>: ` +
		`<ul class="list"><li>one</li><li>two &amp; three</li></ul>`)
	require.NoError(t, err)
	assert.Equal(t, "Blocker\nPay 2: \n• one\n• two & three", out)
}
