package sink_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/grafana/sobek"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/veil/internal/infrastructure/sink"
)

// stubDOM models just enough of a document for the injected script.
const stubDOM = `
var listeners = {};
var byId = {};
function makeParent() {
  return {
    children: [],
    firstChild: null,
    insertBefore: function (el, ref) {
      this.children.unshift(el);
      this.firstChild = el;
      byId[el.id] = el;
    }
  };
}
var head = makeParent();
head.children.push({ tagName: "link", id: "" });
var document = {
  head: head,
  documentElement: null,
  getElementById: function (id) { return byId[id] || null; },
  createElement: function (tag) { return { tagName: tag, id: "", textContent: "" }; },
  addEventListener: function (name, fn) { listeners[name] = fn; }
};
`

func renderUserscript(t *testing.T, css, styleID string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "veil.user.js")

	s, err := sink.NewFileSink(path, sink.FormatUserscript, styleID)
	require.NoError(t, err)
	require.NoError(t, s.SetText(testCtx(), css))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func eval(t *testing.T, vm *sobek.Runtime, expr string) sobek.Value {
	t.Helper()
	v, err := vm.RunString(expr)
	require.NoError(t, err)
	return v
}

func TestUserscript_InjectsStyleFirstInHead(t *testing.T) {
	css := `.a[data-x="q\"uote"] { filter: blur(3px) !important; }` + "\n"
	script := renderUserscript(t, css, "veil-test")

	vm := sobek.New()
	eval(t, vm, stubDOM)
	eval(t, vm, script)

	assert.Equal(t, int64(2), eval(t, vm, "head.children.length").ToInteger())
	assert.Equal(t, "style", eval(t, vm, "head.children[0].tagName").String())
	assert.Equal(t, "veil-test", eval(t, vm, "head.children[0].id").String())
	assert.Equal(t, css, eval(t, vm, "head.children[0].textContent").String())
}

func TestUserscript_IsIdempotent(t *testing.T) {
	first := renderUserscript(t, ".a { opacity: 0 !important; }\n", "")
	second := renderUserscript(t, ".b { opacity: 0 !important; }\n", "")

	vm := sobek.New()
	eval(t, vm, stubDOM)
	eval(t, vm, first)
	eval(t, vm, second)

	assert.Equal(t, int64(2), eval(t, vm, "head.children.length").ToInteger())
	assert.Equal(t, sink.DefaultStyleID, eval(t, vm, "head.children[0].id").String())
	assert.Equal(t, ".b { opacity: 0 !important; }\n", eval(t, vm, "head.children[0].textContent").String())
}

func TestUserscript_DefersWithoutDocumentElement(t *testing.T) {
	css := ".late { filter: blur(1px) !important; }\n"
	script := renderUserscript(t, css, "")

	vm := sobek.New()
	eval(t, vm, stubDOM)
	eval(t, vm, "document.head = null;")
	eval(t, vm, script)

	assert.Equal(t, "function", eval(t, vm, "typeof listeners.DOMContentLoaded").String())
	assert.True(t, sobek.IsNull(eval(t, vm, "document.getElementById('veil-style')")))

	eval(t, vm, "document.documentElement = makeParent(); listeners.DOMContentLoaded();")
	assert.Equal(t, css, eval(t, vm, "document.documentElement.firstChild.textContent").String())
}
