package html_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/unfurl"
	"github.com/fwojciec/unfurl/html"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xhtml "golang.org/x/net/html"
)

func parse(t *testing.T, src string) unfurl.Document {
	t.Helper()

	doc, err := html.NewParser().Parse(src)
	require.NoError(t, err)
	return doc
}

func TestParser_Parse(t *testing.T) {
	t.Parallel()

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		_, err := html.NewParser().Parse("")

		require.Error(t, err)
		assert.Equal(t, unfurl.EINVALID, unfurl.ErrorCode(err))
	})

	t.Run("parses fragments without html or body", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<h1>Hello</h1>`)

		h1, ok := doc.Find(unfurl.Tag("h1"))
		require.True(t, ok)
		assert.Equal(t, "Hello", h1.Text())
	})
}

func TestDocument_Find(t *testing.T) {
	t.Parallel()

	t.Run("returns first element in document order", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<div><p>one</p></div><p>two</p>`)

		p, ok := doc.Find(unfurl.Tag("p"))
		require.True(t, ok)
		assert.Equal(t, "one", p.Text())
	})

	t.Run("matches tag names case-insensitively", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<H1>Upper</H1>`)

		h1, ok := doc.Find(unfurl.Tag("H1"))
		require.True(t, ok)
		assert.Equal(t, "Upper", h1.Text())
	})

	t.Run("matches attribute value", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<head>
<meta name="keywords" content="a,b">
<meta name="description" content="About">
</head>`)

		meta, ok := doc.Find(unfurl.TagWithAttrValue("meta", "name", "description"))
		require.True(t, ok)
		content, ok := meta.Attr("content")
		assert.True(t, ok)
		assert.Equal(t, "About", content)
	})

	t.Run("reports missing element", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<p>text</p>`)

		_, ok := doc.Find(unfurl.Tag("h1"))
		assert.False(t, ok)
	})
}

func TestElement_Attr(t *testing.T) {
	t.Parallel()

	doc := parse(t, `<img src="" alt="x">`)
	img, ok := doc.Find(unfurl.Tag("img"))
	require.True(t, ok)

	src, ok := img.Attr("src")
	assert.True(t, ok)
	assert.Empty(t, src)

	_, ok = img.Attr("title")
	assert.False(t, ok)
}

func TestElement_Text(t *testing.T) {
	t.Parallel()

	doc := parse(t, `<p>Hello <b>bold</b> world</p>`)
	p, ok := doc.Find(unfurl.Tag("p"))
	require.True(t, ok)

	assert.Equal(t, "Hello bold world", p.Text())
}

func TestElement_NextSibling(t *testing.T) {
	t.Parallel()

	t.Run("skips siblings that do not match", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<h1>H</h1> text <p>p</p><img alt="no src"><img src="b.png">`)
		h1, ok := doc.Find(unfurl.Tag("h1"))
		require.True(t, ok)

		img, ok := h1.NextSibling(unfurl.TagWithAttr("img", "src"))
		require.True(t, ok)
		src, _ := img.Attr("src")
		assert.Equal(t, "b.png", src)
	})

	t.Run("does not descend into siblings", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<h1>H</h1><div><img src="nested.png"></div>`)
		h1, ok := doc.Find(unfurl.Tag("h1"))
		require.True(t, ok)

		_, ok = h1.NextSibling(unfurl.Tag("img"))
		assert.False(t, ok)
	})
}

func TestElement_PrevSibling(t *testing.T) {
	t.Parallel()

	doc := parse(t, `<img src="far.png"><img src="near.png"><p>p</p><h1>H</h1><img src="after.png">`)
	h1, ok := doc.Find(unfurl.Tag("h1"))
	require.True(t, ok)

	img, ok := h1.PrevSibling(unfurl.TagWithAttr("img", "src"))
	require.True(t, ok)
	src, _ := img.Attr("src")
	assert.Equal(t, "near.png", src)
}

func TestElement_FindNext(t *testing.T) {
	t.Parallel()

	t.Run("finds following element outside siblings", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<p>before</p><div><h1>H</h1></div><section><p>after</p></section>`)
		h1, ok := doc.Find(unfurl.Tag("h1"))
		require.True(t, ok)

		p, ok := h1.FindNext(unfurl.Tag("p"))
		require.True(t, ok)
		assert.Equal(t, "after", p.Text())
	})

	t.Run("includes descendants", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<div id="a"><p>inner</p></div><p>outer</p>`)
		div, ok := doc.Find(unfurl.Tag("div"))
		require.True(t, ok)

		p, ok := div.FindNext(unfurl.Tag("p"))
		require.True(t, ok)
		assert.Equal(t, "inner", p.Text())
	})

	t.Run("reports nothing after last element", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<p>only</p><h1>H</h1>`)
		h1, ok := doc.Find(unfurl.Tag("h1"))
		require.True(t, ok)

		_, ok = h1.FindNext(unfurl.Tag("p"))
		assert.False(t, ok)
	})
}

func TestNewDocument(t *testing.T) {
	t.Parallel()

	root, err := xhtml.Parse(strings.NewReader(`<title>Pre-parsed</title>`))
	require.NoError(t, err)

	doc := html.NewDocument(root)

	title, ok := doc.Find(unfurl.Tag("title"))
	require.True(t, ok)
	assert.Equal(t, "Pre-parsed", title.Text())
}
