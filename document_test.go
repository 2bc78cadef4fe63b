package unfurl_test

import (
	"testing"

	"github.com/fwojciec/unfurl"
	"github.com/stretchr/testify/assert"
)

func attrs(m map[string]string) func(string) (string, bool) {
	return func(name string) (string, bool) {
		v, ok := m[name]
		return v, ok
	}
}

func TestSelector_Match(t *testing.T) {
	t.Parallel()

	t.Run("matches tag case-insensitively", func(t *testing.T) {
		t.Parallel()

		assert.True(t, unfurl.Tag("h1").Match("H1", attrs(nil)))
		assert.False(t, unfurl.Tag("h1").Match("h2", attrs(nil)))
	})

	t.Run("requires attribute presence", func(t *testing.T) {
		t.Parallel()

		sel := unfurl.TagWithAttr("img", "src")

		assert.True(t, sel.Match("img", attrs(map[string]string{"src": ""})))
		assert.False(t, sel.Match("img", attrs(map[string]string{"alt": "x"})))
	})

	t.Run("requires attribute value", func(t *testing.T) {
		t.Parallel()

		sel := unfurl.TagWithAttrValue("meta", "name", "description")

		assert.True(t, sel.Match("meta", attrs(map[string]string{"name": "description"})))
		assert.False(t, sel.Match("meta", attrs(map[string]string{"name": "Description"})))
		assert.False(t, sel.Match("meta", attrs(map[string]string{"property": "description"})))
	})

	t.Run("matches empty required value", func(t *testing.T) {
		t.Parallel()

		sel := unfurl.TagWithAttrValue("img", "src", "")

		assert.True(t, sel.Match("img", attrs(map[string]string{"src": ""})))
		assert.False(t, sel.Match("img", attrs(map[string]string{"src": "a.png"})))
	})
}
