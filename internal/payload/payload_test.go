package payload

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
)

func TestFromDocument(t *testing.T) {
	html := `<html><body>
		<script type="application/json">{"props":{"pageProps":{"ad":{"id":123}}}}</script>
	</body></html>`
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	assert.NoError(t, err)

	v, ok := FromDocument(doc)
	assert.True(t, ok)
	assert.True(t, HasMarker(doc))

	id, ok := v.Get("props", "pageProps", "ad", "id").Int()
	assert.True(t, ok)
	assert.Equal(t, 123, id)
}

func TestFromDocumentMissingMarker(t *testing.T) {
	html := `<html><body><p>nothing here</p></body></html>`
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	assert.NoError(t, err)

	_, ok := FromDocument(doc)
	assert.False(t, ok)
	assert.False(t, HasMarker(doc))
}

func TestFromDocumentInvalidJSON(t *testing.T) {
	html := `<html><body><script type="application/json">{broken</script></body></html>`
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	assert.NoError(t, err)

	_, ok := FromDocument(doc)
	assert.False(t, ok)
}

func TestGetAbsentPath(t *testing.T) {
	v, ok := FromJSON([]byte(`{"a":{"b":1}}`))
	assert.True(t, ok)

	assert.True(t, v.Get("a", "missing").IsAbsent())
	assert.True(t, v.Get("a", "b", "deeper").IsAbsent())
	assert.True(t, Value{}.Get("anything").IsAbsent())
}

func TestGetNullIsAbsent(t *testing.T) {
	v, _ := FromJSON([]byte(`{"agency":null}`))
	assert.True(t, v.Get("agency").IsAbsent())
	assert.False(t, v.Get("agency").Exists())
}

func TestStr(t *testing.T) {
	v, _ := FromJSON([]byte(`{"plain":"x","wrapped":["y"],"multi":["a","b"],"num":5}`))

	s, ok := v.Get("plain").Str()
	assert.True(t, ok)
	assert.Equal(t, "x", s)

	// single-element lists unwrap to their element
	s, ok = v.Get("wrapped").Str()
	assert.True(t, ok)
	assert.Equal(t, "y", s)

	_, ok = v.Get("multi").Str()
	assert.False(t, ok)

	_, ok = v.Get("num").Str()
	assert.False(t, ok)
}

func TestFloatAndInt(t *testing.T) {
	v, _ := FromJSON([]byte(`{"f":54.5,"s":"54.5","i":7,"si":"7","li":["7"],"bad":"x"}`))

	f, ok := v.Get("f").Float()
	assert.True(t, ok)
	assert.Equal(t, 54.5, f)

	f, ok = v.Get("s").Float()
	assert.True(t, ok)
	assert.Equal(t, 54.5, f)

	i, ok := v.Get("i").Int()
	assert.True(t, ok)
	assert.Equal(t, 7, i)

	i, ok = v.Get("si").Int()
	assert.True(t, ok)
	assert.Equal(t, 7, i)

	i, ok = v.Get("li").Int()
	assert.True(t, ok)
	assert.Equal(t, 7, i)

	_, ok = v.Get("bad").Int()
	assert.False(t, ok)

	_, ok = v.Get("missing").Float()
	assert.False(t, ok)
}

func TestStrSlice(t *testing.T) {
	v, _ := FromJSON([]byte(`{"list":["a","b"],"empty":[],"mixed":["a",1]}`))

	list, ok := v.Get("list").StrSlice()
	assert.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, list)

	_, ok = v.Get("empty").StrSlice()
	assert.False(t, ok)

	_, ok = v.Get("mixed").StrSlice()
	assert.False(t, ok)

	_, ok = v.Get("missing").StrSlice()
	assert.False(t, ok)
}
