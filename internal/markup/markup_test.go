package markup

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/shoplist/internal/id"
	"github.com/idilsaglam/shoplist/internal/model"
	"github.com/idilsaglam/shoplist/internal/store"
)

const applesGolden = `<li class="js-item-element" data-item-id="item-1">
<span class="shopping-item">apples</span>
<div class="shopping-item-controls">
<button class="shopping-item-toggle js-item-toggle" data-on:click="@post('/items/item-1/toggle')"><span class="button-label">check</span></button>
<button class="shopping-item-edit js-toggle-edit" data-on:click="@post('/items/item-1/edit')"><span class="button-label">edit</span></button>
<button class="shopping-item-delete js-item-delete" data-on:click="@post('/items/item-1/delete')"><span class="button-label">delete</span></button>
</div>
</li>
`

func TestRenderItem_NormalGolden(t *testing.T) {
	got := RenderItem(model.Item{ID: "item-1", Name: "apples"})
	assert.Equal(t, applesGolden, got)
}

func TestRenderItem_Checked(t *testing.T) {
	got := RenderItem(model.Item{ID: "item-3", Name: "milk", Checked: true})
	assert.Contains(t, got, `class="shopping-item shopping-item__checked">milk</span>`)
	assert.Contains(t, got, `<span class="button-label">uncheck</span>`)
}

func TestRenderItem_Editing(t *testing.T) {
	got := RenderItem(model.Item{ID: "item-2", Name: "oranges", IsEditing: true})

	assert.Contains(t, got, `data-item-id="item-2"`)
	assert.Contains(t, got, `value="oranges"`)
	assert.Contains(t, got, ">cancel</button>")
	assert.Contains(t, got, ">save</button>")
	assert.NotContains(t, got, "js-item-toggle")
	assert.NotContains(t, got, "js-item-delete")
}

func TestRenderItem_EditingResetsSignal(t *testing.T) {
	apples := RenderItem(model.Item{ID: "item-1", Name: "apples", IsEditing: true})
	bread := RenderItem(model.Item{ID: "item-4", Name: "bread", IsEditing: true})

	assert.Contains(t, apples, `data-signals:edit-name="&#34;apples&#34;"`)
	assert.Contains(t, bread, `data-signals:edit-name="&#34;bread&#34;"`)

	quoted := RenderItem(model.Item{ID: "item-9", Name: `it's "fresh"`, IsEditing: true})
	assert.Contains(t, quoted, `data-signals:edit-name="&#34;it&#39;s \&#34;fresh\&#34;&#34;"`)
}

func TestJSString(t *testing.T) {
	assert.Equal(t, `"apples"`, jsString("apples"))
	assert.Equal(t, `"\u003c/script\u003e"`, jsString("</script>"))
}

func TestRenderItem_EscapesName(t *testing.T) {
	got := RenderItem(model.Item{ID: "item-9", Name: `<script>alert("x")</script>`})
	assert.NotContains(t, got, "<script>")
	assert.Contains(t, got, "&lt;script&gt;")
}

func TestRenderItem_Deterministic(t *testing.T) {
	it := model.Item{ID: "item-1", Name: "apples", Checked: true}
	assert.Equal(t, RenderItem(it), RenderItem(it))
}

func TestRenderList(t *testing.T) {
	assert.Equal(t, "", RenderList(nil))
	assert.Equal(t, "", RenderList([]model.Item{}))

	items := []model.Item{
		{ID: "a", Name: "apples"},
		{ID: "b", Name: "bread", IsEditing: true},
		{ID: "c", Name: "cheese", Checked: true},
	}
	got := RenderList(items)
	assert.Equal(t, len(items), strings.Count(got, `<li class="js-item-element"`))
	assert.Less(t, strings.Index(got, `data-item-id="a"`), strings.Index(got, `data-item-id="b"`))
	assert.Less(t, strings.Index(got, `data-item-id="b"`), strings.Index(got, `data-item-id="c"`))
}

func TestRenderClearControl(t *testing.T) {
	s := store.New(id.NewSequence("item"))
	assert.Equal(t, "", RenderClearControl(s))

	s.SetSearchWord("an")
	got := RenderClearControl(s)
	assert.Contains(t, got, "js-clear-search")
	assert.Contains(t, got, "Clear Search")
}

func TestRenderPage(t *testing.T) {
	s := store.New(id.NewSequence("item"), store.WithSeeds(store.DefaultSeeds()))
	s.SetHideCompleted(true)

	page, err := RenderPage(s)
	require.NoError(t, err)
	assert.Contains(t, page, `<ul id="shopping-list"`)
	assert.Contains(t, page, DatastarURL)
	assert.Contains(t, page, ">apples</span>")
	assert.NotContains(t, page, ">milk</span>", "hidden items are not rendered")
	assert.Contains(t, page, "js-hide-completed-toggle\" checked")
	assert.Equal(t, 3, strings.Count(page, `<li class="js-item-element"`))
}

func TestRenderRegions(t *testing.T) {
	s := store.New(id.NewSequence("item"))
	assert.Equal(t, `<ul id="shopping-list" class="shopping-list js-shopping-list"></ul>`, RenderListRegion(s))
	assert.Equal(t, `<div id="clear-search-controls" class="clear-search-controls"></div>`, RenderClearRegion(s))

	_, err := s.AddItem("eggs")
	require.NoError(t, err)
	s.SetSearchWord("eg")
	assert.Contains(t, RenderListRegion(s), ">eggs</span>")
	assert.Contains(t, RenderClearRegion(s), "Clear Search")
}
