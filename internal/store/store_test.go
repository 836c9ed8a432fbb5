package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/shoplist/internal/id"
	"github.com/idilsaglam/shoplist/internal/model"
)

// seeded returns apples, oranges, milk (checked), bread with ids item-1..item-4.
func seeded(t *testing.T, opts ...Option) *Store {
	t.Helper()
	opts = append([]Option{WithSeeds(DefaultSeeds())}, opts...)
	s := New(id.NewSequence("item"), opts...)
	require.Equal(t, 4, s.Len())
	return s
}

func names(items []model.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Name)
	}
	return out
}

func TestCreateItem(t *testing.T) {
	s := New(id.NewSequence("item"))

	it, err := s.CreateItem("  eggs ")
	require.NoError(t, err)
	assert.Equal(t, model.Item{ID: "item-1", Name: "  eggs "}, it, "names are kept as typed")
	assert.Equal(t, 0, s.Len(), "create must not insert")

	_, err = s.CreateItem("   ")
	require.Error(t, err)
	assert.True(t, IsInvalidInput(err))
}

func TestAddItem_GrowsByOneWithUniqueIDs(t *testing.T) {
	s := New(nil)
	seen := map[string]bool{}
	for i, n := range []string{"a", "b", "c", "d", "e", "f"} {
		it, err := s.AddItem(n)
		require.NoError(t, err)
		assert.Equal(t, i+1, s.Len())
		assert.False(t, seen[it.ID])
		seen[it.ID] = true
	}
}

func TestAddItem_InsertPosition(t *testing.T) {
	t.Run("front by default", func(t *testing.T) {
		s := seeded(t)
		_, err := s.AddItem("eggs")
		require.NoError(t, err)
		assert.Equal(t, []string{"eggs", "apples", "oranges", "milk", "bread"}, names(s.Items()))
	})
	t.Run("back", func(t *testing.T) {
		s := seeded(t, WithInsertPosition(InsertBack))
		_, err := s.AddItem("eggs")
		require.NoError(t, err)
		assert.Equal(t, []string{"apples", "oranges", "milk", "bread", "eggs"}, names(s.Items()))
	})
}

func TestAddItem_RejectsBlankAndLeavesStoreUnchanged(t *testing.T) {
	s := seeded(t)
	before := s.Items()
	_, err := s.AddItem("")
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, before, s.Items())
}

func TestDeleteItem_IdempotentOnAbsence(t *testing.T) {
	s := seeded(t)
	milk := "item-3"

	s.DeleteItem(milk)
	assert.Equal(t, 3, s.Len())
	_, ok := s.Item(milk)
	assert.False(t, ok)

	s.DeleteItem(milk)
	assert.Equal(t, 3, s.Len())
}

func TestToggleChecked(t *testing.T) {
	s := seeded(t)

	require.NoError(t, s.ToggleChecked("item-1"))
	it, _ := s.Item("item-1")
	assert.True(t, it.Checked)

	require.NoError(t, s.ToggleChecked("item-1"))
	it, _ = s.Item("item-1")
	assert.False(t, it.Checked, "toggling twice restores the original state")

	err := s.ToggleChecked("nope")
	require.ErrorIs(t, err, ErrNotFound)
	var serr *Error
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "toggle", serr.Op)
	assert.Equal(t, "nope", serr.ID)
}

func TestSetEditing_SingleEditor(t *testing.T) {
	s := seeded(t)

	require.NoError(t, s.SetEditing("item-1"))
	require.NoError(t, s.SetEditing("item-2"))

	a, _ := s.Item("item-1")
	b, _ := s.Item("item-2")
	assert.False(t, a.IsEditing)
	assert.True(t, b.IsEditing)

	ed, ok := s.Editing()
	require.True(t, ok)
	assert.Equal(t, "item-2", ed.ID)

	// toggling the same item again leaves edit mode
	require.NoError(t, s.SetEditing("item-2"))
	_, ok = s.Editing()
	assert.False(t, ok)
}

func TestSetEditing_UnknownIDClosesEditor(t *testing.T) {
	s := seeded(t)
	require.NoError(t, s.SetEditing("item-1"))

	err := s.SetEditing("missing")
	require.ErrorIs(t, err, ErrNotFound)

	_, ok := s.Editing()
	assert.False(t, ok)
	assert.Equal(t, []string{"apples", "oranges", "milk", "bread"}, names(s.Items()))
}

func TestCancelEditing(t *testing.T) {
	s := seeded(t)
	require.NoError(t, s.SetEditing("item-4"))
	s.CancelEditing()
	_, ok := s.Editing()
	assert.False(t, ok)
}

func TestRenameItem(t *testing.T) {
	s := seeded(t)

	require.NoError(t, s.RenameItem("item-1", "green apples"))
	it, _ := s.Item("item-1")
	assert.Equal(t, model.Item{ID: "item-1", Name: "green apples"}, it)

	require.ErrorIs(t, s.RenameItem("missing", "x"), ErrNotFound)
	require.ErrorIs(t, s.RenameItem("item-1", " "), ErrInvalidInput)

	it, _ = s.Item("item-1")
	assert.Equal(t, "green apples", it.Name)
}

func TestSaveEdit(t *testing.T) {
	s := seeded(t)
	require.NoError(t, s.SetEditing("item-2"))

	err := s.SaveEdit("item-2", "")
	require.ErrorIs(t, err, ErrInvalidInput)
	it, _ := s.Item("item-2")
	assert.True(t, it.IsEditing, "failed save keeps the editor open")
	assert.Equal(t, "oranges", it.Name)

	require.NoError(t, s.SaveEdit("item-2", "blood oranges"))
	it, _ = s.Item("item-2")
	assert.False(t, it.IsEditing)
	assert.Equal(t, "blood oranges", it.Name)
}

func TestFlags(t *testing.T) {
	s := New(nil)
	assert.False(t, s.HideCompleted())
	s.ToggleHideCompleted()
	assert.True(t, s.HideCompleted())
	s.SetHideCompleted(false)
	assert.False(t, s.HideCompleted())

	assert.False(t, s.SearchActive())
	s.SetSearchWord("an")
	assert.True(t, s.SearchActive())
	assert.Equal(t, "an", s.SearchWord())
	s.SetSearchWord("  ")
	assert.True(t, s.SearchActive(), "whitespace is a real search word")
	assert.Equal(t, "  ", s.SearchWord())
	s.SetSearchWord("")
	assert.False(t, s.SearchActive())
	s.SetSearchWord("x")
	s.ClearSearch()
	assert.Equal(t, "", s.SearchWord())
}

func TestItems_ReturnsCopy(t *testing.T) {
	s := seeded(t)
	items := s.Items()
	items[0].Name = "changed"
	it, _ := s.Item("item-1")
	assert.Equal(t, "apples", it.Name)
}

func TestStats(t *testing.T) {
	s := seeded(t)
	checked, pending := s.Stats()
	assert.Equal(t, 1, checked)
	assert.Equal(t, 3, pending)
}

func TestParseInsertPosition(t *testing.T) {
	p, ok := ParseInsertPosition("BACK")
	assert.True(t, ok)
	assert.Equal(t, InsertBack, p)

	p, ok = ParseInsertPosition("")
	assert.True(t, ok)
	assert.Equal(t, InsertFront, p)

	_, ok = ParseInsertPosition("middle")
	assert.False(t, ok)
	assert.Equal(t, "back", InsertBack.String())
}
