package binding

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/BuzzLyutic/todo-bridge/internal/model"
)

// MockInvoker - мок моста к бэкенду
type MockInvoker struct {
	mock.Mock
}

func (m *MockInvoker) Invoke(ctx context.Context, command string, args any, out any) error {
	ret := m.Called(ctx, command, args, out)
	return ret.Error(0)
}

// respondJSON decodes raw into the out argument of the mocked call.
func respondJSON(raw string) func(mock.Arguments) {
	return func(args mock.Arguments) {
		if err := json.Unmarshal([]byte(raw), args.Get(3)); err != nil {
			panic(err)
		}
	}
}

func persistedItem(m *MockInvoker, id int64) *TodoItem {
	c := NewClient(m)
	item := c.NewTodoItem("write tests", model.Medium)
	item.id = model.Persisted(id)
	return item
}

func TestTag_Equality(t *testing.T) {
	c := NewClient(new(MockInvoker))

	tests := []struct {
		name string
		a, b *Tag
	}{
		{name: "same value", a: c.NewTag("work"), b: c.NewTag("work")},
		{name: "different value", a: c.NewTag("work"), b: c.NewTag("home")},
		{name: "id ignored", a: &Tag{id: model.Persisted(1), value: "x"}, b: &Tag{id: model.Persisted(2), value: "x"}},
		{name: "empty values", a: c.NewTag(""), b: c.NewTag("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.a.Value() == tt.b.Value(), tt.a.Equals(tt.b))
			assert.Equal(t, !tt.a.Equals(tt.b), tt.a.NotEquals(tt.b))
		})
	}
}

func TestTag_SetIDKeepsFirst(t *testing.T) {
	tag := NewClient(new(MockInvoker)).NewTag("work")

	tag.SetID(3)
	tag.SetID(9)

	id, ok := tag.ID().Get()
	require.True(t, ok)
	assert.Equal(t, int64(3), id)
	assert.Equal(t, model.Tag{ID: model.Persisted(3), Value: "work"}, tag.Inner())
}

func TestClient_FetchTag(t *testing.T) {
	m := new(MockInvoker)
	m.On("Invoke", mock.Anything, model.CmdGetTagID, model.TagNameArgs{TagName: "work"}, mock.Anything).
		Return(nil).Run(respondJSON(`12`))

	tag, err := NewClient(m).FetchTag(context.Background(), "work")

	require.NoError(t, err)
	assert.Equal(t, model.Persisted(12), tag.ID())
	assert.Equal(t, "work", tag.Value())
	m.AssertExpectations(t)
}

func TestClient_FetchTagError(t *testing.T) {
	boom := errors.New("backend down")
	m := new(MockInvoker)
	m.On("Invoke", mock.Anything, model.CmdGetTagID, mock.Anything, mock.Anything).Return(boom)

	tag, err := NewClient(m).FetchTag(context.Background(), "work")

	assert.ErrorIs(t, err, boom)
	assert.Nil(t, tag)
}

func TestClient_FetchAllTagsKeepsOrder(t *testing.T) {
	m := new(MockInvoker)
	m.On("Invoke", mock.Anything, model.CmdFetchAllTags, nil, mock.Anything).
		Return(nil).Run(respondJSON(`[[3,"zeta"],[1,"alpha"]]`))

	tags, err := NewClient(m).FetchAllTags(context.Background())

	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, model.Tag{ID: model.Persisted(3), Value: "zeta"}, tags[0].Inner())
	assert.Equal(t, model.Tag{ID: model.Persisted(1), Value: "alpha"}, tags[1].Inner())
}

func TestTag_Create(t *testing.T) {
	m := new(MockInvoker)
	m.On("Invoke", mock.Anything, model.CmdCreateTag, model.TagNameArgs{TagName: "home"}, mock.Anything).
		Return(nil).Run(respondJSON(`4`))

	tag := NewClient(m).NewTag("home")
	require.NoError(t, tag.Create(context.Background()))

	assert.Equal(t, model.Persisted(4), tag.ID())
	m.AssertExpectations(t)
}

func TestTag_Rename(t *testing.T) {
	t.Run("persisted", func(t *testing.T) {
		m := new(MockInvoker)
		m.On("Invoke", mock.Anything, model.CmdRenameTag, model.RenameTagArgs{TagID: 4, TagName: "house"}, nil).
			Return(nil)

		tag := NewClient(m).NewTag("home")
		tag.SetID(4)

		require.NoError(t, tag.Rename(context.Background(), "house"))
		assert.Equal(t, "house", tag.Value())
		m.AssertExpectations(t)
	})

	t.Run("unsaved renames locally", func(t *testing.T) {
		m := new(MockInvoker)
		tag := NewClient(m).NewTag("home")

		require.NoError(t, tag.Rename(context.Background(), "house"))
		assert.Equal(t, "house", tag.Value())
		m.AssertNumberOfCalls(t, "Invoke", 0)
	})

	t.Run("failure keeps old value", func(t *testing.T) {
		m := new(MockInvoker)
		m.On("Invoke", mock.Anything, model.CmdRenameTag, mock.Anything, nil).Return(errors.New("conflict"))

		tag := NewClient(m).NewTag("home")
		tag.SetID(4)

		assert.Error(t, tag.Rename(context.Background(), "house"))
		assert.Equal(t, "home", tag.Value())
	})
}

func TestTag_Remove(t *testing.T) {
	t.Run("unsaved tag is removed by value", func(t *testing.T) {
		m := new(MockInvoker)
		m.On("Invoke", mock.Anything, model.CmdDeleteTag, model.TagNameArgs{TagName: "work"}, nil).Return(nil)

		tag := NewClient(m).NewTag("work")

		assert.NoError(t, tag.Remove(context.Background()))
		m.AssertExpectations(t)
	})

	t.Run("clears id", func(t *testing.T) {
		m := new(MockInvoker)
		m.On("Invoke", mock.Anything, model.CmdDeleteTag, model.TagNameArgs{TagName: "work"}, nil).Return(nil)

		tag := NewClient(m).NewTag("work")
		tag.SetID(8)

		require.NoError(t, tag.Remove(context.Background()))
		assert.False(t, tag.ID().IsPersisted())
	})
}

func TestTag_TodoItems(t *testing.T) {
	t.Run("requires id", func(t *testing.T) {
		m := new(MockInvoker)
		tag := NewClient(m).NewTag("work")

		items, err := tag.TodoItems(context.Background())

		assert.Nil(t, items)
		assert.ErrorIs(t, err, ErrIDUndefined)
		var idErr *IDUndefinedError
		require.ErrorAs(t, err, &idErr)
		assert.Equal(t, "Tag", idErr.Kind)
		assert.Equal(t, "the id of `Tag` is undefined", err.Error())
		m.AssertNumberOfCalls(t, "Invoke", 0)
	})

	t.Run("maps pairs", func(t *testing.T) {
		m := new(MockInvoker)
		m.On("Invoke", mock.Anything, model.CmdFetchAllTagTodoItems, model.TagIDArgs{TagID: 2}, mock.Anything).
			Return(nil).
			Run(respondJSON(`[[9, {"message":"ship","priority":"Low","done":true,"tags":[{"id":2,"value":"work"}]}]]`))

		tag := NewClient(m).NewTag("work")
		tag.SetID(2)

		items, err := tag.TodoItems(context.Background())

		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, model.Persisted(9), items[0].ID())
		assert.True(t, items[0].Done())
		assert.True(t, items[0].HasTag("work"))
	})
}

func TestClient_FetchAllTodoItems(t *testing.T) {
	m := new(MockInvoker)
	m.On("Invoke", mock.Anything, model.CmdFetchAllTodoItems, nil, mock.Anything).
		Return(nil).
		Run(respondJSON(`[[5, {"message":"m","priority":"High","done":false,"tags":[]}]]`))

	items, err := NewClient(m).FetchAllTodoItems(context.Background())

	require.NoError(t, err)
	require.Len(t, items, 1)
	id, ok := items[0].ID().Get()
	require.True(t, ok)
	assert.Equal(t, int64(5), id)
	assert.Equal(t, "m", items[0].Message())
	assert.Equal(t, model.High, items[0].Priority())
	assert.False(t, items[0].Done())
	assert.Empty(t, items[0].Tags())
}

func TestTodoItem_Save(t *testing.T) {
	m := new(MockInvoker)
	c := NewClient(m)
	item := c.NewTodoItem("buy milk", model.Low)
	item.tags = []*Tag{c.NewTag("shop")}

	want := model.SaveTodoItemArgs{TodoItem: model.TodoItem{
		Message:  "buy milk",
		Priority: model.Low,
		Tags:     []model.Tag{{Value: "shop"}},
	}}
	m.On("Invoke", mock.Anything, model.CmdSaveFullTodoItem, want, mock.Anything).
		Return(nil).Run(respondJSON(`21`))

	require.NoError(t, item.Save(context.Background()))
	assert.Equal(t, model.Persisted(21), item.ID())
	m.AssertExpectations(t)
}

func TestTodoItem_SaveFailureStaysUnsaved(t *testing.T) {
	m := new(MockInvoker)
	m.On("Invoke", mock.Anything, model.CmdSaveFullTodoItem, mock.Anything, mock.Anything).Return(errors.New("boom"))

	item := NewClient(m).NewTodoItem("buy milk", model.Low)

	assert.Error(t, item.Save(context.Background()))
	assert.False(t, item.ID().IsPersisted())
}

func TestTodoItem_UnsavedEditsStayLocal(t *testing.T) {
	m := new(MockInvoker)
	item := NewClient(m).NewTodoItem("draft", model.Medium)
	ctx := context.Background()

	require.NoError(t, item.EditMessage(ctx, "x"))
	require.NoError(t, item.EditPriority(ctx, model.VeryHigh))
	require.NoError(t, item.RevertState(ctx))
	require.NoError(t, item.AddTag(ctx, "work"))
	require.NoError(t, item.CleanTags(ctx))

	assert.Equal(t, "x", item.Message())
	assert.Equal(t, model.VeryHigh, item.Priority())
	assert.True(t, item.Done())
	assert.Empty(t, item.Tags())
	m.AssertNumberOfCalls(t, "Invoke", 0)
}

func TestTodoItem_PersistedEdits(t *testing.T) {
	ctx := context.Background()

	t.Run("message", func(t *testing.T) {
		m := new(MockInvoker)
		m.On("Invoke", mock.Anything, model.CmdEditMessage, model.EditMessageArgs{ItemID: 3, NewMessage: "new"}, nil).Return(nil)
		item := persistedItem(m, 3)

		require.NoError(t, item.EditMessage(ctx, "new"))
		assert.Equal(t, "new", item.Message())
		m.AssertExpectations(t)
	})

	t.Run("priority", func(t *testing.T) {
		m := new(MockInvoker)
		m.On("Invoke", mock.Anything, model.CmdEditPriority, model.EditPriorityArgs{ItemID: 3, Priority: model.VeryLow}, nil).Return(nil)
		item := persistedItem(m, 3)

		require.NoError(t, item.EditPriority(ctx, model.VeryLow))
		assert.Equal(t, model.VeryLow, item.Priority())
		m.AssertExpectations(t)
	})

	t.Run("state", func(t *testing.T) {
		m := new(MockInvoker)
		m.On("Invoke", mock.Anything, model.CmdStateRevert, model.ItemIDArgs{ItemID: 3}, nil).Return(nil)
		item := persistedItem(m, 3)

		require.NoError(t, item.RevertState(ctx))
		require.NoError(t, item.RevertState(ctx))
		assert.False(t, item.Done())
		m.AssertNumberOfCalls(t, "Invoke", 2)
	})

	t.Run("clean tags", func(t *testing.T) {
		m := new(MockInvoker)
		m.On("Invoke", mock.Anything, model.CmdCleanTag, model.ItemIDArgs{ItemID: 3}, nil).Return(nil)
		item := persistedItem(m, 3)
		item.tags = []*Tag{{value: "a"}, {value: "b"}}

		require.NoError(t, item.CleanTags(ctx))
		assert.Empty(t, item.Tags())
	})
}

func TestTodoItem_FailedEditsLeaveStateUntouched(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")
	m := new(MockInvoker)
	m.On("Invoke", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(boom)

	item := persistedItem(m, 3)
	item.tags = []*Tag{{value: "keep"}}

	assert.ErrorIs(t, item.EditMessage(ctx, "new"), boom)
	assert.ErrorIs(t, item.EditPriority(ctx, model.High), boom)
	assert.ErrorIs(t, item.RevertState(ctx), boom)
	assert.ErrorIs(t, item.AddTag(ctx, "other"), boom)
	assert.ErrorIs(t, item.RemoveTag(ctx, "keep"), boom)
	assert.ErrorIs(t, item.CleanTags(ctx), boom)
	assert.ErrorIs(t, item.Remove(ctx), boom)

	assert.Equal(t, "write tests", item.Message())
	assert.Equal(t, model.Medium, item.Priority())
	assert.False(t, item.Done())
	require.Len(t, item.Tags(), 1)
	assert.Equal(t, "keep", item.Tags()[0].Value())
	assert.Equal(t, model.Persisted(3), item.ID())
}

func TestTodoItem_EditPriorityRejectsUnknown(t *testing.T) {
	m := new(MockInvoker)
	item := persistedItem(m, 3)

	err := item.EditPriority(context.Background(), model.Priority("Urgent"))

	assert.ErrorIs(t, err, model.ErrInvalidPriority)
	assert.Equal(t, model.Medium, item.Priority())
	m.AssertNumberOfCalls(t, "Invoke", 0)
}

func TestTodoItem_EditTag(t *testing.T) {
	ctx := context.Background()
	m := new(MockInvoker)
	m.On("Invoke", mock.Anything, model.CmdEditTag, model.EditTagArgs{ItemID: 3, Mode: model.TagAdd, TagName: "work"}, mock.Anything).
		Return(nil).Run(respondJSON(`17`))
	m.On("Invoke", mock.Anything, model.CmdEditTag, model.EditTagArgs{ItemID: 3, Mode: model.TagRemove, TagName: "work"}, mock.Anything).
		Return(nil).Run(respondJSON(`17`))

	item := persistedItem(m, 3)

	require.NoError(t, item.EditTagByName(ctx, "work", model.TagAdd))
	require.Len(t, item.Tags(), 1)
	assert.Equal(t, "work", item.Tags()[0].Value())
	assert.Equal(t, model.Persisted(17), item.Tags()[0].ID())

	require.NoError(t, item.EditTagByName(ctx, "work", model.TagRemove))
	assert.Empty(t, item.Tags())
	m.AssertExpectations(t)
}

func TestTodoItem_EditTagKeepsValuesUnique(t *testing.T) {
	ctx := context.Background()
	c := NewClient(new(MockInvoker))
	item := c.NewTodoItem("draft", model.Medium)

	first := c.NewTag("work")
	require.NoError(t, item.EditTag(ctx, first, model.TagAdd))
	require.NoError(t, item.EditTag(ctx, c.NewTag("work"), model.TagAdd))
	require.NoError(t, item.EditTag(ctx, c.NewTag("home"), model.TagAdd))

	tags := item.Tags()
	require.Len(t, tags, 2)
	assert.Same(t, first, tags[0])
	assert.Equal(t, "home", tags[1].Value())
}

func TestTodoItem_EditTagExistingTagKeepsItsID(t *testing.T) {
	m := new(MockInvoker)
	m.On("Invoke", mock.Anything, model.CmdEditTag, mock.Anything, mock.Anything).
		Return(nil).Run(respondJSON(`99`))

	c := NewClient(m)
	tag := c.NewTag("work")
	tag.SetID(5)
	item := persistedItem(m, 3)

	require.NoError(t, item.EditTag(context.Background(), tag, model.TagAdd))
	assert.Equal(t, model.Persisted(5), tag.ID())
}

func TestTodoItem_EditTagInvalidMode(t *testing.T) {
	m := new(MockInvoker)
	item := persistedItem(m, 3)

	err := item.EditTagByName(context.Background(), "work", model.TagOpsMode(" Remove"))

	assert.ErrorIs(t, err, model.ErrInvalidMode)
	m.AssertNumberOfCalls(t, "Invoke", 0)
}

func TestTodoItem_Remove(t *testing.T) {
	t.Run("unsaved", func(t *testing.T) {
		m := new(MockInvoker)
		item := NewClient(m).NewTodoItem("draft", model.Medium)

		err := item.Remove(context.Background())

		assert.ErrorIs(t, err, ErrIDUndefined)
		assert.Equal(t, "the id of `TodoItem` is undefined", err.Error())
		m.AssertNumberOfCalls(t, "Invoke", 0)
	})

	t.Run("persisted", func(t *testing.T) {
		m := new(MockInvoker)
		m.On("Invoke", mock.Anything, model.CmdDeleteTodoItem, model.ItemIDArgs{ItemID: 3}, nil).Return(nil)
		item := persistedItem(m, 3)

		require.NoError(t, item.Remove(context.Background()))
		assert.False(t, item.ID().IsPersisted())
		m.AssertExpectations(t)
	})
}

func TestTodoItem_Inner(t *testing.T) {
	c := NewClient(new(MockInvoker))
	work := c.NewTag("work")
	work.SetID(1)
	item := &TodoItem{
		id:       model.Persisted(7),
		message:  "plan sprint",
		priority: model.High,
		done:     true,
		tags:     []*Tag{work, c.NewTag("urgent")},
	}

	inner := item.Inner()

	assert.Equal(t, model.Persisted(7), inner.ID)
	assert.Equal(t, "plan sprint", inner.Message)
	assert.Equal(t, model.High, inner.Priority)
	assert.True(t, inner.Done)
	require.Len(t, inner.Tags, 2)
	assert.Equal(t, model.Tag{ID: model.Persisted(1), Value: "work"}, inner.Tags[0])
	assert.Equal(t, model.Tag{Value: "urgent"}, inner.Tags[1])
	assert.Equal(t, []string{"work", "urgent"}, inner.TagValues())
}

func TestTodoItem_TagsReturnsCopy(t *testing.T) {
	c := NewClient(new(MockInvoker))
	item := c.NewTodoItem("draft", model.Medium)
	require.NoError(t, item.AddTag(context.Background(), "work"))

	tags := item.Tags()
	tags[0] = c.NewTag("other")

	assert.True(t, item.HasTag("work"))
	assert.False(t, item.HasTag("other"))
}
