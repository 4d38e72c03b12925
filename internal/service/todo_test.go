package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/BuzzLyutic/todo-bridge/internal/model"
	"github.com/BuzzLyutic/todo-bridge/internal/repo"
)

// MockStore - мок хранилища
type MockStore struct {
	mock.Mock
}

func (m *MockStore) GetOrCreateTag(ctx context.Context, value string) (int64, error) {
	args := m.Called(ctx, value)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStore) FindTagID(ctx context.Context, value string) (int64, error) {
	args := m.Called(ctx, value)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStore) ListTags(ctx context.Context) ([]model.Pair[string], error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Pair[string]), args.Error(1)
}

func (m *MockStore) RenameTag(ctx context.Context, id int64, value string) error {
	return m.Called(ctx, id, value).Error(0)
}

func (m *MockStore) DeleteTag(ctx context.Context, value string) error {
	return m.Called(ctx, value).Error(0)
}

func (m *MockStore) ListTodoItems(ctx context.Context) ([]model.Pair[model.TodoItem], error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Pair[model.TodoItem]), args.Error(1)
}

func (m *MockStore) ListTodoItemsByTag(ctx context.Context, tagID int64) ([]model.Pair[model.TodoItem], error) {
	args := m.Called(ctx, tagID)
	return args.Get(0).([]model.Pair[model.TodoItem]), args.Error(1)
}

func (m *MockStore) SaveTodoItem(ctx context.Context, item model.TodoItem) (int64, error) {
	args := m.Called(ctx, item)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStore) UpdateMessage(ctx context.Context, id int64, message string) error {
	return m.Called(ctx, id, message).Error(0)
}

func (m *MockStore) UpdatePriority(ctx context.Context, id int64, p model.Priority) error {
	return m.Called(ctx, id, p).Error(0)
}

func (m *MockStore) ToggleDone(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockStore) BindTag(ctx context.Context, itemID, tagID int64) error {
	return m.Called(ctx, itemID, tagID).Error(0)
}

func (m *MockStore) UnbindTag(ctx context.Context, itemID, tagID int64) error {
	return m.Called(ctx, itemID, tagID).Error(0)
}

func (m *MockStore) ClearTags(ctx context.Context, itemID int64) error {
	return m.Called(ctx, itemID).Error(0)
}

func (m *MockStore) DeleteTodoItem(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockStore) Close() error {
	return m.Called().Error(0)
}

func TestTodoService_CreateTag(t *testing.T) {
	tests := []struct {
		name      string
		tagName   string
		setupMock func(*MockStore)
		wantID    int64
		wantErr   error
	}{
		{
			name:    "new tag",
			tagName: "work",
			setupMock: func(m *MockStore) {
				m.On("GetOrCreateTag", mock.Anything, "work").Return(int64(3), nil)
			},
			wantID: 3,
		},
		{
			name:      "blank name",
			tagName:   "   ",
			setupMock: func(m *MockStore) {},
			wantErr:   ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockStore)
			tt.setupMock(mockRepo)

			service := NewTodoService(mockRepo)
			id, err := service.CreateTag(context.Background(), tt.tagName)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantID, id)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestTodoService_RenameTag(t *testing.T) {
	mockRepo := new(MockStore)
	mockRepo.On("RenameTag", mock.Anything, int64(2), "job").Return(repo.ErrorConflict)

	service := NewTodoService(mockRepo)

	assert.ErrorIs(t, service.RenameTag(context.Background(), 2, "job"), repo.ErrorConflict)
	assert.ErrorIs(t, service.RenameTag(context.Background(), 0, "job"), ErrValidation)
	mockRepo.AssertExpectations(t)
}

func TestTodoService_SaveFullTodoItem(t *testing.T) {
	valid := model.TodoItem{Message: "buy milk", Priority: model.Low, Tags: []model.Tag{{Value: "shop"}}}

	tests := []struct {
		name      string
		item      model.TodoItem
		setupMock func(*MockStore)
		wantErr   error
	}{
		{
			name: "valid item",
			item: valid,
			setupMock: func(m *MockStore) {
				m.On("SaveTodoItem", mock.Anything, valid).Return(int64(10), nil)
			},
		},
		{
			name:      "empty message",
			item:      model.TodoItem{Message: "", Priority: model.Low},
			setupMock: func(m *MockStore) {},
			wantErr:   ErrValidation,
		},
		{
			name:      "unknown priority",
			item:      model.TodoItem{Message: "x", Priority: "Urgent"},
			setupMock: func(m *MockStore) {},
			wantErr:   model.ErrInvalidPriority,
		},
		{
			name:      "blank tag",
			item:      model.TodoItem{Message: "x", Priority: model.Low, Tags: []model.Tag{{Value: " "}}},
			setupMock: func(m *MockStore) {},
			wantErr:   ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockStore)
			tt.setupMock(mockRepo)

			id, err := NewTodoService(mockRepo).SaveFullTodoItem(context.Background(), tt.item)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, int64(10), id)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestTodoService_EditTag(t *testing.T) {
	tests := []struct {
		name      string
		mode      model.TagOpsMode
		setupMock func(*MockStore)
		wantID    int64
		wantErr   error
	}{
		{
			name: "add creates and binds",
			mode: model.TagAdd,
			setupMock: func(m *MockStore) {
				m.On("GetOrCreateTag", mock.Anything, "work").Return(int64(4), nil)
				m.On("BindTag", mock.Anything, int64(1), int64(4)).Return(nil)
			},
			wantID: 4,
		},
		{
			name: "remove unbinds",
			mode: model.TagRemove,
			setupMock: func(m *MockStore) {
				m.On("FindTagID", mock.Anything, "work").Return(int64(4), nil)
				m.On("UnbindTag", mock.Anything, int64(1), int64(4)).Return(nil)
			},
			wantID: 4,
		},
		{
			name: "remove unknown tag",
			mode: model.TagRemove,
			setupMock: func(m *MockStore) {
				m.On("FindTagID", mock.Anything, "work").Return(int64(0), repo.ErrorNotFound)
			},
			wantErr: repo.ErrorNotFound,
		},
		{
			name: "bind to missing item",
			mode: model.TagAdd,
			setupMock: func(m *MockStore) {
				m.On("GetOrCreateTag", mock.Anything, "work").Return(int64(4), nil)
				m.On("BindTag", mock.Anything, int64(1), int64(4)).Return(repo.ErrorNotFound)
			},
			wantErr: repo.ErrorNotFound,
		},
		{
			name:      "invalid mode",
			mode:      " Remove",
			setupMock: func(m *MockStore) {},
			wantErr:   model.ErrInvalidMode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockStore)
			tt.setupMock(mockRepo)

			id, err := NewTodoService(mockRepo).EditTag(context.Background(), 1, tt.mode, "work")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantID, id)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestTodoService_ItemCommands(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockStore)
	mockRepo.On("UpdateMessage", mock.Anything, int64(5), "new").Return(nil)
	mockRepo.On("UpdatePriority", mock.Anything, int64(5), model.High).Return(nil)
	mockRepo.On("ToggleDone", mock.Anything, int64(5)).Return(nil)
	mockRepo.On("ClearTags", mock.Anything, int64(5)).Return(nil)
	mockRepo.On("DeleteTodoItem", mock.Anything, int64(5)).Return(repo.ErrorNotFound)

	service := NewTodoService(mockRepo)

	require.NoError(t, service.EditMessage(ctx, 5, "new"))
	require.NoError(t, service.EditPriority(ctx, 5, model.High))
	require.NoError(t, service.StateRevert(ctx, 5))
	require.NoError(t, service.CleanTag(ctx, 5))
	assert.ErrorIs(t, service.DeleteTodoItem(ctx, 5), repo.ErrorNotFound)

	assert.ErrorIs(t, service.EditMessage(ctx, 5, ""), ErrValidation)
	assert.ErrorIs(t, service.EditPriority(ctx, 5, "Urgent"), ErrValidation)
	assert.ErrorIs(t, service.StateRevert(ctx, -1), ErrValidation)
	mockRepo.AssertExpectations(t)
}

func TestTodoService_Listing(t *testing.T) {
	ctx := context.Background()
	items := []model.Pair[model.TodoItem]{model.NewPair(int64(1), model.TodoItem{Message: "a", Priority: model.Low})}
	mockRepo := new(MockStore)
	mockRepo.On("ListTags", mock.Anything).Return([]model.Pair[string]{model.NewPair(int64(1), "work")}, nil)
	mockRepo.On("ListTodoItems", mock.Anything).Return(items, nil)
	mockRepo.On("ListTodoItemsByTag", mock.Anything, int64(1)).Return(items, nil)

	service := NewTodoService(mockRepo)

	tags, err := service.FetchAllTags(ctx)
	require.NoError(t, err)
	assert.Len(t, tags, 1)

	all, err := service.FetchAllTodoItems(ctx)
	require.NoError(t, err)
	assert.Equal(t, items, all)

	byTag, err := service.FetchAllTagTodoItems(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, items, byTag)

	_, err = service.FetchAllTagTodoItems(ctx, 0)
	assert.ErrorIs(t, err, ErrValidation)
	mockRepo.AssertExpectations(t)
}
