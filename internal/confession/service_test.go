package confession_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sekelas/kelasku/internal/confession"
)

func newService(t *testing.T) (*confession.Service, *confession.MockRepository) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := confession.NewMockRepository(ctrl)

	return confession.NewService(repo), repo
}

func TestService_Submit(t *testing.T) {
	type testCase struct {
		name      string
		params    confession.SubmitParams
		setupMock func(m *confession.MockRepository)
		wantName  string
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "Success",
			params: confession.SubmitParams{
				Message: "I broke the class fan",
				Name:    "Budi",
				Kelas:   "XI-2",
			},
			setupMock: func(m *confession.MockRepository) {
				m.EXPECT().
					CreateConfession(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, c *confession.Confession) error {
						c.ID = uuid.New()
						c.CreatedAt = time.Now()
						return nil
					})
			},
			wantName: "Budi",
		},
		{
			name: "EmptyNameDefaultsToAnonymous",
			params: confession.SubmitParams{
				Message: "someone ate my lunch",
				Name:    "   ",
			},
			setupMock: func(m *confession.MockRepository) {
				m.EXPECT().
					CreateConfession(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantName: confession.DefaultName,
		},
		{
			name: "WithMention",
			params: confession.SubmitParams{
				Message: "thanks for the notes",
				Mention: &confession.Mention{Type: confession.MentionPeople, Target: "Dara"},
			},
			setupMock: func(m *confession.MockRepository) {
				m.EXPECT().
					CreateConfession(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantName: confession.DefaultName,
		},
		{
			name:    "EmptyMessage",
			params:  confession.SubmitParams{Message: "  "},
			wantErr: true,
		},
		{
			name: "UnknownMentionType",
			params: confession.SubmitParams{
				Message: "hi",
				Mention: &confession.Mention{Type: "teachers", Target: "Bu Rina"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newService(t)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			got, err := svc.Submit(context.Background(), tt.params)

			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, confession.ErrValidation)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantName, got.Name)
			assert.Equal(t, confession.StatusActive, got.Status)
		})
	}
}

func TestService_SoftDelete(t *testing.T) {
	svc, repo := newService(t)
	id := uuid.New()

	// Soft delete is a status flip and, like delete, idempotent.
	repo.EXPECT().
		SetStatus(gomock.Any(), id, confession.StatusDeleted).
		Return(nil).
		Times(2)

	require.NoError(t, svc.SoftDelete(context.Background(), id))
	require.NoError(t, svc.SoftDelete(context.Background(), id))
}

func TestService_SoftDeletedExcludedFromFeedButKeptInRaw(t *testing.T) {
	svc, repo := newService(t)

	active := &confession.Confession{ID: uuid.New(), Message: "still here", Status: confession.StatusActive}
	deleted := &confession.Confession{ID: uuid.New(), Message: "gone", Status: confession.StatusDeleted}

	repo.EXPECT().
		ListConfessions(gomock.Any(), confession.ListFilter{}).
		Return([]*confession.Confession{active}, nil)
	repo.EXPECT().
		ListConfessions(gomock.Any(), confession.ListFilter{IncludeDeleted: true}).
		Return([]*confession.Confession{active, deleted}, nil)

	feed, err := svc.List(context.Background(), confession.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, feed, 1)

	raw, err := svc.List(context.Background(), confession.ListFilter{IncludeDeleted: true})
	require.NoError(t, err)
	assert.Len(t, raw, 2)
}

func TestService_ActiveCount(t *testing.T) {
	svc, repo := newService(t)

	repo.EXPECT().
		ListConfessions(gomock.Any(), confession.ListFilter{}).
		Return([]*confession.Confession{{}, {}, {}}, nil)

	count, err := svc.ActiveCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	repo.EXPECT().
		ListConfessions(gomock.Any(), confession.ListFilter{}).
		Return(nil, errors.New("db error"))

	_, err = svc.ActiveCount(context.Background())
	assert.Error(t, err)
}
