package shopping_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sekelas/kelasku/internal/shopping"
)

func newService(t *testing.T) (*shopping.Service, *shopping.MockRepository) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := shopping.NewMockRepository(ctrl)

	return shopping.NewService(repo), repo
}

func validParams() shopping.ItemParams {
	return shopping.ItemParams{
		Name:     "Spidol papan tulis",
		Price:    15000,
		Category: "supplies",
		Priority: shopping.PriorityHigh,
		Quantity: 2,
	}
}

func TestService_Add(t *testing.T) {
	type testCase struct {
		name    string
		mutate  func(p *shopping.ItemParams)
		wantErr bool
	}

	tests := []testCase{
		{name: "Success"},
		{
			name:    "EmptyName",
			mutate:  func(p *shopping.ItemParams) { p.Name = " " },
			wantErr: true,
		},
		{
			name:    "NegativePrice",
			mutate:  func(p *shopping.ItemParams) { p.Price = -1 },
			wantErr: true,
		},
		{
			name:    "ZeroQuantity",
			mutate:  func(p *shopping.ItemParams) { p.Quantity = 0 },
			wantErr: true,
		},
		{
			name:    "UnknownPriority",
			mutate:  func(p *shopping.ItemParams) { p.Priority = "Whenever" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newService(t)

			params := validParams()
			if tt.mutate != nil {
				tt.mutate(&params)
			}

			if !tt.wantErr {
				repo.EXPECT().
					CreateItem(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, item *shopping.Item) error {
						item.ID = uuid.New()
						item.CreatedAt = time.Now()
						return nil
					})
			}

			got, err := svc.Add(context.Background(), params)

			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, shopping.ErrValidation)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, shopping.StatusPlanned, got.Status)
			assert.NotEmpty(t, got.ID)
		})
	}
}

func TestService_Update(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc, repo := newService(t)
		id := uuid.New()

		repo.EXPECT().
			GetItem(gomock.Any(), id).
			Return(&shopping.Item{ID: id, Name: "old", Quantity: 1, Priority: shopping.PriorityLow, Status: shopping.StatusPlanned}, nil)
		repo.EXPECT().
			UpdateItem(gomock.Any(), gomock.Any()).
			Return(nil)

		got, err := svc.Update(context.Background(), id, validParams(), shopping.StatusPurchased)

		require.NoError(t, err)
		assert.Equal(t, "Spidol papan tulis", got.Name)
		assert.Equal(t, shopping.StatusPurchased, got.Status)
	})

	t.Run("VanishedItem", func(t *testing.T) {
		svc, repo := newService(t)
		id := uuid.New()

		// Update on a concurrently-deleted item is an error, unlike delete.
		repo.EXPECT().
			GetItem(gomock.Any(), id).
			Return(nil, shopping.ErrNotFound)

		_, err := svc.Update(context.Background(), id, validParams(), shopping.StatusPlanned)

		assert.ErrorIs(t, err, shopping.ErrNotFound)
	})

	t.Run("UnknownStatus", func(t *testing.T) {
		svc, _ := newService(t)

		_, err := svc.Update(context.Background(), uuid.New(), validParams(), "maybe")

		assert.ErrorIs(t, err, shopping.ErrValidation)
	})
}

func TestService_Delete_Idempotent(t *testing.T) {
	svc, repo := newService(t)
	id := uuid.New()

	repo.EXPECT().DeleteItem(gomock.Any(), id).Return(nil).Times(2)

	require.NoError(t, svc.Delete(context.Background(), id))
	require.NoError(t, svc.Delete(context.Background(), id))
}
