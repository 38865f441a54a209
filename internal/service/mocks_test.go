package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"undercover/backend/internal/models"
)

type MockRoomRepository struct {
	mock.Mock
}

func (m *MockRoomRepository) Get(ctx context.Context, id string) (*models.Room, error) {
	args := m.Called(ctx, id)
	var room *models.Room
	if r := args.Get(0); r != nil {
		room = r.(*models.Room)
	}
	return room, args.Error(1)
}

func (m *MockRoomRepository) Save(ctx context.Context, room *models.Room) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}

func (m *MockRoomRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRoomRepository) Exists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// scriptedRand returns queued values from IntN and a fixed permutation from
// Perm. With no queued values IntN returns 0; with no permutation Perm is the
// identity.
type scriptedRand struct {
	ints []int
	perm []int
}

func (r *scriptedRand) IntN(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v % n
}

func (r *scriptedRand) Perm(n int) []int {
	if len(r.perm) == n {
		return append([]int(nil), r.perm...)
	}
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	return p
}
