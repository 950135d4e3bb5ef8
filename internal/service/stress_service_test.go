package service

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/gripe-service/internal/domain"
	"github.com/spec-kit/gripe-service/internal/events"
	"github.com/spec-kit/gripe-service/internal/repository"
	apperrors "github.com/spec-kit/gripe-service/pkg/util/errorutil"
)

// memoryStressRepo mirrors the conditional-insert semantics of the Postgres
// repository while preserving insertion order.
type memoryStressRepo struct {
	mu       sync.Mutex
	stresses []*domain.Stress
}

func newMemoryStressRepo() *memoryStressRepo {
	return &memoryStressRepo{}
}

func cloneStress(s *domain.Stress) *domain.Stress {
	out := *s
	out.Gripes = append([]domain.Gripe(nil), s.Gripes...)
	out.Owners = append([]string(nil), s.Owners...)
	return &out
}

func (r *memoryStressRepo) Create(_ context.Context, stress *domain.Stress) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	owner := ""
	if len(stress.Owners) > 0 {
		owner = stress.Owners[0]
	}
	for _, existing := range r.stresses {
		if existing.Name == stress.Name && existing.OwnedBy(owner) {
			return repository.ErrDuplicateName
		}
	}
	stress.ID = uuid.NewString()
	r.stresses = append(r.stresses, cloneStress(stress))
	return nil
}

func (r *memoryStressRepo) ListByOwner(_ context.Context, userID string) ([]domain.Stress, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Stress
	for _, s := range r.stresses {
		if s.OwnedBy(userID) {
			out = append(out, *cloneStress(s))
		}
	}
	return out, nil
}

func (r *memoryStressRepo) GetByNameAndOwner(_ context.Context, name, userID string) (*domain.Stress, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.stresses {
		if s.Name == name && s.OwnedBy(userID) {
			return cloneStress(s), nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memoryStressRepo) UpdateGripes(_ context.Context, stress *domain.Stress) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.stresses {
		if s.ID == stress.ID {
			s.GripeCount = stress.GripeCount
			s.Gripes = append([]domain.Gripe(nil), stress.Gripes...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *memoryStressRepo) DeleteByNameAndOwner(_ context.Context, name, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, s := range r.stresses {
		if s.Name == name && s.OwnedBy(userID) {
			r.stresses = append(r.stresses[:i], r.stresses[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func newTestStressService() (*StressService, *memoryStressRepo) {
	repo := newMemoryStressRepo()
	svc := NewStressService(repo, events.NewInMemoryDispatcher(), zap.NewNop())
	return svc, repo
}

func domainCode(t *testing.T, err error) string {
	t.Helper()
	var de *apperrors.DomainError
	require.ErrorAs(t, err, &de)
	return de.Code
}

var alice = domain.Identity{UserID: "alice-id", Email: "alice@example.com"}

func TestAddStress_DuplicateIsNoOp(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestStressService()

	first, err := svc.AddStress(ctx, alice, "Work")
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, 0, first.GripeCount)
	assert.Equal(t, []string{alice.UserID}, first.Owners)

	second, err := svc.AddStress(ctx, alice, "Work")
	require.NoError(t, err)
	assert.Nil(t, second)

	stresses, err := svc.ListStresses(ctx, alice)
	require.NoError(t, err)
	require.Len(t, stresses, 1)
	assert.Equal(t, "Work", stresses[0].Name)
}

func TestAddStress_EmptyNameIsNoOp(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestStressService()

	stress, err := svc.AddStress(ctx, alice, "")
	require.NoError(t, err)
	assert.Nil(t, stress)

	stress, err = svc.AddStress(ctx, alice, "   ")
	require.NoError(t, err)
	assert.Nil(t, stress)

	assert.Empty(t, repo.stresses)
}

func TestAddStress_TrimsName(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestStressService()

	stress, err := svc.AddStress(ctx, alice, "  Commute  ")
	require.NoError(t, err)
	require.NotNil(t, stress)
	assert.Equal(t, "Commute", stress.Name)
}

func TestAddStress_SameNameDifferentUsers(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestStressService()
	bob := domain.Identity{UserID: "bob-id", Email: "bob@example.com"}

	_, err := svc.AddStress(ctx, alice, "Work")
	require.NoError(t, err)
	stress, err := svc.AddStress(ctx, bob, "Work")
	require.NoError(t, err)
	require.NotNil(t, stress)

	aliceList, err := svc.ListStresses(ctx, alice)
	require.NoError(t, err)
	assert.Len(t, aliceList, 1)
	bobList, err := svc.ListStresses(ctx, bob)
	require.NoError(t, err)
	assert.Len(t, bobList, 1)
}

func TestAddGripe_NumbersAndDuplicates(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestStressService()

	_, err := svc.AddStress(ctx, alice, "Work")
	require.NoError(t, err)

	gripe, err := svc.AddGripe(ctx, alice, "Work", "deadlines")
	require.NoError(t, err)
	require.NotNil(t, gripe)
	assert.Equal(t, 1, gripe.Number)

	// identical text is silently ignored and must not bump the counter
	dup, err := svc.AddGripe(ctx, alice, "Work", "deadlines")
	require.NoError(t, err)
	assert.Nil(t, dup)

	gripe, err = svc.AddGripe(ctx, alice, "Work", "meetings")
	require.NoError(t, err)
	require.NotNil(t, gripe)
	assert.Equal(t, 2, gripe.Number)

	stress, err := svc.GetStress(ctx, alice, "Work")
	require.NoError(t, err)
	assert.Equal(t, 2, stress.GripeCount)
	require.Len(t, stress.Gripes, 2)
	assert.Equal(t, "deadlines", stress.Gripes[0].Text)
	assert.Equal(t, "meetings", stress.Gripes[1].Text)
}

func TestAddGripe_EmptyTextIsNoOp(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestStressService()

	gripe, err := svc.AddGripe(ctx, alice, "Work", "")
	require.NoError(t, err)
	assert.Nil(t, gripe)
}

func TestAddGripe_UnknownStress(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestStressService()

	_, err := svc.AddGripe(ctx, alice, "Nowhere", "lost")
	require.Error(t, err)
	assert.Equal(t, "STRESS_NOT_FOUND", domainCode(t, err))
}

func TestReorderWithFirst(t *testing.T) {
	stresses := []domain.Stress{{Name: "A"}, {Name: "B"}, {Name: "C"}}

	reordered := ReorderWithFirst(stresses, "B")
	assert.Equal(t, "B", reordered[0].Name)
	assert.Equal(t, "A", reordered[1].Name)
	assert.Equal(t, "C", reordered[2].Name)

	unchanged := ReorderWithFirst([]domain.Stress{{Name: "A"}, {Name: "B"}}, "missing")
	assert.Equal(t, "A", unchanged[0].Name)
	assert.Equal(t, "B", unchanged[1].Name)

	assert.Empty(t, ReorderWithFirst(nil, "anything"))
}

func TestPickRandomGripe_UniformAndInRange(t *testing.T) {
	svc, _ := newTestStressService()
	stress := &domain.Stress{
		Name: "Work",
		Gripes: []domain.Gripe{
			{Number: 1, Text: "a"},
			{Number: 2, Text: "b"},
			{Number: 3, Text: "c"},
		},
	}

	counts := map[string]int{}
	const trials = 10000
	for i := 0; i < trials; i++ {
		gripe, err := svc.PickRandomGripe(stress)
		require.NoError(t, err)
		counts[gripe.Text]++
	}

	require.Len(t, counts, 3)
	for text, count := range counts {
		// each of three options should land near trials/3
		assert.Greaterf(t, count, trials/5, "gripe %q drawn too rarely", text)
	}
}

func TestPickRandomGripe_Empty(t *testing.T) {
	svc, _ := newTestStressService()

	_, err := svc.PickRandomGripe(&domain.Stress{Name: "Work"})
	require.Error(t, err)
	assert.Equal(t, "NO_GRIPES", domainCode(t, err))
}

func TestDeleteStress_RemovesEmbeddedGripes(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestStressService()

	_, err := svc.AddStress(ctx, alice, "Work")
	require.NoError(t, err)
	_, err = svc.AddGripe(ctx, alice, "Work", "deadlines")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteStress(ctx, alice, "Work"))

	stresses, err := svc.ListStresses(ctx, alice)
	require.NoError(t, err)
	assert.Empty(t, stresses)

	err = svc.DeleteStress(ctx, alice, "Work")
	require.Error(t, err)
	assert.Equal(t, "STRESS_NOT_FOUND", domainCode(t, err))
}

func TestListStresses_InsertionOrder(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestStressService()

	for _, name := range []string{"Work", "Commute", "Laundry"} {
		_, err := svc.AddStress(ctx, alice, name)
		require.NoError(t, err)
	}

	stresses, err := svc.ListStresses(ctx, alice)
	require.NoError(t, err)
	require.Len(t, stresses, 3)
	assert.Equal(t, "Work", stresses[0].Name)
	assert.Equal(t, "Commute", stresses[1].Name)
	assert.Equal(t, "Laundry", stresses[2].Name)
}
