package favorite

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	domain "github.com/pro-master/backend/internal/domain/favorite"
	"github.com/pro-master/backend/internal/domain/serviceprofile"
	"github.com/pro-master/backend/internal/infra/repository"
	"github.com/pro-master/backend/internal/models"
	"github.com/pro-master/backend/internal/testing/fixtures"
	"github.com/pro-master/backend/internal/testing/testdb"
)

// blindRepo never sees an existing edge, as if every caller raced past
// the pre-check.
type blindRepo struct {
	domain.Repository
}

func (blindRepo) Exists(context.Context, uint, uint) (bool, error) {
	return false, nil
}

func setup(t *testing.T) (*gorm.DB, *models.User, *models.ServiceProfile) {
	t.Helper()
	db := testdb.New(t)
	owner := fixtures.Master(t, db)
	client, _ := fixtures.Client(t, db)
	return db, client, fixtures.ServiceProfile(t, db, owner)
}

func TestAddThenDuplicate(t *testing.T) {
	db, client, profile := setup(t)
	repo := repository.NewFavoriteGormRepository(db)
	add := NewAddFavorite(repo, nil)
	ctx := context.Background()
	in := Input{UserID: client.ID, ServiceProfileID: profile.ID}

	out, err := add.Execute(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, profile.ID, out.ID)
	assert.Equal(t, profile.Name, out.Name)
	assert.True(t, out.IsFavorited)
	assert.Nil(t, out.Rating)

	_, err = add.Execute(ctx, in)
	assert.ErrorIs(t, err, domain.ErrAlreadyFavorited)
}

func TestRemoveThenMissing(t *testing.T) {
	db, client, profile := setup(t)
	repo := repository.NewFavoriteGormRepository(db)
	ctx := context.Background()
	in := Input{UserID: client.ID, ServiceProfileID: profile.ID}

	_, err := NewAddFavorite(repo, nil).Execute(ctx, in)
	require.NoError(t, err)

	remove := NewRemoveFavorite(repo, nil)
	require.NoError(t, remove.Execute(ctx, in))
	assert.ErrorIs(t, remove.Execute(ctx, in), domain.ErrNotFavorited)
}

func TestMissingTarget(t *testing.T) {
	db, client, _ := setup(t)
	repo := repository.NewFavoriteGormRepository(db)
	ctx := context.Background()
	in := Input{UserID: client.ID, ServiceProfileID: 9999}

	_, err := NewAddFavorite(repo, nil).Execute(ctx, in)
	assert.ErrorIs(t, err, serviceprofile.ErrNotFound)
	assert.ErrorIs(t, NewRemoveFavorite(repo, nil).Execute(ctx, in), serviceprofile.ErrNotFound)
}

func TestConstraintViolationMapsToDuplicate(t *testing.T) {
	db, client, profile := setup(t)
	add := NewAddFavorite(blindRepo{repository.NewFavoriteGormRepository(db)}, nil)
	ctx := context.Background()
	in := Input{UserID: client.ID, ServiceProfileID: profile.ID}

	_, err := add.Execute(ctx, in)
	require.NoError(t, err)

	_, err = add.Execute(ctx, in)
	assert.ErrorIs(t, err, domain.ErrAlreadyFavorited)

	var count int64
	require.NoError(t, db.Model(&models.Favorite{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestConcurrentAddExactlyOneWins(t *testing.T) {
	db, client, profile := setup(t)
	add := NewAddFavorite(blindRepo{repository.NewFavoriteGormRepository(db)}, nil)
	in := Input{UserID: client.ID, ServiceProfileID: profile.ID}

	const callers = 2
	errs := make([]error, callers)
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, errs[i] = add.Execute(context.Background(), in)
		}(i)
	}
	close(start)
	wg.Wait()

	var ok, dup int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case assert.ErrorIs(t, err, domain.ErrAlreadyFavorited):
			dup++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, dup)
}

func TestFavoriteCarriesRating(t *testing.T) {
	db, client, profile := setup(t)
	other, _ := fixtures.Client(t, db)
	fixtures.Review(t, db, profile, other, 4)

	out, err := NewAddFavorite(repository.NewFavoriteGormRepository(db), nil).
		Execute(context.Background(), Input{UserID: client.ID, ServiceProfileID: profile.ID})
	require.NoError(t, err)
	require.NotNil(t, out.Rating)
	assert.InDelta(t, 4.0, *out.Rating, 0.0001)
}
