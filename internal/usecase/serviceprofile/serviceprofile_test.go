package serviceprofile

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"

	"github.com/pro-master/backend/internal/domain/access"
	domain "github.com/pro-master/backend/internal/domain/serviceprofile"
	"github.com/pro-master/backend/internal/httperr"
	"github.com/pro-master/backend/internal/infra/repository"
	"github.com/pro-master/backend/internal/infra/storage"
	"github.com/pro-master/backend/internal/models"
	"github.com/pro-master/backend/internal/testing/fixtures"
	"github.com/pro-master/backend/internal/testing/testdb"
)

// flakyStorage fails every Put after the first n.
type flakyStorage struct {
	*storage.Memory
	n int
}

var errUpload = errors.New("upload failed")

func (f *flakyStorage) Put(ctx context.Context, folder, payload string) (storage.StoredImage, error) {
	if f.n == 0 {
		return storage.StoredImage{}, errUpload
	}
	f.n--
	return f.Memory.Put(ctx, folder, payload)
}

// stuckStorage never manages to delete.
type stuckStorage struct {
	*storage.Memory
}

func (stuckStorage) Delete(context.Context, string) error {
	return errors.New("delete failed")
}

type env struct {
	db       *gorm.DB
	uc       *Profiles
	store    *storage.Memory
	master   access.Principal
	category *models.Category
	service  *models.Service
}

func newEnv(t *testing.T) env {
	t.Helper()
	db := testdb.New(t)
	store := storage.NewMemory(1 << 20)
	return env{
		db:       db,
		uc:       NewProfiles(repository.NewServiceProfileGormRepository(db), store, nil, nil),
		store:    store,
		master:   access.FromUser(fixtures.Master(t, db), nil),
		category: fixtures.Category(t, db, "Beauty"),
		service:  fixtures.Service(t, db, "Haircut"),
	}
}

func (e env) input() CreateInput {
	return CreateInput{
		Actor: e.master,
		Fields: Fields{
			Name:        "Studio",
			Description: "Cuts and colour",
			PhoneNumber: "+79123456789",
		},
		Categories: []uint{e.category.ID},
		Services:   []uint{e.service.ID},
	}
}

func count(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func TestCreateWritesEverything(t *testing.T) {
	e := newEnv(t)
	in := e.input()
	in.ProfileFoto = fixtures.PNGBase64()
	in.Images = []string{fixtures.PNGBase64(), fixtures.PNGBase64()}

	p, err := e.uc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, e.master.UserID, p.OwnerID)
	assert.NotEmpty(t, p.ProfileFotoURL)

	assert.Equal(t, int64(1), count(t, e.db, &models.ServiceProfileCategory{}))
	assert.Equal(t, int64(1), count(t, e.db, &models.ServiceProfileService{}))
	assert.Equal(t, int64(2), count(t, e.db, &models.Image{}))
	assert.Equal(t, 3, e.store.Len())
}

func TestCreateValidatesLinks(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	in := e.input()
	in.Categories = nil
	_, err := e.uc.Create(ctx, in)
	assert.True(t, httperr.IsBusiness(err, "categories_required"))

	in = e.input()
	in.Categories = []uint{e.category.ID, e.category.ID}
	_, err = e.uc.Create(ctx, in)
	assert.True(t, httperr.IsBusiness(err, "duplicate_categories"))

	in = e.input()
	in.Services = []uint{424242}
	_, err = e.uc.Create(ctx, in)
	assert.True(t, httperr.IsBusiness(err, "unknown_services"))

	assert.Zero(t, count(t, e.db, &models.ServiceProfile{}))
}

func TestCreateRollsBackOnImageFailure(t *testing.T) {
	e := newEnv(t)
	flaky := &flakyStorage{Memory: e.store, n: 2}
	uc := NewProfiles(repository.NewServiceProfileGormRepository(e.db), flaky, nil, nil)

	in := e.input()
	in.ProfileFoto = fixtures.PNGBase64()
	in.Images = []string{fixtures.PNGBase64(), fixtures.PNGBase64()}

	_, err := uc.Create(context.Background(), in)
	assert.ErrorIs(t, err, errUpload)

	assert.Zero(t, count(t, e.db, &models.ServiceProfile{}))
	assert.Zero(t, count(t, e.db, &models.ServiceProfileCategory{}))
	assert.Zero(t, count(t, e.db, &models.Image{}))
	assert.Zero(t, e.store.Len(), "uploads of a rolled back create are removed")
}

func TestCreateRequiresMaster(t *testing.T) {
	e := newEnv(t)
	client, _ := fixtures.Client(t, e.db)

	in := e.input()
	in.Actor = access.FromUser(client, nil)
	_, err := e.uc.Create(context.Background(), in)
	assert.ErrorIs(t, err, httperr.ErrForbidden)

	in.Actor = access.Anonymous()
	_, err = e.uc.Create(context.Background(), in)
	assert.ErrorIs(t, err, httperr.ErrNotAuthenticated)
}

func TestUpdateAndDelete(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	p, err := e.uc.Create(ctx, e.input())
	require.NoError(t, err)

	other := access.FromUser(fixtures.Master(t, e.db), nil)
	name := "Renamed"
	_, err = e.uc.Update(ctx, UpdateInput{Actor: other, Method: http.MethodPatch, ID: p.ID, Name: &name})
	assert.ErrorIs(t, err, httperr.ErrForbidden)

	second := fixtures.Category(t, e.db, "Nails")
	updated, err := e.uc.Update(ctx, UpdateInput{
		Actor: e.master, Method: http.MethodPatch, ID: p.ID,
		Name: &name, Categories: []uint{second.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, "Cuts and colour", updated.Description)

	var link models.ServiceProfileCategory
	require.NoError(t, e.db.First(&link).Error)
	assert.Equal(t, second.ID, link.CategoryID)
	assert.Equal(t, int64(1), count(t, e.db, &models.ServiceProfileService{}), "services untouched")

	_, err = e.uc.Update(ctx, UpdateInput{Actor: e.master, Method: http.MethodPatch, ID: 777, Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, e.uc.Delete(ctx, other, p.ID), httperr.ErrForbidden)
	require.NoError(t, e.uc.Delete(ctx, e.master, p.ID))
	assert.Zero(t, count(t, e.db, &models.ServiceProfile{}))
	assert.Zero(t, count(t, e.db, &models.ServiceProfileCategory{}))
}

func TestReplacedPhotoDeleteFailureIsLogged(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	core, logs := observer.New(zapcore.WarnLevel)
	uc := NewProfiles(repository.NewServiceProfileGormRepository(e.db), stuckStorage{Memory: e.store}, nil, zap.New(core))

	in := e.input()
	in.ProfileFoto = fixtures.PNGBase64()
	p, err := uc.Create(ctx, in)
	require.NoError(t, err)
	oldKey := p.ProfileFotoKey
	require.NotEmpty(t, oldKey)

	foto := fixtures.PNGBase64()
	updated, err := uc.Update(ctx, UpdateInput{Actor: e.master, Method: http.MethodPatch, ID: p.ID, ProfileFoto: &foto})
	require.NoError(t, err)
	assert.NotEqual(t, oldKey, updated.ProfileFotoKey)

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, oldKey, logs.All()[0].ContextMap()["key"])
}
