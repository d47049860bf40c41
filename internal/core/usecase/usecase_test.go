package usecase

import (
	"context"
	"errors"
	"testing"

	"cat-gallery-service/internal/adapters/memstate"
	"cat-gallery-service/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubCatAPI - управляемая заглушка CatAPIPort со счетчиками вызовов.
type stubCatAPI struct {
	randomCats    []domain.CatEntity
	randomErr     error
	favouriteCats []domain.CatEntity
	favouritesErr error
	saveID        int64
	saveErr       error
	deleteErr     error

	randomCalls     int
	favouritesCalls int
	saveCalls       int
	deleteCalls     int
}

func (s *stubCatAPI) GetRandomCats(ctx context.Context, limit int) ([]domain.CatEntity, error) {
	s.randomCalls++
	if s.randomErr != nil {
		return nil, s.randomErr
	}
	return s.randomCats, nil
}

func (s *stubCatAPI) GetFavouriteCats(ctx context.Context) ([]domain.CatEntity, error) {
	s.favouritesCalls++
	if s.favouritesErr != nil {
		return nil, s.favouritesErr
	}
	return s.favouriteCats, nil
}

func (s *stubCatAPI) SaveFavourite(ctx context.Context, imageID string) (int64, error) {
	s.saveCalls++
	if s.saveErr != nil {
		return 0, s.saveErr
	}
	return s.saveID, nil
}

func (s *stubCatAPI) DeleteFavourite(ctx context.Context, favouriteID int64) error {
	s.deleteCalls++
	return s.deleteErr
}

func favouriteOf(id string, favouriteID int64) domain.CatEntity {
	return domain.CatEntity{ID: id, URL: "https://cdn2.thecatapi.com/images/" + id + ".jpg", FavouriteID: &favouriteID}
}

func TestLoadRandomCats_Fulfilled(t *testing.T) {
	state := memstate.NewCollectionsState()
	api := &stubCatAPI{randomCats: []domain.CatEntity{{ID: "a"}, {ID: "b"}}}
	uc := NewLoadRandomCatsUseCase(api, state)

	cats, err := uc.Execute(context.Background(), 10)

	require.NoError(t, err)
	assert.Len(t, cats, 2)
	snapshot := state.Snapshot()
	assert.Len(t, snapshot.Random, 2)
	assert.False(t, snapshot.Loading.Random)
	assert.Nil(t, snapshot.Error)
}

func TestLoadRandomCats_PendingClearsError(t *testing.T) {
	state := memstate.NewCollectionsState()
	state.SetError("stale failure")

	// даже упавшая загрузка сначала очищает ошибку, а потом пишет свою
	api := &stubCatAPI{randomErr: errors.New("boom")}
	uc := NewLoadRandomCatsUseCase(api, state)

	_, err := uc.Execute(context.Background(), 10)

	require.Error(t, err)
	snapshot := state.Snapshot()
	require.NotNil(t, snapshot.Error)
	assert.Equal(t, "boom", *snapshot.Error)
}

func TestLoadRandomCats_RejectedKeepsPriorCollection(t *testing.T) {
	state := memstate.NewCollectionsState()
	state.SetRandom([]domain.CatEntity{{ID: "old"}})

	api := &stubCatAPI{randomErr: errors.New("timeout")}
	uc := NewLoadRandomCatsUseCase(api, state)

	_, err := uc.Execute(context.Background(), 10)

	require.Error(t, err)
	snapshot := state.Snapshot()
	require.Len(t, snapshot.Random, 1)
	assert.Equal(t, "old", snapshot.Random[0].ID)
	assert.False(t, snapshot.Loading.Random)
}

// Сценарий изоляции ошибок: избранное падает с "timeout", лента успевает
// загрузить двух котов. Частичный отказ не трогает удавшуюся часть.
func TestLoadWorkflows_ErrorIsolation(t *testing.T) {
	state := memstate.NewCollectionsState()
	api := &stubCatAPI{
		randomCats:    []domain.CatEntity{{ID: "a"}, {ID: "b"}},
		favouritesErr: errors.New("timeout"),
	}

	_, randomErr := NewLoadRandomCatsUseCase(api, state).Execute(context.Background(), 2)
	_, favouritesErr := NewLoadFavouriteCatsUseCase(api, state).Execute(context.Background())

	require.NoError(t, randomErr)
	require.Error(t, favouritesErr)

	snapshot := state.Snapshot()
	assert.Len(t, snapshot.Random, 2)
	assert.Empty(t, snapshot.Favourites)
	require.NotNil(t, snapshot.Error)
	assert.Equal(t, "timeout", *snapshot.Error)
}

func TestLoadFavouriteCats_ReplacesWholesale(t *testing.T) {
	state := memstate.NewCollectionsState()
	state.SetFavourites([]domain.CatEntity{favouriteOf("stale", 1)})

	api := &stubCatAPI{favouriteCats: []domain.CatEntity{favouriteOf("fresh", 2)}}
	uc := NewLoadFavouriteCatsUseCase(api, state)

	_, err := uc.Execute(context.Background())

	require.NoError(t, err)
	snapshot := state.Snapshot()
	require.Len(t, snapshot.Favourites, 1)
	assert.Equal(t, "fresh", snapshot.Favourites[0].ID)
	assert.False(t, state.IsFavourite("stale"))
}

// Сквозной сценарий сохранения: пустое избранное, API возвращает id 99,
// после завершения в избранном ровно одна запись с favouriteId 99.
func TestSaveFavouriteCat_Fulfilled(t *testing.T) {
	state := memstate.NewCollectionsState()
	api := &stubCatAPI{saveID: 99}
	uc := NewSaveFavouriteCatUseCase(api, state)

	favouriteID, err := uc.Execute(context.Background(), domain.CatEntity{ID: "z", URL: "https://cdn2.thecatapi.com/images/z.jpg"})

	require.NoError(t, err)
	assert.Equal(t, int64(99), favouriteID)

	snapshot := state.Snapshot()
	require.Len(t, snapshot.Favourites, 1)
	assert.Equal(t, "z", snapshot.Favourites[0].ID)
	assert.Equal(t, "https://cdn2.thecatapi.com/images/z.jpg", snapshot.Favourites[0].URL)
	require.NotNil(t, snapshot.Favourites[0].FavouriteID)
	assert.Equal(t, int64(99), *snapshot.Favourites[0].FavouriteID)
	assert.False(t, snapshot.Loading.Saving)
}

// Guard от дубликата - жесткий инвариант: второй вызов для того же
// изображения не доходит до API вообще.
func TestSaveFavouriteCat_DuplicateGuardBeforeNetworkCall(t *testing.T) {
	state := memstate.NewCollectionsState()
	state.SetFavourites([]domain.CatEntity{favouriteOf("abc", 5)})

	api := &stubCatAPI{saveID: 123}
	uc := NewSaveFavouriteCatUseCase(api, state)

	_, err := uc.Execute(context.Background(), domain.CatEntity{ID: "abc"})

	require.ErrorIs(t, err, domain.ErrAlreadyFavourite)
	assert.Equal(t, 0, api.saveCalls)

	// состояние не тронуто: ни флага, ни ошибки, ни новой записи
	snapshot := state.Snapshot()
	assert.Len(t, snapshot.Favourites, 1)
	assert.False(t, snapshot.Loading.Saving)
	assert.Nil(t, snapshot.Error)
}

func TestSaveFavouriteCat_RejectedLeavesFavouritesUntouched(t *testing.T) {
	state := memstate.NewCollectionsState()
	api := &stubCatAPI{saveErr: errors.New("service unavailable")}
	uc := NewSaveFavouriteCatUseCase(api, state)

	_, err := uc.Execute(context.Background(), domain.CatEntity{ID: "q"})

	require.Error(t, err)
	snapshot := state.Snapshot()
	assert.Empty(t, snapshot.Favourites)
	require.NotNil(t, snapshot.Error)
	assert.Equal(t, "service unavailable", *snapshot.Error)
	assert.False(t, snapshot.Loading.Saving)
}

// Save не трогает флаг random: флаги загрузки независимы.
func TestSaveFavouriteCat_DoesNotTouchOtherLoadingFlags(t *testing.T) {
	state := memstate.NewCollectionsState()
	state.SetLoading(domain.OpLoadRandom, true)

	api := &stubCatAPI{saveID: 1}
	uc := NewSaveFavouriteCatUseCase(api, state)

	_, err := uc.Execute(context.Background(), domain.CatEntity{ID: "n"})

	require.NoError(t, err)
	snapshot := state.Snapshot()
	assert.True(t, snapshot.Loading.Random)
	assert.False(t, snapshot.Loading.Saving)
}

// Корректность удаления: уходит только запись с favouriteId 42,
// соседи сохраняют идентичность и порядок.
func TestDeleteFavouriteCat_RemovesOnlyTarget(t *testing.T) {
	state := memstate.NewCollectionsState()
	state.SetFavourites([]domain.CatEntity{
		favouriteOf("a", 1),
		favouriteOf("b", 42),
		favouriteOf("c", 7),
	})

	api := &stubCatAPI{}
	uc := NewDeleteFavouriteCatUseCase(api, state)

	err := uc.Execute(context.Background(), favouriteOf("b", 42))

	require.NoError(t, err)
	assert.Equal(t, 1, api.deleteCalls)

	favourites := state.Snapshot().Favourites
	require.Len(t, favourites, 2)
	assert.Equal(t, int64(1), *favourites[0].FavouriteID)
	assert.Equal(t, int64(7), *favourites[1].FavouriteID)
}

// Удаление не оптимистичное: при отказе сервера зеркало не мутируется.
func TestDeleteFavouriteCat_RejectedKeepsCollection(t *testing.T) {
	state := memstate.NewCollectionsState()
	state.SetFavourites([]domain.CatEntity{favouriteOf("a", 1)})

	api := &stubCatAPI{deleteErr: errors.New("gone wrong")}
	uc := NewDeleteFavouriteCatUseCase(api, state)

	err := uc.Execute(context.Background(), favouriteOf("a", 1))

	require.Error(t, err)
	snapshot := state.Snapshot()
	assert.Len(t, snapshot.Favourites, 1)
	require.NotNil(t, snapshot.Error)
	assert.Equal(t, "gone wrong", *snapshot.Error)
	assert.False(t, snapshot.Loading.Deleting)
}

func TestDeleteFavouriteCat_RequiresFavouriteID(t *testing.T) {
	state := memstate.NewCollectionsState()
	api := &stubCatAPI{}
	uc := NewDeleteFavouriteCatUseCase(api, state)

	err := uc.Execute(context.Background(), domain.CatEntity{ID: "a"})

	require.ErrorIs(t, err, domain.ErrNotFavourite)
	assert.Equal(t, 0, api.deleteCalls)
}
