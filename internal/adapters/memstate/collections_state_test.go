package memstate

import (
	"testing"

	"cat-gallery-service/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func favouriteOf(id string, favouriteID int64) domain.CatEntity {
	return domain.CatEntity{ID: id, URL: "https://cdn2.thecatapi.com/images/" + id + ".jpg", FavouriteID: &favouriteID}
}

func TestNewCollectionsState_Empty(t *testing.T) {
	state := NewCollectionsState()
	snapshot := state.Snapshot()

	assert.Empty(t, snapshot.Random)
	assert.Empty(t, snapshot.Favourites)
	assert.Equal(t, domain.LoadingFlags{}, snapshot.Loading)
	assert.Nil(t, snapshot.Error)
}

func TestSetLoading_FlagsAreIndependent(t *testing.T) {
	state := NewCollectionsState()

	state.SetLoading(domain.OpLoadRandom, true)
	state.SetLoading(domain.OpSaving, true)

	snapshot := state.Snapshot()
	assert.True(t, snapshot.Loading.Random)
	assert.True(t, snapshot.Loading.Saving)
	assert.False(t, snapshot.Loading.Favourites)
	assert.False(t, snapshot.Loading.Deleting)

	// выключение одного флага не трогает второй
	state.SetLoading(domain.OpSaving, false)
	snapshot = state.Snapshot()
	assert.True(t, snapshot.Loading.Random)
	assert.False(t, snapshot.Loading.Saving)
}

func TestRemoveFavourite_KeepsOrderOfOthers(t *testing.T) {
	state := NewCollectionsState()
	state.SetFavourites([]domain.CatEntity{
		favouriteOf("a", 1),
		favouriteOf("b", 42),
		favouriteOf("c", 7),
	})

	state.RemoveFavourite(42)

	favourites := state.Snapshot().Favourites
	require.Len(t, favourites, 2)
	assert.Equal(t, int64(1), *favourites[0].FavouriteID)
	assert.Equal(t, int64(7), *favourites[1].FavouriteID)
	assert.False(t, state.IsFavourite("b"))
}

func TestIsFavourite_KeyedByImageID(t *testing.T) {
	state := NewCollectionsState()
	state.SetFavourites([]domain.CatEntity{favouriteOf("x", 1)})

	// ключ индекса - id изображения, не id записи избранного
	assert.True(t, state.IsFavourite("x"))
	assert.False(t, state.IsFavourite("y"))
	assert.False(t, state.IsFavourite("1"))
}

func TestAppendFavourite_UpdatesIndex(t *testing.T) {
	state := NewCollectionsState()

	state.AppendFavourite(favouriteOf("z", 99))

	assert.True(t, state.IsFavourite("z"))
	require.Len(t, state.Snapshot().Favourites, 1)
}

func TestSetError_OverwritesAndClears(t *testing.T) {
	state := NewCollectionsState()

	state.SetError("first failure")
	state.SetError("second failure")

	snapshot := state.Snapshot()
	require.NotNil(t, snapshot.Error)
	assert.Equal(t, "second failure", *snapshot.Error)

	state.ClearError()
	assert.Nil(t, state.Snapshot().Error)
}

func TestSnapshot_IsACopy(t *testing.T) {
	state := NewCollectionsState()
	state.SetRandom([]domain.CatEntity{{ID: "a", URL: "https://cdn2.thecatapi.com/images/a.jpg"}})

	snapshot := state.Snapshot()
	snapshot.Random[0].ID = "mutated"

	assert.Equal(t, "a", state.Snapshot().Random[0].ID)
}
