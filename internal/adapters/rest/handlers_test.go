package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cat-gallery-service/internal/adapters/memstate"
	"cat-gallery-service/internal/core/domain"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLoadRandomUC struct {
	cats  []domain.CatEntity
	err   error
	calls int
	limit int
}

func (s *stubLoadRandomUC) Execute(ctx context.Context, limit int) ([]domain.CatEntity, error) {
	s.calls++
	s.limit = limit
	return s.cats, s.err
}

type stubLoadFavouritesUC struct {
	cats  []domain.CatEntity
	err   error
	calls int
}

func (s *stubLoadFavouritesUC) Execute(ctx context.Context) ([]domain.CatEntity, error) {
	s.calls++
	return s.cats, s.err
}

type stubSaveUC struct {
	favouriteID int64
	err         error
	calls       int
	lastCat     domain.CatEntity
}

func (s *stubSaveUC) Execute(ctx context.Context, cat domain.CatEntity) (int64, error) {
	s.calls++
	s.lastCat = cat
	return s.favouriteID, s.err
}

type stubDeleteUC struct {
	err     error
	calls   int
	lastCat domain.CatEntity
}

func (s *stubDeleteUC) Execute(ctx context.Context, cat domain.CatEntity) error {
	s.calls++
	s.lastCat = cat
	return s.err
}

type recordingNotifier struct {
	notifications []domain.Notification
}

func (r *recordingNotifier) Notify(n domain.Notification) {
	r.notifications = append(r.notifications, n)
}

type handlersFixture struct {
	state      *memstate.CollectionsState
	loadRandom *stubLoadRandomUC
	loadFavs   *stubLoadFavouritesUC
	save       *stubSaveUC
	delete     *stubDeleteUC
	notifier   *recordingNotifier
	router     chi.Router
}

func newHandlersFixture() *handlersFixture {
	f := &handlersFixture{
		state:      memstate.NewCollectionsState(),
		loadRandom: &stubLoadRandomUC{},
		loadFavs:   &stubLoadFavouritesUC{},
		save:       &stubSaveUC{},
		delete:     &stubDeleteUC{},
		notifier:   &recordingNotifier{},
	}

	handlers := NewCatHandlers(f.loadRandom, f.loadFavs, f.save, f.delete, f.state, f.notifier, 10)

	r := chi.NewRouter()
	r.Get("/api/v1/cats/state", handlers.HandleGetState)
	r.Post("/api/v1/cats/random/refresh", handlers.HandleRefreshRandom)
	r.Post("/api/v1/cats/favourites/refresh", handlers.HandleRefreshFavourites)
	r.Post("/api/v1/cats/favourites", handlers.HandleSaveFavourite)
	r.Delete("/api/v1/cats/favourites/{favouriteId}", handlers.HandleDeleteFavourite)
	r.Post("/api/v1/cats/retry", handlers.HandleRetry)
	r.Get("/api/v1/cats/{imageId}/favourite-status", handlers.HandleFavouriteStatus)
	f.router = r

	return f
}

func (f *handlersFixture) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestHandleGetState_ReturnsSnapshot(t *testing.T) {
	f := newHandlersFixture()
	f.state.SetRandom([]domain.CatEntity{{ID: "a", URL: "https://cdn2.thecatapi.com/images/a.jpg"}})

	rec := f.do(http.MethodGet, "/api/v1/cats/state", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var snapshot domain.CollectionsSnapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snapshot))
	require.Len(t, snapshot.Random, 1)
	assert.Equal(t, "a", snapshot.Random[0].ID)
	assert.Empty(t, snapshot.Favourites)
}

func TestHandleRefreshRandom_UsesQueryLimit(t *testing.T) {
	f := newHandlersFixture()
	f.loadRandom.cats = []domain.CatEntity{{ID: "a"}}

	rec := f.do(http.MethodPost, "/api/v1/cats/random/refresh?limit=5", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, f.loadRandom.calls)
	assert.Equal(t, 5, f.loadRandom.limit)
}

func TestHandleRefreshRandom_RejectsBadLimit(t *testing.T) {
	f := newHandlersFixture()

	rec := f.do(http.MethodPost, "/api/v1/cats/random/refresh?limit=zero", "")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, f.loadRandom.calls)
}

func TestHandleSaveFavourite_EmptyBody(t *testing.T) {
	f := newHandlersFixture()

	rec := f.do(http.MethodPost, "/api/v1/cats/favourites", "")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, f.save.calls)
}

func TestHandleSaveFavourite_Success(t *testing.T) {
	f := newHandlersFixture()
	f.save.favouriteID = 99

	rec := f.do(http.MethodPost, "/api/v1/cats/favourites", `{"id":"z","url":"https://cdn2.thecatapi.com/images/z.jpg"}`)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp SaveFavouriteResponseDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(99), resp.FavouriteID)

	// на входе workflow'а сущность из ленты: favouriteId всегда nil
	assert.Nil(t, f.save.lastCat.FavouriteID)

	require.Len(t, f.notifier.notifications, 1)
	assert.Equal(t, domain.NotificationSuccess, f.notifier.notifications[0].Type)
}

func TestHandleSaveFavourite_DuplicateMapsToConflict(t *testing.T) {
	f := newHandlersFixture()
	f.save.err = domain.ErrAlreadyFavourite

	rec := f.do(http.MethodPost, "/api/v1/cats/favourites", `{"id":"abc"}`)

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Empty(t, f.notifier.notifications)
}

func TestHandleDeleteFavourite_NotFound(t *testing.T) {
	f := newHandlersFixture()

	rec := f.do(http.MethodDelete, "/api/v1/cats/favourites/42", "")

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, 0, f.delete.calls)
}

func TestHandleDeleteFavourite_Success(t *testing.T) {
	f := newHandlersFixture()
	favouriteID := int64(42)
	f.state.SetFavourites([]domain.CatEntity{
		{ID: "b", URL: "https://cdn2.thecatapi.com/images/b.jpg", FavouriteID: &favouriteID},
	})

	rec := f.do(http.MethodDelete, "/api/v1/cats/favourites/42", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, f.delete.calls)
	require.NotNil(t, f.delete.lastCat.FavouriteID)
	assert.Equal(t, int64(42), *f.delete.lastCat.FavouriteID)

	require.Len(t, f.notifier.notifications, 1)
	assert.Equal(t, domain.NotificationSuccess, f.notifier.notifications[0].Type)
}

func TestHandleRetry_RunsBothLoads(t *testing.T) {
	f := newHandlersFixture()

	rec := f.do(http.MethodPost, "/api/v1/cats/retry", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, f.loadRandom.calls)
	assert.Equal(t, 1, f.loadFavs.calls)
}

func TestHandleFavouriteStatus_KeyedByImageID(t *testing.T) {
	f := newHandlersFixture()
	favouriteID := int64(1)
	f.state.SetFavourites([]domain.CatEntity{
		{ID: "x", URL: "https://cdn2.thecatapi.com/images/x.jpg", FavouriteID: &favouriteID},
	})

	rec := f.do(http.MethodGet, "/api/v1/cats/x/favourite-status", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var status FavouriteStatusResponseDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.True(t, status.IsFavourite)

	rec = f.do(http.MethodGet, "/api/v1/cats/y/favourite-status", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.False(t, status.IsFavourite)
}
