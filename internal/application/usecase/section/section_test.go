package section

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SubhajitChakrabort/ProfilePage/internal/application/service"
	"github.com/SubhajitChakrabort/ProfilePage/internal/application/usecase/profile"
	"github.com/SubhajitChakrabort/ProfilePage/internal/domain/section"
	"github.com/SubhajitChakrabort/ProfilePage/internal/domain/user"
	"github.com/SubhajitChakrabort/ProfilePage/pkg/apperror"
	"github.com/SubhajitChakrabort/ProfilePage/pkg/logger"
)

type memSectionRepo struct {
	section.Repository
	owners     map[int64]int64
	itemOwners map[int64]int64
	files      map[int64][]string
	itemFiles  map[int64]*string
}

func (r *memSectionRepo) Owner(ctx context.Context, sectionID int64) (int64, error) {
	uid, ok := r.owners[sectionID]
	if !ok {
		return 0, section.ErrSectionNotFound
	}
	return uid, nil
}

func (r *memSectionRepo) ItemFiles(ctx context.Context, sectionID int64) ([]string, error) {
	return r.files[sectionID], nil
}

func (r *memSectionRepo) Delete(ctx context.Context, id int64) error {
	delete(r.owners, id)
	return nil
}

func (r *memSectionRepo) InsertItem(ctx context.Context, it *section.Item) (int64, error) {
	return 1, nil
}

func (r *memSectionRepo) ItemOwner(ctx context.Context, itemID int64) (int64, error) {
	uid, ok := r.itemOwners[itemID]
	if !ok {
		return 0, section.ErrItemNotFound
	}
	return uid, nil
}

func (r *memSectionRepo) ItemFilePath(ctx context.Context, itemID int64) (*string, error) {
	if _, ok := r.itemOwners[itemID]; !ok {
		return nil, section.ErrItemNotFound
	}
	return r.itemFiles[itemID], nil
}

func (r *memSectionRepo) DeleteItem(ctx context.Context, itemID int64) error {
	delete(r.itemOwners, itemID)
	return nil
}

type stubUserRepo struct {
	user.Repository
	u *user.User
}

func (r *stubUserRepo) FindByID(ctx context.Context, id int64) (*user.User, error) {
	if r.u == nil || r.u.ID != id {
		return nil, user.ErrUserNotFound
	}
	return r.u, nil
}

type recordingCache struct {
	invalidated []string
}

func (c *recordingCache) GetProfile(ctx context.Context, key string) (*profile.View, bool) {
	return nil, false
}

func (c *recordingCache) SetProfile(ctx context.Context, key string, v *profile.View) {}

func (c *recordingCache) Invalidate(ctx context.Context, keys ...string) {
	c.invalidated = append(c.invalidated, keys...)
}

type trackingStore struct {
	deleted []string
}

func (s *trackingStore) Save(ctx context.Context, name string, r io.Reader) (int64, error) {
	return 0, nil
}

func (s *trackingStore) Delete(name string) error {
	s.deleted = append(s.deleted, name)
	return nil
}

func (s *trackingStore) Exists(name string) bool { return false }

func (s *trackingStore) Path(name string) string { return name }

func (s *trackingStore) List() ([]string, error) { return nil, nil }

func (s *trackingStore) Root() string { return "." }

func newTestUseCase(repo *memSectionRepo, cache *recordingCache, store *trackingStore) *SectionUseCase {
	users := &stubUserRepo{u: &user.User{ID: 1, ProfileID: "abc123def456", Username: "ada_l"}}
	resolver := service.NewIdentityResolver(users)
	return NewSectionUseCase(repo, users, store, resolver, cache, nil, logger.NewNop())
}

func TestDeleteSection_InvalidatesCachedProfile(t *testing.T) {
	repo := &memSectionRepo{
		owners: map[int64]int64{5: 1},
		files:  map[int64][]string{5: {"files-1-000000001.png"}},
	}
	cache := &recordingCache{}
	store := &trackingStore{}
	uc := newTestUseCase(repo, cache, store)

	require.NoError(t, uc.Delete(context.Background(), 5))

	assert.ElementsMatch(t, []string{
		profile.CacheKeyProfileID("abc123def456"),
		profile.CacheKeyUsername("ada_l"),
	}, cache.invalidated)
	assert.Equal(t, []string{"files-1-000000001.png"}, store.deleted)
}

func TestDeleteSection_UnknownSectionIs404(t *testing.T) {
	repo := &memSectionRepo{owners: map[int64]int64{}}
	cache := &recordingCache{}
	uc := newTestUseCase(repo, cache, &trackingStore{})

	err := uc.Delete(context.Background(), 99)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperror.ToHTTPStatus(err))
	assert.Empty(t, cache.invalidated)
}

func TestDeleteItem_InvalidatesCachedProfile(t *testing.T) {
	filePath := "files-2-000000002.pdf"
	repo := &memSectionRepo{
		itemOwners: map[int64]int64{9: 1},
		itemFiles:  map[int64]*string{9: &filePath},
	}
	cache := &recordingCache{}
	store := &trackingStore{}
	uc := newTestUseCase(repo, cache, store)

	require.NoError(t, uc.DeleteItem(context.Background(), 9))

	assert.Contains(t, cache.invalidated, profile.CacheKeyProfileID("abc123def456"))
	assert.Contains(t, cache.invalidated, profile.CacheKeyUsername("ada_l"))
	assert.Equal(t, []string{filePath}, store.deleted)
}

func TestAddItem_UnknownSectionIs404(t *testing.T) {
	repo := &memSectionRepo{owners: map[int64]int64{}}
	uc := newTestUseCase(repo, &recordingCache{}, &trackingStore{})

	_, err := uc.AddItem(context.Background(), ItemInput{SectionID: 42, Title: "climbing"})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperror.ToHTTPStatus(err))
}

func TestAddItem_InvalidatesCachedProfile(t *testing.T) {
	repo := &memSectionRepo{owners: map[int64]int64{3: 1}}
	cache := &recordingCache{}
	uc := newTestUseCase(repo, cache, &trackingStore{})

	it, err := uc.AddItem(context.Background(), ItemInput{SectionID: 3, Title: "climbing"})
	require.NoError(t, err)
	assert.NotZero(t, it.ID)
	assert.Contains(t, cache.invalidated, profile.CacheKeyProfileID("abc123def456"))
}
