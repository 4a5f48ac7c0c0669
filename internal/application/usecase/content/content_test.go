package content

import (
	"context"
	"io"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SubhajitChakrabort/ProfilePage/internal/application/service"
	"github.com/SubhajitChakrabort/ProfilePage/internal/domain/content"
	"github.com/SubhajitChakrabort/ProfilePage/internal/domain/media"
	"github.com/SubhajitChakrabort/ProfilePage/internal/domain/user"
	"github.com/SubhajitChakrabort/ProfilePage/pkg/apperror"
	"github.com/SubhajitChakrabort/ProfilePage/pkg/logger"
)

type memStore struct {
	files map[string][]byte
}

func newMemStore() *memStore { return &memStore{files: map[string][]byte{}} }

func (s *memStore) Save(ctx context.Context, name string, r io.Reader) (int64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	s.files[name] = data
	return int64(len(data)), nil
}

func (s *memStore) Delete(name string) error {
	delete(s.files, name)
	return nil
}

func (s *memStore) Exists(name string) bool { _, ok := s.files[name]; return ok }
func (s *memStore) Path(name string) string { return name }
func (s *memStore) Root() string            { return "." }

func (s *memStore) List() ([]string, error) {
	names := make([]string, 0, len(s.files))
	for n := range s.files {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}

type memEntryRepo struct {
	nextID  int64
	entries map[int64]*content.Entry
}

func newMemEntryRepo() *memEntryRepo { return &memEntryRepo{entries: map[int64]*content.Entry{}} }

func (r *memEntryRepo) Insert(ctx context.Context, cat content.Category, e *content.Entry) (int64, error) {
	r.nextID++
	e.ID = r.nextID
	r.entries[e.ID] = e
	return e.ID, nil
}

func (r *memEntryRepo) Update(ctx context.Context, cat content.Category, e *content.Entry, withFile bool) error {
	cur, ok := r.entries[e.ID]
	if !ok || cur.UserID != e.UserID {
		return content.ErrEntryNotFound
	}
	cur.Values = e.Values
	if withFile {
		cur.FilePath = e.FilePath
		cur.FileType = e.FileType
	}
	return nil
}

func (r *memEntryRepo) FilePath(ctx context.Context, cat content.Category, id, userID int64) (*string, error) {
	cur, ok := r.entries[id]
	if !ok || cur.UserID != userID {
		return nil, content.ErrEntryNotFound
	}
	return cur.FilePath, nil
}

func (r *memEntryRepo) Delete(ctx context.Context, cat content.Category, id, userID int64) error {
	cur, ok := r.entries[id]
	if !ok || cur.UserID != userID {
		return content.ErrEntryNotFound
	}
	delete(r.entries, id)
	return nil
}

type memImageRepo struct {
	nextID int64
	skills map[int64]int64 // skill id -> owning user id
	images map[int64]*content.SkillImage
}

func newMemImageRepo() *memImageRepo {
	return &memImageRepo{skills: map[int64]int64{}, images: map[int64]*content.SkillImage{}}
}

func (r *memImageRepo) SkillOwned(ctx context.Context, skillID, userID int64) (bool, error) {
	owner, ok := r.skills[skillID]
	return ok && owner == userID, nil
}

func (r *memImageRepo) MaxDisplayOrder(ctx context.Context, skillID int64) (int, error) {
	max := -1
	for _, img := range r.images {
		if img.SkillID == skillID && img.DisplayOrder > max {
			max = img.DisplayOrder
		}
	}
	return max, nil
}

func (r *memImageRepo) Insert(ctx context.Context, img *content.SkillImage) (int64, error) {
	r.nextID++
	img.ID = r.nextID
	cp := *img
	r.images[img.ID] = &cp
	return img.ID, nil
}

func (r *memImageRepo) ListBySkill(ctx context.Context, skillID int64) ([]*content.SkillImage, error) {
	var out []*content.SkillImage
	for _, img := range r.images {
		if img.SkillID == skillID {
			out = append(out, img)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DisplayOrder != out[j].DisplayOrder {
			return out[i].DisplayOrder < out[j].DisplayOrder
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *memImageRepo) UpdateOrder(ctx context.Context, skillID, imageID int64, displayOrder int) error {
	if img, ok := r.images[imageID]; ok && img.SkillID == skillID {
		img.DisplayOrder = displayOrder
	}
	return nil
}

func (r *memImageRepo) FindOwned(ctx context.Context, imageID, userID int64) (*content.SkillImage, error) {
	img, ok := r.images[imageID]
	if !ok {
		return nil, content.ErrImageNotFound
	}
	if r.skills[img.SkillID] != userID {
		return nil, content.ErrImageNotFound
	}
	return img, nil
}

func (r *memImageRepo) Delete(ctx context.Context, imageID int64) error {
	delete(r.images, imageID)
	return nil
}

type noUserRepo struct{ user.Repository }

func (noUserRepo) FindIDByProfileID(ctx context.Context, profileID string) (int64, error) {
	return 0, user.ErrUserNotFound
}

func newTestUseCase(entries *memEntryRepo, images *memImageRepo, store *memStore) *ContentUseCase {
	resolver := service.NewIdentityResolver(noUserRepo{})
	return NewContentUseCase(entries, images, store, resolver, nil, logger.NewNop())
}

func storedFile(name string) *media.StoredFile {
	return &media.StoredFile{Name: name, MimeType: "image/png", Type: media.FileTypeImage}
}

func hobbies(t *testing.T) content.Category {
	cat, ok := content.CategoryByName("hobbies")
	require.True(t, ok)
	return cat
}

func TestAddEntry_AppliesDefaults(t *testing.T) {
	entries, store := newMemEntryRepo(), newMemStore()
	uc := newTestUseCase(entries, newMemImageRepo(), store)

	id, err := uc.AddEntry(context.Background(), AddEntryInput{
		Category: hobbies(t),
		Values:   map[string]string{"title": "Chess"},
	})
	require.NoError(t, err)

	e := entries.entries[id]
	assert.Equal(t, "Chess", e.Values["title"])
	assert.Equal(t, "fa-solid fa-heart", e.Values["icon"])
	assert.Equal(t, user.DefaultUserID, e.UserID)
}

func TestCreateThenDelete_LeavesNothing(t *testing.T) {
	entries, store := newMemEntryRepo(), newMemStore()
	uc := newTestUseCase(entries, newMemImageRepo(), store)

	f := storedFile("file-1-000000001.png")
	store.files[f.Name] = []byte("img")

	id, err := uc.AddEntry(context.Background(), AddEntryInput{
		Category:   hobbies(t),
		Values:     map[string]string{"title": "Chess"},
		Attachment: f,
	})
	require.NoError(t, err)

	require.NoError(t, uc.DeleteEntry(context.Background(), hobbies(t), id, ""))
	assert.Empty(t, entries.entries)
	assert.False(t, store.Exists(f.Name))
}

func TestUpdateEntry_ReplacesExactlyTheOldFile(t *testing.T) {
	entries, store := newMemEntryRepo(), newMemStore()
	uc := newTestUseCase(entries, newMemImageRepo(), store)

	old := storedFile("file-1-000000001.png")
	store.files[old.Name] = []byte("old")
	unrelated := "file-9-999999999.png"
	store.files[unrelated] = []byte("keep")

	id, err := uc.AddEntry(context.Background(), AddEntryInput{
		Category:   hobbies(t),
		Values:     map[string]string{"title": "Chess"},
		Attachment: old,
	})
	require.NoError(t, err)

	repl := storedFile("file-2-000000002.png")
	store.files[repl.Name] = []byte("new")
	err = uc.UpdateEntry(context.Background(), UpdateEntryInput{
		Category:   hobbies(t),
		ID:         id,
		Values:     map[string]string{"title": "Go"},
		Attachment: repl,
	})
	require.NoError(t, err)

	assert.False(t, store.Exists(old.Name))
	assert.True(t, store.Exists(repl.Name))
	assert.True(t, store.Exists(unrelated))
	assert.Equal(t, repl.Name, *entries.entries[id].FilePath)
}

func TestUpdateEntry_WithoutFileKeepsReference(t *testing.T) {
	entries, store := newMemEntryRepo(), newMemStore()
	uc := newTestUseCase(entries, newMemImageRepo(), store)

	f := storedFile("file-1-000000001.png")
	store.files[f.Name] = []byte("img")
	id, err := uc.AddEntry(context.Background(), AddEntryInput{
		Category:   hobbies(t),
		Values:     map[string]string{"title": "Chess"},
		Attachment: f,
	})
	require.NoError(t, err)

	err = uc.UpdateEntry(context.Background(), UpdateEntryInput{
		Category: hobbies(t),
		ID:       id,
		Values:   map[string]string{"title": "Go"},
	})
	require.NoError(t, err)

	assert.True(t, store.Exists(f.Name))
	assert.Equal(t, f.Name, *entries.entries[id].FilePath)
	assert.Equal(t, "Go", entries.entries[id].Values["title"])
}

func TestUpdateEntry_UnknownRowIs404(t *testing.T) {
	uc := newTestUseCase(newMemEntryRepo(), newMemImageRepo(), newMemStore())

	err := uc.UpdateEntry(context.Background(), UpdateEntryInput{
		Category: hobbies(t),
		ID:       42,
		Values:   map[string]string{"title": "x"},
	})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestAddSkillImage_OrdersStartAtZero(t *testing.T) {
	images, store := newMemImageRepo(), newMemStore()
	images.skills[1] = user.DefaultUserID
	uc := newTestUseCase(newMemEntryRepo(), images, store)

	a, err := uc.AddSkillImage(context.Background(), AddSkillImageInput{SkillID: 1, Attachment: storedFile("image-a.png")})
	require.NoError(t, err)
	b, err := uc.AddSkillImage(context.Background(), AddSkillImageInput{SkillID: 1, Attachment: storedFile("image-b.png")})
	require.NoError(t, err)

	assert.Equal(t, 0, a.DisplayOrder)
	assert.Equal(t, 1, b.DisplayOrder)
}

func TestAddSkillImage_RequiresFile(t *testing.T) {
	images := newMemImageRepo()
	images.skills[1] = user.DefaultUserID
	uc := newTestUseCase(newMemEntryRepo(), images, newMemStore())

	_, err := uc.AddSkillImage(context.Background(), AddSkillImageInput{SkillID: 1})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestAddSkillImage_UnknownSkillIs404(t *testing.T) {
	uc := newTestUseCase(newMemEntryRepo(), newMemImageRepo(), newMemStore())

	_, err := uc.AddSkillImage(context.Background(), AddSkillImageInput{SkillID: 99, Attachment: storedFile("x.png")})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestReorderSkillImages_PermutationReflectedInList(t *testing.T) {
	images, store := newMemImageRepo(), newMemStore()
	images.skills[1] = user.DefaultUserID
	uc := newTestUseCase(newMemEntryRepo(), images, store)

	a, err := uc.AddSkillImage(context.Background(), AddSkillImageInput{SkillID: 1, Attachment: storedFile("image-a.png")})
	require.NoError(t, err)
	b, err := uc.AddSkillImage(context.Background(), AddSkillImageInput{SkillID: 1, Attachment: storedFile("image-b.png")})
	require.NoError(t, err)

	err = uc.ReorderSkillImages(context.Background(), 1, "", []content.ImageOrder{
		{ID: b.ID, DisplayOrder: 0},
		{ID: a.ID, DisplayOrder: 1},
	})
	require.NoError(t, err)

	list, err := uc.ListSkillImages(context.Background(), 1, "")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, b.ID, list[0].ID)
	assert.Equal(t, a.ID, list[1].ID)
}

func TestDeleteSkillImage_RemovesRowAndFile(t *testing.T) {
	images, store := newMemImageRepo(), newMemStore()
	images.skills[1] = user.DefaultUserID
	uc := newTestUseCase(newMemEntryRepo(), images, store)

	f := storedFile("image-a.png")
	store.files[f.Name] = []byte("img")
	img, err := uc.AddSkillImage(context.Background(), AddSkillImageInput{SkillID: 1, Attachment: f})
	require.NoError(t, err)

	require.NoError(t, uc.DeleteSkillImage(context.Background(), img.ID, ""))
	assert.Empty(t, images.images)
	assert.False(t, store.Exists(f.Name))
}
