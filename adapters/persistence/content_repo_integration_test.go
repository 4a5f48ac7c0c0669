package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/SubhajitChakrabort/ProfilePage/internal/domain/content"
	"github.com/SubhajitChakrabort/ProfilePage/internal/domain/user"
)

type ContentRepoIntegrationTestSuite struct {
	suite.Suite
	dbPool      *pgxpool.Pool
	pgContainer *postgres.PostgresContainer
	contentRepo content.Repository
	imageRepo   content.SkillImageRepository
	userRepo    user.Repository
	testUser    *user.User
}

func (s *ContentRepoIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	pgContainer, err := postgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:16-alpine"),
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(1*time.Minute),
		),
	)
	if err != nil {
		s.T().Fatalf("Failed to start postgres container: %s", err)
	}
	s.pgContainer = pgContainer

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		s.T().Fatalf("Failed to get connection string: %s", err)
	}

	m, err := migrate.New("file://../../migrations", dsn)
	if err != nil {
		s.T().Fatalf("Failed to create migrate instance: %s", err)
	}
	if err := m.Up(); err != nil {
		s.T().Fatalf("Failed to run migrations: %s", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		s.T().Fatalf("Failed to create pgxpool: %s", err)
	}
	s.dbPool = pool

	s.contentRepo = NewPostgresContentRepo(s.dbPool)
	s.imageRepo = NewPostgresSkillImageRepo(s.dbPool)
	s.userRepo = NewPostgresUserRepo(s.dbPool)

	s.testUser = &user.User{
		ProfileID: "abc123def456",
		Username:  "integration_user",
		Name:      "Integration User",
		IntroText: "test",
	}
	if err := s.userRepo.Create(ctx, s.testUser); err != nil {
		s.T().Fatalf("Failed to seed user: %s", err)
	}
}

func (s *ContentRepoIntegrationTestSuite) TearDownSuite() {
	if s.dbPool != nil {
		s.dbPool.Close()
	}
	if s.pgContainer != nil {
		if err := s.pgContainer.Terminate(context.Background()); err != nil {
			s.T().Fatalf("Failed to terminate postgres container: %s", err)
		}
	}
}

func TestContentRepoIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode.")
	}
	suite.Run(t, new(ContentRepoIntegrationTestSuite))
}

func (s *ContentRepoIntegrationTestSuite) hobbies() content.Category {
	cat, ok := content.CategoryByName("hobbies")
	s.Require().True(ok)
	return cat
}

func (s *ContentRepoIntegrationTestSuite) Test_Insert_Update_Delete_Entry() {
	ctx := context.Background()
	cat := s.hobbies()

	filePath := "file-1-000000001.png"
	fileType := "image"
	id, err := s.contentRepo.Insert(ctx, cat, &content.Entry{
		UserID:   s.testUser.ID,
		Values:   map[string]string{"title": "Chess", "icon": "fa-solid fa-heart"},
		FilePath: &filePath,
		FileType: &fileType,
	})
	s.NoError(err)
	s.NotZero(id)

	got, err := s.contentRepo.FilePath(ctx, cat, id, s.testUser.ID)
	s.NoError(err)
	s.Require().NotNil(got)
	s.Equal(filePath, *got)

	err = s.contentRepo.Update(ctx, cat, &content.Entry{
		ID:     id,
		UserID: s.testUser.ID,
		Values: map[string]string{"title": "Go", "icon": "fa-solid fa-heart"},
	}, false)
	s.NoError(err)

	// File reference survives a no-file update.
	got, err = s.contentRepo.FilePath(ctx, cat, id, s.testUser.ID)
	s.NoError(err)
	s.Require().NotNil(got)
	s.Equal(filePath, *got)

	s.NoError(s.contentRepo.Delete(ctx, cat, id, s.testUser.ID))

	_, err = s.contentRepo.FilePath(ctx, cat, id, s.testUser.ID)
	s.ErrorIs(err, content.ErrEntryNotFound)
}

func (s *ContentRepoIntegrationTestSuite) Test_OwnershipScoping() {
	ctx := context.Background()
	cat := s.hobbies()

	id, err := s.contentRepo.Insert(ctx, cat, &content.Entry{
		UserID: s.testUser.ID,
		Values: map[string]string{"title": "Mine", "icon": "x"},
	})
	s.NoError(err)

	otherUser := s.testUser.ID + 1000

	_, err = s.contentRepo.FilePath(ctx, cat, id, otherUser)
	s.ErrorIs(err, content.ErrEntryNotFound)

	err = s.contentRepo.Update(ctx, cat, &content.Entry{
		ID:     id,
		UserID: otherUser,
		Values: map[string]string{"title": "Stolen", "icon": "x"},
	}, false)
	s.ErrorIs(err, content.ErrEntryNotFound)

	err = s.contentRepo.Delete(ctx, cat, id, otherUser)
	s.ErrorIs(err, content.ErrEntryNotFound)
}

func (s *ContentRepoIntegrationTestSuite) Test_SkillImages_OrderAndCascade() {
	ctx := context.Background()

	skillCat, ok := content.CategoryByName("skills")
	s.Require().True(ok)
	skillID, err := s.contentRepo.Insert(ctx, skillCat, &content.Entry{
		UserID: s.testUser.ID,
		Values: map[string]string{"name": "Go", "icon": "fa-solid fa-star", "color": "cyan-custom"},
	})
	s.NoError(err)

	owned, err := s.imageRepo.SkillOwned(ctx, skillID, s.testUser.ID)
	s.NoError(err)
	s.True(owned)

	maxOrder, err := s.imageRepo.MaxDisplayOrder(ctx, skillID)
	s.NoError(err)
	s.Equal(-1, maxOrder)

	imgA := &content.SkillImage{SkillID: skillID, FilePath: "image-a.png", FileType: "image", DisplayOrder: 0}
	imgB := &content.SkillImage{SkillID: skillID, FilePath: "image-b.png", FileType: "image", DisplayOrder: 1}
	_, err = s.imageRepo.Insert(ctx, imgA)
	s.NoError(err)
	_, err = s.imageRepo.Insert(ctx, imgB)
	s.NoError(err)

	s.NoError(s.imageRepo.UpdateOrder(ctx, skillID, imgA.ID, 1))
	s.NoError(s.imageRepo.UpdateOrder(ctx, skillID, imgB.ID, 0))

	images, err := s.imageRepo.ListBySkill(ctx, skillID)
	s.NoError(err)
	s.Require().Len(images, 2)
	s.Equal(imgB.ID, images[0].ID)
	s.Equal(imgA.ID, images[1].ID)

	// Deleting the skill cascades to its images.
	s.NoError(s.contentRepo.Delete(ctx, skillCat, skillID, s.testUser.ID))
	images, err = s.imageRepo.ListBySkill(ctx, skillID)
	s.NoError(err)
	s.Empty(images)
}

func (s *ContentRepoIntegrationTestSuite) Test_UserRepo_HighlightsReplace() {
	ctx := context.Background()

	s.NoError(s.userRepo.ReplaceHighlights(ctx, s.testUser.ID, []string{"coding", "music"}))
	highlights, err := s.userRepo.ListHighlights(ctx, s.testUser.ID)
	s.NoError(err)
	s.Equal([]string{"coding", "music"}, highlights)

	s.NoError(s.userRepo.ReplaceHighlights(ctx, s.testUser.ID, []string{"mathematics"}))
	highlights, err = s.userRepo.ListHighlights(ctx, s.testUser.ID)
	s.NoError(err)
	s.Equal([]string{"mathematics"}, highlights)
}
