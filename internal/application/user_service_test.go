package application

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seuhd/campuscoffee/internal/domain"
	"github.com/seuhd/campuscoffee/internal/domain/entity"
	"github.com/seuhd/campuscoffee/internal/domain/repository"
)

// fakeRepo is an in-memory UserRepository honoring the same contract as
// the postgres implementation: id assignment, timestamp stamping, and
// uniqueness enforcement at save time.
type fakeRepo struct {
	users     map[int64]entity.User
	nextID    int64
	order     []int64
	saveCalls int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: make(map[int64]entity.User), nextID: 1}
}

func (f *fakeRepo) FindAll(_ context.Context) ([]entity.User, error) {
	out := make([]entity.User, 0, len(f.order))
	for _, id := range f.order {
		if u, ok := f.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeRepo) FindByID(_ context.Context, id int64) (*entity.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, domain.NotFoundByID(id)
	}
	return &u, nil
}

func (f *fakeRepo) FindByName(_ context.Context, name string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Name == name {
			return &u, nil
		}
	}
	return nil, domain.NotFoundByName(name)
}

func (f *fakeRepo) Save(_ context.Context, u *entity.User) (*entity.User, error) {
	f.saveCalls++
	for id, existing := range f.users {
		if u.ID != nil && id == *u.ID {
			continue
		}
		if existing.Name == u.Name {
			return nil, &domain.DuplicationError{Field: "name", Value: u.Name}
		}
		if existing.EmailAddress == u.EmailAddress {
			return nil, &domain.DuplicationError{Field: "emailAddress", Value: u.EmailAddress}
		}
	}

	now := time.Now().UTC()
	saved := *u
	if u.ID == nil {
		id := f.nextID
		f.nextID++
		saved.ID = &id
		saved.CreatedAt = now
		saved.UpdatedAt = now
		f.order = append(f.order, id)
	} else {
		existing, ok := f.users[*u.ID]
		if !ok {
			return nil, domain.NotFoundByID(*u.ID)
		}
		saved.CreatedAt = existing.CreatedAt
		saved.UpdatedAt = now
	}
	f.users[*saved.ID] = saved
	return &saved, nil
}

func (f *fakeRepo) DeleteByID(_ context.Context, id int64) error {
	if _, ok := f.users[id]; !ok {
		return domain.NotFoundByID(id)
	}
	delete(f.users, id)
	return nil
}

func (f *fakeRepo) Clear(_ context.Context) error {
	f.users = make(map[int64]entity.User)
	f.order = nil
	return nil
}

func (f *fakeRepo) ResetIdentitySequence(_ context.Context) error {
	f.nextID = 1
	return nil
}

var _ repository.UserRepository = (*fakeRepo)(nil)

func newTestService() (*Service, *fakeRepo) {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	repo := newFakeRepo()
	return NewService(repo, logger), repo
}

func testUser(name, email string) *entity.User {
	return &entity.User{
		Name:         name,
		EmailAddress: email,
		FirstName:    "Jane",
		LastName:     "Doe",
	}
}

func TestUpsert_CreateAssignsIDAndTimestamps(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Upsert(ctx, testUser("jdoe", "j@x.com"))
	require.NoError(t, err)
	require.NotNil(t, created.ID)
	assert.Equal(t, int64(1), *created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.False(t, created.UpdatedAt.IsZero())
	assert.False(t, created.UpdatedAt.Before(created.CreatedAt))
}

func TestUpsert_CreateNeverReusesID(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	first, err := svc.Upsert(ctx, testUser("jdoe", "j@x.com"))
	require.NoError(t, err)
	second, err := svc.Upsert(ctx, testUser("msmith", "m@x.com"))
	require.NoError(t, err)

	assert.NotEqual(t, *first.ID, *second.ID)
}

func TestUpsert_DuplicateNamePropagates(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Upsert(ctx, testUser("jdoe", "j@x.com"))
	require.NoError(t, err)

	_, err = svc.Upsert(ctx, testUser("jdoe", "other@x.com"))
	var dup *domain.DuplicationError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "name", dup.Field)
}

func TestUpsert_DuplicateEmailPropagates(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Upsert(ctx, testUser("jdoe", "j@x.com"))
	require.NoError(t, err)

	_, err = svc.Upsert(ctx, testUser("other", "j@x.com"))
	var dup *domain.DuplicationError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "emailAddress", dup.Field)
}

func TestUpsert_UpdateExisting(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Upsert(ctx, testUser("jdoe", "j@x.com"))
	require.NoError(t, err)

	changed := *created
	changed.FirstName = "Janet"
	updated, err := svc.Upsert(ctx, &changed)
	require.NoError(t, err)

	assert.Equal(t, *created.ID, *updated.ID)
	assert.Equal(t, "Janet", updated.FirstName)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))
}

func TestUpsert_UpdateNonexistentFailsWithoutCreating(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	id := int64(999)
	u := testUser("ghost", "g@x.com")
	u.ID = &id

	_, err := svc.Upsert(ctx, u)
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)

	// The existence check must fail before the store is touched.
	assert.Zero(t, repo.saveCalls)
	assert.Empty(t, repo.users)
}

func TestGetByID_IdempotentRead(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Upsert(ctx, testUser("jdoe", "j@x.com"))
	require.NoError(t, err)

	a, err := svc.GetByID(ctx, *created.ID)
	require.NoError(t, err)
	b, err := svc.GetByID(ctx, *created.ID)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGetByID_NotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.GetByID(context.Background(), 42)
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	require.NotNil(t, nf.ID)
	assert.Equal(t, int64(42), *nf.ID)
}

func TestGetByName(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Upsert(ctx, testUser("jdoe", "j@x.com"))
	require.NoError(t, err)

	found, err := svc.GetByName(ctx, "jdoe")
	require.NoError(t, err)
	assert.Equal(t, *created.ID, *found.ID)

	_, err = svc.GetByName(ctx, "nobody")
	var nf *domain.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestListAll_InsertionOrder(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Upsert(ctx, testUser("jdoe", "j@x.com"))
	require.NoError(t, err)
	_, err = svc.Upsert(ctx, testUser("msmith", "m@x.com"))
	require.NoError(t, err)

	users, err := svc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "jdoe", users[0].Name)
	assert.Equal(t, "msmith", users[1].Name)
}

func TestDelete_SecondDeleteFails(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Upsert(ctx, testUser("jdoe", "j@x.com"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, *created.ID))

	_, err = svc.GetByID(ctx, *created.ID)
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)

	err = svc.Delete(ctx, *created.ID)
	assert.ErrorAs(t, err, &nf)
}

func TestClear_RemovesAllAndRestartsSequence(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Upsert(ctx, testUser("jdoe", "j@x.com"))
	require.NoError(t, err)
	_, err = svc.Upsert(ctx, testUser("msmith", "m@x.com"))
	require.NoError(t, err)

	require.NoError(t, svc.Clear(ctx))

	users, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)

	recreated, err := svc.Upsert(ctx, testUser("fresh", "f@x.com"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), *recreated.ID)
}
