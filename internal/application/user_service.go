package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/seuhd/campuscoffee/internal/domain"
	"github.com/seuhd/campuscoffee/internal/domain/entity"
	repo "github.com/seuhd/campuscoffee/internal/domain/repository"
)

// Service holds the business logic for the user domain. It owns the
// create-vs-update decision and the existence check before updates; the
// uniqueness constraints themselves live in the store.
type Service struct {
	Repo   repo.UserRepository
	Logger *logrus.Logger
}

func NewService(repo repo.UserRepository, logger *logrus.Logger) *Service {
	return &Service{Repo: repo, Logger: logger}
}

// ListAll returns every persisted user in insertion order.
func (s *Service) ListAll(ctx context.Context) ([]entity.User, error) {
	s.Logger.Debug("retrieving all users")
	return s.Repo.FindAll(ctx)
}

// GetByID fails with *domain.NotFoundError if no user has the id.
func (s *Service) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	s.Logger.WithField("user_id", id).Debug("retrieving user by id")
	return s.Repo.FindByID(ctx, id)
}

// GetByName fails with *domain.NotFoundError if no user has the name.
func (s *Service) GetByName(ctx context.Context, name string) (*entity.User, error) {
	s.Logger.WithField("name", name).Debug("retrieving user by name")
	return s.Repo.FindByName(ctx, name)
}

// Upsert creates the user when it carries no ID and updates the
// existing record otherwise. An update of an unknown ID fails with
// *domain.NotFoundError before anything is written; without this
// explicit read the store's overwrite semantics could silently create a
// record under a caller-chosen id. Uniqueness violations from the store
// propagate unchanged as *domain.DuplicationError.
//
// The existence check and the save are not one transaction; a
// concurrent delete in between surfaces as the store's NotFoundError at
// save time, which is the same typed outcome the caller would have seen
// from the check itself.
func (s *Service) Upsert(ctx context.Context, user *entity.User) (*entity.User, error) {
	if !user.Persisted() {
		s.Logger.WithField("name", user.Name).Info("creating new user")
	} else {
		s.Logger.WithField("user_id", *user.ID).Info("updating user")
		if _, err := s.Repo.FindByID(ctx, *user.ID); err != nil {
			return nil, err
		}
	}

	saved, err := s.Repo.Save(ctx, user)
	if err != nil {
		var dup *domain.DuplicationError
		if errors.As(err, &dup) {
			s.Logger.WithFields(logrus.Fields{
				"name":  user.Name,
				"field": dup.Field,
			}).Error("upsert rejected by uniqueness constraint")
		}
		return nil, err
	}
	s.Logger.WithField("user_id", *saved.ID).Info("upserted user")
	return saved, nil
}

// Delete removes the user permanently. A second delete of the same id
// fails with *domain.NotFoundError.
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.Logger.WithField("user_id", id).Info("deleting user")
	if err := s.Repo.DeleteByID(ctx, id); err != nil {
		return err
	}
	s.Logger.WithField("user_id", id).Info("deleted user")
	return nil
}

// Clear removes all users and restarts the identity sequence so reset
// workflows see ids starting from 1 again. Used by the dev seed loader
// and tests.
func (s *Service) Clear(ctx context.Context) error {
	s.Logger.Warn("clearing all user data")
	if err := s.Repo.Clear(ctx); err != nil {
		return err
	}
	return s.Repo.ResetIdentitySequence(ctx)
}
