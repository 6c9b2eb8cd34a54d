package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"microblog/internal/domain/entity"
	repo "microblog/internal/domain/repository"
	"microblog/internal/infrastructure/session"
	"microblog/pkg/avatar"
	"microblog/pkg/helpers"
)

var (
	ErrUsernameTaken = errors.New("username already taken")
	ErrUserNotFound  = errors.New("user not found")
)

// UserService owns registration, login, and session lifecycle. Sessions
// are server-side records; the signed token handed to the browser only
// names the user id and session id.
type UserService struct {
	Users    repo.UserRepository
	Sessions session.Store
	JWT      *helpers.JWTManager
	Avatars  *avatar.Cache
	Logger   *logrus.Logger
}

func NewUserService(users repo.UserRepository, sessions session.Store, jwt *helpers.JWTManager, avatars *avatar.Cache, logger *logrus.Logger) *UserService {
	return &UserService{Users: users, Sessions: sessions, JWT: jwt, Avatars: avatars, Logger: logger}
}

// Register creates a new user and materializes the avatar for the
// username's first letter. Uniqueness is enforced atomically by the
// store, so a concurrent duplicate comes back as ErrUsernameTaken
// rather than a second record.
func (s *UserService) Register(ctx context.Context, username string) (*entity.User, error) {
	letter := avatar.LetterFor(username)
	if _, err := s.Avatars.Materialize(letter); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("letter", string(letter)).Warn("avatar materialize failed")
	}
	u := &entity.User{
		ID:          uuid.NewString(),
		Username:    username,
		AvatarURL:   "/avatar/" + username,
		MemberSince: time.Now(),
	}
	if err := s.Users.Create(u); err != nil {
		if errors.Is(err, repo.ErrUsernameTaken) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": u.ID, "username": u.Username}).Info("user registered")
	}
	return u, nil
}

// Login resolves a username to its user. Unknown usernames are an
// error; login never creates an account.
func (s *UserService) Login(ctx context.Context, username string) (*entity.User, error) {
	u, err := s.Users.GetByUsername(username)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// StartSession binds a fresh session to the user and returns the signed
// token for the cookie.
func (s *UserService) StartSession(ctx context.Context, u *entity.User) (string, time.Time, error) {
	sid := uuid.NewString()
	rec := session.Record{SID: sid, UserID: u.ID, LoggedIn: true, CreatedAt: time.Now()}
	if err := s.Sessions.Put(ctx, rec, s.JWT.SessionTTL); err != nil {
		return "", time.Time{}, err
	}
	token, exp, err := s.JWT.GenerateSessionToken(u.ID, sid)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, exp, nil
}

// EndSession deletes the server-side record; the cookie token becomes
// useless even before it expires.
func (s *UserService) EndSession(ctx context.Context, sid string) error {
	return s.Sessions.Delete(ctx, sid)
}

// CurrentUser resolves the session's bound user id. The gate is
// advisory: a session can outlive its user only if the store were ever
// emptied, and callers treat that as not-logged-in.
func (s *UserService) CurrentUser(userID string) (*entity.User, error) {
	u, err := s.Users.GetByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}
