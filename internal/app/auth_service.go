package app

import (
	"errors"
	"strings"
	"time"

	"gotodo/internal/model"
	"gotodo/internal/pkg/jwtutil"
	"gotodo/internal/pkg/passhash"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrUsernameExists    = errors.New("username already exists")
	ErrInvalidCredential = errors.New("invalid username or password")
	ErrUserNotFound      = errors.New("user not found")
	ErrForbidden         = errors.New("operation not allowed")
	ErrWeakPassword      = errors.New("new password is too short")
)

const minCredentialLen = 6

// UserStore is the slice of the user repository the auth service consumes.
type UserStore interface {
	Create(user *model.User) error
	GetByUsername(username string) (*model.User, error)
	ExistsByUsername(username string) (bool, error)
	UpdatePassword(username, passwordHash string) error
}

type AuthService struct {
	users         UserStore
	jwtSecret     string
	jwtExpiration time.Duration
	bcryptCost    int
}

type RegisterInput struct {
	Username string
	Password string
	Name     string
}

type LoginResult struct {
	Token    string
	Username string
}

func NewAuthService(users UserStore, jwtSecret string, jwtExpiration time.Duration, bcryptCost int) *AuthService {
	return &AuthService{
		users:         users,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
		bcryptCost:    bcryptCost,
	}
}

// Register creates a new user and returns the stored username.
func (s *AuthService) Register(input RegisterInput) (string, error) {
	username := strings.TrimSpace(input.Username)
	password := strings.TrimSpace(input.Password)
	name := strings.TrimSpace(input.Name)

	if len(username) < minCredentialLen || len(password) < minCredentialLen || name == "" {
		return "", ErrInvalidInput
	}

	exists, err := s.users.ExistsByUsername(username)
	if err != nil {
		return "", err
	}
	if exists {
		return "", ErrUsernameExists
	}

	hash, err := passhash.Hash(password, s.bcryptCost)
	if err != nil {
		return "", err
	}

	user := &model.User{
		Username:     username,
		Name:         name,
		PasswordHash: hash,
	}
	if err := s.users.Create(user); err != nil {
		return "", err
	}
	return user.Username, nil
}

// Login verifies credentials and issues a bearer token. Unknown usernames and
// wrong passwords fail with the same error so usernames cannot be enumerated.
func (s *AuthService) Login(username, password string) (*LoginResult, error) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	if username == "" || password == "" {
		return nil, ErrInvalidInput
	}

	user, err := s.users.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredential
	}

	match, err := passhash.Verify(password, user.PasswordHash)
	if err != nil {
		return nil, err
	}
	if !match {
		return nil, ErrInvalidCredential
	}

	token, err := jwtutil.GenerateToken(s.jwtSecret, s.jwtExpiration, user.ID, user.Username)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, Username: user.Username}, nil
}

// ChangePassword rotates the password of targetUsername. authUsername is the
// identity from the caller's verified token, never from the request body; a
// user may only rotate their own credential.
func (s *AuthService) ChangePassword(authUsername, targetUsername, currentPassword, newPassword string) error {
	targetUsername = strings.TrimSpace(targetUsername)
	currentPassword = strings.TrimSpace(currentPassword)
	newPassword = strings.TrimSpace(newPassword)
	if targetUsername == "" || currentPassword == "" || newPassword == "" {
		return ErrInvalidInput
	}

	if authUsername != targetUsername {
		return ErrForbidden
	}

	user, err := s.users.GetByUsername(targetUsername)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	match, err := passhash.Verify(currentPassword, user.PasswordHash)
	if err != nil {
		return err
	}
	if !match {
		return ErrInvalidCredential
	}

	if len(newPassword) < minCredentialLen {
		return ErrWeakPassword
	}

	hash, err := passhash.Hash(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(targetUsername, hash)
}
