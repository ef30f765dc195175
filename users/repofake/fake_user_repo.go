package fakeuserrepo

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-session-client/users"
)

var _ users.UserRepo = (*FakeUserRepo)(nil)

type FakeUserRepo struct {
	users    map[string]*users.User
	emailIds map[string]string // email to user id
	lock     sync.RWMutex
}

func NewFakeUserRepo() users.UserRepo {
	return &FakeUserRepo{
		users:    make(map[string]*users.User),
		emailIds: make(map[string]string),
	}
}

func (ur *FakeUserRepo) Upsert(user *users.User) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.DateJoined.IsZero() {
		user.DateJoined = time.Now()
	}
	ur.users[user.ID] = user
	ur.emailIds[user.Email] = user.ID
	return nil
}

func (ur *FakeUserRepo) GetByEmail(email string) (*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	userID, ok := ur.emailIds[email]
	if !ok {
		return nil, errors.New("not found")
	}
	return ur.users[userID], nil
}

func (ur *FakeUserRepo) GetByID(ID string) (*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	u, ok := ur.users[ID]
	if !ok {
		return nil, errors.New("not found")
	}
	return u, nil
}

func (ur *FakeUserRepo) SetLastLogin(userID string) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	u, ok := ur.users[userID]
	if !ok {
		return errors.New("not found")
	}
	u.LastLogin = time.Now()
	return nil
}
