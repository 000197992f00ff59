// Package file stores users in a single JSON document that is read fully and
// rewritten fully on every mutation.
package file

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"trivia-quiz/internal/domain"
)

type document struct {
	Data *[]domain.User `json:"data"`
}

// UserStore is a JSON flat-file implementation of app.UserRepository.
// Mutations are serialized within the process; concurrent processes sharing
// one file are not coordinated.
type UserStore struct {
	path string
	mu   sync.Mutex
}

func NewUserStore(path string) *UserStore {
	return &UserStore{path: path}
}

// Init creates an empty store at path unless a file already exists there.
func Init(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return false, err
		}
	}
	if err := writeDocument(path, []domain.User{}); err != nil {
		return false, err
	}
	return true, nil
}

func (s *UserStore) List(_ context.Context) ([]domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

func (s *UserStore) Get(_ context.Context, username string) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	users, err := s.read()
	if err != nil {
		return domain.User{}, err
	}
	for _, u := range users {
		if u.Username == username {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrNotFound
}

func (s *UserStore) Create(_ context.Context, user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	users, err := s.read()
	if err != nil {
		return err
	}
	for _, u := range users {
		if u.Username == user.Username {
			return domain.ErrDuplicateUser
		}
	}
	return s.write(append(users, user))
}

func (s *UserStore) AddPoints(_ context.Context, username string, points int) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	users, err := s.read()
	if err != nil {
		return domain.User{}, err
	}
	for i := range users {
		if users[i].Username != username {
			continue
		}
		if points > 0 {
			users[i].Points += points
		}
		if err := s.write(users); err != nil {
			return domain.User{}, err
		}
		return users[i], nil
	}
	return domain.User{}, domain.ErrNotFound
}

func (s *UserStore) read() ([]domain.User, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", domain.ErrStoreUnavailable, s.path, err)
	}
	if doc.Data == nil {
		return nil, fmt.Errorf("%w: %s has no data list", domain.ErrStoreUnavailable, s.path)
	}
	return *doc.Data, nil
}

func (s *UserStore) write(users []domain.User) error {
	if err := writeDocument(s.path, users); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

func writeDocument(path string, users []domain.User) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(document{Data: &users}); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
