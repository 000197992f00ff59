package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"trivia-quiz/internal/domain"
)

const uniqueViolation = "23505"

// UserStore keeps users in the users table; store order is insertion order (id).
type UserStore struct {
	pool *pgxpool.Pool
}

func NewUserStore(pool *pgxpool.Pool) *UserStore {
	return &UserStore{pool: pool}
}

func (s *UserStore) List(ctx context.Context) ([]domain.User, error) {
	rows, err := s.pool.Query(ctx, `SELECT username, password_hash, points FROM users ORDER BY id`)
	if err != nil {
		return nil, unavailable("list users", err)
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.Username, &u.Password, &u.Points); err != nil {
			return nil, unavailable("scan user", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("list users", err)
	}
	return users, nil
}

func (s *UserStore) Get(ctx context.Context, username string) (domain.User, error) {
	var u domain.User
	err := s.pool.QueryRow(ctx, `SELECT username, password_hash, points FROM users WHERE username=$1`, username).
		Scan(&u.Username, &u.Password, &u.Points)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.User{}, unavailable("get user", err)
	}
	return u, nil
}

func (s *UserStore) Create(ctx context.Context, user domain.User) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO users (username, password_hash, points) VALUES ($1, $2, $3)`,
		user.Username, user.Password, user.Points)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return domain.ErrDuplicateUser
	}
	if err != nil {
		return unavailable("create user", err)
	}
	return nil
}

func (s *UserStore) AddPoints(ctx context.Context, username string, points int) (domain.User, error) {
	if points <= 0 {
		return s.Get(ctx, username)
	}
	var u domain.User
	err := s.pool.QueryRow(ctx,
		`UPDATE users SET points = points + $2 WHERE username=$1 RETURNING username, password_hash, points`,
		username, points).Scan(&u.Username, &u.Password, &u.Points)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.User{}, unavailable("add points", err)
	}
	return u, nil
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", domain.ErrStoreUnavailable, op, err)
}
