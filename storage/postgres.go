// Package storage is the Postgres persistence layer for user accounts and
// finished-game stats. Gameplay itself is purely in-memory; nothing here
// sits on the hot path of a round.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"api/domain"
)

type PostgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresRepo(ctx context.Context, connString string) (*PostgresRepo, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}
	return &PostgresRepo{pool: pool}, nil
}

func (r *PostgresRepo) Close() {
	r.pool.Close()
}

func (r *PostgresRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	user := domain.User{Username: username}

	row := r.pool.QueryRow(ctx, "SELECT id, password_hash, is_guest FROM users WHERE username = $1", username)

	err := row.Scan(&user.Id, &user.PasswordHash, &user.IsGuest)
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return user, domain.ErrUserNotFound
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return domain.User{}, err
		default:
			return domain.User{}, fmt.Errorf("%w: %w", domain.ErrUnexpectedDatabase, err)
		}
	}

	return user, nil
}

func (r *PostgresRepo) GetUserById(ctx context.Context, id string) (domain.User, error) {
	user := domain.User{Id: id}

	row := r.pool.QueryRow(ctx, "SELECT username, password_hash, is_guest FROM users WHERE id = $1", id)

	err := row.Scan(&user.Username, &user.PasswordHash, &user.IsGuest)
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return domain.User{}, domain.ErrUserNotFound
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return domain.User{}, err
		default:
			return domain.User{}, fmt.Errorf("%w: %w", domain.ErrUnexpectedDatabase, err)
		}
	}

	return user, nil
}

func (r *PostgresRepo) CreateUser(ctx context.Context, username, passwordHash string) (string, error) {
	row := r.pool.QueryRow(ctx,
		"INSERT INTO users(username, password_hash, is_guest) VALUES($1, $2, false) RETURNING id",
		username, passwordHash)

	var id string
	err := row.Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			// "23505" is the PostgreSQL error code for unique_violation
			if pgErr.Code == "23505" {
				return "", domain.ErrDuplicateUsername
			}
		}

		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", err
		}

		return "", fmt.Errorf("%w: %w", domain.ErrUnexpectedDatabase, err)
	}

	return id, nil
}

// GetOrCreateGuest returns the guest account for a display name, creating
// it on first sight. Guest accounts have no password and no login.
func (r *PostgresRepo) GetOrCreateGuest(ctx context.Context, username string) (domain.User, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users(username, password_hash, is_guest) VALUES($1, '', true)
		ON CONFLICT (username) DO UPDATE SET username = EXCLUDED.username
		RETURNING id, username, is_guest`,
		username)

	var user domain.User
	err := row.Scan(&user.Id, &user.Username, &user.IsGuest)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return domain.User{}, err
		}
		return domain.User{}, fmt.Errorf("%w: %w", domain.ErrUnexpectedDatabase, err)
	}

	return user, nil
}

// RecordGameResult stores one player's outcome of a finished game. Unknown
// user ids (pure guests that never registered) are silently skipped.
func (r *PostgresRepo) RecordGameResult(ctx context.Context, userID string, score int, won bool) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO game_results(user_id, score, won)
		SELECT id, $2, $3 FROM users WHERE id::text = $1`,
		userID, score, won)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return fmt.Errorf("%w: %w", domain.ErrUnexpectedDatabase, err)
	}
	return nil
}

// LeaderboardRow is one entry of the all-time leaderboard.
type LeaderboardRow struct {
	Username    string `json:"username"`
	GamesPlayed int    `json:"games_played"`
	GamesWon    int    `json:"games_won"`
	TotalScore  int64  `json:"total_score"`
	BestScore   int    `json:"best_score"`
}

// GetLeaderboard returns the top players by total score across all games.
func (r *PostgresRepo) GetLeaderboard(ctx context.Context, limit int) ([]LeaderboardRow, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := r.pool.Query(ctx, `
		SELECT u.username,
		       COUNT(g.id),
		       COUNT(g.id) FILTER (WHERE g.won),
		       COALESCE(SUM(g.score), 0),
		       COALESCE(MAX(g.score), 0)
		FROM users u
		JOIN game_results g ON g.user_id = u.id
		GROUP BY u.id, u.username
		ORDER BY COALESCE(SUM(g.score), 0) DESC
		LIMIT $1`,
		limit)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrUnexpectedDatabase, err)
	}
	defer rows.Close()

	var out []LeaderboardRow
	for rows.Next() {
		var row LeaderboardRow
		if err := rows.Scan(&row.Username, &row.GamesPlayed, &row.GamesWon, &row.TotalScore, &row.BestScore); err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrUnexpectedDatabase, err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUnexpectedDatabase, err)
	}

	return out, nil
}
