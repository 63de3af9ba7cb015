package repository

import (
	"context"
	"fmt"
	"time"

	"collegium/database"
	"collegium/models"
)

// SessionRepository implements the service.SessionRepository interface
type SessionRepository struct {
	q queryable
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *database.DB) *SessionRepository {
	return &SessionRepository{q: db.Pool}
}

// newSessionRepositoryWithTx creates a new session repository with a transaction
func newSessionRepositoryWithTx(tx queryable) *SessionRepository {
	return &SessionRepository{q: tx}
}

// Create persists a terminal (done or aborted) session
func (r *SessionRepository) Create(ctx context.Context, session *models.Session) error {
	query := `
		INSERT INTO sessions (discord_id, started_at, duration_min, status, skill, subject, house_role_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		session.DiscordID,
		session.StartedAt,
		session.DurationMin,
		session.Status,
		session.Skill,
		session.Subject,
		session.HouseRoleID,
	).Scan(&session.ID, &session.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create session for user %d: %w", session.DiscordID, err)
	}

	return nil
}

// CountSince counts a user's sessions recorded since the given time
func (r *SessionRepository) CountSince(ctx context.Context, discordID int64, since time.Time) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM sessions
		WHERE discord_id = $1 AND created_at >= $2
	`

	var count int64
	if err := r.q.QueryRow(ctx, query, discordID, since).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count sessions for user %d: %w", discordID, err)
	}

	return count, nil
}

// TopSkillsSince returns skills ranked by focus minutes since the given time
func (r *SessionRepository) TopSkillsSince(ctx context.Context, discordID int64, since time.Time, limit int) ([]*models.SkillMinutes, error) {
	query := `
		SELECT skill, SUM(duration_min) as minutes
		FROM sessions
		WHERE discord_id = $1 AND status = 'done' AND created_at >= $2
		GROUP BY skill
		ORDER BY minutes DESC
		LIMIT $3
	`

	return r.querySkills(ctx, query, discordID, since, limit)
}

// TopSkillsAllTime returns skills ranked by all-time focus minutes
func (r *SessionRepository) TopSkillsAllTime(ctx context.Context, discordID int64, limit int) ([]*models.SkillMinutes, error) {
	query := `
		SELECT skill, SUM(duration_min) as minutes
		FROM sessions
		WHERE discord_id = $1 AND status = 'done'
		GROUP BY skill
		ORDER BY minutes DESC
		LIMIT $2
	`

	return r.querySkills(ctx, query, discordID, limit)
}

func (r *SessionRepository) querySkills(ctx context.Context, query string, args ...any) ([]*models.SkillMinutes, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query skills: %w", err)
	}
	defer rows.Close()

	var skills []*models.SkillMinutes
	for rows.Next() {
		var s models.SkillMinutes
		if err := rows.Scan(&s.Skill, &s.Minutes); err != nil {
			return nil, fmt.Errorf("failed to scan skill row: %w", err)
		}
		skills = append(skills, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate skill rows: %w", err)
	}

	return skills, nil
}
