package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/courtside/internal/domain"
)

func TestUpdateBuilder(t *testing.T) {
	t.Run("only present fields", func(t *testing.T) {
		name := "Press break"
		var status *string

		b := NewUpdate("game_plans", "plan_name", "status")
		SetIfPresent(b, "plan_name", &name)
		SetIfPresent(b, "status", status)
		b.SetRaw("updated_date = NOW()")

		sql, args, err := b.Build("plan_id", int64(4))
		require.NoError(t, err)
		assert.Equal(t, "UPDATE game_plans SET plan_name = $1, updated_date = NOW() WHERE plan_id = $2", sql)
		assert.Equal(t, []any{"Press break", int64(4)}, args)
		assert.Equal(t, 1, b.Len())
	})

	t.Run("raw only", func(t *testing.T) {
		sql, args, err := NewUpdate("game_plans").SetRaw("updated_date = NOW()").Build("plan_id", 1)
		require.NoError(t, err)
		assert.Equal(t, "UPDATE game_plans SET updated_date = NOW() WHERE plan_id = $1", sql)
		assert.Equal(t, []any{1}, args)
	})

	t.Run("column outside allow list", func(t *testing.T) {
		b := NewUpdate("users", "email").Set("role", "admin")
		_, _, err := b.Build("user_id", 1)
		assert.Error(t, err)
	})

	t.Run("empty", func(t *testing.T) {
		_, _, err := NewUpdate("users", "email").Build("user_id", 1)
		assert.Error(t, err)
	})
}

func TestFilter(t *testing.T) {
	f := NewFilter()
	assert.Equal(t, "", f.Where())
	assert.Equal(t, "", f.And())

	f.Add("p.age >= ?", 20).Add("p.current_salary BETWEEN ? AND ?", 1.0, 2.0)
	limit := f.Arg(10)

	assert.Equal(t, " WHERE p.age >= $1 AND p.current_salary BETWEEN $2 AND $3", f.Where())
	assert.Equal(t, "$4", limit)
	assert.Equal(t, []any{20, 1.0, 2.0, 10}, f.Args())

	seeded := NewFilter(int64(3))
	seeded.Add("g.season = ?", "2023-24")
	assert.Equal(t, " AND g.season = $2", seeded.And())
	assert.Equal(t, []any{int64(3), "2023-24"}, seeded.Args())
}

func TestTranslate(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind error
	}{
		{"unique", &pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"}, domain.ErrConflict},
		{"check", &pgconn.PgError{Code: "23514", ConstraintName: "chk_rating"}, domain.ErrInvalid},
		{"foreign key", &pgconn.PgError{Code: "23503", ConstraintName: "fk_team"}, domain.ErrNotFound},
		{"not null", &pgconn.PgError{Code: "23502", ColumnName: "plan_name"}, domain.ErrInvalid},
		{"bad text", &pgconn.PgError{Code: "22P02"}, domain.ErrInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("inserting: %w", tt.err)
			assert.ErrorIs(t, Translate(wrapped), tt.kind)
		})
	}

	plain := errors.New("connection reset")
	assert.Same(t, plain, Translate(plain))
}

func TestIsUniqueViolation(t *testing.T) {
	err := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "uq_data_loads_active"})
	assert.True(t, IsUniqueViolation(err))
	assert.True(t, IsUniqueViolation(err, "uq_data_loads_active"))
	assert.False(t, IsUniqueViolation(err, "users_username_key"))
	assert.False(t, IsUniqueViolation(errors.New("x")))
	assert.True(t, IsNoRows(fmt.Errorf("get: %w", pgx.ErrNoRows)))
}

func TestUpdateBuilder_BuildWhere(t *testing.T) {
	jersey := 23
	b := NewUpdate("teams_players", "jersey_num", "left_date")
	SetIfPresent(b, "jersey_num", &jersey)

	sql, args, err := b.BuildWhere("team_id = ? AND player_id = ? AND left_date IS NULL", int64(1), int64(9))
	require.NoError(t, err)
	assert.Equal(t, "UPDATE teams_players SET jersey_num = $1 WHERE team_id = $2 AND player_id = $3 AND left_date IS NULL", sql)
	assert.Equal(t, []any{23, int64(1), int64(9)}, args)
}
