// Package testutil provides helpers shared by the package test suites:
// environment gating for integration tests, model factories, and an
// in-memory store that stands in for the Postgres repository.
package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskhive/taskhive/internal/auth"
	"github.com/taskhive/taskhive/internal/model"
)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

// ResetSchema empties the users and tasks tables between integration tests.
// The schema itself is managed by the embedded migrations.
func ResetSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, "TRUNCATE tasks, users"); err != nil {
		return fmt.Errorf("truncate tables: %w", err)
	}
	return nil
}

// ============================================================================
// Test Data Factories
// ============================================================================

// NewTestUser creates a user with the given credentials, hashing the
// password for real so login flows work against it.
func NewTestUser(t testing.TB, username, password string) *model.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return &model.User{
		ID:           UniqueID("user"),
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
}

// NewTestTask creates a test task with sensible defaults.
func NewTestTask(t testing.TB, ownerID, title string) *model.Task {
	t.Helper()
	now := time.Now().UTC()
	return &model.Task{
		ID:        UniqueID("task"),
		Title:     title,
		Status:    model.TaskStatusPending,
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// UniqueUsername generates a unique username for tests.
func UniqueUsername(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

// UniqueID generates a unique ID for tests.
func UniqueID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}
