package repository

import (
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
)

func TestNewRequestRepository(t *testing.T) {
	pool := &pgxpool.Pool{}
	repo := NewRequestRepository(pool)
	assert.NotNil(t, repo)
}
