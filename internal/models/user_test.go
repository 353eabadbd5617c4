package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_PasswordNeverMarshaled(t *testing.T) {
	user := User{
		ID:       uuid.New(),
		Username: "alice",
		Nickname: "wonder",
		Password: "$2a$10$secret",
	}

	b, err := json.Marshal(user)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "secret")
	assert.NotContains(t, string(b), "password")
}

func TestUser_PublicFormatsDateJoined(t *testing.T) {
	joined := time.Date(2026, 3, 14, 9, 26, 53, 123456789, time.UTC)
	user := User{
		ID:         uuid.New(),
		Username:   "alice",
		Nickname:   "wonder",
		DateJoined: joined,
	}

	pub := user.Public()
	assert.Equal(t, user.ID, pub.ID)
	assert.Equal(t, "alice", pub.Username)
	assert.Equal(t, "2026-03-14 09:26:53", pub.DateJoined)
}

func TestBeforeCreate_AssignsUUIDOnce(t *testing.T) {
	user := User{}
	require.NoError(t, user.BeforeCreate(nil))
	assert.NotEqual(t, uuid.Nil, user.ID)

	fixed := uuid.New()
	user2 := User{ID: fixed}
	require.NoError(t, user2.BeforeCreate(nil))
	assert.Equal(t, fixed, user2.ID, "an existing ID must be kept")

	stamp := Stamp{}
	require.NoError(t, stamp.BeforeCreate(nil))
	assert.NotEqual(t, uuid.Nil, stamp.ID)

	feeling := Feeling{}
	require.NoError(t, feeling.BeforeCreate(nil))
	assert.NotEqual(t, uuid.Nil, feeling.ID)
}
