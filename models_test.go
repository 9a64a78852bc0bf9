package auth_test

import (
	"encoding/json"
	"testing"

	auth "github.com/goliatone/go-auth-service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_JSONHidesSecrets(t *testing.T) {
	user := &auth.User{
		ID:           7,
		ExternalID:   uuid.New(),
		Email:        "jane@example.com",
		FirstName:    "Jane",
		LastName:     "Doe",
		PasswordHash: "$2a$12$secret",
		Role:         auth.RoleUser,
	}

	raw, err := json.Marshal(user)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "secret")
	assert.NotContains(t, string(raw), user.ExternalID.String())

	raw, err = json.Marshal(user.View())
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": 7,
		"email": "jane@example.com",
		"first_name": "Jane",
		"last_name": "Doe",
		"role": "User"
	}`, string(raw))
}

func TestUserIdentity(t *testing.T) {
	user := &auth.User{
		ExternalID: uuid.MustParse("0b8f4a5e-8a3a-5f0e-9b7c-2f3d1c9e8a11"),
		Email:      "jane@example.com",
		Role:       auth.RoleUser,
	}

	identity := auth.NewIdentityFromUser(user)
	assert.Equal(t, "0b8f4a5e-8a3a-5f0e-9b7c-2f3d1c9e8a11", identity.ID())
	assert.Equal(t, "jane@example.com", identity.Email())
	assert.Equal(t, "User", identity.Role())

	assert.Nil(t, auth.NewIdentityFromUser(nil))

	var empty auth.UserIdentity
	assert.Equal(t, "", empty.ID())
	assert.Equal(t, "", empty.Email())
	assert.Equal(t, "", empty.Role())
}
