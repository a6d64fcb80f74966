package config

import (
	"testing"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUniqueInstance(t *testing.T) {
	id := CreateUniqueInstance("ledger")
	require.NotEmpty(t, id)

	_, err := uuid.FromString(id)
	require.NoError(t, err, "instance id must be a valid uuid")

	assert.Equal(t, id, GetInstanceId())

	// every instance gets its own id
	assert.NotEqual(t, id, CreateUniqueInstance("ledger"))
}
