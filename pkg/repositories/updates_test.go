package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldUpdatesClause(t *testing.T) {
	var u FieldUpdates
	u.Set("name", "support bot")
	u.Set("status", "inactive")

	clause, args, next := u.Clause()

	assert.Equal(t, "name = $1, status = $2", clause)
	assert.Equal(t, []any{"support bot", "inactive"}, args)
	assert.Equal(t, 3, next)
	assert.Equal(t, 2, u.Len())
}

func TestFieldUpdatesSetJSON(t *testing.T) {
	var u FieldUpdates
	require.NoError(t, u.SetJSON("tools", []string{"search", "calculator"}))

	clause, args, _ := u.Clause()
	assert.Equal(t, "tools = $1", clause)
	require.Len(t, args, 1)
	assert.JSONEq(t, `["search","calculator"]`, string(args[0].([]byte)))
}

func TestFieldUpdatesEmpty(t *testing.T) {
	var u FieldUpdates
	clause, args, next := u.Clause()
	assert.Empty(t, clause)
	assert.Empty(t, args)
	assert.Equal(t, 1, next)
	assert.Equal(t, 0, u.Len())
}
