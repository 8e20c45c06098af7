package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/depo-terminal/pkg/jwt"
)

func TestGenerateParse(t *testing.T) {
	tok, err := jwt.Generate("s3cr3t", "op-1", "01", "operario", "depo-erp", 5)
	require.NoError(t, err)

	userID, branch, role, err := jwt.Parse("s3cr3t", tok)
	require.NoError(t, err)
	assert.Equal(t, "op-1", userID)
	assert.Equal(t, "01", branch)
	assert.Equal(t, "operario", role)
}

func TestParse_Rechazos(t *testing.T) {
	tok, err := jwt.Generate("s3cr3t", "op-1", "01", "operario", "depo-erp", 5)
	require.NoError(t, err)

	_, _, _, err = jwt.Parse("otro", tok)
	assert.Error(t, err, "firma incorrecta")

	expired, err := jwt.Generate("s3cr3t", "op-1", "01", "operario", "depo-erp", -1)
	require.NoError(t, err)
	_, _, _, err = jwt.Parse("s3cr3t", expired)
	assert.Error(t, err, "expirado")

	anon, err := jwt.Generate("s3cr3t", "", "01", "operario", "depo-erp", 5)
	require.NoError(t, err)
	_, _, _, err = jwt.Parse("s3cr3t", anon)
	assert.Error(t, err, "sin user_id")

	_, err = jwt.Generate("", "op-1", "01", "operario", "depo-erp", 5)
	assert.Error(t, err)
}
