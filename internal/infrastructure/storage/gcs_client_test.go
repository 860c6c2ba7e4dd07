package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNameFromURL(t *testing.T) {
	name, err := objectNameFromURL("https://storage.googleapis.com/fairshoppe-users/uploads/u1/a.png", "fairshoppe-users")
	require.NoError(t, err)
	assert.Equal(t, "uploads/u1/a.png", name)

	_, err = objectNameFromURL("https://storage.googleapis.com/other-bucket/a.png", "fairshoppe-users")
	assert.Error(t, err)

	_, err = objectNameFromURL("https://example.com/a.png", "fairshoppe-users")
	assert.Error(t, err)
}

func TestExtensionFor(t *testing.T) {
	assert.Equal(t, ".png", extensionFor("image/png"))
	assert.Equal(t, ".jpg", extensionFor("image/jpg"))
	assert.Equal(t, ".json", extensionFor("application/json"))
	assert.Equal(t, ".bin", extensionFor("application/octet-stream"))
}
