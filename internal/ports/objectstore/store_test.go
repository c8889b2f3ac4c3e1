package objectstore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKey_Convention(t *testing.T) {
	at := time.UnixMilli(1700000000123)
	assert.Equal(t, "medications/user-1/1700000000123.jpg", Key("medications", "user-1", at, ".jpg"))
	assert.Equal(t, "medications/user-1/1700000000123.bin", Key("/medications/", "user-1", at, ""))
}

func TestExtForContentType(t *testing.T) {
	assert.Equal(t, "png", ExtForContentType("image/PNG"))
	assert.Equal(t, "jpg", ExtForContentType("image/jpeg"))
	assert.Equal(t, "jpg", ExtForContentType(""))
}
