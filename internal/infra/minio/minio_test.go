package minio

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectName(t *testing.T) {
	name := ObjectName("avatars", "Me.PNG")
	assert.True(t, strings.HasPrefix(name, "avatars/"))
	assert.True(t, strings.HasSuffix(name, ".png"))
	assert.NotEqual(t, name, ObjectName("avatars", "Me.PNG"))
}

func TestPublicURL(t *testing.T) {
	s := &Store{bucket: "images", publicHost: "cdn.local:9000", scheme: "http"}
	assert.Equal(t, "http://cdn.local:9000/images/avatars/a.png", s.PublicURL("avatars/a.png"))
}
