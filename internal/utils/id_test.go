package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewID(t *testing.T) {
	a := NewID("msg")
	b := NewID("msg")

	assert.True(t, strings.HasPrefix(a, "msg-"))
	assert.Len(t, a, len("msg-")+8)
	assert.NotEqual(t, a, b)
}
