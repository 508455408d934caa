package tta

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeKeyDeterministic(t *testing.T) {
	a := computeKey("hunter2")
	b := computeKey("hunter2")
	assert.Equal(t, a, b)
}

func TestComputeKeyDiffersByPassword(t *testing.T) {
	assert.NotEqual(t, computeKey("hunter2"), computeKey("hunter3"))
}

func TestComputeKeyEmptyPasswordIsDeterministic(t *testing.T) {
	assert.Equal(t, computeKey(""), computeKey(""))
}
