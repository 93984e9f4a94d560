package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTickInterval(t *testing.T) {
	interval, err := tickInterval(60)
	assert.NoError(t, err)
	assert.Equal(t, time.Second/60, interval)

	_, err = tickInterval(0)
	assert.Error(t, err)

	_, err = tickInterval(-5)
	assert.Error(t, err)
}
