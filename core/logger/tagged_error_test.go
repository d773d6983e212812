package logger

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithTag(t *testing.T) {
	assert.Nil(t, WithTag("cli", nil))

	base := errors.New("boom")
	err := WithTag("start", base)
	assert.Equal(t, "boom", err.Error())
	assert.Equal(t, "start", ErrorTag(err))
	assert.ErrorIs(t, err, base)
}

func TestWithTag_KeepsInnermostTag(t *testing.T) {
	inner := WithTag("config", errors.New("bad port"))
	outer := WithTag("start", fmt.Errorf("prepare runtime: %w", inner))

	assert.Equal(t, "config", ErrorTag(outer))
	assert.Equal(t, "prepare runtime: bad port", outer.Error())
}

func TestErrorTag_Untagged(t *testing.T) {
	assert.Empty(t, ErrorTag(errors.New("plain")))
	assert.Empty(t, ErrorTag(nil))
}

func TestLoggerErrorf(t *testing.T) {
	err := New("seed").Errorf("cannot create %s: %w", "data/sample.db", errors.New("denied"))
	assert.Equal(t, "seed", ErrorTag(err))
	assert.Equal(t, "cannot create data/sample.db: denied", err.Error())
}
