package helpers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type target struct {
	format string
}

func setFormat(f string) ConfigOptionFunc[target] {
	return func(t *target) error {
		t.format = f
		return nil
	}
}

func TestApplyOptionsLastOptionWins(t *testing.T) {
	var x target
	assert.NoError(t, ApplyOptions(&x, setFormat("a"), setFormat("application/n-quads")))
	assert.Equal(t, "application/n-quads", x.format)
}

func TestApplyOptionsStopsAtFirstError(t *testing.T) {
	var x target
	fail := ConfigOptionFunc[target](func(*target) error { return errors.New("bad") })
	err := ApplyOptions(&x, fail, setFormat("a"))
	assert.EqualError(t, err, "bad")
	assert.Equal(t, "", x.format)
}
