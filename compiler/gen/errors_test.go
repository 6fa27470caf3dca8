package gen

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenError(t *testing.T) {
	err := &GenError{Entity: "Shapes", Field: "area", NativeType: "geometry", Message: "unrecognized native type"}
	assert.Equal(t, `autostruct: generate entity Shapes field area: unrecognized native type (native type "geometry")`, err.Error())
	assert.ErrorIs(t, err, ErrUnknownType)
	assert.True(t, IsGenError(err))
	assert.True(t, IsGenError(fmt.Errorf("wrapped: %w", err)))
	assert.False(t, IsGenError(errors.New("plain")))
}

func TestConfigError(t *testing.T) {
	err := &ConfigError{Option: "Workers", Value: 0, Message: "must be positive"}
	assert.Equal(t, `autostruct: config error for "Workers" (value: 0): must be positive`, err.Error())
	assert.True(t, IsConfigError(err))

	err = &ConfigError{Option: "TypeMapper", Message: "mapper cannot be nil"}
	assert.Equal(t, `autostruct: config error for "TypeMapper": mapper cannot be nil`, err.Error())
	assert.False(t, IsGenError(err))
}
