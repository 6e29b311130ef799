package color

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMinMaxFloat32(t *testing.T) {
	assert.Equal(t, float32(1), Min(float32(1), float32(2)))
	assert.Equal(t, float32(2), Max(float32(1), float32(2)))
}

func TestMinMaxUint16(t *testing.T) {
	assert.Equal(t, uint16(3), Min(uint16(7), uint16(3)))
	assert.Equal(t, uint16(7), Max(uint16(7), uint16(3)))
}

func TestClampRestrictsToRange(t *testing.T) {
	assert.Equal(t, float32(0.5), Clamp(float32(0.5), 0, 1))
	assert.Equal(t, float32(0), Clamp(float32(-1), 0, 1))
	assert.Equal(t, float32(1), Clamp(float32(2), 0, 1))
}

func TestWrapAddWrapsAtModulus(t *testing.T) {
	assert.Equal(t, uint16(1), WrapAdd(uint16(30), uint16(3), uint16(32)))
	assert.Equal(t, uint16(5), WrapAdd(uint16(2), uint16(3), uint16(32)))
}

func TestWrapSubWrapsAtModulus(t *testing.T) {
	assert.Equal(t, uint16(31), WrapSub(uint16(0), uint16(1), uint16(32)))
	assert.Equal(t, uint16(2), WrapSub(uint16(5), uint16(3), uint16(32)))
}
