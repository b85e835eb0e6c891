package request

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nekogravitycat/shareit-backend/internal/pkg/apperror"
)

func TestOffsetParamsValidate(t *testing.T) {
	p := OffsetParams{From: 0, Size: 20}
	assert.NoError(t, p.Validate(20))

	p.Size = 21
	err := p.Validate(20)
	assert.Error(t, err)
	assert.Equal(t, apperror.KindInvalidInput, apperror.KindOf(err))

	// Zero disables the bound.
	assert.NoError(t, p.Validate(0))
}
