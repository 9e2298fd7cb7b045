package search_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmellor/mcsearch/position"
	"github.com/tmellor/mcsearch/search"
)

func TestRecoverGameModelConvertsGenericPanic(t *testing.T) {
	fn := func() (err error) {
		defer search.RecoverGameModel(&err)
		panic("boom")
	}
	err := fn()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestRecoverGameModelRethrowsContractViolation(t *testing.T) {
	cv := &position.ContractViolation{Msg: "misuse"}
	fn := func() (err error) {
		defer search.RecoverGameModel(&err)
		panic(cv)
	}
	assert.PanicsWithValue(t, cv, func() { fn() })
}

func TestRecoverGameModelNoPanicLeavesErrNil(t *testing.T) {
	fn := func() (err error) {
		defer search.RecoverGameModel(&err)
		return nil
	}
	assert.NoError(t, fn())
}
