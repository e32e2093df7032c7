package helper

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateClassCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		code, err := GenerateClassCode()
		require.NoError(t, err)
		assert.Len(t, code, ClassCodeLength)
		for _, r := range code {
			assert.Contains(t, classCodeAlphabet, string(r))
		}
		seen[code] = true
	}
	// 200 sampel dari ruang 36^6: tabrakan praktis mustahil.
	assert.Greater(t, len(seen), 195)
}

func TestGenerateUniqueClassCodeRetriesOnCollision(t *testing.T) {
	calls := 0
	code, err := GenerateUniqueClassCode(func(code string) (bool, error) {
		calls++
		return calls < 3, nil // dua kandidat pertama dianggap sudah terpakai
	})
	require.NoError(t, err)
	assert.Len(t, code, ClassCodeLength)
	assert.Equal(t, 3, calls)
}

func TestGenerateUniqueClassCodePropagatesProbeError(t *testing.T) {
	probeErr := errors.New("db down")
	_, err := GenerateUniqueClassCode(func(string) (bool, error) {
		return false, probeErr
	})
	assert.ErrorIs(t, err, probeErr)
}

func TestClassCodeUppercase(t *testing.T) {
	code, err := GenerateClassCode()
	require.NoError(t, err)
	assert.Equal(t, strings.ToUpper(code), code)
}
