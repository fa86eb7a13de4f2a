package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	key, err := NewKey("octocat", "github:contributions", "last:nested")
	assert.Nil(t, err)
	cKey, err := key.Key()
	assert.Nil(t, err)
	assert.Equal(t, "github:contributions:octocat:last:nested", cKey)

	key, err = NewKeyWithOnlyPrefix("visitors:presence")
	assert.Nil(t, err)
	cKey, _ = key.Key()
	assert.Equal(t, "visitors:presence", cKey)

	_, err = NewKey("", "prefix", "")
	assert.Equal(t, ErrorInvalidScope, err)
	_, err = NewKey("scope", "", "")
	assert.Equal(t, ErrorInvalidPrefix, err)

	var nilKey *Key
	_, err = nilKey.Key()
	assert.Equal(t, ErrorInvalidKey, err)
}
