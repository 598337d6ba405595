package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func emptyStore() *Store {
	st := NewStore()
	// NewStore seeds from the environment; clear provider keys so tests
	// are independent of the machine they run on
	st.SetKey("imgbb_api_key", "")
	st.SetKey("searchapi_key", "")
	st.SetKey("deepseek_api_key", "")
	return st
}

func TestStore_Defaults(t *testing.T) {
	st := emptyStore()
	snap := st.Snapshot()

	assert.Equal(t, "ImageInsight", snap.CompanyName)
	assert.Equal(t, "support@imageinsight.com", snap.SupportEmail)
	assert.Equal(t, "10MB", snap.MaxUploadSize)
}

func TestStore_MaskingDistinguishesSetFromUnset(t *testing.T) {
	st := emptyStore()
	require.NoError(t, st.SetKey("imgbb_api_key", "real-secret"))

	masked := st.Masked()

	assert.Equal(t, MaskedValue, masked.ImgBBAPIKey)
	assert.Empty(t, masked.SearchAPIKey)
	assert.Empty(t, masked.DeepSeekAPIKey)
	// the real value never leaks through Masked
	assert.NotContains(t, masked.ImgBBAPIKey, "real-secret")
}

func TestStore_KeysSet(t *testing.T) {
	st := emptyStore()
	require.NoError(t, st.SetKey("searchapi_key", "abc"))

	set := st.KeysSet()

	assert.False(t, set["imgbb_api_key"])
	assert.True(t, set["searchapi_key"])
	assert.False(t, set["deepseek_api_key"])
}

func TestStore_UpdateMergesNonEmptyFields(t *testing.T) {
	st := emptyStore()
	st.Update(Settings{ImgBBAPIKey: "k1", CompanyName: "Estate AI"})

	// a second partial update must not wipe earlier values
	st.Update(Settings{SupportEmail: "help@estate.ai"})

	snap := st.Snapshot()
	assert.Equal(t, "k1", snap.ImgBBAPIKey)
	assert.Equal(t, "Estate AI", snap.CompanyName)
	assert.Equal(t, "help@estate.ai", snap.SupportEmail)
}

func TestStore_SetKeyUnknown(t *testing.T) {
	st := emptyStore()
	err := st.SetKey("stripe_api_key", "x")
	assert.Error(t, err)
}

func TestStore_ConcurrentAccess(t *testing.T) {
	st := emptyStore()
	done := make(chan struct{})

	go func() {
		for i := 0; i < 200; i++ {
			st.Update(Settings{ImgBBAPIKey: "k"})
		}
		close(done)
	}()
	for i := 0; i < 200; i++ {
		_ = st.Snapshot()
		_ = st.Masked()
		_ = st.KeysSet()
	}
	<-done
}
