package httpclient

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_DefaultClient(t *testing.T) {
	client, ok := DefaultClient().(*http.Client)
	require.True(t, ok)
	assert.Equal(t, 40*time.Second, client.Timeout)
}
