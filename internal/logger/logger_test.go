package logger

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAttrsSortedByKey(t *testing.T) {
	got := attrs(map[string]any{"status": 200, "method": "GET", "path": "/"})

	var keys []string
	for _, a := range got {
		keys = append(keys, a.(slog.Attr).Key)
	}
	assert.Equal(t, []string{"method", "path", "status"}, keys)
}

func TestAttrsEmpty(t *testing.T) {
	assert.Nil(t, attrs(nil))
}
