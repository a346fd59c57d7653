package rest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestNewServerWriteTimeoutOutlastsUpstream(t *testing.T) {
	tests := []struct {
		upstream time.Duration
		want     time.Duration
	}{
		{0, 30 * time.Second},
		{15 * time.Second, 30 * time.Second},
		{25 * time.Second, 30 * time.Second},
		{60 * time.Second, 65 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.upstream.String(), func(t *testing.T) {
			srv := NewServer("0", tt.upstream, &fakeArticleService{}, &fakeForwarder{}, zap.NewNop())
			assert.Equal(t, tt.want, srv.httpServer.WriteTimeout)
			assert.Greater(t, srv.httpServer.WriteTimeout, tt.upstream)
		})
	}
}
