package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDisabledProvider(t *testing.T) {
	p, err := NewProvider(Config{})
	require.NoError(t, err)
	require.NotNil(t, p.Tracer())
	require.NoError(t, p.Shutdown(context.Background()))
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Enabled: true, OTLPEndpoint: "localhost:4318", SampleRate: 0.5}, false},
		{"missing endpoint", Config{Enabled: true, SampleRate: 1}, true},
		{"negative rate", Config{Enabled: true, OTLPEndpoint: "localhost:4318", SampleRate: -0.1}, true},
		{"rate above one", Config{Enabled: true, OTLPEndpoint: "localhost:4318", SampleRate: 1.5}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := validateConfig(tc.cfg)
			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestSpansWithNoopProvider(t *testing.T) {
	ctx, block := StartBlockSpan(context.Background(), 3, 2)
	_, tx := StartTxSpan(ctx, 3, 0, 1)
	EndTxSpan(tx, 5, "assets", 1200)
	block.End()
}
