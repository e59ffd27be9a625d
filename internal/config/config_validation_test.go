package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStructuredConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     StructuredConfig
		wantErr error
	}{
		{
			name: "zero value is valid",
			cfg:  StructuredConfig{},
		},
		{
			name: "current kdf profile is valid",
			cfg:  StructuredConfig{Identity: Identity{KDFProfile: "current"}},
		},
		{
			name: "legacy kdf profile is valid",
			cfg:  StructuredConfig{Identity: Identity{KDFProfile: "legacy"}},
		},
		{
			name:    "unknown kdf profile is invalid",
			cfg:     StructuredConfig{Identity: Identity{KDFProfile: "quantum"}},
			wantErr: ErrInvalidKDFProfile,
		},
		{
			name: "remote endpoint with token is valid",
			cfg: StructuredConfig{Remote: Remote{
				Endpoint: "https://vault.example.com",
				Token:    "shared-secret",
			}},
		},
		{
			name:    "remote endpoint without token is invalid",
			cfg:     StructuredConfig{Remote: Remote{Endpoint: "https://vault.example.com"}},
			wantErr: ErrInvalidRemoteConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}
