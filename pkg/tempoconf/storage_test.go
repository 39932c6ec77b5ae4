package tempoconf

import (
	"testing"

	"github.com/charmops/tempo-operator/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildStorageLocal(t *testing.T) {
	storage := BuildStorage(nil)

	assert.Equal(t, "local", storage.Trace.Backend)
	require.NotNil(t, storage.Trace.Local)
	assert.Equal(t, "/traces", storage.Trace.Local.Path)
	assert.Nil(t, storage.Trace.S3)
	assert.Equal(t, "/etc/tempo_wal", storage.Trace.WAL.Path)
	assert.Equal(t, 100, storage.Trace.Pool.MaxWorkers)
	assert.Equal(t, 10000, storage.Trace.Pool.QueueDepth)
}

func TestBuildStorageS3(t *testing.T) {
	tests := []struct {
		name             string
		endpoint         string
		expectedEndpoint string
		expectedInsecure bool
	}{
		{
			name:             "https endpoint is secure and scheme-stripped",
			endpoint:         "https://minio.example:9000",
			expectedEndpoint: "minio.example:9000",
			expectedInsecure: false,
		},
		{
			name:             "http endpoint is insecure and scheme-stripped",
			endpoint:         "http://minio.example:9000",
			expectedEndpoint: "minio.example:9000",
			expectedInsecure: true,
		},
		{
			name:             "bare endpoint passes through as secure",
			endpoint:         "minio.example:9000",
			expectedEndpoint: "minio.example:9000",
			expectedInsecure: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage := BuildStorage(&types.S3Credentials{
				Bucket:    "tempo-traces",
				Endpoint:  tt.endpoint,
				AccessKey: "access",
				SecretKey: "secret",
			})

			assert.Equal(t, "s3", storage.Trace.Backend)
			assert.Nil(t, storage.Trace.Local)
			require.NotNil(t, storage.Trace.S3)
			assert.Equal(t, tt.expectedEndpoint, storage.Trace.S3.Endpoint)
			assert.Equal(t, tt.expectedInsecure, storage.Trace.S3.Insecure)
			assert.Equal(t, "tempo-traces", storage.Trace.S3.Bucket)
		})
	}
}
