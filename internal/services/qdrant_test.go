package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/cv-screener/internal/models"
)

func TestParseQdrantURL(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		host    string
		port    int
		tls     bool
		wantErr bool
	}{
		{name: "default port", in: "http://localhost", host: "localhost", port: 6334},
		{name: "explicit port", in: "http://qdrant:7000", host: "qdrant", port: 7000},
		{name: "tls", in: "https://xyz.cloud.qdrant.io:6334", host: "xyz.cloud.qdrant.io", port: 6334, tls: true},
		{name: "missing host", in: "localhost", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host, port, useTLS, err := parseQdrantURL(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.host, host)
			assert.Equal(t, tt.port, port)
			assert.Equal(t, tt.tls, useTLS)
		})
	}
}

func TestCandidatePayloadRoundTrip(t *testing.T) {
	c := &models.Candidate{
		ID:                uuid.New(),
		UserID:            "recruiter-1",
		Category:          "Backend",
		YearsOfExperience: 6,
	}

	payload := qdrant.NewValueMap(candidatePayload(c))
	assert.Equal(t, "recruiter-1", payload["user_id"].GetStringValue())
	assert.Equal(t, int64(6), payload["years"].GetIntegerValue())

	id, ok := payloadCandidateID(payload)
	require.True(t, ok)
	assert.Equal(t, c.ID, id)
}

func TestPayloadCandidateID_Invalid(t *testing.T) {
	_, ok := payloadCandidateID(map[string]*qdrant.Value{})
	assert.False(t, ok)

	_, ok = payloadCandidateID(qdrant.NewValueMap(map[string]any{"candidate_id": "not-a-uuid"}))
	assert.False(t, ok)
}
