package facades_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkote/mood-journal/internal/facades"
)

func TestEmotionInferenceFacade_Analyze_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/analyze", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "aW1hZ2U=", req["image"])

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"dominant_emotion": "happy",
			"emotions": map[string]float64{
				"happy":   88.123456,
				"neutral": 11.876544,
			},
		})
	}))
	defer srv.Close()

	facade := facades.NewEmotionInferenceFacade(srv.URL, 5*time.Second)

	result, err := facade.Analyze(context.Background(), "aW1hZ2U=")
	require.NoError(t, err)
	assert.Equal(t, "happy", result.Dominant)
	assert.Equal(t, 88.12, result.Emotions["happy"])
	assert.Equal(t, 11.88, result.Emotions["neutral"])
}

func TestEmotionInferenceFacade_Analyze_ErrorPassthrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "No face detected in the image"})
	}))
	defer srv.Close()

	facade := facades.NewEmotionInferenceFacade(srv.URL, 5*time.Second)

	result, err := facade.Analyze(context.Background(), "aW1hZ2U=")
	assert.EqualError(t, err, "No face detected in the image")
	assert.Nil(t, result)
}

func TestEmotionInferenceFacade_Analyze_DominantFallback(t *testing.T) {
	tests := []struct {
		name         string
		emotions     map[string]float64
		wantDominant string
	}{
		{
			name:         "highest score wins when dominant is missing",
			emotions:     map[string]float64{"sad": 61.2, "fear": 25.0, "neutral": 13.8},
			wantDominant: "sad",
		},
		{
			name:         "no scores falls back to neutral",
			emotions:     map[string]float64{},
			wantDominant: "neutral",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(map[string]any{"emotions": tt.emotions})
			}))
			defer srv.Close()

			facade := facades.NewEmotionInferenceFacade(srv.URL, 5*time.Second)

			result, err := facade.Analyze(context.Background(), "aW1hZ2U=")
			require.NoError(t, err)
			assert.Equal(t, tt.wantDominant, result.Dominant)
		})
	}
}

func TestEmotionInferenceFacade_Analyze_NonJSONResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()

	facade := facades.NewEmotionInferenceFacade(srv.URL, 5*time.Second)

	result, err := facade.Analyze(context.Background(), "aW1hZ2U=")
	assert.EqualError(t, err, "inference service returned status 502")
	assert.Nil(t, result)
}

func TestEmotionInferenceFacade_Analyze_ServerUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	facade := facades.NewEmotionInferenceFacade(srv.URL, time.Second)

	result, err := facade.Analyze(context.Background(), "aW1hZ2U=")
	assert.Error(t, err)
	assert.Nil(t, result)
}
