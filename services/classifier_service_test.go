package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/TaNiShK1911/NutriVision-App/models"
)

func testModelServer(url string) *ModelServerClassifier {
	return &ModelServerClassifier{
		client:  &http.Client{Timeout: 2 * time.Second},
		baseURL: url,
	}
}

func TestModelServerPredict(t *testing.T) {
	image := []byte("fake-jpeg-bytes")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/predict" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var body struct {
			ImageBase64 string `json:"image_base64"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if body.ImageBase64 != base64.StdEncoding.EncodeToString(image) {
			t.Error("request did not carry the image bytes")
		}
		w.Write([]byte(`{"label": "Pizza", "confidence": 0.95, "label_id": 76}`))
	}))
	defer srv.Close()

	pred, err := testModelServer(srv.URL).Predict(context.Background(), image)
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if pred.Label != "pizza" {
		t.Errorf("Label = %q, want the normalized pizza", pred.Label)
	}
	if pred.Confidence != 0.95 {
		t.Errorf("Confidence = %v, want 0.95", pred.Confidence)
	}
}

func TestModelServerPredictFailuresPropagate(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"non-200 status", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error": "no image provided"}`, http.StatusBadRequest)
		}},
		{"malformed payload", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html>gateway error</html>"))
		}},
		{"empty label", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"label": "", "confidence": 0.1}`))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			_, err := testModelServer(srv.URL).Predict(context.Background(), []byte("img"))
			var cerr *models.ClassificationError
			if !errors.As(err, &cerr) {
				t.Fatalf("Predict = %v, want a ClassificationError", err)
			}
		})
	}
}

func TestModelServerPredictTransportErrorPropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := testModelServer(srv.URL).Predict(context.Background(), []byte("img"))
	var cerr *models.ClassificationError
	if !errors.As(err, &cerr) {
		t.Fatalf("Predict = %v, want a ClassificationError", err)
	}
}
