package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/TaNiShK1911/NutriVision-App/config"
	"github.com/TaNiShK1911/NutriVision-App/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
)

// Prediction is the classification boundary's response: a food label plus a
// confidence in [0,1].
type Prediction struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// Classifier turns raw image bytes into a food label. Failures always
// propagate as ClassificationErrors: an unresolved label blocks the logging
// flow, and fabricating one would corrupt the ledger.
type Classifier interface {
	Predict(ctx context.Context, image []byte) (Prediction, error)
}

// NewClassifier picks the backend from CLASSIFIER_BACKEND.
func NewClassifier(ctx context.Context) (Classifier, error) {
	switch backend := os.Getenv("CLASSIFIER_BACKEND"); backend {
	case "", "model_server":
		return NewModelServerClassifier(), nil
	case "rekognition":
		return NewRekognitionClassifier(ctx)
	default:
		return nil, fmt.Errorf("unknown CLASSIFIER_BACKEND %q", backend)
	}
}

// ModelServerClassifier calls the NutriVision model server's /predict
// endpoint, which runs the Food-101 model.
type ModelServerClassifier struct {
	client  *http.Client
	baseURL string
}

func NewModelServerClassifier() *ModelServerClassifier {
	return &ModelServerClassifier{
		client:  &http.Client{Timeout: config.GetenvSeconds("CLASSIFIER_TIMEOUT_SECONDS", 30*time.Second)},
		baseURL: config.Getenv("MODEL_SERVER_URL", "http://localhost:5000"),
	}
}

func (c *ModelServerClassifier) Predict(ctx context.Context, image []byte) (Prediction, error) {
	payload := map[string]string{"image_base64": base64.StdEncoding.EncodeToString(image)}
	b, err := json.Marshal(payload)
	if err != nil {
		return Prediction{}, &models.ClassificationError{Backend: "model_server", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(b))
	if err != nil {
		return Prediction{}, &models.ClassificationError{Backend: "model_server", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return Prediction{}, &models.ClassificationError{Backend: "model_server", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Prediction{}, &models.ClassificationError{Backend: "model_server", Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return Prediction{}, &models.ClassificationError{
			Backend: "model_server",
			Err:     fmt.Errorf("status %d: %s", resp.StatusCode, preview(body)),
		}
	}

	var out Prediction
	if err := json.Unmarshal(body, &out); err != nil {
		return Prediction{}, &models.ClassificationError{
			Backend: "model_server",
			Err:     fmt.Errorf("decode response: %v | body: %s", err, preview(body)),
		}
	}
	if out.Label == "" {
		return Prediction{}, &models.ClassificationError{
			Backend: "model_server",
			Err:     fmt.Errorf("empty label in response"),
		}
	}
	out.Label = NormalizeLabel(out.Label)
	return out, nil
}

// RekognitionClassifier is the hosted alternative: AWS Rekognition label
// detection, taking the top label. Confidence comes back as a percentage and
// is scaled to [0,1].
type RekognitionClassifier struct {
	client *rekognition.Client
}

func NewRekognitionClassifier(ctx context.Context) (*RekognitionClassifier, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		return nil, err
	}
	return &RekognitionClassifier{client: rekognition.NewFromConfig(cfg)}, nil
}

func (c *RekognitionClassifier) Predict(ctx context.Context, image []byte) (Prediction, error) {
	out, err := c.client.DetectLabels(ctx, &rekognition.DetectLabelsInput{
		Image:         &types.Image{Bytes: image},
		MaxLabels:     aws.Int32(5),
		MinConfidence: aws.Float32(55),
	})
	if err != nil {
		return Prediction{}, &models.ClassificationError{Backend: "rekognition", Err: err}
	}
	if len(out.Labels) == 0 {
		return Prediction{}, &models.ClassificationError{
			Backend: "rekognition",
			Err:     fmt.Errorf("no labels detected"),
		}
	}
	top := out.Labels[0]
	return Prediction{
		Label:      NormalizeLabel(aws.ToString(top.Name)),
		Confidence: float64(aws.ToFloat32(top.Confidence)) / 100,
	}, nil
}

// preview truncates an external response body for error messages.
func preview(b []byte) string {
	const max = 200
	s := strings.TrimSpace(string(b))
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
