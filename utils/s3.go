package utils

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var s3Client *s3.Client

// InitS3 sets up the meal-photo bucket client. Photo storage is optional:
// without S3_BUCKET the app runs fine and uploads report "not configured".
func InitS3() {
	if os.Getenv("S3_BUCKET") == "" {
		log.Printf("S3_BUCKET not set, meal photo storage disabled")
		return
	}
	region := os.Getenv("S3_REGION")
	if region == "" {
		region = os.Getenv("AWS_REGION")
	}
	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(), awsconfig.WithRegion(region))
	if err != nil {
		log.Printf("unable to load AWS config for S3, photo storage disabled: %v", err)
		return
	}
	s3Client = s3.NewFromConfig(cfg)
}

// UploadMealPhoto stores a meal photo and returns its URL. Accepts either a
// data URI ("data:image/jpeg;base64,...") or raw base64 (assumed JPEG).
func UploadMealPhoto(base64Data string) (string, error) {
	if s3Client == nil {
		return "", fmt.Errorf("s3 not configured")
	}

	contentType := "image/jpeg"
	data := base64Data
	if strings.HasPrefix(base64Data, "data:") {
		parts := strings.SplitN(base64Data, ",", 2)
		if len(parts) != 2 {
			return "", fmt.Errorf("invalid data URI")
		}
		mediaType := strings.TrimPrefix(parts[0], "data:")
		contentType = strings.SplitN(mediaType, ";", 2)[0]
		data = parts[1]
	}

	photo, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	ext := ".jpg"
	if sub := strings.SplitN(contentType, "/", 2); len(sub) == 2 && sub[1] != "jpeg" {
		ext = "." + sub[1]
	}
	key := fmt.Sprintf("meal-photos/%d%s", time.Now().UnixNano(), ext)

	bucket := os.Getenv("S3_BUCKET")
	_, err = s3Client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(photo),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	if cf := os.Getenv("CLOUDFRONT_URL"); cf != "" {
		return fmt.Sprintf("%s/%s", cf, key), nil
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", bucket, key), nil
}
