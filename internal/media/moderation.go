package media

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"

	"github.com/GTDGit/ecolux_api/internal/config"
)

// Verdict is the outcome of an image moderation check.
type Verdict struct {
	Flagged bool
	Labels  []string
}

// Moderator screens uploaded images.
type Moderator interface {
	Moderate(ctx context.Context, image []byte) (*Verdict, error)
}

type moderationAPI interface {
	DetectModerationLabels(ctx context.Context, params *rekognition.DetectModerationLabelsInput, optFns ...func(*rekognition.Options)) (*rekognition.DetectModerationLabelsOutput, error)
}

// RekognitionModerator flags images carrying any moderation label at or above
// the configured confidence.
type RekognitionModerator struct {
	client        moderationAPI
	minConfidence float32
}

// NewRekognitionModerator builds a Rekognition client for the configured region.
func NewRekognitionModerator(ctx context.Context, cfg *config.AWSConfig) (*RekognitionModerator, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.RekognitionRegion)}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &RekognitionModerator{
		client:        rekognition.NewFromConfig(awsCfg),
		minConfidence: float32(cfg.ModerationMinConfidence),
	}, nil
}

// Moderate runs DetectModerationLabels on image.
func (m *RekognitionModerator) Moderate(ctx context.Context, image []byte) (*Verdict, error) {
	out, err := m.client.DetectModerationLabels(ctx, &rekognition.DetectModerationLabelsInput{
		Image:         &types.Image{Bytes: image},
		MinConfidence: aws.Float32(m.minConfidence),
	})
	if err != nil {
		return nil, fmt.Errorf("detect moderation labels: %w", err)
	}

	v := &Verdict{}
	for _, label := range out.ModerationLabels {
		if aws.ToFloat32(label.Confidence) < m.minConfidence {
			continue
		}
		v.Flagged = true
		v.Labels = append(v.Labels, aws.ToString(label.Name))
	}
	return v, nil
}

// AllowAll is a Moderator that accepts every image.
type AllowAll struct{}

func (AllowAll) Moderate(context.Context, []byte) (*Verdict, error) {
	return &Verdict{}, nil
}
