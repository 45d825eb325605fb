package provider

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/teilomillet/bedrockgate/config"
	"go.uber.org/zap"
)

// NewBedrockClient builds the SDK clients for cfg.Region and wraps them in a
// Client. Static credentials are used when configured, the default chain
// (environment, shared config, instance role) otherwise.
func NewBedrockClient(ctx context.Context, cfg config.AWSConfig, logger *zap.Logger, registry prometheus.Registerer) (*Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, cfg.SessionToken),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return NewClient(
		cfg,
		bedrockruntime.NewFromConfig(awsCfg),
		bedrockagentruntime.NewFromConfig(awsCfg),
		logger,
		registry,
	), nil
}
