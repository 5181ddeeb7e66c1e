package bedrock

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awsbedrock "github.com/aws/aws-sdk-go-v2/service/bedrock"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
)

//go:generate mockgen -source=client.go -destination=mocks/mock_client.go -package=mocks

// RuntimeAPI is the part of the Bedrock runtime client used for inference.
type RuntimeAPI interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

// CatalogAPI is the part of the Bedrock control plane client used to list models.
type CatalogAPI interface {
	ListFoundationModels(ctx context.Context, params *awsbedrock.ListFoundationModelsInput, optFns ...func(*awsbedrock.Options)) (*awsbedrock.ListFoundationModelsOutput, error)
}

// Client is created once at start-up and shared; it keeps no per-call state.
type Client struct {
	runtime RuntimeAPI
	catalog CatalogAPI
	modelID string

	region    string
	accessKey string
	secretKey string
}

type Option func(*Client)

func WithRegion(region string) Option {
	return func(c *Client) {
		c.region = region
	}
}

// WithStaticCredentials uses a fixed key pair instead of the default credential chain.
func WithStaticCredentials(accessKey, secretKey string) Option {
	return func(c *Client) {
		c.accessKey = accessKey
		c.secretKey = secretKey
	}
}

func WithRuntime(runtime RuntimeAPI) Option {
	return func(c *Client) {
		c.runtime = runtime
	}
}

func WithCatalog(catalog CatalogAPI) Option {
	return func(c *Client) {
		c.catalog = catalog
	}
}

func NewClient(ctx context.Context, modelID string, opts ...Option) (*Client, error) {
	c := &Client{
		modelID: modelID,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.runtime != nil && c.catalog != nil {
		return c, nil
	}

	awsConfig, err := c.loadAWSConfig(ctx)
	if err != nil {
		return nil, err
	}

	if c.runtime == nil {
		c.runtime = bedrockruntime.NewFromConfig(awsConfig)
	}
	if c.catalog == nil {
		c.catalog = awsbedrock.NewFromConfig(awsConfig)
	}

	return c, nil
}

func (c *Client) loadAWSConfig(ctx context.Context) (aws.Config, error) {
	loadOpts := []func(*config.LoadOptions) error{
		config.WithRegion(c.region),
		// retries are owned by the caller's retry policy
		config.WithRetryMaxAttempts(1),
	}

	if c.accessKey != "" && c.secretKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(c.accessKey, c.secretKey, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("unable to load AWS config: %w", err)
	}
	return cfg, nil
}
