package bedrock

import (
	"context"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsbedrock "github.com/aws/aws-sdk-go-v2/service/bedrock"
	"github.com/aws/aws-sdk-go-v2/service/bedrock/types"
	"github.com/povarna/generative-ai-agents/prompt-agent/internal/models"
)

// ListFoundationModels returns the foundation models visible in the configured region, sorted by id.
func (c *Client) ListFoundationModels(ctx context.Context, filter models.ModelFilter) ([]models.FoundationModel, error) {
	input := &awsbedrock.ListFoundationModelsInput{}
	if filter.Provider != "" {
		input.ByProvider = aws.String(filter.Provider)
	}
	if filter.OutputModality != "" {
		input.ByOutputModality = types.ModelModality(filter.OutputModality)
	}

	output, err := c.catalog.ListFoundationModels(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("unable to list foundation models: %w", err)
	}

	result := make([]models.FoundationModel, 0, len(output.ModelSummaries))
	for _, summary := range output.ModelSummaries {
		result = append(result, toFoundationModel(summary))
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result, nil
}

func toFoundationModel(summary types.FoundationModelSummary) models.FoundationModel {
	model := models.FoundationModel{
		ID:       aws.ToString(summary.ModelId),
		Name:     aws.ToString(summary.ModelName),
		Provider: aws.ToString(summary.ProviderName),
		ARN:      aws.ToString(summary.ModelArn),
	}

	for _, m := range summary.InputModalities {
		model.InputModalities = append(model.InputModalities, string(m))
	}
	for _, m := range summary.OutputModalities {
		model.OutputModalities = append(model.OutputModalities, string(m))
	}
	for _, cust := range summary.CustomizationsSupported {
		model.Customizations = append(model.Customizations, string(cust))
	}
	for _, it := range summary.InferenceTypesSupported {
		model.InferenceTypes = append(model.InferenceTypes, string(it))
	}

	return model
}
