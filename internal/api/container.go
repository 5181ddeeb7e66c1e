package api

import (
	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	"github.com/emicklei/go-restful/v3"
	"github.com/go-openapi/spec"
	"github.com/povarna/generative-ai-agents/prompt-agent/internal/api/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const OpenAPIPath = "/apidocs.json"

// NewContainer registers the filters, the API routes, the OpenAPI document and /metrics.
func NewContainer(handler *Handler) *restful.Container {
	container := restful.NewContainer()

	container.Filter(middleware.Logger(handler.logger))
	container.Filter(middleware.RecoverPanic(handler.logger))

	RegisterRoutes(container, handler)

	config := restfulspec.Config{
		WebServices:                   container.RegisteredWebServices(),
		APIPath:                       OpenAPIPath,
		PostBuildSwaggerObjectHandler: enrichSwaggerObject,
	}
	container.Add(restfulspec.NewOpenAPIService(config))

	container.Handle("/metrics", promhttp.Handler())

	return container
}

func enrichSwaggerObject(swo *spec.Swagger) {
	swo.Info = &spec.Info{
		InfoProps: spec.InfoProps{
			Title:       "Prompt Agent API",
			Description: "Sends prompts to Claude on Amazon Bedrock with bounded retries",
			Version:     Version,
		},
	}
	swo.Tags = []spec.Tag{
		{TagProps: spec.TagProps{Name: "prompt", Description: "Model invocation"}},
		{TagProps: spec.TagProps{Name: "models", Description: "Foundation model catalog"}},
		{TagProps: spec.TagProps{Name: "history", Description: "Recorded invocations"}},
		{TagProps: spec.TagProps{Name: "health", Description: "Service health"}},
	}
}
