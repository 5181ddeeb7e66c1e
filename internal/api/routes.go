package api

import (
	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	"github.com/emicklei/go-restful/v3"
	"github.com/povarna/generative-ai-agents/prompt-agent/internal/api/middleware"
	"github.com/povarna/generative-ai-agents/prompt-agent/internal/models"
)

func RegisterRoutes(container *restful.Container, handler *Handler) {
	ws := new(restful.WebService)

	ws.
		Path("/api/v1").
		Consumes(restful.MIME_JSON).
		Produces(restful.MIME_JSON)

	// Health endpoint
	ws.
		Route(ws.GET("health").
			To(handler.Health).
			Doc("Health check").
			Metadata(restfulspec.KeyOpenAPITags, []string{"health"}).
			Writes(HealthResponse{}).
			Returns(200, "OK", HealthResponse{}))

	ws.
		Route(ws.POST("/prompt").
			To(handler.Prompt).
			Doc("Send a prompt to the configured model").
			Metadata(restfulspec.KeyOpenAPITags, []string{"prompt"}).
			Reads(models.PromptRequest{}).
			Writes(models.PromptResult{}).
			Returns(200, "OK", models.PromptResult{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}).
			Returns(502, "Model Unavailable", middleware.ErrorResponse{}).
			Returns(504, "Timeout", middleware.ErrorResponse{}))

	ws.
		Route(ws.GET("/models").
			To(handler.ListModels).
			Doc("List foundation models").
			Metadata(restfulspec.KeyOpenAPITags, []string{"models"}).
			Param(ws.QueryParameter("provider", "Provider name, e.g. Anthropic").DataType("string").Required(false)).
			Param(ws.QueryParameter("output_modality", "Output modality: TEXT, IMAGE or EMBEDDING").DataType("string").Required(false)).
			Writes([]models.FoundationModel{}).
			Returns(200, "OK", []models.FoundationModel{}).
			Returns(502, "Bad Gateway", middleware.ErrorResponse{}))

	ws.
		Route(ws.GET("/history").
			To(handler.History).
			Doc("Recent invocations, newest first").
			Metadata(restfulspec.KeyOpenAPITags, []string{"history"}).
			Param(ws.QueryParameter("limit", "Maximum number of entries (default: 20)").DataType("integer").Required(false)).
			Writes([]models.HistoryEntry{}).
			Returns(200, "OK", []models.HistoryEntry{}).
			Returns(404, "History Not Configured", middleware.ErrorResponse{}))

	container.Add(ws)
}
