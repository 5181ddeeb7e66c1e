package api

type HealthResponse struct {
	Status  string `json:"status" description:"Service status"`
	Version string `json:"version" description:"Service version"`
	ModelID string `json:"model_id" description:"Configured model id"`
}
