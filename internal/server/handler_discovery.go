package server

import "net/http"

type endpointInfo struct {
	Path        string   `json:"path"`
	Methods     []string `json:"methods"`
	Description string   `json:"description"`
}

type discoveryResponse struct {
	Name        string         `json:"name"`
	Version     string         `json:"version"`
	Description string         `json:"description"`
	Endpoints   []endpointInfo `json:"endpoints"`
}

func (s *Server) handleDiscovery(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	respondOK(w, reqID, discoveryResponse{
		Name:        "procsim API",
		Version:     "v1",
		Description: "CPU scheduling simulator: run workloads under round-robin or priority scheduling and browse archived runs",
		Endpoints: []endpointInfo{
			{"/api/v1/runs", []string{"GET", "POST"}, "List archived runs, or simulate a workload and archive the result"},
			{"/api/v1/runs/{id}", []string{"GET", "DELETE"}, "Single run with its process summaries and transition timeline"},
			{"/api/v1/health", []string{"GET"}, "Server health and version"},
		},
	})
}
