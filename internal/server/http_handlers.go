package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"resumelens/internal/types"
)

const healthCheckTimeout = 5 * time.Second

// healthHandler provides a health check endpoint covering the catalog,
// the history store and the storage circuit breaker
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]any{
		"status":  "healthy",
		"service": "resumelens",
		"version": s.Version,
	}

	overallHealthy := true

	// Check role catalog availability
	catalogStatus := map[string]any{"available": false}
	if s.catalog != nil {
		if c := s.catalog.Current(); c != nil {
			catalogStatus["available"] = true
			catalogStatus["roles"] = c.Len()
			catalogStatus["categories"] = len(c.Categories())
		}
	}
	if !catalogStatus["available"].(bool) {
		overallHealthy = false
	}
	response["catalog"] = catalogStatus

	// Check history store connectivity
	if s.history != nil {
		ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
		defer cancel()

		storeStatus := map[string]any{"enabled": true}
		if err := s.history.Ping(ctx); err != nil {
			storeStatus["healthy"] = false
			storeStatus["error"] = err.Error()
			overallHealthy = false
		} else {
			storeStatus["healthy"] = true
		}
		storeStatus["circuit_breaker"] = map[string]any{
			"healthy": s.storeBreaker.IsHealthy(),
		}
		response["storage"] = storeStatus
	} else {
		response["storage"] = map[string]any{"enabled": false}
	}

	if !overallHealthy {
		response["status"] = "degraded"
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		log.Printf("Failed to encode health response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// statsHandler provides server statistics including rate limiting and
// aggregate analysis history
func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]any{
		"service": "resumelens",
		"version": s.Version,
		"server": map[string]any{
			"max_request_size_bytes": s.MaxRequestSize,
		},
	}

	// Add rate limiting stats if enabled
	if s.RateLimiter != nil {
		response["rate_limiting"] = s.RateLimiter.GetStats()
	} else {
		response["rate_limiting"] = map[string]any{
			"enabled": false,
		}
	}

	// Add configuration info
	if s.RateLimit != nil {
		response["rate_limit_config"] = map[string]any{
			"enabled":          s.RateLimit.Enabled,
			"requests_per_min": s.RateLimit.RequestsPerMin,
			"burst_capacity":   s.RateLimit.BurstCapacity,
			"by_ip":            s.RateLimit.ByIP,
			"by_api_key":       s.RateLimit.ByAPIKey,
		}
	}

	response["store_breaker"] = s.storeBreaker.GetStats()

	// Add aggregate analysis stats when history is enabled
	if s.history != nil {
		stats, err := s.history.Stats(r.Context())
		if err != nil {
			s.Logger.LogError(err, "Failed to compute history stats")
			response["analyses"] = map[string]any{"error": "stats unavailable"}
		} else {
			response["analyses"] = stats
		}
	}

	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		log.Printf("Failed to encode stats response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// rolesHandler lists catalog categories and their role profiles
func (s *Server) rolesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	c := s.catalog.Current()
	categories := make(map[string][]types.RoleProfile)
	for _, category := range c.Categories() {
		roles, err := c.Roles(category)
		if err != nil {
			continue
		}
		categories[category] = roles
	}

	response := map[string]any{
		"categories": categories,
		"roleCount":  c.Len(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("Failed to encode roles response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// historyHandler returns recent analyses in reverse chronological order
func (s *Server) historyHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if s.history == nil {
		writeErrorResponse(w, "History unavailable", "", "analysis history storage is not enabled", http.StatusServiceUnavailable)
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeErrorResponse(w, "Invalid limit", "", "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	records, err := s.history.ListRecent(r.Context(), limit)
	if err != nil {
		s.Logger.LogError(err, "Failed to list analysis history")
		writeErrorResponse(w, "History unavailable", "", err.Error(), http.StatusServiceUnavailable)
		return
	}

	response := map[string]any{
		"records": records,
		"count":   len(records),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("Failed to encode history response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// parseJSONRequest parses JSON request body into the provided struct
func parseJSONRequest(r *http.Request, v any) error {
	if r.Header.Get("Content-Type") != "application/json" {
		return fmt.Errorf("content-type must be application/json")
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return fmt.Errorf("request body too large (limit is %d bytes)", maxBytesErr.Limit)
		}
		return fmt.Errorf("failed to read request body: %w", err)
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			log.Printf("Failed to close request body: %v", err)
		}
	}()

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}

	return nil
}

// writeErrorResponse writes a standardized error response
func writeErrorResponse(w http.ResponseWriter, error, code, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := ErrorResponse{
		Error:   error,
		Code:    code,
		Message: message,
	}

	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		log.Printf("Failed to encode error response: %v", err)
		http.Error(w, "Failed to encode error response", http.StatusInternalServerError)
	}
}
