package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	apperrors "resumelens/internal/errors"
	"resumelens/internal/observability"
	"resumelens/internal/types"

	"go.opentelemetry.io/otel/attribute"
)

// createAnalyzeHandler wraps the analyze handler with observability
func (s *Server) createAnalyzeHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		ctx := r.Context()
		tracer := om.Tracer("resumelens.api")
		ctx, span := tracer.Start(ctx, "api.analyze")
		defer span.End()

		// Parse request
		var req AnalyzeRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", apperrors.ErrCodeInvalidRequest, err.Error(), http.StatusBadRequest)
			return
		}

		// Validation
		if strings.TrimSpace(req.ResumeText) == "" {
			err := apperrors.NewValidationError(apperrors.ErrCodeEmptyInput, "missing resume text", nil)
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing resume text", apperrors.ErrCodeEmptyInput, "resumeText field is required", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.Category) == "" || strings.TrimSpace(req.Role) == "" {
			err := apperrors.NewValidationError(apperrors.ErrCodeInvalidRequest, "missing category or role", nil)
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing target role", apperrors.ErrCodeInvalidRequest, "category and role fields are required", http.StatusBadRequest)
			return
		}

		// Add request attributes to span
		span.SetAttributes(
			attribute.Int("request.resume_length", len(req.ResumeText)),
			attribute.String("request.category", req.Category),
			attribute.String("request.role", req.Role),
			attribute.String("operation", "analyze"),
		)

		profile, err := s.catalog.Current().Resolve(req.Category, req.Role)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "unknown_role"))
			writeErrorResponse(w, "Unknown role", apperrors.CodeOf(err), err.Error(), http.StatusNotFound)
			return
		}

		// Run the analysis pipeline with observability
		metrics := om.GetMetrics()
		result, err := metrics.TrackAnalysis(ctx, profile.Name, func(ctx context.Context) (types.AnalysisResult, error) {
			return s.engine.Analyze(req.ResumeText, profile)
		})
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "analysis"))
			writeErrorResponse(w, "Analysis failed", apperrors.CodeOf(err), err.Error(), statusForError(err))
			return
		}

		response := AnalyzeResponse{AnalysisResult: result}

		// Persist the result when history is enabled. A storage failure
		// never fails the request; the breaker keeps a broken database
		// from slowing every analysis down.
		if s.history != nil {
			id, storeErr := s.storeBreaker.Execute(func() (int64, error) {
				return s.history.SaveAnalysis(ctx, result)
			})
			if storeErr != nil {
				metrics.RecordStoreWriteError(ctx)
				s.Logger.LogError(storeErr, "Failed to record analysis history",
					"role", profile.Name)
			} else {
				response.HistoryID = id
			}
		}

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("ats.score", result.ATSScore),
			attribute.Float64("keyword.score", result.KeywordMatch.Score),
			attribute.Int("missing_skills", len(result.KeywordMatch.MissingSkills)),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// statusForError maps analysis error codes to HTTP status codes
func statusForError(err error) int {
	switch apperrors.CodeOf(err) {
	case apperrors.ErrCodeEmptyInput, apperrors.ErrCodeInvalidRequest:
		return http.StatusBadRequest
	case apperrors.ErrCodeNotAResume:
		return http.StatusUnprocessableEntity
	case apperrors.ErrCodeUnknownRole:
		return http.StatusNotFound
	case apperrors.ErrCodeStoreFailed:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// createRateLimitMiddleware adds observability to rate limiting
func (s *Server) createRateLimitMiddleware(om *observability.ObservabilityManager) func(http.HandlerFunc) http.HandlerFunc {
	originalMiddleware := s.rateLimitMiddleware()
	if s.RateLimit == nil || !s.RateLimit.Enabled {
		return originalMiddleware
	}

	return func(next http.HandlerFunc) http.HandlerFunc {
		return originalMiddleware(func(w http.ResponseWriter, r *http.Request) {
			// Wrap the ResponseWriter so rate limited responses can be
			// detected and counted after the fact
			wrapper := &responseWrapper{ResponseWriter: w, statusCode: 200}

			next(wrapper, r)

			if wrapper.statusCode == http.StatusTooManyRequests {
				limiterType := "ip"
				if strings.HasPrefix(getRateLimitKey(r, s.RateLimit.ByAPIKey, s.RateLimit.ByIP), "api:") {
					limiterType = "api_key"
				}
				om.GetMetrics().RecordRateLimitHit(r.Context(), limiterType)
			}
		})
	}
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
