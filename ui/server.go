package ui

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"goresample/app"
	"goresample/domain/core"
	"goresample/domain/resample"
	"goresample/internal"
	"goresample/internal/statistic"
	"goresample/ports"
)

// Server exposes the resampling studies over a JSON API
type Server struct {
	router  *chi.Mux
	studies *app.StudyService
	repo    ports.StudyRepositoryPort // optional, enables report lookup
	logger  *internal.Logger
}

// NewServer creates the API server
func NewServer(studies *app.StudyService, repo ports.StudyRepositoryPort, logger *internal.Logger) *Server {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	s := &Server{
		router:  chi.NewRouter(),
		studies: studies,
		repo:    repo,
		logger:  logger,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)

	s.router.Route("/api/studies", func(r chi.Router) {
		r.Post("/sampling-distribution", s.handleSamplingDistribution)
		r.Post("/randomization-test", s.handleRandomizationTest)
		r.Post("/jackknife", s.handleJackknife)
		r.Post("/bootstrap", s.handleBootstrap)
		r.Get("/{studyID}/report", s.handleReport)
	})
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Listen starts the HTTP server on the given port
func (s *Server) Listen(port string) error {
	s.logger.Info("study API listening on :%s", port)
	return http.ListenAndServe(":"+port, s.router)
}

// Omitted payload fields fall back rather than fail: an empty statistic
// name selects the sample mean, and a zero level selects 0.95.
type samplingDistributionPayload struct {
	Population resample.PopulationSpec `json:"population"`
	SampleSize int                     `json:"sample_size"`
	Trials     int                     `json:"trials"`
	Seed       int64                   `json:"seed"`
	Statistic  string                  `json:"statistic"` // empty = mean
	Level      float64                 `json:"level"`     // 0 = 0.95
}

func (s *Server) handleSamplingDistribution(w http.ResponseWriter, r *http.Request) {
	var payload samplingDistributionPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	statFn, err := statistic.ByName(payload.Statistic)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	result, err := s.studies.RunSamplingDistribution(r.Context(), app.SamplingDistributionRequest{
		Population: payload.Population,
		SampleSize: payload.SampleSize,
		Trials:     payload.Trials,
		Seed:       payload.Seed,
		Statistic:  statFn,
		Level:      defaultLevel(payload.Level),
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

type randomizationTestPayload struct {
	Group1    []float64 `json:"group1"`
	Group2    []float64 `json:"group2"`
	Trials    int       `json:"trials"`
	Seed      int64     `json:"seed"`
	Statistic string    `json:"statistic"` // empty = difference of means
}

func (s *Server) handleRandomizationTest(w http.ResponseWriter, r *http.Request) {
	var payload randomizationTestPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	statFn, err := statistic.TwoSampleByName(payload.Statistic)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	result, err := s.studies.RunRandomizationTest(r.Context(), app.RandomizationTestRequest{
		Group1:    resample.Sample(payload.Group1),
		Group2:    resample.Sample(payload.Group2),
		Trials:    payload.Trials,
		Seed:      payload.Seed,
		Statistic: statFn,
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

type jackknifePayload struct {
	Sample    []float64 `json:"sample"`
	Statistic string    `json:"statistic"` // empty = mean
	Level     float64   `json:"level"`     // 0 = 0.95
	Seed      int64     `json:"seed"`
}

func (s *Server) handleJackknife(w http.ResponseWriter, r *http.Request) {
	var payload jackknifePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	statFn, err := statistic.ByName(payload.Statistic)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	result, studyID, err := s.studies.RunJackknife(r.Context(), app.JackknifeRequest{
		Sample:    resample.Sample(payload.Sample),
		Statistic: statFn,
		Level:     defaultLevel(payload.Level),
		Seed:      payload.Seed,
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"study_id": studyID, "result": result})
}

type bootstrapPayload struct {
	Sample    []float64 `json:"sample"`
	Statistic string    `json:"statistic"` // empty = mean
	Trials    int       `json:"trials"`
	Seed      int64     `json:"seed"`
	Level     float64   `json:"level"` // 0 = 0.95
}

func (s *Server) handleBootstrap(w http.ResponseWriter, r *http.Request) {
	var payload bootstrapPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	statFn, err := statistic.ByName(payload.Statistic)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	result, studyID, err := s.studies.RunBootstrap(r.Context(), app.BootstrapRequest{
		Sample:    resample.Sample(payload.Sample),
		Statistic: statFn,
		Trials:    payload.Trials,
		Seed:      payload.Seed,
		Level:     defaultLevel(payload.Level),
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"study_id": studyID, "result": result})
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	if s.repo == nil {
		s.writeError(w, http.StatusNotFound, errNoStore)
		return
	}

	studyID, err := core.ParseStudyID(chi.URLParam(r, "studyID"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	artifact, err := s.repo.Get(r.Context(), studyID)
	if err != nil {
		s.writeError(w, http.StatusNotFound, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(RenderReportHTML(artifact))
}

// defaultLevel treats an omitted (zero) confidence level as 0.95 rather
// than rejecting the request; explicit out-of-range levels still fail in
// the estimators.
func defaultLevel(level float64) float64 {
	if level == 0 {
		return 0.95
	}
	return level
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

// writeDomainError maps the core error taxonomy onto HTTP statuses:
// caller-misconfiguration errors are 400s, everything else is a 500.
func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if core.IsCallerError(err) || core.IsStatisticError(err) {
		status = http.StatusBadRequest
	}
	s.writeError(w, status, err)
}
