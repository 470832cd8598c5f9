package api

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tariffscout/internal/calc"
	"tariffscout/internal/metrics"
	"tariffscout/internal/notification"
	"tariffscout/internal/storage"
	"tariffscout/internal/tariff"
	"tariffscout/internal/usage"
)

const maxUploadBytes = 32 << 20

// NewMux constructs the HTTP mux, wiring in the catalog, storage, metrics,
// and health endpoints.
func NewMux(catalog *tariff.Store, st storage.Storage) *http.ServeMux {
	mux := http.NewServeMux()
	notifSvc := notification.NewService(st)

	// Metrics endpoint.
	mux.Handle("/metrics", promhttp.Handler())

	// Health / readiness / liveness.
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if err := st.Ping(r.Context()); err != nil {
			log.Printf("readyz: storage ping failed: %v", err)
			http.Error(w, "storage not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})
	mux.HandleFunc("/livez", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("live"))
	})

	mux.HandleFunc("/api/analyze", instrument("/api/analyze", handleAnalyze(catalog, st, notifSvc)))
	mux.HandleFunc("/api/estimate", instrument("/api/estimate", handleEstimate(catalog)))
	mux.HandleFunc("/api/plans", instrument("/api/plans", handlePlans(catalog)))
	mux.HandleFunc("/api/snapshots", instrument("/api/snapshots", handleSnapshotList(st)))
	mux.HandleFunc("/api/snapshots/", instrument("/api/snapshots/{id}", handleSnapshotGet(catalog, st)))
	registerNotificationRoutes(mux, notifSvc)

	return mux
}

// instrument wraps a handler with per-path request count and duration.
func instrument(path string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		metrics.RequestsTotal.WithLabelValues(path).Inc()
		defer func() {
			metrics.RequestDurationSeconds.WithLabelValues(path).Observe(time.Since(start).Seconds())
		}()
		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response failed: %v", err)
	}
}

type errorBody struct {
	Kind          string `json:"kind"`
	Message       string `json:"message"`
	MessageHebrew string `json:"messageHebrew,omitempty"`
	Row           int    `json:"row,omitempty"`
}

func writeError(w http.ResponseWriter, path string, status int, body errorBody) {
	metrics.RequestErrorsTotal.WithLabelValues(path, strconv.Itoa(status)).Inc()
	writeJSON(w, status, map[string]errorBody{"error": body})
}

// readUsageText pulls the CSV text from a multipart "file" field or from
// the raw request body.
func readUsageText(r *http.Request) (string, error) {
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			return "", err
		}
		f, _, err := r.FormFile("file")
		if err != nil {
			return "", err
		}
		defer f.Close()
		raw, err := io.ReadAll(io.LimitReader(f, maxUploadBytes))
		if err != nil {
			return "", err
		}
		return string(raw), nil
	}
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxUploadBytes))
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// AnalyzeResponse is the full answer for one uploaded usage file.
type AnalyzeResponse struct {
	Customer     string                 `json:"customer,omitempty"`
	MeterNumber  string                 `json:"meterNumber,omitempty"`
	StartDate    usage.Date             `json:"startDate"`
	EndDate      usage.Date             `json:"endDate"`
	TotalKwh     float64                `json:"totalKwh"`
	RecordCount  int                    `json:"recordCount"`
	DaysObserved int                    `json:"daysObserved"`
	Extrapolated bool                   `json:"extrapolated"`
	Results      []calc.PlanResult      `json:"results"`
	Profile      []calc.HourlyUsagePoint `json:"hourlyProfile,omitempty"`
	SnapshotID   string                 `json:"snapshotId,omitempty"`
}

func handleAnalyze(catalog *tariff.Store, st storage.Storage, notifSvc *notification.Service) http.HandlerFunc {
	const path = "/api/analyze"
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, path, http.StatusMethodNotAllowed, errorBody{Kind: "method_not_allowed", Message: "POST required"})
			return
		}

		text, err := readUsageText(r)
		if err != nil {
			writeError(w, path, http.StatusBadRequest, errorBody{Kind: "bad_request", Message: err.Error()})
			return
		}

		metrics.ParsesTotal.Inc()
		data, err := usage.ParseUsageCSV(text)
		if err != nil {
			var perr *usage.ParseError
			if errors.As(err, &perr) {
				metrics.ParseErrorsTotal.WithLabelValues(string(perr.Kind)).Inc()
				writeError(w, path, http.StatusUnprocessableEntity, errorBody{
					Kind:          string(perr.Kind),
					Message:       perr.Message,
					MessageHebrew: perr.MessageHebrew,
					Row:           perr.Row,
				})
				return
			}
			writeError(w, path, http.StatusInternalServerError, errorBody{Kind: "internal", Message: "internal error"})
			return
		}

		if err := usage.ValidateUsageData(data); err != nil {
			var verr *usage.ValidationError
			if errors.As(err, &verr) {
				metrics.ValidationErrorsTotal.WithLabelValues(string(verr.Kind)).Inc()
				writeError(w, path, http.StatusUnprocessableEntity, errorBody{
					Kind:          string(verr.Kind),
					Message:       verr.Message,
					MessageHebrew: verr.MessageHebrew,
				})
				return
			}
			writeError(w, path, http.StatusInternalServerError, errorBody{Kind: "internal", Message: "internal error"})
			return
		}

		calcStart := time.Now()
		results := calc.CalculateAllPlans(data, catalog.Catalog())
		annual := calc.ExtrapolateToAnnual(results, data.StartDate, data.EndDate)
		metrics.CalculationsTotal.Inc()
		metrics.CalculationDurationSeconds.Observe(time.Since(calcStart).Seconds())

		days := calc.DaysObserved(data.StartDate, data.EndDate)

		resp := AnalyzeResponse{
			Customer:     data.CustomerName,
			MeterNumber:  data.MeterNumber,
			StartDate:    data.StartDate,
			EndDate:      data.EndDate,
			TotalKwh:     data.TotalKwh,
			RecordCount:  len(data.Records),
			DaysObserved: days,
			Extrapolated: days < 365,
			Results:      annual,
		}

		// Hourly profile against the best-ranked smart-meter plan.
		for i := range annual {
			if annual[i].Plan.RequiresSmartMeter {
				resp.Profile = calc.HourlyUsageProfile(data, annual[i].Plan)
				break
			}
		}

		if r.URL.Query().Get("save") == "1" {
			payload, err := json.Marshal(data)
			if err == nil {
				snap := storage.UsageSnapshot{
					ID:           uuid.New().String(),
					CustomerName: data.CustomerName,
					MeterNumber:  data.MeterNumber,
					StartDate:    data.StartDate.Time,
					EndDate:      data.EndDate.Time,
					TotalKwh:     data.TotalKwh,
					RecordCount:  len(data.Records),
					Payload:      payload,
					UploadedAt:   time.Now(),
				}
				if err := st.SaveUsageSnapshot(r.Context(), snap); err != nil {
					log.Printf("save snapshot failed: %v", err)
				} else {
					metrics.SnapshotsSavedTotal.Inc()
					resp.SnapshotID = snap.ID
				}
			}
		}

		// ?email=addr mails the ranked table to the given address using
		// the stored email configuration.
		if to := r.URL.Query().Get("email"); to != "" {
			if err := notifSvc.SendSavingsReport(r.Context(), to, data.CustomerName, annual); err != nil {
				log.Printf("emailing savings report to %s failed: %v", to, err)
			}
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

type estimateRequest struct {
	MonthlyBill float64 `json:"monthlyBill"`
}

func handleEstimate(catalog *tariff.Store) http.HandlerFunc {
	const path = "/api/estimate"
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, path, http.StatusMethodNotAllowed, errorBody{Kind: "method_not_allowed", Message: "POST required"})
			return
		}
		var req estimateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, path, http.StatusBadRequest, errorBody{Kind: "bad_request", Message: "invalid JSON body"})
			return
		}
		if req.MonthlyBill <= 0 {
			writeError(w, path, http.StatusBadRequest, errorBody{
				Kind:          "bad_request",
				Message:       "monthlyBill must be positive",
				MessageHebrew: "סכום החשבון החודשי חייב להיות חיובי",
			})
			return
		}
		writeJSON(w, http.StatusOK, calc.EstimateFromMonthlyBill(catalog.Catalog(), req.MonthlyBill))
	}
}

func handlePlans(catalog *tariff.Store) http.HandlerFunc {
	const path = "/api/plans"
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, path, http.StatusMethodNotAllowed, errorBody{Kind: "method_not_allowed", Message: "GET required"})
			return
		}
		writeJSON(w, http.StatusOK, catalog.Catalog())
	}
}

func handleSnapshotList(st storage.Storage) http.HandlerFunc {
	const path = "/api/snapshots"
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, path, http.StatusMethodNotAllowed, errorBody{Kind: "method_not_allowed", Message: "GET required"})
			return
		}
		snaps, err := st.ListUsageSnapshots(r.Context())
		if err != nil {
			log.Printf("list snapshots failed: %v", err)
			writeError(w, path, http.StatusInternalServerError, errorBody{Kind: "internal", Message: "internal error"})
			return
		}
		writeJSON(w, http.StatusOK, snaps)
	}
}

// SnapshotResponse returns a stored snapshot, optionally re-running the
// comparison against the current catalog (?analyze=1).
type SnapshotResponse struct {
	Snapshot storage.UsageSnapshot  `json:"snapshot"`
	Data     *usage.ParsedUsageData `json:"data"`
	Results  []calc.PlanResult      `json:"results,omitempty"`
}

func handleSnapshotGet(catalog *tariff.Store, st storage.Storage) http.HandlerFunc {
	const path = "/api/snapshots/{id}"
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, path, http.StatusMethodNotAllowed, errorBody{Kind: "method_not_allowed", Message: "GET required"})
			return
		}
		id := strings.TrimPrefix(r.URL.Path, "/api/snapshots/")
		if id == "" || strings.Contains(id, "/") {
			writeError(w, path, http.StatusNotFound, errorBody{Kind: "not_found", Message: "snapshot not found"})
			return
		}
		snap, err := st.GetUsageSnapshot(r.Context(), id)
		if err != nil {
			log.Printf("get snapshot %s failed: %v", id, err)
			writeError(w, path, http.StatusInternalServerError, errorBody{Kind: "internal", Message: "internal error"})
			return
		}
		if snap == nil {
			writeError(w, path, http.StatusNotFound, errorBody{Kind: "not_found", Message: "snapshot not found"})
			return
		}

		var data usage.ParsedUsageData
		if err := json.Unmarshal(snap.Payload, &data); err != nil {
			log.Printf("decode snapshot %s payload failed: %v", id, err)
			writeError(w, path, http.StatusInternalServerError, errorBody{Kind: "internal", Message: "internal error"})
			return
		}

		resp := SnapshotResponse{Snapshot: *snap, Data: &data}
		if r.URL.Query().Get("analyze") == "1" {
			results := calc.CalculateAllPlans(&data, catalog.Catalog())
			resp.Results = calc.ExtrapolateToAnnual(results, data.StartDate, data.EndDate)
			metrics.CalculationsTotal.Inc()
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
