package api

import (
	"encoding/json"
	"log"
	"net/http"

	"tariffscout/internal/notification"
	"tariffscout/internal/storage"
)

func registerNotificationRoutes(mux *http.ServeMux, notifSvc *notification.Service) {
	mux.HandleFunc("/api/email-config", instrument("/api/email-config", func(w http.ResponseWriter, r *http.Request) {
		const path = "/api/email-config"
		switch r.Method {
		case http.MethodGet:
			cfg, err := notifSvc.GetConfig(r.Context())
			if err != nil {
				log.Printf("get email config failed: %v", err)
				writeError(w, path, http.StatusInternalServerError, errorBody{Kind: "internal", Message: "internal error"})
				return
			}
			if cfg == nil {
				cfg = &storage.EmailConfig{}
			}
			writeJSON(w, http.StatusOK, cfg)

		case http.MethodPut:
			var req storage.EmailConfig
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				writeError(w, path, http.StatusBadRequest, errorBody{Kind: "bad_request", Message: "invalid JSON body"})
				return
			}
			if err := notifSvc.SaveConfig(r.Context(), req); err != nil {
				log.Printf("save email config failed: %v", err)
				writeError(w, path, http.StatusInternalServerError, errorBody{Kind: "internal", Message: "internal error"})
				return
			}
			w.WriteHeader(http.StatusOK)

		default:
			writeError(w, path, http.StatusMethodNotAllowed, errorBody{Kind: "method_not_allowed", Message: "GET or PUT required"})
		}
	}))

	mux.HandleFunc("/api/email-config/test", instrument("/api/email-config/test", func(w http.ResponseWriter, r *http.Request) {
		const path = "/api/email-config/test"
		if r.Method != http.MethodPost {
			writeError(w, path, http.StatusMethodNotAllowed, errorBody{Kind: "method_not_allowed", Message: "POST required"})
			return
		}
		var req struct {
			Config storage.EmailConfig `json:"config"`
			To     string              `json:"to"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, path, http.StatusBadRequest, errorBody{Kind: "bad_request", Message: "invalid JSON body"})
			return
		}
		if err := notifSvc.TestConfig(r.Context(), req.Config, req.To); err != nil {
			writeError(w, path, http.StatusBadRequest, errorBody{Kind: "send_failed", Message: err.Error()})
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
}
