package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"tariffscout/internal/storage"
	"tariffscout/internal/tariff"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(NewMux(tariff.NewStore(""), storage.NewMemory()))
	t.Cleanup(srv.Close)
	return srv
}

// usageCSV builds a valid export: metadata, header, then ten days of
// quarter-hour readings.
func usageCSV() string {
	var b strings.Builder
	b.WriteString("חשבון חשמל,\n")
	b.WriteString("שם לקוח,כתובת\n")
	b.WriteString("דנה לוי,תל אביב\n")
	b.WriteString("קוד מונה,מספר מונה,מספר חוזה\n")
	b.WriteString("123,9876543,555111\n")
	b.WriteString(",\n")
	b.WriteString("תאריך,שעה,צריכה\n")
	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	for d := 0; d < 10; d++ {
		for slot := 0; slot < 96; slot++ {
			fmt.Fprintf(&b, "%s,%02d:%02d,0.5\n", day.Format("02/01/2006"), (slot*15)/60, (slot*15)%60)
		}
		day = day.AddDate(0, 0, 1)
	}
	return b.String()
}

func TestHealthEndpoints(t *testing.T) {
	srv := testServer(t)
	for _, path := range []string{"/healthz", "/readyz", "/livez"} {
		resp, err := http.Get(srv.URL + path)
		if err != nil {
			t.Fatalf("%s: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("%s returned %d", path, resp.StatusCode)
		}
	}
}

func TestAnalyzeEndpoint(t *testing.T) {
	srv := testServer(t)

	resp, err := http.Post(srv.URL+"/api/analyze", "text/csv", strings.NewReader(usageCSV()))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body AnalyzeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if body.Customer != "דנה לוי" {
		t.Errorf("unexpected customer: %q", body.Customer)
	}
	if body.RecordCount != 960 {
		t.Errorf("unexpected record count: %d", body.RecordCount)
	}
	if !body.Extrapolated {
		t.Error("ten days of data should be extrapolated")
	}
	if len(body.Results) == 0 {
		t.Fatal("expected ranked results")
	}
	for i := 1; i < len(body.Results); i++ {
		if body.Results[i].Savings > body.Results[i-1].Savings {
			t.Errorf("results not sorted at index %d", i)
		}
	}
	if len(body.Profile) != 96 {
		t.Errorf("expected a 96-slot profile, got %d", len(body.Profile))
	}
}

func TestAnalyzeEndpointRejectsBadFile(t *testing.T) {
	srv := testServer(t)

	resp, err := http.Post(srv.URL+"/api/analyze", "text/csv", strings.NewReader("not,a\nreal,file\n"))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}

	var body struct {
		Error struct {
			Kind          string `json:"kind"`
			Message       string `json:"message"`
			MessageHebrew string `json:"messageHebrew"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decoding error body: %v", err)
	}
	if body.Error.Kind != "malformed_csv" {
		t.Errorf("unexpected error kind: %q", body.Error.Kind)
	}
	if body.Error.MessageHebrew == "" {
		t.Error("expected a Hebrew error message")
	}
}

func TestAnalyzeEndpointSavesSnapshot(t *testing.T) {
	srv := testServer(t)

	resp, err := http.Post(srv.URL+"/api/analyze?save=1", "text/csv", strings.NewReader(usageCSV()))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var body AnalyzeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.SnapshotID == "" {
		t.Fatal("expected a snapshot id")
	}

	get, err := http.Get(srv.URL + "/api/snapshots/" + body.SnapshotID + "?analyze=1")
	if err != nil {
		t.Fatal(err)
	}
	defer get.Body.Close()
	if get.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 fetching snapshot, got %d", get.StatusCode)
	}
	var snap SnapshotResponse
	if err := json.NewDecoder(get.Body).Decode(&snap); err != nil {
		t.Fatal(err)
	}
	if snap.Data == nil || len(snap.Data.Records) != 960 {
		t.Errorf("snapshot payload did not round-trip")
	}
	if len(snap.Results) == 0 {
		t.Error("expected recomputed results with analyze=1")
	}
}

func TestSnapshotNotFound(t *testing.T) {
	srv := testServer(t)
	resp, err := http.Get(srv.URL + "/api/snapshots/does-not-exist")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}
}

func TestEstimateEndpoint(t *testing.T) {
	srv := testServer(t)

	resp, err := http.Post(srv.URL+"/api/estimate", "application/json", strings.NewReader(`{"monthlyBill": 400}`))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var body struct {
		YearlyCost float64           `json:"yearlyCost"`
		FixedPlans []json.RawMessage `json:"fixedPlans"`
		TouPlans   []json.RawMessage `json:"touPlans"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.YearlyCost != 4800 {
		t.Errorf("yearly cost %v, want 4800", body.YearlyCost)
	}
	if len(body.FixedPlans) == 0 || len(body.TouPlans) == 0 {
		t.Error("expected both fixed and smart-meter estimates")
	}
}

func TestEstimateEndpointRejectsNonPositive(t *testing.T) {
	srv := testServer(t)
	resp, err := http.Post(srv.URL+"/api/estimate", "application/json", strings.NewReader(`{"monthlyBill": 0}`))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
}

func TestEmailConfigRoundTrip(t *testing.T) {
	srv := testServer(t)

	resp, err := http.Get(srv.URL + "/api/email-config")
	if err != nil {
		t.Fatal(err)
	}
	var empty storage.EmailConfig
	if err := json.NewDecoder(resp.Body).Decode(&empty); err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if empty.Provider != "" || empty.Enabled {
		t.Errorf("expected an empty config before save, got %+v", empty)
	}

	payload := `{"provider": "sendgrid", "from_address": "reports@example.com", "api_key": "k", "enabled": true}`
	req, err := http.NewRequest(http.MethodPut, srv.URL+"/api/email-config", strings.NewReader(payload))
	if err != nil {
		t.Fatal(err)
	}
	put, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	put.Body.Close()
	if put.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 saving config, got %d", put.StatusCode)
	}

	resp, err = http.Get(srv.URL + "/api/email-config")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var saved storage.EmailConfig
	if err := json.NewDecoder(resp.Body).Decode(&saved); err != nil {
		t.Fatal(err)
	}
	if saved.Provider != "sendgrid" || !saved.Enabled || saved.ID == "" {
		t.Errorf("config did not round-trip: %+v", saved)
	}
}

func TestEmailConfigTestRejectsUnknownProvider(t *testing.T) {
	srv := testServer(t)
	body := `{"config": {"provider": "carrier-pigeon"}, "to": "a@example.com"}`
	resp, err := http.Post(srv.URL+"/api/email-config/test", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for an unsendable config, got %d", resp.StatusCode)
	}
}

func TestPlansEndpoint(t *testing.T) {
	srv := testServer(t)
	resp, err := http.Get(srv.URL + "/api/plans")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var cat tariff.Catalog
	if err := json.NewDecoder(resp.Body).Decode(&cat); err != nil {
		t.Fatalf("catalog did not decode: %v", err)
	}
	if len(cat.Plans) == 0 {
		t.Error("expected plans in the catalog")
	}
}
