package tests

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/roadwatch/potholectl/internal/api"
	"github.com/roadwatch/potholectl/internal/dataurl"
	"github.com/roadwatch/potholectl/internal/session"
)

// mockBackend serves the four reporting endpoints and records what it saw
type mockBackend struct {
	mu sync.Mutex

	detectFilenames []string
	complaintReq    api.ComplaintRequest
	pdfReq          api.PDFRequest
	emailReq        api.EmailRequest
}

func (b *mockBackend) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/predict", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		resp := api.DetectResponse{}
		b.mu.Lock()
		for i, fh := range r.MultipartForm.File["images"] {
			b.detectFilenames = append(b.detectFilenames, fh.Filename)
			resp.Results = append(resp.Results, api.DetectResult{
				OriginalFilename:   fh.Filename,
				Count:              i + 1,
				ResultImageDataURI: dataurl.Encode("image/jpeg", []byte("annotated-"+fh.Filename)),
			})
		}
		b.mu.Unlock()

		_ = json.NewEncoder(w).Encode(resp)
	})

	mux.HandleFunc("/api/generate_complaint", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		_ = json.NewDecoder(r.Body).Decode(&b.complaintReq)
		req := b.complaintReq
		b.mu.Unlock()

		text := "Respected " + req.AuthorityName + ", there are potholes on " + req.RoadName + "."
		_ = json.NewEncoder(w).Encode(api.ComplaintResponse{ComplaintText: text})
	})

	mux.HandleFunc("/api/generate_pdf", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		_ = json.NewDecoder(r.Body).Decode(&b.pdfReq)
		b.mu.Unlock()

		_ = json.NewEncoder(w).Encode(api.PDFResponse{
			PDFDataURI: dataurl.Encode("application/pdf", []byte("%PDF-1.4 complaint")),
		})
	})

	mux.HandleFunc("/api/send_email", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		_ = json.NewDecoder(r.Body).Decode(&b.emailReq)
		b.mu.Unlock()

		_ = json.NewEncoder(w).Encode(api.EmailResponse{Status: api.StatusSent})
	})

	return mux
}

func newTestSession(t *testing.T, backend *mockBackend) (*session.Session, string) {
	t.Helper()

	server := httptest.NewServer(backend.handler())
	t.Cleanup(server.Close)

	client, err := api.NewClient(&api.Config{
		BaseURL:       server.URL,
		Timeout:       10 * time.Second,
		DetectTimeout: 10 * time.Second,
	})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	exportDir := t.TempDir()
	return session.New(client, &session.Options{ExportDir: exportDir}), exportDir
}

func TestFullReportingFlow(t *testing.T) {
	backend := &mockBackend{}
	sess, exportDir := newTestSession(t, backend)
	ctx := context.Background()

	sess.AddFromSelection([]session.Image{
		{Name: "highway.jpg", Data: []byte("jpeg-1")},
		{Name: "street.jpg", Data: []byte("jpeg-2")},
	})

	results, err := sess.Submit(ctx)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	if sess.TotalCount() != 3 {
		t.Errorf("Expected total count 3, got %d", sess.TotalCount())
	}
	if backend.detectFilenames[0] != "highway.jpg" || backend.detectFilenames[1] != "street.jpg" {
		t.Errorf("Backend saw wrong filenames: %v", backend.detectFilenames)
	}

	text, err := sess.Generate(ctx, session.Fields{
		RoadName:      "MG Road",
		Area:          "Ward 12",
		City:          "Pune",
		UserName:      "A. Tester",
		AuthorityName: "Municipal Commissioner",
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !strings.Contains(text, "MG Road") {
		t.Errorf("Expected complaint to mention the road, got %q", text)
	}
	if backend.complaintReq.PotholeCount != 3 {
		t.Errorf("Expected detected total forwarded as count, got %d", backend.complaintReq.PotholeCount)
	}

	draft := sess.Draft()
	if draft.Subject != "Pothole complaint - MG Road" {
		t.Errorf("Expected reseeded subject, got %q", draft.Subject)
	}
	if draft.Body != text {
		t.Error("Expected draft body reseeded from generated complaint")
	}

	pdfPath, err := sess.ExportPDF(ctx)
	if err != nil {
		t.Fatalf("ExportPDF failed: %v", err)
	}
	data, err := os.ReadFile(pdfPath)
	if err != nil {
		t.Fatalf("Expected exported document on disk: %v", err)
	}
	if !strings.HasPrefix(string(data), "%PDF") {
		t.Error("Expected decoded PDF bytes in exported file")
	}
	if backend.pdfReq.ComplaintText != text {
		t.Error("Expected current complaint forwarded to document service")
	}

	sess.SetRecipient("roads@city.gov")
	if _, err := sess.Dispatch(ctx); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if backend.emailReq.ToEmail != "roads@city.gov" {
		t.Errorf("Expected recipient forwarded, got %q", backend.emailReq.ToEmail)
	}
	if backend.emailReq.Body != text {
		t.Error("Expected complaint as dispatch body")
	}
	if len(backend.emailReq.ImageDataB64) != 2 {
		t.Errorf("Expected 2 attachments, got %d", len(backend.emailReq.ImageDataB64))
	}

	savedPath, err := sess.ExportResult(0)
	if err != nil {
		t.Fatalf("ExportResult failed: %v", err)
	}
	if filepath.Base(savedPath) != "result_highway.jpg" {
		t.Errorf("Expected result_ prefixed save, got %q", filepath.Base(savedPath))
	}
	saved, err := os.ReadFile(savedPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(saved) != "annotated-highway.jpg" {
		t.Error("Expected decoded annotated payload in saved file")
	}

	entries, err := os.ReadDir(exportDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("Expected 2 exported files (pdf + image), got %d", len(entries))
	}
}

func TestResubmissionReplacesResults(t *testing.T) {
	backend := &mockBackend{}
	sess, _ := newTestSession(t, backend)
	ctx := context.Background()

	sess.AddFromSelection([]session.Image{
		{Name: "a.jpg", Data: []byte("x")},
		{Name: "b.jpg", Data: []byte("y")},
		{Name: "c.jpg", Data: []byte("z")},
	})
	if _, err := sess.Submit(ctx); err != nil {
		t.Fatalf("First submit failed: %v", err)
	}
	if len(sess.Results()) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(sess.Results()))
	}

	if err := sess.OpenCarousel(2); err != nil {
		t.Fatalf("OpenCarousel failed: %v", err)
	}

	sess.Clear()
	sess.AddFromDrop([]session.Image{{Name: "d.jpg", Data: []byte("w")}})
	if _, err := sess.Submit(ctx); err != nil {
		t.Fatalf("Second submit failed: %v", err)
	}

	results := sess.Results()
	if len(results) != 1 || results[0].OriginalFilename != "d.jpg" {
		t.Errorf("Expected wholesale replacement with d.jpg, got %+v", results)
	}
	if _, open := sess.CarouselIndex(); open {
		t.Error("Expected carousel closed after results were replaced")
	}
}
