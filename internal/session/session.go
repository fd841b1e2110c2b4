// Package session owns the client-side orchestration state for one pothole
// reporting workflow: the staged working set, the latest detection results,
// the generated complaint, and the email draft. All cross-panel state lives
// on one Session so wholesale replacement and clear-resets-all stay
// enforceable in one place.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/roadwatch/potholectl/internal/api"
	"github.com/roadwatch/potholectl/internal/dataurl"
	"github.com/roadwatch/potholectl/internal/export"
	"github.com/roadwatch/potholectl/internal/logger"
)

// GenerationFailedText replaces the complaint after a failed generation so
// stale prose is never mistaken for a fresh complaint.
const GenerationFailedText = "Complaint generation failed. Please try again."

// ErrStaleResponse marks a service response that arrived after the state
// it was issued against had been cleared or replaced. The response is
// discarded, never applied.
var ErrStaleResponse = errors.New("stale response discarded")

// Image is one staged input image: raw payload plus display name
type Image struct {
	Name string
	Data []byte
}

// Result is one per-image finding from the most recent successful
// detection. ImageDataURI is a self-contained encoded image embedding the
// detection overlays. Results carry no persistent identifier; the position
// in the collection is the only addressing mechanism.
type Result struct {
	OriginalFilename string
	Count            int
	ImageDataURI     string
}

// Fields is the structured complaint input. Count overrides the detected
// total when set; nil means "use the current total at generation time".
type Fields struct {
	RoadName      string
	Area          string
	City          string
	ExtraDetails  string
	UserName      string
	AuthorityName string
	Count         *int
}

// Draft is the editable subject/body/recipient state prepared for dispatch
type Draft struct {
	To      string
	Subject string
	Body    string
}

// Service is the remote surface the session drives
type Service interface {
	Detect(ctx context.Context, uploads []api.Upload) (*api.DetectResponse, error)
	GenerateComplaint(ctx context.Context, req *api.ComplaintRequest) (*api.ComplaintResponse, error)
	GeneratePDF(ctx context.Context, complaintText string) (*api.PDFResponse, error)
	SendEmail(ctx context.Context, req *api.EmailRequest) (*api.EmailResponse, error)
}

// Options configures a Session
type Options struct {
	// ExportDir is where local saves (annotated images, PDFs) land
	ExportDir string

	// Logger for session diagnostics; a silent default is used when nil
	Logger *logger.Logger
}

// Session holds the orchestration state. Methods are safe for concurrent
// use; service calls run on whatever goroutine the caller provides.
type Session struct {
	mu sync.RWMutex

	svc       Service
	log       *logger.Logger
	exportDir string

	working    []Image
	results    []Result
	totalCount int
	complaint  string
	draft      Draft
	status     string

	// generation tags the results collection; in-flight responses capture
	// it at submit time and are dropped when it has moved on
	generation uint64

	guard    busyGuard
	carousel carousel
}

// New creates a session around the given service
func New(svc Service, opts *Options) *Session {
	if opts == nil {
		opts = &Options{}
	}

	log := opts.Logger
	if log == nil {
		log = logger.New("session", nil)
	}

	s := &Session{
		svc:       svc,
		log:       log,
		exportDir: opts.ExportDir,
	}
	s.guard.inFlight = make(map[api.Op]bool)
	return s
}

// AddFromSelection appends explicitly selected images to the working set in
// the order provided. Files with identical names stay distinct entries.
func (s *Session) AddFromSelection(images []Image) {
	s.append(images, "selection")
}

// AddFromDrop appends dropped images; same semantics as selection, both
// sources accumulate into the one working set.
func (s *Session) AddFromDrop(images []Image) {
	s.append(images, "drop")
}

func (s *Session) append(images []Image, source string) {
	if len(images) == 0 {
		return
	}

	s.mu.Lock()
	s.working = append(s.working, images...)
	size := len(s.working)
	s.mu.Unlock()

	s.log.Debug("staged images", logger.F("source", source), logger.Count(len(images)), logger.F("working_set", size))
}

// WorkingSet returns a copy of the staged images
func (s *Session) WorkingSet() []Image {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Image, len(s.working))
	copy(out, s.working)
	return out
}

// WorkingSetSize returns the number of staged images
func (s *Session) WorkingSetSize() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.working)
}

// Summary produces a two-line human-readable description of the working
// set. Deterministic given the set contents; no side effects.
func (s *Session) Summary() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.working) == 0 {
		return "No images selected.\nChoose road photos or drop them into the watched folder."
	}

	names := make([]string, len(s.working))
	for i, img := range s.working {
		names[i] = img.Name
	}

	noun := "images"
	if len(names) == 1 {
		noun = "image"
	}

	return fmt.Sprintf("%d %s staged for detection:\n%s", len(names), noun, strings.Join(names, ", "))
}

// Clear atomically resets the working set and every piece of derived state:
// results, total count, complaint text, draft, and status. The generation
// bump makes any still-in-flight service response stale.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.working = nil
	s.results = nil
	s.totalCount = 0
	s.complaint = ""
	s.draft = Draft{}
	s.status = ""
	s.carousel.close()
	s.generation++

	s.log.Debug("session cleared")
}

// Submit sends the working set as one batch to the detection service. The
// results collection is replaced wholesale on success and left untouched on
// failure. At most one submission may be in flight; overlapping calls get a
// BusyError. The response order is authoritative for display.
func (s *Session) Submit(ctx context.Context) ([]Result, error) {
	s.mu.RLock()
	uploads := make([]api.Upload, len(s.working))
	for i, img := range s.working {
		uploads[i] = api.Upload{Filename: img.Name, Data: img.Data}
	}
	gen := s.generation
	s.mu.RUnlock()

	if len(uploads) == 0 {
		return nil, api.NewValidationError("working_set", "select at least one image before detecting")
	}

	if err := s.guard.acquire(api.OpDetect); err != nil {
		return nil, err
	}
	defer s.guard.release(api.OpDetect)

	requestID := uuid.NewString()
	start := time.Now()
	s.log.Info("submitting detection batch", logger.F("request", requestID), logger.Count(len(uploads)))

	resp, err := s.svc.Detect(ctx, uploads)
	if err != nil {
		s.log.Error("detection failed", logger.F("request", requestID), logger.Err(err))
		s.setStatusIfCurrent(gen, "Detection failed: "+err.Error())
		return nil, err
	}

	results := make([]Result, len(resp.Results))
	total := 0
	for i, r := range resp.Results {
		results[i] = Result{
			OriginalFilename: r.OriginalFilename,
			Count:            r.Count,
			ImageDataURI:     r.ResultImageDataURI,
		}
		total += r.Count
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generation != gen {
		s.log.Warn("discarding stale detection response", logger.F("request", requestID))
		return nil, ErrStaleResponse
	}

	s.results = results
	s.totalCount = total
	s.generation++
	s.carousel.close()
	s.status = fmt.Sprintf("Detected %d potholes across %d images", total, len(results))

	s.log.Info("detection complete", logger.F("request", requestID), logger.Count(total), logger.Duration(time.Since(start)))
	return results, nil
}

// Results returns a copy of the current results collection
func (s *Session) Results() []Result {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Result, len(s.results))
	copy(out, s.results)
	return out
}

// TotalCount returns the aggregate pothole count across all results
func (s *Session) TotalCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.totalCount
}

// Generate requests complaint prose for the given fields and stores the
// response. All fields are optional; an all-empty request is valid and lets
// the service apply its own defaults. On success the email draft subject
// and body are reseeded unconditionally, overwriting any manual edits
// (last generation wins). On failure the complaint becomes a fixed
// placeholder rather than stale prior text.
func (s *Session) Generate(ctx context.Context, f Fields) (string, error) {
	if err := s.guard.acquire(api.OpComplaint); err != nil {
		return "", err
	}
	defer s.guard.release(api.OpComplaint)

	s.mu.RLock()
	count := s.totalCount
	gen := s.generation
	s.mu.RUnlock()

	if f.Count != nil {
		count = *f.Count
	}

	req := &api.ComplaintRequest{
		PotholeCount:  count,
		RoadName:      f.RoadName,
		Area:          f.Area,
		City:          f.City,
		UserName:      f.UserName,
		AuthorityName: f.AuthorityName,
		ExtraDetails:  f.ExtraDetails,
	}

	resp, err := s.svc.GenerateComplaint(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generation != gen {
		s.log.Warn("discarding stale complaint response")
		return "", ErrStaleResponse
	}

	if err != nil {
		s.log.Error("complaint generation failed", logger.Err(err))
		s.complaint = GenerationFailedText
		s.status = "Complaint generation failed: " + err.Error()
		return "", err
	}

	s.complaint = resp.ComplaintText
	s.draft.Subject = subjectFor(f.RoadName)
	s.draft.Body = resp.ComplaintText
	s.status = "Complaint generated"

	return resp.ComplaintText, nil
}

func subjectFor(roadName string) string {
	if strings.TrimSpace(roadName) == "" {
		return "Pothole complaint"
	}
	return "Pothole complaint - " + roadName
}

// ComplaintText returns the current complaint text
func (s *Session) ComplaintText() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.complaint
}

// Draft returns the current email draft
func (s *Session) Draft() Draft {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.draft
}

// SetRecipient updates the draft recipient
func (s *Session) SetRecipient(to string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.To = to
}

// SetSubject updates the draft subject
func (s *Session) SetSubject(subject string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.Subject = subject
}

// SetBody updates the draft body
func (s *Session) SetBody(body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.Body = body
}

// ExportPDF turns the current complaint text into a generated document and
// saves it locally as complaint.pdf. Fails fast with a ValidationError when
// there is no complaint text; no partial file is written on failure.
func (s *Session) ExportPDF(ctx context.Context) (string, error) {
	s.mu.RLock()
	text := s.complaint
	gen := s.generation
	s.mu.RUnlock()

	if strings.TrimSpace(text) == "" {
		return "", api.NewValidationError("complaint_text", "generate a complaint before exporting")
	}

	if err := s.guard.acquire(api.OpExport); err != nil {
		return "", err
	}
	defer s.guard.release(api.OpExport)

	resp, err := s.svc.GeneratePDF(ctx, text)
	if err != nil {
		s.log.Error("document export failed", logger.Err(err))
		s.setStatusIfCurrent(gen, "Document export failed: "+err.Error())
		return "", err
	}

	_, data, err := dataurl.Decode(resp.PDFDataURI)
	if err != nil {
		serr := api.NewServiceErrorWithCause(api.OpExport, "unusable document payload", err)
		s.setStatusIfCurrent(gen, "Document export failed: "+serr.Error())
		return "", serr
	}

	path, err := export.SaveFile(s.exportDir, "complaint.pdf", data)
	if err != nil {
		s.setStatusIfCurrent(gen, "Document save failed: "+err.Error())
		return "", fmt.Errorf("failed to save document: %w", err)
	}

	s.setStatusIfCurrent(gen, "Document saved to "+path)
	return path, nil
}

// Dispatch sends the complaint email with every result image attached as a
// self-contained payload. Fails fast with a ValidationError when the draft
// has no recipient. An empty subject falls back to "Pothole Complaint"; an
// empty body falls back to the complaint text, and finally to empty.
func (s *Session) Dispatch(ctx context.Context) (string, error) {
	s.mu.RLock()
	draft := s.draft
	complaint := s.complaint
	gen := s.generation
	attachments := make([]string, 0, len(s.results))
	for _, r := range s.results {
		if r.ImageDataURI != "" {
			attachments = append(attachments, r.ImageDataURI)
		}
	}
	s.mu.RUnlock()

	if strings.TrimSpace(draft.To) == "" {
		return "", api.NewValidationError("to_email", "recipient is required")
	}

	if err := s.guard.acquire(api.OpDispatch); err != nil {
		return "", err
	}
	defer s.guard.release(api.OpDispatch)

	subject := draft.Subject
	if strings.TrimSpace(subject) == "" {
		subject = "Pothole Complaint"
	}

	body := draft.Body
	if body == "" {
		body = complaint
	}

	req := &api.EmailRequest{
		ToEmail:      draft.To,
		Subject:      subject,
		Body:         body,
		ImageDataB64: attachments,
	}

	s.log.Info("dispatching email", logger.F("to", draft.To), logger.Count(len(attachments)))

	resp, err := s.svc.SendEmail(ctx, req)
	if err != nil {
		s.log.Error("dispatch failed", logger.Err(err))
		s.setStatusIfCurrent(gen, "Dispatch failed: "+err.Error())
		return "", err
	}

	s.setStatusIfCurrent(gen, "Email sent to "+draft.To)
	return resp.Status, nil
}

// ExportResult saves result index's annotated image locally using the
// result_<original name> convention. Purely local; the encoded payload is
// already held.
func (s *Session) ExportResult(index int) (string, error) {
	s.mu.RLock()
	if index < 0 || index >= len(s.results) {
		s.mu.RUnlock()
		return "", api.NewValidationError("result", fmt.Sprintf("no result at index %d", index))
	}
	r := s.results[index]
	s.mu.RUnlock()

	_, data, err := dataurl.Decode(r.ImageDataURI)
	if err != nil {
		return "", fmt.Errorf("unusable image payload: %w", err)
	}

	name := "result_" + export.SanitizeFilename(r.OriginalFilename)
	if !hasImageExt(name) {
		name += "." + dataurl.ImageExt(r.ImageDataURI)
	}
	return export.SaveFile(s.exportDir, name, data)
}

// hasImageExt reports whether the name already carries an image extension,
// so exports of extension-less originals still open in a viewer
func hasImageExt(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".jpg") ||
		strings.HasSuffix(lower, ".jpeg") ||
		strings.HasSuffix(lower, ".png")
}

// ExportAllResults saves every annotated image locally and returns the
// written paths
func (s *Session) ExportAllResults() ([]string, error) {
	n := len(s.Results())

	paths := make([]string, 0, n)
	for i := 0; i < n; i++ {
		path, err := s.ExportResult(i)
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// Busy reports whether an operation of the given kind is in flight
func (s *Session) Busy(op api.Op) bool {
	return s.guard.busy(op)
}

// Status returns the current user-visible status text
func (s *Session) Status() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// setStatusIfCurrent writes status text only when the session generation
// still matches gen, so completions landing after a clear stay silent
func (s *Session) setStatusIfCurrent(gen uint64, status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation == gen {
		s.status = status
	}
}

// busyGuard tracks one in-flight slot per operation kind so unrelated
// actions stay independently triggerable
type busyGuard struct {
	mu       sync.Mutex
	inFlight map[api.Op]bool
}

func (g *busyGuard) acquire(op api.Op) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.inFlight[op] {
		return api.NewBusyError(op)
	}
	g.inFlight[op] = true
	return nil
}

func (g *busyGuard) release(op api.Op) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.inFlight, op)
}

func (g *busyGuard) busy(op api.Op) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.inFlight[op]
}
