package ui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/roadwatch/potholectl/internal/api"
	"github.com/roadwatch/potholectl/internal/config"
	"github.com/roadwatch/potholectl/internal/session"
)

type stubService struct {
	detectResp *api.DetectResponse
	lastEmail  *api.EmailRequest
}

func (s *stubService) Detect(ctx context.Context, uploads []api.Upload) (*api.DetectResponse, error) {
	return s.detectResp, nil
}

func (s *stubService) GenerateComplaint(ctx context.Context, req *api.ComplaintRequest) (*api.ComplaintResponse, error) {
	return &api.ComplaintResponse{ComplaintText: "complaint"}, nil
}

func (s *stubService) GeneratePDF(ctx context.Context, complaintText string) (*api.PDFResponse, error) {
	return &api.PDFResponse{PDFDataURI: "data:application/pdf;base64,JVBERg=="}, nil
}

func (s *stubService) SendEmail(ctx context.Context, req *api.EmailRequest) (*api.EmailResponse, error) {
	s.lastEmail = req
	return &api.EmailResponse{Status: api.StatusSent}, nil
}

func testModel(t *testing.T) (*Model, *session.Session) {
	t.Helper()

	svc := &stubService{
		detectResp: &api.DetectResponse{
			Results: []api.DetectResult{
				{OriginalFilename: "a.jpg", Count: 2, ResultImageDataURI: "data:image/jpeg;base64,aGk="},
				{OriginalFilename: "b.jpg", Count: 1, ResultImageDataURI: "data:image/jpeg;base64,aG8="},
			},
		},
	}
	sess := session.New(svc, nil)
	m := NewModel(sess, config.DefaultConfig(), nil)
	m.width = 120
	m.height = 40
	m.ready = true
	return m, sess
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestDetectDoneSwitchesToResults(t *testing.T) {
	m, _ := testModel(t)

	updated, _ := m.Update(detectDoneMsg{results: []session.Result{{OriginalFilename: "a.jpg"}}})
	model := updated.(*Model)

	if model.view != ViewResults {
		t.Errorf("Expected results view after detection, got %v", model.view)
	}
	if model.selectedIndex != 0 {
		t.Errorf("Expected selection reset, got %d", model.selectedIndex)
	}
}

func TestDetectErrorStaysOnCollect(t *testing.T) {
	m, _ := testModel(t)

	updated, _ := m.Update(detectDoneMsg{err: api.NewServiceError(api.OpDetect, "model down")})
	model := updated.(*Model)

	if model.view != ViewCollect {
		t.Errorf("Expected to stay on collect view, got %v", model.view)
	}
	if model.notice == "" {
		t.Error("Expected error notice")
	}
}

func TestResultsNavigationBounds(t *testing.T) {
	m, sess := testModel(t)
	sess.AddFromSelection([]session.Image{{Name: "a.jpg"}, {Name: "b.jpg"}})
	if _, err := sess.Submit(context.Background()); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	m.view = ViewResults

	updated, _ := m.Update(key("k"))
	model := updated.(*Model)
	if model.selectedIndex != 0 {
		t.Errorf("Up at top must stay at 0, got %d", model.selectedIndex)
	}

	updated, _ = model.Update(key("j"))
	model = updated.(*Model)
	if model.selectedIndex != 1 {
		t.Errorf("Expected index 1 after down, got %d", model.selectedIndex)
	}

	updated, _ = model.Update(key("j"))
	model = updated.(*Model)
	if model.selectedIndex != 1 {
		t.Errorf("Down at bottom must stay at last index, got %d", model.selectedIndex)
	}
}

func TestCarouselKeysWrap(t *testing.T) {
	m, sess := testModel(t)
	sess.AddFromSelection([]session.Image{{Name: "a.jpg"}, {Name: "b.jpg"}})
	if _, err := sess.Submit(context.Background()); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	m.view = ViewResults
	m.selectedIndex = 1
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model := updated.(*Model)
	if model.view != ViewCarousel {
		t.Fatalf("Expected carousel view, got %v", model.view)
	}

	updated, _ = model.Update(key("l"))
	model = updated.(*Model)
	if idx, _ := sess.CarouselIndex(); idx != 0 {
		t.Errorf("Expected wrap from last to 0, got %d", idx)
	}

	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	model = updated.(*Model)
	if model.view != ViewResults {
		t.Errorf("Expected back to results, got %v", model.view)
	}
	if _, open := sess.CarouselIndex(); open {
		t.Error("Expected carousel closed after escape")
	}
}

func TestComposeFields(t *testing.T) {
	m, _ := testModel(t)

	m.composeInputs[fieldRoad].SetValue("  MG Road ")
	m.composeInputs[fieldCity].SetValue("Pune")
	m.composeInputs[fieldCount].SetValue("7")

	fields := m.composeFields()

	if fields.RoadName != "MG Road" {
		t.Errorf("Expected trimmed road name, got %q", fields.RoadName)
	}
	if fields.City != "Pune" {
		t.Errorf("Expected city, got %q", fields.City)
	}
	if fields.Count == nil || *fields.Count != 7 {
		t.Errorf("Expected count override 7, got %v", fields.Count)
	}
	if fields.UserName != "Concerned Citizen" {
		t.Errorf("Expected config default user name, got %q", fields.UserName)
	}
	if fields.AuthorityName != "Municipal Commissioner" {
		t.Errorf("Expected config default authority, got %q", fields.AuthorityName)
	}
}

func TestComposeFieldsIgnoresBadCount(t *testing.T) {
	m, _ := testModel(t)

	for _, raw := range []string{"", "abc", "-3"} {
		m.composeInputs[fieldCount].SetValue(raw)
		if fields := m.composeFields(); fields.Count != nil {
			t.Errorf("Expected nil count for input %q, got %d", raw, *fields.Count)
		}
	}
}

func TestDroppedImageStagesAndRearms(t *testing.T) {
	m, sess := testModel(t)
	drops := make(chan session.Image, 1)
	m.drops = drops

	updated, cmd := m.Update(droppedImageMsg{image: session.Image{Name: "drop.jpg", Data: []byte("x")}})
	model := updated.(*Model)

	if sess.WorkingSetSize() != 1 {
		t.Errorf("Expected dropped image staged, got %d", sess.WorkingSetSize())
	}
	if cmd == nil {
		t.Error("Expected the watcher wait command to be re-armed")
	}
	if model.notice == "" {
		t.Error("Expected pickup notice")
	}
}

func TestDispatchClearedSubjectUsesDefault(t *testing.T) {
	svc := &stubService{}
	sess := session.New(svc, nil)
	m := NewModel(sess, config.DefaultConfig(), nil)
	m.ready = true

	// a prior generation seeded the subject; the user then deletes it
	sess.SetSubject("Pothole complaint - MG Road")
	m.view = ViewDispatch
	m.dispatchInputs[fieldTo].SetValue("roads@city.gov")
	m.dispatchInputs[fieldSubject].SetValue("")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd == nil {
		t.Fatal("Expected a dispatch command")
	}
	cmd()

	if svc.lastEmail == nil {
		t.Fatal("Expected the email to be dispatched")
	}
	if svc.lastEmail.Subject != "Pothole Complaint" {
		t.Errorf("Expected default subject, got %q", svc.lastEmail.Subject)
	}
}

func TestClearKeyResetsSession(t *testing.T) {
	m, sess := testModel(t)
	sess.AddFromSelection([]session.Image{{Name: "a.jpg"}})

	updated, _ := m.Update(key("x"))
	model := updated.(*Model)

	if sess.WorkingSetSize() != 0 {
		t.Error("Expected working set cleared")
	}
	if model.view != ViewCollect {
		t.Errorf("Expected collect view, got %v", model.view)
	}
}
