package api

// Upload is one image handle submitted to the detection endpoint
type Upload struct {
	Filename string
	Data     []byte
}

// DetectResult represents one per-image finding in a detection response
type DetectResult struct {
	OriginalFilename   string `json:"original_filename"`
	Count              int    `json:"count"`
	ResultImageDataURI string `json:"result_image_data_uri"`

	// ResultImageURL is only present when the service runs in its legacy
	// disk-saving mode; the data URI above is the authoritative payload.
	ResultImageURL string `json:"result_image_url,omitempty"`
}

// DetectResponse represents the detection endpoint response
type DetectResponse struct {
	Results []DetectResult `json:"results"`
}

// ComplaintRequest represents a complaint generation request
type ComplaintRequest struct {
	PotholeCount  int    `json:"pothole_count"`
	RoadName      string `json:"road_name"`
	Area          string `json:"area"`
	City          string `json:"city"`
	UserName      string `json:"user_name"`
	AuthorityName string `json:"authority_name"`
	ExtraDetails  string `json:"extra_details"`
}

// ComplaintResponse represents a complaint generation response
type ComplaintResponse struct {
	ComplaintText string `json:"complaint_text"`
}

// PDFRequest represents a document generation request
type PDFRequest struct {
	ComplaintText string `json:"complaint_text"`
}

// PDFResponse represents a document generation response. PDFDataURI is a
// self-contained encoded document, not a storage reference.
type PDFResponse struct {
	PDFDataURI string `json:"pdf_data_uri"`
	PDFURL     string `json:"pdf_url,omitempty"`
}

// EmailRequest represents a dispatch request. Every attachment travels as a
// fully self-contained data URI in ImageDataB64.
type EmailRequest struct {
	ToEmail      string   `json:"to_email"`
	Subject      string   `json:"subject"`
	Body         string   `json:"body"`
	ImageDataB64 []string `json:"image_data_b64"`
}

// EmailResponse represents a dispatch response
type EmailResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// StatusSent is the only dispatch status that counts as a delivery success
const StatusSent = "sent"

// ErrorResponse represents a service error payload
type ErrorResponse struct {
	Error string `json:"error"`
}
