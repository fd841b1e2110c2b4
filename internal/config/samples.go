package config

// SampleConfig returns a fully commented configuration file
func SampleConfig() string {
	return `# potholectl configuration
version: "1.0"

# Remote backend endpoints
services:
  # Base URL of the pothole reporting backend
  base_url: "http://localhost:8000"
  # Timeout for complaint, PDF, and email requests
  timeout: 30s
  # Timeout for detection batches; model inference can be slow
  detect_timeout: 2m

# Default complaint fields
complaint:
  # Signature used when no name is provided
  user_name: "Concerned Citizen"
  # Addressee used when no authority is provided
  authority_name: "Municipal Commissioner"
  # Default city for complaints (empty lets the backend decide)
  city: ""

# Local saves
export:
  # Directory where annotated images and PDFs are written
  dir: "./exports"

# Drop folder
watch:
  # Pick up images copied into the watched directory
  enabled: false
  dir: "./drop"

# Output formatting
output:
  # Default report format: text, json, markdown, csv
  default_format: "text"
  # Color mode: auto, always, never
  color_mode: "auto"
  # Verbose diagnostics
  verbose: false
  # Use plain-text indicators instead of emoji
  no_emoji: false
`
}

// MinimalSampleConfig returns a compact configuration with essential settings
func MinimalSampleConfig() string {
	return `version: "1.0"
services:
  base_url: "http://localhost:8000"
complaint:
  user_name: "Concerned Citizen"
  authority_name: "Municipal Commissioner"
export:
  dir: "./exports"
output:
  default_format: "text"
`
}
