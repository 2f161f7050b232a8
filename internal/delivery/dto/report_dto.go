package dto

type ReportResponse struct {
	Title      string   `json:"title"`
	Total      int      `json:"total"`
	Body       string   `json:"body"`
	Transcript string   `json:"transcript,omitempty"`
	Warnings   []string `json:"warnings,omitempty"`
}
