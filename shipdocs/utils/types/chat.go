package types

type ChatRequest struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversationId,omitempty"`
	PageURL        string `json:"pageUrl,omitempty"`
	PageText       string `json:"pageText,omitempty"`
}

type ChatResponse struct {
	Answer         string   `json:"answer"`
	Sources        []string `json:"sources"`
	ConversationID string   `json:"conversationId"`
	ModelUsed      string   `json:"modelUsed"`
}

type ErrorResponse struct {
	Error     string `json:"error"`
	ErrorType string `json:"errorType"`
}
