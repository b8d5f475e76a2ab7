package platform

import "context"

// ChatbotClient wraps the backend's support chatbot endpoint.
type ChatbotClient struct {
	core *Client
}

// NewChatbotClient builds the chatbot resource client.
func NewChatbotClient(core *Client) *ChatbotClient {
	return &ChatbotClient{core: core}
}

// ChatReply is the chatbot's answer to an operator question.
type ChatReply struct {
	Answer  string   `json:"answer"`
	Sources []string `json:"sources,omitempty"`
}

// Query forwards an operator question to the platform chatbot.
func (c *ChatbotClient) Query(ctx context.Context, question string) (*ChatReply, error) {
	var reply ChatReply
	body := map[string]any{"question": question}
	if err := c.core.do(ctx, "chatbot", "POST", "/api/chatbot/query", nil, body, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}
