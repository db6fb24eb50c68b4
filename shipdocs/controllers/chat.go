package controllers

import (
	"context"

	"shipdocs/shipdocs/services/classify"
	"shipdocs/shipdocs/services/pagetext"
	"shipdocs/shipdocs/services/rag"
	"shipdocs/shipdocs/sources/psql/dao"
	"shipdocs/shipdocs/sources/psql/models"
	"shipdocs/shipdocs/utils/logging"
	"shipdocs/shipdocs/utils/types"

	"go.uber.org/zap"
)

// RAGProvider answers docs questions from the local retrieval backend.
type RAGProvider interface {
	Chat(ctx context.Context, message, pageURL, pageText string) (*rag.ChatResult, error)
}

// LLMProvider answers general-purpose questions.
type LLMProvider interface {
	Complete(ctx context.Context, message string) (string, error)
}

type ChatController struct {
	conversations *dao.ConversationDAO
	messages      *dao.MessageDAO
	rag           RAGProvider
	llm           LLMProvider
	keywords      []string
}

func NewChatController(conversations *dao.ConversationDAO, messages *dao.MessageDAO, ragProvider RAGProvider, llmProvider LLMProvider, keywords []string) *ChatController {
	return &ChatController{
		conversations: conversations,
		messages:      messages,
		rag:           ragProvider,
		llm:           llmProvider,
		keywords:      keywords,
	}
}

// Chat classifies the message, dispatches to exactly one backend,
// persists the request/response pair and returns the answer with
// provenance. userID, when present, becomes the owner of a newly
// created conversation.
func (c *ChatController) Chat(ctx context.Context, userID *string, req types.ChatRequest) (*types.ChatResponse, error) {
	defer logging.LogDuration(ctx, "chat_handle")()

	pageText := req.PageText
	if req.PageURL != "" && pageText == "" {
		// Best effort: ground the answer in the page the user is on.
		text, err := pagetext.Fetch(ctx, req.PageURL)
		if err != nil {
			logging.AppLogger.Info("page text fetch failed",
				zap.String("page_url", req.PageURL), zap.Error(err))
		} else {
			pageText = text
		}
	}

	var (
		answer    string
		sources   = []string{}
		modelUsed string
	)

	matched := classify.Match(c.keywords, req.Message)
	if len(matched) > 0 {
		logging.AppLogger.Info("router chose RAG path", zap.Strings("matched_keywords", matched))
		result, err := c.rag.Chat(ctx, req.Message, req.PageURL, pageText)
		if err != nil {
			return nil, err
		}
		answer = result.Answer
		sources = result.Sources
		modelUsed = models.ModelOllamaRAG
	} else {
		logging.AppLogger.Info("router chose general path, no keywords matched")
		var err error
		answer, err = c.llm.Complete(ctx, req.Message)
		if err != nil {
			return nil, err
		}
		modelUsed = models.ModelOpenAI
	}

	convID := req.ConversationID
	if convID == "" {
		conv, err := c.conversations.CreateConversation(ctx, userID)
		if err != nil {
			return nil, err
		}
		convID = conv.ID
	}

	// Two independent writes, user first. A failure here fails the whole
	// request even though the answer was already generated.
	_, err := c.messages.CreateMessage(ctx, &models.Message{
		ConversationID: convID,
		Role:           models.RoleUser,
		Content:        req.Message,
	})
	if err != nil {
		return nil, err
	}
	provenance := modelUsed
	_, err = c.messages.CreateMessage(ctx, &models.Message{
		ConversationID: convID,
		Role:           models.RoleAssistant,
		Content:        answer,
		Sources:        models.StringList(sources),
		ModelUsed:      &provenance,
	})
	if err != nil {
		return nil, err
	}

	return &types.ChatResponse{
		Answer:         answer,
		Sources:        sources,
		ConversationID: convID,
		ModelUsed:      modelUsed,
	}, nil
}

func (c *ChatController) GetConversationMessages(ctx context.Context, conversationID string) ([]models.Message, error) {
	return c.messages.GetMessagesByConversation(ctx, conversationID)
}

func (c *ChatController) ListRecentConversations(ctx context.Context, limit int) ([]models.Conversation, error) {
	return c.conversations.GetRecentConversations(ctx, limit)
}
