package controllers

import (
	"github.com/shashiranjanraj/voucherhub/app/services"
	"github.com/shashiranjanraj/voucherhub/pkg/ctx"
)

type ChatController struct {
	chat *services.ChatService
}

func NewChatController(chat *services.ChatService) *ChatController {
	return &ChatController{chat: chat}
}

// Chat handles POST /ai/chat.
func (cc *ChatController) Chat(c *ctx.Context) {
	var in services.ChatInput
	if !c.BindJSON(&in) {
		return
	}

	reply, err := cc.chat.Reply(c.Context(), in.Prompt)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(map[string]string{"reply": reply})
}
