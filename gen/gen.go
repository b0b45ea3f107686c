package gen

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/zucenko/helperbot/model"
)

// Generator is the opaque, slow, fallible text service behind every
// hint and nudge.
type Generator interface {
	Generate(ctx context.Context, systemPrompt, userContext string) (string, error)
}

const hintSystemPrompt = "You are a friendly helper character in a coding game. " +
	"A player asked for help with their challenge. Give one short, concrete hint " +
	"about their code without writing the solution for them."

const nudgeSystemPrompt = "You are a friendly helper character in a coding game. " +
	"A player has been quiet on their challenge for a while. Write one brief, warm " +
	"check-in message offering help. Do not mention their code."

const hintFallback = "Hmm, my thoughts got scrambled. Take another look at your last change - and ask me again!"

const nudgeFallback = "Hey, just checking in - give me a shout if you want a hand!"

// Hint produces the reply to an explicit help request. Generation
// failures become the canned fallback so the flow always completes.
func Hint(ctx context.Context, g Generator, req model.HelpRequest) string {
	user := fmt.Sprintf("Player: %s\nChallenge: %s\nTheir code:\n%s", req.Name, req.Challenge, req.Code)
	text, err := g.Generate(ctx, hintSystemPrompt, user)
	if err != nil || text == "" {
		log.Warnf("gen: hint generation failed for %s: %v", req.RequestID, err)
		return hintFallback
	}
	return text
}

// Nudge produces the proactive check-in for a session that looks stuck.
func Nudge(ctx context.Context, g Generator, s model.TrackedSession) string {
	user := fmt.Sprintf("Player: %s\nChallenge: %s\nOpen since: %s", s.Name, s.Challenge, s.OpenedAt.Format("15:04:05"))
	text, err := g.Generate(ctx, nudgeSystemPrompt, user)
	if err != nil || text == "" {
		log.Warnf("gen: nudge generation failed for session %s: %v", s.ID, err)
		return nudgeFallback
	}
	return text
}

// Disabled is used when no API key is configured; every call falls back
// to the canned messages.
type Disabled struct{}

func (Disabled) Generate(context.Context, string, string) (string, error) {
	return "", errors.New("text generation disabled")
}
