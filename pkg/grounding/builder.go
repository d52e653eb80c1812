package grounding

import (
	"fmt"
	"strings"

	"placement-mentor-be/internal/entity"
)

// NotCoveredSentence is the only text the mentor may answer with when the
// question cannot be answered from the grounded story content.
const NotCoveredSentence = "That specific detail is not covered in this story's content."

// Snapshot is an immutable rendering of one story aggregate, captured when a
// mentor session opens. It does not refresh if the story changes afterwards.
type Snapshot struct {
	Slug        string
	Title       string
	ContextText string
	Instruction string
}

// Build renders the aggregate into the labeled context block and the system
// instruction that grounds the mentor. Pure and deterministic: same aggregate
// in, same snapshot out.
func Build(aggregate *entity.StoryAggregate) Snapshot {
	contextText := buildContext(aggregate)
	return Snapshot{
		Slug:        aggregate.Slug(),
		Title:       aggregate.Summary.Title,
		ContextText: contextText,
		Instruction: buildInstruction(contextText),
	}
}

// Greeting is the canned first mentor message for a fresh session.
func (s Snapshot) Greeting() string {
	return fmt.Sprintf(
		"Hello! I'm your AI mentor for the story %q. Ask me to summarize the preparation strategy, detail the interview experience, or anything specific about this story!",
		s.Title,
	)
}

func buildContext(aggregate *entity.StoryAggregate) string {
	summary := aggregate.Summary

	journey, experiences, strategy, advice := "", "", "", ""
	if aggregate.Detail != nil {
		journey = aggregate.Detail.Journey
		experiences = aggregate.Detail.Experiences
		strategy = aggregate.Detail.Strategy
		advice = aggregate.Detail.Advice
	}

	var b strings.Builder
	b.WriteString("STORY CONTEXT:\n")
	b.WriteString("Story Title: " + summary.Title + "\n")
	b.WriteString("Company/Role: " + summary.Company + " - " + summary.Role + "\n")
	writeSection(&b, "SUMMARY/INTRO", summary.Content)
	writeSection(&b, "PLACEMENT JOURNEY", journey)
	writeSection(&b, "DETAILED EXPERIENCES (INTERVIEW ROUNDS)", experiences)
	writeSection(&b, "PREPARATION STRATEGY", strategy)
	writeSection(&b, "ADVICE", advice)
	b.WriteString("---\n")
	return b.String()
}

// Missing sections are rendered as a literal N/A so the model always sees the
// same section layout, degraded aggregate or not.
func writeSection(b *strings.Builder, label, text string) {
	if strings.TrimSpace(text) == "" {
		text = "N/A"
	}
	b.WriteString("---\n")
	b.WriteString(label + ":\n")
	b.WriteString(text + "\n")
}

func buildInstruction(contextText string) string {
	var b strings.Builder
	b.WriteString("You are an expert Placement Mentor focused on career advice, strategy, and summarization.\n")
	b.WriteString("Your sole purpose is to answer the user's question STRICTLY based on the story content provided below.\n\n")
	b.WriteString("If the user asks for a 'summary' or a question requires a high-level view, provide a brief, structured summary of the key sections (Journey, Strategy, Experiences).\n")
	b.WriteString("If the user's question cannot be answered using the provided text, you MUST respond only with the phrase:\n")
	b.WriteString(fmt.Sprintf("%q\n", NotCoveredSentence))
	b.WriteString("Do not use external knowledge. Be concise and helpful.\n\n")
	b.WriteString("--- STORY CONTENT FOR CONTEXT ---\n")
	b.WriteString(contextText)
	b.WriteString("---\n")
	return b.String()
}
