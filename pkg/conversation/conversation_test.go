package conversation

import (
	"errors"
	"testing"
)

func TestAppendPreservesOrder(t *testing.T) {
	c := New()
	if err := c.AddUser("hello"); err != nil {
		t.Fatalf("AddUser: %v", err)
	}
	if err := c.AddAssistant("hi there"); err != nil {
		t.Fatalf("AddAssistant: %v", err)
	}

	got := c.Messages()
	if len(got) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(got))
	}
	if got[0] != (Message{Role: RoleUser, Content: "hello"}) {
		t.Fatalf("unexpected first message: %+v", got[0])
	}
	if got[1] != (Message{Role: RoleAssistant, Content: "hi there"}) {
		t.Fatalf("unexpected second message: %+v", got[1])
	}
}

func TestAppendRejectsBlankContent(t *testing.T) {
	c := New()
	if err := c.AddUser("   \t"); !errors.Is(err, ErrEmptyContent) {
		t.Fatalf("expected ErrEmptyContent, got %v", err)
	}
	if c.Len() != 0 {
		t.Fatalf("expected no messages, got %d", c.Len())
	}
}

func TestAppendKeepsBlankAssistantReply(t *testing.T) {
	c := New()
	_ = c.AddUser("say nothing")
	if err := c.AddAssistant(""); err != nil {
		t.Fatalf("AddAssistant: %v", err)
	}
	if last, _ := c.Last(); last != (Message{Role: RoleAssistant}) {
		t.Fatalf("unexpected last message: %+v", last)
	}
}

func TestAppendRejectsInvalidRole(t *testing.T) {
	var c Conversation
	err := c.Append(Message{Role: "system", Content: "be nice"})
	if !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestMessagesReturnsCopy(t *testing.T) {
	c := New()
	_ = c.AddUser("hello")

	msgs := c.Messages()
	msgs[0].Content = "mutated"

	if last, _ := c.Last(); last.Content != "hello" {
		t.Fatalf("history mutated through copy: %q", last.Content)
	}
}

func TestLastOnEmpty(t *testing.T) {
	if _, ok := New().Last(); ok {
		t.Fatal("expected no last message")
	}
}
