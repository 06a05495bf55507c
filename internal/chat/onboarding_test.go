package chat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blusa/internal/chat"
)

func TestOnboardHappyPath(t *testing.T) {
	s := chat.NewSession()
	require.Equal(t, chat.StateAwaitingName, s.State)

	reply := chat.Onboard(s, "Maria")
	assert.Equal(t, chat.StateAwaitingConfirmation, s.State)
	assert.Equal(t, "Maria", s.PendingName)
	assert.Contains(t, reply, "Maria")

	reply = chat.Onboard(s, "sim")
	assert.Equal(t, chat.StateActive, s.State)
	assert.Equal(t, "Maria", s.UserName)
	assert.Empty(t, s.PendingName)
	assert.Contains(t, reply, "Maria")
	assert.Contains(t, reply, "PDF")
}

func TestOnboardNegativeConfirmation(t *testing.T) {
	s := chat.NewSession()
	chat.Onboard(s, "Maria")

	reply := chat.Onboard(s, "não")
	assert.Equal(t, chat.StateAwaitingName, s.State)
	assert.Empty(t, s.PendingName)
	assert.Empty(t, s.UserName)
	assert.NotEmpty(t, reply)

	// A new name can be offered right away.
	chat.Onboard(s, "João")
	assert.Equal(t, chat.StateAwaitingConfirmation, s.State)
	assert.Equal(t, "João", s.PendingName)
}

func TestOnboardAffirmativeVariants(t *testing.T) {
	for _, answer := range []string{"sim", "SIM", "s", "ok", "Claro", "yes", "  sim  "} {
		s := chat.NewSession()
		chat.Onboard(s, "Maria")
		chat.Onboard(s, answer)
		assert.Equal(t, chat.StateActive, s.State, "answer %q", answer)
		assert.Equal(t, "Maria", s.UserName, "answer %q", answer)
	}
}

func TestOnboardEmptyInputIsNoOp(t *testing.T) {
	s := chat.NewSession()
	for _, input := range []string{"", "   ", "\n\t"} {
		reply := chat.Onboard(s, input)
		assert.Empty(t, reply)
		assert.Equal(t, chat.StateAwaitingName, s.State)
		assert.Empty(t, s.PendingName)
	}

	chat.Onboard(s, "Maria")
	reply := chat.Onboard(s, "   ")
	assert.Empty(t, reply)
	assert.Equal(t, chat.StateAwaitingConfirmation, s.State)
	assert.Equal(t, "Maria", s.PendingName)
}

func TestOnboardTrimsCandidateName(t *testing.T) {
	s := chat.NewSession()
	chat.Onboard(s, "  Maria  ")
	assert.Equal(t, "Maria", s.PendingName)
}

func TestSessionReset(t *testing.T) {
	s := chat.NewSession()
	chat.Onboard(s, "Maria")
	chat.Onboard(s, "sim")
	s.History = append(s.History, chat.Turn{Role: chat.RoleUser, Text: "oi"})

	s.Reset()
	assert.Equal(t, chat.StateAwaitingName, s.State)
	assert.Empty(t, s.PendingName)
	assert.Empty(t, s.UserName)
	assert.Empty(t, s.History)
}

func TestUserNameSetOnlyWhenActive(t *testing.T) {
	s := chat.NewSession()
	assert.Empty(t, s.UserName)
	chat.Onboard(s, "Maria")
	assert.Empty(t, s.UserName)
	chat.Onboard(s, "sim")
	assert.NotEmpty(t, s.UserName)
	assert.Equal(t, chat.StateActive, s.State)
}
