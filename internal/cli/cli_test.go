package cli

import (
	"bufio"
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/personafy/personafy/internal/ai"
	"github.com/personafy/personafy/internal/cache"
	"github.com/personafy/personafy/internal/core"
	"github.com/personafy/personafy/internal/domain"
	"github.com/personafy/personafy/internal/store"
	"github.com/personafy/personafy/internal/twitter"
)

func TestModelPrefsRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	_, _, ok := modelPrefFor("jane")
	assert.False(t, ok)

	require.NoError(t, setModelPref("jane", "openai", "gpt-4o"))
	require.NoError(t, setModelPref("bob", "ollama", "llama3.2"))

	provider, model, ok := modelPrefFor("jane")
	require.True(t, ok)
	assert.Equal(t, "openai", provider)
	assert.Equal(t, "gpt-4o", model)

	require.NoError(t, unsetModelPref("jane"))
	_, _, ok = modelPrefFor("jane")
	assert.False(t, ok)

	provider, _, ok = modelPrefFor("bob")
	require.True(t, ok)
	assert.Equal(t, "ollama", provider)
}

func TestUnsetModelPrefRemovesEmptyFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	require.NoError(t, setModelPref("jane", "openai", "gpt-4o"))
	require.NoError(t, unsetModelPref("jane"))

	// Unsetting again with no file present still succeeds.
	require.NoError(t, unsetModelPref("jane"))
}

func TestPromptLineTrims(t *testing.T) {
	input := bufio.NewReader(strings.NewReader("  jane \n"))
	var output bytes.Buffer

	line, err := promptLine(input, &output, "handle: ")
	require.NoError(t, err)
	assert.Equal(t, "jane", line)
	assert.Equal(t, "handle: ", output.String())
}

func TestChooseOptionByNumber(t *testing.T) {
	input := bufio.NewReader(strings.NewReader("2\n"))
	var output bytes.Buffer

	choice, err := chooseOption(input, &output, "provider", []string{"openai", "anthropic"})
	require.NoError(t, err)
	assert.Equal(t, "anthropic", choice)
	assert.Contains(t, output.String(), "[1] openai")
	assert.Contains(t, output.String(), "[2] anthropic")
}

func TestChooseOptionByNameAfterBadInput(t *testing.T) {
	input := bufio.NewReader(strings.NewReader("7\nnope\nopenai\n"))
	var output bytes.Buffer

	choice, err := chooseOption(input, &output, "provider", []string{"openai", "anthropic"})
	require.NoError(t, err)
	assert.Equal(t, "openai", choice)
	assert.Contains(t, output.String(), `Invalid provider "nope"`)
}

func TestResolveSettingsDryRun(t *testing.T) {
	settings, err := resolveSettings(&Flags{DryRun: true, Username: "jane"}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, ai.ProviderDryRun, settings.Provider)
	assert.Equal(t, "dry-run-model", settings.Name)
}

func TestResolveSettingsFromFlags(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	settings, err := resolveSettings(&Flags{Username: "jane", Provider: "anthropic", Model: "claude-3-5-haiku-latest"}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, ai.ProviderAnthropic, settings.Provider)
	assert.Equal(t, "claude-3-5-haiku-latest", settings.Name)
}

func TestResolveSettingsRejectsUnknownProvider(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	_, err := resolveSettings(&Flags{Username: "jane", Provider: "grok", Model: "x"}, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported provider: grok")
}

func TestResolveSettingsUsesSavedPreference(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	require.NoError(t, setModelPref("jane", "ollama", "mistral"))

	settings, err := resolveSettings(&Flags{Username: "jane"}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, ai.ProviderOllama, settings.Provider)
	assert.Equal(t, "mistral", settings.Name)
}

func TestResolveSettingsInteractiveSavesPreference(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	input := bufio.NewReader(strings.NewReader("openai\n1\n"))
	var output bytes.Buffer

	settings, err := resolveSettings(&Flags{Username: "jane"}, input, &output)
	require.NoError(t, err)
	assert.Equal(t, ai.ProviderOpenAI, settings.Provider)
	assert.Equal(t, "gpt-4.1", settings.Name)

	provider, model, ok := modelPrefFor("jane")
	require.True(t, ok)
	assert.Equal(t, "openai", provider)
	assert.Equal(t, "gpt-4.1", model)
}

type scriptedVendor struct {
	reply string
}

func (v *scriptedVendor) GetName() string { return "scripted" }

func (v *scriptedVendor) Send(ctx context.Context, prompt string, opts *domain.ChatOptions) (string, error) {
	return v.reply, nil
}

func (v *scriptedVendor) SendStream(ctx context.Context, prompt string, opts *domain.ChatOptions, channel chan string) error {
	defer close(channel)
	channel <- v.reply
	return nil
}

func liveAccount(handle, newestTweetID string) *twitter.Account {
	return &twitter.Account{
		Username: handle,
		Tweets:   []twitter.Tweet{{ID: newestTweetID, Text: "latest"}},
	}
}

func newTestDeps(t *testing.T, reply string) (*core.Chatter, *store.Db) {
	t.Helper()
	dir := t.TempDir()
	artifacts, err := cache.New(filepath.Join(dir, "cache"))
	require.NoError(t, err)
	db := store.New(filepath.Join(dir, "db.json"))
	model := ai.NewModel(ai.DefaultSettings(ai.ProviderOpenAI, "gpt-4o"), &scriptedVendor{reply: reply})
	return core.NewChatter(db, artifacts, model), db
}

func TestEnsurePersonaReusesFreshStoredPersona(t *testing.T) {
	chatter, db := newTestDeps(t, `{"style":"new"}`)
	newest := "500"
	stored := domain.NewPersona("jane", "", &newest, `{"style":"stored"}`)
	require.True(t, db.AddPersona(stored).Success)

	persona, err := ensurePersona(context.Background(), chatter, db, liveAccount("jane", "500"), false)
	require.NoError(t, err)
	assert.Equal(t, stored.ID, persona.ID)
	assert.Equal(t, `{"style":"stored"}`, persona.Data)
}

func TestEnsurePersonaReplacesStalePersona(t *testing.T) {
	chatter, db := newTestDeps(t, `{"style":"new"}`)
	old := "400"
	stored := domain.NewPersona("jane", "", &old, `{"style":"stored"}`)
	require.True(t, db.AddPersona(stored).Success)
	conversation := domain.NewConversation(stored.ID)
	require.True(t, db.AddConversation(conversation).Success)

	persona, err := ensurePersona(context.Background(), chatter, db, liveAccount("jane", "500"), false)
	require.NoError(t, err)
	assert.NotEqual(t, stored.ID, persona.ID)
	assert.Equal(t, `{"style":"new"}`, persona.Data)

	// The stale persona and its conversations are gone.
	assert.False(t, db.GetPersona(stored.ID).Success)
	assert.False(t, db.GetConversation(conversation.ID).Success)

	all := db.GetAllPersona()
	require.True(t, all.Success)
	require.Len(t, all.Value, 1)
	assert.Equal(t, persona.ID, all.Value[0].ID)
}

func TestEnsurePersonaSynthesizesWhenMissing(t *testing.T) {
	chatter, db := newTestDeps(t, `{"style":"fresh"}`)

	persona, err := ensurePersona(context.Background(), chatter, db, liveAccount("jane", "500"), false)
	require.NoError(t, err)
	assert.Equal(t, "jane", persona.Handle)
	assert.Equal(t, `{"style":"fresh"}`, persona.Data)
	assert.True(t, db.GetPersona(persona.ID).Success)
}
