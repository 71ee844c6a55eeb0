package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jumpigames/newsletter/internal/api"
	"github.com/jumpigames/newsletter/internal/factory"
	"github.com/jumpigames/newsletter/internal/testutil"
)

type cliHarness struct {
	app         *factory.TestApp
	serverURL   string
	sessionFile string
}

func newHarness(t *testing.T) *cliHarness {
	t.Helper()
	t.Setenv("JUMPI_SESSION", "")
	t.Setenv("JUMPI_ADMIN_CODE", "")

	app := factory.NewTestApp()
	server := httptest.NewServer(api.NewRouter(api.RouterConfig{
		Logger:               testutil.NopLogger(),
		Sessions:             app.Sessions,
		AuthService:          app.AuthService,
		NewsletterController: app.NewsletterController,
		BroadcastService:     app.BroadcastService,
	}))
	t.Cleanup(server.Close)

	return &cliHarness{
		app:         app,
		serverURL:   server.URL,
		sessionFile: filepath.Join(t.TempDir(), "session"),
	}
}

func (h *cliHarness) run(t *testing.T, format string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append([]string{
		"--server", h.serverURL,
		"--session-file", h.sessionFile,
		"--output", format,
	}, args...))

	err := cmd.ExecuteContext(t.Context())
	return out.String(), err
}

func (h *cliHarness) runJSON(t *testing.T, result any, args ...string) {
	t.Helper()
	output, err := h.run(t, "json", args...)
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), result))
}

func TestHealth(t *testing.T) {
	h := newHarness(t)

	output, err := h.run(t, "text", "health")
	require.NoError(t, err)
	assert.Equal(t, "Status: ok\n", output)
}

func TestLoginPersistsSession(t *testing.T) {
	h := newHarness(t)

	var status AuthStatus
	h.runJSON(t, &status, "admin", "status")
	assert.False(t, status.Authenticated)

	var msg MessageResult
	h.runJSON(t, &msg, "admin", "login", "--code", factory.TestAdminCode)
	assert.True(t, msg.Success)

	saved, err := os.ReadFile(h.sessionFile)
	require.NoError(t, err)
	assert.NotEmpty(t, saved)

	h.runJSON(t, &status, "admin", "check-auth")
	assert.True(t, status.Authenticated)

	h.runJSON(t, &msg, "admin", "logout")
	assert.Equal(t, "יצאת בהצלחה", msg.Message)
	assert.NoFileExists(t, h.sessionFile)

	h.runJSON(t, &status, "admin", "status")
	assert.False(t, status.Authenticated)
}

func TestLoginWrongCode(t *testing.T) {
	h := newHarness(t)

	_, err := h.run(t, "json", "admin", "login", "--code", "1111")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 401, apiErr.Status)
	assert.Equal(t, "INVALID_CODE", apiErr.Code)
	assert.NoFileExists(t, h.sessionFile)
}

func TestLoginCodeFromEnv(t *testing.T) {
	h := newHarness(t)
	t.Setenv("JUMPI_ADMIN_CODE", factory.TestAdminCode)

	_, err := h.run(t, "json", "admin", "login")
	require.NoError(t, err)
	assert.FileExists(t, h.sessionFile)
}

func TestSubscribeAndList(t *testing.T) {
	h := newHarness(t)

	var msg MessageResult
	h.runJSON(t, &msg, "subscribe", "--name", "Dana", "--email", "dana@example.com")
	assert.True(t, msg.Success)
	h.runJSON(t, &msg, "subscribe", "--name", "Noam", "--email", "noam@example.com", "--role", "player")

	_, err := h.run(t, "json", "subscribe", "--name", "Dana", "--email", "DANA@example.com")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "EMAIL_EXISTS", apiErr.Code)

	_, err = h.run(t, "json", "subscribe", "--name", "X", "--email", "x@example.com", "--role", "coach")
	assert.ErrorContains(t, err, "--role")

	// Admin views need a session
	_, err = h.run(t, "json", "subscribers")
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "UNAUTHORIZED", apiErr.Code)

	h.runJSON(t, &msg, "admin", "login", "--code", factory.TestAdminCode)

	var subs []Subscriber
	h.runJSON(t, &subs, "subscribers")
	require.Len(t, subs, 2)
	assert.ElementsMatch(t, []string{"parent", "player"}, []string{subs[0].Type, subs[1].Type})

	var stats Stats
	h.runJSON(t, &stats, "stats")
	assert.Equal(t, Stats{Total: 2, Today: 2}, stats)

	output, err := h.run(t, "text", "subscribers")
	require.NoError(t, err)
	assert.Contains(t, output, "DATE")
	assert.Contains(t, output, "dana@example.com")
}

func TestSendUpdate(t *testing.T) {
	h := newHarness(t)

	var msg MessageResult
	h.runJSON(t, &msg, "subscribe", "--name", "Dana", "--email", "dana@example.com")
	h.runJSON(t, &msg, "admin", "login", "--code", factory.TestAdminCode)

	bodyFile := filepath.Join(t.TempDir(), "message.txt")
	require.NoError(t, os.WriteFile(bodyFile, []byte("line one\nline two"), 0o600))

	var result SendUpdateResult
	h.runJSON(t, &result, "send-update", "--subject", "News", "--message-file", bodyFile)
	assert.Equal(t, 1, result.SentTo)
	assert.Zero(t, result.Failed)

	sent := h.app.MockSender.Messages()
	require.Len(t, sent, 1)
	assert.Equal(t, "dana@example.com", sent[0].To)
	assert.Contains(t, sent[0].HTML, "line one<br>line two")

	_, err := h.run(t, "json", "send-update", "--subject", "News")
	assert.Error(t, err)
}

func TestOutputText(t *testing.T) {
	var buf bytes.Buffer
	out := NewOutput("text", &buf)

	out.Print(SendUpdateResult{Success: true, Message: "done", SentTo: 2, Failed: 1})
	out.Print(AuthStatus{Authenticated: true})
	out.Print([]Subscriber{})

	assert.Equal(t, "done\nSent: 2\nFailed: 1\nAuthenticated: yes\nNo subscribers\n", buf.String())
}
