package ipc

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeAndSend(t *testing.T) {
	sock := filepath.Join(t.TempDir(), "aura.sock")

	got := make(chan ControlMessage, 1)
	srv, err := Serve(sock, func(msg ControlMessage) { got <- msg })
	require.NoError(t, err)
	defer srv.Close()

	require.NoError(t, Send(sock, "say", "open firefox"))

	select {
	case msg := <-got:
		assert.Equal(t, ControlMessage{Cmd: "say", Arg: "open firefox"}, msg)
	case <-time.After(2 * time.Second):
		t.Fatal("no message received")
	}
}

func TestSendWithoutServer(t *testing.T) {
	sock := filepath.Join(t.TempDir(), "gone.sock")
	assert.Error(t, Send(sock, "stop", ""))
}

func TestCloseRemovesSocket(t *testing.T) {
	sock := filepath.Join(t.TempDir(), "aura.sock")

	srv, err := Serve(sock, func(ControlMessage) {})
	require.NoError(t, err)

	_, err = os.Stat(sock)
	require.NoError(t, err)

	require.NoError(t, srv.Close())

	_, err = os.Stat(sock)
	assert.True(t, os.IsNotExist(err))
	assert.Error(t, Send(sock, "stop", ""))
}

func TestServeReplacesStaleSocket(t *testing.T) {
	sock := filepath.Join(t.TempDir(), "aura.sock")
	require.NoError(t, os.WriteFile(sock, nil, 0o644))

	srv, err := Serve(sock, func(ControlMessage) {})
	require.NoError(t, err)
	defer srv.Close()

	assert.NoError(t, Send(sock, "stop", ""))
}
