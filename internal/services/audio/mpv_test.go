package audio

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"path/filepath"
	"sync"
	"testing"

	"github.com/gabrielcapilla/playbutton/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMpv answers every command on the IPC socket, preceded by an event
// line the client has to skip.
type fakeMpv struct {
	mu       sync.Mutex
	commands [][]any
	reject   string
}

func (f *fakeMpv) serve(t *testing.T, socketPath string) {
	t.Helper()
	ln, err := net.Listen("unix", socketPath)
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			f.handle(conn)
		}
	}()
}

func (f *fakeMpv) handle(conn net.Conn) {
	defer conn.Close()
	scanner := bufio.NewScanner(conn)
	if !scanner.Scan() {
		return
	}
	var cmd MpvCommand
	if err := json.Unmarshal(scanner.Bytes(), &cmd); err != nil {
		return
	}

	f.mu.Lock()
	f.commands = append(f.commands, cmd.Command)
	status := "success"
	if f.reject != "" && cmd.Command[0] == f.reject {
		status = "invalid parameter"
	}
	f.mu.Unlock()

	fmt.Fprintln(conn, `{"event":"playback-restart"}`)
	fmt.Fprintf(conn, `{"error":%q,"request_id":%d}`+"\n", status, cmd.RequestID)
}

func (f *fakeMpv) sent() [][]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]any(nil), f.commands...)
}

func newTestMpv(t *testing.T) (*MpvAudio, *fakeMpv) {
	t.Helper()
	socketPath := filepath.Join(t.TempDir(), "mpv.sock")
	a := NewMpvAudio(socketPath)
	a.start = func() error { return nil }

	fake := &fakeMpv{}
	fake.serve(t, socketPath)
	return a, fake
}

func TestMpvAudio_StartPause(t *testing.T) {
	a, fake := newTestMpv(t)

	p, err := a.Acquire("https://example.com/song.mp3")
	require.NoError(t, err)

	p.Pause()
	assert.Empty(t, fake.sent(), "pausing before the first start sends nothing")

	p.Start()
	p.Pause()
	p.Start()

	want := [][]any{
		{"loadfile", "https://example.com/song.mp3", "replace"},
		{"set_property", "pause", false},
		{"set_property", "pause", true},
		{"set_property", "pause", false},
	}
	assert.Equal(t, want, fake.sent())
}

func TestMpvAudio_RejectedLoadIsRetried(t *testing.T) {
	a, fake := newTestMpv(t)
	fake.mu.Lock()
	fake.reject = "loadfile"
	fake.mu.Unlock()

	p, err := a.Acquire("https://example.com/song.mp3")
	require.NoError(t, err)

	p.Start()
	assert.Len(t, fake.sent(), 1, "no resume after a failed load")

	fake.mu.Lock()
	fake.reject = ""
	fake.mu.Unlock()

	p.Start()
	sent := fake.sent()
	require.Len(t, sent, 3)
	assert.Equal(t, "loadfile", sent[1][0])
}

func TestMpvAudio_AcquireStartsProcess(t *testing.T) {
	a, fake := newTestMpv(t)
	starts := 0
	a.start = func() error {
		starts++
		return nil
	}

	_, err := a.Acquire("https://example.com/song.mp3")
	require.NoError(t, err)
	assert.Equal(t, 1, starts)
	assert.Empty(t, fake.sent(), "nothing is loaded until the first start")

	a.start = func() error { return errors.New("mpv not installed") }
	_, err = a.Acquire("https://example.com/other.mp3")
	require.Error(t, err)
}

func TestMpvAudio_AcquireMissingFile(t *testing.T) {
	a := NewMpvAudio(filepath.Join(t.TempDir(), "mpv.sock"))
	_, err := a.Acquire(filepath.Join(t.TempDir(), "missing.flac"))
	require.ErrorIs(t, err, domain.ErrResourceNotFound)
	require.NoError(t, a.Close())
}
