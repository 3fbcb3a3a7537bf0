package audio

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/gabrielcapilla/playbutton/internal/domain"
	"github.com/gabrielcapilla/playbutton/internal/logger"
	"github.com/gabrielcapilla/playbutton/internal/ports"
)

const (
	socketCheckRetries  = 20
	socketCheckInterval = 100 * time.Millisecond
	socketReadDeadline  = 500 * time.Millisecond
)

type MpvCommand struct {
	Command   []any `json:"command"`
	RequestID int   `json:"request_id,omitempty"`
}

type MpvResponse struct {
	Error     string `json:"error"`
	Data      any    `json:"data"`
	RequestID int    `json:"request_id"`
	Event     string `json:"event"`
}

// MpvAudio plays resources through an idle mpv process controlled over its
// JSON IPC socket. The process is started by Acquire and restarted by Start
// if it has gone away.
type MpvAudio struct {
	socketPath string
	cmd        *exec.Cmd
	mu         sync.Mutex
	start      func() error
	requestID  int
}

func NewMpvAudio(socketPath string) *MpvAudio {
	os.Remove(socketPath)
	a := &MpvAudio{socketPath: socketPath}
	a.start = a.startMpvProcess
	return a
}

func (a *MpvAudio) isProcessRunning() bool {
	return a.cmd != nil && a.cmd.Process != nil
}

func (a *MpvAudio) startMpvProcess() error {
	if a.isProcessRunning() {
		if a.cmd.ProcessState != nil && a.cmd.ProcessState.Exited() {
			a.cmd = nil
		} else {
			return nil
		}
	}

	logger.Log.Info().Msg("Starting new mpv process...")
	a.cmd = exec.Command("mpv",
		"--idle",
		"--input-ipc-server="+a.socketPath,
		"--no-video",
		"--no-config",
		"--loop-file=no",
	)
	a.cmd.Stdout = logger.Log
	a.cmd.Stderr = logger.Log

	if err := a.cmd.Start(); err != nil {
		a.cmd = nil
		return fmt.Errorf("could not start mpv process: %w", err)
	}

	for i := 0; i < socketCheckRetries; i++ {
		if _, err := os.Stat(a.socketPath); err == nil {
			logger.Log.Info().Msg("mpv socket detected. Process ready.")
			return nil
		}
		time.Sleep(socketCheckInterval)
	}

	logger.Log.Error().Str("socket", a.socketPath).Msg("Timed out waiting for mpv socket.")
	a.cmd.Process.Kill()
	a.cmd = nil
	return fmt.Errorf("mpv process started but socket did not appear at %s", a.socketPath)
}

func (a *MpvAudio) sendCommand(args ...any) (MpvResponse, error) {
	conn, err := net.Dial("unix", a.socketPath)
	if err != nil {
		return MpvResponse{}, fmt.Errorf("could not connect to mpv socket: %w", err)
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(socketReadDeadline))

	a.requestID++
	cmd := MpvCommand{Command: args, RequestID: a.requestID}
	if err := json.NewEncoder(conn).Encode(cmd); err != nil {
		return MpvResponse{}, fmt.Errorf("error sending mpv command: %w", err)
	}

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		var resp MpvResponse
		if err := json.Unmarshal(scanner.Bytes(), &resp); err != nil {
			logger.Log.Warn().Str("line", scanner.Text()).Err(err).Msg("Could not parse line from mpv")
			continue
		}
		if resp.Event != "" || resp.RequestID != cmd.RequestID {
			continue
		}
		if resp.Error != "success" {
			return resp, fmt.Errorf("mpv rejected %v: %s", args[0], resp.Error)
		}
		return resp, nil
	}
	if err := scanner.Err(); err != nil {
		return MpvResponse{}, fmt.Errorf("error reading from mpv socket: %w", err)
	}
	return MpvResponse{}, fmt.Errorf("mpv closed the connection without answering %v", args[0])
}

// Acquire checks that a local resource exists and brings up the mpv process;
// URLs are passed to mpv as is. Waiting for the socket happens here rather
// than in Start, which runs on the UI loop.
func (a *MpvAudio) Acquire(resource string) (ports.Playable, error) {
	if _, err := os.Stat(resource); errors.Is(err, fs.ErrNotExist) && !isURL(resource) {
		return nil, fmt.Errorf("%w: %s", domain.ErrResourceNotFound, resource)
	}

	a.mu.Lock()
	err := a.start()
	a.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return &mpvPlayable{audio: a, resource: resource}, nil
}

func (a *MpvAudio) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.isProcessRunning() {
		if err := a.cmd.Process.Kill(); err != nil {
			logger.Log.Error().Err(err).Msg("Error terminating mpv process")
		}
		a.cmd.Wait()
		a.cmd = nil
	}
	os.Remove(a.socketPath)
	return nil
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

type mpvPlayable struct {
	audio    *MpvAudio
	resource string
	loaded   bool
}

func (p *mpvPlayable) Start() {
	a := p.audio
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.start(); err != nil {
		logger.Log.Error().Err(err).Msg("Could not start mpv")
		return
	}
	if !p.loaded {
		if _, err := a.sendCommand("loadfile", p.resource, "replace"); err != nil {
			logger.Log.Error().Err(err).Str("resource", p.resource).Msg("Could not load file into mpv")
			return
		}
		p.loaded = true
	}
	if _, err := a.sendCommand("set_property", "pause", false); err != nil {
		logger.Log.Error().Err(err).Msg("Could not resume mpv")
	}
}

func (p *mpvPlayable) Pause() {
	a := p.audio
	a.mu.Lock()
	defer a.mu.Unlock()

	if !p.loaded {
		return
	}
	if _, err := a.sendCommand("set_property", "pause", true); err != nil {
		logger.Log.Error().Err(err).Msg("Could not pause mpv")
	}
}
