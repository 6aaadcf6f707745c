package mpv

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/llehouerou/flipplayer/internal/runloop"
)

const (
	socketWaitRetries = 20
	socketWaitDelay   = 150 * time.Millisecond
	quitGrace         = 2 * time.Second
)

// Options configures the mpv process.
type Options struct {
	// Binary defaults to "mpv" on PATH.
	Binary string
	Title  string
	// ExtraArgs are appended after the built-in flags.
	ExtraArgs []string
}

type process struct {
	cmd        *exec.Cmd
	socketPath string
	exited     chan struct{}
}

// Launch starts an idle mpv window and connects to it. The window stays open
// between sources; playback starts when an adapter loads one.
func Launch(ctx context.Context, loop *runloop.Loop, opts Options) (*Element, error) {
	binary := opts.Binary
	if binary == "" {
		binary = "mpv"
	}

	socketPath, err := socketName()
	if err != nil {
		return nil, err
	}

	args := []string{
		"--no-terminal",
		"--really-quiet",
		fmt.Sprintf("--input-ipc-server=%s", socketPath),
		"--idle=yes",
		"--force-window=yes",
		"--keep-open=yes",
		"--pause=yes",
	}
	if opts.Title != "" {
		args = append(args, fmt.Sprintf("--title=%s", opts.Title))
	}
	args = append(args, opts.ExtraArgs...)

	cmd := exec.CommandContext(ctx, binary, args...)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start mpv: %w", err)
	}

	p := &process{cmd: cmd, socketPath: socketPath, exited: make(chan struct{})}
	go func() {
		_ = cmd.Wait()
		close(p.exited)
	}()

	if err := p.waitForSocket(); err != nil {
		p.kill()
		return nil, fmt.Errorf("mpv socket not ready: %w", err)
	}

	e, err := Dial(loop, socketPath)
	if err != nil {
		p.kill()
		return nil, err
	}
	e.proc = p
	return e, nil
}

func socketName() (string, error) {
	random := make([]byte, 4)
	if _, err := rand.Read(random); err != nil {
		return "", fmt.Errorf("generate socket name: %w", err)
	}
	return filepath.Join(os.TempDir(), fmt.Sprintf("flipplayer-%x.sock", random)), nil
}

// waitForSocket polls until mpv accepts connections on the IPC socket.
func (p *process) waitForSocket() error {
	for range socketWaitRetries {
		time.Sleep(socketWaitDelay)

		select {
		case <-p.exited:
			return errors.New("mpv exited before socket was ready")
		default:
		}

		conn, err := net.Dial("unix", p.socketPath)
		if err == nil {
			conn.Close()
			return nil
		}
	}
	return fmt.Errorf("socket %s not ready after %d attempts", p.socketPath, socketWaitRetries)
}

// stop waits briefly for mpv to honor quit, then kills it.
func (p *process) stop() {
	select {
	case <-p.exited:
	case <-time.After(quitGrace):
		p.kill()
	}
	_ = os.Remove(p.socketPath)
}

func (p *process) kill() {
	select {
	case <-p.exited:
	default:
		if p.cmd.Process != nil {
			_ = p.cmd.Process.Kill()
		}
	}
}
