package ytdlp

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"sync"

	"tunepull/internal/logging"
)

type commandExecutor struct {
	logger *slog.Logger
}

func (e commandExecutor) Run(ctx context.Context, binary string, args []string, onStdout func(string)) error {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("stderr pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start command: %w", err)
	}

	var wg sync.WaitGroup
	var scanErr error
	var once sync.Once

	scan := func(r io.Reader, forward func(string)) {
		defer wg.Done()
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			forward(scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			once.Do(func() {
				scanErr = err
			})
		}
	}

	forward := func(line string) {
		if onStdout != nil {
			onStdout(line)
			return
		}
		e.log(line)
	}

	wg.Add(2)
	go scan(stdout, forward)
	go scan(stderr, e.log)

	wg.Wait()
	if scanErr != nil {
		// The child may be blocked writing to a pipe nobody drains anymore.
		// Kill it, then reap it so no process entry is left behind.
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
		return fmt.Errorf("scan output: %w", scanErr)
	}
	return cmd.Wait()
}

// log routes yt-dlp's own chatter through the logger so command output
// streams such as --json results stay clean.
func (e commandExecutor) log(line string) {
	logger := e.logger
	if logger == nil {
		logger = logging.NewNop()
	}
	logger.Debug("yt-dlp output", logging.String("line", line))
}
