package service

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/rocketscienceinc/tictactoe3d/internal/apperror"
)

// ConsoleInput hands out typed lines one at a time. The blocking read runs in
// its own goroutine, so a canceled context releases the caller even while
// the terminal stays silent. Human seats share one ConsoleInput.
type ConsoleInput struct {
	scanner *bufio.Scanner
	once    sync.Once
	lines   chan string
	err     error
}

func NewConsoleInput(in io.Reader) *ConsoleInput {
	return &ConsoleInput{
		scanner: bufio.NewScanner(in),
		lines:   make(chan string),
	}
}

// ReadLine - waits for the next line or for ctx to be done.
func (that *ConsoleInput) ReadLine(ctx context.Context) (string, error) {
	that.once.Do(func() {
		go that.scan()
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-that.lines:
		if !ok {
			if that.err != nil {
				return "", fmt.Errorf("failed to read move: %w", that.err)
			}
			return "", apperror.ErrInputClosed
		}
		return line, nil
	}
}

// scan owns the scanner. err is written before lines is closed.
func (that *ConsoleInput) scan() {
	defer close(that.lines)

	for that.scanner.Scan() {
		that.lines <- that.scanner.Text()
	}

	that.err = that.scanner.Err()
}
