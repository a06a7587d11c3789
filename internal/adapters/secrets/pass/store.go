package pass

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path"
	"strings"

	"github.com/bnema/clockify-timesheet/internal/domain"
	"github.com/bnema/clockify-timesheet/internal/ports"
)

// DefaultPrefix namespaces cts secrets inside the password store.
const DefaultPrefix = "cts"

var ErrUnavailable = errors.New("pass command unavailable")

type runFunc func(ctx context.Context, stdin string, args ...string) (stdout string, stderr string, err error)

// Store shells out to the pass(1) password manager.
type Store struct {
	prefix string
	run    runFunc
}

var _ ports.SecretStore = (*Store)(nil)

func NewStore(prefix string) *Store {
	return &Store{prefix: prefix, run: runPass}
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	name := s.entryName(key)
	if _, stderr, err := s.run(ctx, value+"\n", "insert", "--multiline", "--force", name); err != nil {
		return s.wrap("insert", name, err, stderr)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := s.entryName(key)
	stdout, stderr, err := s.run(ctx, "", "show", name)
	if err != nil {
		return "", s.wrap("show", name, err, stderr)
	}

	// The first line holds the secret; pass allows metadata below it.
	firstLine, _, _ := strings.Cut(stdout, "\n")
	return strings.TrimSuffix(firstLine, "\r"), nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	name := s.entryName(key)
	if _, stderr, err := s.run(ctx, "", "rm", "--force", name); err != nil {
		wrapped := s.wrap("rm", name, err, stderr)
		if errors.Is(wrapped, domain.ErrSecretNotFound) {
			return nil
		}
		return wrapped
	}

	return nil
}

func (s *Store) entryName(key string) string {
	key = strings.Trim(strings.TrimSpace(key), "/")
	if s.prefix == "" {
		return key
	}
	return path.Join(s.prefix, key)
}

func (s *Store) wrap(op string, name string, err error, stderr string) error {
	if errors.Is(err, ErrUnavailable) {
		return err
	}
	if strings.Contains(stderr, "is not in the password store") {
		return fmt.Errorf("pass %s %q: %w", op, name, domain.ErrSecretNotFound)
	}
	if stderr == "" {
		return fmt.Errorf("pass %s %q: %w", op, name, err)
	}
	return fmt.Errorf("pass %s %q: %w: %s", op, name, err, stderr)
}

func runPass(ctx context.Context, stdin string, args ...string) (string, string, error) {
	bin, err := exec.LookPath("pass")
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", "", ErrUnavailable
		}
		return "", "", fmt.Errorf("locate pass: %w", err)
	}

	cmd := exec.CommandContext(ctx, bin, args...)
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	return stdout.String(), strings.TrimSpace(stderr.String()), err
}
