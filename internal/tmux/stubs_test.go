package tmux

import (
	"context"
	"errors"
	"sync"
	"testing"

	gotmux "github.com/atomicstack/gotmuxcc/gotmuxcc"
)

type stubCommander struct {
	output []byte
	err    error
}

func (s *stubCommander) Run() error {
	return s.err
}

func (s *stubCommander) Output() ([]byte, error) {
	return s.output, s.err
}

func withStubCommander(t *testing.T, fn func(name string, args ...string) commander) {
	t.Helper()
	orig := runExecCommand
	runExecCommand = func(_ context.Context, name string, args ...string) commander {
		return fn(name, args...)
	}
	t.Cleanup(func() { runExecCommand = orig })
}

type fakeClient struct {
	mu        sync.Mutex
	windows   []string
	listErr   error
	listCalls int
	messages  map[string]string
	switched  []gotmux.SwitchClientOptions
	selected  []string
	switchErr error
}

func (f *fakeClient) ListWindowsFormat(target, filter, format string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]string(nil), f.windows...), nil
}

func (f *fakeClient) DisplayMessage(target, format string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if msg, ok := f.messages[target+"|"+format]; ok {
		return msg, nil
	}
	return "", errors.New("no such message")
}

func (f *fakeClient) SwitchClient(opts *gotmux.SwitchClientOptions) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.switchErr != nil {
		return f.switchErr
	}
	f.switched = append(f.switched, *opts)
	return nil
}

func (f *fakeClient) SelectWindow(target string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.selected = append(f.selected, target)
	return nil
}

func (f *fakeClient) Close() error {
	return nil
}

func withStubTmux(t *testing.T, client *fakeClient) {
	t.Helper()
	orig := newTmux
	newTmux = func(string) (tmuxClient, error) {
		return client, nil
	}
	t.Cleanup(func() { newTmux = orig })
}
