package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"
)

type fakeExec struct {
	loggedIn bool
	calls    []string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Signup(ctx context.Context) error {
	f.calls = append(f.calls, "signup")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Signin(ctx context.Context) error {
	f.calls = append(f.calls, "signin")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Me(ctx context.Context) error { f.calls = append(f.calls, "me"); return nil }
func (f *fakeExec) Logout(ctx context.Context) error {
	f.calls = append(f.calls, "logout")
	f.loggedIn = false
	return nil
}

func silencePrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		parts := make([]string, 0, len(a))
		for _, v := range a {
			if s, ok := v.(string); ok {
				parts = append(parts, s)
			}
		}
		lines = append(lines, strings.Join(parts, " "))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func TestRunREPL_Flow(t *testing.T) {
	silencePrintln(t)

	input := strings.Join([]string{
		"help",
		"me",
		"login",
		"me",
		"",
		"logout",
		"register",
		"foobar",
		"exit",
		"me",
	}, "\n")

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, bufio.NewReader(strings.NewReader(input)))

	want := []string{"signin", "me", "logout", "signup"}
	if strings.Join(exec.calls, ",") != strings.Join(want, ",") {
		t.Fatalf("calls = %v, want %v", exec.calls, want)
	}
}

func TestRunREPL_EOFWithoutNewline(t *testing.T) {
	silencePrintln(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("signin")))

	if len(exec.calls) != 1 || exec.calls[0] != "signin" {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}

func TestRunREPL_HelpDependsOnSession(t *testing.T) {
	lines := silencePrintln(t)

	runREPL(context.Background(), &fakeExec{}, func() string { return "" }, bufio.NewReader(strings.NewReader("help\nquit\n")))
	if !containsLine(*lines, "signup") {
		t.Fatalf("anonymous help should offer signup: %v", *lines)
	}

	*lines = nil
	runREPL(context.Background(), &fakeExec{loggedIn: true}, func() string { return "" }, bufio.NewReader(strings.NewReader("help\nquit\n")))
	if !containsLine(*lines, "logout") {
		t.Fatalf("signed-in help should offer logout: %v", *lines)
	}
}

func containsLine(lines []string, sub string) bool {
	for _, l := range lines {
		if strings.Contains(l, "Available commands") && strings.Contains(l, sub) {
			return true
		}
	}
	return false
}
