package recognize

import (
	"context"
	"fmt"
	"strings"
)

// stubRunner records invocations and serves canned outputs keyed by
// command name, so no external binaries run in tests.
type stubRunner struct {
	calls   [][]string
	outputs map[string]string // command name -> stdout
	fail    map[string]error  // command name -> forced error
	missing map[string]bool   // command name -> LookPath failure
}

func newStubRunner() *stubRunner {
	return &stubRunner{
		outputs: map[string]string{},
		fail:    map[string]error{},
		missing: map[string]bool{},
	}
}

func (s *stubRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	s.calls = append(s.calls, append([]string{name}, args...))
	if err, ok := s.fail[name]; ok {
		return nil, []byte("stub failure"), err
	}
	return []byte(s.outputs[name]), nil, nil
}

func (s *stubRunner) LookPath(name string) (string, error) {
	if s.missing[name] {
		return "", fmt.Errorf("exec: %q: executable file not found in $PATH", name)
	}
	return "/usr/bin/" + name, nil
}

// argsFor returns the recorded argv of the n-th call to name (0-based),
// or nil if there were fewer calls.
func (s *stubRunner) argsFor(name string, n int) []string {
	seen := 0
	for _, call := range s.calls {
		if call[0] != name {
			continue
		}
		if seen == n {
			return call[1:]
		}
		seen++
	}
	return nil
}

func (s *stubRunner) countCalls(name string) int {
	c := 0
	for _, call := range s.calls {
		if call[0] == name {
			c++
		}
	}
	return c
}

// tsvFor builds a minimal tesseract TSV body with the given word
// confidences.
func tsvFor(confs ...int) string {
	var sb strings.Builder
	sb.WriteString("level\tpage_num\tblock_num\tpar_num\tline_num\tword_num\tleft\ttop\twidth\theight\tconf\ttext\n")
	for i, c := range confs {
		fmt.Fprintf(&sb, "5\t1\t1\t1\t1\t%d\t0\t0\t10\t10\t%d\tw%d\n", i+1, c, i)
	}
	return sb.String()
}
