// Package selftest exercises a clipboard client against literal fixtures
// and reports pass/fail counts. It talks to a real device through
// whichever transport the client resolves, so it is an end-to-end check,
// not a unit test.
package selftest

import (
	"context"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/google/uuid"
)

// Clipboard is the facade surface the suites need.
type Clipboard interface {
	Get(ctx context.Context) (string, bool, error)
	Set(ctx context.Context, text string) error
}

// Client adds the transport report used by the aggregate run.
type Client interface {
	Clipboard
	ActiveTransport(ctx context.Context) string
}

// Result tallies one suite.
type Result struct {
	Passed int
	Total  int
}

func (r Result) OK() bool {
	return r.Passed == r.Total
}

const rule = "======================================================================"

var (
	pass = color.New(color.FgGreen)
	fail = color.New(color.FgRed, color.Bold)
)

type fixture struct {
	name string
	text string
}

// basicFixtures covers the character classes that break naive shell
// quoting: emoji, multi-script text, both quote styles, backslashes,
// control characters, and the empty string.
var basicFixtures = []fixture{
	{"Simple text", "Hello, World!"},
	{"Emojis", "Hello 🌍! Testing emojis: 🚀 💻 ✨ 🎉"},
	{"Special chars", "Special: !@#$%^&*()_+-=[]{}|;':\",./<>?"},
	{"Multiline", "Line 1\nLine 2\nLine 3\tTabbed"},
	{"International", "你好 مرحبا Здравствуй こんにちは 안녕하세요"},
	{"Single quote", "It's working"},
	{"Double quotes", `She said "Hello"`},
	{"Backslash", `Path: C:\Users\Test`},
	{"Mixed quotes", `It's a "test" with 'quotes'`},
	{"Empty string", ""},
}

// roundTrip sets text and reads it back. The second return value is the
// retrieved text for diagnostics; absence reads back as a mismatch.
func roundTrip(ctx context.Context, clip Clipboard, text string) (bool, string, error) {
	if err := clip.Set(ctx, text); err != nil {
		return false, "", err
	}
	got, ok, err := clip.Get(ctx)
	if err != nil {
		return false, "", err
	}
	if !ok {
		// Absence never equals a value, not even the empty string.
		return false, "(no content)", nil
	}
	return got == text, got, nil
}

// RunBasic runs the fixture suite and writes a per-case report to w.
func RunBasic(ctx context.Context, clip Clipboard, w io.Writer) Result {
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "BASIC CLIPBOARD TESTS")
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w)

	var r Result
	for _, f := range basicFixtures {
		r.Total++
		ok, got, err := roundTrip(ctx, clip, f.text)
		switch {
		case err != nil:
			fail.Fprintf(w, "✗ %-20s ERROR: %v\n", f.name, err)
		case ok:
			r.Passed++
			pass.Fprintf(w, "✓ %-20s PASS\n", f.name)
		default:
			fail.Fprintf(w, "✗ %-20s FAIL\n", f.name)
			fmt.Fprintf(w, "  Expected: %q\n", f.text)
			fmt.Fprintf(w, "  Got:      %q\n", got)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Results: %d/%d tests passed\n", r.Passed, r.Total)
	fmt.Fprintln(w, rule)
	return r
}

// RunStress runs the edge-case scenarios: a large payload, rapid
// sequential cycles, the full printable-ASCII range, and a freshness
// token that a stale clipboard could not already contain.
func RunStress(ctx context.Context, clip Clipboard, w io.Writer) Result {
	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "STRESS TESTS")
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w)

	var r Result

	r.Total++
	fmt.Fprintln(w, "TEST 1: Large text (5000 characters)")
	largeText := strings.Repeat("A", 5000) + " END"
	if ok, got, err := roundTrip(ctx, clip, largeText); err != nil {
		fail.Fprintf(w, "  ✗ ERROR: %v\n", err)
	} else if ok {
		r.Passed++
		pass.Fprintf(w, "  ✓ PASS (%d chars)\n", utf8.RuneCountInString(got))
	} else {
		fail.Fprintf(w, "  ✗ FAIL (expected %d, got %d chars)\n",
			utf8.RuneCountInString(largeText), utf8.RuneCountInString(got))
	}

	r.Total++
	fmt.Fprintln(w, "\nTEST 2: Rapid set/get operations (10 iterations)")
	successCount := 0
	var rapidErr error
	for i := 0; i < 10; i++ {
		text := fmt.Sprintf("Iteration %d: 🚀", i)
		ok, _, err := roundTrip(ctx, clip, text)
		if err != nil {
			rapidErr = err
			break
		}
		if ok {
			successCount++
		}
	}
	switch {
	case rapidErr != nil:
		fail.Fprintf(w, "  ✗ ERROR: %v\n", rapidErr)
	case successCount == 10:
		r.Passed++
		pass.Fprintf(w, "  ✓ PASS (10/10 iterations succeeded)\n")
	default:
		fail.Fprintf(w, "  ✗ FAIL (%d/10 iterations succeeded)\n", successCount)
	}

	r.Total++
	fmt.Fprintln(w, "\nTEST 3: All printable ASCII characters")
	var sb strings.Builder
	for i := 32; i < 127; i++ {
		sb.WriteByte(byte(i))
	}
	if ok, _, err := roundTrip(ctx, clip, sb.String()); err != nil {
		fail.Fprintf(w, "  ✗ ERROR: %v\n", err)
	} else if ok {
		r.Passed++
		pass.Fprintf(w, "  ✓ PASS (95 ASCII chars)\n")
	} else {
		fail.Fprintf(w, "  ✗ FAIL\n")
	}

	r.Total++
	fmt.Fprintln(w, "\nTEST 4: Freshness token")
	token := "droidclip-" + uuid.New().String()
	if ok, got, err := roundTrip(ctx, clip, token); err != nil {
		fail.Fprintf(w, "  ✗ ERROR: %v\n", err)
	} else if ok {
		r.Passed++
		pass.Fprintf(w, "  ✓ PASS (token round-tripped)\n")
	} else {
		fail.Fprintf(w, "  ✗ FAIL (expected %q, got %q)\n", token, got)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Stress Tests: %d/%d passed\n", r.Passed, r.Total)
	fmt.Fprintln(w, rule)
	return r
}

// RunAll runs both suites and writes the aggregate report, including
// which transport actually served the calls. It returns true when every
// test passed.
func RunAll(ctx context.Context, c Client, w io.Writer) bool {
	basic := RunBasic(ctx, c, w)
	stress := RunStress(ctx, c, w)

	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "FINAL RESULTS")
	fmt.Fprintln(w, rule)

	switch c.ActiveTransport(ctx) {
	case "http":
		fmt.Fprintln(w, "Transport used: http (socket server)")
	default:
		fmt.Fprintln(w, "Transport used: adb (content provider)")
	}

	if basic.OK() && stress.OK() {
		pass.Fprintln(w, "\nALL TESTS PASSED")
		return true
	}
	fail.Fprintln(w, "\nSOME TESTS FAILED")
	return false
}
