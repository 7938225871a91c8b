package capture_test

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/goliatone/go-htfield/pkg/capture"
)

func TestCaptureReturnsWrittenTextAndLeavesTargetUntouched(t *testing.T) {
	var ambient bytes.Buffer
	sink := capture.NewSink(&ambient)

	out, err := sink.Capture(func(w io.Writer) error {
		_, err := io.WriteString(w, "<input />")
		return err
	})
	if err != nil {
		t.Fatalf("capture: %v", err)
	}
	if out != "<input />" {
		t.Fatalf("captured %q, want %q", out, "<input />")
	}
	if ambient.Len() != 0 {
		t.Fatalf("ambient sink received %q", ambient.String())
	}
	if sink.Target() != &ambient {
		t.Fatalf("target was not restored")
	}
}

func TestCaptureRestoresTargetOnError(t *testing.T) {
	var ambient bytes.Buffer
	sink := capture.NewSink(&ambient)
	boom := errors.New("boom")

	out, err := sink.Capture(func(w io.Writer) error {
		fmt.Fprint(w, "partial")
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if out != "partial" {
		t.Fatalf("partial output %q", out)
	}

	fmt.Fprint(sink, "after")
	if ambient.String() != "after" {
		t.Fatalf("ambient got %q, want %q", ambient.String(), "after")
	}
}

func TestCaptureRestoresTargetOnPanic(t *testing.T) {
	var ambient bytes.Buffer
	sink := capture.NewSink(&ambient)

	func() {
		defer func() {
			if recover() == nil {
				t.Fatalf("expected panic to propagate")
			}
		}()
		_, _ = sink.Capture(func(w io.Writer) error {
			fmt.Fprint(w, "lost")
			panic("render failed")
		})
	}()

	if sink.Target() != &ambient {
		t.Fatalf("target was not restored after panic")
	}
	if ambient.Len() != 0 {
		t.Fatalf("ambient sink received %q", ambient.String())
	}
}

func TestNestedCaptures(t *testing.T) {
	var ambient bytes.Buffer
	sink := capture.NewSink(&ambient)

	outer, err := sink.Capture(func(w io.Writer) error {
		fmt.Fprint(w, "[")
		inner, err := sink.Capture(func(w io.Writer) error {
			_, err := fmt.Fprint(w, "inner")
			return err
		})
		if err != nil {
			return err
		}
		fmt.Fprint(w, len(inner))
		_, err = fmt.Fprint(w, "]")
		return err
	})
	if err != nil {
		t.Fatalf("capture: %v", err)
	}
	if outer != "[5]" {
		t.Fatalf("outer capture %q", outer)
	}
	if ambient.Len() != 0 {
		t.Fatalf("ambient sink received %q", ambient.String())
	}
}

func TestNilWriterDiscards(t *testing.T) {
	sink := capture.NewSink(nil)
	if _, err := fmt.Fprint(sink, "x"); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestConcurrentCapturesStayIsolated(t *testing.T) {
	var ambient bytes.Buffer
	sink := capture.NewSink(&ambient)

	const workers = 50
	var wg sync.WaitGroup
	results := make([]string, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			token := fmt.Sprintf("[f%d]", i)
			results[i], _ = sink.Capture(func(w io.Writer) error {
				for n := 0; n < 5; n++ {
					if _, err := io.WriteString(w, token); err != nil {
						return err
					}
				}
				return nil
			})
		}(i)
	}
	wg.Wait()

	for i, got := range results {
		want := strings.Repeat(fmt.Sprintf("[f%d]", i), 5)
		if got != want {
			t.Fatalf("worker %d captured %q, want %q", i, got, want)
		}
	}
	if sink.Target() != &ambient {
		t.Fatalf("target was not restored")
	}
	if ambient.Len() != 0 {
		t.Fatalf("ambient sink received %q", ambient.String())
	}
}

func TestOverlappingCapturesRestoreInAnyOrder(t *testing.T) {
	var ambient bytes.Buffer
	sink := capture.NewSink(&ambient)

	firstStarted := make(chan struct{})
	releaseFirst := make(chan struct{})
	secondDone := make(chan struct{})

	var first string
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		first, _ = sink.Capture(func(w io.Writer) error {
			io.WriteString(w, "first")
			close(firstStarted)
			<-releaseFirst
			return nil
		})
	}()

	<-firstStarted
	go func() {
		defer close(secondDone)
		out, _ := sink.Capture(func(w io.Writer) error {
			_, err := io.WriteString(w, "second")
			return err
		})
		if out != "second" {
			t.Errorf("second capture %q", out)
		}
	}()
	<-secondDone
	close(releaseFirst)
	wg.Wait()

	if first != "first" {
		t.Fatalf("first capture %q", first)
	}
	fmt.Fprint(sink, "after")
	if ambient.String() != "after" {
		t.Fatalf("ambient got %q, want %q", ambient.String(), "after")
	}
}

func TestSinkWritesDuringCaptureAreCaptured(t *testing.T) {
	var ambient bytes.Buffer
	sink := capture.NewSink(&ambient)

	out, err := sink.Capture(func(w io.Writer) error {
		fmt.Fprint(w, "<a>")
		_, err := fmt.Fprint(sink, "<b>")
		return err
	})
	if err != nil {
		t.Fatalf("capture: %v", err)
	}
	if out != "<a><b>" {
		t.Fatalf("captured %q", out)
	}
	if ambient.Len() != 0 {
		t.Fatalf("ambient sink received %q", ambient.String())
	}
}
