package driver

import (
	"bytes"
	"strings"
	"testing"

	"ferrum/runtime-go/pkg/bridge"
	"ferrum/runtime-go/pkg/runtime"
)

func TestProxyRoundTrip(t *testing.T) {
	program := request(func(resp runtime.Any) runtime.Any {
		return request(func(resp2 runtime.Any) runtime.Any {
			sum := runtime.ToInt(resp) + runtime.ToInt(runtime.Head(resp2))
			return runtime.MkList(runtime.MkList(text("done"), runtime.FromInt(sum)), runtime.Nil())
		}, "second")
	}, "first", text("q"))

	var out bytes.Buffer
	p := NewProxy(strings.NewReader("40\n[2,\"x\"]\n"), &out, nil)
	last, err := p.Run(program)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	want := "[\"first\",\"q\"]\n[\"second\"]\n[\"done\",42]\n"
	if out.String() != want {
		t.Fatalf("proxy output = %q, want %q", out.String(), want)
	}
	if got := runtime.Show(last); got != `["done",42]` {
		t.Fatalf("final request = %s", got)
	}
}

func TestProxyErrors(t *testing.T) {
	k := bridge.Function1(func(runtime.Any) runtime.Any {
		return runtime.MkList(text("end"), runtime.Nil())
	})
	program := runtime.MkList(runtime.MkList(text("ask")), k)

	if _, err := NewProxy(strings.NewReader(""), &bytes.Buffer{}, nil).Run(program); err == nil {
		t.Fatalf("expected error on closed input")
	}
	if _, err := NewProxy(strings.NewReader("[1\n"), &bytes.Buffer{}, nil).Run(program); err == nil || !strings.Contains(err.Error(), "parse response") {
		t.Fatalf("malformed response error = %v", err)
	}
	last, err := NewProxy(strings.NewReader("7"), &bytes.Buffer{}, nil).Run(program)
	if err != nil || runtime.ToStr(last).Data != "end" {
		t.Fatalf("unterminated last line = %v, %v", last, err)
	}
}
