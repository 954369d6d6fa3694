package lsp

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestFramingRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	payload := []byte(`{"jsonrpc":"2.0","method":"initialized"}`)
	if err := writeMessage(&buf, payload); err != nil {
		t.Fatalf("writeMessage: %v", err)
	}
	got, err := readMessage(bufio.NewReader(&buf))
	if err != nil {
		t.Fatalf("readMessage: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("payload = %q, want %q", got, payload)
	}
}

func TestReadMessageIgnoresOtherHeaders(t *testing.T) {
	in := "Content-Type: application/vscode-jsonrpc; charset=utf-8\r\n" +
		"Content-Length: 2\r\n\r\nok"
	got, err := readMessage(bufio.NewReader(strings.NewReader(in)))
	if err != nil {
		t.Fatalf("readMessage: %v", err)
	}
	if string(got) != "ok" {
		t.Fatalf("payload = %q, want ok", got)
	}
}

func TestReadMessageMissingLength(t *testing.T) {
	in := "Content-Type: application/vscode-jsonrpc\r\n\r\n{}"
	_, err := readMessage(bufio.NewReader(strings.NewReader(in)))
	if !errors.Is(err, errMissingContentLength) {
		t.Fatalf("err = %v, want the missing-header sentinel", err)
	}
}

func TestReadMessageBadLength(t *testing.T) {
	for _, in := range []string{
		"Content-Length: nope\r\n\r\n{}",
		"Content-Length: -4\r\n\r\n{}",
	} {
		if _, err := readMessage(bufio.NewReader(strings.NewReader(in))); err == nil {
			t.Errorf("%q: accepted a bad length", in)
		}
	}
}
