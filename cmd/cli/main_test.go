package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRun_EncodeDecode(t *testing.T) {
	const raw = "https://example.com/a b.png?x=1&y=2"

	var out bytes.Buffer
	if err := run([]string{"encode", raw}, &out); err != nil {
		t.Fatalf("encode 失败：%v", err)
	}
	ref := strings.TrimSpace(out.String())
	if strings.Contains(ref, "/") {
		t.Fatalf("引用不应包含 /：%q", ref)
	}

	out.Reset()
	if err := run([]string{"decode", ref + ".png"}, &out); err != nil {
		t.Fatalf("decode 失败：%v", err)
	}
	if got := strings.TrimSpace(out.String()); got != raw {
		t.Fatalf("往返不一致：%q", got)
	}
}

func TestRun_EncodePath(t *testing.T) {
	var out bytes.Buffer
	if err := run([]string{"encode", "-path", "https://example.com/x.jpg"}, &out); err != nil {
		t.Fatalf("encode 失败：%v", err)
	}
	got := strings.TrimSpace(out.String())
	if !strings.HasPrefix(got, "/proxy-image/") || !strings.HasSuffix(got, ".png") {
		t.Fatalf("代理路径不符：%q", got)
	}
}

func TestRun_Errors(t *testing.T) {
	cases := [][]string{
		nil,
		{"encode"},
		{"decode"},
		{"decode", "%%%"},
		{"bogus"},
	}
	for _, args := range cases {
		if err := run(args, &bytes.Buffer{}); err == nil {
			t.Fatalf("%v：期望错误", args)
		}
	}
}
