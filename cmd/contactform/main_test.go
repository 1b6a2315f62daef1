package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-contactform/pkg/config"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRenderCommand_ShortFirstName(t *testing.T) {
	out, err := runCLI(t, "render", "--first-name", "Cat")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "Error: firstName must have at least 5 characters.") {
		t.Fatalf("expected first name error\n%s", out)
	}
	if strings.Count(out, "Error: ") != 1 {
		t.Fatalf("expected only the touched field to show an error\n%s", out)
	}
}

func TestRenderCommand_SubmitSnapshot(t *testing.T) {
	out, err := runCLI(t, "render", "--snapshot", "--submit",
		"--first-name", "Sebastian", "--last-name", "Mohan", "--email", "imacat@cat.com")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, fragment := range []string{`"submitted": true`, `"testId": "firstnameDisplay"`} {
		if !strings.Contains(out, fragment) {
			t.Fatalf("expected %q in snapshot\n%s", fragment, out)
		}
	}
	if strings.Contains(out, "messageDisplay") {
		t.Fatalf("expected no message display\n%s", out)
	}
}

func TestRenderCommand_ConfigCopyAndOutputFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "contact.yaml")
	if err := os.WriteFile(cfgPath, []byte("form:\n  title: Say hello\nrules:\n  minFirstNameLength: 2\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	outPath := filepath.Join(dir, "form.html")

	if _, err := runCLI(t, "--config", cfgPath, "render", "--first-name", "Al", "--output", outPath); err != nil {
		t.Fatalf("render: %v", err)
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	html := string(data)
	if !strings.Contains(html, "<h1>Say hello</h1>") || strings.Contains(html, "Error: ") {
		t.Fatalf("unexpected output\n%s", html)
	}
}

func TestRenderCommand_UnknownRenderer(t *testing.T) {
	if _, err := runCLI(t, "render", "--renderer", "pdf"); err == nil {
		t.Fatalf("expected error for unknown renderer")
	}
}

func TestServerHandler_ServesFormAndAssets(t *testing.T) {
	cfg := config.Default()
	cfg.Server.BasePath = "/forms"

	handler, err := newServerHandler(cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("handler: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/forms/contact", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `href="/forms/assets/contactform-vanilla.css"`) {
		t.Fatalf("expected stylesheet link\n%s", rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/forms/assets/contactform-vanilla.css", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected stylesheet status 200, got %d", rec.Code)
	}
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	cfg := config.Default()
	cfg.Server.Addr = "127.0.0.1:0"
	cfg.Server.ShutdownTimeout = "1s"

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ready := make(chan string, 1)
	done := make(chan error, 1)
	go func() {
		done <- serve(ctx, cfg, zap.NewNop(), ready)
	}()

	var addr string
	select {
	case addr = <-ready:
	case err := <-done:
		t.Fatalf("serve exited early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatalf("server did not start")
	}

	client := &http.Client{Timeout: 5 * time.Second}
	res, err := client.Get("http://" + addr + "/contact")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	_ = res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", res.StatusCode)
	}
	client.CloseIdleConnections()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("server did not shut down")
	}
}
