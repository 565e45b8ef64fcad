package speech

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

type localConfig struct {
	Binary string `json:"binary"`
	Model  string `json:"model"`
}

// localProvider shells out to a whisper.cpp style binary. It is the offline
// terminal of every fallback chain and must not depend on credentials.
type localProvider struct {
	binary string
	model  string
}

func init() {
	Register(MethodLocal, createLocalProvider)
}

func createLocalProvider(args interface{}) (Provider, error) {
	cfg := &localConfig{}
	if err := decodeConfig(args, cfg); err != nil {
		return nil, err
	}
	binary := cfg.Binary
	if binary == "" {
		binary = "whisper-cli"
	}
	return &localProvider{binary: binary, model: cfg.Model}, nil
}

func (p *localProvider) Name() Method {
	return MethodLocal
}

func (p *localProvider) Transcribe(ctx context.Context, req Request) (*Result, error) {
	tmpDir, err := os.MkdirTemp("", "khizana-transcribe-*")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmpDir)

	name := req.FileName
	if name == "" {
		name = "recording"
	}
	mediaPath := filepath.Join(tmpDir, filepath.Base(name))
	if err := os.WriteFile(mediaPath, req.Media, 0o600); err != nil {
		return nil, err
	}

	args := []string{"-f", mediaPath, "--no-timestamps"}
	if p.model != "" {
		args = append(args, "-m", p.model)
	}
	if req.Language != "" {
		args = append(args, "-l", req.Language)
	}
	cmd := exec.CommandContext(ctx, p.binary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("local transcription failed: %v: %s", err, strings.TrimSpace(stderr.String()))
	}
	text := strings.TrimSpace(stdout.String())
	if text == "" {
		return nil, fmt.Errorf("local transcription produced no output")
	}
	return &Result{Text: text}, nil
}
