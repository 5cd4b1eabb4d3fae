package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	logFileName = "aether.log"
	maxLogSize  = 10 * 1024 * 1024 // 10MB
)

// defaultLogPath is used when -debug is given without -log
func defaultLogPath() string {
	return filepath.Join(os.TempDir(), logFileName)
}

// setupLogging points the standard logger at path, or discards output when path is empty
// The terminal belongs to the screen, so nothing is ever logged to stdout or stderr
func setupLogging(path string) *os.File {
	if path == "" {
		log.SetOutput(io.Discard)
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		log.SetOutput(io.Discard)
		return nil
	}

	rotateLog(path)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.SetOutput(io.Discard)
		return nil
	}

	log.SetOutput(f)
	log.SetPrefix("aether ")
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	log.Printf("=== session start %s ===", time.Now().Format(time.RFC3339))
	return f
}

// rotateLog moves an oversized log aside with a timestamp suffix
func rotateLog(path string) {
	info, err := os.Stat(path)
	if err != nil || info.Size() <= maxLogSize {
		return
	}
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	rotated := fmt.Sprintf("%s-%s%s", base, time.Now().Format("20060102-150405"), ext)
	_ = os.Rename(path, rotated)
}
