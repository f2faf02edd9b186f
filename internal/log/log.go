// Copyright 2025 Alaska Satellite Facility
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package log provides leveled printf-style logging for the pipeline.
package log

import (
	"fmt"
	"io"
	"os"
	"sync"
)

type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	ErrorLevel
)

var (
	mu     sync.Mutex
	level  = InfoLevel
	output io.Writer = os.Stderr
)

// SetLogLevel sets the minimum level that will be written.
func SetLogLevel(l Level) {
	mu.Lock()
	defer mu.Unlock()
	level = l
}

// SetOutput redirects log output, mainly for tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

func logf(l Level, prefix, format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	if l < level {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if len(msg) == 0 || msg[len(msg)-1] != '\n' {
		msg += "\n"
	}
	fmt.Fprintf(output, "%s%s", prefix, msg)
}

func Debug(format string, args ...interface{}) {
	logf(DebugLevel, "[DEBUG] ", format, args...)
}

func Info(format string, args ...interface{}) {
	logf(InfoLevel, "", format, args...)
}

func Error(format string, args ...interface{}) {
	logf(ErrorLevel, "[ERROR] ", format, args...)
}
