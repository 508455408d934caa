// Package dbg provides opt-in debug logging, gated by a single package
// level switch, the same shape as the teacher's github.com/mewkiz/pkg/dbg.
package dbg

import (
	"fmt"
	"log"
)

// Debug enables debug output from Print/Printf/Println. Off by default;
// callers flip it on (e.g. from a CLI -v flag or a test) before decoding or
// encoding.
var Debug = false

// Print calls log.Print if Debug is enabled.
func Print(v ...interface{}) {
	if Debug {
		log.Print(v...)
	}
}

// Printf calls log.Printf if Debug is enabled.
func Printf(format string, v ...interface{}) {
	if Debug {
		log.Printf(format, v...)
	}
}

// Println calls log.Println if Debug is enabled.
func Println(v ...interface{}) {
	if Debug {
		log.Println(v...)
	}
}

// Sprint formats like fmt.Sprint, regardless of Debug; useful for building
// a message that is only logged conditionally by the caller.
func Sprint(v ...interface{}) string {
	return fmt.Sprint(v...)
}
