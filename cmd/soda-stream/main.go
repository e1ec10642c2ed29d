package main

import "github.com/eleven-am/soda-stream/internal/bootstrap"

// Reads raw 16-bit PCM from AUDIO_SOURCE (stdin by default), streams it to
// the speech engine and prints recognition events to stdout.
func main() {
	bootstrap.Run()
}
