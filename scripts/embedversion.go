//go:build ignore
// +build ignore

// Prints the linker flags that stamp the version from git into the binary:
//
//	go build -ldflags "$(go run scripts/embedversion.go)"
package main

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

func main() {
	cmd := exec.Command("git", "describe", "--tags", "--always")
	ret, err := cmd.Output()

	if err != nil {
		fmt.Fprintln(os.Stderr, "Couldn't read git tags to embed version number")
		os.Exit(1)
	}
	version := strings.TrimSpace(string(ret))

	fmt.Printf("-X main.version=%s\n", version)
}
